package clockgen

import "fmt"

// Format selects the serial frame layout on the data line.
type Format int

const (
	// FormatI2S is the standard Philips I2S frame layout.
	FormatI2S Format = iota

	// FormatLeftJustified aligns the sample to the leading edge of the frame.
	FormatLeftJustified

	// FormatRightJustified aligns the sample to the trailing edge of the frame.
	FormatRightJustified
)

// String returns the conventional name of the frame layout.
func (f Format) String() string {
	switch f {
	case FormatI2S:
		return "i2s"
	case FormatLeftJustified:
		return "left_j"
	case FormatRightJustified:
		return "right_j"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ClockTree is the clock configuration of one I2S controller instance.
//
// The divider cascade is:
//
//	           -------
//	src_clk ---| div |--- mclk
//	           -------
//
// Without a programmable mclk-to-sclk divider stage the mclk:sclk ratio is
// fixed by wiring:
//
//	          (left_j and i2s)
//	        |----- 1/8 --------|            -------
//	mclk ---|                  |--- sclk ---| div |--- fs
//	        |----- 1/4 --------|            -------
//	          (right_j)
//
// With the programmable stage both ratios are set by divider registers:
//
//	        -------            -------
//	mclk ---| div |--- sclk ---| div |--- fs
//	        -------            -------
//
// A ClockTree is populated incrementally: the frame layout and master clock
// are set independently, and every rate change recomputes the dividers from
// scratch via PlanRate. The tree carries no hidden state between calls; one
// caller owns the value and mutates it under the single stream configuration
// call in flight guaranteed by the surrounding audio pipeline.
type ClockTree struct {
	// SourceClockHz is the upstream reference clock feeding all dividers.
	SourceClockHz int

	// MasterClockHz is the configured output of the first divider stage,
	// supplied externally through SetMasterClock.
	MasterClockHz int

	// SampleRateHz is the target frame-sync frequency of the last rate change.
	SampleRateHz int

	// Format is the serial frame layout. It decides the wired mclk:sclk
	// ratio on controllers without a programmable mclk-to-sclk stage.
	Format Format

	// HasMclkSclkDiv reports whether the controller exposes a programmable
	// mclk-to-sclk divider stage instead of fixed 8:1 / 4:1 wiring.
	HasMclkSclkDiv bool

	// MclkFsRatio is the mclk:fs ratio validated by the last CalcMclkDiv.
	MclkFsRatio int

	// SclkFsRatio is the sclk:fs ratio set by the last CalcFsDiv. On
	// controllers with fixed wiring it may be preseeded from the profile
	// before the first rate change.
	SclkFsRatio int
}

// SetFormat records the serial frame layout.
func (t *ClockTree) SetFormat(f Format) {
	t.Format = f
}

// SetMasterClock records the externally negotiated master clock frequency.
func (t *ClockTree) SetMasterClock(hz int) {
	t.MasterClockHz = hz
}

// ClockSource models a programmable upstream clock feeding the divider
// cascade. The achieved frequency may differ from the requested one, so
// callers must read it back with RateHz before deriving dividers from it.
type ClockSource interface {
	// SetRateHz requests a new output frequency.
	SetRateHz(hz int) error

	// RateHz reports the current output frequency.
	RateHz() int
}

// ExactClock is a ClockSource that achieves every requested frequency
// exactly. It stands in for a PLL with sufficient resolution.
type ExactClock struct {
	hz int
}

// NewExactClock returns an ExactClock running at hz.
func NewExactClock(hz int) *ExactClock {
	return &ExactClock{hz: hz}
}

// SetRateHz sets the output frequency to exactly hz.
func (c *ExactClock) SetRateHz(hz int) error {
	if hz <= 0 {
		return fmt.Errorf("clock source rate must be positive, got %d Hz", hz)
	}
	c.hz = hz
	return nil
}

// RateHz reports the current output frequency.
func (c *ExactClock) RateHz() int {
	return c.hz
}

// SourceRates gives the two frequencies a programmable clock source is
// switched between, one per sample rate family.
type SourceRates struct {
	// Family48kHz feeds the 8/16/32/48/96 kHz rates.
	Family48kHz int `yaml:"clk-for-fs-48k"`

	// Family44kHz feeds the 11.025/22.05/44.1/88.2 kHz rates.
	Family44kHz int `yaml:"clk-for-fs-44k"`
}

// forRate returns the source frequency for the family rate belongs to.
func (s SourceRates) forRate(rateHz int) (int, error) {
	switch rateHz {
	case RateTelephony, RateVoIP, RateBroadcast, RateDAT, RateHiRes96:
		return s.Family48kHz, nil
	case RateQuarterCD, RateHalfCD, RateCD, RateHiRes88:
		return s.Family44kHz, nil
	}
	return 0, fmt.Errorf("%w: %d Hz", ErrUnsupportedRate, rateHz)
}
