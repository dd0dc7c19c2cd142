package clockgen

import "fmt"

// DividerProgram holds the divider register values computed for one rate
// change. Every divider N produces an output clock of input/(2*(N+1)).
type DividerProgram struct {
	// MclkDiv divides the source clock down to the master clock.
	MclkDiv int

	// SpdifDiv divides the source clock for the SPDIF output.
	SpdifDiv int

	// FsDiv divides the serial clock down to the frame sync.
	FsDiv int

	// RefDiv divides the source clock down to the frame-sync reference clock.
	RefDiv int

	// SclkDiv divides the master clock down to the serial clock. Only
	// meaningful when HasSclkDiv is set.
	SclkDiv int

	// HasSclkDiv reports whether SclkDiv is part of the program. It is set
	// for controllers with a programmable mclk-to-sclk divider stage.
	HasSclkDiv bool
}

// CalcFsDiv computes the serial-clock-to-frame-sync divider and records the
// sclk:fs ratio in the tree.
//
// The ratio is fixed at 64 so that one divider setting covers 16, 24 and
// 32-bit words; wordWidth is accepted for symmetry with the other
// calculators but does not influence the result.
func CalcFsDiv(t *ClockTree, wordWidth int) int {
	const multi = sclkFsMultiplier // sclk = multi * fs

	t.SclkFsRatio = multi

	// div = sclk/(2*fs) - 1 = multi/2 - 1
	return multi/2 - 1
}

// CalcMclkDiv computes the source-clock-to-master-clock divider for the
// requested sample rate and records the validated mclk:fs ratio in the tree.
//
// The master clock must be an exact multiple of the rate, and the resulting
// ratio must be one the divider cascade can realize: one of 256, 384, 512 or
// 768 with a programmable mclk-to-sclk stage, or exactly 8x (4x for
// right-justified frames) the sclk:fs ratio with fixed wiring. When the
// candidate divider is non-negative it is additionally required to reproduce
// the master clock exactly from the source clock.
//
// A negative divider (source clock below twice the master clock) is returned
// without the reproduction check; PlanRate rejects it before any register
// value is emitted.
func CalcMclkDiv(t *ClockTree, rateHz int) (int, error) {
	if rateHz <= 0 {
		return 0, fmt.Errorf("%w: %d Hz", ErrUnsupportedRate, rateHz)
	}

	mclk := t.MasterClockHz
	if mclk%rateHz != 0 {
		return 0, fmt.Errorf("%w: mclk %d Hz, fs %d Hz", ErrClockNotMultiple, mclk, rateHz)
	}

	ratio := mclk / rateHz

	if t.HasMclkSclkDiv {
		if !isValidMclkFsRatio(ratio) {
			return 0, fmt.Errorf("%w: mclk/fs = %d, want one of %v",
				ErrInvalidRatio, ratio, validMclkFsRatios)
		}
	} else {
		wired := mclkSclkRatioI2S
		if t.Format == FormatRightJustified {
			wired = mclkSclkRatioRightJ
		}
		if ratio != wired*t.SclkFsRatio {
			return 0, fmt.Errorf("%w: mclk/fs = %d, wiring requires %d*%d",
				ErrInvalidRatio, ratio, wired, t.SclkFsRatio)
		}
	}

	t.MclkFsRatio = ratio

	// div = src_clk/(2*mclk) - 1
	div := t.SourceClockHz/2/mclk - 1
	if div >= 0 {
		got := t.SourceClockHz / (2 * (div + 1))
		if got != mclk {
			return 0, fmt.Errorf("%w: want %d Hz, closest achievable %d Hz",
				ErrClockMismatch, mclk, got)
		}
	}
	return div, nil
}

// CalcSclkDiv computes the master-clock-to-serial-clock divider from the
// ratios recorded in the tree. Only controllers with a programmable
// mclk-to-sclk stage use it.
//
// The division truncates. For every realizable configuration the mclk:fs
// ratio is an exact multiple of the sclk:fs ratio, so truncation never
// loses anything there.
func CalcSclkDiv(t *ClockTree) int {
	multi := t.MclkFsRatio / t.SclkFsRatio // mclk = multi * sclk

	// div = mclk/(2*sclk) - 1 = multi/2 - 1
	return multi/2 - 1
}

// CalcRefClkDiv computes the divider producing the frame-sync reference
// clock for the requested rate: 3.072 MHz for the 48k family, 2.1168 MHz for
// the 44.1k family. Rates outside the two families are rejected.
//
// Unlike CalcMclkDiv, the achievable reference clock is not validated
// against the target; the frame-sync detector tolerates the residual error.
func CalcRefClkDiv(t *ClockTree, rateHz int) (int, error) {
	ref, err := referenceClockHz(rateHz)
	if err != nil {
		return 0, err
	}

	// div = src_clk/(2*ref_clk) - 1
	return t.SourceClockHz/2/ref - 1, nil
}

// CalcSpdifDiv returns the SPDIF clock divider. The value is a fixed
// calibration constant independent of rate and word width; see spdifDivValue.
func CalcSpdifDiv(t *ClockTree, rateHz, wordWidth int) int {
	return spdifDivValue
}

// PlanRate derives the complete divider program for a sample-rate change.
//
// When src is non-nil the upstream clock source is first reprogrammed to the
// family frequency from srcRates for the requested rate, and the achieved
// frequency is read back into the tree before any divider is derived. A nil
// src means the source clock is a fixed external frequency and reprogramming
// is skipped.
//
// The frame-sync divider is computed first since the mclk ratio check on
// fixed-wiring controllers depends on the sclk:fs ratio it records. On any
// failure the zero program is returned and nothing should be written to
// hardware; divider values are all-or-nothing.
func PlanRate(t *ClockTree, src ClockSource, srcRates SourceRates, rateHz, wordWidth int) (DividerProgram, error) {
	if src != nil {
		target, err := srcRates.forRate(rateHz)
		if err != nil {
			return DividerProgram{}, err
		}
		if err := src.SetRateHz(target); err != nil {
			return DividerProgram{}, fmt.Errorf("reprogramming clock source: %w", err)
		}
		t.SourceClockHz = src.RateHz()
	}

	t.SampleRateHz = rateHz

	var p DividerProgram

	p.FsDiv = CalcFsDiv(t, wordWidth)

	mclkDiv, err := CalcMclkDiv(t, rateHz)
	if err != nil {
		return DividerProgram{}, err
	}
	if mclkDiv < 0 {
		return DividerProgram{}, fmt.Errorf("%w: source clock %d Hz below 2*mclk",
			ErrClockMismatch, t.SourceClockHz)
	}
	p.MclkDiv = mclkDiv

	if t.HasMclkSclkDiv {
		p.SclkDiv = CalcSclkDiv(t)
		p.HasSclkDiv = true
	}

	p.SpdifDiv = CalcSpdifDiv(t, rateHz, wordWidth)

	refDiv, err := CalcRefClkDiv(t, rateHz)
	if err != nil {
		return DividerProgram{}, err
	}
	if refDiv < 0 {
		return DividerProgram{}, fmt.Errorf("%w: source clock %d Hz below 2*ref_clk",
			ErrClockMismatch, t.SourceClockHz)
	}
	p.RefDiv = refDiv

	return p, nil
}

// referenceClockHz maps a sample rate to its reference clock domain.
func referenceClockHz(rateHz int) (int, error) {
	switch rateHz {
	case RateTelephony, RateVoIP, RateBroadcast, RateDAT, RateHiRes96:
		return refClk48kFamilyHz, nil
	case RateQuarterCD, RateHalfCD, RateCD, RateHiRes88:
		return refClk44kFamilyHz, nil
	}
	return 0, fmt.Errorf("%w: %d Hz", ErrUnsupportedRate, rateHz)
}

func isValidMclkFsRatio(ratio int) bool {
	for _, r := range validMclkFsRatios {
		if ratio == r {
			return true
		}
	}
	return false
}
