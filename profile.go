package clockgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Controller generations. GenerationV1 has the mclk:sclk ratio fixed by
// wiring; GenerationV11 exposes a programmable mclk-to-sclk divider stage.
const (
	GenerationV1  = "v1"
	GenerationV11 = "v1.1"
)

// Profile describes one controller instance: its hardware generation,
// clocking and FIFO geometry. It carries the per-board configuration that
// platform firmware hands to the driver.
type Profile struct {
	// Generation is "v1" or "v1.1".
	Generation string `yaml:"generation"`

	// ClockFrequencyHz, when non-zero, is a fixed external source clock.
	// When zero the controller owns a programmable clock source switched
	// between the Source frequencies.
	ClockFrequencyHz int `yaml:"clock-frequency"`

	// Source gives the programmable source frequencies per rate family.
	// Ignored when ClockFrequencyHz is set.
	Source SourceRates `yaml:",inline"`

	// SclkFsDivider seeds the sclk:fs ratio for v1 controllers whose
	// wiring differs from the 64x default.
	SclkFsDivider int `yaml:"sclk-fs-divider"`

	// UseDMA selects DMA FIFO service; false means PIO with FIFO interrupts.
	UseDMA bool `yaml:"use-dma"`

	// FIFO geometry, in FIFO words.
	FIFODepth       int `yaml:"fifo-depth"`
	IntrTxThreshold int `yaml:"intr-tx-threshold"`
	IntrRxThreshold int `yaml:"intr-rx-threshold"`
	DMATxThreshold  int `yaml:"dma-tx-threshold"`
	DMARxThreshold  int `yaml:"dma-rx-threshold"`

	// ConfigHDMI mirrors rate changes to a downstream HDMI audio block.
	ConfigHDMI bool `yaml:"config-hdmi"`
}

// DefaultProfile returns a v1.1 profile with a fixed source clock and the
// default FIFO geometry.
func DefaultProfile() *Profile {
	p := &Profile{
		Generation:       GenerationV11,
		ClockFrequencyHz: 24_576_000,
	}
	p.applyDefaults()
	return p
}

// LoadProfile reads a controller profile from a YAML file, applies defaults
// for omitted fields and validates the result.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile parses a controller profile from YAML.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// applyDefaults fills omitted fields with the controller defaults.
func (p *Profile) applyDefaults() {
	if p.Generation == "" {
		p.Generation = GenerationV1
	}
	if p.FIFODepth == 0 {
		p.FIFODepth = DefaultFIFODepth
	}
	if p.IntrTxThreshold == 0 {
		p.IntrTxThreshold = DefaultIntrTxThreshold
	}
	if p.IntrRxThreshold == 0 {
		p.IntrRxThreshold = DefaultIntrRxThreshold
	}
	if p.DMATxThreshold == 0 {
		p.DMATxThreshold = DefaultDMATxThreshold
	}
	if p.DMARxThreshold == 0 {
		p.DMARxThreshold = DefaultDMARxThreshold
	}
}

// Validate checks the profile for internal consistency.
func (p *Profile) Validate() error {
	if p.Generation != GenerationV1 && p.Generation != GenerationV11 {
		return fmt.Errorf("%w: unknown generation %q", ErrInvalidProfile, p.Generation)
	}
	if p.ClockFrequencyHz < 0 {
		return fmt.Errorf("%w: negative clock-frequency", ErrInvalidProfile)
	}
	if p.ClockFrequencyHz == 0 {
		if p.Source.Family48kHz <= 0 || p.Source.Family44kHz <= 0 {
			return fmt.Errorf("%w: need clock-frequency or both family source rates",
				ErrInvalidProfile)
		}
	}
	if p.SclkFsDivider < 0 {
		return fmt.Errorf("%w: negative sclk-fs-divider", ErrInvalidProfile)
	}
	if p.FIFODepth <= 0 {
		return fmt.Errorf("%w: fifo-depth must be positive", ErrInvalidProfile)
	}
	for _, th := range []struct {
		name string
		val  int
	}{
		{"intr-tx-threshold", p.IntrTxThreshold},
		{"intr-rx-threshold", p.IntrRxThreshold},
		{"dma-tx-threshold", p.DMATxThreshold},
		{"dma-rx-threshold", p.DMARxThreshold},
	} {
		if th.val < 0 || th.val > p.FIFODepth {
			return fmt.Errorf("%w: %s %d outside FIFO depth %d",
				ErrInvalidProfile, th.name, th.val, p.FIFODepth)
		}
	}
	return nil
}

// HasMclkSclkDiv reports whether this generation has a programmable
// mclk-to-sclk divider stage.
func (p *Profile) HasMclkSclkDiv() bool {
	return p.Generation == GenerationV11
}
