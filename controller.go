package clockgen

import (
	"fmt"

	"github.com/tphakala/go-i2s-clockgen/internal/regmap"
)

// RegisterWriter applies 32-bit register accesses to one controller
// instance. Implementations are supplied by the embedding environment: a
// memory-mapped window, a remote debug link, or a recorder in tests.
type RegisterWriter interface {
	// WriteReg writes value to the register at offset.
	WriteReg(offset uint32, value uint32) error

	// ReadReg reads the register at offset.
	ReadReg(offset uint32) (uint32, error)
}

// ClockRole selects whether the controller drives or consumes the bit and
// frame clocks.
type ClockRole int

const (
	// RoleMaster drives sclk and fs from the internal divider cascade.
	RoleMaster ClockRole = iota

	// RoleSlave consumes sclk and fs from the far end.
	RoleSlave
)

// TriggerCmd is a stream state-machine command.
type TriggerCmd int

const (
	TriggerStart TriggerCmd = iota
	TriggerResume
	TriggerPauseRelease
	TriggerStop
	TriggerSuspend
	TriggerPausePush
)

// DMAConfig describes the slave transfer feeding the playback FIFO.
type DMAConfig struct {
	// FIFOOffset is the register offset of the data FIFO.
	FIFOOffset uint32

	// AddrWidthBytes is the bus width of one FIFO write.
	AddrWidthBytes int

	// MaxBurst is the largest burst the FIFO accepts without overflow.
	MaxBurst int
}

// regWrite is one queued register write.
type regWrite struct {
	offset uint32
	value  uint32
}

// Controller drives one I2S controller instance through a RegisterWriter.
//
// It owns the instance's ClockTree and serializes nothing itself: the
// surrounding audio pipeline guarantees at most one configuration call in
// flight, matching the single-caller contract of the planner.
type Controller struct {
	profile Profile
	regs    RegisterWriter
	source  ClockSource // nil when the source clock is fixed

	tree ClockTree
	dma  DMAConfig
}

// NewController builds a controller from a validated profile. source must be
// non-nil exactly when the profile has no fixed clock-frequency; the initial
// source clock is read from it.
func NewController(p *Profile, regs RegisterWriter, source ClockSource) (*Controller, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if regs == nil {
		return nil, fmt.Errorf("%w: nil register writer", ErrInvalidProfile)
	}

	c := &Controller{
		profile: *p,
		regs:    regs,
		source:  source,
	}

	if p.ClockFrequencyHz != 0 {
		c.tree.SourceClockHz = p.ClockFrequencyHz
		c.source = nil
	} else {
		if source == nil {
			return nil, fmt.Errorf("%w: no clock-frequency and no clock source",
				ErrInvalidProfile)
		}
		c.tree.SourceClockHz = source.RateHz()
	}

	c.tree.HasMclkSclkDiv = p.HasMclkSclkDiv()
	c.tree.SclkFsRatio = p.SclkFsDivider
	c.tree.Format = FormatI2S
	return c, nil
}

// Tree returns a copy of the current clock tree for inspection.
func (c *Controller) Tree() ClockTree {
	return c.tree
}

// Init programs the power-on register state: interrupts cleared and masked,
// 16-bit resolution, frame-sync auto-detect center counts, FIFO thresholds,
// transmit mode, and the output unit in I2S master mode with the interface
// disabled.
func (c *Controller) Init() error {
	txThreshold := uint32(c.profile.IntrTxThreshold)
	if c.profile.UseDMA {
		txThreshold = 0
	}

	writes := []regWrite{
		{regmap.AudioEn, 0},
		{regmap.FICR, regmap.FIFOIntAll},
		{regmap.CMIR, regmap.ModeIntAll},
		{regmap.FSSTA, regmap.FSSTARateSetByUser | regmap.FSSTARes16FIFO16},
		{regmap.FADTLR, fadtlrCenterCounts()},
		{regmap.IMR, 0},
		{regmap.RXFTLR, uint32(c.profile.IntrRxThreshold)},
		{regmap.TXFTLR, txThreshold},
		{regmap.DMARDLR, uint32(c.profile.DMARxThreshold)},
		{regmap.DMATDLR, uint32(c.profile.DMATxThreshold)},
		{regmap.MIMR, 0},
		{regmap.SCCR, 0},
		{regmap.FuncMode, regmap.FuncModeWEN | regmap.FuncModeTx},
		{regmap.IISCnfOut, regmap.OutAudFmtI2S |
			regmap.OutWSPolarityNormal | regmap.OutMaster},
	}
	for _, w := range writes {
		if err := c.regs.WriteReg(w.offset, w.value); err != nil {
			return fmt.Errorf("init write 0x%02x: %w", w.offset, err)
		}
	}
	return nil
}

// SetMasterClock records the externally negotiated master clock frequency.
// The dividers pick it up on the next ConfigureStream.
func (c *Controller) SetMasterClock(hz int) {
	c.tree.SetMasterClock(hz)
}

// SetFormat programs the output unit frame layout, frame-clock polarity and
// clock role. Inverted bit clocks are not representable on this hardware.
func (c *Controller) SetFormat(f Format, wsInverted bool, role ClockRole) error {
	val, err := c.regs.ReadReg(regmap.IISCnfOut)
	if err != nil {
		return fmt.Errorf("reading output config: %w", err)
	}
	val &^= regmap.OutAudFmtMask << regmap.OutAudFmtShift
	val &^= regmap.OutWSPolarityMask << regmap.OutWSPolarityShift
	val &^= regmap.OutMSMask << regmap.OutMSShift

	switch f {
	case FormatI2S:
		val |= regmap.OutAudFmtI2S
	case FormatLeftJustified:
		val |= regmap.OutAudFmtLeftJ
	case FormatRightJustified:
		val |= regmap.OutAudFmtRightJ
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedClocking, f)
	}

	if wsInverted {
		val |= regmap.OutWSPolarityInverted
	} else {
		val |= regmap.OutWSPolarityNormal
	}

	switch role {
	case RoleMaster:
		val |= regmap.OutMaster
	case RoleSlave:
		val |= regmap.OutSlave
	default:
		return fmt.Errorf("%w: role %d", ErrUnsupportedClocking, int(role))
	}

	if err := c.regs.WriteReg(regmap.IISCnfOut, val); err != nil {
		return fmt.Errorf("writing output config: %w", err)
	}
	c.tree.SetFormat(f)
	return nil
}

// ConfigureStream negotiates hardware parameters for a playback stream:
// sample resolution and FIFO packing from the word width, the DMA transfer
// shape, and the full divider program for the rate. Divider registers are
// written only after the whole program has been validated.
func (c *Controller) ConfigureStream(rateHz, wordWidth, channels int) error {
	if channels < 1 || channels > maxChannels {
		return fmt.Errorf("%w: %d", ErrTooManyChannels, channels)
	}

	val, err := c.regs.ReadReg(regmap.FSSTA)
	if err != nil {
		return fmt.Errorf("reading fs state: %w", err)
	}
	val &^= regmap.FSSTAResMask << regmap.FSSTAResShift

	var addrWidth int
	switch wordWidth {
	case WordWidth16:
		// A stereo frame packs two 16-bit samples into one FIFO word.
		if channels == stereoChannels {
			addrWidth = 4
		} else {
			addrWidth = 2
		}
		val |= regmap.FSSTARes16FIFO16
	case WordWidth24:
		addrWidth = 3
		val |= regmap.FSSTARes24FIFO24
	case WordWidth32:
		addrWidth = 4
		val |= regmap.FSSTARes24FIFO24
	default:
		return fmt.Errorf("%w: %d bits", ErrUnsupportedWidth, wordWidth)
	}

	if err := c.regs.WriteReg(regmap.FSSTA, val); err != nil {
		return fmt.Errorf("writing fs state: %w", err)
	}

	c.dma = DMAConfig{
		FIFOOffset:     regmap.DR,
		AddrWidthBytes: addrWidth,
		MaxBurst:       c.profile.FIFODepth - c.profile.DMATxThreshold,
	}

	return c.setClockRate(rateHz, wordWidth)
}

// DMAConfig returns the transfer shape established by the last
// ConfigureStream.
func (c *Controller) DMAConfig() DMAConfig {
	return c.dma
}

// setClockRate plans the divider program for the rate and applies it.
func (c *Controller) setClockRate(rateHz, wordWidth int) error {
	p, err := PlanRate(&c.tree, c.source, c.profile.Source, rateHz, wordWidth)
	if err != nil {
		return err
	}
	return c.applyProgram(p)
}

// applyProgram writes a validated divider program to the level registers.
func (c *Controller) applyProgram(p DividerProgram) error {
	writes := []regWrite{
		{regmap.Div0Level, uint32(p.MclkDiv)},
		{regmap.Div1Level, uint32(p.SpdifDiv)},
		{regmap.Div2Level, uint32(p.FsDiv)},
		{regmap.Div3Level, uint32(p.RefDiv)},
	}
	if p.HasSclkDiv {
		writes = append(writes, regWrite{regmap.Div4Level, uint32(p.SclkDiv)})
	}
	for _, w := range writes {
		if err := c.regs.WriteReg(w.offset, w.value); err != nil {
			return fmt.Errorf("divider write 0x%02x: %w", w.offset, err)
		}
	}
	return nil
}

// Trigger runs one stream state-machine command. Only playback is
// implemented; start-class commands enable the interface, stop-class
// commands quiesce it.
func (c *Controller) Trigger(cmd TriggerCmd) error {
	switch cmd {
	case TriggerStart, TriggerResume, TriggerPauseRelease:
		return c.startPlayback()
	case TriggerStop, TriggerSuspend, TriggerPausePush:
		return c.stopPlayback()
	default:
		return fmt.Errorf("%w: trigger %d", ErrUnsupportedClocking, int(cmd))
	}
}

// startPlayback arms FIFO service (interrupt or DMA driven, per profile)
// and enables the interface.
func (c *Controller) startPlayback() error {
	if c.profile.UseDMA {
		if err := c.regs.WriteReg(regmap.DMACR, regmap.DMACRTxEnable); err != nil {
			return fmt.Errorf("enabling tx dma: %w", err)
		}
	} else {
		if err := c.regs.WriteReg(regmap.IMR, regmap.FIFOIntTxEmpty); err != nil {
			return fmt.Errorf("unmasking tx interrupt: %w", err)
		}
	}
	if err := c.regs.WriteReg(regmap.AudioEn, regmap.AudioEnIIS); err != nil {
		return fmt.Errorf("enabling interface: %w", err)
	}
	return nil
}

// stopPlayback quiesces FIFO service and disables the interface.
func (c *Controller) stopPlayback() error {
	if err := c.regs.WriteReg(regmap.IMR, 0); err != nil {
		return fmt.Errorf("masking fifo interrupts: %w", err)
	}
	if err := c.regs.WriteReg(regmap.DMACR, 0); err != nil {
		return fmt.Errorf("disabling tx dma: %w", err)
	}
	if err := c.regs.WriteReg(regmap.AudioEn, 0); err != nil {
		return fmt.Errorf("disabling interface: %w", err)
	}
	return nil
}

// fadtlrCenterCounts builds the frame-sync auto-detect register value. Each
// field is the rounded count of 3.072 MHz reference cycles per frame at its
// rate; the 44.1k field is measured against the same reference, hence the
// non-integral ratio rounding to 70.
func fadtlrCenterCounts() uint32 {
	return regmap.EncodeFADTLR(
		fsCenterCount(RateDAT),       // 0x40
		fsCenterCount(RateCD),        // 0x46
		fsCenterCount(RateBroadcast), // 0x60
		fsCenterCount(RateHiRes96),   // 0x20
	)
}

// fsCenterCount is round(3.072MHz / rate).
func fsCenterCount(rateHz int) uint32 {
	return uint32((refClk48kFamilyHz + rateHz/2) / rateHz)
}
