package clockgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-i2s-clockgen/internal/regmap"
	"github.com/tphakala/go-i2s-clockgen/internal/testutil"
)

// pioProfile is a v1.1 controller with a fixed source clock serviced by PIO.
func pioProfile() *Profile {
	p := &Profile{
		Generation:       GenerationV11,
		ClockFrequencyHz: srcClk24M,
	}
	p.applyDefaults()
	return p
}

// dmaProfile is the same controller serviced by DMA.
func dmaProfile() *Profile {
	p := pioProfile()
	p.UseDMA = true
	return p
}

func newTestController(t *testing.T, p *Profile) (*Controller, *testutil.RegRecorder) {
	t.Helper()
	regs := testutil.NewRegRecorder()
	c, err := NewController(p, regs, nil)
	require.NoError(t, err)
	return c, regs
}

func TestNewController_FixedClock(t *testing.T) {
	c, _ := newTestController(t, pioProfile())

	tree := c.Tree()
	assert.Equal(t, srcClk24M, tree.SourceClockHz)
	assert.True(t, tree.HasMclkSclkDiv)
	assert.Equal(t, FormatI2S, tree.Format, "frame layout defaults to I2S")
}

func TestNewController_ProgrammableSource(t *testing.T) {
	p := &Profile{
		Generation: GenerationV11,
		Source:     SourceRates{Family48kHz: srcClk24M, Family44kHz: srcClk22M},
	}
	p.applyDefaults()

	c, err := NewController(p, testutil.NewRegRecorder(), NewExactClock(srcClk12M))

	require.NoError(t, err)
	assert.Equal(t, srcClk12M, c.Tree().SourceClockHz,
		"initial source clock is read from the source")
}

func TestNewController_Rejections(t *testing.T) {
	p := &Profile{
		Generation: GenerationV11,
		Source:     SourceRates{Family48kHz: srcClk24M, Family44kHz: srcClk22M},
	}
	p.applyDefaults()

	_, err := NewController(p, testutil.NewRegRecorder(), nil)
	assert.ErrorIs(t, err, ErrInvalidProfile, "programmable profile needs a clock source")

	_, err = NewController(pioProfile(), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidProfile, "nil register writer")

	bad := pioProfile()
	bad.Generation = "v3"
	_, err = NewController(bad, testutil.NewRegRecorder(), nil)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestController_Init(t *testing.T) {
	c, regs := newTestController(t, pioProfile())

	require.NoError(t, c.Init())

	testutil.AssertWrote(t, regs, regmap.AudioEn, 0)
	testutil.AssertWrote(t, regs, regmap.FICR, regmap.FIFOIntAll)
	testutil.AssertWrote(t, regs, regmap.CMIR, regmap.ModeIntAll)
	testutil.AssertWrote(t, regs, regmap.FSSTA,
		regmap.FSSTARateSetByUser|regmap.FSSTARes16FIFO16)
	testutil.AssertWrote(t, regs, regmap.FADTLR, 0x20604640)
	testutil.AssertWrote(t, regs, regmap.IMR, 0)
	testutil.AssertWrote(t, regs, regmap.RXFTLR, uint32(DefaultIntrRxThreshold))
	testutil.AssertWrote(t, regs, regmap.TXFTLR, uint32(DefaultIntrTxThreshold))
	testutil.AssertWrote(t, regs, regmap.DMATDLR, uint32(DefaultDMATxThreshold))
	testutil.AssertWrote(t, regs, regmap.DMARDLR, uint32(DefaultDMARxThreshold))
	testutil.AssertWrote(t, regs, regmap.SCCR, 0)
	testutil.AssertWrote(t, regs, regmap.FuncMode,
		regmap.FuncModeWEN|regmap.FuncModeTx)
	testutil.AssertWrote(t, regs, regmap.IISCnfOut,
		regmap.OutAudFmtI2S|regmap.OutWSPolarityNormal|regmap.OutMaster)
}

func TestController_Init_DMATxThresholdZero(t *testing.T) {
	c, regs := newTestController(t, dmaProfile())

	require.NoError(t, c.Init())

	testutil.AssertWrote(t, regs, regmap.TXFTLR, 0,
		"DMA service leaves the tx interrupt threshold at zero")
}

func TestController_SetFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     Format
		wsInverted bool
		role       ClockRole
		want       uint32
	}{
		{
			name: "i2s_master_normal", format: FormatI2S, role: RoleMaster,
			want: regmap.OutAudFmtI2S | regmap.OutWSPolarityNormal | regmap.OutMaster,
		},
		{
			name: "left_j", format: FormatLeftJustified, role: RoleMaster,
			want: regmap.OutAudFmtLeftJ | regmap.OutWSPolarityNormal | regmap.OutMaster,
		},
		{
			name: "right_j_inverted_slave", format: FormatRightJustified,
			wsInverted: true, role: RoleSlave,
			want: regmap.OutAudFmtRightJ | regmap.OutWSPolarityInverted | regmap.OutSlave,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, regs := newTestController(t, pioProfile())
			require.NoError(t, c.Init())

			require.NoError(t, c.SetFormat(tt.format, tt.wsInverted, tt.role))

			testutil.AssertWrote(t, regs, regmap.IISCnfOut, tt.want)
			assert.Equal(t, tt.format, c.Tree().Format)
		})
	}
}

func TestController_SetFormat_RejectsUnknown(t *testing.T) {
	c, _ := newTestController(t, pioProfile())

	assert.ErrorIs(t, c.SetFormat(Format(7), false, RoleMaster), ErrUnsupportedClocking)
	assert.ErrorIs(t, c.SetFormat(FormatI2S, false, ClockRole(7)), ErrUnsupportedClocking)
}

func TestController_ConfigureStream(t *testing.T) {
	c, regs := newTestController(t, pioProfile())
	require.NoError(t, c.Init())
	c.SetMasterClock(mclk256Fs48k)
	regs.Reset()

	require.NoError(t, c.ConfigureStream(RateDAT, WordWidth16, 2))

	testutil.AssertWrote(t, regs, regmap.Div0Level, 0)
	testutil.AssertWrote(t, regs, regmap.Div1Level, spdifDivReal)
	testutil.AssertWrote(t, regs, regmap.Div2Level, fsDivAlways)
	testutil.AssertWrote(t, regs, regmap.Div3Level, 3)
	testutil.AssertWrote(t, regs, regmap.Div4Level, 1)
	testutil.AssertWriteOrder(t, regs,
		regmap.FSSTA,
		regmap.Div0Level, regmap.Div1Level, regmap.Div2Level,
		regmap.Div3Level, regmap.Div4Level)

	dma := c.DMAConfig()
	assert.Equal(t, uint32(regmap.DR), dma.FIFOOffset)
	assert.Equal(t, 4, dma.AddrWidthBytes, "stereo 16-bit packs two samples per word")
	assert.Equal(t, DefaultFIFODepth-DefaultDMATxThreshold, dma.MaxBurst)
}

func TestController_ConfigureStream_V1SkipsSclkDivider(t *testing.T) {
	p := &Profile{
		Generation:       GenerationV1,
		ClockFrequencyHz: srcClk49M,
	}
	p.applyDefaults()
	c, regs := newTestController(t, p)
	require.NoError(t, c.Init())
	c.SetMasterClock(512 * RateDAT)
	regs.Reset()

	require.NoError(t, c.ConfigureStream(RateDAT, WordWidth16, 2))

	assert.False(t, regs.WroteTo(regmap.Div4Level),
		"v1 has no mclk-to-sclk divider register")
}

func TestController_ConfigureStream_WidthMapping(t *testing.T) {
	tests := []struct {
		name          string
		width         int
		channels      int
		wantRes       uint32
		wantAddrWidth int
	}{
		{name: "s16_mono", width: WordWidth16, channels: 1,
			wantRes: regmap.FSSTARes16FIFO16, wantAddrWidth: 2},
		{name: "s16_stereo", width: WordWidth16, channels: 2,
			wantRes: regmap.FSSTARes16FIFO16, wantAddrWidth: 4},
		{name: "s24", width: WordWidth24, channels: 2,
			wantRes: regmap.FSSTARes24FIFO24, wantAddrWidth: 3},
		{name: "s32", width: WordWidth32, channels: 2,
			wantRes: regmap.FSSTARes24FIFO24, wantAddrWidth: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, regs := newTestController(t, pioProfile())
			require.NoError(t, c.Init())
			c.SetMasterClock(mclk256Fs48k)

			require.NoError(t, c.ConfigureStream(RateDAT, tt.width, tt.channels))

			testutil.AssertWrote(t, regs, regmap.FSSTA,
				regmap.FSSTARateSetByUser|tt.wantRes)
			assert.Equal(t, tt.wantAddrWidth, c.DMAConfig().AddrWidthBytes)
		})
	}
}

func TestController_ConfigureStream_Rejections(t *testing.T) {
	c, _ := newTestController(t, pioProfile())
	require.NoError(t, c.Init())
	c.SetMasterClock(mclk256Fs48k)

	assert.ErrorIs(t, c.ConfigureStream(RateDAT, WordWidth16, 3), ErrTooManyChannels)
	assert.ErrorIs(t, c.ConfigureStream(RateDAT, WordWidth16, 0), ErrTooManyChannels)
	assert.ErrorIs(t, c.ConfigureStream(RateDAT, 20, 2), ErrUnsupportedWidth)
}

func TestController_ConfigureStream_FailureWritesNoDividers(t *testing.T) {
	c, regs := newTestController(t, pioProfile())
	require.NoError(t, c.Init())
	c.SetMasterClock(mclkOdd) // not a multiple of any supported rate
	regs.Reset()

	err := c.ConfigureStream(RateDAT, WordWidth16, 2)

	require.ErrorIs(t, err, ErrClockNotMultiple)
	for _, off := range []uint32{
		regmap.Div0Level, regmap.Div1Level, regmap.Div2Level,
		regmap.Div3Level, regmap.Div4Level,
	} {
		assert.False(t, regs.WroteTo(off),
			"no divider register may be written on failure (0x%02x)", off)
	}
}

func TestController_ConfigureStream_WriteFailurePropagates(t *testing.T) {
	injected := errors.New("bus fault")
	c, regs := newTestController(t, pioProfile())
	require.NoError(t, c.Init())
	c.SetMasterClock(mclk256Fs48k)
	regs.FailAt = func(offset uint32) error {
		if offset == regmap.Div3Level {
			return injected
		}
		return nil
	}

	err := c.ConfigureStream(RateDAT, WordWidth16, 2)

	assert.ErrorIs(t, err, injected)
}

func TestController_Trigger_PIO(t *testing.T) {
	c, regs := newTestController(t, pioProfile())
	require.NoError(t, c.Init())
	regs.Reset()

	require.NoError(t, c.Trigger(TriggerStart))
	testutil.AssertWrote(t, regs, regmap.IMR, regmap.FIFOIntTxEmpty)
	testutil.AssertWrote(t, regs, regmap.AudioEn, regmap.AudioEnIIS)
	assert.False(t, regs.WroteTo(regmap.DMACR), "PIO start must not touch DMA")

	regs.Reset()
	require.NoError(t, c.Trigger(TriggerStop))
	testutil.AssertWrote(t, regs, regmap.IMR, 0)
	testutil.AssertWrote(t, regs, regmap.DMACR, 0)
	testutil.AssertWrote(t, regs, regmap.AudioEn, 0)
}

func TestController_Trigger_DMA(t *testing.T) {
	c, regs := newTestController(t, dmaProfile())
	require.NoError(t, c.Init())
	regs.Reset()

	require.NoError(t, c.Trigger(TriggerStart))

	testutil.AssertWrote(t, regs, regmap.DMACR, regmap.DMACRTxEnable)
	testutil.AssertWrote(t, regs, regmap.AudioEn, regmap.AudioEnIIS)
}

func TestController_Trigger_CommandClasses(t *testing.T) {
	c, regs := newTestController(t, pioProfile())
	require.NoError(t, c.Init())

	for _, cmd := range []TriggerCmd{TriggerStart, TriggerResume, TriggerPauseRelease} {
		regs.Reset()
		require.NoError(t, c.Trigger(cmd))
		testutil.AssertWrote(t, regs, regmap.AudioEn, regmap.AudioEnIIS)
	}
	for _, cmd := range []TriggerCmd{TriggerStop, TriggerSuspend, TriggerPausePush} {
		regs.Reset()
		require.NoError(t, c.Trigger(cmd))
		testutil.AssertWrote(t, regs, regmap.AudioEn, 0)
	}

	assert.Error(t, c.Trigger(TriggerCmd(42)))
}
