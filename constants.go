package clockgen

// Supported sample rates in Hz.
const (
	// RateTelephony is the telephony narrowband sample rate.
	RateTelephony = 8000

	// RateQuarterCD is the quarter CD sample rate.
	RateQuarterCD = 11025

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateHalfCD is the half CD sample rate.
	RateHalfCD = 22050

	// RateBroadcast is the digital broadcast sample rate.
	RateBroadcast = 32000

	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes88 is the high-resolution 2x CD sample rate.
	RateHiRes88 = 88200

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000
)

// SupportedRates lists every sample rate the planner accepts, ascending.
var SupportedRates = []int{
	RateTelephony,
	RateQuarterCD,
	RateVoIP,
	RateHalfCD,
	RateBroadcast,
	RateCD,
	RateDAT,
	RateHiRes88,
	RateHiRes96,
}

// Reference clock domains for the frame-sync auto-detect unit.
// The 48k family (8/16/32/48/96 kHz) runs from 3.072 MHz, the 44.1k family
// (11.025/22.05/44.1/88.2 kHz) from 2.1168 MHz.
const (
	refClk48kFamilyHz = 3_072_000
	refClk44kFamilyHz = 2_116_800
)

// sclkFsMultiplier fixes the serial clock at 64x the frame sync. One divider
// setting then covers 16, 24 and 32-bit words without reconfiguration.
const sclkFsMultiplier = 64

// spdifDivValue is the value written to the SPDIF clock divider for every
// rate. Hardware bring-up notes only say the register is usually configured
// as 17 (sometimes 11); no derivation is documented, so it is kept as an
// opaque calibration value rather than computed.
const spdifDivValue = 17

// Valid mclk:fs ratios for controllers with a programmable mclk-to-sclk
// divider stage.
var validMclkFsRatios = [...]int{256, 384, 512, 768}

// Fixed mclk:sclk wiring ratios for controllers without a programmable
// mclk-to-sclk divider stage, by frame layout.
const (
	mclkSclkRatioI2S    = 8 // I2S and left-justified
	mclkSclkRatioRightJ = 4 // right-justified
)

// Supported sample word widths in bits.
const (
	WordWidth16 = 16
	WordWidth24 = 24
	WordWidth32 = 32
)

// FIFO geometry defaults, in FIFO words, used when the profile omits the
// corresponding field.
const (
	DefaultFIFODepth       = 32
	DefaultIntrTxThreshold = 16
	DefaultIntrRxThreshold = 16
	DefaultDMATxThreshold  = 16
	DefaultDMARxThreshold  = 16
)

// Channel constants of the playback FIFO.
const (
	maxChannels    = 2 // FIFO interleaves at most one stereo pair
	stereoChannels = 2
)
