// Package regmap defines the I2S controller register layout and the bit
// fields programmed by the clockgen package.
//
// All registers are 32 bits wide. Offsets are in bytes from the controller
// base address.
package regmap

// Register offsets.
const (
	AudioEn   = 0x00 // global I2S enable
	FuncMode  = 0x04 // transmit/receive mode select
	IISCnfIn  = 0x08 // input unit configuration
	FSSTA     = 0x0c // frame-sync state and sample resolution
	IISCnfOut = 0x10 // output unit configuration
	FADTLR    = 0x14 // frame-sync auto-detect center counts
	SCCR      = 0x18 // sample compress control
	TXFTLR    = 0x1c // transmit FIFO interrupt threshold
	RXFTLR    = 0x20 // receive FIFO interrupt threshold
	IMR       = 0x24 // FIFO interrupt mask
	ISR       = 0x28 // FIFO interrupt status
	RISR      = 0x2c // raw FIFO interrupt status
	FICR      = 0x30 // FIFO interrupt clear
	CMIR      = 0x34 // mode interrupt clear
	MIMR      = 0x38 // mode interrupt mask
	MISR      = 0x3c // mode interrupt status
	DMACR     = 0x40 // DMA control
	DMATDLR   = 0x44 // DMA transmit data level
	DMARDLR   = 0x48 // DMA receive data level
	DR        = 0x4c // data FIFO
)

// Divider level registers. Each holds N such that out = in/(2*(N+1)).
const (
	Div0Level = 0x90 // src_clk -> mclk
	Div1Level = 0x94 // src_clk -> spdif_clk
	Div2Level = 0x98 // sclk -> fs
	Div3Level = 0x9c // src_clk -> ref_clk
	Div4Level = 0xa0 // mclk -> sclk
)

// AudioEn bits.
const (
	AudioEnIIS = 1 << 0
)

// FuncMode bits. Mode bits only latch while the matching write-enable bit
// is set in the same write.
const (
	FuncModeTx    = 1 << 0
	FuncModeRx    = 1 << 1
	FuncModeTxWEN = 1 << 16
	FuncModeRxWEN = 1 << 17

	FuncModeWEN = FuncModeTxWEN | FuncModeRxWEN
)

// FSSTA bits.
const (
	// FSSTARateSetByUser selects divider-driven rates over auto-detection.
	FSSTARateSetByUser = 1 << 0

	// Sample resolution / FIFO packing select.
	FSSTAResShift = 4
	FSSTAResMask  = 0x3

	FSSTARes16FIFO16 = 0x0 << FSSTAResShift // 16-bit samples, 16-bit FIFO slots
	FSSTARes16FIFO24 = 0x1 << FSSTAResShift
	FSSTARes24FIFO16 = 0x2 << FSSTAResShift
	FSSTARes24FIFO24 = 0x3 << FSSTAResShift // 24/32-bit samples, 24-bit FIFO slots
)

// IISCnfOut bits.
const (
	OutAudFmtShift = 0
	OutAudFmtMask  = 0x3

	OutAudFmtI2S    = 0x0 << OutAudFmtShift
	OutAudFmtRightJ = 0x1 << OutAudFmtShift
	OutAudFmtLeftJ  = 0x2 << OutAudFmtShift

	OutWSPolarityShift = 2
	OutWSPolarityMask  = 0x1

	OutWSPolarityNormal   = 0x0 << OutWSPolarityShift
	OutWSPolarityInverted = 0x1 << OutWSPolarityShift

	OutMSShift = 4
	OutMSMask  = 0x1

	OutMaster = 0x0 << OutMSShift
	OutSlave  = 0x1 << OutMSShift
)

// FADTLR field shifts. Each field holds the expected center count of frame
// syncs per reference-clock window for one rate family.
const (
	fadtlr48kShift = 0
	fadtlr44kShift = 8
	fadtlr32kShift = 16
	fadtlr96kShift = 24

	fadtlrFieldMask = 0xff
)

// EncodeFADTLR packs the four frame-sync center counts into a FADTLR value.
func EncodeFADTLR(ftr48k, ftr44k, ftr32k, ftr96k uint32) uint32 {
	return (ftr48k&fadtlrFieldMask)<<fadtlr48kShift |
		(ftr44k&fadtlrFieldMask)<<fadtlr44kShift |
		(ftr32k&fadtlrFieldMask)<<fadtlr32kShift |
		(ftr96k&fadtlrFieldMask)<<fadtlr96kShift
}

// FIFO interrupt bits, shared by IMR, ISR, RISR and FICR.
const (
	FIFOIntTxEmpty       = 1 << 0
	FIFOIntTxAlmostEmpty = 1 << 1
	FIFOIntRxFull        = 1 << 2
	FIFOIntRxAlmostFull  = 1 << 3

	FIFOIntAll = FIFOIntTxEmpty | FIFOIntTxAlmostEmpty |
		FIFOIntRxFull | FIFOIntRxAlmostFull
)

// Mode interrupt bits, shared by MIMR, MISR and CMIR.
const (
	ModeIntBusy      = 1 << 0
	ModeIntFSErr     = 1 << 1
	ModeIntRateChg   = 1 << 2
	ModeIntWrongWord = 1 << 3

	ModeIntAll = ModeIntBusy | ModeIntFSErr | ModeIntRateChg | ModeIntWrongWord
)

// DMACR bits.
const (
	DMACRRxEnable = 1 << 0
	DMACRTxEnable = 1 << 1
)
