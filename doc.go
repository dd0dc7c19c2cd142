// Package clockgen plans and programs the clock-divider cascade of the
// C-SKY SoC I2S audio controller in pure Go.
//
// The controller derives all of its audio clocks from one source clock
// through cascaded dividers: source clock to master clock (mclk), master
// clock to serial bit clock (sclk), serial clock to frame sync (fs), plus an
// auxiliary reference-clock divider for frame-sync detection and an SPDIF
// clock divider. Every divider register holds N such that the output clock
// is input/(2*(N+1)).
//
// # Features
//
//   - Exact integer divider derivation for the nine supported sample rates
//     (8 kHz through 96 kHz, both the 48k and 44.1k families)
//   - Both controller generations: fixed 8:1 / 4:1 mclk:sclk wiring and the
//     programmable mclk-to-sclk divider stage with 256/384/512/768 ratios
//   - All-or-nothing planning: a rejected configuration produces no register
//     values at all
//   - A register-level controller surface (format, stream parameters, FIFO
//     service, playback gating) behind a pluggable [RegisterWriter]
//   - Controller profiles loaded from YAML, mirroring per-board firmware
//     configuration
//
// # Quick Start
//
// For one-off divider planning, build a [ClockTree] and call [PlanRate]:
//
//	tree := clockgen.ClockTree{
//	    SourceClockHz:  24576000,
//	    HasMclkSclkDiv: true,
//	}
//	tree.SetMasterClock(12288000)
//
//	program, err := clockgen.PlanRate(&tree, nil, clockgen.SourceRates{}, 48000, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(program.MclkDiv, program.FsDiv)
//
// To drive a controller instance, load a [Profile] and use a [Controller]:
//
//	profile, err := clockgen.LoadProfile("board.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctrl, err := clockgen.NewController(profile, regs, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ctrl.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := ctrl.ConfigureStream(48000, 16, 2); err != nil {
//	    log.Fatal(err)
//	}
//	if err := ctrl.Trigger(clockgen.TriggerStart); err != nil {
//	    log.Fatal(err)
//	}
//
// # Clock Tree
//
// Without a programmable mclk-to-sclk stage the mclk:sclk ratio is fixed by
// wiring (8:1 for I2S and left-justified frames, 4:1 for right-justified),
// so the master clock must be exactly 512x (or 256x) the sample rate given
// the fixed 64x sclk:fs ratio. With the programmable stage any mclk:fs ratio
// of 256, 384, 512 or 768 is accepted.
//
// # Error Handling
//
// Every rejection is a deterministic configuration error wrapping one of the
// package sentinels ([ErrUnsupportedRate], [ErrClockNotMultiple],
// [ErrInvalidRatio], [ErrClockMismatch], ...); none are transient, so
// callers should fail the stream setup rather than retry.
//
// # Concurrency
//
// The planner and controller are deliberately lock-free: the surrounding
// audio pipeline guarantees at most one format or rate configuration call in
// flight per stream, and all state lives in the caller-owned [ClockTree].
package clockgen
