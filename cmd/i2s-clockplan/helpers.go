package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"

	clockgen "github.com/tphakala/go-i2s-clockgen"
)

// parseFormat maps a frame layout name to its Format value.
func parseFormat(name string) (clockgen.Format, error) {
	switch name {
	case "i2s":
		return clockgen.FormatI2S, nil
	case "left_j":
		return clockgen.FormatLeftJustified, nil
	case "right_j":
		return clockgen.FormatRightJustified, nil
	}
	return 0, fmt.Errorf("unknown frame layout %q (want i2s, left_j or right_j)", name)
}

// wavStreamParams reads the sample rate, bit depth and channel count from a
// WAV file header.
func wavStreamParams(path string) (rate, width, channels int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return 0, 0, 0, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	return format.SampleRate, int(decoder.BitDepth), format.NumChannels, nil
}

// printProgram writes the divider program and the resulting clock tree in a
// register-oriented table.
func printProgram(w io.Writer, tree *clockgen.ClockTree, p clockgen.DividerProgram) {
	fmt.Fprintf(w, "source clock  %9d Hz\n", tree.SourceClockHz)
	fmt.Fprintf(w, "master clock  %9d Hz  (mclk/fs = %d)\n",
		tree.MasterClockHz, tree.MclkFsRatio)
	fmt.Fprintf(w, "sample rate   %9d Hz  (sclk/fs = %d, %s)\n\n",
		tree.SampleRateHz, tree.SclkFsRatio, tree.Format)

	fmt.Fprintf(w, "DIV0 (mclk)   %3d\n", p.MclkDiv)
	fmt.Fprintf(w, "DIV1 (spdif)  %3d\n", p.SpdifDiv)
	fmt.Fprintf(w, "DIV2 (fs)     %3d\n", p.FsDiv)
	fmt.Fprintf(w, "DIV3 (ref)    %3d\n", p.RefDiv)
	if p.HasSclkDiv {
		fmt.Fprintf(w, "DIV4 (sclk)   %3d\n", p.SclkDiv)
	}
}
