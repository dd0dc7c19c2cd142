// Command i2s-clockplan computes the divider program an I2S controller
// needs for a given stream, without touching hardware.
//
// Usage:
//
//	i2s-clockplan -rate 48000 -width 16 -mclk 12288000 -src 24576000
//	i2s-clockplan -gen v1 -format right_j -rate 48000 -mclk 12288000 -src 24576000
//	i2s-clockplan -profile board.yaml -wav track.wav
//
// With -wav the sample rate and word width are taken from the WAV header.
// With -profile the source clocking comes from a controller profile; the
// planner then reprograms the profile's clock source per rate family exactly
// as the controller would.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	clockgen "github.com/tphakala/go-i2s-clockgen"
)

const (
	defaultRate     = clockgen.RateDAT
	defaultWidth    = clockgen.WordWidth16
	defaultSrcClk   = 24_576_000
	mclkRatioIfZero = 256
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("i2s-clockplan: ")

	var (
		profilePath = flag.String("profile", "", "controller profile YAML (overrides -src and -gen)")
		wavPath     = flag.String("wav", "", "derive -rate and -width from a WAV file")
		rate        = flag.Int("rate", defaultRate, "sample rate in Hz")
		width       = flag.Int("width", defaultWidth, "sample word width in bits (16, 24 or 32)")
		mclk        = flag.Int("mclk", 0, "master clock in Hz (0 = 256*rate)")
		srcClk      = flag.Int("src", defaultSrcClk, "fixed source clock in Hz")
		gen         = flag.String("gen", clockgen.GenerationV11, "controller generation (v1 or v1.1)")
		formatName  = flag.String("format", "i2s", "frame layout: i2s, left_j or right_j")
	)
	flag.Parse()

	if *wavPath != "" {
		wavRate, wavWidth, channels, err := wavStreamParams(*wavPath)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %d Hz, %d-bit, %d channel(s)\n\n",
			*wavPath, wavRate, wavWidth, channels)
		*rate = wavRate
		*width = wavWidth
	}

	format, err := parseFormat(*formatName)
	if err != nil {
		log.Fatal(err)
	}
	if *gen != clockgen.GenerationV1 && *gen != clockgen.GenerationV11 {
		log.Fatalf("unknown generation %q (want %s or %s)",
			*gen, clockgen.GenerationV1, clockgen.GenerationV11)
	}

	if *mclk == 0 {
		*mclk = mclkRatioIfZero * *rate
	}

	tree := clockgen.ClockTree{
		SourceClockHz:  *srcClk,
		HasMclkSclkDiv: *gen == clockgen.GenerationV11,
		Format:         format,
	}
	var (
		source clockgen.ClockSource
		rates  clockgen.SourceRates
	)

	if *profilePath != "" {
		profile, err := clockgen.LoadProfile(*profilePath)
		if err != nil {
			log.Fatal(err)
		}
		tree.HasMclkSclkDiv = profile.HasMclkSclkDiv()
		tree.SclkFsRatio = profile.SclkFsDivider
		if profile.ClockFrequencyHz != 0 {
			tree.SourceClockHz = profile.ClockFrequencyHz
		} else {
			rates = profile.Source
			source = clockgen.NewExactClock(rates.Family48kHz)
		}
	}

	tree.SetMasterClock(*mclk)

	program, err := clockgen.PlanRate(&tree, source, rates, *rate, *width)
	if err != nil {
		log.Fatal(err)
	}

	printProgram(os.Stdout, &tree, program)
}
