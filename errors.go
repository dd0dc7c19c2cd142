package clockgen

import "errors"

// Common errors returned by the planner and controller.
//
// All of these are deterministic configuration rejections: retrying the same
// request can never succeed, so callers should surface them rather than retry.
var (
	// ErrUnsupportedRate indicates a sample rate outside the supported set.
	ErrUnsupportedRate = errors.New("unsupported sample rate")

	// ErrClockNotMultiple indicates the master clock is not an integer
	// multiple of the requested sample rate.
	ErrClockNotMultiple = errors.New("mclk is not a multiple of fs")

	// ErrInvalidRatio indicates a mclk:fs ratio the divider cascade cannot
	// realize on this controller generation.
	ErrInvalidRatio = errors.New("invalid mclk/fs ratio")

	// ErrClockMismatch indicates the source clock cannot be divided down to
	// the configured master clock exactly.
	ErrClockMismatch = errors.New("mclk not exactly representable")

	// ErrUnsupportedWidth indicates a sample word width other than 16, 24
	// or 32 bits.
	ErrUnsupportedWidth = errors.New("unsupported word width")

	// ErrTooManyChannels indicates a channel count above the stereo FIFO limit.
	ErrTooManyChannels = errors.New("too many channels")

	// ErrUnsupportedClocking indicates a frame-clock polarity or clock role
	// combination the output unit cannot generate.
	ErrUnsupportedClocking = errors.New("unsupported clocking mode")

	// ErrInvalidProfile indicates an inconsistent controller profile.
	ErrInvalidProfile = errors.New("invalid controller profile")
)
