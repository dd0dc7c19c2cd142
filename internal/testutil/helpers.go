// Package testutil provides reusable test helpers for controller tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// RegWrite is one recorded register write.
type RegWrite struct {
	Offset uint32
	Value  uint32
}

// RegRecorder implements the register access interface against an in-memory
// register file, recording every write in order.
type RegRecorder struct {
	// Writes is every write in issue order.
	Writes []RegWrite

	// Regs is the current register file contents.
	Regs map[uint32]uint32

	// FailAt, when non-nil, is consulted before each write; returning an
	// error injects a write failure.
	FailAt func(offset uint32) error
}

// NewRegRecorder returns an empty register recorder.
func NewRegRecorder() *RegRecorder {
	return &RegRecorder{Regs: make(map[uint32]uint32)}
}

// WriteReg records the write and updates the register file.
func (r *RegRecorder) WriteReg(offset, value uint32) error {
	if r.FailAt != nil {
		if err := r.FailAt(offset); err != nil {
			return err
		}
	}
	r.Writes = append(r.Writes, RegWrite{Offset: offset, Value: value})
	r.Regs[offset] = value
	return nil
}

// ReadReg returns the register file contents; unwritten registers read as 0.
func (r *RegRecorder) ReadReg(offset uint32) (uint32, error) {
	return r.Regs[offset], nil
}

// Reset clears the write log but keeps the register file.
func (r *RegRecorder) Reset() {
	r.Writes = nil
}

// WroteTo reports whether any recorded write touched offset.
func (r *RegRecorder) WroteTo(offset uint32) bool {
	for _, w := range r.Writes {
		if w.Offset == offset {
			return true
		}
	}
	return false
}

// AssertWrote verifies that the last write to offset carried value.
func AssertWrote(t *testing.T, r *RegRecorder, offset, value uint32, msgAndArgs ...any) bool {
	t.Helper()
	got, ok := r.Regs[offset]
	if !ok {
		return assert.Fail(t, "register never written",
			"no write to offset 0x%02x", offset)
	}
	return assert.Equal(t, value, got,
		"register 0x%02x: want 0x%08x, got 0x%08x", offset, value, got)
}

// AssertWriteOrder verifies that the write log contains the given offsets in
// relative order.
func AssertWriteOrder(t *testing.T, r *RegRecorder, offsets ...uint32) bool {
	t.Helper()
	pos := 0
	for _, w := range r.Writes {
		if pos < len(offsets) && w.Offset == offsets[pos] {
			pos++
		}
	}
	return assert.Equal(t, len(offsets), pos,
		"writes did not contain offsets in order: %#x", offsets)
}
