package cpu

import (
	"errors"

	"github.com/ezrec/mc68k/translate"
)

var f = translate.From

var (
	// Construction errors.
	ErrDecodeCoverage = errors.New(f("opcode not covered"))
	ErrProgramBounds  = errors.New(f("program reference out of bounds"))
	ErrProgramEmpty   = errors.New(f("program empty"))

	// Run time errors.
	ErrSnapshot      = errors.New(f("snapshot invalid"))
	ErrSnapshotSize  = errors.New(f("snapshot size"))
	ErrRegisterID    = errors.New(f("register invalid"))
	ErrInterruptSpan = errors.New(f("interrupt level out of range"))
)

// ErrCursor reports an execution cursor that left its program.
type ErrCursor Cursor

func (ec ErrCursor) Error() string {
	return f("cursor %v out of bounds", Cursor(ec).String())
}

func (ec ErrCursor) Is(err error) (ok bool) {
	_, ok = err.(ErrCursor)
	return
}

// ErrOpcode tags an error with the opcode that caused it.
type ErrOpcode uint16

func (eo ErrOpcode) Error() string {
	return f("opcode 0x%04x", uint16(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrSnapshotField reports which snapshot field failed validation.
type ErrSnapshotField struct {
	Field string
	Err   error
}

func (err ErrSnapshotField) Error() string {
	return f("snapshot %v: %v", err.Field, err.Err)
}

func (err ErrSnapshotField) Unwrap() error {
	return err.Err
}
