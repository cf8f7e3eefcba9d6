package emulator

import (
	"errors"

	"github.com/ezrec/mc68k/translate"
)

var f = translate.From

var (
	ErrHalted     = errors.New(f("processor halted"))
	ErrUnmapped   = errors.New(f("no memory at address"))
	ErrWaitStates = errors.New(f("no region to slow"))
	ErrArgument   = errors.New(f("argument out of range"))
	ErrImage      = errors.New(f("image must be bytes or a file name"))
	ErrGlobal     = errors.New(f("global has the wrong type"))
)

// ErrRuntime indicates the instruction in progress when a run failed.
type ErrRuntime struct {
	PC     uint32
	Opcode uint16
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%06x opcode 0x%04x: %v", err.PC, err.Opcode, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrConfig indicates the location of a machine description error.
type ErrConfig struct {
	Name   string
	LineNo int
	Err    error
}

func (err *ErrConfig) Error() string {
	return f("%v:%d: %v", err.Name, err.LineNo, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
