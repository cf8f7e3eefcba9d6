package bus

import (
	"errors"

	"github.com/ezrec/mc68k/translate"
)

var f = translate.From

var (
	ErrOverlap = errors.New(f("region overlaps"))
	ErrRange   = errors.New(f("region outside address space"))
	ErrEmpty   = errors.New(f("region empty"))
	ErrLoad    = errors.New(f("load outside region"))
)

// ErrRegion tags an error with the region that caused it.
type ErrRegion struct {
	Name string
	Err  error
}

func (err *ErrRegion) Error() string {
	return f("region %v: %v", err.Name, err.Err)
}

func (err *ErrRegion) Unwrap() error {
	return err.Err
}
