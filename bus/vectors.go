package bus

import (
	"log"
	"math/bits"

	"github.com/ezrec/mc68k/cpu"
)

// Line is the interrupt request input of a processor.
type Line interface {
	SetInterruptLevel(level uint8) error
}

// Vectors is an interrupt controller. It drives the request level of a
// processor from the highest raised level, and answers interrupt
// acknowledge cycles. An acknowledged level is cleared.
type Vectors struct {
	Verbose  bool                             // Set to log refused request levels.
	Vector   [cpu.INTERRUPT_LEVEL_COUNT]uint8 // Vector by level, AUTOVECTOR (0) for VPA.
	Spurious uint8                            // Levels, as a bit set, answered with BERR.
	Line     Line                             // Request input driven, if any.

	Acknowledged [cpu.INTERRUPT_LEVEL_COUNT]int

	request uint8 // Raised levels, as a bit set.
}

var _ cpu.Bus = (*Vectors)(nil)
var _ cpu.Resetter = (*Vectors)(nil)

// Level returns the highest raised level, 0 for none.
func (v *Vectors) Level() uint8 {
	if v.request == 0 {
		return 0
	}
	return uint8(bits.Len8(v.request)) - 1
}

// drive updates the request input.
func (v *Vectors) drive() (err error) {
	if v.Line == nil {
		return
	}
	err = v.Line.SetInterruptLevel(v.Level())
	if err != nil && v.Verbose {
		log.Printf("bus: interrupt level %d: %v", v.Level(), err)
	}
	return
}

// Raise requests an interrupt at a level, 1 to 7.
func (v *Vectors) Raise(level uint8) (err error) {
	if level == 0 || level >= cpu.INTERRUPT_LEVEL_COUNT {
		err = cpu.ErrInterruptSpan
		return
	}
	v.request |= 1 << level
	err = v.drive()
	return
}

// Clear withdraws an interrupt request.
func (v *Vectors) Clear(level uint8) (err error) {
	if level >= cpu.INTERRUPT_LEVEL_COUNT {
		err = cpu.ErrInterruptSpan
		return
	}
	v.request &^= 1 << level
	err = v.drive()
	return
}

// Perform answers an interrupt acknowledge cycle for the level encoded in
// address bits 3-1.
func (v *Vectors) Perform(tx *cpu.Transaction) (delay cpu.HalfCycles) {
	if tx.Op != cpu.BUS_INTERRUPT_ACKNOWLEDGE {
		tx.Response = cpu.RESPONSE_BERR
		return
	}

	level := uint8(tx.Address>>1) & 7
	v.Acknowledged[level]++
	v.request &^= 1 << level
	// A refused level is logged by drive; the cycle is still answered.
	_ = v.drive()

	switch {
	case v.Spurious&(1<<level) != 0:
		tx.Response = cpu.RESPONSE_BERR
	case v.Vector[level] == 0:
		tx.Response = cpu.RESPONSE_VPA
	default:
		tx.Response = cpu.RESPONSE_DTACK
		tx.Value = 0xff00 | uint16(v.Vector[level])
	}
	return
}

// ResetDevices withdraws all requests.
func (v *Vectors) ResetDevices() {
	v.request = 0
	_ = v.drive()
}
