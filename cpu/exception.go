package cpu

import (
	"fmt"
	"log"
)

// Vector is an exception vector number. The vector is fetched from
// address Vector * 4.
type Vector uint8

//go:generate go tool stringer -linecomment -type=Vector
const (
	VECTOR_RESET         = Vector(0)  // reset
	VECTOR_RESET_PC      = Vector(1)  // reset-pc
	VECTOR_BUS_ERROR     = Vector(2)  // bus-error
	VECTOR_ADDRESS_ERROR = Vector(3)  // address-error
	VECTOR_ILLEGAL       = Vector(4)  // illegal
	VECTOR_ZERO_DIVIDE   = Vector(5)  // zero-divide
	VECTOR_CHK           = Vector(6)  // chk
	VECTOR_TRAPV         = Vector(7)  // trapv
	VECTOR_PRIVILEGE     = Vector(8)  // privilege
	VECTOR_TRACE         = Vector(9)  // trace
	VECTOR_LINE_A        = Vector(10) // line-a
	VECTOR_LINE_F        = Vector(11) // line-f
	VECTOR_UNINITIALIZED = Vector(15) // uninitialized
	VECTOR_SPURIOUS      = Vector(24) // spurious
	VECTOR_AUTOVECTOR    = Vector(25) // autovector
	VECTOR_TRAP          = Vector(32) // trap
	VECTOR_USER          = Vector(64) // user
)

// INTERRUPT_LEVEL_COUNT is the number of interrupt priority levels.
const INTERRUPT_LEVEL_COUNT = 8

var _vector_defines = map[string]string{
	"VECTOR_RESET":         fmt.Sprintf("%d", VECTOR_RESET),
	"VECTOR_BUS_ERROR":     fmt.Sprintf("%d", VECTOR_BUS_ERROR),
	"VECTOR_ADDRESS_ERROR": fmt.Sprintf("%d", VECTOR_ADDRESS_ERROR),
	"VECTOR_ILLEGAL":       fmt.Sprintf("%d", VECTOR_ILLEGAL),
	"VECTOR_ZERO_DIVIDE":   fmt.Sprintf("%d", VECTOR_ZERO_DIVIDE),
	"VECTOR_CHK":           fmt.Sprintf("%d", VECTOR_CHK),
	"VECTOR_TRAPV":         fmt.Sprintf("%d", VECTOR_TRAPV),
	"VECTOR_PRIVILEGE":     fmt.Sprintf("%d", VECTOR_PRIVILEGE),
	"VECTOR_TRACE":         fmt.Sprintf("%d", VECTOR_TRACE),
	"VECTOR_LINE_A":        fmt.Sprintf("%d", VECTOR_LINE_A),
	"VECTOR_LINE_F":        fmt.Sprintf("%d", VECTOR_LINE_F),
	"VECTOR_SPURIOUS":      fmt.Sprintf("%d", VECTOR_SPURIOUS),
	"VECTOR_AUTOVECTOR":    fmt.Sprintf("%d", VECTOR_AUTOVECTOR),
	"VECTOR_TRAP":          fmt.Sprintf("%d", VECTOR_TRAP),
	"VECTOR_USER":          fmt.Sprintf("%d", VECTOR_USER),
}

// Pending is the set of outstanding exception sources.
type Pending struct {
	Reset        bool   // Power-on or external reset.
	BusError     bool   // Bus cycle answered with BERR.
	AddressError bool   // Word or long access at an odd address.
	Trace        bool   // Trace of the previous instruction.
	Level        uint8  // Interrupt request level, 0 for none.
	Trap         Vector // Trap, illegal or privilege exception raised by an instruction, 0 for none.
}

// Resolve selects the exception to take from a pending set and the current
// interrupt priority mask.
func Resolve(p Pending, mask uint8) (v Vector, ok bool) {
	ok = true
	switch {
	case p.Reset:
		v = VECTOR_RESET
	case p.BusError:
		v = VECTOR_BUS_ERROR
	case p.AddressError:
		v = VECTOR_ADDRESS_ERROR
	case p.Trace:
		v = VECTOR_TRACE
	case p.Level > mask && p.Level < INTERRUPT_LEVEL_COUNT:
		v = VECTOR_AUTOVECTOR + Vector(p.Level) - 1
	case p.Trap != 0:
		v = p.Trap
	default:
		ok = false
	}
	return
}

// Frame is the working state of exception processing.
type Frame struct {
	Vector       Vector // Vector being taken.
	Level        uint8  // Interrupt level being acknowledged.
	SR           uint16 // Status register before entry.
	PC           uint32 // Return address stacked.
	Base         uint32 // Stack address of the frame.
	Target       uint32 // Vector fetch accumulator.
	FaultAddress uint32 // Address of a faulting access.
	Access       uint16 // Access information word of a faulting access.
}

// Access information word bits of a group 0 frame.
const (
	ACCESS_FUNCTION    = uint16(0x0007) // Function code of the access.
	ACCESS_NOT_PROGRAM = uint16(1 << 3) // Clear for an instruction stream access.
	ACCESS_READ        = uint16(1 << 4) // Set for a read access.
)

// enter starts an exception program.
func (c *CPU) enter(state State, ref ProgramRef) {
	c.cursor = Cursor{State: state, Program: ref}
}

// exception starts processing of an exception vector.
func (c *CPU) exception(v Vector) {
	store := Programs()

	c.frame.Vector = v
	c.frame.Level = 0

	if c.Verbose {
		log.Printf("cpu: exception %v at %06x", v, c.instPC)
	}

	switch {
	case v == VECTOR_RESET:
		c.pending = Pending{}
		c.instTrace = false
		c.enter(STATE_RESET, store.Reset)
	case v == VECTOR_BUS_ERROR, v == VECTOR_ADDRESS_ERROR:
		c.pending.BusError = false
		c.pending.AddressError = false
		c.instTrace = false
		c.enter(STATE_BUS_ERROR, store.BusError)
	case v >= VECTOR_AUTOVECTOR && v < VECTOR_TRAP:
		c.frame.Level = uint8(v - VECTOR_SPURIOUS)
		c.enter(STATE_INTERRUPT_ACKNOWLEDGE, store.Interrupt)
	default:
		if v == VECTOR_TRACE {
			c.pending.Trace = false
		}
		c.pending.Trap = 0
		c.enter(STATE_EXCEPTION, store.Exception)
	}
}

// raise posts an exception from within an instruction.
func (c *CPU) raise(v Vector) {
	c.pending.Trap = v
	c.resolve()
}

// resolve takes the highest priority pending exception. Interrupts are
// never taken mid-instruction.
func (c *CPU) resolve() {
	p := c.pending
	p.Level = 0
	v, ok := Resolve(p, c.mask())
	if ok {
		c.exception(v)
	}
}

// trap raises a group 2 exception, which returns to the next instruction.
func (c *CPU) trap(v Vector) {
	c.frame.PC = c.nextPC()
	c.raise(v)
}

// fault raises a group 1 exception, which returns to the faulting
// instruction.
func (c *CPU) fault(v Vector) {
	c.frame.PC = c.instPC
	c.instTrace = false
	c.raise(v)
}

// busFault raises a bus or address error for a transaction. A fault while
// a bus error frame is being stacked, or while the reset vectors are
// fetched, halts the processor.
func (c *CPU) busFault(tx *Transaction, address bool) {
	switch c.cursor.State {
	case STATE_BUS_ERROR, STATE_RESET:
		c.halt(tx)
		return
	}

	access := uint16(tx.Function) & ACCESS_FUNCTION
	if !tx.Op.IsProgram() {
		access |= ACCESS_NOT_PROGRAM
	}
	if !tx.Op.IsWrite() {
		access |= ACCESS_READ
	}

	c.frame.Access = access
	c.frame.FaultAddress = tx.Address
	c.frame.PC = c.instPC + 2

	if address {
		c.pending.AddressError = true
	} else {
		c.pending.BusError = true
	}
	c.resolve()
}

// halt stops the processor until the next reset.
func (c *CPU) halt(tx *Transaction) {
	if c.Verbose {
		log.Printf("cpu: double fault on %v, halted", tx)
	}
	c.cursor = Cursor{State: STATE_HALTED}
}

// beginFrame starts an exception: the status register is saved, the
// processor enters supervisor mode with tracing off, and stack space for
// the frame is reserved.
func (c *CPU) beginFrame(kind uint8) {
	if kind == FRAME_RESET {
		c.setSR(SR_S | SR_MASK)
		c.pending.BusError = false
		c.pending.AddressError = false
		c.pending.Trace = false
		c.pending.Trap = 0
		return
	}

	c.frame.SR = c.sr
	c.setSR((c.sr | SR_S) &^ SR_T)
	if kind == FRAME_INTERRUPT {
		c.sr = (c.sr &^ SR_MASK) | uint16(c.frame.Level)<<SR_MASK_SHIFT
	}

	size := uint32(6)
	if kind == FRAME_GROUP0 {
		size = 14
	}
	c.reg[15] -= size
	c.frame.Base = c.reg[15]
}

// frameField returns the stack offset and value of a frame field.
func (c *CPU) frameField(field uint8) (offset uint32, value uint16) {
	group0 := c.cursor.State == STATE_BUS_ERROR
	base := uint32(0)
	if group0 {
		base = 8
	}

	switch field {
	case FIELD_ACCESS:
		offset, value = 0, c.frame.Access
	case FIELD_ADDRESS_HIGH:
		offset, value = 2, uint16(c.frame.FaultAddress>>16)
	case FIELD_ADDRESS_LOW:
		offset, value = 4, uint16(c.frame.FaultAddress)
	case FIELD_OPCODE:
		offset, value = 6, c.opcode
	case FIELD_SR:
		offset, value = base, c.frame.SR
	case FIELD_PC_HIGH:
		offset, value = base+2, uint16(c.frame.PC>>16)
	case FIELD_PC_LOW:
		offset, value = base+4, uint16(c.frame.PC)
	}
	return
}
