package cpu

import (
	"fmt"
	"iter"
	"log"

	"github.com/ezrec/mc68k/internal"
)

// State is the execution engine state.
type State uint8

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RESET                 = State(0)  // reset
	STATE_DECODE                = State(1)  // decode
	STATE_FETCH_SOURCE          = State(2)  // fetch-source
	STATE_FETCH_DESTINATION     = State(3)  // fetch-destination
	STATE_PERFORM               = State(4)  // perform
	STATE_STORE                 = State(5)  // store
	STATE_TAIL                  = State(6)  // tail
	STATE_EXCEPTION             = State(7)  // standard-exception
	STATE_BUS_ERROR             = State(8)  // bus-error-exception
	STATE_INTERRUPT_ACKNOWLEDGE = State(9)  // interrupt-acknowledge
	STATE_WAIT_FOR_INTERRUPT    = State(10) // wait-for-interrupt
	STATE_WAIT_FOR_DTACK        = State(11) // wait-for-dtack
	STATE_HALTED                = State(12) // halted
)

// Cursor is the resumable position of the engine: a state, the program it
// is walking, and the index of the next micro-op in that program.
type Cursor struct {
	State   State
	Program ProgramRef
	Index   uint16
}

// String returns the cursor as text.
func (cur Cursor) String() string {
	return fmt.Sprintf("%v[%d:%d/%d]", cur.State, cur.Program.Start, cur.Index, cur.Program.Len)
}

// OperandLatch holds the address and value of one operand.
type OperandLatch struct {
	Address uint32
	Value   uint32
}

// Latch is the internal, per-instruction working state of the engine.
type Latch struct {
	Operand [SLOT_COUNT]OperandLatch
	Result  uint32   // Value to store.
	Ext     uint32   // Extension word accumulator.
	ExtAddr uint32   // Address of the first extension word, 0 if none.
	Words   uint8    // Extension words consumed by the instruction.
	Adjust  [8]int32 // Uncommitted (An)+ and -(An) adjustments.
	Cond    bool     // Condition for MICRO_SKIP.
	Idle    uint16   // Clocks of a latched idle micro-op.
	Push    uint32   // Value to push.
	Pop     uint32   // Value popped.
	Mask    uint16   // Registers left to transfer.
	Count   uint8    // Bytes left to transfer.
	Half    bool     // Low word of a long transfer pending.
	Address uint32   // Transfer address.
}

// CPU is a resumable 68000 execution engine attached to a Bus.
type CPU struct {
	Verbose bool // Set to enable verbose logging.

	bus Bus

	reg      RegisterFile
	sp       uint32    // Inactive stack pointer.
	pc       uint32    // Address of prefetch[0].
	sr       uint16    // Status register.
	prefetch [2]uint16 // IR and IRC.

	opcode    uint16       // Opcode of the instruction in progress.
	instPC    uint32       // Address of the instruction in progress.
	inst      *Instruction // Descriptor of the instruction in progress.
	instTrace bool         // Trace the instruction in progress.

	latch   Latch
	frame   Frame
	pending Pending
	ipl     uint8 // Interrupt request level input.

	cursor  Cursor
	resume  Cursor      // Cursor to resume after WaitForDTACK.
	waiting Transaction // Transaction held in WaitForDTACK.

	remaining HalfCycles
	elapsed   HalfCycles
}

var _cpu_defines = map[string]string{
	"HALF_CYCLES_PER_CLOCK": fmt.Sprintf("%d", HALF_CYCLES_PER_CLOCK),
	"BUS_CYCLE_COST":        fmt.Sprintf("%d", BUS_CYCLE_COST),
	"ADDRESS_MASK":          fmt.Sprintf("0x%x", ADDRESS_MASK),
	"FC_USER_DATA":          fmt.Sprintf("%d", FC_USER_DATA),
	"FC_USER_PROGRAM":       fmt.Sprintf("%d", FC_USER_PROGRAM),
	"FC_SUPER_DATA":         fmt.Sprintf("%d", FC_SUPER_DATA),
	"FC_SUPER_PROGRAM":      fmt.Sprintf("%d", FC_SUPER_PROGRAM),
	"FC_INTERRUPT":          fmt.Sprintf("%d", FC_INTERRUPT),
}

// Defines returns the constants of the cpu package, for configuration
// scripts.
func Defines() iter.Seq2[string, string] {
	return internal.SortedDefines(_cpu_defines, _vector_defines)
}

// New creates a processor attached to a bus. The processor starts with a
// power-on reset pending.
func New(bus Bus) (c *CPU) {
	c = &CPU{
		bus: bus,
	}
	c.sr = SR_S | SR_MASK
	c.pending.Reset = true
	c.cursor = Cursor{State: STATE_RESET, Program: Programs().Reset}

	return
}

// Reset asserts the reset input. The reset exception is taken at the next
// micro-op boundary.
func (c *CPU) Reset() {
	if c.Verbose {
		log.Printf("cpu: reset")
	}
	c.pending.Reset = true
}

// SetInterruptLevel sets the interrupt request level input, 0 for none.
func (c *CPU) SetInterruptLevel(level uint8) (err error) {
	if level >= INTERRUPT_LEVEL_COUNT {
		err = ErrInterruptSpan
		return
	}
	c.ipl = level
	return
}

// InterruptLevel returns the interrupt request level input.
func (c *CPU) InterruptLevel() uint8 {
	return c.ipl
}

// SetPrefetch places the processor at an instruction boundary with the
// given prefetch queue, cancelling any pending reset. The program counter
// is the address of ir.
func (c *CPU) SetPrefetch(ir, irc uint16) {
	c.prefetch = [2]uint16{ir, irc}
	c.pending.Reset = false
	c.cursor = Cursor{State: STATE_DECODE}
}

// Prefetch returns the prefetch queue.
func (c *CPU) Prefetch() (ir, irc uint16) {
	return c.prefetch[0], c.prefetch[1]
}

// State returns the engine state.
func (c *CPU) State() State {
	return c.cursor.State
}

// Cursor returns the engine cursor.
func (c *CPU) Cursor() Cursor {
	return c.cursor
}

// Halted returns true after a double fault.
func (c *CPU) Halted() bool {
	return c.cursor.State == STATE_HALTED
}

// Elapsed returns the half-cycles consumed since creation.
func (c *CPU) Elapsed() HalfCycles {
	return c.elapsed
}

// Remaining returns the unused budget. It is negative when the last
// micro-op overran the budget.
func (c *CPU) Remaining() HalfCycles {
	return c.remaining
}

// Instruction returns the address and descriptor of the instruction most
// recently decoded.
func (c *CPU) Instruction() (pc uint32, inst *Instruction) {
	return c.instPC, c.inst
}

// consume spends budget.
func (c *CPU) consume(n HalfCycles) {
	c.remaining -= n
	c.elapsed += n
}

// RunFor runs the processor for a budget of half-cycles. Budget left over,
// or overrun by a bus delay, carries into the next call. Execution stops at
// the first micro-op whose cost exceeds the remaining budget, and resumes
// there on the next call.
func (c *CPU) RunFor(budget HalfCycles) {
	c.remaining += budget
	store := Programs()

	for {
		if c.pending.Reset {
			c.exception(VECTOR_RESET)
		}

		switch c.cursor.State {
		case STATE_HALTED:
			if c.remaining > 0 {
				c.consume(c.remaining)
			}
			return

		case STATE_WAIT_FOR_INTERRUPT:
			p := c.pending
			p.Level = c.ipl
			if _, ok := Resolve(p, c.mask()); ok {
				c.cursor = Cursor{State: STATE_DECODE}
				continue
			}
			if c.remaining >= HALF_CYCLES_PER_CLOCK {
				c.consume(c.remaining - c.remaining%HALF_CYCLES_PER_CLOCK)
			}
			return

		case STATE_WAIT_FOR_DTACK:
			if c.remaining < 1 {
				return
			}
			c.consume(1)
			response := RESPONSE_DTACK
			if waiter, ok := c.bus.(Waiter); ok {
				response = waiter.Poll(&c.waiting)
			}
			if response == RESPONSE_WAIT {
				continue
			}
			c.waiting.Response = response
			c.cursor = c.resume
			op := store.Program(c.cursor.Program)[c.cursor.Index-1]
			c.settle(op, &c.waiting)

		case STATE_DECODE:
			c.decode()

		default:
			program := store.Program(c.cursor.Program)
			index := int(c.cursor.Index)
			if index > len(program) {
				panic(ErrCursor(c.cursor))
			}
			if index == len(program) {
				c.advance()
				continue
			}

			op := program[index]
			cost := c.cost(op)
			if c.remaining < cost {
				return
			}

			c.cursor.Index++
			extra := c.execute(op)
			c.consume(cost + extra)
		}
	}
}

// decode starts the next instruction, or takes a pending exception.
func (c *CPU) decode() {
	c.pending.Level = c.ipl
	if v, ok := Resolve(c.pending, c.mask()); ok {
		c.frame.PC = c.pc
		c.instTrace = false
		c.exception(v)
		return
	}

	c.instPC = c.pc
	c.opcode = c.prefetch[0]
	c.inst = Decode(c.opcode)
	c.instTrace = c.sr&SR_T != 0
	c.latch = Latch{}

	if c.Verbose {
		log.Printf("cpu: %06x %04x %v", c.instPC, c.opcode, c.inst)
	}

	if c.inst.Privileged && !c.supervisor() {
		c.fault(VECTOR_PRIVILEGE)
		return
	}

	c.phase(PHASE_SOURCE)
}

// phase enters the first non-empty instruction phase at or after p.
func (c *CPU) phase(p int) {
	for ; p < PHASE_COUNT; p++ {
		ref := c.inst.Programs[p]
		if !ref.Empty() {
			c.cursor = Cursor{State: STATE_FETCH_SOURCE + State(p), Program: ref}
			return
		}
	}
	c.next()
}

// advance leaves a completed program.
func (c *CPU) advance() {
	state := c.cursor.State
	if state >= STATE_FETCH_SOURCE && state <= STATE_TAIL {
		c.phase(int(state-STATE_FETCH_SOURCE) + 1)
		return
	}
	c.next()
}

// next ends the instruction and returns to decode.
func (c *CPU) next() {
	if c.instTrace {
		c.pending.Trace = true
	}
	c.instTrace = false
	c.cursor = Cursor{State: STATE_DECODE}
}

// nextPC returns the address of the instruction following the one in
// progress, accounting for the extension words consumed so far.
func (c *CPU) nextPC() uint32 {
	return c.instPC + 2 + 2*uint32(c.latch.Words)
}

// cost returns the fixed cost of a micro-op.
func (c *CPU) cost(op MicroOp) HalfCycles {
	switch op.Kind {
	case MICRO_IDLE:
		if op.Slot != 0 {
			return Clocks(int(c.latch.Idle))
		}
		return Clocks(int(op.N))
	case MICRO_MOVEM:
		if c.latch.Mask == 0 {
			return 0
		}
		return BUS_CYCLE_COST
	case MICRO_MOVEP:
		if c.latch.Count == 0 {
			return 0
		}
		return BUS_CYCLE_COST
	}
	if op.busy() {
		return BUS_CYCLE_COST
	}
	return 0
}
