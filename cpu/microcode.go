package cpu

import (
	"errors"
	"fmt"
	"sync"
)

// MicroKind is the kind of a micro-operation.
type MicroKind uint8

//go:generate go tool stringer -linecomment -type=MicroKind
const (
	MICRO_IDLE           = MicroKind(0)  // n
	MICRO_PREFETCH       = MicroKind(1)  // np
	MICRO_EXTENSION      = MicroKind(2)  // ext
	MICRO_LATCH          = MicroKind(3)  // latch
	MICRO_REFILL         = MicroKind(4)  // refill
	MICRO_ADDRESS        = MicroKind(5)  // ea
	MICRO_READ_REGISTER  = MicroKind(6)  // rreg
	MICRO_IMMEDIATE      = MicroKind(7)  // imm
	MICRO_QUICK          = MicroKind(8)  // quick
	MICRO_READ           = MicroKind(9)  // nr
	MICRO_WRITE          = MicroKind(10) // nw
	MICRO_STORE_REGISTER = MicroKind(11) // wreg
	MICRO_PERFORM        = MicroKind(12) // perform
	MICRO_PUSH           = MicroKind(13) // ns
	MICRO_POP            = MicroKind(14) // nu
	MICRO_SKIP           = MicroKind(15) // skip
	MICRO_NEXT           = MicroKind(16) // next
	MICRO_RAISE          = MicroKind(17) // raise
	MICRO_MOVEM          = MicroKind(18) // movem
	MICRO_MOVEP          = MicroKind(19) // movep
	MICRO_BEGIN          = MicroKind(20) // begin
	MICRO_FRAME          = MicroKind(21) // frame
	MICRO_ACKNOWLEDGE    = MicroKind(22) // iack
	MICRO_VECTOR         = MicroKind(23) // nv
	MICRO_STOP           = MicroKind(24) // stop
)

// Part selects which portion of an operand a bus micro-op moves.
type Part uint8

//go:generate go tool stringer -linecomment -type=Part
const (
	PART_WORD = Part(0) // w
	PART_BYTE = Part(1) // b
	PART_HIGH = Part(2) // h
	PART_LOW  = Part(3) // l
)

// Operand latch slots.
const (
	SLOT_SOURCE      = 0
	SLOT_DESTINATION = 1
	SLOT_SCRATCH     = 2
	SLOT_COUNT       = 3
)

// Exception frame kinds, the Slot of MICRO_BEGIN.
const (
	FRAME_RESET     = 0 // No frame, supervisor state with interrupts masked.
	FRAME_SHORT     = 1 // Status and program counter.
	FRAME_GROUP0    = 2 // Access information, fault address, opcode, status, program counter.
	FRAME_INTERRUPT = 3 // Short frame, interrupt mask raised.
)

// Exception frame fields, the Slot of MICRO_FRAME.
const (
	FIELD_ACCESS       = 0
	FIELD_ADDRESS_HIGH = 1
	FIELD_ADDRESS_LOW  = 2
	FIELD_OPCODE       = 3
	FIELD_SR           = 4
	FIELD_PC_HIGH      = 5
	FIELD_PC_LOW       = 6
)

// Vector fetch targets, the Slot of MICRO_VECTOR.
const (
	TARGET_HANDLER = 0 // Program counter from the exception vector.
	TARGET_SSP     = 1 // Supervisor stack pointer from reset vector 0.
	TARGET_PC      = 2 // Program counter from reset vector 1.
)

// MicroOp is a single atomic step of a program.
type MicroOp struct {
	Kind MicroKind
	Mode AddrMode // Addressing mode, for address and data micro-ops.
	Slot uint8    // Operand slot, perform step, frame field or target.
	Part Part     // Portion of the operand moved.
	N    uint8    // Idle clocks, skip count, vector, lock flag or operand bytes.
}

// String returns the micro-op in a compact notation.
func (op MicroOp) String() string {
	switch op.Kind {
	case MICRO_IDLE:
		if op.Slot != 0 {
			return "n*"
		}
		return fmt.Sprintf("n%d", op.N)
	case MICRO_READ, MICRO_WRITE, MICRO_PUSH, MICRO_POP, MICRO_VECTOR:
		return op.Kind.String() + op.Part.String()
	case MICRO_SKIP:
		return fmt.Sprintf("skip%d", op.N)
	}
	return op.Kind.String()
}

// busy returns true if the micro-op always invokes the bus.
func (op MicroOp) busy() bool {
	switch op.Kind {
	case MICRO_PREFETCH, MICRO_EXTENSION, MICRO_REFILL, MICRO_READ, MICRO_WRITE,
		MICRO_PUSH, MICRO_POP, MICRO_FRAME, MICRO_ACKNOWLEDGE, MICRO_VECTOR:
		return true
	}
	return false
}

func idle(clocks int) MicroOp {
	return MicroOp{Kind: MICRO_IDLE, N: uint8(clocks)}
}

func skip(count int) MicroOp {
	return MicroOp{Kind: MICRO_SKIP, N: uint8(count)}
}

func raise(vector Vector) MicroOp {
	return MicroOp{Kind: MICRO_RAISE, N: uint8(vector)}
}

func begin(frame int) MicroOp {
	return MicroOp{Kind: MICRO_BEGIN, Slot: uint8(frame)}
}

func frame(field int) MicroOp {
	return MicroOp{Kind: MICRO_FRAME, Slot: uint8(field)}
}

func vector(target int, part Part) MicroOp {
	return MicroOp{Kind: MICRO_VECTOR, Slot: uint8(target), Part: part}
}

var (
	uPerform     = MicroOp{Kind: MICRO_PERFORM}
	uPerformPost = MicroOp{Kind: MICRO_PERFORM, Slot: 1}
	uPrefetch    = MicroOp{Kind: MICRO_PREFETCH}
	uLatch       = MicroOp{Kind: MICRO_LATCH}
	uIdleLatched = MicroOp{Kind: MICRO_IDLE, Slot: 1}
	uNext        = MicroOp{Kind: MICRO_NEXT}
	uRefillIR    = MicroOp{Kind: MICRO_REFILL, Slot: 0}
	uRefillIRC   = MicroOp{Kind: MICRO_REFILL, Slot: 1}
	uPushWord    = MicroOp{Kind: MICRO_PUSH, Part: PART_WORD}
	uPushLow     = MicroOp{Kind: MICRO_PUSH, Part: PART_LOW}
	uPushHigh    = MicroOp{Kind: MICRO_PUSH, Part: PART_HIGH}
	uPopWord     = MicroOp{Kind: MICRO_POP, Part: PART_WORD}
	uPopHigh     = MicroOp{Kind: MICRO_POP, Part: PART_HIGH}
	uPopLow      = MicroOp{Kind: MICRO_POP, Part: PART_LOW}
	uMovem       = MicroOp{Kind: MICRO_MOVEM}
	uMovep       = MicroOp{Kind: MICRO_MOVEP}
	uStop        = MicroOp{Kind: MICRO_STOP}
	uAcknowledge = MicroOp{Kind: MICRO_ACKNOWLEDGE}
)

// Role is the purpose of an operand access program.
type Role uint8

//go:generate go tool stringer -linecomment -type=Role
const (
	ROLE_SOURCE              = Role(0) // src
	ROLE_SOURCE_ADDRESS      = Role(1) // src.ea
	ROLE_SOURCE_JUMP         = Role(2) // src.jump
	ROLE_DESTINATION         = Role(3) // dst
	ROLE_DESTINATION_CHAINED = Role(4) // dst.chained
	ROLE_DESTINATION_ADDRESS = Role(5) // dst.ea
	ROLE_DESTINATION_LOCKED  = Role(6) // dst.locked
	ROLE_STORE               = Role(7) // store
	ROLE_STORE_LOCKED        = Role(8) // store.locked
	ROLE_STORE_MOVE          = Role(9) // store.move
	ROLE_COUNT               = 10
)

// Slot returns the operand latch slot the role acts upon.
func (role Role) Slot() uint8 {
	if role <= ROLE_SOURCE_JUMP {
		return SLOT_SOURCE
	}
	return SLOT_DESTINATION
}

// ProgramRef locates a program in the Store.
type ProgramRef struct {
	Start uint16
	Len   uint16
}

// Empty returns true for a program with no micro-ops.
func (ref ProgramRef) Empty() bool {
	return ref.Len == 0
}

// End returns the index just past the program.
func (ref ProgramRef) End() int {
	return int(ref.Start) + int(ref.Len)
}

type operandKey struct {
	mode AddrMode
	size Size
	role Role
}

// Store is the shared, read-only micro-op program store. Programs are
// de-duplicated: every instruction with the same timing shape references
// the same micro-ops.
type Store struct {
	ops     []MicroOp
	index   map[string]ProgramRef
	operand map[operandKey]ProgramRef

	Reset     ProgramRef // Reset exception.
	Exception ProgramRef // Standard six byte frame exception.
	BusError  ProgramRef // Bus or address error, fourteen byte frame.
	Interrupt ProgramRef // Interrupt acknowledge and six byte frame.
}

// Len returns the total number of micro-ops held.
func (s *Store) Len() int {
	return len(s.ops)
}

// Program returns the micro-ops of a program.
func (s *Store) Program(ref ProgramRef) []MicroOp {
	return s.ops[ref.Start:ref.End()]
}

// Valid returns true if the reference lies within the store.
func (s *Store) Valid(ref ProgramRef) bool {
	return ref.End() <= len(s.ops)
}

// Operand returns the shared program accessing an operand of the given
// mode and size for a role.
func (s *Store) Operand(mode AddrMode, size Size, role Role) (ref ProgramRef, ok bool) {
	ref, ok = s.operand[operandKey{mode: mode, size: size, role: role}]
	return
}

// add appends a program, returning the existing reference for a program
// already held.
func (s *Store) add(ops []MicroOp) (ref ProgramRef) {
	if len(ops) == 0 {
		return
	}

	key := make([]byte, 0, len(ops)*5)
	for _, op := range ops {
		key = append(key, byte(op.Kind), byte(op.Mode), op.Slot, byte(op.Part), op.N)
	}

	ref, ok := s.index[string(key)]
	if ok {
		return
	}

	if len(s.ops)+len(ops) > 0xffff {
		panic(ErrProgramBounds)
	}

	ref = ProgramRef{Start: uint16(len(s.ops)), Len: uint16(len(ops))}
	s.ops = append(s.ops, ops...)
	s.index[string(key)] = ref

	return
}

// reads returns the data micro-ops reading an operand of size.
func reads(mode AddrMode, size Size, slot uint8, locked bool) []MicroOp {
	var n uint8
	if locked {
		n = 1
	}
	op := MicroOp{Kind: MICRO_READ, Mode: mode, Slot: slot, N: n}
	switch size {
	case SIZE_BYTE:
		op.Part = PART_BYTE
		return []MicroOp{op}
	case SIZE_WORD:
		op.Part = PART_WORD
		return []MicroOp{op}
	}

	high, low := op, op
	high.Part = PART_HIGH
	low.Part = PART_LOW
	if mode == MODE_AN_PREDEC {
		return []MicroOp{low, high}
	}
	return []MicroOp{high, low}
}

// writes returns the data micro-ops writing an operand of size. A long
// MOVE writes the high word first, except to -(An). Every other long
// store writes the low word first.
func writes(mode AddrMode, size Size, locked bool, move bool) []MicroOp {
	var n uint8
	if locked {
		n = 1
	}
	op := MicroOp{Kind: MICRO_WRITE, Mode: mode, Slot: SLOT_DESTINATION, N: n}
	switch size {
	case SIZE_BYTE:
		op.Part = PART_BYTE
		return []MicroOp{op}
	case SIZE_WORD:
		op.Part = PART_WORD
		return []MicroOp{op}
	}

	high, low := op, op
	high.Part = PART_HIGH
	low.Part = PART_LOW
	if move && mode != MODE_AN_PREDEC {
		return []MicroOp{high, low}
	}
	return []MicroOp{low, high}
}

// addressing returns the micro-ops forming an effective address. The
// address micro-op carries the operand size for register adjustment.
func addressing(mode AddrMode, size Size, slot uint8, role Role) (ops []MicroOp) {
	ext := MicroOp{Kind: MICRO_EXTENSION, Mode: mode, Slot: slot}
	latch := MicroOp{Kind: MICRO_LATCH, Mode: mode, Slot: slot}
	calc := MicroOp{Kind: MICRO_ADDRESS, Mode: mode, Slot: slot, N: uint8(size.Bytes())}

	last := ext
	if role == ROLE_SOURCE_JUMP {
		last = latch
	}

	switch mode {
	case MODE_AN_INDIRECT, MODE_AN_POSTINC:
		ops = []MicroOp{calc}
	case MODE_AN_PREDEC:
		ops = []MicroOp{calc}
		if role == ROLE_SOURCE || role == ROLE_DESTINATION || role == ROLE_DESTINATION_LOCKED {
			ops = []MicroOp{idle(2), calc}
		}
	case MODE_AN_DISP, MODE_ABS_SHORT, MODE_PC_DISP:
		ops = []MicroOp{last, calc}
	case MODE_AN_INDEX, MODE_PC_INDEX:
		ops = []MicroOp{idle(2), last, calc}
	case MODE_ABS_LONG:
		ops = []MicroOp{ext, last, calc}
	}

	return
}

// operandProgram builds the access program of an operand.
func operandProgram(mode AddrMode, size Size, role Role) (ops []MicroOp, ok bool) {
	slot := role.Slot()
	bytes := uint8(size.Bytes())
	ok = true

	switch mode {
	case MODE_DN, MODE_AN:
		switch role {
		case ROLE_SOURCE, ROLE_DESTINATION, ROLE_DESTINATION_CHAINED, ROLE_DESTINATION_LOCKED:
			ops = []MicroOp{{Kind: MICRO_READ_REGISTER, Mode: mode, Slot: slot}}
		case ROLE_STORE, ROLE_STORE_LOCKED, ROLE_STORE_MOVE:
			ops = []MicroOp{{Kind: MICRO_STORE_REGISTER, Mode: mode, Slot: slot, N: bytes}}
		case ROLE_DESTINATION_ADDRESS:
		default:
			ok = false
		}
		return
	case MODE_IMMEDIATE:
		if role != ROLE_SOURCE && role != ROLE_DESTINATION {
			ok = false
			return
		}
		ext := MicroOp{Kind: MICRO_EXTENSION, Mode: mode, Slot: slot}
		ops = []MicroOp{ext}
		if size == SIZE_LONG {
			ops = append(ops, ext)
		}
		ops = append(ops, MicroOp{Kind: MICRO_IMMEDIATE, Mode: mode, Slot: slot, N: bytes})
		return
	case MODE_QUICK:
		if role != ROLE_SOURCE {
			ok = false
			return
		}
		ops = []MicroOp{{Kind: MICRO_QUICK, Mode: mode, Slot: slot}}
		return
	case MODE_NONE:
		ok = false
		return
	}

	if mode.Program() {
		switch role {
		case ROLE_SOURCE, ROLE_SOURCE_ADDRESS, ROLE_SOURCE_JUMP, ROLE_DESTINATION, ROLE_DESTINATION_ADDRESS:
		default:
			ok = false
			return
		}
	}

	switch role {
	case ROLE_SOURCE, ROLE_DESTINATION, ROLE_DESTINATION_CHAINED:
		ops = append(addressing(mode, size, slot, role), reads(mode, size, slot, false)...)
	case ROLE_DESTINATION_LOCKED:
		ops = append(addressing(mode, size, slot, role), reads(mode, size, slot, true)...)
	case ROLE_SOURCE_ADDRESS, ROLE_DESTINATION_ADDRESS:
		ops = addressing(mode, size, slot, role)
	case ROLE_SOURCE_JUMP:
		if mode == MODE_AN_POSTINC || mode == MODE_AN_PREDEC {
			ok = false
			return
		}
		ops = addressing(mode, size, slot, role)
	case ROLE_STORE:
		ops = writes(mode, size, false, false)
	case ROLE_STORE_LOCKED:
		ops = writes(mode, size, true, false)
	case ROLE_STORE_MOVE:
		ops = writes(mode, size, false, true)
	}

	return
}

var (
	buildOnce   sync.Once
	sharedStore *Store
	decodeTable [0x10000]Instruction
)

// build constructs the program store and the decode table. Any defect is a
// construction error and panics.
func build() {
	store := &Store{
		index:   map[string]ProgramRef{},
		operand: map[operandKey]ProgramRef{},
	}

	for mode := MODE_DN; mode < MODE_COUNT; mode++ {
		for size := SIZE_BYTE; size <= SIZE_LONG; size++ {
			for role := Role(0); role < ROLE_COUNT; role++ {
				ops, ok := operandProgram(mode, size, role)
				if !ok {
					continue
				}
				store.operand[operandKey{mode: mode, size: size, role: role}] = store.add(ops)
			}
		}
	}

	store.Reset = store.add([]MicroOp{
		begin(FRAME_RESET),
		idle(14),
		vector(TARGET_SSP, PART_HIGH), vector(TARGET_SSP, PART_LOW),
		vector(TARGET_PC, PART_HIGH), vector(TARGET_PC, PART_LOW),
		uRefillIR, idle(2), uRefillIRC,
		uNext,
	})

	store.Exception = store.add([]MicroOp{
		idle(4),
		begin(FRAME_SHORT),
		frame(FIELD_PC_LOW), frame(FIELD_SR), frame(FIELD_PC_HIGH),
		vector(TARGET_HANDLER, PART_HIGH), vector(TARGET_HANDLER, PART_LOW),
		uRefillIR, idle(2), uRefillIRC,
		uNext,
	})

	store.BusError = store.add([]MicroOp{
		idle(4),
		begin(FRAME_GROUP0),
		frame(FIELD_PC_LOW), frame(FIELD_PC_HIGH), frame(FIELD_SR), frame(FIELD_OPCODE),
		frame(FIELD_ADDRESS_LOW), frame(FIELD_ADDRESS_HIGH), frame(FIELD_ACCESS),
		vector(TARGET_HANDLER, PART_HIGH), vector(TARGET_HANDLER, PART_LOW),
		uRefillIR, idle(2), uRefillIRC,
		uNext,
	})

	store.Interrupt = store.add([]MicroOp{
		idle(6),
		begin(FRAME_INTERRUPT),
		frame(FIELD_PC_LOW),
		uAcknowledge,
		idle(4),
		frame(FIELD_SR), frame(FIELD_PC_HIGH),
		vector(TARGET_HANDLER, PART_HIGH), vector(TARGET_HANDLER, PART_LOW),
		uRefillIR, idle(2), uRefillIRC,
		uNext,
	})

	b := &builder{store: store}
	for n := range decodeTable {
		opcode := uint16(n)
		inst, ok := b.decode(opcode)
		if !ok {
			inst = b.illegal(opcode)
		}

		progress := false
		for _, ref := range inst.Programs {
			if !store.Valid(ref) {
				panic(errors.Join(ErrProgramBounds, ErrOpcode(opcode)))
			}
			if !ref.Empty() {
				progress = true
			}
		}
		if !progress {
			panic(errors.Join(ErrDecodeCoverage, ErrProgramEmpty, ErrOpcode(opcode)))
		}

		decodeTable[n] = inst
	}

	sharedStore = store
}

// Programs returns the shared micro-op program store.
func Programs() *Store {
	buildOnce.Do(build)
	return sharedStore
}

// Decode returns the descriptor of an opcode. The result is shared and
// must not be modified.
func Decode(opcode uint16) *Instruction {
	buildOnce.Do(build)
	return &decodeTable[opcode]
}
