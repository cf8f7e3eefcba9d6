package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeCoverage(t *testing.T) {
	assert := assert.New(t)

	store := Programs()

	var illegal, invalid, empty, unstable int
	for n := range 0x10000 {
		opcode := uint16(n)
		inst := Decode(opcode)
		if inst != Decode(opcode) {
			unstable++
		}
		if inst.Op == OP_ILLEGAL {
			illegal++
		}

		progress := false
		for _, ref := range inst.Programs {
			if !store.Valid(ref) {
				invalid++
			}
			if !ref.Empty() {
				progress = true
			}
		}
		if !progress {
			empty++
		}
	}

	assert.Equal(0, invalid)
	assert.Equal(0, empty)
	assert.Equal(0, unstable)
	assert.Greater(illegal, 0)
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		opcode     uint16
		op         Operation
		size       Size
		src        Operand
		dst        Operand
		data       uint32
		privileged bool
	}{
		{0x4e71, OP_NOP, SIZE_BYTE, Operand{}, Operand{}, 0, false},
		{0x4afc, OP_ILLEGAL, SIZE_BYTE, Operand{}, Operand{}, 0, false},
		{0xa000, OP_LINE_A, SIZE_BYTE, Operand{}, Operand{}, 0, false},
		{0xf000, OP_LINE_F, SIZE_BYTE, Operand{}, Operand{}, 0, false},
		{0x7001, OP_MOVE, SIZE_LONG, quick(), dn(0), 1, false},
		{0x72ff, OP_MOVE, SIZE_LONG, quick(), dn(1), 0xffffffff, false},
		{0x7100, OP_ILLEGAL, SIZE_BYTE, Operand{}, Operand{}, 0, false},
		{0x3039, OP_MOVE, SIZE_WORD, Operand{Mode: MODE_ABS_LONG}, dn(0), 0, false},
		{0x1048, OP_ILLEGAL, SIZE_BYTE, Operand{}, Operand{}, 0, false},
		{0x3248, OP_MOVEA, SIZE_WORD, an(0), an(1), 0, false},
		{0x46fc, OP_MOVE_TO_SR, SIZE_WORD, immediate(), Operand{}, 0, true},
		{0x44fc, OP_MOVE_TO_CCR, SIZE_WORD, immediate(), Operand{}, 0, false},
		{0x4e72, OP_STOP, SIZE_BYTE, Operand{}, Operand{}, 0, true},
		{0x4e70, OP_RESET, SIZE_BYTE, Operand{}, Operand{}, 0, true},
		{0x4e73, OP_RTE, SIZE_BYTE, Operand{}, Operand{}, 0, true},
		{0x4e6e, OP_MOVE_USP, SIZE_LONG, Operand{}, an(6), 1, true},
		{0x5248, OP_ADDA, SIZE_LONG, quick(), an(0), 1, false},
		{0x5f80, OP_SUB, SIZE_LONG, quick(), dn(0), 7, false},
		{0x5008, OP_ILLEGAL, SIZE_BYTE, Operand{}, Operand{}, 0, false},
		{0xc0c1, OP_MULU, SIZE_LONG, dn(1), dn(0), 0, false},
		{0x81c1, OP_DIVS, SIZE_LONG, dn(1), dn(0), 0, false},
		{0xe188, OP_LSL, SIZE_LONG, quick(), dn(0), 8, false},
		{0xe260, OP_ASR, SIZE_WORD, dn(1), dn(0), 0, false},
		{0xe0d0, OP_ASR, SIZE_WORD, quick(), Operand{Mode: MODE_AN_INDIRECT}, 1, false},
		{0x0108, OP_MOVEP, SIZE_WORD, Operand{Mode: MODE_AN_DISP}, dn(0), 0, false},
		{0x01c8, OP_MOVEP, SIZE_LONG, Operand{Mode: MODE_AN_DISP}, dn(0), 1, false},
		{0xc141, OP_EXG, SIZE_LONG, dn(0), dn(1), 0, false},
		{0xc188, OP_EXG, SIZE_LONG, dn(0), an(0), 0, false},
		{0x4840, OP_SWAP, SIZE_LONG, Operand{}, dn(0), 0, false},
		{0x4e45, OP_TRAP, SIZE_BYTE, Operand{}, Operand{}, 5, false},
		{0x4ec0, OP_ILLEGAL, SIZE_BYTE, Operand{}, Operand{}, 0, false},
		{0x4ed0, OP_JMP, SIZE_LONG, Operand{Mode: MODE_AN_INDIRECT}, Operand{}, 0, false},
		{0x0800, OP_BTST, SIZE_LONG, immediate(), dn(0), 0, false},
		{0x0810, OP_BTST, SIZE_BYTE, immediate(), Operand{Mode: MODE_AN_INDIRECT}, 0, false},
		{0x013c, OP_BTST, SIZE_BYTE, dn(0), immediate(), 0, false},
		{0x003c, OP_ORI_CCR, SIZE_BYTE, immediate(), Operand{}, 0, false},
		{0x007c, OP_ORI_SR, SIZE_WORD, immediate(), Operand{}, 0, true},
		{0xb308, OP_CMP, SIZE_BYTE, Operand{Mode: MODE_AN_POSTINC}, Operand{Mode: MODE_AN_POSTINC, Reg: 1}, 0, false},
		{0xb340, OP_EOR, SIZE_WORD, dn(1), dn(0), 0, false},
		{0xc300, OP_ABCD, SIZE_BYTE, dn(0), dn(1), 0, false},
		{0x8308, OP_SBCD, SIZE_BYTE, Operand{Mode: MODE_AN_PREDEC}, Operand{Mode: MODE_AN_PREDEC, Reg: 1}, 0, false},
		{0xd380, OP_ADDX, SIZE_LONG, dn(0), dn(1), 0, false},
		{0x48e7, OP_MOVEM, SIZE_LONG, immediate(), Operand{Mode: MODE_AN_PREDEC, Reg: 7}, 0, false},
		{0x4cdf, OP_MOVEM, SIZE_LONG, immediate(), Operand{Mode: MODE_AN_POSTINC, Reg: 7}, 1, false},
		{0x4ac0, OP_TAS, SIZE_BYTE, Operand{}, dn(0), 0, false},
		{0x57c8, OP_DBCC, SIZE_WORD, Operand{}, dn(0), uint32(CC_EQ), false},
		{0x6602, OP_BCC, SIZE_BYTE, Operand{}, Operand{}, uint32(CC_NE), false},
		{0x6100, OP_BSR, SIZE_WORD, Operand{}, Operand{}, 0, false},
	}

	for _, entry := range table {
		inst := Decode(entry.opcode)
		name := entry.op.String()
		assert.Equal(entry.op, inst.Op, "%04x", entry.opcode)
		if entry.op == OP_ILLEGAL {
			continue
		}
		assert.Equal(entry.size, inst.Size, name)
		assert.Equal(entry.src, inst.Src, name)
		assert.Equal(entry.dst, inst.Dst, name)
		assert.Equal(entry.data, inst.Data, name)
		assert.Equal(entry.privileged, inst.Privileged, name)
	}
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	table := map[uint16]string{
		0x4e71: "nop",
		0x7001: "move.l #q,d0",
		0xd150: "add.w d0,(a0)",
		0x6602: "bne.b",
		0x51c8: "dbf.w,d0",
		0x3039: "move.w abs.l,d0",
		0x4afc: "illegal",
	}

	for opcode, text := range table {
		assert.Equal(text, Decode(opcode).String(), "%04x", opcode)
	}
}

func TestProgramShared(t *testing.T) {
	assert := assert.New(t)

	// Instructions that differ only in register share programs.
	assert.Equal(Decode(0x3039).Programs, Decode(0x3239).Programs)
	assert.Equal(Decode(0xd280).Programs, Decode(0xd481).Programs)

	// Sizes differ in shape.
	assert.NotEqual(Decode(0x3010).Programs, Decode(0x2010).Programs)
}

func TestOperandProgram(t *testing.T) {
	assert := assert.New(t)

	store := Programs()

	kinds := func(ref ProgramRef) (list []MicroKind) {
		for _, op := range store.Program(ref) {
			list = append(list, op.Kind)
		}
		return
	}

	table := []struct {
		name  string
		mode  AddrMode
		size  Size
		role  Role
		kinds []MicroKind
	}{
		{"abs.l", MODE_ABS_LONG, SIZE_WORD, ROLE_SOURCE,
			[]MicroKind{MICRO_EXTENSION, MICRO_EXTENSION, MICRO_ADDRESS, MICRO_READ}},
		{"-(an)", MODE_AN_PREDEC, SIZE_WORD, ROLE_SOURCE,
			[]MicroKind{MICRO_IDLE, MICRO_ADDRESS, MICRO_READ}},
		{"-(an).l", MODE_AN_PREDEC, SIZE_LONG, ROLE_SOURCE,
			[]MicroKind{MICRO_IDLE, MICRO_ADDRESS, MICRO_READ, MICRO_READ}},
		{"-(an) chained", MODE_AN_PREDEC, SIZE_BYTE, ROLE_DESTINATION_CHAINED,
			[]MicroKind{MICRO_ADDRESS, MICRO_READ}},
		{"d8(an,xn)", MODE_AN_INDEX, SIZE_BYTE, ROLE_SOURCE,
			[]MicroKind{MICRO_IDLE, MICRO_EXTENSION, MICRO_ADDRESS, MICRO_READ}},
		{"#imm.l", MODE_IMMEDIATE, SIZE_LONG, ROLE_SOURCE,
			[]MicroKind{MICRO_EXTENSION, MICRO_EXTENSION, MICRO_IMMEDIATE}},
		{"d16(pc) jump", MODE_PC_DISP, SIZE_LONG, ROLE_SOURCE_JUMP,
			[]MicroKind{MICRO_LATCH, MICRO_ADDRESS}},
		{"(an).l store", MODE_AN_INDIRECT, SIZE_LONG, ROLE_STORE,
			[]MicroKind{MICRO_WRITE, MICRO_WRITE}},
		{"dn", MODE_DN, SIZE_LONG, ROLE_SOURCE,
			[]MicroKind{MICRO_READ_REGISTER}},
	}

	for _, entry := range table {
		ref, ok := store.Operand(entry.mode, entry.size, entry.role)
		assert.True(ok, entry.name)
		assert.Equal(entry.kinds, kinds(ref), entry.name)
	}

	// Long -(An) transfers the low word first.
	ref, _ := store.Operand(MODE_AN_PREDEC, SIZE_LONG, ROLE_SOURCE)
	ops := store.Program(ref)
	assert.Equal(PART_LOW, ops[2].Part)
	assert.Equal(PART_HIGH, ops[3].Part)

	// Long stores write the low word first, but for a MOVE not to -(An).
	parts := func(mode AddrMode, role Role) (list []Part) {
		ref, _ := store.Operand(mode, SIZE_LONG, role)
		for _, op := range store.Program(ref) {
			list = append(list, op.Part)
		}
		return
	}
	assert.Equal([]Part{PART_LOW, PART_HIGH}, parts(MODE_AN_INDIRECT, ROLE_STORE))
	assert.Equal([]Part{PART_LOW, PART_HIGH}, parts(MODE_AN_PREDEC, ROLE_STORE))
	assert.Equal([]Part{PART_HIGH, PART_LOW}, parts(MODE_AN_INDIRECT, ROLE_STORE_MOVE))
	assert.Equal([]Part{PART_HIGH, PART_LOW}, parts(MODE_ABS_LONG, ROLE_STORE_MOVE))
	assert.Equal([]Part{PART_LOW, PART_HIGH}, parts(MODE_AN_PREDEC, ROLE_STORE_MOVE))

	// Program space is never written, and never locked.
	_, ok := store.Operand(MODE_PC_DISP, SIZE_WORD, ROLE_STORE)
	assert.False(ok)
	_, ok = store.Operand(MODE_PC_DISP, SIZE_BYTE, ROLE_DESTINATION_LOCKED)
	assert.False(ok)
	_, ok = store.Operand(MODE_QUICK, SIZE_LONG, ROLE_DESTINATION)
	assert.False(ok)
}

func TestMicroOpString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("n4", idle(4).String())
	assert.Equal("n*", uIdleLatched.String())
	assert.Equal("nsl", uPushLow.String())
	assert.Equal("skip3", skip(3).String())
	assert.Equal("np", uPrefetch.String())
}
