package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReset(t *testing.T) {
	assert := assert.New(t)

	b := newTestBus()
	b.long(0, 0x8000)
	b.long(4, 0x1000)
	b.load(0x1000, 0x4e71, 0x4e71, 0x4e71)

	c := New(b)
	assert.Equal(STATE_RESET, c.State())

	c.RunFor(Clocks(39))
	assert.Equal(STATE_RESET, c.State())

	c.RunFor(Clocks(1))
	assert.Equal(Clocks(40), c.Elapsed())
	assert.Equal([]BusOp{
		BUS_IDLE,
		BUS_VECTOR_READ, BUS_VECTOR_READ, BUS_VECTOR_READ, BUS_VECTOR_READ,
		BUS_OPCODE_FETCH, BUS_IDLE, BUS_PROGRAM_READ,
	}, b.ops())
	assert.Equal(Clocks(14), b.log[0].Length)
	assert.Equal(uint32(0x1000), b.log[5].Address)
	assert.Equal(uint32(0x1002), b.log[7].Address)

	ssp, _ := c.Register(REG_SSP)
	pc, _ := c.Register(REG_PC)
	sr, _ := c.Register(REG_SR)
	assert.Equal(uint32(0x8000), ssp)
	assert.Equal(uint32(0x1000), pc)
	assert.Equal(uint32(0x2700), sr)
	assert.Equal(STATE_PERFORM, c.State())

	_, inst := c.Instruction()
	assert.Equal(OP_NOP, inst.Op)
}

func TestResetAsserted(t *testing.T) {
	assert := assert.New(t)

	c, b := newTestCPU(0x7001, 0x7002, 0x7003)
	c.SetRegister(REG_SR, 0x0000)
	c.RunFor(Clocks(6))

	c.Reset()
	b.log = nil
	c.RunFor(Clocks(40))

	assert.Equal(BUS_IDLE, b.log[0].Op)
	sr, _ := c.Register(REG_SR)
	assert.Equal(uint32(0x2700), sr)
	pc, _ := c.Register(REG_PC)
	assert.Equal(uint32(0x1000), pc)
}

func TestNop(t *testing.T) {
	assert := assert.New(t)

	c, b := newTestCPU(0x4e71, 0x4e71)
	c.RunFor(Clocks(4))

	assert.Equal(Clocks(4), c.Elapsed())
	assert.Equal([]BusOp{BUS_OPCODE_FETCH}, b.ops())
	assert.Equal(uint32(0x1004), b.log[0].Address)
	assert.Equal(FC_SUPER_PROGRAM, b.log[0].Function)
	assert.Empty(b.data())

	pc, _ := c.Register(REG_PC)
	assert.Equal(uint32(0x1002), pc)
}

func TestBudget(t *testing.T) {
	assert := assert.New(t)

	c, b := newTestCPU(0x4e71, 0x4e71, 0x4e71)

	// Not enough for a bus cycle.
	c.RunFor(Clocks(3))
	assert.Empty(b.log)
	assert.Equal(HalfCycles(0), c.Elapsed())
	assert.Equal(Clocks(3), c.Remaining())

	c.RunFor(Clocks(1))
	assert.Len(b.log, 1)
	assert.Equal(Clocks(4), c.Elapsed())
	assert.Equal(HalfCycles(0), c.Remaining())

	// Delays overrun the budget, and are repaid.
	c2, b2 := newTestCPU(0x3010)
	b2.delay = 4
	c2.SetRegister(REG_A0, 0x3000)
	c2.RunFor(Clocks(4))
	assert.Equal(HalfCycles(-4), c2.Remaining())
	c2.RunFor(Clocks(2))
	assert.Len(b2.log, 1)
	assert.Equal(HalfCycles(0), c2.Remaining())
}

func TestProgramShape(t *testing.T) {
	assert := assert.New(t)

	// MOVE.W $00002000,D0
	c, b := newTestCPU(0x3039, 0x0000, 0x2000)
	b.load(0x2000, 0xbeef)
	c.RunFor(Clocks(16))

	assert.Equal([]BusOp{BUS_PROGRAM_READ, BUS_PROGRAM_READ, BUS_READ, BUS_OPCODE_FETCH}, b.ops())
	assert.Equal(uint32(0x1004), b.log[0].Address)
	assert.Equal(uint32(0x1006), b.log[1].Address)
	assert.Equal(uint32(0x2000), b.log[2].Address)
	assert.Equal(FC_SUPER_DATA, b.log[2].Function)
	assert.Equal(uint32(0x1008), b.log[3].Address)

	d0, _ := c.Register(REG_D0)
	assert.Equal(uint32(0xbeef), d0)
	pc, _ := c.Register(REG_PC)
	assert.Equal(uint32(0x1006), pc)
	sr, _ := c.Register(REG_SR)
	assert.Equal(uint32(0x2708), sr)

	// MOVE.W -(A0),D1
	c, b = newTestCPU(0x3220)
	b.load(0x3000, 0x1234)
	c.SetRegister(REG_A0, 0x3002)
	c.RunFor(Clocks(10))

	assert.Equal([]BusOp{BUS_IDLE, BUS_READ, BUS_OPCODE_FETCH}, b.ops())
	assert.Equal(Clocks(2), b.log[0].Length)
	assert.Equal(uint32(0x3000), b.log[1].Address)
	a0, _ := c.Register(REG_A0)
	assert.Equal(uint32(0x3000), a0)
	d1, _ := c.Register(REG_D1)
	assert.Equal(uint32(0x1234), d1)
}

func TestTiming(t *testing.T) {
	assert := assert.New(t)

	stack := func(c *CPU, b *testBus) {
		b.long(0x8000, 0x1100)
	}

	table := []struct {
		name    string
		program []uint16
		regs    map[RegisterID]uint32
		setup   func(c *CPU, b *testBus)
		clocks  int
	}{
		{"nop", []uint16{0x4e71}, nil, nil, 4},
		{"moveq", []uint16{0x7001}, nil, nil, 4},
		{"move.l d0,d1", []uint16{0x2200}, nil, nil, 4},
		{"move.w (a0),d1", []uint16{0x3210}, map[RegisterID]uint32{REG_A0: 0x3000}, nil, 8},
		{"move.l (a0),d1", []uint16{0x2210}, map[RegisterID]uint32{REG_A0: 0x3000}, nil, 12},
		{"move.l d0,(a1)", []uint16{0x2280}, map[RegisterID]uint32{REG_A1: 0x3000}, nil, 12},
		{"add.l d0,d1", []uint16{0xd280}, nil, nil, 8},
		{"add.l (a0),d1", []uint16{0xd290}, map[RegisterID]uint32{REG_A0: 0x3000}, nil, 14},
		{"add.w d0,(a0)", []uint16{0xd150}, map[RegisterID]uint32{REG_A0: 0x3000}, nil, 12},
		{"addq.w #1,d0", []uint16{0x5240}, nil, nil, 4},
		{"addq.l #1,d0", []uint16{0x5280}, nil, nil, 8},
		{"addq.w #1,a0", []uint16{0x5248}, nil, nil, 8},
		{"adda.w d0,a0", []uint16{0xd0c0}, nil, nil, 8},
		{"adda.l d0,a0", []uint16{0xd1c0}, nil, nil, 8},
		{"cmp.l d0,d1", []uint16{0xb280}, nil, nil, 6},
		{"lea (a0),a1", []uint16{0x43d0}, nil, nil, 4},
		{"lea 8(a0,d0.w),a1", []uint16{0x43f0, 0x0008}, nil, nil, 12},
		{"pea (a0)", []uint16{0x4850}, nil, nil, 12},
		{"jmp (a0)", []uint16{0x4ed0}, map[RegisterID]uint32{REG_A0: 0x2000}, nil, 8},
		{"jsr (a0)", []uint16{0x4e90}, map[RegisterID]uint32{REG_A0: 0x2000}, nil, 16},
		{"bra.b", []uint16{0x6002}, nil, nil, 10},
		{"bne.b not taken", []uint16{0x6602}, map[RegisterID]uint32{REG_SR: 0x2704}, nil, 8},
		{"bra.w", []uint16{0x6000, 0x0004}, nil, nil, 10},
		{"bne.w not taken", []uint16{0x6600, 0x0004}, map[RegisterID]uint32{REG_SR: 0x2704}, nil, 12},
		{"bsr.b", []uint16{0x6102}, nil, nil, 18},
		{"dbra taken", []uint16{0x51c8, 0x0004}, map[RegisterID]uint32{REG_D0: 5}, nil, 10},
		{"dbra expired", []uint16{0x51c8, 0x0004}, nil, nil, 14},
		{"dbeq true", []uint16{0x57c8, 0x0004}, map[RegisterID]uint32{REG_SR: 0x2704}, nil, 12},
		{"rts", []uint16{0x4e75}, nil, stack, 16},
		{"link a6,#-4", []uint16{0x4e56, 0xfffc}, nil, nil, 16},
		{"unlk a6", []uint16{0x4e5e}, map[RegisterID]uint32{REG_A6: 0x7000}, nil, 12},
		{"clr.l d0", []uint16{0x4280}, nil, nil, 6},
		{"clr.w (a0)", []uint16{0x4250}, map[RegisterID]uint32{REG_A0: 0x3000}, nil, 12},
		{"swap d0", []uint16{0x4840}, nil, nil, 4},
		{"ext.w d0", []uint16{0x4880}, nil, nil, 4},
		{"exg d0,d1", []uint16{0xc141}, nil, nil, 6},
		{"lsl.w #1,d0", []uint16{0xe348}, nil, nil, 8},
		{"lsl.l #8,d0", []uint16{0xe188}, nil, nil, 24},
		{"asr.w d1,d0", []uint16{0xe260}, map[RegisterID]uint32{REG_D1: 3}, nil, 12},
		{"mulu zero", []uint16{0xc0c1}, nil, nil, 38},
		{"mulu ones", []uint16{0xc0c1}, map[RegisterID]uint32{REG_D1: 0xffff}, nil, 70},
		{"muls zero", []uint16{0xc1c1}, nil, nil, 38},
		{"divu overflow", []uint16{0x80c1}, map[RegisterID]uint32{REG_D0: 0x10000, REG_D1: 1}, nil, 10},
		{"btst #3,d0", []uint16{0x0800, 0x0003}, nil, nil, 10},
		{"bset d1,d0", []uint16{0x03c0}, map[RegisterID]uint32{REG_D1: 3}, nil, 6},
		{"bset d1,d0 high", []uint16{0x03c0}, map[RegisterID]uint32{REG_D1: 20}, nil, 8},
		{"abcd d0,d1", []uint16{0xc300}, nil, nil, 6},
		{"st d0", []uint16{0x50c0}, nil, nil, 6},
		{"sf d0", []uint16{0x51c0}, nil, nil, 4},
		{"move #imm,sr", []uint16{0x46fc, 0x2700}, nil, nil, 16},
		{"ori #imm,ccr", []uint16{0x003c, 0x0000}, nil, nil, 20},
		{"movem.l d0-d1,-(a7)", []uint16{0x48e7, 0xc000}, nil, nil, 24},
		{"movem.l (a7)+,d0-d1", []uint16{0x4cdf, 0x0003}, nil, nil, 28},
		{"movep.w 0(a0),d0", []uint16{0x0108, 0x0000}, map[RegisterID]uint32{REG_A0: 0x3000}, nil, 16},
		{"reset", []uint16{0x4e70}, nil, nil, 132},
		{"trap #0", []uint16{0x4e40}, nil, nil, 34},
		{"illegal", []uint16{0x4afc}, nil, nil, 34},
	}

	for _, entry := range table {
		c, b := newTestCPU(entry.program...)
		for id, value := range entry.regs {
			c.SetRegister(id, value)
		}
		if entry.setup != nil {
			entry.setup(c, b)
		}
		assert.Equal(entry.clocks, clocks(c), entry.name)
	}
}

func TestMovem(t *testing.T) {
	assert := assert.New(t)

	// MOVEM.L D0-D1/A0,-(A7)
	c, b := newTestCPU(0x48e7, 0xc080)
	c.SetRegister(REG_D0, 0x11112222)
	c.SetRegister(REG_D1, 0x33334444)
	c.SetRegister(REG_A0, 0x55556666)
	clocks(c)

	a7, _ := c.Register(REG_A7)
	assert.Equal(uint32(0x8000-12), a7)
	assert.Equal(uint16(0x1111), b.word(0x7ff4))
	assert.Equal(uint16(0x2222), b.word(0x7ff6))
	assert.Equal(uint16(0x3333), b.word(0x7ff8))
	assert.Equal(uint16(0x4444), b.word(0x7ffa))
	assert.Equal(uint16(0x5555), b.word(0x7ffc))
	assert.Equal(uint16(0x6666), b.word(0x7ffe))

	// Highest address written first, low word first.
	writes := b.data()
	assert.Equal(uint32(0x7ffe), writes[0].Address)
	assert.Equal(uint16(0x6666), writes[0].Value)

	// MOVEM.W (A0)+,D2/A1
	c, b = newTestCPU(0x4c98, 0x0204)
	b.load(0x3000, 0x8001, 0x1234)
	c.SetRegister(REG_A0, 0x3000)
	clocks(c)

	d2, _ := c.Register(REG_D2)
	a1, _ := c.Register(REG_A1)
	a0, _ := c.Register(REG_A0)
	assert.Equal(uint32(0xffff8001), d2)
	assert.Equal(uint32(0x00001234), a1)
	assert.Equal(uint32(0x3004), a0)

	// The extra read past the last register.
	reads := b.data()
	assert.Len(reads, 3)
	assert.Equal(uint32(0x3004), reads[2].Address)
}

func TestMovep(t *testing.T) {
	assert := assert.New(t)

	// MOVEP.L D0,1(A0)
	c, b := newTestCPU(0x01c8, 0x0001)
	c.SetRegister(REG_D0, 0x12345678)
	c.SetRegister(REG_A0, 0x3000)
	clocks(c)

	writes := b.data()
	assert.Len(writes, 4)
	for n, want := range []uint8{0x12, 0x34, 0x56, 0x78} {
		assert.Equal(uint32(0x3001+2*n), writes[n].Address)
		assert.Equal(SELECT_LOWER, writes[n].Select)
		assert.Equal(want, b.mem[0x3001+2*n])
	}

	// MOVEP.W 0(A0),D1
	c, b = newTestCPU(0x0308, 0x0000)
	b.load(0x3000, 0xab00, 0xcd00)
	c.SetRegister(REG_D1, 0xffff0000)
	c.SetRegister(REG_A0, 0x3000)
	clocks(c)

	d1, _ := c.Register(REG_D1)
	assert.Equal(uint32(0xffffabcd), d1)
}

func TestWaitStates(t *testing.T) {
	assert := assert.New(t)

	// MOVE.W $00002000,D0
	program := []uint16{0x3039, 0x0000, 0x2000}

	c, b := newTestCPU(program...)
	b.load(0x2000, 0xbeef)
	b.wait = 3
	c.RunFor(Clocks(12) + 1)
	assert.Equal(STATE_WAIT_FOR_DTACK, c.State())

	c.RunFor(Clocks(4) + 2)
	assert.Equal(Clocks(16)+3, c.Elapsed())
	assert.Equal([]BusOp{BUS_PROGRAM_READ, BUS_PROGRAM_READ, BUS_READ, BUS_OPCODE_FETCH}, b.ops())
	d0, _ := c.Register(REG_D0)
	assert.Equal(uint32(0xbeef), d0)

	c, b = newTestCPU(program...)
	b.load(0x2000, 0xbeef)
	b.delay = 4
	c.RunFor(Clocks(18))
	assert.Equal(Clocks(18), c.Elapsed())
	assert.Len(b.log, 4)
}

func TestResumable(t *testing.T) {
	assert := assert.New(t)

	program := []uint16{
		0x7005,         // MOVEQ #5,D0
		0x41f8, 0x3000, // LEA $3000.W,A0
		0x20c0,         // MOVE.L D0,(A0)+
		0xd0a0,         // ADD.L -(A0),D0
		0xc0c0,         // MULU D0,D0
		0x51c9, 0xfff8, // DBRA D1,$1006
	}
	budget := Clocks(300)

	for _, wait := range []int{0, 3} {
		whole, wb := newTestCPU(program...)
		whole.SetRegister(REG_D1, 3)
		wb.wait = wait
		whole.RunFor(budget)

		for split := HalfCycles(0); split <= budget; split += 7 {
			c, b := newTestCPU(program...)
			c.SetRegister(REG_D1, 3)
			b.wait = wait
			c.RunFor(split)
			c.RunFor(budget - split)

			assert.Equal(wb.log, b.log, "split %d", split)
			assert.Equal(whole.Snapshot(), c.Snapshot(), "split %d", split)
		}

		// One half-cycle at a time.
		c, b := newTestCPU(program...)
		c.SetRegister(REG_D1, 3)
		b.wait = wait
		for range budget {
			c.RunFor(1)
		}
		assert.Equal(wb.log, b.log)
		assert.Equal(whole.Snapshot(), c.Snapshot())
	}
}

func TestInterruptLevel(t *testing.T) {
	assert := assert.New(t)

	c, _ := newTestCPU(0x4e71)
	assert.NoError(c.SetInterruptLevel(7))
	assert.Equal(uint8(7), c.InterruptLevel())
	assert.ErrorIs(c.SetInterruptLevel(8), ErrInterruptSpan)
	assert.Equal(uint8(7), c.InterruptLevel())
}

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	c, _ := newTestCPU(0x4e71)

	assert.NoError(c.SetRegister(REG_USP, 0x6000))
	usp, _ := c.Register(REG_USP)
	assert.Equal(uint32(0x6000), usp)

	// Leaving supervisor mode swaps the stack pointers.
	c.SetRegister(REG_SR, 0x0000)
	a7, _ := c.Register(REG_A7)
	ssp, _ := c.Register(REG_SSP)
	assert.Equal(uint32(0x6000), a7)
	assert.Equal(uint32(0x8000), ssp)

	// Unimplemented status bits read as zero.
	c.SetRegister(REG_SR, 0xffff)
	sr, _ := c.Register(REG_SR)
	assert.Equal(uint32(SR_VALID), sr)

	_, err := c.Register(RegisterID(20))
	assert.ErrorIs(err, ErrRegisterID)
	assert.ErrorIs(c.SetRegister(RegisterID(-1), 0), ErrRegisterID)
}

func TestResetInstruction(t *testing.T) {
	assert := assert.New(t)

	c, b := newTestCPU(0x4e70)
	clocks(c)
	assert.Equal(1, b.reset)
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range Defines() {
		defines[key] = value
	}

	assert.Equal("8", defines["BUS_CYCLE_COST"])
	assert.Equal("25", defines["VECTOR_AUTOVECTOR"])
	assert.Equal("0xffffff", defines["ADDRESS_MASK"])
}
