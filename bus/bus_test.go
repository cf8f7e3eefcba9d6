package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mc68k/cpu"
)

// newSystem returns a processor at an instruction boundary, with 64KiB of
// RAM holding the program at 0x1000 followed by NOPs, the stack at 0x8000,
// and every exception vector pointing at 0x4000. The RAM is wrapped by
// the device returned by wrap, if any.
func newSystem(wrap func(cpu.Bus) cpu.Bus, program ...uint16) (c *cpu.CPU, m *Map, rec *Recorder, ram *Memory) {
	ram = NewMemory(0, 0x10000)
	for n := range uint32(0x800) {
		ram.SetWord(0x1000+2*n, 0x4e71)
		ram.SetWord(0x4000+2*n, 0x4e71)
	}
	for v := range uint32(256) {
		ram.SetLong(v*4, 0x4000)
	}
	ram.SetLong(0, 0x8000)
	ram.SetLong(4, 0x1000)
	for n, word := range program {
		ram.SetWord(0x1000+2*uint32(n), word)
	}

	var device cpu.Bus = ram
	if wrap != nil {
		device = wrap(ram)
	}

	m = &Map{}
	m.Add("ram", 0, ram.Size(), device)
	rec = &Recorder{Bus: m}

	c = cpu.New(rec)
	c.SetRegister(cpu.REG_SSP, 0x8000)
	c.SetRegister(cpu.REG_PC, 0x1000)
	c.SetPrefetch(ram.Word(0x1000), ram.Word(0x1002))
	return
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range Defines() {
		defines[key] = value
	}
	assert.Equal("0xffff", defines["OPEN_BUS_VALUE"])
	assert.Equal("0x1000000", defines["ADDRESS_SPACE"])
}

func TestSystemReset(t *testing.T) {
	assert := assert.New(t)

	c, _, rec, _ := newSystem(nil)
	c.Reset()
	c.RunFor(cpu.Clocks(40))

	assert.Equal([]cpu.BusOp{
		cpu.BUS_IDLE,
		cpu.BUS_VECTOR_READ, cpu.BUS_VECTOR_READ, cpu.BUS_VECTOR_READ, cpu.BUS_VECTOR_READ,
		cpu.BUS_OPCODE_FETCH, cpu.BUS_IDLE, cpu.BUS_PROGRAM_READ,
	}, rec.Ops())

	pc, _ := c.Register(cpu.REG_PC)
	sp, _ := c.Register(cpu.REG_A7)
	assert.Equal(uint32(0x1000), pc)
	assert.Equal(uint32(0x8000), sp)
}

func TestSystemMove(t *testing.T) {
	assert := assert.New(t)

	// MOVE.W $2000,D0 ; MOVE.W D0,$2002 ; MOVE.B D0,$2005
	c, _, rec, ram := newSystem(nil, 0x3039, 0x0000, 0x2000, 0x33c0, 0x0000, 0x2002, 0x13c0, 0x0000, 0x2005)
	ram.SetWord(0x2000, 0x1234)

	c.RunFor(cpu.Clocks(16 + 20 + 20))

	d0, _ := c.Register(cpu.REG_D0)
	assert.Equal(uint32(0x1234), d0)
	assert.Equal(uint16(0x1234), ram.Word(0x2002))
	assert.Equal(uint16(0x0034), ram.Word(0x2004))
	assert.Equal(3, rec.Counts[cpu.BUS_READ]+rec.Counts[cpu.BUS_WRITE])
}
