package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mc68k/cpu"
)

func TestRecorder(t *testing.T) {
	assert := assert.New(t)

	rec := &Recorder{Bus: NewMemory(0, 0x100), Limit: 2}

	for n := range 3 {
		tx := cpu.Transaction{Op: cpu.BUS_WRITE, Address: uint32(2 * n), Select: cpu.SELECT_WORD, Value: uint16(n)}
		rec.Perform(&tx)
	}
	tx := cpu.Transaction{Op: cpu.BUS_READ, Address: 2, Select: cpu.SELECT_WORD}
	rec.Perform(&tx)

	assert.Len(rec.Log, 2)
	assert.Equal(uint32(4), rec.Log[0].Address)
	assert.Equal(uint16(1), rec.Log[1].Value)
	assert.Equal(3, rec.Counts[cpu.BUS_WRITE])
	assert.Equal(1, rec.Counts[cpu.BUS_READ])

	// Memory never holds off the acknowledge.
	assert.Equal(cpu.RESPONSE_DTACK, rec.Poll(&tx))

	rec.Clear()
	assert.Empty(rec.Log)
	assert.Empty(rec.Counts)
}

func TestRecorderOrder(t *testing.T) {
	assert := assert.New(t)

	type access struct {
		op      cpu.BusOp
		address uint32
	}

	fetch := access{cpu.BUS_OPCODE_FETCH, 0x1004}

	table := []struct {
		name    string
		opcode  uint16
		clocks  int
		written uint32
		order   []access
	}{
		// A MOVE to -(An) prefetches before writing, low word first.
		{"move.w d0,-(a0)", 0x3100, 8, 0x2ffe,
			[]access{fetch, {cpu.BUS_WRITE, 0x2ffe}}},
		{"move.l d0,-(a0)", 0x2100, 12, 0x2ffc,
			[]access{fetch, {cpu.BUS_WRITE, 0x2ffe}, {cpu.BUS_WRITE, 0x2ffc}}},
		// Any other long MOVE writes the high word first.
		{"move.l d0,(a0)", 0x2080, 12, 0x3000,
			[]access{{cpu.BUS_WRITE, 0x3000}, {cpu.BUS_WRITE, 0x3002}, fetch}},
		// Read-modify-write writes the low word first.
		{"add.l d0,(a0)", 0xd190, 20, 0x3000,
			[]access{{cpu.BUS_READ, 0x3000}, {cpu.BUS_READ, 0x3002}, fetch,
				{cpu.BUS_WRITE, 0x3002}, {cpu.BUS_WRITE, 0x3000}}},
		{"clr.l (a0)", 0x4290, 20, 0x3000,
			[]access{{cpu.BUS_READ, 0x3000}, {cpu.BUS_READ, 0x3002}, fetch,
				{cpu.BUS_WRITE, 0x3002}, {cpu.BUS_WRITE, 0x3000}}},
	}

	for _, entry := range table {
		c, _, rec, ram := newSystem(nil, entry.opcode)
		c.SetRegister(cpu.REG_D0, 0x12345678)
		c.SetRegister(cpu.REG_A0, 0x3000)
		c.RunFor(cpu.Clocks(entry.clocks))

		var order []access
		for _, tx := range rec.Log {
			if tx.Op == cpu.BUS_IDLE {
				continue
			}
			order = append(order, access{tx.Op, tx.Address})
		}
		assert.Equal(entry.order, order, entry.name)
		assert.Equal(cpu.Clocks(entry.clocks), c.Elapsed(), entry.name)

		switch entry.name {
		case "move.w d0,-(a0)":
			assert.Equal(uint16(0x5678), ram.Word(entry.written), entry.name)
		case "clr.l (a0)":
			assert.Equal(uint32(0), ram.Long(entry.written), entry.name)
		default:
			assert.Equal(uint32(0x12345678), ram.Long(entry.written), entry.name)
		}
	}
}
