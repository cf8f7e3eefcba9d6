package bus

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mc68k/cpu"
)

func TestMapAdd(t *testing.T) {
	assert := assert.New(t)

	m := &Map{}
	assert.NoError(m.Add("low", 0x000000, 0x1000, NewMemory(0x000000, 0x1000)))
	assert.NoError(m.Add("high", 0xff0000, 0x10000, NewMemory(0xff0000, 0x10000)))
	assert.NoError(m.Add("mid", 0x2000, 0x1000, NewMemory(0x2000, 0x1000)))

	table := []struct {
		name string
		base uint32
		size uint32
		err  error
	}{
		{"below", 0x0800, 0x1000, ErrOverlap},
		{"above", 0x2fff, 0x10, ErrOverlap},
		{"inside", 0x2100, 0x10, ErrOverlap},
		{"around", 0x1800, 0x2000, ErrOverlap},
		{"same", 0x2000, 0x1000, ErrOverlap},
		{"past", 0xfffff0, 0x20, ErrRange},
		{"empty", 0x8000, 0, ErrEmpty},
		{"gap", 0x1000, 0x1000, nil},
	}

	for _, entry := range table {
		err := m.Add(entry.name, entry.base, entry.size, &Fault{})
		if entry.err == nil {
			assert.NoError(err, entry.name)
			continue
		}
		assert.ErrorIs(err, entry.err, entry.name)
		var region *ErrRegion
		assert.ErrorAs(err, &region, entry.name)
		assert.Equal(entry.name, region.Name)
	}

	var names []string
	for region := range m.Regions() {
		names = append(names, region.Name)
	}
	assert.Equal([]string{"low", "gap", "mid", "high"}, names)

	find := []struct {
		address uint32
		name    string
	}{
		{0x000000, "low"},
		{0x000fff, "low"},
		{0x001000, "gap"},
		{0x002fff, "mid"},
		{0x003000, ""},
		{0xfeffff, ""},
		{0xff0000, "high"},
		{0xffffff, "high"},
		{0xff001000, "gap"},
	}

	for _, entry := range find {
		region, ok := m.Find(entry.address)
		assert.Equal(entry.name != "", ok, "%06x", entry.address)
		assert.Equal(entry.name, region.Name, "%06x", entry.address)
	}
}

func TestMapUnmapped(t *testing.T) {
	assert := assert.New(t)

	m := &Map{}
	m.Add("ram", 0x1000, 0x1000, NewMemory(0x1000, 0x1000))

	tx := cpu.Transaction{Op: cpu.BUS_READ, Address: 0x4000, Select: cpu.SELECT_WORD}
	m.Perform(&tx)
	assert.Equal(cpu.RESPONSE_BERR, tx.Response)

	m.OpenBus = true
	tx = cpu.Transaction{Op: cpu.BUS_READ, Address: 0x4000, Select: cpu.SELECT_WORD}
	m.Perform(&tx)
	assert.Equal(cpu.RESPONSE_DTACK, tx.Response)
	assert.Equal(OPEN_BUS_VALUE, tx.Value)

	tx = cpu.Transaction{Op: cpu.BUS_WRITE, Address: 0x4000, Select: cpu.SELECT_WORD, Value: 0x1234}
	m.Perform(&tx)
	assert.Equal(cpu.RESPONSE_DTACK, tx.Response)

	// Idle cycles reach no device.
	tx = cpu.Transaction{Op: cpu.BUS_IDLE, Length: cpu.Clocks(4)}
	m.OpenBus = false
	m.Perform(&tx)
	assert.Equal(cpu.RESPONSE_DTACK, tx.Response)

	// Without an interrupt controller, acknowledge is autovectored.
	tx = cpu.Transaction{Op: cpu.BUS_INTERRUPT_ACKNOWLEDGE, Address: 0xfffff7, Function: cpu.FC_INTERRUPT}
	m.Perform(&tx)
	assert.Equal(cpu.RESPONSE_VPA, tx.Response)
}

func TestMapBusError(t *testing.T) {
	assert := assert.New(t)

	// MOVE.W $20000,D0
	c, m, rec, _ := newSystem(nil, 0x3039, 0x0002, 0x0000)
	fault := &Fault{}
	assert.NoError(m.Add("fault", 0x20000, 0x100, fault))

	c.RunFor(cpu.Clocks(200))

	assert.Equal(1, fault.Count)
	pc, _ := c.Instruction()
	assert.GreaterOrEqual(pc, uint32(0x4000))

	n := slices.IndexFunc(rec.Log, func(tx cpu.Transaction) bool {
		return tx.Op == cpu.BUS_READ && tx.Address == 0x20000
	})
	assert.GreaterOrEqual(n, 0)
	assert.Equal(cpu.RESPONSE_BERR, rec.Log[n].Response)
	assert.Equal(cpu.BUS_IDLE, rec.Log[n+1].Op)
}

func TestMapWriteFault(t *testing.T) {
	assert := assert.New(t)

	fault := &Fault{Writes: true}

	tx := cpu.Transaction{Op: cpu.BUS_READ, Address: 0x100, Select: cpu.SELECT_WORD}
	fault.Perform(&tx)
	assert.Equal(cpu.RESPONSE_DTACK, tx.Response)
	assert.Equal(OPEN_BUS_VALUE, tx.Value)

	tx = cpu.Transaction{Op: cpu.BUS_WRITE, Address: 0x100, Select: cpu.SELECT_WORD}
	fault.Perform(&tx)
	assert.Equal(cpu.RESPONSE_BERR, tx.Response)
	assert.Equal(1, fault.Count)
}

type resetCounter struct {
	Fault
	resets int
}

func (rc *resetCounter) ResetDevices() {
	rc.resets++
}

func TestMapReset(t *testing.T) {
	assert := assert.New(t)

	// RESET
	c, m, _, _ := newSystem(nil, 0x4e70)
	counter := &resetCounter{}
	m.Add("counter", 0x100000, 0x10, counter)
	vectors := &Vectors{Line: c}
	m.Interrupts = vectors
	vectors.Raise(2)

	// Level 2 is masked.
	c.RunFor(cpu.Clocks(132))

	assert.Equal(1, counter.resets)
	assert.Equal(uint8(0), vectors.Level())
	assert.Equal(uint8(0), c.InterruptLevel())
}

func TestMapWrap(t *testing.T) {
	assert := assert.New(t)

	m := &Map{}
	m.Add("low", 0x0000, 0x1000, NewMemory(0x0000, 0x1000))
	m.Add("mid", 0x1000, 0x1000, NewMemory(0x1000, 0x1000))
	m.Add("high", 0x2000, 0x2000, NewMemory(0x2000, 0x2000))

	slow := func(device cpu.Bus) cpu.Bus {
		return &WaitStates{Bus: device, Delay: 4}
	}
	assert.Equal(2, m.Wrap(0x0000, 0x2000, slow))
	assert.Equal(0, m.Wrap(0x2000, 0x1000, slow))

	for _, entry := range []struct {
		address uint32
		delay   cpu.HalfCycles
	}{{0x0000, 4}, {0x1ffe, 4}, {0x2000, 0}} {
		tx := cpu.Transaction{Op: cpu.BUS_READ, Address: entry.address, Select: cpu.SELECT_WORD}
		assert.Equal(entry.delay, m.Perform(&tx), "%06x", entry.address)
	}
}
