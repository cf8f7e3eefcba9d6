package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testBus is 64KiB of memory, mirrored over the address space, that
// records every transaction.
type testBus struct {
	mem   []byte
	log   []Transaction
	delay HalfCycles // Extra delay of each data access.
	wait  int        // Polls before a data access is acknowledged.
	berr  uint32     // Address answering BERR, if non-zero.
	iack  Response   // Response to interrupt acknowledge.
	reset int        // Count of RESET instructions.

	polls int
}

var _ Bus = (*testBus)(nil)
var _ Waiter = (*testBus)(nil)
var _ Resetter = (*testBus)(nil)

func newTestBus() (b *testBus) {
	b = &testBus{
		mem:  make([]byte, 0x10000),
		iack: RESPONSE_VPA,
	}
	return
}

func (b *testBus) load(address uint32, words ...uint16) {
	for n, word := range words {
		a := (address + uint32(2*n)) & 0xffff
		b.mem[a] = byte(word >> 8)
		b.mem[a+1] = byte(word)
	}
}

func (b *testBus) long(address uint32, value uint32) {
	b.load(address, uint16(value>>16), uint16(value))
}

func (b *testBus) word(address uint32) uint16 {
	a := address & 0xfffe
	return uint16(b.mem[a])<<8 | uint16(b.mem[a+1])
}

func (b *testBus) Perform(tx *Transaction) (delay HalfCycles) {
	a := tx.Address & 0xffff

	switch {
	case tx.Op == BUS_IDLE, tx.Op == BUS_STOPPED:
	case tx.Op == BUS_INTERRUPT_ACKNOWLEDGE:
		tx.Response = b.iack
		tx.Value = 0xff00 | uint16(VECTOR_USER)
	case b.berr != 0 && tx.Address == b.berr:
		tx.Response = RESPONSE_BERR
	case tx.Op.IsWrite():
		switch tx.Select {
		case SELECT_UPPER:
			b.mem[a] = byte(tx.Value >> 8)
		case SELECT_LOWER:
			b.mem[a] = byte(tx.Value)
		default:
			b.load(a, tx.Value)
		}
	default:
		switch tx.Select {
		case SELECT_UPPER:
			tx.Value = uint16(b.mem[a]) << 8
		case SELECT_LOWER:
			tx.Value = uint16(b.mem[a])
		default:
			tx.Value = b.word(a)
		}
	}

	if tx.Op.IsData() {
		delay = b.delay
		if b.wait > 0 && tx.Response == RESPONSE_DTACK {
			tx.Response = RESPONSE_WAIT
			b.polls = b.wait
		}
	}

	b.log = append(b.log, *tx)
	return
}

func (b *testBus) Poll(tx *Transaction) Response {
	b.polls--
	if b.polls > 0 {
		return RESPONSE_WAIT
	}
	return RESPONSE_DTACK
}

func (b *testBus) ResetDevices() {
	b.reset++
}

// ops returns the kinds of the recorded transactions.
func (b *testBus) ops() (ops []BusOp) {
	for _, tx := range b.log {
		ops = append(ops, tx.Op)
	}
	return
}

// data returns the recorded data transactions.
func (b *testBus) data() (txs []Transaction) {
	for _, tx := range b.log {
		if tx.Op.IsData() {
			txs = append(txs, tx)
		}
	}
	return
}

// newTestCPU returns a processor in supervisor mode at an instruction
// boundary, with the program at 0x1000 followed by NOPs, the stack at
// 0x8000 and every exception vector pointing at 0x4000.
func newTestCPU(program ...uint16) (c *CPU, b *testBus) {
	b = newTestBus()
	for n := range 0x800 {
		b.load(0x1000+uint32(2*n), 0x4e71)
		b.load(0x4000+uint32(2*n), 0x4e71)
	}
	for v := range 256 {
		b.long(uint32(v)*4, 0x4000)
	}
	b.long(0, 0x8000)
	b.long(4, 0x1000)
	b.load(0x1000, program...)

	c = New(b)
	c.SetRegister(REG_SSP, 0x8000)
	c.SetRegister(REG_PC, 0x1000)
	c.SetPrefetch(b.word(0x1000), b.word(0x1002))
	return
}

// clocks runs a single instruction, returning its duration in clocks.
func clocks(c *CPU) int {
	start := c.Elapsed()
	pc := c.pc
	for range 10000 {
		c.RunFor(1)
		at, _ := c.Instruction()
		if at != pc || c.State() == STATE_WAIT_FOR_INTERRUPT {
			break
		}
	}
	return int((c.Elapsed() - start) / HALF_CYCLES_PER_CLOCK)
}

func TestTransactionString(t *testing.T) {
	assert := assert.New(t)

	tx := Transaction{Op: BUS_READ, Address: 0x123456, Select: SELECT_WORD, Function: FC_USER_DATA, Value: 0xbeef}
	assert.Equal("read ud 123456 word beef dtack", tx.String())

	tx = Transaction{Op: BUS_IDLE, Length: 4}
	assert.Equal("idle 4", tx.String())
}

func TestBusOpClasses(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		op      BusOp
		read    bool
		write   bool
		program bool
		data    bool
	}{
		{BUS_READ, true, false, false, true},
		{BUS_OPCODE_FETCH, true, false, true, false},
		{BUS_PROGRAM_READ, true, false, true, false},
		{BUS_VECTOR_READ, true, false, false, false},
		{BUS_WRITE, false, true, false, true},
		{BUS_INTERNAL_READ, true, false, false, true},
		{BUS_INTERNAL_WRITE, false, true, false, true},
		{BUS_INTERRUPT_ACKNOWLEDGE, true, false, false, false},
		{BUS_IDLE, false, false, false, false},
		{BUS_STOPPED, false, false, false, false},
	}

	for _, entry := range table {
		assert.Equal(entry.read, entry.op.IsRead(), entry.op.String())
		assert.Equal(entry.write, entry.op.IsWrite(), entry.op.String())
		assert.Equal(entry.program, entry.op.IsProgram(), entry.op.String())
		assert.Equal(entry.data, entry.op.IsData(), entry.op.String())
	}
}
