package cpu

import (
	"fmt"
)

// BusOp is the kind of a bus transaction.
type BusOp uint8

//go:generate go tool stringer -linecomment -type=BusOp
const (
	BUS_READ                  = BusOp(0) // read
	BUS_OPCODE_FETCH          = BusOp(1) // opcode
	BUS_PROGRAM_READ          = BusOp(2) // program
	BUS_VECTOR_READ           = BusOp(3) // vector
	BUS_WRITE                 = BusOp(4) // write
	BUS_INTERNAL_READ         = BusOp(5) // iread
	BUS_INTERNAL_WRITE        = BusOp(6) // iwrite
	BUS_INTERRUPT_ACKNOWLEDGE = BusOp(7) // iack
	BUS_IDLE                  = BusOp(8) // idle
	BUS_STOPPED               = BusOp(9) // stopped
)

// IsRead returns true if the collaborator must supply a value.
func (op BusOp) IsRead() bool {
	switch op {
	case BUS_READ, BUS_OPCODE_FETCH, BUS_PROGRAM_READ, BUS_VECTOR_READ,
		BUS_INTERNAL_READ, BUS_INTERRUPT_ACKNOWLEDGE:
		return true
	}
	return false
}

// IsWrite returns true if the transaction carries a value to the collaborator.
func (op BusOp) IsWrite() bool {
	return op == BUS_WRITE || op == BUS_INTERNAL_WRITE
}

// IsProgram returns true for instruction stream fetches.
func (op BusOp) IsProgram() bool {
	return op == BUS_OPCODE_FETCH || op == BUS_PROGRAM_READ
}

// IsData returns true for transactions that move operand data.
func (op BusOp) IsData() bool {
	switch op {
	case BUS_READ, BUS_WRITE, BUS_INTERNAL_READ, BUS_INTERNAL_WRITE:
		return true
	}
	return false
}

// FunctionCode is the FC2-FC0 processor status output.
type FunctionCode uint8

//go:generate go tool stringer -linecomment -type=FunctionCode
const (
	FC_USER_DATA     = FunctionCode(1) // ud
	FC_USER_PROGRAM  = FunctionCode(2) // up
	FC_SUPER_DATA    = FunctionCode(5) // sd
	FC_SUPER_PROGRAM = FunctionCode(6) // sp
	FC_INTERRUPT     = FunctionCode(7) // cpu
)

// Select is the byte lane selection of a transaction.
type Select uint8

//go:generate go tool stringer -linecomment -type=Select
const (
	SELECT_NONE  = Select(0) // -
	SELECT_LOWER = Select(1) // lds
	SELECT_UPPER = Select(2) // uds
	SELECT_WORD  = Select(3) // word
)

// selectByte returns the lane used for a byte access at address.
func selectByte(address uint32) Select {
	if address&1 == 0 {
		return SELECT_UPPER
	}
	return SELECT_LOWER
}

// Response is the collaborator's acknowledgement of a transaction.
type Response uint8

//go:generate go tool stringer -linecomment -type=Response
const (
	RESPONSE_DTACK = Response(0) // dtack
	RESPONSE_WAIT  = Response(1) // wait
	RESPONSE_VPA   = Response(2) // vpa
	RESPONSE_BERR  = Response(3) // berr
)

// ADDRESS_MASK covers the 24 address lines.
const ADDRESS_MASK = uint32(0x00ffffff)

// Transaction is a single bus transaction, built by the engine for one
// micro-op and handed to the Bus.
//
// Value always holds the full 16 bit data bus. A byte read must place its
// byte on the selected lane (bits 15-8 for SELECT_UPPER, bits 7-0 for
// SELECT_LOWER). A byte write carries the byte on both lanes.
//
// For BUS_IDLE and BUS_STOPPED, Length is the span of the transaction in
// half-cycles and no other field is meaningful.
type Transaction struct {
	Op       BusOp
	Address  uint32
	Select   Select
	Function FunctionCode
	Value    uint16
	Length   HalfCycles
	Response Response
}

// String returns a human readable transaction.
func (tx Transaction) String() string {
	switch tx.Op {
	case BUS_IDLE, BUS_STOPPED:
		return fmt.Sprintf("%v %d", tx.Op, tx.Length)
	}
	return fmt.Sprintf("%v %v %06x %v %04x %v", tx.Op, tx.Function, tx.Address, tx.Select, tx.Value, tx.Response)
}

// Bus performs transactions on behalf of the engine. Perform is invoked
// exactly once per bus-touching micro-op, in program order. It returns the
// delay, in half-cycles, beyond the minimum cost of the transaction, and
// reports completion through tx.Response. Reads fill in tx.Value.
type Bus interface {
	Perform(tx *Transaction) HalfCycles
}

// Waiter is implemented by a Bus that may answer RESPONSE_WAIT. Poll is
// called once per half-cycle until it returns anything but RESPONSE_WAIT.
// Reads fill in tx.Value when acknowledged.
type Waiter interface {
	Poll(tx *Transaction) Response
}

// Resetter is implemented by a Bus whose devices respond to the RESET
// instruction.
type Resetter interface {
	ResetDevices()
}
