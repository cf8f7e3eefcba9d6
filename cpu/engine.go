package cpu

import (
	"math/bits"
)

// sizeOf returns the size of an operand of n bytes.
func sizeOf(n uint8) Size {
	switch n {
	case 1:
		return SIZE_BYTE
	case 2:
		return SIZE_WORD
	}
	return SIZE_LONG
}

// dataFC returns the function code of a data access.
func (c *CPU) dataFC() FunctionCode {
	if c.supervisor() {
		return FC_SUPER_DATA
	}
	return FC_USER_DATA
}

// programFC returns the function code of a program access.
func (c *CPU) programFC() FunctionCode {
	if c.supervisor() {
		return FC_SUPER_PROGRAM
	}
	return FC_USER_PROGRAM
}

// addr returns address register n, including uncommitted adjustments.
func (c *CPU) addr(n int) uint32 {
	return c.reg[8+n] + uint32(c.latch.Adjust[n])
}

// view returns register r (D0-D7, A0-A7) as seen by the instruction in
// progress.
func (c *CPU) view(r int) uint32 {
	if r >= 8 {
		return c.addr(r - 8)
	}
	return c.reg[r]
}

// commit applies the (An)+ and -(An) adjustments to the register file.
func (c *CPU) commit() {
	for n, adjust := range c.latch.Adjust {
		c.reg[8+n] += uint32(adjust)
	}
	clear(c.latch.Adjust[:])
}

// operand returns the decoded operand of a latch slot.
func (c *CPU) operand(slot uint8) Operand {
	if slot == SLOT_SOURCE {
		return c.inst.Src
	}
	return c.inst.Dst
}

// register returns the register file index of a register direct operand.
func (c *CPU) register(slot uint8) int {
	o := c.operand(slot)
	if o.Mode == MODE_AN {
		return 8 + int(o.Reg)
	}
	return int(o.Reg)
}

// step returns the (An)+ and -(An) adjustment of address register n. The
// stack pointer stays word aligned.
func step(n int, bytes uint8) int32 {
	if bytes == 1 && n == 7 {
		return 2
	}
	return int32(bytes)
}

// index returns the displacement and index of a brief extension word.
func (c *CPU) index(ext uint32) uint32 {
	x := c.view(int(ext>>12) & 15)
	if ext&0x0800 == 0 {
		x = SIZE_WORD.Extend(x)
	}
	return SIZE_BYTE.Extend(ext) + x
}

// effectiveAddress computes the address of an operand. Register
// adjustments are recorded, not applied.
func (c *CPU) effectiveAddress(op MicroOp) (address uint32) {
	n := int(c.operand(op.Slot).Reg)
	ext := c.latch.Ext

	switch op.Mode {
	case MODE_AN_INDIRECT:
		address = c.addr(n)
	case MODE_AN_POSTINC:
		address = c.addr(n)
		c.latch.Adjust[n] += step(n, op.N)
	case MODE_AN_PREDEC:
		c.latch.Adjust[n] -= step(n, op.N)
		address = c.addr(n)
	case MODE_AN_DISP:
		address = c.addr(n) + SIZE_WORD.Extend(ext)
	case MODE_AN_INDEX:
		address = c.addr(n) + c.index(ext)
	case MODE_ABS_SHORT:
		address = SIZE_WORD.Extend(ext)
	case MODE_ABS_LONG:
		address = ext
	case MODE_PC_DISP:
		address = c.latch.ExtAddr + SIZE_WORD.Extend(ext)
	case MODE_PC_INDEX:
		address = c.latch.ExtAddr + c.index(ext)
	}

	c.latch.Ext = 0
	c.latch.ExtAddr = 0
	return
}

// extend accumulates the word in IRC as an extension word.
func (c *CPU) extend() {
	if c.latch.ExtAddr == 0 {
		c.latch.ExtAddr = c.pc + 2
	}
	c.latch.Ext = c.latch.Ext<<16 | uint32(c.prefetch[1])
	c.latch.Words++
}

// shift advances the prefetch queue by one word.
func (c *CPU) shift(value uint16) {
	c.prefetch[0] = c.prefetch[1]
	c.prefetch[1] = value
	c.pc += 2
}

// programRead returns an instruction stream read.
func (c *CPU) programRead(kind BusOp, address uint32) Transaction {
	return Transaction{
		Op:       kind,
		Address:  address & ADDRESS_MASK,
		Select:   SELECT_WORD,
		Function: c.programFC(),
	}
}

// execute performs one micro-op, returning the delay reported by the bus.
func (c *CPU) execute(op MicroOp) (extra HalfCycles) {
	switch op.Kind {
	case MICRO_IDLE:
		length := c.cost(op)
		if length > 0 {
			tx := Transaction{Op: BUS_IDLE, Length: length}
			c.bus.Perform(&tx)
		}

	case MICRO_PREFETCH:
		tx := c.programRead(BUS_OPCODE_FETCH, c.pc+4)
		extra = c.issue(op, &tx)

	case MICRO_EXTENSION:
		tx := c.programRead(BUS_PROGRAM_READ, c.pc+4)
		extra = c.issue(op, &tx)

	case MICRO_LATCH:
		c.extend()

	case MICRO_REFILL:
		tx := c.programRead(BUS_OPCODE_FETCH, c.pc)
		if op.Slot != 0 {
			tx = c.programRead(BUS_PROGRAM_READ, c.pc+2)
		}
		if c.pc&1 != 0 {
			c.busFault(&tx, true)
			return
		}
		extra = c.issue(op, &tx)

	case MICRO_ADDRESS:
		c.latch.Operand[op.Slot].Address = c.effectiveAddress(op)

	case MICRO_READ_REGISTER:
		c.latch.Operand[op.Slot].Value = c.view(c.register(op.Slot))

	case MICRO_IMMEDIATE:
		c.latch.Operand[op.Slot].Value = c.latch.Ext & sizeOf(op.N).Mask()
		c.latch.Ext = 0
		c.latch.ExtAddr = 0

	case MICRO_QUICK:
		c.latch.Operand[op.Slot].Value = c.inst.Data

	case MICRO_READ, MICRO_WRITE:
		tx, ok := c.dataAccess(op)
		if ok {
			extra = c.issue(op, &tx)
		}

	case MICRO_STORE_REGISTER:
		c.reg.Write(c.register(op.Slot), sizeOf(op.N), c.latch.Result)

	case MICRO_PERFORM:
		c.perform(op.Slot)

	case MICRO_PUSH, MICRO_POP:
		tx, ok := c.stackAccess(op)
		if ok {
			extra = c.issue(op, &tx)
		}

	case MICRO_SKIP:
		if !c.latch.Cond {
			c.cursor.Index += uint16(op.N)
		}

	case MICRO_NEXT:
		c.next()

	case MICRO_RAISE:
		c.fault(Vector(op.N))

	case MICRO_MOVEM:
		tx, ok := c.movemAccess()
		if ok {
			extra = c.issue(op, &tx)
		}

	case MICRO_MOVEP:
		tx, ok := c.movepAccess()
		if ok {
			extra = c.issue(op, &tx)
		}

	case MICRO_BEGIN:
		c.beginFrame(op.Slot)

	case MICRO_FRAME:
		offset, value := c.frameField(op.Slot)
		tx := Transaction{
			Op:       BUS_WRITE,
			Address:  (c.frame.Base + offset) & ADDRESS_MASK,
			Select:   SELECT_WORD,
			Function: FC_SUPER_DATA,
			Value:    value,
		}
		if c.frame.Base&1 != 0 {
			c.busFault(&tx, true)
			return
		}
		extra = c.issue(op, &tx)

	case MICRO_ACKNOWLEDGE:
		tx := Transaction{
			Op:       BUS_INTERRUPT_ACKNOWLEDGE,
			Address:  0xfffff0 | uint32(c.frame.Level)<<1 | 1,
			Select:   SELECT_LOWER,
			Function: FC_INTERRUPT,
		}
		extra = c.issue(op, &tx)

	case MICRO_VECTOR:
		v := c.frame.Vector
		switch op.Slot {
		case TARGET_SSP:
			v = VECTOR_RESET
		case TARGET_PC:
			v = VECTOR_RESET_PC
		}
		address := uint32(v) * 4
		if op.Part == PART_LOW {
			address += 2
		}
		tx := Transaction{
			Op:       BUS_VECTOR_READ,
			Address:  address,
			Select:   SELECT_WORD,
			Function: FC_SUPER_DATA,
		}
		extra = c.issue(op, &tx)

	case MICRO_STOP:
		tx := Transaction{Op: BUS_STOPPED}
		c.bus.Perform(&tx)
		c.next()
		c.cursor = Cursor{State: STATE_WAIT_FOR_INTERRUPT}
	}

	return
}

// issue hands a transaction to the bus.
func (c *CPU) issue(op MicroOp, tx *Transaction) (extra HalfCycles) {
	tx.Response = RESPONSE_DTACK
	extra = c.bus.Perform(tx)
	c.settle(op, tx)
	return
}

// settle acts on the response to a transaction: it completes the micro-op,
// starts waiting for DTACK, or raises a bus error.
func (c *CPU) settle(op MicroOp, tx *Transaction) {
	switch tx.Response {
	case RESPONSE_WAIT:
		c.waiting = *tx
		c.resume = c.cursor
		c.cursor = Cursor{State: STATE_WAIT_FOR_DTACK}
	case RESPONSE_BERR:
		if tx.Op == BUS_INTERRUPT_ACKNOWLEDGE {
			c.complete(op, tx)
			return
		}
		c.busFault(tx, false)
	default:
		c.complete(op, tx)
	}
}

// complete finishes a micro-op whose transaction was acknowledged.
func (c *CPU) complete(op MicroOp, tx *Transaction) {
	switch op.Kind {
	case MICRO_PREFETCH:
		c.shift(tx.Value)

	case MICRO_EXTENSION:
		c.extend()
		c.shift(tx.Value)

	case MICRO_REFILL:
		c.prefetch[op.Slot&1] = tx.Value

	case MICRO_READ:
		slot := &c.latch.Operand[op.Slot]
		switch op.Part {
		case PART_BYTE:
			slot.Value = uint32(laneByte(tx))
		case PART_WORD:
			slot.Value = uint32(tx.Value)
		case PART_HIGH:
			slot.Value = slot.Value&0xffff | uint32(tx.Value)<<16
		case PART_LOW:
			slot.Value = slot.Value&^0xffff | uint32(tx.Value)
		}

	case MICRO_PUSH:
		switch op.Part {
		case PART_HIGH:
			c.reg[15] -= 4
		case PART_WORD:
			c.reg[15] -= 2
		}

	case MICRO_POP:
		switch op.Part {
		case PART_HIGH:
			c.latch.Pop = c.latch.Pop&0xffff | uint32(tx.Value)<<16
		case PART_LOW:
			c.latch.Pop = c.latch.Pop&^0xffff | uint32(tx.Value)
			c.reg[15] += 4
		case PART_WORD:
			c.latch.Pop = uint32(tx.Value)
			c.reg[15] += 2
		}

	case MICRO_MOVEM:
		c.movemComplete(tx)

	case MICRO_MOVEP:
		c.movepComplete(tx)

	case MICRO_ACKNOWLEDGE:
		switch tx.Response {
		case RESPONSE_VPA:
			c.frame.Vector = VECTOR_AUTOVECTOR + Vector(c.frame.Level) - 1
		case RESPONSE_BERR:
			c.frame.Vector = VECTOR_SPURIOUS
		default:
			c.frame.Vector = Vector(tx.Value & 0xff)
		}

	case MICRO_VECTOR:
		if op.Part == PART_HIGH {
			c.frame.Target = uint32(tx.Value) << 16
			return
		}
		c.frame.Target |= uint32(tx.Value)
		if op.Slot == TARGET_SSP {
			c.reg[15] = c.frame.Target
		} else {
			c.pc = c.frame.Target
		}
	}
}

// laneByte returns the byte of a byte read from its selected lane.
func laneByte(tx *Transaction) uint8 {
	if tx.Select == SELECT_UPPER {
		return uint8(tx.Value >> 8)
	}
	return uint8(tx.Value)
}

// dataAccess builds the transaction of an operand read or write. An odd
// word or long address raises an address error instead.
func (c *CPU) dataAccess(op MicroOp) (tx Transaction, ok bool) {
	address := c.latch.Operand[op.Slot].Address
	if op.Part == PART_LOW {
		address += 2
	}

	write := op.Kind == MICRO_WRITE
	switch {
	case write && op.N != 0:
		tx.Op = BUS_INTERNAL_WRITE
	case write:
		tx.Op = BUS_WRITE
	case op.N != 0:
		tx.Op = BUS_INTERNAL_READ
	default:
		tx.Op = BUS_READ
	}

	tx.Address = address & ADDRESS_MASK
	tx.Function = c.dataFC()
	if op.Mode.Program() {
		tx.Function = c.programFC()
	}

	result := c.latch.Result
	switch op.Part {
	case PART_BYTE:
		tx.Select = selectByte(address)
		if write {
			b := uint16(result & 0xff)
			tx.Value = b<<8 | b
		}
		ok = true
		return
	case PART_HIGH:
		tx.Value = uint16(result >> 16)
	default:
		tx.Value = uint16(result)
	}
	if !write {
		tx.Value = 0
	}
	tx.Select = SELECT_WORD

	if address&1 != 0 {
		c.busFault(&tx, true)
		return
	}

	ok = true
	return
}

// stackAccess builds the transaction of a push or pop.
func (c *CPU) stackAccess(op MicroOp) (tx Transaction, ok bool) {
	sp := c.reg[15]
	address := sp

	tx.Op = BUS_READ
	if op.Kind == MICRO_PUSH {
		tx.Op = BUS_WRITE
		switch op.Part {
		case PART_HIGH:
			address = sp - 4
			tx.Value = uint16(c.latch.Push >> 16)
		default:
			address = sp - 2
			tx.Value = uint16(c.latch.Push)
		}
	} else if op.Part == PART_LOW {
		address = sp + 2
	}

	tx.Address = address & ADDRESS_MASK
	tx.Select = SELECT_WORD
	tx.Function = c.dataFC()

	if sp&1 != 0 {
		c.busFault(&tx, true)
		return
	}

	ok = true
	return
}

// movemRegister returns the next register of a MOVEM transfer.
func (c *CPU) movemRegister() int {
	if c.inst.Dst.Mode == MODE_AN_PREDEC {
		return 15 - bits.LeadingZeros16(c.latch.Mask)
	}
	return bits.TrailingZeros16(c.latch.Mask)
}

// movemAccess builds the transaction of the next MOVEM word. When no
// registers remain, the base register is updated and no transaction is
// built.
func (c *CPU) movemAccess() (tx Transaction, ok bool) {
	l := &c.latch
	dst := c.inst.Dst
	predec := dst.Mode == MODE_AN_PREDEC

	if l.Mask == 0 {
		if predec || dst.Mode == MODE_AN_POSTINC {
			c.reg[8+int(dst.Reg)] = l.Address
		}
		l.Operand[SLOT_SCRATCH].Address = l.Address
		return
	}

	if predec {
		l.Address -= 2
	}

	r := c.movemRegister()
	tx.Address = l.Address & ADDRESS_MASK
	tx.Select = SELECT_WORD
	tx.Function = c.dataFC()
	if dst.Mode.Program() {
		tx.Function = c.programFC()
	}

	tx.Op = BUS_READ
	if c.inst.Data == 0 {
		tx.Op = BUS_WRITE
		value := c.reg[r]
		if c.inst.Size == SIZE_LONG && predec == l.Half {
			value >>= 16
		}
		tx.Value = uint16(value)
	}

	if l.Address&1 != 0 {
		c.busFault(&tx, true)
		return
	}

	ok = true
	return
}

// movemComplete finishes a MOVEM word and repeats the micro-op.
func (c *CPU) movemComplete(tx *Transaction) {
	l := &c.latch
	r := c.movemRegister()
	long := c.inst.Size == SIZE_LONG

	if c.inst.Data != 0 {
		switch {
		case !long:
			c.reg[r] = SIZE_WORD.Extend(uint32(tx.Value))
		case !l.Half:
			l.Pop = uint32(tx.Value) << 16
		default:
			c.reg[r] = l.Pop | uint32(tx.Value)
		}
	}

	if c.inst.Dst.Mode != MODE_AN_PREDEC {
		l.Address += 2
	}

	if long && !l.Half {
		l.Half = true
	} else {
		l.Half = false
		l.Mask &^= 1 << r
	}

	c.cursor.Index--
}

// movepAccess builds the transaction of the next MOVEP byte. When no bytes
// remain, a register load is completed and no transaction is built.
func (c *CPU) movepAccess() (tx Transaction, ok bool) {
	l := &c.latch
	toMemory := c.inst.Data != 0

	if l.Count == 0 {
		if !toMemory {
			c.reg.Write(int(c.inst.Dst.Reg), c.inst.Size, l.Pop)
		}
		return
	}

	tx.Address = l.Address & ADDRESS_MASK
	tx.Select = selectByte(l.Address)
	tx.Function = c.dataFC()
	tx.Op = BUS_READ
	if toMemory {
		b := uint16(uint8(l.Push >> (8 * uint(l.Count-1))))
		tx.Op = BUS_WRITE
		tx.Value = b<<8 | b
	}

	ok = true
	return
}

// movepComplete finishes a MOVEP byte and repeats the micro-op.
func (c *CPU) movepComplete(tx *Transaction) {
	l := &c.latch
	if c.inst.Data == 0 {
		l.Pop = l.Pop<<8 | uint32(laneByte(tx))
	}
	l.Address += 2
	l.Count--
	c.cursor.Index--
}
