package cpu

import (
	"math/bits"
)

// logic sets N and Z from a result, clearing V and C.
func (c *CPU) logic(r uint32, size Size) {
	c.sr &^= SR_N | SR_Z | SR_V | SR_C
	c.setFlag(SR_N, r&size.Sign() != 0)
	c.setFlag(SR_Z, r&size.Mask() == 0)
}

// arith computes d+s+x, or d-s-x when sub is set, setting N, Z, V and C.
// A sticky Z is only ever cleared.
func (c *CPU) arith(sub bool, s, d, x uint32, size Size, sticky bool) (r uint32, carry bool) {
	sign := size.Sign()
	s &= size.Mask()
	d &= size.Mask()

	var overflow bool
	if sub {
		r = (d - s - x) & size.Mask()
		carry = (s&^d|r&^d|s&r)&sign != 0
		overflow = (s^d)&(r^d)&sign != 0
	} else {
		r = (d + s + x) & size.Mask()
		carry = (s&d|^r&(s|d))&sign != 0
		overflow = (s^r)&(d^r)&sign != 0
	}

	c.setFlag(SR_N, r&sign != 0)
	c.setFlag(SR_V, overflow)
	c.setFlag(SR_C, carry)
	if sticky {
		if r != 0 {
			c.sr &^= SR_Z
		}
	} else {
		c.setFlag(SR_Z, r == 0)
	}
	return
}

// extendBit returns the X flag as 0 or 1.
func (c *CPU) extendBit() uint32 {
	if c.flag(SR_X) {
		return 1
	}
	return 0
}

// addSub performs ADD, SUB, ADDX, SUBX, NEG and NEGX.
func (c *CPU) addSub(sub bool, s, d uint32, size Size, extended bool) uint32 {
	var x uint32
	if extended {
		x = c.extendBit()
	}
	r, carry := c.arith(sub, s, d, x, size, extended)
	c.setFlag(SR_X, carry)
	return r
}

// abcd adds packed decimal bytes with extend.
func (c *CPU) abcd(s, d uint32) uint32 {
	r := s&0x0f + d&0x0f + c.extendBit()
	v := ^r
	if r > 9 {
		r += 6
	}
	r += s&0xf0 + d&0xf0
	carry := r > 0x99
	if carry {
		r -= 0xa0
	}
	return c.decimalFlags(r, v, carry)
}

// sbcd subtracts packed decimal bytes with extend.
func (c *CPU) sbcd(s, d uint32) uint32 {
	r := d&0x0f - s&0x0f - c.extendBit()
	v := ^r
	if r > 9 {
		r -= 6
	}
	r += d&0xf0 - s&0xf0
	carry := r > 0x99
	if carry {
		r += 0xa0
	}
	return c.decimalFlags(r, v, carry)
}

// decimalFlags sets the flags of a decimal operation.
func (c *CPU) decimalFlags(r, v uint32, carry bool) uint32 {
	r &= 0xff
	c.setFlag(SR_V, v&r&0x80 != 0)
	c.setFlag(SR_N, r&0x80 != 0)
	c.setFlag(SR_C|SR_X, carry)
	if r != 0 {
		c.sr &^= SR_Z
	}
	return r
}

// nbcd negates a packed decimal byte with extend.
func (c *CPU) nbcd(d uint32) uint32 {
	r := (0x9a - d - c.extendBit()) & 0xff
	if r == 0x9a {
		c.sr &^= SR_V | SR_C | SR_X
		c.setFlag(SR_N, r&0x80 != 0)
		return d & 0xff
	}

	v := ^r
	if r&0x0f == 0x0a {
		r = (r & 0xf0) + 0x10
	}
	r &= 0xff
	c.setFlag(SR_V, v&r&0x80 != 0)
	c.setFlag(SR_N, r&0x80 != 0)
	c.sr |= SR_C | SR_X
	if r != 0 {
		c.sr &^= SR_Z
	}
	return r
}

// shiftCount returns the count of a shift or rotate.
func (c *CPU) shiftCount(src uint32) uint32 {
	if c.inst.Src.Mode == MODE_DN {
		return src & 63
	}
	return src
}

// rotate performs a shift or rotate, setting the flags.
func (c *CPU) rotate(op Operation, v, count uint32, size Size) uint32 {
	sign := size.Sign()
	mask := size.Mask()
	v &= mask

	x := c.flag(SR_X)
	var carry, overflow bool
	for range count {
		switch op {
		case OP_ASL:
			carry = v&sign != 0
			n := (v << 1) & mask
			if (n^v)&sign != 0 {
				overflow = true
			}
			v = n
		case OP_ASR:
			carry = v&1 != 0
			v = v>>1 | v&sign
		case OP_LSL:
			carry = v&sign != 0
			v = (v << 1) & mask
		case OP_LSR:
			carry = v&1 != 0
			v >>= 1
		case OP_ROL:
			carry = v&sign != 0
			v = (v << 1) & mask
			if carry {
				v |= 1
			}
		case OP_ROR:
			carry = v&1 != 0
			v >>= 1
			if carry {
				v |= sign
			}
		case OP_ROXL:
			carry = v&sign != 0
			v = (v << 1) & mask
			if x {
				v |= 1
			}
			x = carry
		case OP_ROXR:
			carry = v&1 != 0
			v >>= 1
			if x {
				v |= sign
			}
			x = carry
		}
	}

	c.logic(v, size)
	c.setFlag(SR_V, overflow)

	rox := op == OP_ROXL || op == OP_ROXR
	switch {
	case count == 0 && rox:
		c.setFlag(SR_C, c.flag(SR_X))
	case count == 0:
	case rox:
		c.setFlag(SR_C|SR_X, carry)
	case op == OP_ROL || op == OP_ROR:
		c.setFlag(SR_C, carry)
	default:
		c.setFlag(SR_C|SR_X, carry)
	}

	return v
}

// mulsPairs returns the number of 01 and 10 bit pairs in a MULS source,
// with a zero appended below the least significant bit.
func mulsPairs(src uint16) int {
	return bits.OnesCount16(src ^ src<<1)
}

// divuClocks returns the execution time of DIVU.
func divuClocks(dividend uint32, divisor uint16) int {
	if uint16(dividend>>16) >= divisor {
		return 10
	}

	mcycles := 38
	hdivisor := uint32(divisor) << 16
	for range 15 {
		carry := int32(dividend) < 0
		dividend <<= 1
		if carry {
			dividend -= hdivisor
			continue
		}
		mcycles += 2
		if dividend >= hdivisor {
			dividend -= hdivisor
			mcycles--
		}
	}

	return mcycles * 2
}

// divsClocks returns the execution time of DIVS.
func divsClocks(dividend int32, divisor int16) int {
	mcycles := 6
	if dividend < 0 {
		mcycles++
	}

	adividend := uint32(dividend)
	if dividend < 0 {
		adividend = -adividend
	}
	adivisor := uint16(divisor)
	if divisor < 0 {
		adivisor = -adivisor
	}

	if adividend>>16 >= uint32(adivisor) {
		return (mcycles + 2) * 2
	}

	aquot := adividend / uint32(adivisor)
	mcycles += 55
	if divisor >= 0 {
		if dividend >= 0 {
			mcycles--
		} else {
			mcycles++
		}
	}

	for range 15 {
		if int16(aquot) >= 0 {
			mcycles++
		}
		aquot <<= 1
	}

	return mcycles * 2
}

// divideOverflow sets the flags of a DIVU or DIVS overflow.
func (c *CPU) divideOverflow() {
	c.sr |= SR_V | SR_N
	c.sr &^= SR_Z | SR_C
}

// latchIdle sets the latched idle time, less the prefetch that precedes it.
func (c *CPU) latchIdle(clocks int) {
	c.latch.Idle = uint16(max(clocks-4, 0))
}

// target returns the destination of a relative branch.
func (c *CPU) target() uint32 {
	disp := SIZE_BYTE.Extend(uint32(c.opcode))
	if c.inst.Size == SIZE_WORD {
		disp = SIZE_WORD.Extend(c.latch.Ext)
	}
	return c.instPC + 2 + disp
}

// perform executes the operation of the instruction in progress. Step 0
// commits address register adjustments first; step 1 is the second half
// of operations split around stack transfers.
func (c *CPU) perform(step uint8) {
	inst := c.inst
	size := inst.Size
	l := &c.latch

	if step == 0 {
		c.commit()
	}

	src := l.Operand[SLOT_SOURCE].Value
	dst := l.Operand[SLOT_DESTINATION].Value

	switch inst.Op {
	case OP_ADD:
		l.Result = c.addSub(false, src, dst, size, false)
	case OP_SUB:
		l.Result = c.addSub(true, src, dst, size, false)
	case OP_ADDX:
		l.Result = c.addSub(false, src, dst, size, true)
	case OP_SUBX:
		l.Result = c.addSub(true, src, dst, size, true)
	case OP_NEG:
		l.Result = c.addSub(true, dst, 0, size, false)
	case OP_NEGX:
		l.Result = c.addSub(true, dst, 0, size, true)
	case OP_CMP:
		c.arith(true, src, dst, 0, size, false)

	case OP_ADDA:
		l.Result = dst + size.Extend(src&size.Mask())
	case OP_SUBA:
		l.Result = dst - size.Extend(src&size.Mask())
	case OP_CMPA:
		c.arith(true, size.Extend(src&size.Mask()), dst, 0, SIZE_LONG, false)

	case OP_AND:
		l.Result = src & dst
		c.logic(l.Result, size)
	case OP_OR:
		l.Result = src | dst
		c.logic(l.Result, size)
	case OP_EOR:
		l.Result = src ^ dst
		c.logic(l.Result, size)
	case OP_NOT:
		l.Result = ^dst
		c.logic(l.Result, size)
	case OP_TST:
		c.logic(dst, size)
	case OP_CLR:
		l.Result = 0
		c.logic(0, size)

	case OP_MOVE:
		l.Result = src
		c.logic(src, size)
	case OP_MOVEA:
		l.Result = size.Extend(src & size.Mask())
	case OP_LEA:
		l.Result = l.Operand[SLOT_SOURCE].Address
	case OP_PEA:
		l.Push = l.Operand[SLOT_SOURCE].Address

	case OP_EXT:
		if size == SIZE_WORD {
			l.Result = SIZE_BYTE.Extend(dst)
		} else {
			l.Result = SIZE_WORD.Extend(dst)
		}
		c.logic(l.Result, size)
	case OP_SWAP:
		l.Result = dst<<16 | dst>>16
		c.logic(l.Result, SIZE_LONG)
	case OP_EXG:
		a, b := c.register(SLOT_SOURCE), c.register(SLOT_DESTINATION)
		c.reg[a], c.reg[b] = c.reg[b], c.reg[a]
	case OP_TAS:
		c.logic(dst, SIZE_BYTE)
		l.Result = dst | 0x80

	case OP_ABCD:
		l.Result = c.abcd(src, dst)
	case OP_SBCD:
		l.Result = c.sbcd(src, dst)
	case OP_NBCD:
		l.Result = c.nbcd(dst)

	case OP_ASL, OP_ASR, OP_LSL, OP_LSR, OP_ROL, OP_ROR, OP_ROXL, OP_ROXR:
		count := c.shiftCount(src)
		l.Result = c.rotate(inst.Op, dst, count, size)
		clocks := 6
		if size == SIZE_LONG {
			clocks = 8
		}
		c.latchIdle(clocks + 2*int(count))

	case OP_BTST, OP_BCHG, OP_BCLR, OP_BSET:
		c.bitOp(src, dst)

	case OP_MULU:
		l.Result = uint32(uint16(src)) * uint32(uint16(dst))
		c.logic(l.Result, SIZE_LONG)
		c.latchIdle(38 + 2*bits.OnesCount16(uint16(src)))
	case OP_MULS:
		l.Result = uint32(int32(int16(src)) * int32(int16(dst)))
		c.logic(l.Result, SIZE_LONG)
		c.latchIdle(38 + 2*mulsPairs(uint16(src)))
	case OP_DIVU:
		c.divu(uint16(src), dst)
	case OP_DIVS:
		c.divs(int16(src), int32(dst))

	case OP_CHK:
		c.chk(int16(src), int16(dst))

	case OP_ANDI_CCR:
		c.setCCR(c.sr & uint16(src))
		c.pc = c.nextPC()
	case OP_ORI_CCR:
		c.setCCR(c.sr | uint16(src))
		c.pc = c.nextPC()
	case OP_EORI_CCR:
		c.setCCR(c.sr ^ uint16(src))
		c.pc = c.nextPC()
	case OP_ANDI_SR:
		c.setSR(c.sr & uint16(src))
		c.pc = c.nextPC()
	case OP_ORI_SR:
		c.setSR(c.sr | uint16(src))
		c.pc = c.nextPC()
	case OP_EORI_SR:
		c.setSR(c.sr ^ uint16(src))
		c.pc = c.nextPC()
	case OP_MOVE_TO_CCR:
		c.setCCR(uint16(src))
		c.pc = c.nextPC()
	case OP_MOVE_TO_SR:
		c.setSR(uint16(src))
		c.pc = c.nextPC()
	case OP_MOVE_FROM_SR:
		l.Result = uint32(c.sr)
	case OP_MOVE_USP:
		n := 8 + int(inst.Dst.Reg)
		if inst.Data == 0 {
			c.sp = c.reg[n]
		} else {
			c.reg[n] = c.sp
		}

	case OP_SCC:
		l.Cond = Condition(inst.Data).Test(c.sr)
		l.Result = 0
		if l.Cond {
			l.Result = 0xff
		}
	case OP_BCC:
		l.Cond = Condition(inst.Data).Test(c.sr)
		if l.Cond {
			c.pc = c.target()
		}
	case OP_BSR:
		l.Push = c.nextPC()
		c.pc = c.target()
	case OP_DBCC:
		c.dbcc()
	case OP_JMP:
		c.pc = l.Operand[SLOT_SOURCE].Address
	case OP_JSR:
		l.Push = c.nextPC()
		c.pc = l.Operand[SLOT_SOURCE].Address
	case OP_RTS:
		c.pc = l.Pop

	case OP_RTE, OP_RTR:
		if step == 0 {
			l.Result = l.Pop
			return
		}
		if inst.Op == OP_RTE {
			c.setSR(uint16(l.Result))
		} else {
			c.setCCR(uint16(l.Result))
		}
		c.pc = l.Pop

	case OP_LINK:
		n := 8 + int(inst.Dst.Reg)
		if step == 0 {
			l.Push = c.reg[n]
			if n == 15 {
				l.Push -= 4
			}
			return
		}
		c.reg[n] = c.reg[15]
		c.reg[15] += SIZE_WORD.Extend(l.Ext)
	case OP_UNLK:
		n := 8 + int(inst.Dst.Reg)
		if step == 0 {
			c.reg[15] = c.reg[n]
			return
		}
		c.reg[n] = l.Pop

	case OP_MOVEM:
		l.Mask = uint16(src)
		if inst.Dst.Mode == MODE_AN_PREDEC {
			l.Mask = bits.Reverse16(l.Mask)
		}
		l.Address = l.Operand[SLOT_DESTINATION].Address
		l.Half = false
	case OP_MOVEP:
		l.Address = l.Operand[SLOT_SOURCE].Address
		l.Count = uint8(size.Bytes())
		l.Push = c.reg[inst.Dst.Reg]
		l.Pop = 0

	case OP_TRAP:
		c.trap(VECTOR_TRAP + Vector(inst.Data))
	case OP_TRAPV:
		if c.flag(SR_V) {
			c.trap(VECTOR_TRAPV)
		}
	case OP_RESET:
		if resetter, ok := c.bus.(Resetter); ok {
			resetter.ResetDevices()
		}
	case OP_STOP:
		c.setSR(uint16(l.Ext))
		c.pc = c.instPC + 4
	}
}

// bitOp performs BTST, BCHG, BCLR and BSET.
func (c *CPU) bitOp(src, dst uint32) {
	l := &c.latch
	n := src & 7
	if c.inst.Dst.Mode == MODE_DN {
		n = src & 31
	}
	bit := uint32(1) << n
	c.setFlag(SR_Z, dst&bit == 0)

	switch c.inst.Op {
	case OP_BCHG:
		l.Result = dst ^ bit
	case OP_BCLR:
		l.Result = dst &^ bit
	case OP_BSET:
		l.Result = dst | bit
	}

	clocks := 2
	if c.inst.Op == OP_BCLR {
		clocks += 2
	}
	if n >= 16 {
		clocks += 2
	}
	l.Idle = uint16(clocks)
}

// divu performs DIVU.
func (c *CPU) divu(divisor uint16, dividend uint32) {
	l := &c.latch
	l.Result = dividend
	if divisor == 0 {
		c.sr &^= SR_C
		c.trap(VECTOR_ZERO_DIVIDE)
		return
	}

	c.latchIdle(divuClocks(dividend, divisor))

	q := dividend / uint32(divisor)
	r := dividend % uint32(divisor)
	if q > 0xffff {
		c.divideOverflow()
		return
	}

	l.Result = r<<16 | q
	c.logic(q, SIZE_WORD)
}

// divs performs DIVS.
func (c *CPU) divs(divisor int16, dividend int32) {
	l := &c.latch
	l.Result = uint32(dividend)
	if divisor == 0 {
		c.sr &^= SR_C
		c.trap(VECTOR_ZERO_DIVIDE)
		return
	}

	c.latchIdle(divsClocks(dividend, divisor))

	q := int64(dividend) / int64(divisor)
	r := int64(dividend) % int64(divisor)
	if q < -0x8000 || q > 0x7fff {
		c.divideOverflow()
		return
	}

	l.Result = uint32(uint16(r))<<16 | uint32(uint16(q))
	c.logic(uint32(q), SIZE_WORD)
}

// chk performs CHK, trapping when the register is out of bounds.
func (c *CPU) chk(bound, value int16) {
	c.setFlag(SR_Z, value == 0)
	c.sr &^= SR_V | SR_C
	switch {
	case value < 0:
		c.sr |= SR_N
		c.trap(VECTOR_CHK)
	case value > bound:
		c.sr &^= SR_N
		c.trap(VECTOR_CHK)
	}
}

// dbcc performs DBcc: the branch is taken unless the condition holds or
// the counter expires.
func (c *CPU) dbcc() {
	l := &c.latch
	l.Cond = false
	if Condition(c.inst.Data).Test(c.sr) {
		l.Idle = 4
		return
	}

	n := int(c.inst.Dst.Reg)
	count := uint16(c.reg[n]) - 1
	c.reg.Write(n, SIZE_WORD, uint32(count))
	if count == 0xffff {
		l.Idle = 6
		return
	}

	l.Cond = true
	c.pc = c.target()
}
