package cpu

// builder assembles instruction descriptors against a Store.
type builder struct {
	store *Store
}

// effective decodes a six bit mode/register field.
func effective(mode, reg uint16) (o Operand, ok bool) {
	o.Reg = uint8(reg & 7)
	ok = true
	switch mode & 7 {
	case 0:
		o.Mode = MODE_DN
	case 1:
		o.Mode = MODE_AN
	case 2:
		o.Mode = MODE_AN_INDIRECT
	case 3:
		o.Mode = MODE_AN_POSTINC
	case 4:
		o.Mode = MODE_AN_PREDEC
	case 5:
		o.Mode = MODE_AN_DISP
	case 6:
		o.Mode = MODE_AN_INDEX
	case 7:
		o.Reg = 0
		switch reg & 7 {
		case 0:
			o.Mode = MODE_ABS_SHORT
		case 1:
			o.Mode = MODE_ABS_LONG
		case 2:
			o.Mode = MODE_PC_DISP
		case 3:
			o.Mode = MODE_PC_INDEX
		case 4:
			o.Mode = MODE_IMMEDIATE
		default:
			ok = false
		}
	}
	return
}

// low returns the effective address in the low six bits of an opcode.
func low(opcode uint16, class uint16) (o Operand, ok bool) {
	o, ok = effective(opcode>>3, opcode)
	ok = ok && o.In(class)
	return
}

func dn(reg uint16) Operand {
	return Operand{Mode: MODE_DN, Reg: uint8(reg & 7)}
}

func an(reg uint16) Operand {
	return Operand{Mode: MODE_AN, Reg: uint8(reg & 7)}
}

func immediate() Operand {
	return Operand{Mode: MODE_IMMEDIATE}
}

func quick() Operand {
	return Operand{Mode: MODE_QUICK}
}

// size decodes the common two bit size field at bit 6.
func size(opcode uint16) (s Size, ok bool) {
	s = Size((opcode >> 6) & 3)
	ok = s <= SIZE_LONG
	return
}

// operand attaches the operand program for a phase. The destination
// addressing of MOVEM uses the base register unmodified.
func (b *builder) operand(inst *Instruction, phase int, o Operand, size Size, role Role) {
	mode := o.Mode
	if inst.Op == OP_MOVEM && (mode == MODE_AN_POSTINC || mode == MODE_AN_PREDEC) {
		mode = MODE_AN_INDIRECT
	}
	if (role == ROLE_STORE || role == ROLE_STORE_LOCKED || role == ROLE_STORE_MOVE) && mode == MODE_AN {
		size = SIZE_LONG
	}
	ref, ok := b.store.Operand(mode, size, role)
	if !ok {
		panic(ErrDecodeCoverage)
	}
	inst.Programs[phase] = ref
}

// source attaches the source read program.
func (b *builder) source(inst *Instruction, role Role) {
	b.operand(inst, PHASE_SOURCE, inst.Src, inst.Size, role)
}

// destination attaches the destination program.
func (b *builder) destination(inst *Instruction, role Role) {
	b.operand(inst, PHASE_DESTINATION, inst.Dst, inst.Size, role)
}

// result attaches the result store program.
func (b *builder) result(inst *Instruction, role Role) {
	b.operand(inst, PHASE_STORE, inst.Dst, inst.Size, role)
}

// perform attaches the operation program.
func (b *builder) perform(inst *Instruction, ops ...MicroOp) {
	inst.Programs[PHASE_PERFORM] = b.store.add(ops)
}

// tail attaches the trailing program.
func (b *builder) tail(inst *Instruction, ops ...MicroOp) {
	inst.Programs[PHASE_TAIL] = b.store.add(ops)
}

// illegal returns the sentinel descriptor of an undefined opcode.
func (b *builder) illegal(opcode uint16) (inst Instruction) {
	v := VECTOR_ILLEGAL
	inst.Op = OP_ILLEGAL
	switch opcode >> 12 {
	case 0xa:
		inst.Op = OP_LINE_A
		v = VECTOR_LINE_A
	case 0xf:
		inst.Op = OP_LINE_F
		v = VECTOR_LINE_F
	}
	b.perform(&inst, raise(v))
	return
}

// decode builds the descriptor of a defined opcode.
func (b *builder) decode(opcode uint16) (inst Instruction, ok bool) {
	switch opcode >> 12 {
	case 0x0:
		ok = b.line0(&inst, opcode)
	case 0x1, 0x2, 0x3:
		ok = b.move(&inst, opcode)
	case 0x4:
		ok = b.line4(&inst, opcode)
	case 0x5:
		ok = b.line5(&inst, opcode)
	case 0x6:
		ok = b.branch(&inst, opcode)
	case 0x7:
		ok = b.moveq(&inst, opcode)
	case 0x8:
		ok = b.line8(&inst, opcode)
	case 0x9, 0xd:
		ok = b.arithmetic(&inst, opcode)
	case 0xb:
		ok = b.lineB(&inst, opcode)
	case 0xc:
		ok = b.lineC(&inst, opcode)
	case 0xe:
		ok = b.shift(&inst, opcode)
	}
	return
}

// registerTail returns the timing of an operation into a data register.
// Long operations take longer when the source is a register or immediate.
func registerTail(size Size, src Operand) []MicroOp {
	if size != SIZE_LONG {
		return []MicroOp{uPerform, uPrefetch}
	}
	if src.Mode == MODE_DN || src.Mode == MODE_AN || src.Mode == MODE_IMMEDIATE || src.Mode == MODE_QUICK {
		return []MicroOp{uPerform, uPrefetch, idle(4)}
	}
	return []MicroOp{uPerform, uPrefetch, idle(2)}
}

// readModifyWrite completes an instruction whose destination is an
// operand in memory or a data register.
func (b *builder) readModifyWrite(inst *Instruction) {
	if inst.Dst.Mode == MODE_DN {
		b.destination(inst, ROLE_DESTINATION)
		b.perform(inst, registerTail(inst.Size, inst.Src)...)
		b.result(inst, ROLE_STORE)
		return
	}
	b.destination(inst, ROLE_DESTINATION)
	b.perform(inst, uPerform, uPrefetch)
	b.result(inst, ROLE_STORE)
}

// unary completes a single operand read-modify-write instruction, where a
// long data register operation takes two extra clocks.
func (b *builder) unary(inst *Instruction) {
	b.destination(inst, ROLE_DESTINATION)
	if inst.Dst.Mode == MODE_DN && inst.Size == SIZE_LONG {
		b.perform(inst, uPerform, uPrefetch, idle(2))
	} else {
		b.perform(inst, uPerform, uPrefetch)
	}
	b.result(inst, ROLE_STORE)
}

func (b *builder) line0(inst *Instruction, opcode uint16) (ok bool) {
	if opcode&0x0100 != 0 {
		if (opcode>>3)&7 == 1 {
			return b.movep(inst, opcode)
		}
		inst.Src = dn(opcode >> 9)
		return b.bit(inst, opcode)
	}

	kind := (opcode >> 9) & 7
	if kind == 4 {
		inst.Src = immediate()
		return b.bit(inst, opcode)
	}

	var op Operation
	switch kind {
	case 0:
		op = OP_OR
	case 1:
		op = OP_AND
	case 2:
		op = OP_SUB
	case 3:
		op = OP_ADD
	case 5:
		op = OP_EOR
	case 6:
		op = OP_CMP
	default:
		return
	}

	if opcode&0x3f == 0x3c {
		switch opcode {
		case 0x003c:
			inst.Op = OP_ORI_CCR
		case 0x007c:
			inst.Op = OP_ORI_SR
		case 0x023c:
			inst.Op = OP_ANDI_CCR
		case 0x027c:
			inst.Op = OP_ANDI_SR
		case 0x0a3c:
			inst.Op = OP_EORI_CCR
		case 0x0a7c:
			inst.Op = OP_EORI_SR
		default:
			return
		}
		inst.Size = SIZE_BYTE
		if opcode&0x0040 != 0 {
			inst.Size = SIZE_WORD
			inst.Privileged = true
		}
		inst.Src = immediate()
		b.source(inst, ROLE_SOURCE)
		b.perform(inst, uPerform, idle(8), uRefillIR, uRefillIRC)
		return true
	}

	inst.Op = op
	inst.Size, ok = size(opcode)
	if !ok {
		return
	}
	inst.Dst, ok = low(opcode, EA_DATA_ALTERABLE)
	if !ok {
		return
	}
	inst.Src = immediate()
	b.source(inst, ROLE_SOURCE)

	if op == OP_CMP {
		b.destination(inst, ROLE_DESTINATION)
		if inst.Size == SIZE_LONG && inst.Dst.Mode == MODE_DN {
			b.perform(inst, uPerform, uPrefetch, idle(2))
		} else {
			b.perform(inst, uPerform, uPrefetch)
		}
		return
	}

	b.readModifyWrite(inst)
	return
}

// bit decodes BTST, BCHG, BCLR and BSET with the source already set.
func (b *builder) bit(inst *Instruction, opcode uint16) (ok bool) {
	switch (opcode >> 6) & 3 {
	case 0:
		inst.Op = OP_BTST
	case 1:
		inst.Op = OP_BCHG
	case 2:
		inst.Op = OP_BCLR
	case 3:
		inst.Op = OP_BSET
	}

	class := EA_DATA_ALTERABLE
	if inst.Op == OP_BTST {
		class = EA_DATA
		if inst.Src.Mode == MODE_IMMEDIATE {
			class &^= 1 << MODE_IMMEDIATE
		}
	}
	inst.Dst, ok = low(opcode, class)
	if !ok {
		return
	}

	inst.Size = SIZE_BYTE
	b.operand(inst, PHASE_SOURCE, inst.Src, SIZE_BYTE, ROLE_SOURCE)
	if inst.Dst.Mode == MODE_DN {
		inst.Size = SIZE_LONG
	}
	b.destination(inst, ROLE_DESTINATION)

	switch {
	case inst.Dst.Mode != MODE_DN:
		b.perform(inst, uPerform, uPrefetch)
		if inst.Op != OP_BTST {
			b.result(inst, ROLE_STORE)
		}
	case inst.Op == OP_BTST:
		b.perform(inst, uPerform, uPrefetch, idle(2))
	default:
		b.perform(inst, uPerform, uPrefetch, uIdleLatched)
		b.result(inst, ROLE_STORE)
	}
	return
}

func (b *builder) movep(inst *Instruction, opcode uint16) (ok bool) {
	inst.Op = OP_MOVEP
	inst.Size = SIZE_WORD
	if opcode&0x0040 != 0 {
		inst.Size = SIZE_LONG
	}
	inst.Data = uint32(opcode>>7) & 1
	inst.Src = Operand{Mode: MODE_AN_DISP, Reg: uint8(opcode & 7)}
	inst.Dst = dn(opcode >> 9)
	b.source(inst, ROLE_SOURCE_ADDRESS)
	b.perform(inst, uPerform, uMovep, uPrefetch)
	return true
}

func (b *builder) move(inst *Instruction, opcode uint16) (ok bool) {
	switch opcode >> 12 {
	case 1:
		inst.Size = SIZE_BYTE
	case 2:
		inst.Size = SIZE_LONG
	case 3:
		inst.Size = SIZE_WORD
	}

	inst.Src, ok = low(opcode, EA_ALL)
	if !ok || (inst.Src.Mode == MODE_AN && inst.Size == SIZE_BYTE) {
		return false
	}
	inst.Dst, ok = effective(opcode>>6, opcode>>9)
	if !ok {
		return
	}

	b.source(inst, ROLE_SOURCE)

	if inst.Dst.Mode == MODE_AN {
		if inst.Size == SIZE_BYTE {
			return false
		}
		inst.Op = OP_MOVEA
		b.perform(inst, uPerform)
		b.result(inst, ROLE_STORE)
		b.tail(inst, uPrefetch)
		return true
	}

	if !inst.Dst.In(EA_DATA_ALTERABLE) {
		return false
	}
	inst.Op = OP_MOVE
	b.destination(inst, ROLE_DESTINATION_ADDRESS)
	if inst.Dst.Mode == MODE_AN_PREDEC {
		// The next prefetch precedes the write.
		b.perform(inst, uPerform, uPrefetch)
		b.result(inst, ROLE_STORE_MOVE)
		return true
	}
	b.perform(inst, uPerform)
	b.result(inst, ROLE_STORE_MOVE)
	b.tail(inst, uPrefetch)
	return true
}

func (b *builder) line4(inst *Instruction, opcode uint16) (ok bool) {
	if opcode&0x0100 != 0 {
		inst.Dst = dn(opcode >> 9)
		switch (opcode >> 6) & 3 {
		case 2:
			inst.Op = OP_CHK
			inst.Size = SIZE_WORD
			inst.Src, ok = low(opcode, EA_DATA)
			if !ok {
				return
			}
			b.source(inst, ROLE_SOURCE)
			b.destination(inst, ROLE_DESTINATION)
			b.perform(inst, uPerform, uPrefetch, idle(6))
			return true
		case 3:
			inst.Op = OP_LEA
			inst.Size = SIZE_LONG
			inst.Dst = an(opcode >> 9)
			inst.Src, ok = low(opcode, EA_CONTROL)
			if !ok {
				return
			}
			b.source(inst, ROLE_SOURCE_ADDRESS)
			if inst.Src.Mode.Indexed() {
				b.perform(inst, uPerform, uPrefetch, idle(2))
			} else {
				b.perform(inst, uPerform, uPrefetch)
			}
			b.result(inst, ROLE_STORE)
			return true
		}
		return false
	}

	switch {
	case opcode&0xffc0 == 0x40c0:
		inst.Op = OP_MOVE_FROM_SR
		inst.Size = SIZE_WORD
		inst.Dst, ok = low(opcode, EA_DATA_ALTERABLE)
		if !ok {
			return
		}
		if inst.Dst.Mode == MODE_DN {
			b.perform(inst, uPerform, uPrefetch, idle(2))
		} else {
			b.destination(inst, ROLE_DESTINATION)
			b.perform(inst, uPerform, uPrefetch)
		}
		b.result(inst, ROLE_STORE)
		return true

	case opcode&0xffc0 == 0x44c0, opcode&0xffc0 == 0x46c0:
		inst.Op = OP_MOVE_TO_CCR
		if opcode&0x0200 != 0 {
			inst.Op = OP_MOVE_TO_SR
			inst.Privileged = true
		}
		inst.Size = SIZE_WORD
		inst.Src, ok = low(opcode, EA_DATA)
		if !ok {
			return
		}
		b.source(inst, ROLE_SOURCE)
		b.perform(inst, uPerform, idle(4), uRefillIR, uRefillIRC)
		return true

	case opcode&0xf900 == 0x4000 && (opcode>>6)&3 != 3:
		switch (opcode >> 9) & 3 {
		case 0:
			inst.Op = OP_NEGX
		case 1:
			inst.Op = OP_CLR
		case 2:
			inst.Op = OP_NEG
		case 3:
			inst.Op = OP_NOT
		}
		inst.Size, _ = size(opcode)
		inst.Dst, ok = low(opcode, EA_DATA_ALTERABLE)
		if !ok {
			return
		}
		b.unary(inst)
		return true

	case opcode&0xffc0 == 0x4800:
		inst.Op = OP_NBCD
		inst.Size = SIZE_BYTE
		inst.Dst, ok = low(opcode, EA_DATA_ALTERABLE)
		if !ok {
			return
		}
		b.destination(inst, ROLE_DESTINATION)
		if inst.Dst.Mode == MODE_DN {
			b.perform(inst, uPerform, uPrefetch, idle(2))
		} else {
			b.perform(inst, uPerform, uPrefetch)
		}
		b.result(inst, ROLE_STORE)
		return true

	case opcode&0xfff8 == 0x4840:
		inst.Op = OP_SWAP
		inst.Size = SIZE_LONG
		inst.Dst = dn(opcode)
		b.destination(inst, ROLE_DESTINATION)
		b.perform(inst, uPerform, uPrefetch)
		b.result(inst, ROLE_STORE)
		return true

	case opcode&0xffc0 == 0x4840:
		inst.Op = OP_PEA
		inst.Size = SIZE_LONG
		inst.Src, ok = low(opcode, EA_CONTROL)
		if !ok {
			return
		}
		b.source(inst, ROLE_SOURCE_ADDRESS)
		if inst.Src.Mode.Indexed() {
			b.perform(inst, uPerform, idle(2), uPrefetch, uPushLow, uPushHigh)
		} else {
			b.perform(inst, uPerform, uPrefetch, uPushLow, uPushHigh)
		}
		return true

	case opcode&0xfff8 == 0x4880, opcode&0xfff8 == 0x48c0:
		inst.Op = OP_EXT
		inst.Size = SIZE_WORD
		if opcode&0x0040 != 0 {
			inst.Size = SIZE_LONG
		}
		inst.Dst = dn(opcode)
		b.destination(inst, ROLE_DESTINATION)
		b.perform(inst, uPerform, uPrefetch)
		b.result(inst, ROLE_STORE)
		return true

	case opcode&0xfb80 == 0x4880:
		inst.Op = OP_MOVEM
		inst.Size = SIZE_WORD
		if opcode&0x0040 != 0 {
			inst.Size = SIZE_LONG
		}
		inst.Data = uint32(opcode>>10) & 1
		class := EA_CONTROL_ALTERABLE | 1<<MODE_AN_PREDEC
		if inst.Data != 0 {
			class = EA_CONTROL | 1<<MODE_AN_POSTINC
		}
		inst.Dst, ok = low(opcode, class)
		if !ok {
			return
		}
		inst.Src = immediate()
		b.operand(inst, PHASE_SOURCE, inst.Src, SIZE_WORD, ROLE_SOURCE)
		b.operand(inst, PHASE_DESTINATION, inst.Dst, inst.Size, ROLE_DESTINATION_ADDRESS)
		if inst.Data != 0 {
			b.perform(inst, uPerform, uMovem,
				MicroOp{Kind: MICRO_READ, Mode: MODE_AN_INDIRECT, Slot: SLOT_SCRATCH, Part: PART_WORD},
				uPrefetch)
		} else {
			b.perform(inst, uPerform, uMovem, uPrefetch)
		}
		return true

	case opcode == 0x4afc:
		return false

	case opcode&0xffc0 == 0x4ac0:
		inst.Op = OP_TAS
		inst.Size = SIZE_BYTE
		inst.Dst, ok = low(opcode, EA_DATA_ALTERABLE)
		if !ok {
			return
		}
		if inst.Dst.Mode == MODE_DN {
			b.destination(inst, ROLE_DESTINATION)
			b.perform(inst, uPerform, uPrefetch)
			b.result(inst, ROLE_STORE)
			return true
		}
		b.destination(inst, ROLE_DESTINATION_LOCKED)
		b.perform(inst, uPerform, idle(2))
		b.result(inst, ROLE_STORE_LOCKED)
		b.tail(inst, uPrefetch)
		return true

	case opcode&0xff00 == 0x4a00:
		inst.Op = OP_TST
		inst.Size, _ = size(opcode)
		inst.Dst, ok = low(opcode, EA_DATA_ALTERABLE)
		if !ok {
			return
		}
		b.destination(inst, ROLE_DESTINATION)
		b.perform(inst, uPerform, uPrefetch)
		return true

	case opcode&0xfff0 == 0x4e40:
		inst.Op = OP_TRAP
		inst.Data = uint32(opcode & 0xf)
		b.perform(inst, uPerform)
		return true

	case opcode&0xfff8 == 0x4e50:
		inst.Op = OP_LINK
		inst.Size = SIZE_WORD
		inst.Dst = an(opcode)
		b.perform(inst, uLatch, uPerform, uPushLow, uPushHigh, uPerformPost, uPrefetch, uPrefetch)
		return true

	case opcode&0xfff8 == 0x4e58:
		inst.Op = OP_UNLK
		inst.Size = SIZE_LONG
		inst.Dst = an(opcode)
		b.perform(inst, uPerform, uPopHigh, uPopLow, uPerformPost, uPrefetch)
		return true

	case opcode&0xfff0 == 0x4e60:
		inst.Op = OP_MOVE_USP
		inst.Size = SIZE_LONG
		inst.Privileged = true
		inst.Data = uint32(opcode>>3) & 1
		inst.Dst = an(opcode)
		b.perform(inst, uPerform, uPrefetch)
		return true

	case opcode == 0x4e70:
		inst.Op = OP_RESET
		inst.Privileged = true
		b.perform(inst, uPerform, idle(128), uPrefetch)
		return true

	case opcode == 0x4e71:
		inst.Op = OP_NOP
		b.perform(inst, uPrefetch)
		return true

	case opcode == 0x4e72:
		inst.Op = OP_STOP
		inst.Privileged = true
		b.perform(inst, uLatch, uPrefetch, uPerform, uStop)
		return true

	case opcode == 0x4e73:
		inst.Op = OP_RTE
		inst.Privileged = true
		b.perform(inst, uPopWord, uPerform, uPopHigh, uPopLow, uPerformPost, uRefillIR, uRefillIRC)
		return true

	case opcode == 0x4e75:
		inst.Op = OP_RTS
		b.perform(inst, uPopHigh, uPopLow, uPerform, uRefillIR, uRefillIRC)
		return true

	case opcode == 0x4e76:
		inst.Op = OP_TRAPV
		b.perform(inst, uPerform, uPrefetch)
		return true

	case opcode == 0x4e77:
		inst.Op = OP_RTR
		b.perform(inst, uPopWord, uPerform, uPopHigh, uPopLow, uPerformPost, uRefillIR, uRefillIRC)
		return true

	case opcode&0xff80 == 0x4e80:
		inst.Op = OP_JSR
		if opcode&0x0040 != 0 {
			inst.Op = OP_JMP
		}
		inst.Size = SIZE_LONG
		inst.Src, ok = low(opcode, EA_CONTROL)
		if !ok {
			return
		}
		b.source(inst, ROLE_SOURCE_JUMP)

		var extra []MicroOp
		switch inst.Src.Mode {
		case MODE_AN_DISP, MODE_ABS_SHORT, MODE_PC_DISP:
			extra = []MicroOp{idle(2)}
		case MODE_AN_INDEX, MODE_PC_INDEX:
			extra = []MicroOp{idle(4)}
		}

		ops := append([]MicroOp{uPerform}, extra...)
		if inst.Op == OP_JMP {
			ops = append(ops, uRefillIR, uRefillIRC)
		} else {
			ops = append(ops, uRefillIR, uPushLow, uPushHigh, uRefillIRC)
		}
		b.perform(inst, ops...)
		return true
	}

	return false
}

func (b *builder) line5(inst *Instruction, opcode uint16) (ok bool) {
	if (opcode>>6)&3 == 3 {
		inst.Data = uint32(opcode>>8) & 0xf
		if (opcode>>3)&7 == 1 {
			inst.Op = OP_DBCC
			inst.Size = SIZE_WORD
			inst.Dst = dn(opcode)
			b.perform(inst, uLatch, uPerform, skip(4),
				idle(2), uRefillIR, uRefillIRC, uNext,
				uIdleLatched, uPrefetch, uPrefetch)
			return true
		}

		inst.Op = OP_SCC
		inst.Size = SIZE_BYTE
		inst.Dst, ok = low(opcode, EA_DATA_ALTERABLE)
		if !ok {
			return
		}
		if inst.Dst.Mode == MODE_DN {
			b.perform(inst, uPerform, uPrefetch, skip(1), idle(2))
		} else {
			b.destination(inst, ROLE_DESTINATION)
			b.perform(inst, uPerform, uPrefetch)
		}
		b.result(inst, ROLE_STORE)
		return true
	}

	inst.Op = OP_ADD
	if opcode&0x0100 != 0 {
		inst.Op = OP_SUB
	}
	inst.Data = uint32(opcode>>9) & 7
	if inst.Data == 0 {
		inst.Data = 8
	}
	inst.Src = quick()
	inst.Size, _ = size(opcode)
	inst.Dst, ok = low(opcode, EA_ALTERABLE)
	if !ok {
		return
	}

	if inst.Dst.Mode == MODE_AN {
		if inst.Size == SIZE_BYTE {
			return false
		}
		inst.Op += OP_ADDA - OP_ADD
		inst.Size = SIZE_LONG
		b.source(inst, ROLE_SOURCE)
		b.destination(inst, ROLE_DESTINATION)
		b.perform(inst, uPerform, uPrefetch, idle(4))
		b.result(inst, ROLE_STORE)
		return true
	}

	b.source(inst, ROLE_SOURCE)
	b.readModifyWrite(inst)
	return true
}

func (b *builder) branch(inst *Instruction, opcode uint16) (ok bool) {
	cond := Condition((opcode >> 8) & 0xf)
	disp := uint32(int32(int8(opcode)))

	inst.Size = SIZE_BYTE
	inst.Data = disp
	var latch []MicroOp
	if disp == 0 {
		inst.Size = SIZE_WORD
		latch = []MicroOp{uLatch}
	}

	if cond == CC_F {
		inst.Op = OP_BSR
		b.perform(inst, append(latch, uPerform, idle(2), uPushLow, uPushHigh, uRefillIR, uRefillIRC)...)
		return true
	}

	inst.Op = OP_BCC
	inst.Data = uint32(cond)
	if inst.Size == SIZE_WORD {
		b.perform(inst, append(latch, uPerform, skip(4),
			idle(2), uRefillIR, uRefillIRC, uNext,
			idle(4), uPrefetch, uPrefetch)...)
	} else {
		b.perform(inst, uPerform, skip(4),
			idle(2), uRefillIR, uRefillIRC, uNext,
			idle(4), uPrefetch)
	}
	return true
}

func (b *builder) moveq(inst *Instruction, opcode uint16) (ok bool) {
	if opcode&0x0100 != 0 {
		return false
	}
	inst.Op = OP_MOVE
	inst.Size = SIZE_LONG
	inst.Data = uint32(int32(int8(opcode)))
	inst.Src = quick()
	inst.Dst = dn(opcode >> 9)
	b.source(inst, ROLE_SOURCE)
	b.perform(inst, uPerform, uPrefetch)
	b.result(inst, ROLE_STORE)
	return true
}

// decimal decodes ABCD and SBCD.
func (b *builder) decimal(inst *Instruction, op Operation, opcode uint16) (ok bool) {
	inst.Op = op
	inst.Size = SIZE_BYTE
	if opcode&0x0008 == 0 {
		inst.Src = dn(opcode)
		inst.Dst = dn(opcode >> 9)
		b.source(inst, ROLE_SOURCE)
		b.destination(inst, ROLE_DESTINATION)
		b.perform(inst, uPerform, uPrefetch, idle(2))
		b.result(inst, ROLE_STORE)
		return true
	}
	inst.Src = Operand{Mode: MODE_AN_PREDEC, Reg: uint8(opcode & 7)}
	inst.Dst = Operand{Mode: MODE_AN_PREDEC, Reg: uint8((opcode >> 9) & 7)}
	b.source(inst, ROLE_SOURCE)
	b.destination(inst, ROLE_DESTINATION_CHAINED)
	b.perform(inst, uPerform, uPrefetch)
	b.result(inst, ROLE_STORE)
	return true
}

// extended decodes ADDX and SUBX.
func (b *builder) extended(inst *Instruction, op Operation, opcode uint16) (ok bool) {
	inst.Op = op
	inst.Size, _ = size(opcode)
	if opcode&0x0008 == 0 {
		inst.Src = dn(opcode)
		inst.Dst = dn(opcode >> 9)
		b.source(inst, ROLE_SOURCE)
		b.destination(inst, ROLE_DESTINATION)
		if inst.Size == SIZE_LONG {
			b.perform(inst, uPerform, uPrefetch, idle(4))
		} else {
			b.perform(inst, uPerform, uPrefetch)
		}
		b.result(inst, ROLE_STORE)
		return true
	}
	inst.Src = Operand{Mode: MODE_AN_PREDEC, Reg: uint8(opcode & 7)}
	inst.Dst = Operand{Mode: MODE_AN_PREDEC, Reg: uint8((opcode >> 9) & 7)}
	b.source(inst, ROLE_SOURCE)
	b.destination(inst, ROLE_DESTINATION_CHAINED)
	b.perform(inst, uPerform, uPrefetch)
	b.result(inst, ROLE_STORE)
	return true
}

// toRegister decodes "<ea>,Dn" forms of a binary operation.
func (b *builder) toRegister(inst *Instruction, op Operation, opcode uint16, class uint16) (ok bool) {
	inst.Op = op
	inst.Size, _ = size(opcode)
	inst.Src, ok = low(opcode, class)
	if !ok || (inst.Src.Mode == MODE_AN && inst.Size == SIZE_BYTE) {
		return false
	}
	inst.Dst = dn(opcode >> 9)
	b.source(inst, ROLE_SOURCE)
	b.readModifyWrite(inst)
	return true
}

// toMemory decodes "Dn,<ea>" forms of a binary operation.
func (b *builder) toMemory(inst *Instruction, op Operation, opcode uint16, class uint16) (ok bool) {
	inst.Op = op
	inst.Size, _ = size(opcode)
	inst.Src = dn(opcode >> 9)
	inst.Dst, ok = low(opcode, class)
	if !ok {
		return
	}
	b.source(inst, ROLE_SOURCE)
	b.readModifyWrite(inst)
	return true
}

// toAddress decodes ADDA, SUBA and CMPA.
func (b *builder) toAddress(inst *Instruction, op Operation, opcode uint16) (ok bool) {
	inst.Op = op
	inst.Size = SIZE_WORD
	if opcode&0x0100 != 0 {
		inst.Size = SIZE_LONG
	}
	inst.Src, ok = low(opcode, EA_ALL)
	if !ok {
		return
	}
	inst.Dst = an(opcode >> 9)
	b.source(inst, ROLE_SOURCE)
	b.operand(inst, PHASE_DESTINATION, inst.Dst, SIZE_LONG, ROLE_DESTINATION)

	if op == OP_CMPA {
		b.perform(inst, uPerform, uPrefetch, idle(2))
		return true
	}

	if inst.Size == SIZE_WORD {
		b.perform(inst, uPerform, uPrefetch, idle(4))
	} else {
		b.perform(inst, registerTail(SIZE_LONG, inst.Src)...)
	}
	b.result(inst, ROLE_STORE)
	return true
}

// multiply decodes MULU, MULS, DIVU and DIVS.
func (b *builder) multiply(inst *Instruction, op Operation, opcode uint16) (ok bool) {
	inst.Op = op
	inst.Size = SIZE_WORD
	inst.Src, ok = low(opcode, EA_DATA)
	if !ok {
		return
	}
	inst.Dst = dn(opcode >> 9)
	b.source(inst, ROLE_SOURCE)

	// The word source is latched; the register is a long operand.
	inst.Size = SIZE_LONG
	b.destination(inst, ROLE_DESTINATION)
	b.perform(inst, uPerform, uPrefetch, uIdleLatched)
	b.result(inst, ROLE_STORE)
	return true
}

func (b *builder) line8(inst *Instruction, opcode uint16) (ok bool) {
	mode := (opcode >> 3) & 7
	switch (opcode >> 6) & 7 {
	case 0, 1, 2:
		return b.toRegister(inst, OP_OR, opcode, EA_DATA)
	case 3:
		return b.multiply(inst, OP_DIVU, opcode)
	case 7:
		return b.multiply(inst, OP_DIVS, opcode)
	case 4:
		if mode <= 1 {
			return b.decimal(inst, OP_SBCD, opcode)
		}
	}
	if mode <= 1 {
		return false
	}
	return b.toMemory(inst, OP_OR, opcode, EA_MEMORY_ALTERABLE)
}

func (b *builder) arithmetic(inst *Instruction, opcode uint16) (ok bool) {
	add := opcode>>12 == 0xd
	op, opa, opx := OP_SUB, OP_SUBA, OP_SUBX
	if add {
		op, opa, opx = OP_ADD, OP_ADDA, OP_ADDX
	}

	switch (opcode >> 6) & 7 {
	case 3, 7:
		return b.toAddress(inst, opa, opcode)
	case 0, 1, 2:
		return b.toRegister(inst, op, opcode, EA_ALL)
	}
	if (opcode>>3)&7 <= 1 {
		return b.extended(inst, opx, opcode)
	}
	return b.toMemory(inst, op, opcode, EA_MEMORY_ALTERABLE)
}

func (b *builder) lineB(inst *Instruction, opcode uint16) (ok bool) {
	switch (opcode >> 6) & 7 {
	case 3, 7:
		return b.toAddress(inst, OP_CMPA, opcode)
	case 0, 1, 2:
		inst.Op = OP_CMP
		inst.Size, _ = size(opcode)
		inst.Src, ok = low(opcode, EA_ALL)
		if !ok || (inst.Src.Mode == MODE_AN && inst.Size == SIZE_BYTE) {
			return false
		}
		inst.Dst = dn(opcode >> 9)
		b.source(inst, ROLE_SOURCE)
		b.destination(inst, ROLE_DESTINATION)
		if inst.Size == SIZE_LONG {
			b.perform(inst, uPerform, uPrefetch, idle(2))
		} else {
			b.perform(inst, uPerform, uPrefetch)
		}
		return true
	}

	if (opcode>>3)&7 == 1 {
		inst.Op = OP_CMP
		inst.Size, _ = size(opcode)
		inst.Src = Operand{Mode: MODE_AN_POSTINC, Reg: uint8(opcode & 7)}
		inst.Dst = Operand{Mode: MODE_AN_POSTINC, Reg: uint8((opcode >> 9) & 7)}
		b.source(inst, ROLE_SOURCE)
		b.destination(inst, ROLE_DESTINATION_CHAINED)
		b.perform(inst, uPerform, uPrefetch)
		return true
	}

	return b.toMemory(inst, OP_EOR, opcode, EA_DATA_ALTERABLE)
}

func (b *builder) lineC(inst *Instruction, opcode uint16) (ok bool) {
	mode := (opcode >> 3) & 7
	switch (opcode >> 6) & 7 {
	case 0, 1, 2:
		return b.toRegister(inst, OP_AND, opcode, EA_DATA)
	case 3:
		return b.multiply(inst, OP_MULU, opcode)
	case 7:
		return b.multiply(inst, OP_MULS, opcode)
	case 4:
		if mode <= 1 {
			return b.decimal(inst, OP_ABCD, opcode)
		}
	case 5:
		if mode <= 1 {
			inst.Op = OP_EXG
			inst.Size = SIZE_LONG
			if mode == 0 {
				inst.Src, inst.Dst = dn(opcode>>9), dn(opcode)
			} else {
				inst.Src, inst.Dst = an(opcode>>9), an(opcode)
			}
			b.perform(inst, uPerform, uPrefetch, idle(2))
			return true
		}
	case 6:
		if mode == 1 {
			inst.Op = OP_EXG
			inst.Size = SIZE_LONG
			inst.Src, inst.Dst = dn(opcode>>9), an(opcode)
			b.perform(inst, uPerform, uPrefetch, idle(2))
			return true
		}
		if mode == 0 {
			return false
		}
	}
	if mode <= 1 {
		return false
	}
	return b.toMemory(inst, OP_AND, opcode, EA_MEMORY_ALTERABLE)
}

// shifts is indexed by the two bit type field and the direction bit.
var shifts = [4][2]Operation{
	{OP_ASR, OP_ASL},
	{OP_LSR, OP_LSL},
	{OP_ROXR, OP_ROXL},
	{OP_ROR, OP_ROL},
}

func (b *builder) shift(inst *Instruction, opcode uint16) (ok bool) {
	dir := (opcode >> 8) & 1

	if (opcode>>6)&3 == 3 {
		if opcode&0x0800 != 0 {
			return false
		}
		inst.Op = shifts[(opcode>>9)&3][dir]
		inst.Size = SIZE_WORD
		inst.Data = 1
		inst.Src = quick()
		inst.Dst, ok = low(opcode, EA_MEMORY_ALTERABLE)
		if !ok {
			return
		}
		b.source(inst, ROLE_SOURCE)
		b.destination(inst, ROLE_DESTINATION)
		b.perform(inst, uPerform, uPrefetch)
		b.result(inst, ROLE_STORE)
		return true
	}

	inst.Op = shifts[(opcode>>3)&3][dir]
	inst.Size, _ = size(opcode)
	inst.Dst = dn(opcode)
	if opcode&0x0020 != 0 {
		inst.Src = dn(opcode >> 9)
		b.operand(inst, PHASE_SOURCE, inst.Src, SIZE_LONG, ROLE_SOURCE)
	} else {
		inst.Data = uint32(opcode>>9) & 7
		if inst.Data == 0 {
			inst.Data = 8
		}
		inst.Src = quick()
		b.source(inst, ROLE_SOURCE)
	}
	b.destination(inst, ROLE_DESTINATION)
	b.perform(inst, uPerform, uPrefetch, uIdleLatched)
	b.result(inst, ROLE_STORE)
	return true
}
