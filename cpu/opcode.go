package cpu

import (
	"fmt"
)

// Operation is the semantic tag of a decoded instruction.
type Operation uint8

//go:generate go tool stringer -linecomment -type=Operation
const (
	OP_ILLEGAL      = Operation(0)  // illegal
	OP_LINE_A       = Operation(1)  // linea
	OP_LINE_F       = Operation(2)  // linef
	OP_ABCD         = Operation(3)  // abcd
	OP_ADD          = Operation(4)  // add
	OP_ADDA         = Operation(5)  // adda
	OP_ADDX         = Operation(6)  // addx
	OP_AND          = Operation(7)  // and
	OP_ANDI_CCR     = Operation(8)  // andi_ccr
	OP_ANDI_SR      = Operation(9)  // andi_sr
	OP_ASL          = Operation(10) // asl
	OP_ASR          = Operation(11) // asr
	OP_BCC          = Operation(12) // bcc
	OP_BCHG         = Operation(13) // bchg
	OP_BCLR         = Operation(14) // bclr
	OP_BSET         = Operation(15) // bset
	OP_BSR          = Operation(16) // bsr
	OP_BTST         = Operation(17) // btst
	OP_CHK          = Operation(18) // chk
	OP_CLR          = Operation(19) // clr
	OP_CMP          = Operation(20) // cmp
	OP_CMPA         = Operation(21) // cmpa
	OP_DBCC         = Operation(22) // dbcc
	OP_DIVS         = Operation(23) // divs
	OP_DIVU         = Operation(24) // divu
	OP_EOR          = Operation(25) // eor
	OP_EORI_CCR     = Operation(26) // eori_ccr
	OP_EORI_SR      = Operation(27) // eori_sr
	OP_EXG          = Operation(28) // exg
	OP_EXT          = Operation(29) // ext
	OP_JMP          = Operation(30) // jmp
	OP_JSR          = Operation(31) // jsr
	OP_LEA          = Operation(32) // lea
	OP_LINK         = Operation(33) // link
	OP_LSL          = Operation(34) // lsl
	OP_LSR          = Operation(35) // lsr
	OP_MOVE         = Operation(36) // move
	OP_MOVEA        = Operation(37) // movea
	OP_MOVE_TO_CCR  = Operation(38) // move_ccr
	OP_MOVE_FROM_SR = Operation(39) // move_from_sr
	OP_MOVE_TO_SR   = Operation(40) // move_sr
	OP_MOVE_USP     = Operation(41) // move_usp
	OP_MOVEM        = Operation(42) // movem
	OP_MOVEP        = Operation(43) // movep
	OP_MULS         = Operation(44) // muls
	OP_MULU         = Operation(45) // mulu
	OP_NBCD         = Operation(46) // nbcd
	OP_NEG          = Operation(47) // neg
	OP_NEGX         = Operation(48) // negx
	OP_NOP          = Operation(49) // nop
	OP_NOT          = Operation(50) // not
	OP_OR           = Operation(51) // or
	OP_ORI_CCR      = Operation(52) // ori_ccr
	OP_ORI_SR       = Operation(53) // ori_sr
	OP_PEA          = Operation(54) // pea
	OP_RESET        = Operation(55) // reset
	OP_ROL          = Operation(56) // rol
	OP_ROR          = Operation(57) // ror
	OP_ROXL         = Operation(58) // roxl
	OP_ROXR         = Operation(59) // roxr
	OP_RTE          = Operation(60) // rte
	OP_RTR          = Operation(61) // rtr
	OP_RTS          = Operation(62) // rts
	OP_SBCD         = Operation(63) // sbcd
	OP_SCC          = Operation(64) // scc
	OP_STOP         = Operation(65) // stop
	OP_SUB          = Operation(66) // sub
	OP_SUBA         = Operation(67) // suba
	OP_SUBX         = Operation(68) // subx
	OP_SWAP         = Operation(69) // swap
	OP_TAS          = Operation(70) // tas
	OP_TRAP         = Operation(71) // trap
	OP_TRAPV        = Operation(72) // trapv
	OP_TST          = Operation(73) // tst
	OP_UNLK         = Operation(74) // unlk
)

// AddrMode is an operand addressing mode.
type AddrMode uint8

//go:generate go tool stringer -linecomment -type=AddrMode
const (
	MODE_NONE        = AddrMode(0)  // -
	MODE_DN          = AddrMode(1)  // dn
	MODE_AN          = AddrMode(2)  // an
	MODE_AN_INDIRECT = AddrMode(3)  // (an)
	MODE_AN_POSTINC  = AddrMode(4)  // (an)+
	MODE_AN_PREDEC   = AddrMode(5)  // -(an)
	MODE_AN_DISP     = AddrMode(6)  // d16(an)
	MODE_AN_INDEX    = AddrMode(7)  // d8(an,xn)
	MODE_ABS_SHORT   = AddrMode(8)  // abs.w
	MODE_ABS_LONG    = AddrMode(9)  // abs.l
	MODE_PC_DISP     = AddrMode(10) // d16(pc)
	MODE_PC_INDEX    = AddrMode(11) // d8(pc,xn)
	MODE_IMMEDIATE   = AddrMode(12) // #imm
	MODE_QUICK       = AddrMode(13) // #q
	MODE_COUNT       = 14
)

// Addressing mode classes, as bit sets of (1 << AddrMode).
const (
	EA_DN                = uint16(1 << MODE_DN)
	EA_AN                = uint16(1 << MODE_AN)
	EA_ALL               = uint16(0x1ffe)
	EA_DATA              = EA_ALL &^ EA_AN
	EA_MEMORY            = EA_ALL &^ (EA_DN | EA_AN)
	EA_CONTROL           = uint16(1<<MODE_AN_INDIRECT | 1<<MODE_AN_DISP | 1<<MODE_AN_INDEX | 1<<MODE_ABS_SHORT | 1<<MODE_ABS_LONG | 1<<MODE_PC_DISP | 1<<MODE_PC_INDEX)
	EA_ALTERABLE         = uint16(0x03fe)
	EA_DATA_ALTERABLE    = EA_ALTERABLE &^ EA_AN
	EA_MEMORY_ALTERABLE  = EA_ALTERABLE &^ (EA_DN | EA_AN)
	EA_CONTROL_ALTERABLE = EA_CONTROL & EA_ALTERABLE
)

// Memory returns true for modes that address memory.
func (mode AddrMode) Memory() bool {
	return mode >= MODE_AN_INDIRECT && mode <= MODE_PC_INDEX
}

// Program returns true for program counter relative modes.
func (mode AddrMode) Program() bool {
	return mode == MODE_PC_DISP || mode == MODE_PC_INDEX
}

// Indexed returns true for the brief extension word index modes.
func (mode AddrMode) Indexed() bool {
	return mode == MODE_AN_INDEX || mode == MODE_PC_INDEX
}

// Condition is a 68000 condition code test.
type Condition uint8

//go:generate go tool stringer -linecomment -type=Condition
const (
	CC_T  = Condition(0)  // t
	CC_F  = Condition(1)  // f
	CC_HI = Condition(2)  // hi
	CC_LS = Condition(3)  // ls
	CC_CC = Condition(4)  // cc
	CC_CS = Condition(5)  // cs
	CC_NE = Condition(6)  // ne
	CC_EQ = Condition(7)  // eq
	CC_VC = Condition(8)  // vc
	CC_VS = Condition(9)  // vs
	CC_PL = Condition(10) // pl
	CC_MI = Condition(11) // mi
	CC_GE = Condition(12) // ge
	CC_LT = Condition(13) // lt
	CC_GT = Condition(14) // gt
	CC_LE = Condition(15) // le
)

// Test evaluates the condition against a status register.
func (cc Condition) Test(sr uint16) (ok bool) {
	c := sr&SR_C != 0
	v := sr&SR_V != 0
	z := sr&SR_Z != 0
	n := sr&SR_N != 0

	switch cc {
	case CC_T:
		ok = true
	case CC_F:
		ok = false
	case CC_HI:
		ok = !c && !z
	case CC_LS:
		ok = c || z
	case CC_CC:
		ok = !c
	case CC_CS:
		ok = c
	case CC_NE:
		ok = !z
	case CC_EQ:
		ok = z
	case CC_VC:
		ok = !v
	case CC_VS:
		ok = v
	case CC_PL:
		ok = !n
	case CC_MI:
		ok = n
	case CC_GE:
		ok = n == v
	case CC_LT:
		ok = n != v
	case CC_GT:
		ok = !z && n == v
	case CC_LE:
		ok = z || n != v
	}

	return
}

// Operand is a decoded operand location.
type Operand struct {
	Mode AddrMode
	Reg  uint8
}

// String returns the operand in assembler notation.
func (o Operand) String() string {
	switch o.Mode {
	case MODE_NONE:
		return ""
	case MODE_DN:
		return fmt.Sprintf("d%d", o.Reg)
	case MODE_AN:
		return fmt.Sprintf("a%d", o.Reg)
	case MODE_AN_INDIRECT:
		return fmt.Sprintf("(a%d)", o.Reg)
	case MODE_AN_POSTINC:
		return fmt.Sprintf("(a%d)+", o.Reg)
	case MODE_AN_PREDEC:
		return fmt.Sprintf("-(a%d)", o.Reg)
	case MODE_AN_DISP:
		return fmt.Sprintf("d16(a%d)", o.Reg)
	case MODE_AN_INDEX:
		return fmt.Sprintf("d8(a%d,xn)", o.Reg)
	}
	return o.Mode.String()
}

// In returns true if the operand's mode is in the class.
func (o Operand) In(class uint16) bool {
	return o.Mode != MODE_NONE && class&(1<<o.Mode) != 0
}

// Phases of an instruction, in execution order.
const (
	PHASE_SOURCE      = 0 // Fetch source operand.
	PHASE_DESTINATION = 1 // Fetch or address destination operand.
	PHASE_PERFORM     = 2 // Perform the operation.
	PHASE_STORE       = 3 // Store the result.
	PHASE_TAIL        = 4 // Trailing prefetch.
	PHASE_COUNT       = 5
)

// Instruction is an immutable decoded instruction descriptor.
type Instruction struct {
	Op         Operation
	Size       Size
	Src        Operand
	Dst        Operand
	Data       uint32 // Quick data, condition, trap number or direction.
	Privileged bool

	Programs [PHASE_COUNT]ProgramRef
}

// String returns the instruction in assembler-like notation.
func (inst *Instruction) String() (text string) {
	text = inst.Op.String()
	switch inst.Op {
	case OP_ILLEGAL, OP_LINE_A, OP_LINE_F, OP_NOP, OP_RESET, OP_RTE, OP_RTR, OP_RTS, OP_TRAPV:
		return
	case OP_BCC, OP_DBCC, OP_SCC:
		text = text[:len(text)-2] + Condition(inst.Data).String()
	}
	text += "." + inst.Size.String()
	if inst.Src.Mode != MODE_NONE {
		text += " " + inst.Src.String()
	}
	if inst.Dst.Mode != MODE_NONE {
		text += "," + inst.Dst.String()
	}
	return
}
