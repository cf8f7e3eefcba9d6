package cpu

import (
	"fmt"
)

// RegisterID is a symbolic architectural register identifier.
type RegisterID int

//go:generate go tool stringer -linecomment -type=RegisterID
const (
	REG_D0  = RegisterID(0)  // d0
	REG_D1  = RegisterID(1)  // d1
	REG_D2  = RegisterID(2)  // d2
	REG_D3  = RegisterID(3)  // d3
	REG_D4  = RegisterID(4)  // d4
	REG_D5  = RegisterID(5)  // d5
	REG_D6  = RegisterID(6)  // d6
	REG_D7  = RegisterID(7)  // d7
	REG_A0  = RegisterID(8)  // a0
	REG_A1  = RegisterID(9)  // a1
	REG_A2  = RegisterID(10) // a2
	REG_A3  = RegisterID(11) // a3
	REG_A4  = RegisterID(12) // a4
	REG_A5  = RegisterID(13) // a5
	REG_A6  = RegisterID(14) // a6
	REG_A7  = RegisterID(15) // a7
	REG_USP = RegisterID(16) // usp
	REG_SSP = RegisterID(17) // ssp
	REG_PC  = RegisterID(18) // pc
	REG_SR  = RegisterID(19) // sr
)

// Status register bits.
const (
	SR_C          = uint16(1 << 0)  // Carry
	SR_V          = uint16(1 << 1)  // Overflow
	SR_Z          = uint16(1 << 2)  // Zero
	SR_N          = uint16(1 << 3)  // Negative
	SR_X          = uint16(1 << 4)  // Extend
	SR_CCR        = uint16(0x001f)  // Condition code byte
	SR_MASK       = uint16(7 << 8)  // Interrupt priority mask
	SR_MASK_SHIFT = 8               // Shift of the interrupt priority mask
	SR_S          = uint16(1 << 13) // Supervisor
	SR_T          = uint16(1 << 15) // Trace
	SR_VALID      = uint16(0xa71f)  // Implemented bits
)

// RegisterFile is D0-D7 followed by A0-A7. A7 is always the active
// stack pointer.
type RegisterFile [16]uint32

// Read returns the low byte, word or long of register n.
func (rf *RegisterFile) Read(n int, size Size) uint32 {
	return rf[n] & size.Mask()
}

// Write replaces the low byte, word or long of register n, leaving the
// remaining upper bits unchanged.
func (rf *RegisterFile) Write(n int, size Size, value uint32) {
	mask := size.Mask()
	rf[n] = (rf[n] &^ mask) | (value & mask)
}

// supervisor returns true in supervisor mode.
func (c *CPU) supervisor() bool {
	return c.sr&SR_S != 0
}

// mask returns the interrupt priority mask.
func (c *CPU) mask() uint8 {
	return uint8((c.sr & SR_MASK) >> SR_MASK_SHIFT)
}

// setSR writes the status register, swapping stack pointers when the
// supervisor bit changes.
func (c *CPU) setSR(sr uint16) {
	sr &= SR_VALID
	if (sr^c.sr)&SR_S != 0 {
		c.reg[15], c.sp = c.sp, c.reg[15]
	}
	c.sr = sr
}

// setCCR replaces the condition code byte.
func (c *CPU) setCCR(ccr uint16) {
	c.sr = (c.sr &^ SR_CCR) | (ccr & SR_CCR)
}

// flag returns true if all the given status bits are set.
func (c *CPU) flag(bits uint16) bool {
	return c.sr&bits == bits
}

// setFlag sets or clears status bits.
func (c *CPU) setFlag(bits uint16, on bool) {
	if on {
		c.sr |= bits
	} else {
		c.sr &^= bits
	}
}

// Register returns the value of an architectural register.
func (c *CPU) Register(id RegisterID) (value uint32, err error) {
	switch {
	case id >= REG_D0 && id <= REG_A7:
		value = c.reg[id]
	case id == REG_USP:
		value = c.reg[15]
		if c.supervisor() {
			value = c.sp
		}
	case id == REG_SSP:
		value = c.sp
		if c.supervisor() {
			value = c.reg[15]
		}
	case id == REG_PC:
		value = c.pc
	case id == REG_SR:
		value = uint32(c.sr)
	default:
		err = ErrRegisterID
	}

	return
}

// SetRegister writes an architectural register. Writes made while an
// instruction is in flight have no defined interaction with it.
func (c *CPU) SetRegister(id RegisterID, value uint32) (err error) {
	switch {
	case id >= REG_D0 && id <= REG_A7:
		c.reg[id] = value
	case id == REG_USP:
		if c.supervisor() {
			c.sp = value
		} else {
			c.reg[15] = value
		}
	case id == REG_SSP:
		if c.supervisor() {
			c.reg[15] = value
		} else {
			c.sp = value
		}
	case id == REG_PC:
		c.pc = value
	case id == REG_SR:
		c.setSR(uint16(value))
	default:
		err = ErrRegisterID
	}

	return
}

// String returns the register file as text.
func (c *CPU) String() (text string) {
	for n := range 8 {
		text += fmt.Sprintf("d%d: %08x  a%d: %08x\n", n, c.reg[n], n, c.reg[8+n])
	}
	usp, _ := c.Register(REG_USP)
	ssp, _ := c.Register(REG_SSP)
	text += fmt.Sprintf("usp: %08x ssp: %08x\n", usp, ssp)
	text += fmt.Sprintf(" pc: %08x  sr: %04x %v\n", c.pc, c.sr, c.cursor.String())
	return
}
