package cpu

// HalfCycles is a span of time in half periods of the processor clock.
type HalfCycles int64

const (
	HALF_CYCLES_PER_CLOCK = HalfCycles(2) // One clock period.
	BUS_CYCLE_COST        = HalfCycles(8) // Minimum (zero wait state) bus cycle.
)

// Clocks converts a number of processor clocks to half-cycles.
func Clocks(n int) HalfCycles {
	return HalfCycles(n) * HALF_CYCLES_PER_CLOCK
}

// Size is an operand size.
type Size int

//go:generate go tool stringer -linecomment -type=Size
const (
	SIZE_BYTE = Size(0) // b
	SIZE_WORD = Size(1) // w
	SIZE_LONG = Size(2) // l
)

// Mask returns the bits covered by the size.
func (s Size) Mask() uint32 {
	switch s {
	case SIZE_BYTE:
		return 0xff
	case SIZE_WORD:
		return 0xffff
	}
	return 0xffffffff
}

// Sign returns the sign bit of the size.
func (s Size) Sign() uint32 {
	switch s {
	case SIZE_BYTE:
		return 0x80
	case SIZE_WORD:
		return 0x8000
	}
	return 0x80000000
}

// Bytes returns the number of bytes in the size.
func (s Size) Bytes() uint32 {
	switch s {
	case SIZE_BYTE:
		return 1
	case SIZE_WORD:
		return 2
	}
	return 4
}

// Bits returns the number of bits in the size.
func (s Size) Bits() uint {
	return uint(s.Bytes() * 8)
}

// Extend sign extends a value of this size to 32 bits.
func (s Size) Extend(value uint32) uint32 {
	switch s {
	case SIZE_BYTE:
		return uint32(int32(int8(value)))
	case SIZE_WORD:
		return uint32(int32(int16(value)))
	}
	return value
}
