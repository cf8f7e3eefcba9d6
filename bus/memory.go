package bus

import (
	"github.com/ezrec/mc68k/cpu"
)

// Memory is big-endian RAM at a base address.
type Memory struct {
	Base uint32
	Data []byte
}

var _ cpu.Bus = (*Memory)(nil)

// NewMemory returns zeroed memory of size bytes, rounded up to whole words.
func NewMemory(base uint32, size uint32) (mem *Memory) {
	mem = &Memory{
		Base: base,
		Data: make([]byte, (size+1)&^1),
	}
	return
}

// Size returns the size of the memory in bytes.
func (mem *Memory) Size() uint32 {
	return uint32(len(mem.Data))
}

// offset returns the word aligned offset of an address.
func (mem *Memory) offset(address uint32) (offset uint32, ok bool) {
	offset = (address - mem.Base) &^ 1
	ok = offset < mem.Size()
	return
}

// Load copies data into memory at an address.
func (mem *Memory) Load(address uint32, data []byte) (err error) {
	start := address - mem.Base
	if address < mem.Base || uint64(start)+uint64(len(data)) > uint64(mem.Size()) {
		err = ErrLoad
		return
	}
	copy(mem.Data[start:], data)
	return
}

// Word returns the word at an address.
func (mem *Memory) Word(address uint32) (value uint16) {
	o, ok := mem.offset(address)
	if !ok {
		return
	}
	value = uint16(mem.Data[o])<<8 | uint16(mem.Data[o+1])
	return
}

// SetWord replaces the word at an address.
func (mem *Memory) SetWord(address uint32, value uint16) {
	o, ok := mem.offset(address)
	if !ok {
		return
	}
	mem.Data[o] = byte(value >> 8)
	mem.Data[o+1] = byte(value)
}

// Long returns the long word at an address.
func (mem *Memory) Long(address uint32) uint32 {
	return uint32(mem.Word(address))<<16 | uint32(mem.Word(address+2))
}

// SetLong replaces the long word at an address.
func (mem *Memory) SetLong(address uint32, value uint32) {
	mem.SetWord(address, uint16(value>>16))
	mem.SetWord(address+2, uint16(value))
}

// write stores the selected lanes of a transaction.
func (mem *Memory) write(o uint32, tx *cpu.Transaction) {
	if tx.Select&cpu.SELECT_UPPER != 0 {
		mem.Data[o] = byte(tx.Value >> 8)
	}
	if tx.Select&cpu.SELECT_LOWER != 0 {
		mem.Data[o+1] = byte(tx.Value)
	}
}

// Perform reads or writes the memory. Reads drive both byte lanes.
func (mem *Memory) Perform(tx *cpu.Transaction) (delay cpu.HalfCycles) {
	o, ok := mem.offset(tx.Address)
	if !ok {
		tx.Response = cpu.RESPONSE_BERR
		return
	}

	tx.Response = cpu.RESPONSE_DTACK
	if tx.Op.IsWrite() {
		mem.write(o, tx)
		return
	}

	tx.Value = uint16(mem.Data[o])<<8 | uint16(mem.Data[o+1])
	return
}

// Rom is read-only memory. Writes are acknowledged and discarded.
type Rom struct {
	Memory
}

var _ cpu.Bus = (*Rom)(nil)

// NewRom returns read-only memory holding a copy of data.
func NewRom(base uint32, data []byte) (rom *Rom) {
	rom = &Rom{Memory: *NewMemory(base, uint32(len(data)))}
	copy(rom.Data, data)
	return
}

func (rom *Rom) Perform(tx *cpu.Transaction) (delay cpu.HalfCycles) {
	if tx.Op.IsWrite() {
		tx.Response = cpu.RESPONSE_DTACK
		if _, ok := rom.offset(tx.Address); !ok {
			tx.Response = cpu.RESPONSE_BERR
		}
		return
	}
	return rom.Memory.Perform(tx)
}
