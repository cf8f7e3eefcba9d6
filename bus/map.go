// Package bus provides the devices a 68000 system is built from: memory,
// an address decoder, wait state generation, bus fault regions, an
// interrupt controller, and a transaction recorder.
package bus

import (
	"cmp"
	"fmt"
	"iter"
	"log"
	"slices"

	"github.com/ezrec/mc68k/cpu"
	"github.com/ezrec/mc68k/internal"
)

// OPEN_BUS_VALUE is read from an unmapped address when the bus floats.
const OPEN_BUS_VALUE = uint16(0xffff)

// ADDRESS_SPACE is the size of the 24 bit address space.
const ADDRESS_SPACE = uint64(cpu.ADDRESS_MASK) + 1

var _bus_defines = map[string]string{
	"OPEN_BUS_VALUE": fmt.Sprintf("0x%04x", OPEN_BUS_VALUE),
	"ADDRESS_SPACE":  fmt.Sprintf("0x%x", ADDRESS_SPACE),
	"AUTOVECTOR":     "0",
}

// Defines returns the constants of the bus package, for configuration
// scripts.
func Defines() iter.Seq2[string, string] {
	return internal.SortedDefines(_bus_defines)
}

// Region is a device mapped over a span of the address space.
type Region struct {
	Name   string
	Base   uint32
	Size   uint32
	Device cpu.Bus
}

// End returns the address just past the region.
func (r Region) End() uint64 {
	return uint64(r.Base) + uint64(r.Size)
}

// Contains returns true if the address lies within the region.
func (r Region) Contains(address uint32) bool {
	return address >= r.Base && uint64(address) < r.End()
}

// Map is an address decoder. Each transaction is passed, with its address
// unchanged, to the device mapped at that address.
type Map struct {
	Verbose    bool    // Set to log unmapped accesses.
	OpenBus    bool    // Unmapped reads see OPEN_BUS_VALUE, unmapped writes are ignored.
	Interrupts cpu.Bus // Answers interrupt acknowledge. Autovectored when nil.

	regions []Region // Sorted by base.
	waiting cpu.Waiter
}

var _ cpu.Bus = (*Map)(nil)
var _ cpu.Waiter = (*Map)(nil)
var _ cpu.Resetter = (*Map)(nil)

// Add maps a device over a span of the address space.
func (m *Map) Add(name string, base uint32, size uint32, device cpu.Bus) (err error) {
	region := Region{Name: name, Base: base, Size: size, Device: device}
	defer func() {
		if err != nil {
			err = &ErrRegion{Name: name, Err: err}
		}
	}()

	if size == 0 {
		err = ErrEmpty
		return
	}
	if region.End() > ADDRESS_SPACE {
		err = ErrRange
		return
	}

	n, _ := slices.BinarySearchFunc(m.regions, base, func(r Region, base uint32) int {
		return cmp.Compare(r.Base, base)
	})
	if n > 0 && m.regions[n-1].End() > uint64(base) {
		err = ErrOverlap
		return
	}
	if n < len(m.regions) && region.End() > uint64(m.regions[n].Base) {
		err = ErrOverlap
		return
	}

	m.regions = slices.Insert(m.regions, n, region)
	return
}

// Regions returns the mapped regions in address order.
func (m *Map) Regions() iter.Seq[Region] {
	return slices.Values(m.regions)
}

// Wrap replaces the device of every region lying within a span by the
// device wrap returns for it. It returns the number of regions wrapped.
func (m *Map) Wrap(base uint32, size uint32, wrap func(cpu.Bus) cpu.Bus) (count int) {
	end := uint64(base) + uint64(size)
	for n, region := range m.regions {
		if region.Base >= base && region.End() <= end {
			m.regions[n].Device = wrap(region.Device)
			count++
		}
	}
	return
}

// Find returns the region mapped at an address.
func (m *Map) Find(address uint32) (region Region, ok bool) {
	address &= cpu.ADDRESS_MASK
	n, found := slices.BinarySearchFunc(m.regions, address, func(r Region, address uint32) int {
		return cmp.Compare(r.Base, address)
	})
	if !found {
		n--
	}
	if n < 0 || !m.regions[n].Contains(address) {
		return
	}
	region, ok = m.regions[n], true
	return
}

// Perform dispatches a transaction to the device at its address.
func (m *Map) Perform(tx *cpu.Transaction) (delay cpu.HalfCycles) {
	m.waiting = nil

	switch tx.Op {
	case cpu.BUS_IDLE, cpu.BUS_STOPPED:
		return
	case cpu.BUS_INTERRUPT_ACKNOWLEDGE:
		if m.Interrupts == nil {
			tx.Response = cpu.RESPONSE_VPA
			return
		}
		return m.dispatch(m.Interrupts, tx)
	}

	region, ok := m.Find(tx.Address)
	if !ok {
		if m.Verbose {
			log.Printf("bus: unmapped %v", tx)
		}
		tx.Response = cpu.RESPONSE_DTACK
		if !m.OpenBus {
			tx.Response = cpu.RESPONSE_BERR
		} else if tx.Op.IsRead() {
			tx.Value = OPEN_BUS_VALUE
		}
		return
	}

	return m.dispatch(region.Device, tx)
}

// dispatch performs a transaction on a device, noting a device that holds
// off the acknowledge.
func (m *Map) dispatch(device cpu.Bus, tx *cpu.Transaction) (delay cpu.HalfCycles) {
	delay = device.Perform(tx)
	if tx.Response == cpu.RESPONSE_WAIT {
		m.waiting, _ = device.(cpu.Waiter)
	}
	return
}

// Poll forwards to the device holding off the acknowledge.
func (m *Map) Poll(tx *cpu.Transaction) (response cpu.Response) {
	if m.waiting == nil {
		return cpu.RESPONSE_DTACK
	}
	response = m.waiting.Poll(tx)
	if response != cpu.RESPONSE_WAIT {
		m.waiting = nil
	}
	return
}

// ResetDevices resets every mapped device that responds to RESET.
func (m *Map) ResetDevices() {
	m.waiting = nil
	for _, region := range m.regions {
		if resetter, ok := region.Device.(cpu.Resetter); ok {
			resetter.ResetDevices()
		}
	}
	if resetter, ok := m.Interrupts.(cpu.Resetter); ok {
		resetter.ResetDevices()
	}
}
