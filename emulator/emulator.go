// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"slices"

	"github.com/ezrec/mc68k/bus"
	"github.com/ezrec/mc68k/cpu"
	"github.com/ezrec/mc68k/internal"
)

const (
	TRACE_LIMIT   = 4096                 // Transactions kept by the recorder.
	DEFAULT_SLICE = cpu.HalfCycles(2000) // Half-cycles run between host checks.
)

var _machine_defines = map[string]string{
	"TRACE_LIMIT":   fmt.Sprintf("%d", TRACE_LIMIT),
	"DEFAULT_SLICE": fmt.Sprintf("%d", DEFAULT_SLICE),
}

// Machine is a 68000 system: a processor, its address map, and an
// interrupt controller. Every transaction passes through the Recorder.
type Machine struct {
	Verbose  bool          // If set, enables verbose logging.
	CPU      *cpu.CPU      // Processor.
	Map      *bus.Map      // Address decoder.
	Recorder *bus.Recorder // Trace of recent transactions.
	Vectors  *bus.Vectors  // Interrupt controller.

	memories []*bus.Memory // RAM and ROM, for loading images.
}

// NewMachine creates a machine with an empty address map. The processor
// has a power-on reset pending.
func NewMachine() (m *Machine) {
	m = &Machine{
		Map:     &bus.Map{},
		Vectors: &bus.Vectors{},
	}
	m.Map.Interrupts = m.Vectors
	m.Recorder = &bus.Recorder{Bus: m.Map, Limit: TRACE_LIMIT}
	m.CPU = cpu.New(m.Recorder)
	m.Vectors.Line = m.CPU

	return
}

// Defines returns an iterator over all of the defines.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(internal.SortedDefines(_machine_defines),
		cpu.Defines(),
		bus.Defines(),
	)
}

// AddRam maps zeroed RAM.
func (m *Machine) AddRam(name string, base uint32, size uint32) (mem *bus.Memory, err error) {
	mem = bus.NewMemory(base, size)
	err = m.Map.Add(name, base, mem.Size(), mem)
	if err != nil {
		mem = nil
		return
	}
	m.memories = append(m.memories, mem)
	return
}

// AddRom maps read-only memory holding a copy of data.
func (m *Machine) AddRom(name string, base uint32, data []byte) (rom *bus.Rom, err error) {
	rom = bus.NewRom(base, data)
	err = m.Map.Add(name, base, rom.Size(), rom)
	if err != nil {
		rom = nil
		return
	}
	m.memories = append(m.memories, &rom.Memory)
	return
}

// AddFault maps a region that answers with bus errors.
func (m *Machine) AddFault(name string, base uint32, size uint32, writes bool) (fault *bus.Fault, err error) {
	fault = &bus.Fault{Writes: writes}
	err = m.Map.Add(name, base, size, fault)
	if err != nil {
		fault = nil
	}
	return
}

// SetWaitStates slows every region within a span.
func (m *Machine) SetWaitStates(base uint32, size uint32, delay cpu.HalfCycles, hold int) (err error) {
	count := m.Map.Wrap(base, size, func(device cpu.Bus) cpu.Bus {
		return &bus.WaitStates{Bus: device, Delay: delay, Hold: hold}
	})
	if count == 0 {
		err = ErrWaitStates
	}
	return
}

// SetVector sets the vector supplied when an interrupt level is
// acknowledged, bus.AUTOVECTOR for VPA.
func (m *Machine) SetVector(level uint8, vector uint8) (err error) {
	if level == 0 || level >= cpu.INTERRUPT_LEVEL_COUNT {
		err = cpu.ErrInterruptSpan
		return
	}
	m.Vectors.Vector[level] = vector
	return
}

// memory returns the RAM or ROM holding an address.
func (m *Machine) memory(address uint32) (mem *bus.Memory, ok bool) {
	n := slices.IndexFunc(m.memories, func(mem *bus.Memory) bool {
		return address >= mem.Base && uint64(address) < uint64(mem.Base)+uint64(mem.Size())
	})
	if n < 0 {
		return
	}
	mem, ok = m.memories[n], true
	return
}

// Load copies an image into the RAM or ROM holding base.
func (m *Machine) Load(base uint32, data []byte) (err error) {
	mem, ok := m.memory(base)
	if !ok {
		err = ErrUnmapped
		return
	}
	err = mem.Load(base, data)
	return
}

// Reset clears the trace, resets the devices, and asserts the processor
// reset input.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("machine: reset")
	}
	m.Recorder.Clear()
	m.Map.ResetDevices()
	m.CPU.Reset()
}

// Start places the processor at an instruction boundary at pc with the
// supervisor stack at ssp, without taking the reset exception.
func (m *Machine) Start(pc uint32, ssp uint32) (err error) {
	mem, ok := m.memory(pc)
	if !ok {
		err = ErrUnmapped
		return
	}
	err = m.CPU.SetRegister(cpu.REG_SR, uint32(cpu.SR_S|cpu.SR_MASK))
	if err != nil {
		return
	}
	err = m.CPU.SetRegister(cpu.REG_SSP, ssp)
	if err != nil {
		return
	}
	err = m.CPU.SetRegister(cpu.REG_PC, pc)
	if err != nil {
		return
	}
	m.CPU.SetPrefetch(mem.Word(pc), mem.Word(pc+2))

	if m.Verbose {
		log.Printf("machine: start pc=%06x ssp=%06x", pc, ssp)
	}
	return
}

// RaiseInterrupt requests an interrupt at a level, 1 to 7.
func (m *Machine) RaiseInterrupt(level uint8) (err error) {
	return m.Vectors.Raise(level)
}

// ClearInterrupt withdraws an interrupt request.
func (m *Machine) ClearInterrupt(level uint8) (err error) {
	return m.Vectors.Clear(level)
}

// Elapsed returns the half-cycles run since creation.
func (m *Machine) Elapsed() cpu.HalfCycles {
	return m.CPU.Elapsed()
}

// RunFor runs the machine for a budget of half-cycles. A processor that
// halts ends the run with an ErrRuntime.
func (m *Machine) RunFor(budget cpu.HalfCycles) (err error) {
	m.CPU.Verbose = m.Verbose
	m.Recorder.Verbose = m.Verbose
	m.Map.Verbose = m.Verbose
	m.Vectors.Verbose = m.Verbose

	m.CPU.RunFor(budget)

	if m.CPU.Halted() {
		s := m.CPU.Snapshot()
		err = &ErrRuntime{PC: s.InstPC, Opcode: s.Opcode, Err: ErrHalted}
	}
	return
}

// Registers returns the register file, in RegisterID order.
func (m *Machine) Registers() iter.Seq2[cpu.RegisterID, uint32] {
	return func(yield func(cpu.RegisterID, uint32) bool) {
		for id := cpu.REG_D0; id <= cpu.REG_SR; id++ {
			value, err := m.CPU.Register(id)
			if err != nil {
				continue
			}
			if !yield(id, value) {
				return
			}
		}
	}
}
