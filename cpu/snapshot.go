package cpu

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// SNAPSHOT_MAGIC prefixes an encoded Snapshot.
const SNAPSHOT_MAGIC = "m68k\x00\x01"

// Snapshot is the complete state of a processor, including the position of
// the engine within an instruction.
type Snapshot struct {
	Registers RegisterFile // D0-D7, A0-A7 with A7 the active stack pointer.
	SP        uint32       // Inactive stack pointer.
	PC        uint32       // Address of the first prefetch word.
	SR        uint16
	Prefetch  [2]uint16

	Opcode uint16 // Instruction in progress.
	InstPC uint32
	Traced bool
	IPL    uint8

	Pending Pending
	Cursor  Cursor
	Resume  Cursor
	Waiting Transaction

	Remaining HalfCycles
	Elapsed   HalfCycles

	Latch Latch
	Frame Frame
}

// Snapshot returns the state of the processor.
func (c *CPU) Snapshot() (s Snapshot) {
	s = Snapshot{
		Registers: c.reg,
		SP:        c.sp,
		PC:        c.pc,
		SR:        c.sr,
		Prefetch:  c.prefetch,
		Opcode:    c.opcode,
		InstPC:    c.instPC,
		Traced:    c.instTrace,
		IPL:       c.ipl,
		Pending:   c.pending,
		Cursor:    c.cursor,
		Resume:    c.resume,
		Waiting:   c.waiting,
		Remaining: c.remaining,
		Elapsed:   c.elapsed,
		Latch:     c.latch,
		Frame:     c.frame,
	}
	return
}

// validCursor returns true if a cursor lies within its program.
func validCursor(cur Cursor) bool {
	return cur.State <= STATE_HALTED &&
		Programs().Valid(cur.Program) &&
		cur.Index <= cur.Program.Len
}

// Validate checks that a snapshot can be restored.
func (s *Snapshot) Validate() (err error) {
	switch {
	case s.SR&^SR_VALID != 0:
		err = ErrSnapshotField{Field: "sr", Err: ErrSnapshot}
	case s.IPL >= INTERRUPT_LEVEL_COUNT:
		err = ErrSnapshotField{Field: "ipl", Err: ErrInterruptSpan}
	case s.Pending.Level >= INTERRUPT_LEVEL_COUNT:
		err = ErrSnapshotField{Field: "pending", Err: ErrInterruptSpan}
	case !validCursor(s.Cursor):
		err = ErrSnapshotField{Field: "cursor", Err: ErrCursor(s.Cursor)}
	case s.Cursor.State == STATE_WAIT_FOR_DTACK && (!validCursor(s.Resume) || s.Resume.Index == 0):
		err = ErrSnapshotField{Field: "resume", Err: ErrCursor(s.Resume)}
	}
	return
}

// Restore replaces the state of the processor with a snapshot.
func (c *CPU) Restore(s Snapshot) (err error) {
	err = s.Validate()
	if err != nil {
		err = errors.Join(ErrSnapshot, err)
		return
	}

	c.reg = s.Registers
	c.sp = s.SP
	c.pc = s.PC
	c.sr = s.SR
	c.prefetch = s.Prefetch
	c.opcode = s.Opcode
	c.instPC = s.InstPC
	c.inst = Decode(s.Opcode)
	c.instTrace = s.Traced
	c.ipl = s.IPL
	c.pending = s.Pending
	c.cursor = s.Cursor
	c.resume = s.Resume
	c.waiting = s.Waiting
	c.remaining = s.Remaining
	c.elapsed = s.Elapsed
	c.latch = s.Latch
	c.frame = s.Frame

	return
}

// MarshalBinary encodes the snapshot as big-endian fixed-size fields.
func (s *Snapshot) MarshalBinary() (data []byte, err error) {
	var buf bytes.Buffer
	buf.WriteString(SNAPSHOT_MAGIC)
	err = binary.Write(&buf, binary.BigEndian, s)
	if err != nil {
		return
	}
	data = buf.Bytes()
	return
}

// UnmarshalBinary decodes a snapshot encoded by MarshalBinary.
func (s *Snapshot) UnmarshalBinary(data []byte) (err error) {
	size := len(SNAPSHOT_MAGIC) + binary.Size(s)
	if len(data) != size {
		err = ErrSnapshotSize
		return
	}
	if string(data[:len(SNAPSHOT_MAGIC)]) != SNAPSHOT_MAGIC {
		err = ErrSnapshotField{Field: "magic", Err: ErrSnapshot}
		return
	}

	var decoded Snapshot
	err = binary.Read(bytes.NewReader(data[len(SNAPSHOT_MAGIC):]), binary.BigEndian, &decoded)
	if err != nil {
		err = errors.Join(ErrSnapshot, err)
		return
	}

	err = decoded.Validate()
	if err != nil {
		return
	}

	*s = decoded
	return
}
