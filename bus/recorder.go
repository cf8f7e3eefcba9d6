package bus

import (
	"log"

	"github.com/ezrec/mc68k/cpu"
)

// Recorder wraps a bus, keeping every transaction in the order performed.
// A transaction held off by the bus is recorded once, and completed when
// it is acknowledged.
type Recorder struct {
	cpu.Bus
	Verbose bool // Set to log every transaction.
	Limit   int  // Transactions kept, all when 0.

	Log    []cpu.Transaction
	Counts map[cpu.BusOp]int
	Delay  cpu.HalfCycles // Total delay added by the bus.

	waiting bool
}

var _ cpu.Bus = (*Recorder)(nil)
var _ cpu.Waiter = (*Recorder)(nil)
var _ cpu.Resetter = (*Recorder)(nil)

// Clear forgets the recorded transactions.
func (rec *Recorder) Clear() {
	rec.Log = nil
	rec.Counts = nil
	rec.Delay = 0
	rec.waiting = false
}

// Ops returns the kinds of the recorded transactions.
func (rec *Recorder) Ops() (ops []cpu.BusOp) {
	for _, tx := range rec.Log {
		ops = append(ops, tx.Op)
	}
	return
}

func (rec *Recorder) record(tx *cpu.Transaction) {
	if rec.Counts == nil {
		rec.Counts = map[cpu.BusOp]int{}
	}
	rec.Counts[tx.Op]++

	rec.Log = append(rec.Log, *tx)
	if rec.Limit > 0 && len(rec.Log) > rec.Limit {
		rec.Log = rec.Log[len(rec.Log)-rec.Limit:]
	}
}

func (rec *Recorder) Perform(tx *cpu.Transaction) (delay cpu.HalfCycles) {
	delay = rec.Bus.Perform(tx)
	rec.Delay += delay
	rec.waiting = tx.Response == cpu.RESPONSE_WAIT

	if rec.Verbose && !rec.waiting {
		log.Printf("bus: %v", tx)
	}
	rec.record(tx)
	return
}

func (rec *Recorder) Poll(tx *cpu.Transaction) (response cpu.Response) {
	response = cpu.RESPONSE_DTACK
	if waiter, ok := rec.Bus.(cpu.Waiter); ok {
		response = waiter.Poll(tx)
	}
	if response == cpu.RESPONSE_WAIT || !rec.waiting {
		return
	}

	rec.waiting = false
	if len(rec.Log) > 0 {
		last := &rec.Log[len(rec.Log)-1]
		last.Response = response
		if last.Op.IsRead() {
			last.Value = tx.Value
		}
		if rec.Verbose {
			log.Printf("bus: %v", *last)
		}
	}
	return
}

func (rec *Recorder) ResetDevices() {
	if rec.Verbose {
		log.Printf("bus: reset")
	}
	if resetter, ok := rec.Bus.(cpu.Resetter); ok {
		resetter.ResetDevices()
	}
}
