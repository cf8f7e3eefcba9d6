package bus

import (
	"github.com/ezrec/mc68k/cpu"
)

// Fault answers accesses with a bus error.
type Fault struct {
	Writes bool // Only writes fault; reads see OPEN_BUS_VALUE.
	Count  int  // Bus errors answered.
}

var _ cpu.Bus = (*Fault)(nil)

func (fault *Fault) Perform(tx *cpu.Transaction) (delay cpu.HalfCycles) {
	if fault.Writes && !tx.Op.IsWrite() {
		tx.Response = cpu.RESPONSE_DTACK
		tx.Value = OPEN_BUS_VALUE
		return
	}
	tx.Response = cpu.RESPONSE_BERR
	fault.Count++
	return
}
