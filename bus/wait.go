package bus

import (
	"github.com/ezrec/mc68k/cpu"
)

// WaitStates slows the device it wraps. Delay is added to every access,
// and the acknowledge is then held off for Hold half-cycles.
type WaitStates struct {
	cpu.Bus
	Delay cpu.HalfCycles
	Hold  int

	held int
}

var _ cpu.Bus = (*WaitStates)(nil)
var _ cpu.Waiter = (*WaitStates)(nil)
var _ cpu.Resetter = (*WaitStates)(nil)

func (ws *WaitStates) Perform(tx *cpu.Transaction) (delay cpu.HalfCycles) {
	delay = ws.Bus.Perform(tx)
	delay += ws.Delay

	if ws.Hold > 0 && tx.Response == cpu.RESPONSE_DTACK {
		tx.Response = cpu.RESPONSE_WAIT
		ws.held = ws.Hold
	}
	return
}

func (ws *WaitStates) Poll(tx *cpu.Transaction) cpu.Response {
	if ws.held > 0 {
		ws.held--
		if ws.held > 0 {
			return cpu.RESPONSE_WAIT
		}
		return cpu.RESPONSE_DTACK
	}

	if waiter, ok := ws.Bus.(cpu.Waiter); ok {
		return waiter.Poll(tx)
	}
	return cpu.RESPONSE_DTACK
}

func (ws *WaitStates) ResetDevices() {
	ws.held = 0
	if resetter, ok := ws.Bus.(cpu.Resetter); ok {
		resetter.ResetDevices()
	}
}
