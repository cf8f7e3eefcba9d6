package emulator

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/mc68k/bus"
	"github.com/ezrec/mc68k/cpu"
)

type builtinFunc func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// Configure evaluates a Starlark machine description.
//
// The description maps devices with ram(), rom(), bus_error(),
// wait_states(), interrupt() and spurious(), fills memory with image(),
// and may set the globals:
//
//	reset    = True   # Take the reset exception (the default).
//	pc, ssp  = ...    # Entry point and stack when reset is False.
//	open_bus = False  # Unmapped accesses float instead of faulting.
//
// The constants of Defines() are predeclared.
func (m *Machine) Configure(name string, src string) (err error) {
	defer func() {
		if err != nil {
			err = &ErrConfig{Name: name, LineNo: lineOf(err), Err: err}
		}
	}()

	pred := starlark.StringDict{}
	for key, str := range m.Defines() {
		value, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}
	for key, fn := range map[string]builtinFunc{
		"ram":         m.starRam,
		"rom":         m.starRom,
		"image":       m.starImage,
		"bus_error":   m.starBusError,
		"wait_states": m.starWaitStates,
		"interrupt":   m.starInterrupt,
		"spurious":    m.starSpurious,
	} {
		pred[key] = starlark.NewBuiltin(key, fn)
	}

	thread := starlark.Thread{Name: name}
	thread.Print = func(_ *starlark.Thread, msg string) {
		log.Printf("machine: %v", msg)
	}

	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, &thread, name, src, pred)
	if err != nil {
		return
	}

	err = m.apply(globals)
	return
}

// lineOf returns the description line an error was raised on, 0 if unknown.
func lineOf(err error) (lineno int) {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		for _, frame := range slices.Backward(evalErr.CallStack) {
			if frame.Pos.Line > 0 {
				lineno = int(frame.Pos.Line)
				return
			}
		}
	}

	var syntaxErr syntax.Error
	if errors.As(err, &syntaxErr) {
		lineno = int(syntaxErr.Pos.Line)
		return
	}

	var resolveErrs resolve.ErrorList
	if errors.As(err, &resolveErrs) && len(resolveErrs) > 0 {
		lineno = int(resolveErrs[0].Pos.Line)
	}
	return
}

// apply acts on the globals set by a description.
func (m *Machine) apply(globals starlark.StringDict) (err error) {
	openBus, err := globalBool(globals, "open_bus", false)
	if err != nil {
		return
	}
	m.Map.OpenBus = openBus

	reset, err := globalBool(globals, "reset", true)
	if err != nil {
		return
	}
	if reset {
		m.Reset()
		return
	}

	pc, err := globalAddress(globals, "pc")
	if err != nil {
		return
	}
	ssp, err := globalAddress(globals, "ssp")
	if err != nil {
		return
	}
	err = m.Start(pc, ssp)
	return
}

func globalBool(globals starlark.StringDict, key string, defaultValue bool) (value bool, err error) {
	v, ok := globals[key]
	if !ok {
		value = defaultValue
		return
	}
	b, ok := v.(starlark.Bool)
	if !ok {
		err = fmt.Errorf("%w: %v", ErrGlobal, key)
		return
	}
	value = bool(b)
	return
}

func globalAddress(globals starlark.StringDict, key string) (value uint32, err error) {
	v, ok := globals[key]
	if !ok {
		err = fmt.Errorf("%w: %v", ErrGlobal, key)
		return
	}
	n, err := starlark.AsInt32(v)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrGlobal, key)
		return
	}
	value, err = address(n)
	return
}

// address checks an address argument.
func address(n int) (value uint32, err error) {
	if n < 0 || uint64(n) > uint64(cpu.ADDRESS_MASK) {
		err = ErrArgument
		return
	}
	value = uint32(n)
	return
}

// span checks a base and size argument pair.
func span(base int, size int) (start uint32, length uint32, err error) {
	start, err = address(base)
	if err != nil {
		return
	}
	if size <= 0 || uint64(size) > bus.ADDRESS_SPACE {
		err = ErrArgument
		return
	}
	length = uint32(size)
	return
}

// imageOf returns the bytes of an image argument: bytes, or a file name.
func imageOf(v starlark.Value) (data []byte, err error) {
	switch v := v.(type) {
	case starlark.Bytes:
		data = []byte(string(v))
	case starlark.String:
		data, err = os.ReadFile(string(v))
	default:
		err = ErrImage
	}
	return
}

func (m *Machine) starRam(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	var base, size int
	name := "ram"
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "base", &base, "size", &size, "name?", &name)
	if err != nil {
		return
	}
	start, length, err := span(base, size)
	if err != nil {
		return
	}
	_, err = m.AddRam(name, start, length)
	v = starlark.None
	return
}

func (m *Machine) starRom(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	var base int
	var image starlark.Value
	name := "rom"
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "base", &base, "image", &image, "name?", &name)
	if err != nil {
		return
	}
	start, err := address(base)
	if err != nil {
		return
	}
	data, err := imageOf(image)
	if err != nil {
		return
	}
	_, err = m.AddRom(name, start, data)
	v = starlark.None
	return
}

func (m *Machine) starImage(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	var base int
	var image starlark.Value
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "base", &base, "image", &image)
	if err != nil {
		return
	}
	start, err := address(base)
	if err != nil {
		return
	}
	data, err := imageOf(image)
	if err != nil {
		return
	}
	err = m.Load(start, data)
	v = starlark.None
	return
}

func (m *Machine) starBusError(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	var base, size int
	writes := false
	name := "bus_error"
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "base", &base, "size", &size, "writes?", &writes, "name?", &name)
	if err != nil {
		return
	}
	start, length, err := span(base, size)
	if err != nil {
		return
	}
	_, err = m.AddFault(name, start, length, writes)
	v = starlark.None
	return
}

func (m *Machine) starWaitStates(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	var base, size, delay, hold int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "base", &base, "size", &size, "delay", &delay, "hold?", &hold)
	if err != nil {
		return
	}
	start, length, err := span(base, size)
	if err != nil {
		return
	}
	if delay < 0 || hold < 0 {
		err = ErrArgument
		return
	}
	err = m.SetWaitStates(start, length, cpu.HalfCycles(delay), hold)
	v = starlark.None
	return
}

func (m *Machine) starInterrupt(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	var level int
	vector := 0
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "level", &level, "vector?", &vector)
	if err != nil {
		return
	}
	if level < 0 || level > 0xff || vector < 0 || vector > 0xff {
		err = ErrArgument
		return
	}
	err = m.SetVector(uint8(level), uint8(vector))
	v = starlark.None
	return
}

func (m *Machine) starSpurious(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	var level int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "level", &level)
	if err != nil {
		return
	}
	if level <= 0 || level >= cpu.INTERRUPT_LEVEL_COUNT {
		err = cpu.ErrInterruptSpan
		return
	}
	m.Vectors.Spurious |= 1 << level
	v = starlark.None
	return
}
