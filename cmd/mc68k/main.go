// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"golang.org/x/term"

	"github.com/ezrec/mc68k/cpu"
	"github.com/ezrec/mc68k/emulator"
)

func main() {
	var config string
	var budget int64
	var slice int64
	var trace bool
	var verbose bool
	var stats string

	flag.StringVar(&config, "c", "", ".star machine description")
	flag.Int64Var(&budget, "budget", 1_000_000, "Half-cycles to run")
	flag.Int64Var(&slice, "slice", int64(emulator.DEFAULT_SLICE), "Half-cycles per time slice")
	flag.BoolVar(&trace, "trace", false, "Print every bus transaction")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&stats, "statsview", "", "Serve runtime statistics on this address")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}
	if len(config) == 0 {
		log.Fatalf("%v: -c is required", os.Args[0])
	}
	if slice <= 0 {
		log.Fatalf("%v: -slice must be positive", os.Args[0])
	}

	src, err := os.ReadFile(config)
	if err != nil {
		log.Fatalf("%v: %v", config, err)
	}

	if len(stats) != 0 {
		viewer.SetConfiguration(viewer.WithAddr(stats))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		fmt.Fprintf(os.Stderr, "stats server available at %s/debug/statsview\n", stats)
	}

	m := emulator.NewMachine()
	m.Verbose = verbose

	err = m.Configure(config, string(src))
	if err != nil {
		log.Fatal(err)
	}

	status := term.IsTerminal(int(os.Stderr.Fd())) && !trace && !verbose

	total := cpu.HalfCycles(budget)
	for m.Elapsed() < total {
		err = m.RunFor(min(cpu.HalfCycles(slice), total-m.Elapsed()))

		if trace {
			for _, tx := range m.Recorder.Log {
				fmt.Println(tx)
			}
			m.Recorder.Clear()
		}
		if status {
			pc, _ := m.CPU.Instruction()
			fmt.Fprintf(os.Stderr, "\r%12d %06x %v", m.Elapsed(), pc, m.CPU.State())
		}

		if err != nil {
			break
		}
	}
	if status {
		fmt.Fprintln(os.Stderr)
	}

	for id, value := range m.Registers() {
		fmt.Printf("%-3v %08x\n", id, value)
	}

	if err != nil {
		log.Fatal(err)
	}
}
