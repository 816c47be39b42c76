// Command discosim is the CLI front end for the VWR2A CGRA simulator:
// it assembles per-cycle instruction tables into hex, lists the packed
// words of a hex table (disasm prints hex words, not mnemonics), and
// runs compiled kernels, delegating every file-format concern to
// internal/ioadapter and all machine semantics to internal/cgra.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lookbusy1344/vwr2a-cgra/config"
	"github.com/lookbusy1344/vwr2a-cgra/internal/cgra"
	"github.com/lookbusy1344/vwr2a-cgra/internal/inspector"
	"github.com/lookbusy1344/vwr2a-cgra/internal/ioadapter"
	"github.com/lookbusy1344/vwr2a-cgra/internal/trace"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		err = cmdRun(cfg, os.Args[2:])
	case "compile":
		err = cmdCompile(cfg, os.Args[2:])
	case "disasm":
		err = cmdDisasm(cfg, os.Args[2:])
	case "inspect":
		err = cmdInspect(cfg, os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "discosim: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: discosim <run|compile|disasm|inspect> [flags]")
}

func cmdRun(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	hexPath := fs.String("hex", "", "hex instruction table CSV")
	col0 := fs.Bool("col0", true, "use column 0")
	col1 := fs.Bool("col1", false, "use column 1")
	nInstr := fs.Int("n", 1, "instructions per column")
	srfSPM := fs.Int("srf-spm", 0, "SRF/SPM base address")
	spmData := fs.String("spm", "", "optional flat-word SPM seed file (newline-separated decimal ints)")
	verbose := fs.Bool("v", false, "verbose per-cycle trace")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hexPath == "" {
		return fmt.Errorf("-hex is required")
	}

	activeCols := activeColumns(*col0, *col1)

	f, err := os.Open(*hexPath)
	if err != nil {
		return err
	}
	defer f.Close()
	rows, err := ioadapter.ReadHexTable(f, activeCols)
	if err != nil {
		return err
	}

	sim := cgra.NewSimulator()
	sim.MaxCycles = cfg.Execution.MaxCycles

	if *spmData != "" {
		words, err := readSPMSeed(*spmData)
		if err != nil {
			return err
		}
		sim.CGRA.SPM.Load(words)
	}

	if err := sim.KernelConfig(1, *col0, *col1, *nInstr, 0, *srfSPM); err != nil {
		return err
	}
	if err := sim.KernelLoad(1, rows); err != nil {
		return err
	}

	level := trace.ParseLevel(cfg.Trace.Verbosity)
	if *verbose {
		level = trace.Verbose
	}
	_ = trace.New(os.Stdout, level) // built but not passed on: Run takes no logger and prints no trace

	return sim.Run(context.Background(), 1)
}

func cmdCompile(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	asmPath := fs.String("asm", "", "assembly instruction table CSV")
	hexPath := fs.String("hex", "", "output hex instruction table CSV")
	headerPath := fs.String("header", "", "optional output C header path")
	col0 := fs.Bool("col0", true, "use column 0")
	col1 := fs.Bool("col1", false, "use column 1")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *asmPath == "" || *hexPath == "" {
		return fmt.Errorf("-asm and -hex are required")
	}
	activeCols := activeColumns(*col0, *col1)

	in, err := os.Open(*asmPath)
	if err != nil {
		return err
	}
	defer in.Close()
	cycleRows, err := ioadapter.ReadAsmTable(in, activeCols)
	if err != nil {
		return err
	}

	rows := make([]cgra.Row, len(cycleRows))
	for i, perCol := range cycleRows {
		var row cgra.Row
		for ci, col := range activeCols {
			lcu, lsu, mxcu, rc, err := cgra.AssembleCycle(col, i, perCol[ci])
			if err != nil {
				return fmt.Errorf("cycle %d col %d: %w", i, col, err)
			}
			row.LCU[col] = lcu
			row.LSU[col] = lsu
			row.MXCU[col] = mxcu
			row.RC[col] = rc
		}
		rows[i] = row
	}

	out, err := os.Create(*hexPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := ioadapter.WriteHexTable(out, activeCols, rows); err != nil {
		return err
	}

	if *headerPath != "" || cfg.Compile.EmitHeader {
		path := *headerPath
		if path == "" {
			path = cfg.Compile.HeaderPath
		}
		hf, err := os.Create(path)
		if err != nil {
			return err
		}
		defer hf.Close()
		return ioadapter.WriteHeader(hf, nil, rows, activeCols)
	}
	return nil
}

func cmdDisasm(_ *config.Config, args []string) error {
	fs := flag.NewFlagSet("disasm", flag.ExitOnError)
	hexPath := fs.String("hex", "", "hex instruction table CSV")
	col0 := fs.Bool("col0", true, "use column 0")
	col1 := fs.Bool("col1", false, "use column 1")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hexPath == "" {
		return fmt.Errorf("-hex is required")
	}
	activeCols := activeColumns(*col0, *col1)

	f, err := os.Open(*hexPath)
	if err != nil {
		return err
	}
	defer f.Close()
	rows, err := ioadapter.ReadHexTable(f, activeCols)
	if err != nil {
		return err
	}
	for i, r := range rows {
		for _, c := range activeCols {
			fmt.Printf("cycle %d col %d: lcu=%#x lsu=%#x mxcu=%#x\n", i, c, r.LCU[c].Pack(), r.LSU[c].Pack(), r.MXCU[c].Pack())
		}
	}
	return nil
}

func cmdInspect(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	hexPath := fs.String("hex", "", "hex instruction table CSV")
	col0 := fs.Bool("col0", true, "use column 0")
	col1 := fs.Bool("col1", false, "use column 1")
	nInstr := fs.Int("n", 1, "instructions per column")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hexPath == "" {
		return fmt.Errorf("-hex is required")
	}
	activeCols := activeColumns(*col0, *col1)

	f, err := os.Open(*hexPath)
	if err != nil {
		return err
	}
	defer f.Close()
	rows, err := ioadapter.ReadHexTable(f, activeCols)
	if err != nil {
		return err
	}

	sim := cgra.NewSimulator()
	sim.MaxCycles = cfg.Execution.MaxCycles
	if err := sim.KernelConfig(1, *col0, *col1, *nInstr, 0, 0); err != nil {
		return err
	}
	if err := sim.KernelLoad(1, rows); err != nil {
		return err
	}

	return inspector.New(sim, 1).Run()
}

func activeColumns(col0, col1 bool) []int {
	var cols []int
	if col0 {
		cols = append(cols, 0)
	}
	if col1 {
		cols = append(cols, 1)
	}
	return cols
}

func readSPMSeed(path string) ([]int32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var words []int32
	var cur int64
	var has bool
	flush := func() {
		if has {
			words = append(words, int32(cur))
		}
		cur, has = 0, false
	}
	neg := false
	for _, b := range data {
		switch {
		case b >= '0' && b <= '9':
			cur = cur*10 + int64(b-'0')
			has = true
		case b == '-':
			neg = true
		case b == '\n' || b == ' ' || b == '\r' || b == '\t':
			if neg {
				cur = -cur
			}
			flush()
			neg = false
		}
	}
	if neg {
		cur = -cur
	}
	flush()
	return words, nil
}
