package cgra

import (
	"context"
	"testing"
)

func TestSimulatorRunsSingleColumnExitKernel(t *testing.T) {
	sim := NewSimulator()
	if err := sim.KernelConfig(1, true, false, 1, 0, 0); err != nil {
		t.Fatalf("KernelConfig: %v", err)
	}
	lcu, lsu, mxcu, rc, err := AssembleCycle(0, 0, CycleAsm{
		LCU:  "EXIT",
		LSU:  "NOP",
		MXCU: "NOP",
		RC:   [Rows]string{"NOP", "NOP", "NOP", "NOP"},
	})
	if err != nil {
		t.Fatalf("AssembleCycle: %v", err)
	}
	var row Row
	row.LCU[0], row.LSU[0], row.MXCU[0], row.RC[0] = lcu, lsu, mxcu, rc

	if err := sim.KernelLoad(1, []Row{row}); err != nil {
		t.Fatalf("KernelLoad: %v", err)
	}
	if err := sim.Run(context.Background(), 1); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestSimulatorAccumulatesLCURegisterAcrossCycles(t *testing.T) {
	sim := NewSimulator()
	if err := sim.KernelConfig(1, true, false, 3, 0, 0); err != nil {
		t.Fatalf("KernelConfig: %v", err)
	}

	asms := []CycleAsm{
		{LCU: "SADD R0, 5, ZERO", LSU: "NOP", MXCU: "NOP", RC: [Rows]string{"NOP", "NOP", "NOP", "NOP"}},
		{LCU: "SADD R0, R0, ONE", LSU: "NOP", MXCU: "NOP", RC: [Rows]string{"NOP", "NOP", "NOP", "NOP"}},
		{LCU: "EXIT", LSU: "NOP", MXCU: "NOP", RC: [Rows]string{"NOP", "NOP", "NOP", "NOP"}},
	}

	var rows []Row
	for cycle, asm := range asms {
		lcu, lsu, mxcu, rc, err := AssembleCycle(0, cycle, asm)
		if err != nil {
			t.Fatalf("AssembleCycle cycle%d: %v", cycle, err)
		}
		var r Row
		r.LCU[0], r.LSU[0], r.MXCU[0], r.RC[0] = lcu, lsu, mxcu, rc
		rows = append(rows, r)
	}

	if err := sim.KernelLoad(1, rows); err != nil {
		t.Fatalf("KernelLoad: %v", err)
	}
	if err := sim.Run(context.Background(), 1); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := sim.CGRA.LCU[0].Regs[0]; got != 6 {
		t.Errorf("LCU R0 = %d, want 6", got)
	}
}

func TestSimulatorEnforcesMaxCyclesCutoff(t *testing.T) {
	sim := NewSimulator()
	sim.MaxCycles = 2
	if err := sim.KernelConfig(1, true, false, 3, 0, 0); err != nil {
		t.Fatalf("KernelConfig: %v", err)
	}
	nop := func(cycle int) Row {
		lcu, lsu, mxcu, rc, err := AssembleCycle(0, cycle, CycleAsm{
			LCU: "NOP", LSU: "NOP", MXCU: "NOP",
			RC: [Rows]string{"NOP", "NOP", "NOP", "NOP"},
		})
		if err != nil {
			t.Fatalf("AssembleCycle: %v", err)
		}
		var r Row
		r.LCU[0], r.LSU[0], r.MXCU[0], r.RC[0] = lcu, lsu, mxcu, rc
		return r
	}
	rows := []Row{nop(0), nop(1), nop(2)}
	if err := sim.KernelLoad(1, rows); err != nil {
		t.Fatalf("KernelLoad: %v", err)
	}
	err := sim.Run(context.Background(), 1)
	if err == nil {
		t.Fatal("expected ErrBounds cutoff error")
	}
	cgErr, ok := err.(*Error)
	if !ok || cgErr.Kind != ErrBounds {
		t.Errorf("expected ErrBounds, got %v", err)
	}
}

func TestSimulatorRejectsDoubleColumnBranchSameCycle(t *testing.T) {
	sim := NewSimulator()
	if err := sim.KernelConfig(1, true, true, 2, 0, 0); err != nil {
		t.Fatalf("KernelConfig: %v", err)
	}
	setR0 := CycleAsm{
		LCU:  "SADD R0, 1, ZERO",
		LSU:  "NOP",
		MXCU: "NOP",
		RC:   [Rows]string{"NOP", "NOP", "NOP", "NOP"},
	}
	// BGEPD decrements R0 (1 -> 0) and branches when the decremented
	// value is >= 0, so both columns branch on this cycle.
	branch := CycleAsm{
		LCU:  "BGEPD R0, ONE, 0",
		LSU:  "NOP",
		MXCU: "NOP",
		RC:   [Rows]string{"NOP", "NOP", "NOP", "NOP"},
	}

	var rows []Row
	for cycle, asm := range []CycleAsm{setR0, branch} {
		lcu0, lsu0, mxcu0, rc0, err := AssembleCycle(0, cycle, asm)
		if err != nil {
			t.Fatalf("AssembleCycle col0 cycle%d: %v", cycle, err)
		}
		lcu1, lsu1, mxcu1, rc1, err := AssembleCycle(1, cycle, asm)
		if err != nil {
			t.Fatalf("AssembleCycle col1 cycle%d: %v", cycle, err)
		}
		var row Row
		row.LCU[0], row.LSU[0], row.MXCU[0], row.RC[0] = lcu0, lsu0, mxcu0, rc0
		row.LCU[1], row.LSU[1], row.MXCU[1], row.RC[1] = lcu1, lsu1, mxcu1, rc1
		rows = append(rows, row)
	}

	if err := sim.KernelLoad(1, rows); err != nil {
		t.Fatalf("KernelLoad: %v", err)
	}
	err := sim.Run(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error when both columns branch in the same cycle")
	}
}
