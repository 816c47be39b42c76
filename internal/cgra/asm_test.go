package cgra

import "testing"

func TestEncodeLCUArith(t *testing.T) {
	enc, err := EncodeLCU("SADD R0, R1, R2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Word.Op != LCUSadd {
		t.Errorf("got op %v, want LCUSadd", enc.Word.Op)
	}
	if enc.Word.MuxA != LCUMuxAR1 || enc.Word.MuxB != LCUMuxBR2 {
		t.Errorf("bad muxes: %+v", enc.Word)
	}
	if !enc.Word.RFWe || enc.Word.RFWsel != LCUR0 {
		t.Errorf("expected write to R0, got %+v", enc.Word)
	}
}

func TestEncodeLCUNop(t *testing.T) {
	enc, err := EncodeLCU("NOP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Word.Op != LCUNop {
		t.Errorf("got %v, want LCUNop", enc.Word.Op)
	}
}

func TestEncodeLCUExit(t *testing.T) {
	enc, err := EncodeLCU("EXIT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Word.Op != LCUExit {
		t.Errorf("got %v, want LCUExit", enc.Word.Op)
	}
}

func TestEncodeLCUUnknownMnemonicErrors(t *testing.T) {
	if _, err := EncodeLCU("FROBNICATE R0, R1, R2"); err == nil {
		t.Error("expected error for unknown mnemonic")
	}
}

func TestEncodeLCUBgepdDecrementSemanticsRFWe(t *testing.T) {
	enc, err := EncodeLCU("BGEPD R0, ONE, 10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Word.Op != LCUBgepd || !enc.Word.RFWe {
		t.Errorf("expected BGEPD with RFWe set, got %+v", enc.Word)
	}
}

func TestAssembleCycleRejectsConflictingVWRWrite(t *testing.T) {
	asm := CycleAsm{
		LCU:  "NOP",
		LSU:  "NOP",
		MXCU: "NOP",
		RC:   [Rows]string{"NOP", "NOP", "NOP", "NOP"},
	}
	_, _, _, _, err := AssembleCycle(0, 0, asm)
	if err != nil {
		t.Fatalf("unexpected error on all-NOP cycle: %v", err)
	}

	// Two RCs targeting different VWRs in the same cycle is illegal.
	asm.RC = [Rows]string{"SADD VWR_A, R0, R1", "SADD VWR_B, R0, R1", "NOP", "NOP"}
	_, _, _, _, err = AssembleCycle(0, 0, asm)
	if err == nil {
		t.Fatal("expected error when RCs target different VWRs in one cycle")
	}
	if cgErr, ok := err.(*Error); !ok || cgErr.Kind != ErrCycleConsistency {
		t.Errorf("expected ErrCycleConsistency, got %v", err)
	}
}
