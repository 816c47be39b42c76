package cgra

import "testing"

func TestALUSadd(t *testing.T) {
	var a ALU
	if err := a.Run(OpSadd, false, 2, 3, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.NewRes() != 5 {
		t.Errorf("got %d, want 5", a.NewRes())
	}
	if a.ZeroFlag() || a.SignFlag() {
		t.Errorf("unexpected flags: zero=%v sign=%v", a.ZeroFlag(), a.SignFlag())
	}
}

func TestALUZeroFlag(t *testing.T) {
	var a ALU
	if err := a.Run(OpSsub, false, 4, 4, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.ZeroFlag() {
		t.Error("expected zero flag set")
	}
}

func TestALUSignFlag(t *testing.T) {
	var a ALU
	if err := a.Run(OpSsub, false, 1, 5, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.SignFlag() {
		t.Error("expected sign flag set")
	}
	if a.NewRes() != -4 {
		t.Errorf("got %d, want -4", a.NewRes())
	}
}

func TestALUSmulMasksToMax32(t *testing.T) {
	var a ALU
	if err := a.Run(OpSmul, false, Max32, 2, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := int32((int64(Max32) * 2) & int64(Max32))
	if a.NewRes() != want {
		t.Errorf("got %d, want %d", a.NewRes(), want)
	}
}

// TestALUMacReproducesPrecedenceDefect locks in the deliberately
// preserved operator-precedence defect: (lhs*rhs) & (Max32+acc), not
// ((lhs*rhs)&Max32)+acc.
func TestALUMacReproducesPrecedenceDefect(t *testing.T) {
	var a ALU
	lhs, rhs, acc := int32(1000), int32(1000), int32(7)
	if err := a.Run(OpMac, false, lhs, rhs, acc, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buggy := int32((int64(lhs) * int64(rhs)) & int64(Max32+acc))
	fixed := int32(((int64(lhs)*int64(rhs))&int64(Max32)) + int64(acc))
	if a.NewRes() != buggy {
		t.Errorf("got %d, want buggy result %d", a.NewRes(), buggy)
	}
	if buggy == fixed {
		t.Skip("inputs happen to coincide; defect still encoded correctly")
	}
}

func TestALUSdivByZeroReturnsZero(t *testing.T) {
	var a ALU
	if err := a.Run(OpSdiv, false, 42, 0, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.NewRes() != 0 {
		t.Errorf("got %d, want 0", a.NewRes())
	}
}

func TestALUHalfPrecisionUnsupportedOps(t *testing.T) {
	var a ALU
	for _, op := range []ALUOp{OpSdiv, OpSll, OpSrl, OpSra, OpLand, OpLor, OpLxor} {
		if err := a.Run(op, true, 1, 1, 0, false); err == nil {
			t.Errorf("op %v: expected ErrUnsupported for half precision, got nil", op)
		} else if cgErr, ok := err.(*Error); !ok || cgErr.Kind != ErrUnsupported {
			t.Errorf("op %v: expected ErrUnsupported kind, got %v", op, err)
		}
	}
}

func TestALUHalfPrecisionSaddAddsIndependentHalves(t *testing.T) {
	var a ALU
	lhs := joinHalf(1, 2)
	rhs := joinHalf(10, 20)
	if err := a.Run(OpSadd, true, lhs, rhs, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := joinHalf(11, 22)
	if a.NewRes() != want {
		t.Errorf("got %#x, want %#x", a.NewRes(), want)
	}
}

func TestALUSfgaZfgaSelectOnExplicitFlag(t *testing.T) {
	var a ALU
	if err := a.Run(OpInbSfInA, false, 10, 20, 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.NewRes() != 20 {
		t.Errorf("flag=false: got %d, want rhs=20", a.NewRes())
	}
	if err := a.Run(OpInbSfInA, false, 10, 20, 0, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.NewRes() != 10 {
		t.Errorf("flag=true: got %d, want lhs=10", a.NewRes())
	}
}

func TestALUNopLeavesResultUnchanged(t *testing.T) {
	var a ALU
	if err := a.Run(OpSadd, false, 7, 0, 0, false); err != nil {
		t.Fatal(err)
	}
	if err := a.Run(OpNop, false, 99, 99, 0, false); err != nil {
		t.Fatal(err)
	}
	if a.NewRes() != 7 {
		t.Errorf("NOP changed newRes to %d, want unchanged 7", a.NewRes())
	}
}

func TestALUCommitPromotesNewResToRes(t *testing.T) {
	var a ALU
	if err := a.Run(OpSadd, false, 3, 4, 0, false); err != nil {
		t.Fatal(err)
	}
	if a.Res() != 0 {
		t.Errorf("Res() should be unchanged before Commit, got %d", a.Res())
	}
	a.Commit()
	if a.Res() != 7 {
		t.Errorf("Res() after Commit = %d, want 7", a.Res())
	}
}

func TestALUBitrev(t *testing.T) {
	var a ALU
	a.Bitrev(1, 0)
	want := int32(bitrev32(1))
	if a.NewRes() != want {
		t.Errorf("got %#x, want %#x", a.NewRes(), want)
	}
}

func TestBitrev32RoundTrips(t *testing.T) {
	v := uint32(0b1011_0000_0000_0000_0000_0000_0000_0001)
	if bitrev32(bitrev32(v)) != v {
		t.Error("bitrev32 is not its own inverse")
	}
}
