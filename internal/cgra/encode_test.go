package cgra

import "testing"

func TestLCUWordPackUnpackRoundTrip(t *testing.T) {
	w := LCUWord{
		MuxA:   LCUMuxAImm,
		MuxB:   LCUMuxBOne,
		BrMode: 1,
		Op:     LCUBgepd,
		RFWe:   true,
		RFWsel: LCUR3,
		Imm:    37,
	}
	got := UnpackLCUWord(w.Pack())
	if got != w {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, w)
	}
}

func TestLCUWordUnpackAliasesUndefinedOpToNop(t *testing.T) {
	// alu_op field is 4 bits but LCUExit=14 is the highest valid code.
	raw := uint32(15) << 9
	got := UnpackLCUWord(raw)
	if got.Op != LCUNop {
		t.Errorf("expected undefined op to alias to LCUNop, got %v", got.Op)
	}
}

func TestLSUWordPackUnpackRoundTrip(t *testing.T) {
	w := LSUWord{
		MemOp:        LSUMemShuffle,
		VwrSelShufOp: int(ShuffleCshiftLower),
		MuxA:         LSUMuxSRF,
		MuxB:         LSUMuxTwo,
		Op:           LSUBitrev,
		RFWe:         true,
		RFWsel:       LSUR7,
	}
	got := UnpackLSUWord(w.Pack())
	if got != w {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, w)
	}
}

func TestMXCUWordPackUnpackRoundTrip(t *testing.T) {
	w := MXCUWord{
		MuxA:        MXCUMuxLast,
		MuxB:        MXCUMuxHalf,
		Op:          MXCULxor,
		RFWe:        true,
		RFWsel:      MXCUR7,
		SRFWe:       true,
		AluSRFWrite: SRFSrcLSU,
		SRFSel:      5,
		VwrSel:      MXCUVwrC,
		VwrRowWe:    [Rows]bool{true, false, true, false},
	}
	got := UnpackMXCUWord(w.Pack())
	if got != w {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, w)
	}
}

func TestMXCUWordRowWeBitOrderNotIdentity(t *testing.T) {
	// Row-we bits are stored MSB-first as rows Rows-1..0, so the stored
	// bit string is the reverse of the row-indexed vector: row 0 is the
	// last stored bit and packs to the LSB of the row-we field (bit 0).
	w := MXCUWord{VwrRowWe: [Rows]bool{true, false, false, false}}
	packed := w.Pack()
	if packed&1 == 0 {
		t.Error("expected row 0 we-bit to land at the LSB of the row-we field")
	}
	got := UnpackMXCUWord(packed)
	if got.VwrRowWe != w.VwrRowWe {
		t.Errorf("round trip mismatch: got %v, want %v", got.VwrRowWe, w.VwrRowWe)
	}
}

func TestRCWordPackUnpackRoundTrip(t *testing.T) {
	w := RCWord{
		MuxA:   RCMuxRCT,
		MuxB:   RCMuxMaxInt,
		OpMode: 1,
		Op:     OpMac,
		MuxF:   RCMuxFRCL,
		RFWe:   true,
		RFWsel: 1,
	}
	got := UnpackRCWord(w.Pack())
	if got != w {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, w)
	}
}
