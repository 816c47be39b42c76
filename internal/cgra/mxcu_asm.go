package cgra

// MXCUEncoded bundles a decoded MXCUWord with the SRF read/write index
// its own arithmetic instruction implies. vwr_row_we/vwr_sel/srf_we/
// alu_srf_write are NOT set here — the assembler derives those from
// the column's RC instructions and cross-slot SRF arbitration, per
// §4.6; see AssembleCycle in assembler.go.
type MXCUEncoded struct {
	Word     MXCUWord
	SRFRead  int
	SRFWrite int
}

var mxcuArithOps = map[string]MXCUOp{
	"SADD": MXCUSadd, "SSUB": MXCUSsub, "SLL": MXCUSll, "SRL": MXCUSrl,
	"LAND": MXCULand, "LOR": MXCULor, "LXOR": MXCULxor,
}

func parseMXCUMux(s string) (MXCUMuxSel, bool) {
	switch s {
	case "R0":
		return MXCUMuxR0, true
	case "R1":
		return MXCUMuxR1, true
	case "R2":
		return MXCUMuxR2, true
	case "R3":
		return MXCUMuxR3, true
	case "R4":
		return MXCUMuxR4, true
	case "R5":
		return MXCUMuxR5, true
	case "R6":
		return MXCUMuxR6, true
	case "R7":
		return MXCUMuxR7, true
	case "SRF":
		return MXCUMuxSRF, true
	case "ZERO":
		return MXCUMuxZero, true
	case "ONE":
		return MXCUMuxOne, true
	case "TWO":
		return MXCUMuxTwo, true
	case "HALF":
		return MXCUMuxHalf, true
	case "LAST":
		return MXCUMuxLast, true
	}
	return 0, false
}

func parseMXCUDest(s string) (MXCUDestReg, int, bool) {
	regs := map[string]MXCUDestReg{
		"R0": MXCUR0, "R1": MXCUR1, "R2": MXCUR2, "R3": MXCUR3,
		"R4": MXCUR4, "R5": MXCUR5, "R6": MXCUR6, "R7": MXCUR7,
	}
	if d, ok := regs[s]; ok {
		return d, -1, true
	}
	if idx, ok := parseSRFIndex(s); ok {
		return MXCUDestSRF, idx, true
	}
	return 0, -1, false
}

// EncodeMXCU parses one MXCU arithmetic mnemonic (or NOP).
func EncodeMXCU(line string) (MXCUEncoded, error) {
	res := MXCUEncoded{SRFRead: -1, SRFWrite: -1}
	op, operands := tokenizeLine(line)
	if op == "" || op == "NOP" {
		return res, nil
	}
	aluOp, ok := mxcuArithOps[op]
	if !ok {
		return res, newErr(ErrEncoding, "MXCU", 0, 0, 0, "unknown op "+op)
	}
	if len(operands) != 3 {
		return res, newErr(ErrEncoding, "MXCU", 0, 0, 0, "expected dest, muxA, muxB")
	}
	dest, srfIdx, ok := parseMXCUDest(operands[0])
	if !ok {
		return res, newErr(ErrEncoding, "MXCU", 0, 0, 0, "bad destination "+operands[0])
	}
	muxA, ok := parseMXCUMux(operands[1])
	if !ok {
		return res, newErr(ErrEncoding, "MXCU", 0, 0, 0, "bad muxA "+operands[1])
	}
	muxB, ok := parseMXCUMux(operands[2])
	if !ok {
		return res, newErr(ErrEncoding, "MXCU", 0, 0, 0, "bad muxB "+operands[2])
	}
	res.Word.Op = aluOp
	res.Word.MuxA = muxA
	res.Word.MuxB = muxB
	res.Word.RFWe = true
	res.Word.RFWsel = dest
	if muxA == MXCUMuxSRF || muxB == MXCUMuxSRF {
		res.SRFRead = 0
	}
	if dest == MXCUDestSRF {
		res.SRFWrite = srfIdx
	}
	return res, nil
}
