package cgra

// LCUEncoded bundles a decoded LCUWord with the SRF read/write index it
// implies (-1 when the instruction doesn't touch the SRF), for the
// per-cycle arbitration pass in assembler.go.
type LCUEncoded struct {
	Word     LCUWord
	SRFRead  int
	SRFWrite int
}

var lcuArithOps = map[string]LCUOp{
	"SADD": LCUSadd, "SSUB": LCUSsub, "SLL": LCUSll, "SRL": LCUSrl,
	"SRA": LCUSra, "LAND": LCULand, "LOR": LCULor, "LXOR": LCULxor,
}

var lcuBranchOps = map[string]LCUOp{"BEQ": LCUBeq, "BNE": LCUBne, "BLT": LCUBlt}
var lcuRCModeOps = map[string]LCUOp{"BEQR": LCUBeq, "BNER": LCUBne, "BLTR": LCUBlt}

func parseLCUMuxA(s string) (LCUMuxASel, int, bool) {
	switch s {
	case "R0":
		return LCUMuxAR0, 0, true
	case "R1":
		return LCUMuxAR1, 0, true
	case "R2":
		return LCUMuxAR2, 0, true
	case "R3":
		return LCUMuxAR3, 0, true
	case "SRF":
		return LCUMuxASRF, 0, true
	case "LAST":
		return LCUMuxALast, 0, true
	case "ZERO":
		return LCUMuxAZero, 0, true
	}
	if n, ok := parseImm(s); ok {
		return LCUMuxAImm, n, true
	}
	return 0, 0, false
}

func parseLCUMuxB(s string) (LCUMuxBSel, bool) {
	switch s {
	case "R0":
		return LCUMuxBR0, true
	case "R1":
		return LCUMuxBR1, true
	case "R2":
		return LCUMuxBR2, true
	case "R3":
		return LCUMuxBR3, true
	case "SRF":
		return LCUMuxBSRF, true
	case "LAST":
		return LCUMuxBLast, true
	case "ZERO":
		return LCUMuxBZero, true
	case "ONE":
		return LCUMuxBOne, true
	}
	return 0, false
}

func parseLCUDest(s string) (LCUDestReg, int, bool) {
	switch s {
	case "R0":
		return LCUR0, -1, true
	case "R1":
		return LCUR1, -1, true
	case "R2":
		return LCUR2, -1, true
	case "R3":
		return LCUR3, -1, true
	}
	if idx, ok := parseSRFIndex(s); ok {
		return LCUDestSRF, idx, true
	}
	return 0, -1, false
}

// EncodeLCU translates one LCU assembly mnemonic into its word form.
func EncodeLCU(line string) (LCUEncoded, error) {
	op, operands := tokenizeLine(line)
	res := LCUEncoded{SRFRead: -1, SRFWrite: -1}

	arithOp, isArith := lcuArithOps[op]
	branchOp, isBranch := lcuBranchOps[op]
	rcModeOp, isRCMode := lcuRCModeOps[op]

	switch {
	case op == "NOP" || op == "":
		res.Word.Op = LCUNop
		return res, nil
	case op == "EXIT":
		res.Word.Op = LCUExit
		return res, nil
	case isArith:
		if len(operands) != 3 {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "expected dest, muxA, muxB")
		}
		dest, srfIdx, ok := parseLCUDest(operands[0])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad destination "+operands[0])
		}
		muxA, imm, ok := parseLCUMuxA(operands[1])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad muxA "+operands[1])
		}
		muxB, ok := parseLCUMuxB(operands[2])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad muxB "+operands[2])
		}
		res.Word = LCUWord{Op: arithOp, MuxA: muxA, MuxB: muxB, RFWe: true, RFWsel: dest, Imm: imm}
		if muxA == LCUMuxASRF || muxB == LCUMuxBSRF {
			res.SRFRead = 0
		}
		if dest == LCUDestSRF {
			res.SRFWrite = srfIdx
		}
		return res, nil
	case isBranch:
		if len(operands) < 3 {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "expected muxA, muxB, imm")
		}
		muxA, _, ok := parseLCUMuxA(operands[len(operands)-3])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad muxA")
		}
		muxB, ok := parseLCUMuxB(operands[len(operands)-2])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad muxB")
		}
		imm, ok := parseImm(operands[len(operands)-1])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad immediate")
		}
		res.Word = LCUWord{Op: branchOp, MuxA: muxA, MuxB: muxB, Imm: imm, BrMode: 0}
		return res, nil
	case isRCMode:
		if len(operands) != 1 {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "expected imm")
		}
		imm, ok := parseImm(operands[0])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad immediate")
		}
		res.Word = LCUWord{Op: rcModeOp, Imm: imm, BrMode: 1}
		return res, nil
	case op == "BGEPD":
		if len(operands) != 3 {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "expected muxA, muxB, imm")
		}
		muxA, _, ok := parseLCUMuxA(operands[0])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad muxA")
		}
		muxB, ok := parseLCUMuxB(operands[1])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad muxB")
		}
		imm, ok := parseImm(operands[2])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad immediate")
		}
		// The decremented value goes back to muxA's own storage.
		rfWsel := LCUR0
		switch {
		case muxA <= LCUMuxAR3:
			rfWsel = LCUDestReg(muxA)
		case muxA == LCUMuxASRF:
			rfWsel = LCUDestSRF
		}
		res.Word = LCUWord{Op: LCUBgepd, MuxA: muxA, MuxB: muxB, Imm: imm, RFWe: muxA <= LCUMuxASRF, RFWsel: rfWsel}
		return res, nil
	case op == "BGER":
		imm, ok := parseImm(operands[0])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad immediate")
		}
		res.Word = LCUWord{Op: LCUBgepd, Imm: imm, BrMode: 1}
		return res, nil
	case op == "JUMP":
		if len(operands) != 2 && len(operands) != 3 {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "expected [dest,] muxA, muxB")
		}
		muxA, _, ok := parseLCUMuxA(operands[len(operands)-2])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad muxA")
		}
		muxB, ok := parseLCUMuxB(operands[len(operands)-1])
		if !ok {
			return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "bad muxB")
		}
		res.Word = LCUWord{Op: LCUJump, MuxA: muxA, MuxB: muxB}
		return res, nil
	}
	return res, newErr(ErrEncoding, "LCU", 0, 0, 0, "unknown mnemonic "+op)
}
