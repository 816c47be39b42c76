package cgra

import "strings"

// LSUEncoded bundles a decoded LSUWord with its SRF read/write index.
type LSUEncoded struct {
	Word     LSUWord
	SRFRead  int
	SRFWrite int
}

var lsuArithOps = map[string]LSUOp{
	"LAND": LSULand, "LOR": LSULor, "LXOR": LSULxor, "SADD": LSUSadd,
	"SSUB": LSUSsub, "SLL": LSUSll, "SRL": LSUSrl, "BITREV": LSUBitrev,
}

var lsuShuffleOps = map[string]ShuffleSel{
	"SH.IL.UP": ShuffleInterleaveUpper, "SH.IL.LO": ShuffleInterleaveLower,
	"SH.EVEN": ShuffleEven, "SH.ODD": ShuffleOdd,
	"SH.BRE.UP": ShuffleBitrevUpper, "SH.BRE.LO": ShuffleBitrevLower,
	"SH.CSHIFT.UP": ShuffleCshiftUpper, "SH.CSHIFT.LO": ShuffleCshiftLower,
}

var lsuVwrTargets = map[string]LSUVwrSel{
	"VWR_A": LSUVwrA, "VWR_B": LSUVwrB, "VWR_C": LSUVwrC, "SRF": LSUVwrSRF,
}

func parseLSUMux(s string) (LSUMuxSel, bool) {
	switch s {
	case "R0":
		return LSUMuxR0, true
	case "R1":
		return LSUMuxR1, true
	case "R2":
		return LSUMuxR2, true
	case "R3":
		return LSUMuxR3, true
	case "R4":
		return LSUMuxR4, true
	case "R5":
		return LSUMuxR5, true
	case "R6":
		return LSUMuxR6, true
	case "R7":
		return LSUMuxR7, true
	case "SRF":
		return LSUMuxSRF, true
	case "ZERO":
		return LSUMuxZero, true
	case "ONE":
		return LSUMuxOne, true
	case "TWO":
		return LSUMuxTwo, true
	}
	return 0, false
}

func parseLSUDest(s string) (LSUDestReg, int, bool) {
	regs := map[string]LSUDestReg{
		"R0": LSUR0, "R1": LSUR1, "R2": LSUR2, "R3": LSUR3,
		"R4": LSUR4, "R5": LSUR5, "R6": LSUR6, "R7": LSUR7,
	}
	if d, ok := regs[s]; ok {
		return d, -1, true
	}
	if idx, ok := parseSRFIndex(s); ok {
		return LSUDestSRF, idx, true
	}
	return 0, -1, false
}

// EncodeLSU parses one LSU mnemonic line. The arithmetic half and the
// memory half are separated by "/"; either may be omitted (defaulting
// to NOP on that side), matching the source's independent fields.
func EncodeLSU(line string) (LSUEncoded, error) {
	res := LSUEncoded{SRFRead: -1, SRFWrite: -1}
	halves := strings.SplitN(line, "/", 2)

	arithPart := strings.TrimSpace(halves[0])
	memPart := ""
	if len(halves) == 2 {
		memPart = strings.TrimSpace(halves[1])
	}

	if arithPart != "" && arithPart != "NOP" {
		op, operands := tokenizeLine(arithPart)
		aluOp, ok := lsuArithOps[op]
		if !ok {
			return res, newErr(ErrEncoding, "LSU", 0, 0, 0, "unknown arith op "+op)
		}
		if len(operands) != 3 {
			return res, newErr(ErrEncoding, "LSU", 0, 0, 0, "expected dest, muxA, muxB")
		}
		dest, srfIdx, ok := parseLSUDest(operands[0])
		if !ok {
			return res, newErr(ErrEncoding, "LSU", 0, 0, 0, "bad destination "+operands[0])
		}
		muxA, ok := parseLSUMux(operands[1])
		if !ok {
			return res, newErr(ErrEncoding, "LSU", 0, 0, 0, "bad muxA "+operands[1])
		}
		muxB, ok := parseLSUMux(operands[2])
		if !ok {
			return res, newErr(ErrEncoding, "LSU", 0, 0, 0, "bad muxB "+operands[2])
		}
		res.Word.Op = aluOp
		res.Word.MuxA = muxA
		res.Word.MuxB = muxB
		res.Word.RFWe = true
		res.Word.RFWsel = dest
		if muxA == LSUMuxSRF || muxB == LSUMuxSRF {
			res.SRFRead = 0
		}
		if dest == LSUDestSRF {
			res.SRFWrite = srfIdx
		}
	}

	if memPart == "" || memPart == "NOP" {
		res.Word.MemOp = LSUMemNop
		return res, nil
	}
	op, operands := tokenizeLine(memPart)
	switch {
	case op == "LD.VWR" || op == "STR.VWR":
		if len(operands) != 1 {
			return res, newErr(ErrEncoding, "LSU", 0, 0, 0, "expected one target")
		}
		target, ok := lsuVwrTargets[operands[0]]
		if !ok {
			return res, newErr(ErrEncoding, "LSU", 0, 0, 0, "bad load/store target "+operands[0])
		}
		if op == "LD.VWR" {
			res.Word.MemOp = LSUMemLoad
		} else {
			res.Word.MemOp = LSUMemStore
		}
		res.Word.VwrSelShufOp = int(target)
		if target == LSUVwrSRF {
			res.SRFWrite = 0 // treated as the SRF bank being (re)written/read wholesale
		}
	default:
		sel, ok := lsuShuffleOps[op]
		if !ok {
			return res, newErr(ErrEncoding, "LSU", 0, 0, 0, "unknown mem op "+op)
		}
		res.Word.MemOp = LSUMemShuffle
		res.Word.VwrSelShufOp = int(sel)
	}
	return res, nil
}
