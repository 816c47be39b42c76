package cgra

// LSUOp enumerates the LSU's scalar ALU op subset.
type LSUOp int

const (
	LSULand LSUOp = iota
	LSULor
	LSULxor
	LSUSadd
	LSUSsub
	LSUSll
	LSUSrl
	LSUBitrev
)

type LSUDestReg int

const (
	LSUR0 LSUDestReg = iota
	LSUR1
	LSUR2
	LSUR3
	LSUR4
	LSUR5
	LSUR6
	LSUR7
	LSUDestSRF
)

type LSUMuxSel int

const (
	LSUMuxR0 LSUMuxSel = iota
	LSUMuxR1
	LSUMuxR2
	LSUMuxR3
	LSUMuxR4
	LSUMuxR5
	LSUMuxR6
	LSUMuxR7
	LSUMuxSRF
	LSUMuxZero
	LSUMuxOne
	LSUMuxTwo
)

// LSUMemOp enumerates the memory-side operation, independent of the
// scalar ALU op in the same instruction.
type LSUMemOp int

const (
	LSUMemNop LSUMemOp = iota
	LSUMemLoad
	LSUMemStore
	LSUMemShuffle
)

// LSUVwrSel selects which VWR (or the SRF) a LOAD/STORE targets.
type LSUVwrSel int

const (
	LSUVwrA LSUVwrSel = iota
	LSUVwrB
	LSUVwrC
	LSUVwrSRF
)

// ShuffleSel enumerates the eight VWR_A/VWR_B -> VWR_C shuffle recipes.
type ShuffleSel int

const (
	ShuffleInterleaveUpper ShuffleSel = iota
	ShuffleInterleaveLower
	ShuffleEven
	ShuffleOdd
	ShuffleBitrevUpper
	ShuffleBitrevLower
	ShuffleCshiftUpper
	ShuffleCshiftLower
)

// LSUWord is the decoded form of a 20-bit LSU instruction. VwrSelShufOp
// is interpreted as an LSUVwrSel when MemOp is Load/Store, and as a
// ShuffleSel when MemOp is Shuffle.
type LSUWord struct {
	MemOp        LSUMemOp
	VwrSelShufOp int
	MuxA         LSUMuxSel
	MuxB         LSUMuxSel
	Op           LSUOp
	RFWe         bool
	RFWsel       LSUDestReg
}

func (w LSUWord) Pack() uint32 {
	return uint32(w.MemOp&0x3)<<18 |
		uint32(w.VwrSelShufOp&0x7)<<15 |
		uint32(w.MuxA&0xF)<<11 |
		uint32(w.MuxB&0xF)<<7 |
		uint32(w.Op&0x7)<<4 |
		boolBit(w.RFWe)<<3 |
		uint32(w.RFWsel&0x7)
}

func UnpackLSUWord(v uint32) LSUWord {
	muxA := LSUMuxSel((v >> 11) & 0xF)
	if muxA > LSUMuxTwo {
		muxA = LSUMuxZero
	}
	muxB := LSUMuxSel((v >> 7) & 0xF)
	if muxB > LSUMuxTwo {
		muxB = LSUMuxZero
	}
	return LSUWord{
		MemOp:        LSUMemOp((v >> 18) & 0x3),
		VwrSelShufOp: int((v >> 15) & 0x7),
		MuxA:         muxA,
		MuxB:         muxB,
		Op:           LSUOp((v >> 4) & 0x7),
		RFWe:         (v>>3)&0x1 != 0,
		RFWsel:       LSUDestReg(v & 0x7),
	}
}

// LSUSlot is one column's load/store unit.
type LSUSlot struct {
	Regs [8]int32
	ALU  ALU
}

func (l *LSUSlot) muxVal(sel LSUMuxSel, srf *SRF, srfIdx int) int32 {
	switch {
	case sel <= LSUMuxR7:
		return l.Regs[sel]
	case sel == LSUMuxSRF:
		return srf.Get(srfIdx)
	case sel == LSUMuxZero:
		return 0
	case sel == LSUMuxOne:
		return 1
	case sel == LSUMuxTwo:
		return 2
	}
	return 0
}

func lsuOpToALU(op LSUOp) ALUOp {
	switch op {
	case LSULand:
		return OpLand
	case LSULor:
		return OpLor
	case LSULxor:
		return OpLxor
	case LSUSadd:
		return OpSadd
	case LSUSsub:
		return OpSsub
	case LSUSll:
		return OpSll
	case LSUSrl:
		return OpSrl
	}
	return OpNop
}

// bitrev7 reverses the low 7 bits of n, used to build the 128-point
// shuffle permutation.
func bitrev7(n int) int {
	out := 0
	for i := 0; i < 7; i++ {
		out <<= 1
		out |= n & 1
		n >>= 1
	}
	return out
}

// Run executes one cycle of the LSU: the memory operation first
// (LOAD/STORE/SHUFFLE against the SPM line addressed by Regs[7] and
// the column's VWRs/SRF), then the scalar ALU op, with register
// writeback last.
func (l *LSUSlot) Run(col, cycle int, w LSUWord, spm *SPM, srf *SRF, srfIdx int, vwrs [VWRsPerCol]*VWR) error {
	if err := l.runMem(col, cycle, w, spm, srf, srfIdx, vwrs); err != nil {
		return err
	}

	muxA := l.muxVal(w.MuxA, srf, srfIdx)
	muxB := l.muxVal(w.MuxB, srf, srfIdx)
	if w.Op == LSUBitrev {
		l.ALU.Bitrev(muxA, muxB)
	} else if err := l.ALU.Run(lsuOpToALU(w.Op), false, muxA, muxB, 0, false); err != nil {
		return wrapErr(ErrEncoding, "LSU", col, 0, cycle, "alu op failed", err)
	}

	if w.RFWe {
		if w.RFWsel == LSUDestSRF {
			srf.Set(srfIdx, l.ALU.NewRes())
		} else {
			l.Regs[w.RFWsel] = l.ALU.NewRes()
		}
	}
	return nil
}

func (l *LSUSlot) runMem(col, cycle int, w LSUWord, spm *SPM, srf *SRF, srfIdx int, vwrs [VWRsPerCol]*VWR) error {
	line := int(l.Regs[7])
	switch w.MemOp {
	case LSUMemNop:
		return nil
	case LSUMemLoad:
		data, err := spm.Line(line)
		if err != nil {
			return wrapErr(ErrBounds, "LSU", col, 0, cycle, "LOAD out of range", err)
		}
		if LSUVwrSel(w.VwrSelShufOp) == LSUVwrSRF {
			for i := 0; i < SRFRegs; i++ {
				srf.Set(i, data[i])
			}
			return nil
		}
		vwrs[LSUVwrSel(w.VwrSelShufOp)].LoadFull(data)
		return nil
	case LSUMemStore:
		if LSUVwrSel(w.VwrSelShufOp) == LSUVwrSRF {
			var line [SPMWords]int32
			for i := 0; i < SRFRegs; i++ {
				line[i] = srf.Get(i)
			}
			return spm.SetLine(int(l.Regs[7]), line)
		}
		return spm.SetLine(int(l.Regs[7]), vwrs[LSUVwrSel(w.VwrSelShufOp)].Snapshot())
	case LSUMemShuffle:
		return l.runShuffle(col, cycle, ShuffleSel(w.VwrSelShufOp), vwrs)
	}
	return nil
}

// runShuffle builds the 256-element interleave/bitrev/circular-shift
// sequence from VWR_A and VWR_B and writes the upper (first 127) or
// lower (last 128) half into VWR_C. The 1-element gap between the two
// halves (index 127 of the 256-length sequence belongs to neither) is
// a faithfully reproduced source quirk, not a Go bug.
func (l *LSUSlot) runShuffle(col, cycle int, sel ShuffleSel, vwrs [VWRsPerCol]*VWR) error {
	a := vwrs[LSUVwrA].Snapshot()
	b := vwrs[LSUVwrB].Snapshot()

	if sel == ShuffleEven || sel == ShuffleOdd {
		// EVEN_INDICES / ODD_INDICES: concatenate the even (or odd)
		// indexed elements of A followed by those of B — already a
		// full 128-element result, no upper/lower split applies.
		half := ElemsPerVWR / 2
		offset := 0
		if sel == ShuffleOdd {
			offset = 1
		}
		var out [ElemsPerVWR]int32
		n := 0
		for i := 0; i < half; i++ {
			out[n] = a[2*i+offset]
			n++
		}
		for i := 0; i < half; i++ {
			out[n] = b[2*i+offset]
			n++
		}
		vwrs[LSUVwrC].LoadFull(out)
		return nil
	}

	var seq [2 * ElemsPerVWR]int32
	switch sel {
	case ShuffleInterleaveUpper, ShuffleInterleaveLower:
		for i := 0; i < ElemsPerVWR; i++ {
			seq[2*i] = a[i]
			seq[2*i+1] = b[i]
		}
	case ShuffleBitrevUpper, ShuffleBitrevLower:
		for i := 0; i < ElemsPerVWR; i++ {
			p := bitrev7(i)
			seq[2*i] = a[p]
			seq[2*i+1] = b[p]
		}
	case ShuffleCshiftUpper, ShuffleCshiftLower:
		n := 0
		for i := 1; i < ElemsPerVWR; i++ {
			seq[n] = a[i]
			n++
		}
		for i := 0; i < ElemsPerVWR; i++ {
			seq[n] = b[i]
			n++
		}
		seq[n] = a[0]
	default:
		return newErr(ErrEncoding, "LSU", col, 0, cycle, "unknown shuffle selector")
	}

	var out [ElemsPerVWR]int32
	switch sel {
	case ShuffleInterleaveUpper, ShuffleBitrevUpper, ShuffleCshiftUpper:
		copy(out[:], seq[0:ElemsPerVWR-1])
	default:
		copy(out[:], seq[ElemsPerVWR:2*ElemsPerVWR])
	}
	vwrs[LSUVwrC].LoadFull(out)
	return nil
}
