package cgra

// CycleAsm is one cycle's worth of per-slot assembly mnemonics for a
// single column: the inputs to AssembleCycle.
type CycleAsm struct {
	LCU  string
	LSU  string
	MXCU string
	RC   [Rows]string
}

// AssembleCycle translates one column's per-cycle mnemonics into their
// packed word forms, performing the cross-slot legality checks from
// §4.6: at most one SRF write, a single shared SRF index, only RC0 may
// write the SRF, and all RC VWR writes in the cycle must target the
// same VWR.
func AssembleCycle(col, cycle int, asm CycleAsm) (LCUWord, LSUWord, MXCUWord, [Rows]RCWord, error) {
	var rcWords [Rows]RCWord

	lcuEnc, err := EncodeLCU(asm.LCU)
	if err != nil {
		return LCUWord{}, LSUWord{}, MXCUWord{}, rcWords, err
	}
	lsuEnc, err := EncodeLSU(asm.LSU)
	if err != nil {
		return LCUWord{}, LSUWord{}, MXCUWord{}, rcWords, err
	}
	mxcuEnc, err := EncodeMXCU(asm.MXCU)
	if err != nil {
		return LCUWord{}, LSUWord{}, MXCUWord{}, rcWords, err
	}

	var rcEncs [Rows]RCEncoded
	for row := 0; row < Rows; row++ {
		enc, err := EncodeRC(asm.RC[row])
		if err != nil {
			return LCUWord{}, LSUWord{}, MXCUWord{}, rcWords, err
		}
		if row != 0 && enc.SRFWrite >= 0 {
			return LCUWord{}, LSUWord{}, MXCUWord{}, rcWords, newErr(ErrCycleConsistency, "RC", col, row, cycle,
				"only RC0 may write the SRF")
		}
		rcEncs[row] = enc
		rcWords[row] = enc.Word
	}

	// VWR row-enable derivation: every RC whose destination is a VWR
	// contributes its row, and all must target the same VWR index.
	vwrTarget := -1
	var rowWe [Rows]bool
	for row := 0; row < Rows; row++ {
		if rcEncs[row].VWRWrite < 0 {
			continue
		}
		if vwrTarget >= 0 && vwrTarget != rcEncs[row].VWRWrite {
			return LCUWord{}, LSUWord{}, MXCUWord{}, rcWords, newErr(ErrCycleConsistency, "RC", col, row, cycle,
				"RCs target different VWRs in the same cycle")
		}
		vwrTarget = rcEncs[row].VWRWrite
		rowWe[row] = true
	}
	if vwrTarget < 0 {
		vwrTarget = 0
	}
	mxcuEnc.Word.VwrSel = MXCUVwrSel(vwrTarget)
	mxcuEnc.Word.VwrRowWe = rowWe

	// SRF arbitration across the column's seven slots.
	accesses := []SlotAccess{
		{Slot: "LCU", ReadIdx: lcuEnc.SRFRead, WriteIdx: lcuEnc.SRFWrite},
		{Slot: "LSU", ReadIdx: lsuEnc.SRFRead, WriteIdx: lsuEnc.SRFWrite},
		{Slot: "MXCU", ReadIdx: mxcuEnc.SRFRead, WriteIdx: -1}, // MXCU's own SRF write is handled below
	}
	for row := 0; row < Rows; row++ {
		slot := "RC" + string(rune('0'+row))
		accesses = append(accesses, SlotAccess{Slot: slot, ReadIdx: rcEncs[row].SRFRead, WriteIdx: rcEncs[row].SRFWrite})
	}

	srfIdx, we, writer, err := CheckReadsWrites(col, cycle, accesses)
	if err != nil {
		return LCUWord{}, LSUWord{}, MXCUWord{}, rcWords, err
	}

	// The MXCU's own arithmetic instruction writing SRF(k) takes
	// precedence over cross-slot arbitration, matching the source's
	// mxcu.asmToHex auto-derivation.
	if mxcuEnc.SRFWrite >= 0 {
		mxcuEnc.Word.SRFWe = true
		mxcuEnc.Word.AluSRFWrite = SRFSrcMXCU
		mxcuEnc.Word.SRFSel = mxcuEnc.SRFWrite
	} else {
		mxcuEnc.Word.SRFWe = we
		mxcuEnc.Word.SRFSel = srfIdx
		mxcuEnc.Word.AluSRFWrite = SRFWriteSource(writer)
	}

	return lcuEnc.Word, lsuEnc.Word, mxcuEnc.Word, rcWords, nil
}
