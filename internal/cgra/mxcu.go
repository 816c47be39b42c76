package cgra

// MXCUOp enumerates the MXCU's own scalar ALU op subset.
type MXCUOp int

const (
	MXCUNop MXCUOp = iota
	MXCUSadd
	MXCUSsub
	MXCUSll
	MXCUSrl
	MXCULand
	MXCULor
	MXCULxor
)

type MXCUDestReg int

const (
	MXCUR0 MXCUDestReg = iota
	MXCUR1
	MXCUR2
	MXCUR3
	MXCUR4
	MXCUR5
	MXCUR6
	MXCUR7
	MXCUDestSRF
)

type MXCUMuxSel int

const (
	MXCUMuxR0 MXCUMuxSel = iota
	MXCUMuxR1
	MXCUMuxR2
	MXCUMuxR3
	MXCUMuxR4
	MXCUMuxR5
	MXCUMuxR6
	MXCUMuxR7
	MXCUMuxSRF
	MXCUMuxZero
	MXCUMuxOne
	MXCUMuxTwo
	MXCUMuxHalf
	MXCUMuxLast
)

// SRFWriteSource mirrors SRFWriter but as encoded in the MXCU word
// (ALU_SRF_WRITE), since the MXCU is the slot that owns srf_we/srf_sel
// in the instruction encoding even when another slot supplies the
// value.
type SRFWriteSource int

const (
	SRFSrcLCU SRFWriteSource = iota
	SRFSrcRC0
	SRFSrcMXCU
	SRFSrcLSU
)

type MXCUVwrSel int

const (
	MXCUVwrA MXCUVwrSel = iota
	MXCUVwrB
	MXCUVwrC
)

// MXCUWord is the decoded form of a 27-bit MXCU instruction. VwrRowWe
// is already row-indexed (bit i = row i); Pack/Unpack perform the
// MSB-first-to-row-indexed bit reversal the source applies on decode.
type MXCUWord struct {
	MuxA         MXCUMuxSel
	MuxB         MXCUMuxSel
	Op           MXCUOp
	RFWe         bool
	RFWsel       MXCUDestReg
	SRFWe        bool
	AluSRFWrite  SRFWriteSource
	SRFSel       int
	VwrSel       MXCUVwrSel
	VwrRowWe     [Rows]bool
}

func reverseRowBits(bits [Rows]bool) [Rows]bool {
	var out [Rows]bool
	for i := 0; i < Rows; i++ {
		out[i] = bits[Rows-1-i]
	}
	return out
}

func (w MXCUWord) Pack() uint32 {
	stored := reverseRowBits(w.VwrRowWe)
	var rowBits uint32
	for i := 0; i < Rows; i++ {
		if stored[i] {
			rowBits |= 1 << uint(Rows-1-i)
		}
	}
	return uint32(w.MuxA&0xF)<<23 |
		uint32(w.MuxB&0xF)<<19 |
		uint32(w.Op&0x7)<<16 |
		boolBit(w.RFWe)<<15 |
		uint32(w.RFWsel&0x7)<<12 |
		boolBit(w.SRFWe)<<11 |
		uint32(w.AluSRFWrite&0x3)<<9 |
		uint32(w.SRFSel&0x7)<<6 |
		uint32(w.VwrSel&0x3)<<4 |
		rowBits
}

func UnpackMXCUWord(v uint32) MXCUWord {
	var raw [Rows]bool
	for i := 0; i < Rows; i++ {
		raw[i] = (v>>uint(Rows-1-i))&0x1 != 0
	}
	muxA := MXCUMuxSel((v >> 23) & 0xF)
	if muxA > MXCUMuxLast {
		muxA = MXCUMuxZero
	}
	muxB := MXCUMuxSel((v >> 19) & 0xF)
	if muxB > MXCUMuxLast {
		muxB = MXCUMuxZero
	}
	return MXCUWord{
		MuxA:        muxA,
		MuxB:        muxB,
		Op:          MXCUOp((v >> 16) & 0x7),
		RFWe:        (v>>15)&0x1 != 0,
		RFWsel:      MXCUDestReg((v >> 12) & 0x7),
		SRFWe:       (v>>11)&0x1 != 0,
		AluSRFWrite: SRFWriteSource((v >> 9) & 0x3),
		SRFSel:      int((v >> 6) & 0x7),
		VwrSel:      MXCUVwrSel((v >> 4) & 0x3),
		VwrRowWe:    reverseRowBits(raw),
	}
}

func mxcuOpToALU(op MXCUOp) ALUOp {
	switch op {
	case MXCUSadd:
		return OpSadd
	case MXCUSsub:
		return OpSsub
	case MXCUSll:
		return OpSll
	case MXCUSrl:
		return OpSrl
	case MXCULand:
		return OpLand
	case MXCULor:
		return OpLor
	case MXCULxor:
		return OpLxor
	}
	return OpNop
}

// MXCUSlot is one column's VWR-write/SRF-arbitration unit.
type MXCUSlot struct {
	Regs [8]int32
	ALU  ALU
}

func (m *MXCUSlot) muxVal(sel MXCUMuxSel, srf *SRF, srfIdx int) int32 {
	switch {
	case sel <= MXCUMuxR7:
		return m.Regs[sel]
	case sel == MXCUMuxSRF:
		return srf.Get(srfIdx)
	case sel == MXCUMuxZero:
		return 0
	case sel == MXCUMuxOne:
		return 1
	case sel == MXCUMuxTwo:
		return 2
	case sel == MXCUMuxHalf:
		return halfSlice
	case sel == MXCUMuxLast:
		return lastSlice
	}
	return 0
}

// SRFSources bundles the per-column ALU results the MXCU may commit to
// the SRF, since alu_srf_write can point at any of four slots.
type SRFSources struct {
	LCU  int32
	RC0  int32
	LSU  int32
}

// Run executes one cycle of the MXCU: it drives VWR row writes from
// the column's RC results (already computed this cycle, since RCs run
// before MXCU), optionally commits an SRF write on behalf of whichever
// slot produced it, and runs its own scalar ALU.
func (m *MXCUSlot) Run(col, cycle int, w MXCUWord, srf *SRF, srfIdx int, vwrs [VWRsPerCol]*VWR, rcNewRes [Rows]int32, srcs SRFSources) error {
	muxA := m.muxVal(w.MuxA, srf, srfIdx)
	muxB := m.muxVal(w.MuxB, srf, srfIdx)
	if err := m.ALU.Run(mxcuOpToALU(w.Op), false, muxA, muxB, 0, false); err != nil {
		return wrapErr(ErrEncoding, "MXCU", col, 0, cycle, "alu op failed", err)
	}

	mask := m.Regs[5+int(w.VwrSel)]
	sliceIdx := int(m.Regs[0]) & int(mask)
	dest := vwrs[w.VwrSel]
	for row := 0; row < Rows; row++ {
		if !w.VwrRowWe[row] {
			continue
		}
		dest.Set(sliceIdx+32*row, rcNewRes[row])
	}

	if w.RFWe {
		if w.RFWsel == MXCUDestSRF {
			srf.Set(srfIdx, m.ALU.NewRes())
		} else {
			m.Regs[w.RFWsel] = m.ALU.NewRes()
		}
	}

	if w.SRFWe {
		var val int32
		switch w.AluSRFWrite {
		case SRFSrcLCU:
			val = srcs.LCU
		case SRFSrcRC0:
			val = srcs.RC0
		case SRFSrcMXCU:
			val = m.ALU.NewRes()
		case SRFSrcLSU:
			val = srcs.LSU
		}
		srf.Set(w.SRFSel, val)
	}
	return nil
}
