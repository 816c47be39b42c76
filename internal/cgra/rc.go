package cgra

// RCMuxSel enumerates the fourteen operand sources available to an RC:
// the column's three VWRs, the SRF, its own two registers, its four
// torus neighbors, and four constants.
type RCMuxSel int

const (
	RCMuxVwrA RCMuxSel = iota
	RCMuxVwrB
	RCMuxVwrC
	RCMuxSRF
	RCMuxR0
	RCMuxR1
	RCMuxRCT
	RCMuxRCB
	RCMuxRCL
	RCMuxRCR
	RCMuxZero
	RCMuxOne
	RCMuxMaxInt
	RCMuxMinInt
)

// RCMuxFSel selects which ALU's flag feeds SFGA/ZFGA: the RC's own, or
// one of its four neighbors.
type RCMuxFSel int

const (
	RCMuxFOwn RCMuxFSel = iota
	RCMuxFRCT
	RCMuxFRCB
	RCMuxFRCL
	RCMuxFRCR
)

// RCWord is the decoded form of an 18-bit RC instruction. RFWsel is a
// single bit (R0 vs R1): writes to SRF, VWR, or a pure routing
// destination (ROUT) never set RFWe, since those destinations are
// realized by other units reading this RC's ALU directly (the column's
// MXCU takes this cycle's result, NewRes, for SRF and VWR writes;
// neighbors read the committed result for ROUT), not by a local
// register-file write.
type RCWord struct {
	MuxA    RCMuxSel
	MuxB    RCMuxSel
	OpMode  int // 0: full precision, 1: half precision where supported
	Op      ALUOp
	MuxF    RCMuxFSel
	RFWe    bool
	RFWsel  int // 0: R0, 1: R1
}

func (w RCWord) Pack() uint32 {
	return uint32(w.MuxA&0xF)<<14 |
		uint32(w.MuxB&0xF)<<10 |
		uint32(w.OpMode&0x1)<<9 |
		uint32(w.Op&0xF)<<5 |
		uint32(w.MuxF&0x7)<<2 |
		boolBit(w.RFWe)<<1 |
		uint32(w.RFWsel&0x1)
}

func UnpackRCWord(v uint32) RCWord {
	muxA := RCMuxSel((v >> 14) & 0xF)
	if muxA > RCMuxMinInt {
		muxA = RCMuxZero
	}
	muxB := RCMuxSel((v >> 10) & 0xF)
	if muxB > RCMuxMinInt {
		muxB = RCMuxZero
	}
	return RCWord{
		MuxA:   muxA,
		MuxB:   muxB,
		OpMode: int((v >> 9) & 0x1),
		Op:     ALUOp((v >> 5) & 0xF),
		MuxF:   RCMuxFSel((v >> 2) & 0x7),
		RFWe:   (v>>1)&0x1 != 0,
		RFWsel: int(v & 0x1),
	}
}

// Neighbors bundles the four torus-adjacent ALUs an RC reads committed
// (.Res()) values and flags from: top, bottom, left, right.
type Neighbors struct {
	Top, Bottom, Left, Right *ALU
}

// RCSlot is one cell of the compute grid.
type RCSlot struct {
	Regs [2]int32
	ALU  ALU
}

// vwrIndex computes the element address an RC's VWR_A/B/C mux reads:
// the row's owned 32-word slice, offset within it by the MXCU's
// R0-masked-by-R{5,6,7} index, matching the MXCU's own write addressing.
func vwrIndex(row int, mxcuR0 int32, mask int32) int {
	return (int(mxcuR0) & int(mask)) + 32*row
}

func (r *RCSlot) muxVal(sel RCMuxSel, row int, srf *SRF, srfIdx int, vwrs [VWRsPerCol]*VWR, mxcuRegs [8]int32, n Neighbors) int32 {
	switch sel {
	case RCMuxVwrA:
		return vwrs[0].Get(vwrIndex(row, mxcuRegs[0], mxcuRegs[5]))
	case RCMuxVwrB:
		return vwrs[1].Get(vwrIndex(row, mxcuRegs[0], mxcuRegs[6]))
	case RCMuxVwrC:
		return vwrs[2].Get(vwrIndex(row, mxcuRegs[0], mxcuRegs[7]))
	case RCMuxSRF:
		return srf.Get(srfIdx)
	case RCMuxR0:
		return r.Regs[0]
	case RCMuxR1:
		return r.Regs[1]
	case RCMuxRCT:
		return n.Top.Res()
	case RCMuxRCB:
		return n.Bottom.Res()
	case RCMuxRCL:
		return n.Left.Res()
	case RCMuxRCR:
		return n.Right.Res()
	case RCMuxZero:
		return 0
	case RCMuxOne:
		return 1
	case RCMuxMaxInt:
		return Max32
	case RCMuxMinInt:
		return Min32
	}
	return 0
}

func (r *RCSlot) flagVal(sel RCMuxFSel, own *ALU, n Neighbors, signFlag bool) bool {
	var alu *ALU
	switch sel {
	case RCMuxFOwn:
		alu = own
	case RCMuxFRCT:
		alu = n.Top
	case RCMuxFRCB:
		alu = n.Bottom
	case RCMuxFRCL:
		alu = n.Left
	case RCMuxFRCR:
		alu = n.Right
	default:
		alu = own
	}
	if signFlag {
		return alu.SignFlag()
	}
	return alu.ZeroFlag()
}

// Run executes one cycle of an RC. row is this cell's row within its
// column (0..Rows-1), used both for VWR addressing and to gate the
// row-0-only SRF destination. mxcuRegs is the column MXCU's register
// file (R0/R5/R6/R7 feed VWR addressing).
func (r *RCSlot) Run(col, row, cycle int, w RCWord, srf *SRF, srfIdx int, vwrs [VWRsPerCol]*VWR, mxcuRegs [8]int32, n Neighbors) error {
	muxA := r.muxVal(w.MuxA, row, srf, srfIdx, vwrs, mxcuRegs, n)
	muxB := r.muxVal(w.MuxB, row, srf, srfIdx, vwrs, mxcuRegs, n)
	half := w.OpMode == 1

	switch w.Op {
	case OpInbSfInA:
		flag := r.flagVal(w.MuxF, &r.ALU, n, true)
		if err := r.ALU.Run(OpInbSfInA, false, muxA, muxB, 0, flag); err != nil {
			return wrapErr(ErrEncoding, "RC", col, row, cycle, "sfga failed", err)
		}
	case OpInbZfInA:
		flag := r.flagVal(w.MuxF, &r.ALU, n, false)
		if err := r.ALU.Run(OpInbZfInA, false, muxA, muxB, 0, flag); err != nil {
			return wrapErr(ErrEncoding, "RC", col, row, cycle, "zfga failed", err)
		}
	case OpMac:
		if err := r.ALU.Run(OpMac, half, muxA, muxB, r.Regs[0], false); err != nil {
			return wrapErr(ErrEncoding, "RC", col, row, cycle, "mac failed", err)
		}
	default:
		if err := r.ALU.Run(w.Op, half, muxA, muxB, 0, false); err != nil {
			return wrapErr(ErrEncoding, "RC", col, row, cycle, "alu op failed", err)
		}
	}

	if w.RFWe {
		r.Regs[w.RFWsel] = r.ALU.NewRes()
	}
	return nil
}
