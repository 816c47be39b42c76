package cgra

// LCUOp enumerates the LCU's own opcode space: eight scalar arithmetic
// ops, three register-compare branches, the post-decrement branch,
// jump, nop, and exit.
type LCUOp int

const (
	LCUNop LCUOp = iota
	LCUSadd
	LCUSsub
	LCUSll
	LCUSrl
	LCUSra
	LCULand
	LCULor
	LCULxor
	LCUBeq
	LCUBne
	LCUBgepd
	LCUBlt
	LCUJump
	LCUExit
)

// LCUDestReg enumerates the LCU's write destinations.
type LCUDestReg int

const (
	LCUR0 LCUDestReg = iota
	LCUR1
	LCUR2
	LCUR3
	LCUDestSRF
)

// LCUMuxASel / LCUMuxBSel enumerate the two operand muxes. MuxA offers
// IMM where MuxB offers ONE; both offer the shared R0..R3/SRF/LAST/ZERO
// set.
type LCUMuxASel int

const (
	LCUMuxAR0 LCUMuxASel = iota
	LCUMuxAR1
	LCUMuxAR2
	LCUMuxAR3
	LCUMuxASRF
	LCUMuxALast
	LCUMuxAZero
	LCUMuxAImm
)

type LCUMuxBSel int

const (
	LCUMuxBR0 LCUMuxBSel = iota
	LCUMuxBR1
	LCUMuxBR2
	LCUMuxBR3
	LCUMuxBSRF
	LCUMuxBLast
	LCUMuxBZero
	LCUMuxBOne
)

// LCUWord is the decoded form of a 20-bit LCU instruction.
type LCUWord struct {
	MuxA   LCUMuxASel
	MuxB   LCUMuxBSel
	BrMode int // 0: SSUB-derived compare, 1: OR-reduced RC flags
	Op     LCUOp
	RFWe   bool
	RFWsel LCUDestReg
	Imm    int
}

func (w LCUWord) Pack() uint32 {
	return uint32(w.MuxA&0x7)<<17 |
		uint32(w.MuxB&0x7)<<14 |
		uint32(w.BrMode&0x1)<<13 |
		uint32(w.Op&0xF)<<9 |
		boolBit(w.RFWe)<<8 |
		uint32(w.RFWsel&0x3)<<6 |
		uint32(w.Imm&0x3F)
}

func UnpackLCUWord(v uint32) LCUWord {
	op := LCUOp((v >> 9) & 0xF)
	if op > LCUExit {
		op = LCUNop // undefined alu_op codes alias to NOP
	}
	return LCUWord{
		MuxA:   LCUMuxASel((v >> 17) & 0x7),
		MuxB:   LCUMuxBSel((v >> 14) & 0x7),
		BrMode: int((v >> 13) & 0x1),
		Op:     op,
		RFWe:   (v>>8)&0x1 != 0,
		RFWsel: LCUDestReg((v >> 6) & 0x3),
		Imm:    int(v & 0x3F),
	}
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// LCUSlot is one column's loop-control unit: register file, ALU, and
// sticky branch/exit outputs consumed by the simulator driver.
type LCUSlot struct {
	Regs [4]int32
	ALU  ALU

	Branched   bool
	BranchPC   int
	Exited     bool
}

// RCFlags is the (zero, sign) flag pair an LCU needs from each RC in
// its column to resolve br_mode=1 branches.
type RCFlags struct {
	Zero bool
	Sign bool
}

func (l *LCUSlot) muxAVal(w LCUWord, srf *SRF, srfIdx int) int32 {
	switch w.MuxA {
	case LCUMuxAR0:
		return l.Regs[0]
	case LCUMuxAR1:
		return l.Regs[1]
	case LCUMuxAR2:
		return l.Regs[2]
	case LCUMuxAR3:
		return l.Regs[3]
	case LCUMuxASRF:
		return srf.Get(srfIdx)
	case LCUMuxALast:
		return lastSlice
	case LCUMuxAZero:
		return 0
	case LCUMuxAImm:
		return int32(w.Imm)
	}
	return 0
}

func (l *LCUSlot) muxBVal(w LCUWord, srf *SRF, srfIdx int) int32 {
	switch w.MuxB {
	case LCUMuxBR0:
		return l.Regs[0]
	case LCUMuxBR1:
		return l.Regs[1]
	case LCUMuxBR2:
		return l.Regs[2]
	case LCUMuxBR3:
		return l.Regs[3]
	case LCUMuxBSRF:
		return srf.Get(srfIdx)
	case LCUMuxBLast:
		return lastSlice
	case LCUMuxBZero:
		return 0
	case LCUMuxBOne:
		return 1
	}
	return 0
}

func (l *LCUSlot) writeDest(w LCUWord, srf *SRF, srfIdx int, val int32) {
	if !w.RFWe {
		return
	}
	switch w.RFWsel {
	case LCUR0:
		l.Regs[0] = val
	case LCUR1:
		l.Regs[1] = val
	case LCUR2:
		l.Regs[2] = val
	case LCUR3:
		l.Regs[3] = val
	case LCUDestSRF:
		srf.Set(srfIdx, val)
	}
}

// Run executes one cycle of the LCU. srfIdx is the column's arbitrated
// SRF index for this cycle (see CheckReadsWrites); rcFlags carries the
// four RCs' committed flags for br_mode=1 compares.
func (l *LCUSlot) Run(col, cycle int, w LCUWord, srf *SRF, srfIdx int, rcFlags [Rows]RCFlags) error {
	l.Branched = false
	l.Exited = false

	muxA := l.muxAVal(w, srf, srfIdx)
	muxB := l.muxBVal(w, srf, srfIdx)
	// bgepd decrements muxA uniformly across all its source kinds before use.
	if w.Op == LCUBgepd {
		muxA--
	}

	switch w.Op {
	case LCUNop:
	case LCUSadd, LCUSsub, LCUSll, LCUSrl, LCUSra, LCULand, LCULor, LCULxor:
		if err := l.ALU.Run(lcuOpToALU(w.Op), false, muxA, muxB, 0, false); err != nil {
			return wrapErr(ErrEncoding, "LCU", col, 0, cycle, "alu op failed", err)
		}
		l.writeDest(w, srf, srfIdx, l.ALU.NewRes())
	case LCUBeq, LCUBne, LCUBlt:
		var equal, greater bool
		if w.BrMode == 0 {
			if err := l.ALU.Run(OpSsub, false, muxA, muxB, 0, false); err != nil {
				return err
			}
			equal = l.ALU.ZeroFlag()
			greater = !l.ALU.SignFlag() && !l.ALU.ZeroFlag()
		} else {
			for _, f := range rcFlags {
				equal = equal || f.Zero
				greater = greater || (!f.Sign && !f.Zero)
			}
		}
		take := false
		switch w.Op {
		case LCUBeq:
			take = equal
		case LCUBne:
			take = !equal
		case LCUBlt:
			take = !equal && !greater
		}
		if take {
			l.Branched = true
			l.BranchPC = w.Imm
		}
	case LCUBgepd:
		if w.BrMode == 1 {
			var equal, greater bool
			for _, f := range rcFlags {
				equal = equal || f.Zero
				greater = greater || (!f.Sign && !f.Zero)
			}
			if equal || greater {
				l.Branched = true
				l.BranchPC = w.Imm
			}
			break
		}
		if err := l.ALU.Run(OpSsub, false, muxA, 0, 0, false); err != nil {
			return err
		}
		l.writeDest(w, srf, srfIdx, l.ALU.NewRes())
		if muxA >= 0 {
			l.Branched = true
			l.BranchPC = w.Imm
		}
	case LCUJump:
		l.Branched = true
		l.BranchPC = int(muxB + muxA)
	case LCUExit:
		l.Exited = true
	}
	return nil
}

func lcuOpToALU(op LCUOp) ALUOp {
	switch op {
	case LCUSadd:
		return OpSadd
	case LCUSsub:
		return OpSsub
	case LCUSll:
		return OpSll
	case LCUSrl:
		return OpSrl
	case LCUSra:
		return OpSra
	case LCULand:
		return OpLand
	case LCULor:
		return OpLor
	case LCULxor:
		return OpLxor
	}
	return OpNop
}
