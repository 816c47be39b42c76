package cgra

// SRFWriter identifies which slot's ALU result is committed into the
// shared register file on a cycle where srf_we is set.
type SRFWriter int

const (
	SRFWriteLCU SRFWriter = iota
	SRFWriteRC0
	SRFWriteMXCU
	SRFWriteLSU
)

// SRF is a column's shared scalar register file. It is read by any
// slot and written by at most one slot per cycle; CheckReadsWrites
// enforces that discipline across a column's seven slots (LCU, LSU,
// MXCU, four RCs) for one cycle.
type SRF struct {
	regs [SRFRegs]int32
}

func NewSRF() *SRF {
	return &SRF{}
}

func (s *SRF) Get(idx int) int32 {
	return s.regs[idx&(SRFRegs-1)]
}

func (s *SRF) Set(idx int, val int32) {
	s.regs[idx&(SRFRegs-1)] = val
}

// SlotAccess describes one slot's SRF read/write intent for a cycle.
// ReadIdx/WriteIdx are -1 when the slot does not touch the SRF that
// way this cycle.
type SlotAccess struct {
	Slot     string // "LCU", "LSU", "MXCU", "RC0".."RC3"
	ReadIdx  int
	WriteIdx int
}

// CheckReadsWrites validates a cycle's collected SRF accesses across a
// column and derives the arbitration outcome, following the source's
// precedence exactly: of the slots that wrote, RC0 is the default
// writer, LCU overrides RC0, and LSU overrides LCU (i.e. LSU wins if
// present, else LCU, else RC0, else LCU(0) by default when nobody
// wrote but srf_we is nonetheless requested by the caller).
func CheckReadsWrites(col, cycle int, accesses []SlotAccess) (idx int, we bool, writer SRFWriter, err error) {
	readIdx := -1
	writeIdx := -1
	writer = SRFWriteLCU

	for _, acc := range accesses {
		if acc.WriteIdx >= 0 {
			switch acc.Slot {
			case "RC1", "RC2", "RC3":
				return 0, false, 0, newErr(ErrCycleConsistency, "SRF", col, 0, cycle,
					"only RC0 may write the SRF")
			}
		}
		if acc.ReadIdx >= 0 {
			if readIdx >= 0 && readIdx != acc.ReadIdx {
				return 0, false, 0, newErr(ErrCycleConsistency, "SRF", col, 0, cycle,
					"multiple distinct SRF read indices in one cycle")
			}
			readIdx = acc.ReadIdx
		}
		if acc.WriteIdx >= 0 {
			if writeIdx >= 0 && writeIdx != acc.WriteIdx {
				return 0, false, 0, newErr(ErrCycleConsistency, "SRF", col, 0, cycle,
					"multiple SRF writes in one cycle")
			}
			writeIdx = acc.WriteIdx
		}
	}

	if readIdx >= 0 && writeIdx >= 0 && readIdx != writeIdx {
		return 0, false, 0, newErr(ErrCycleConsistency, "SRF", col, 0, cycle,
			"SRF read and write indices differ in one cycle")
	}

	// Resolve precedence: RC0 default, LCU overrides, LSU overrides LCU.
	wroteRC0, wroteLCU, wroteLSU := false, false, false
	for _, acc := range accesses {
		if acc.WriteIdx < 0 {
			continue
		}
		switch acc.Slot {
		case "RC0":
			wroteRC0 = true
		case "LCU":
			wroteLCU = true
		case "LSU":
			wroteLSU = true
		}
	}
	switch {
	case wroteLSU:
		writer = SRFWriteLSU
	case wroteLCU:
		writer = SRFWriteLCU
	case wroteRC0:
		writer = SRFWriteRC0
	default:
		writer = SRFWriteLCU
	}

	idx = readIdx
	if idx < 0 {
		idx = writeIdx
	}
	if idx < 0 {
		idx = 0
	}
	we = writeIdx >= 0
	return idx, we, writer, nil
}
