package cgra

import "context"

// Simulator drives a CGRA through kernel configuration, loading, and
// cycle-by-cycle execution.
type Simulator struct {
	CGRA *CGRA

	MaxCycles uint64 // safety cutoff for kernels that never exit/branch out; 0 means unlimited
}

func NewSimulator() *Simulator {
	return &Simulator{CGRA: New()}
}

// KernelConfig writes a kernel descriptor into KMEM. colUsageOneHot is
// a (col0, col1) pair of bools, converted to the one-hot column_usage
// encoding before delegating to KMEM.AddKernel.
func (s *Simulator) KernelConfig(id int, col0, col1 bool, nInstrPerCol, imemStart, srfSPMAddr int) error {
	usage, err := oneHotColumns(col0, col1)
	if err != nil {
		return err
	}
	return s.CGRA.KMEM.AddKernel(id, KernelDescriptor{
		SRFSPMAddr:  srfSPMAddr,
		ColumnUsage: usage,
		IMEMStart:   imemStart,
		NumInstr:    nInstrPerCol,
	})
}

func oneHotColumns(col0, col1 bool) (int, error) {
	switch {
	case col0 && !col1:
		return 1, nil
	case !col0 && col1:
		return 2, nil
	case col0 && col1:
		return 3, nil
	default:
		return 0, newErr(ErrEncoding, "KMEM", 0, 0, 0, "kernel must use at least one column")
	}
}

// Row is one cycle's worth of decoded instruction words across a
// kernel's active columns: one LCU/LSU/MXCU word and Rows RC words per
// column. It is the in-memory interchange type the ioadapter package
// marshals to/from CSV.
type Row struct {
	LCU  [Columns]LCUWord
	LSU  [Columns]LSUWord
	MXCU [Columns]MXCUWord
	RC   [Columns][Rows]RCWord
}

// KernelLoad copies a decoded instruction table into the relevant
// IMEM rows for the kernel's active columns, starting at its
// configured imem_start.
func (s *Simulator) KernelLoad(id int, rows []Row) error {
	desc, err := s.CGRA.KMEM.Get(id)
	if err != nil {
		return err
	}
	start, end, err := desc.Columns()
	if err != nil {
		return err
	}
	if len(rows) < desc.NumInstr {
		return newErr(ErrIO, "KMEM", 0, 0, 0, "instruction table shorter than kernel's instruction count")
	}
	for pc := 0; pc < desc.NumInstr; pc++ {
		line := desc.IMEMStart + pc
		if line >= IMEMLines {
			return newErr(ErrBounds, "IMEM", 0, 0, 0, "kernel overruns instruction memory")
		}
		for col := start; col <= end; col++ {
			s.CGRA.IMEM.LCU[col][line] = rows[pc].LCU[col]
			s.CGRA.IMEM.LSU[col][line] = rows[pc].LSU[col]
			s.CGRA.IMEM.MXCU[col][line] = rows[pc].MXCU[col]
			for row := 0; row < Rows; row++ {
				s.CGRA.IMEM.RC[col][row][line] = rows[pc].RC[col][row]
			}
		}
	}
	return nil
}

// Run executes a configured, loaded kernel to completion (EXIT, PC
// falling off the end, or ctx cancellation / MaxCycles cutoff).
func (s *Simulator) Run(ctx context.Context, id int) error {
	desc, err := s.CGRA.KMEM.Get(id)
	if err != nil {
		return err
	}
	start, end, err := desc.Columns()
	if err != nil {
		return err
	}

	for col := start; col <= end; col++ {
		s.CGRA.LSU[col].Regs[7] = int32(desc.SRFSPMAddr)
	}

	pc := 0
	cycle := 0
	for pc < desc.NumInstr {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if s.MaxCycles != 0 && uint64(cycle) >= s.MaxCycles {
			return newErr(ErrBounds, "SIM", 0, 0, cycle, "exceeded max cycle safety cutoff")
		}

		line := desc.IMEMStart + pc
		branched := false
		branchPC := 0
		exited := false

		for col := start; col <= end; col++ {
			lcuW := s.CGRA.IMEM.LCU[col][line]
			lsuW := s.CGRA.IMEM.LSU[col][line]
			mxcuW := s.CGRA.IMEM.MXCU[col][line]
			srf := s.CGRA.SRF[col]
			srfIdx := mxcuW.SRFSel
			vwrs := s.CGRA.VWR[col]

			if err := s.CGRA.LSU[col].Run(col, cycle, lsuW, s.CGRA.SPM, srf, srfIdx, vwrs); err != nil {
				return err
			}

			var rcNewRes [Rows]int32
			var rcFlags [Rows]RCFlags
			mxcuRegs := s.CGRA.MXCU[col].Regs
			for row := 0; row < Rows; row++ {
				rcW := s.CGRA.IMEM.RC[col][row][line]
				n := s.CGRA.neighbors(col, row)
				if err := s.CGRA.RC[col][row].Run(col, row, cycle, rcW, srf, srfIdx, vwrs, mxcuRegs, n); err != nil {
					return err
				}
				rcNewRes[row] = s.CGRA.RC[col][row].ALU.NewRes()
				rcFlags[row] = RCFlags{Zero: s.CGRA.RC[col][row].ALU.ZeroFlag(), Sign: s.CGRA.RC[col][row].ALU.SignFlag()}
			}

			srcs := SRFSources{
				LCU: s.CGRA.LCU[col].ALU.NewRes(), // stale until LCU runs later this cycle, matching source ordering
				RC0: rcNewRes[0],
				LSU: s.CGRA.LSU[col].ALU.NewRes(),
			}
			if err := s.CGRA.MXCU[col].Run(col, cycle, mxcuW, srf, srfIdx, vwrs, rcNewRes, srcs); err != nil {
				return err
			}

			if err := s.CGRA.LCU[col].Run(col, cycle, lcuW, srf, srfIdx, rcFlags); err != nil {
				return err
			}
			if s.CGRA.LCU[col].Branched {
				if branched {
					return newErr(ErrCycleConsistency, "SIM", col, 0, cycle, "more than one column branched this cycle")
				}
				branched = true
				branchPC = s.CGRA.LCU[col].BranchPC
			}
			if s.CGRA.LCU[col].Exited {
				exited = true
			}
		}

		s.CGRA.updateSharedValues()
		cycle++

		if exited {
			return nil
		}
		if branched {
			pc = branchPC
		} else {
			pc++
		}
	}
	return nil
}
