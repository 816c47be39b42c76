package cgra

// CGRA composes the whole machine: per-column slot units, shared SRFs
// and VWRs, the global SPM/IMEM/KMEM, and the RC torus wiring.
type CGRA struct {
	LCU  [Columns]LCUSlot
	LSU  [Columns]LSUSlot
	MXCU [Columns]MXCUSlot
	RC   [Columns][Rows]RCSlot

	SRF [Columns]*SRF
	VWR [Columns][VWRsPerCol]*VWR

	SPM  *SPM
	IMEM *IMEM
	KMEM *KMEM
}

func New() *CGRA {
	c := &CGRA{
		SPM:  NewSPM(),
		IMEM: NewIMEM(),
		KMEM: NewKMEM(),
	}
	for col := 0; col < Columns; col++ {
		c.SRF[col] = NewSRF()
		for v := 0; v < VWRsPerCol; v++ {
			c.VWR[col][v] = NewVWR()
		}
	}
	return c
}

// neighbors returns the torus-wrapped neighbor ALU references for RC
// (col, row): top/bottom wrap across columns, left/right wrap across
// rows, matching the source's wiring.
func (c *CGRA) neighbors(col, row int) Neighbors {
	rctCol := (col - 1 + Columns) % Columns
	rcbCol := (col + 1) % Columns
	rclRow := (row - 1 + Rows) % Rows
	rcrRow := (row + 1) % Rows
	return Neighbors{
		Top:    &c.RC[rctCol][row].ALU,
		Bottom: &c.RC[rcbCol][row].ALU,
		Left:   &c.RC[col][rclRow].ALU,
		Right:  &c.RC[col][rcrRow].ALU,
	}
}

// updateSharedValues commits every ALU's tentative result to its
// committed, neighbor-visible value, exactly once per ALU. The
// original source iterates RC ALUs inside a redundant nested column
// loop (each committed Columns times); this implementation commits
// each ALU exactly once, preserving the single required semantic
// (res becomes newRes at the cycle boundary) without the quadratic
// structure.
func (c *CGRA) updateSharedValues() {
	for col := 0; col < Columns; col++ {
		c.LCU[col].ALU.Commit()
		c.LSU[col].ALU.Commit()
		c.MXCU[col].ALU.Commit()
		for row := 0; row < Rows; row++ {
			c.RC[col][row].ALU.Commit()
		}
	}
}
