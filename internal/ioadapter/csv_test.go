package ioadapter

import (
	"bytes"
	"testing"

	"github.com/lookbusy1344/vwr2a-cgra/internal/cgra"
)

func TestHexTableRoundTrip(t *testing.T) {
	rows := []cgra.Row{
		{
			LCU: [cgra.Columns]cgra.LCUWord{{Op: cgra.LCUSadd, Imm: 3}, {Op: cgra.LCUNop}},
			LSU: [cgra.Columns]cgra.LSUWord{{Op: cgra.LSUSadd}, {Op: cgra.LSULand}},
		},
	}
	var buf bytes.Buffer
	if err := WriteHexTable(&buf, []int{0, 1}, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadHexTable(&buf, []int{0, 1})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].LCU[0].Op != cgra.LCUSadd || got[0].LCU[0].Imm != 3 {
		t.Errorf("col0 LCU mismatch: %+v", got[0].LCU[0])
	}
	if got[0].LSU[1].Op != cgra.LSULand {
		t.Errorf("col1 LSU mismatch: %+v", got[0].LSU[1])
	}
}

func TestAsmTableRoundTrip(t *testing.T) {
	rows := [][]cgra.CycleAsm{
		{
			{LCU: "SADD R0, R1, R2", LSU: "NOP", MXCU: "NOP", RC: [cgra.Rows]string{"NOP", "NOP", "NOP", "NOP"}},
		},
	}
	var buf bytes.Buffer
	if err := WriteAsmTable(&buf, []int{0}, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadAsmTable(&buf, []int{0})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0][0].LCU != "SADD R0, R1, R2" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestReadHexTableMissingColumnErrors(t *testing.T) {
	csvData := "LCU0\n0x1\n"
	if _, err := ReadHexTable(bytes.NewBufferString(csvData), []int{0}); err == nil {
		t.Error("expected error for missing LSU0/MXCU0/RC0_* columns")
	}
}
