package ioadapter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lookbusy1344/vwr2a-cgra/internal/cgra"
)

func TestWriteHeaderEmitsPerColumnArrays(t *testing.T) {
	rows := []cgra.Row{{LCU: [cgra.Columns]cgra.LCUWord{{Op: cgra.LCUSadd}}}}
	var buf bytes.Buffer
	if err := WriteHeader(&buf, []uint32{0x1, 0x2}, rows, []int{0}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"dsip_kmem_bitstream",
		"dsip_lcu_imem_bitstream_col0",
		"dsip_lsu_imem_bitstream_col0",
		"dsip_mxcu_imem_bitstream_col0",
		"dsip_rcs_imem_bitstream_col0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected header output to contain %q, got:\n%s", want, out)
		}
	}
}
