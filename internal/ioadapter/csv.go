// Package ioadapter holds the file-format plumbing the simulator core
// deliberately has no knowledge of: CSV instruction tables in both hex
// and assembly form, and C header emission for downstream firmware.
// These are thin converters between cgra.Row/cgra.CycleAsm and the
// on-disk formats; none of them carry simulation semantics.
package ioadapter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lookbusy1344/vwr2a-cgra/internal/cgra"
)

// columnHeaders returns the header names this adapter expects/emits
// for one CGRA column: "LCU<c>,LSU<c>,MXCU<c>,RC<c>_0..RC<c>_{R-1}".
func columnHeaders(col int) []string {
	h := []string{fmt.Sprintf("LCU%d", col), fmt.Sprintf("LSU%d", col), fmt.Sprintf("MXCU%d", col)}
	for row := 0; row < cgra.Rows; row++ {
		h = append(h, fmt.Sprintf("RC%d_%d", col, row))
	}
	return h
}

func allHeaders(activeCols []int) []string {
	var h []string
	for _, c := range activeCols {
		h = append(h, columnHeaders(c)...)
	}
	return h
}

// WriteHexTable emits one row per cycle, each cell a 0x-prefixed hex
// word for the named slot/column.
func WriteHexTable(w io.Writer, activeCols []int, rows []cgra.Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(allHeaders(activeCols)); err != nil {
		return err
	}
	for _, r := range rows {
		var rec []string
		for _, c := range activeCols {
			rec = append(rec,
				hexOf(r.LCU[c].Pack()), hexOf(r.LSU[c].Pack()), hexOf(r.MXCU[c].Pack()))
			for row := 0; row < cgra.Rows; row++ {
				rec = append(rec, hexOf(r.RC[c][row].Pack()))
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func hexOf(v uint32) string { return "0x" + strconv.FormatUint(uint64(v), 16) }

// ReadHexTable parses a hex instruction table, decoding each cell back
// into its slot's word type.
func ReadHexTable(r io.Reader, activeCols []int) ([]cgra.Row, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx := indexHeader(header)

	var rows []cgra.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var out cgra.Row
		for _, c := range activeCols {
			lcu, err := parseHex(rec, idx, fmt.Sprintf("LCU%d", c))
			if err != nil {
				return nil, err
			}
			lsu, err := parseHex(rec, idx, fmt.Sprintf("LSU%d", c))
			if err != nil {
				return nil, err
			}
			mxcu, err := parseHex(rec, idx, fmt.Sprintf("MXCU%d", c))
			if err != nil {
				return nil, err
			}
			out.LCU[c] = cgra.UnpackLCUWord(lcu)
			out.LSU[c] = cgra.UnpackLSUWord(lsu)
			out.MXCU[c] = cgra.UnpackMXCUWord(mxcu)
			for row := 0; row < cgra.Rows; row++ {
				rc, err := parseHex(rec, idx, fmt.Sprintf("RC%d_%d", c, row))
				if err != nil {
					return nil, err
				}
				out.RC[c][row] = cgra.UnpackRCWord(rc)
			}
		}
		rows = append(rows, out)
	}
	return rows, nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseHex(rec []string, idx map[string]int, name string) (uint32, error) {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return 0, fmt.Errorf("missing column %q", name)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(rec[i], "0x")), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", name, err)
	}
	return uint32(v), nil
}

// WriteAsmTable emits one row per cycle of human-readable mnemonics,
// one column set of CycleAsm per active column.
func WriteAsmTable(w io.Writer, activeCols []int, rows [][]cgra.CycleAsm) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write(allHeaders(activeCols)); err != nil {
		return err
	}
	for _, cycleRows := range rows {
		var rec []string
		for i := range activeCols {
			asm := cycleRows[i]
			rec = append(rec, asm.LCU, asm.LSU, asm.MXCU)
			rec = append(rec, asm.RC[:]...)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// ReadAsmTable is the inverse of WriteAsmTable: one []cgra.CycleAsm
// (one per active column) per cycle row.
func ReadAsmTable(r io.Reader, activeCols []int) ([][]cgra.CycleAsm, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx := indexHeader(header)

	var out [][]cgra.CycleAsm
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		cycleRows := make([]cgra.CycleAsm, len(activeCols))
		for i, c := range activeCols {
			var asm cgra.CycleAsm
			asm.LCU = field(rec, idx, fmt.Sprintf("LCU%d", c))
			asm.LSU = field(rec, idx, fmt.Sprintf("LSU%d", c))
			asm.MXCU = field(rec, idx, fmt.Sprintf("MXCU%d", c))
			for row := 0; row < cgra.Rows; row++ {
				asm.RC[row] = field(rec, idx, fmt.Sprintf("RC%d_%d", c, row))
			}
			cycleRows[i] = asm
		}
		out = append(out, cycleRows)
	}
	return out, nil
}

func field(rec []string, idx map[string]int, name string) string {
	if i, ok := idx[name]; ok && i < len(rec) {
		return rec[i]
	}
	return ""
}
