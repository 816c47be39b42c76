package ioadapter

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/lookbusy1344/vwr2a-cgra/internal/cgra"
)

const headerTmpl = `/* generated bitstream header, do not edit by hand */
#ifndef DSIP_BITSTREAM_H
#define DSIP_BITSTREAM_H

{{range .Arrays}}static const unsigned int {{.Name}}[{{.Count}}] = {
{{.Values}}
};

{{end}}#endif
`

type headerArray struct {
	Name   string
	Count  int
	Values string
}

// WriteHeader emits dsip_kmem_bitstream plus four C bitstream arrays
// per active column c, each named with a _col<c> suffix: one each for
// the LCU/LSU/MXCU IMEMs and one holding every cycle's RC words row by
// row. No array spans several columns and no unsuffixed IMEM array is
// written.
func WriteHeader(w io.Writer, kmemWords []uint32, rows []cgra.Row, activeCols []int) error {
	arrays := []headerArray{
		{Name: "dsip_kmem_bitstream", Count: len(kmemWords), Values: joinHex(kmemWords)},
	}

	for _, c := range activeCols {
		var lcuWords, lsuWords, mxcuWords []uint32
		var rcWords []uint32
		for _, r := range rows {
			lcuWords = append(lcuWords, r.LCU[c].Pack())
			lsuWords = append(lsuWords, r.LSU[c].Pack())
			mxcuWords = append(mxcuWords, r.MXCU[c].Pack())
			for row := 0; row < cgra.Rows; row++ {
				rcWords = append(rcWords, r.RC[c][row].Pack())
			}
		}
		arrays = append(arrays,
			headerArray{Name: fmt.Sprintf("dsip_lcu_imem_bitstream_col%d", c), Count: len(lcuWords), Values: joinHex(lcuWords)},
			headerArray{Name: fmt.Sprintf("dsip_lsu_imem_bitstream_col%d", c), Count: len(lsuWords), Values: joinHex(lsuWords)},
			headerArray{Name: fmt.Sprintf("dsip_mxcu_imem_bitstream_col%d", c), Count: len(mxcuWords), Values: joinHex(mxcuWords)},
			headerArray{Name: fmt.Sprintf("dsip_rcs_imem_bitstream_col%d", c), Count: len(rcWords), Values: joinHex(rcWords)},
		)
	}

	tmpl := template.Must(template.New("header").Parse(headerTmpl))
	return tmpl.Execute(w, struct{ Arrays []headerArray }{arrays})
}

func joinHex(words []uint32) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = hexOf(w)
	}
	return "  " + strings.Join(parts, ", ")
}
