// Package export renders reports as CSV and PDF files.
package export

import (
	"bytes"
	"regexp"
	"strings"
)

// Table is a header row and data rows.
type Table struct {
	Headers []string
	Rows    [][]string
	Widths  []float64 // relative column widths, PDF only
}

const bom = "\uFEFF"

// CSV renders t with a UTF-8 BOM, every field double quoted and rows
// separated by "\n".
func CSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(bom)
	writeRow(&buf, t.Headers)
	for _, row := range t.Rows {
		buf.WriteByte('\n')
		writeRow(&buf, row)
	}
	return buf.Bytes(), nil
}

func writeRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9.\-]+`)

// FileName builds a download name from base and ext.
func FileName(base, ext string) string {
	name := strings.Trim(unsafeName.ReplaceAllString(base, "_"), "_")
	if name == "" {
		name = "rapor"
	}
	return name + "." + ext
}
