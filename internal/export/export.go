// Package export renders the task table as JSON, CSV or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"

	"todo/internal/service"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Supported reports whether format can be written.
func Supported(format string) bool {
	switch strings.ToLower(format) {
	case FormatJSON, FormatCSV, FormatPDF:
		return true
	}
	return false
}

// Write renders tasks to w in the given format.
//
// PDF output uses the core Arial font, which covers cp1252 only. Characters
// outside it (CJK, emoji) are written as '?'.
func Write(w io.Writer, format string, tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatPDF:
		return writePDF(w, tasks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeCSV(w io.Writer, tasks []service.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "description", "status"}); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write([]string{strconv.FormatInt(t.ID, 10), t.Description, t.Status}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, tasks []service.Task) error {
	p := gofpdf.New("P", "mm", "A4", "")
	tr := p.UnicodeTranslatorFromDescriptor("")
	p.AddPage()

	p.SetFont("Arial", "B", 14)
	p.Cell(40, 10, "Todo list")
	p.Ln(12)

	p.SetFont("Arial", "B", 10)
	p.CellFormat(15, 7, "ID", "1", 0, "C", false, 0, "")
	p.CellFormat(125, 7, "Description", "1", 0, "L", false, 0, "")
	p.CellFormat(40, 7, "Status", "1", 1, "L", false, 0, "")

	p.SetFont("Arial", "", 10)
	for _, t := range tasks {
		p.CellFormat(15, 7, strconv.FormatInt(t.ID, 10), "1", 0, "C", false, 0, "")
		p.CellFormat(125, 7, pdfText(tr, t.Description), "1", 0, "L", false, 0, "")
		p.CellFormat(40, 7, pdfText(tr, t.Status), "1", 1, "L", false, 0, "")
	}
	if len(tasks) == 0 {
		p.Ln(4)
		p.Cell(40, 8, "No tasks.")
	}

	return p.Output(w)
}

// pdfText flattens s to one line and encodes it for the core fonts.
func pdfText(tr func(string) string, s string) string {
	s = strings.Map(func(r rune) rune {
		if _, ok := charmap.Windows1252.EncodeRune(r); ok {
			return r
		}
		return '?'
	}, oneLine(s))
	return tr(s)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
