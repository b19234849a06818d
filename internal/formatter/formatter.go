// package formatter renders catalog rows as terminal tables or plain text
package formatter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/modelinv/internal/models"
)

const (
	// PlaceholderEmpty fills the single row shown for an empty table.
	PlaceholderEmpty = "empty"
	// PlaceholderNotFound fills the single row shown for a search with no match.
	PlaceholderNotFound = "Not Found"
)

var (
	ModelHeaders  = []string{"ID", "Name", "Artist", "Set", "Source", "Note", "Supports", "Format", "Printed"}
	ArtistHeaders = []string{"ID", "Name", "Website", "Email", "Folder"}
	SourceHeaders = []string{"ID", "Name", "Website"}
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// PlaceholderLabel returns the label for an empty result.
func PlaceholderLabel(searching bool) string {
	if searching {
		return PlaceholderNotFound
	}
	return PlaceholderEmpty
}

// ModelRows converts models into table cells in [ModelHeaders] order.
func ModelRows(rows []models.Model) [][]string {
	out := make([][]string, 0, len(rows))
	for _, m := range rows {
		out = append(out, []string{
			strconv.FormatInt(m.ID, 10), m.Name, m.ArtistName, m.SetName, m.SourceName,
			m.SourceNote, yesNo(m.Supports), m.Format, yesNo(m.Printed),
		})
	}
	return out
}

// ArtistRows converts artists into table cells in [ArtistHeaders] order.
func ArtistRows(rows []models.Artist) [][]string {
	out := make([][]string, 0, len(rows))
	for _, a := range rows {
		out = append(out, []string{strconv.FormatInt(a.ID, 10), a.Name, a.Website, a.Email, a.Folder})
	}
	return out
}

// SourceRows converts sources into table cells in [SourceHeaders] order.
func SourceRows(rows []models.Source) [][]string {
	out := make([][]string, 0, len(rows))
	for _, s := range rows {
		out = append(out, []string{strconv.FormatInt(s.ID, 10), s.Name, s.Website})
	}
	return out
}

// withPlaceholder returns rows, or a single row filled with the placeholder label when rows is empty.
func withPlaceholder(headers []string, rows [][]string, searching bool) [][]string {
	if len(rows) > 0 {
		return rows
	}
	label := PlaceholderLabel(searching)
	row := make([]string, len(headers))
	for i := range row {
		row[i] = label
	}
	return [][]string{row}
}

// Table renders rows under headers with a rounded border.
func Table(headers []string, rows [][]string, searching bool) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(withPlaceholder(headers, rows, searching)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// Text renders rows as tab separated lines, headers first.
func Text(headers []string, rows [][]string, searching bool) []byte {
	var buf bytes.Buffer
	writeLine(&buf, headers)
	for _, row := range withPlaceholder(headers, rows, searching) {
		writeLine(&buf, row)
	}
	return buf.Bytes()
}

func writeLine(buf *bytes.Buffer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			buf.WriteByte('\t')
		}
		buf.WriteString(c)
	}
	buf.WriteByte('\n')
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Summary returns a one-line count, e.g. "3 models".
func Summary(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
