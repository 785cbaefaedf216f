package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/rpsim/internal/calendar"
	"github.com/rgehrsitz/rpsim/internal/portfolio"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	amountStyle = cellStyle.Align(lipgloss.Right)
)

// ConsoleFormatter renders styled tables for a terminal
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render("BALANCE SHEET"))
	if r.RunID != "" {
		fmt.Fprintln(&buf, mutedStyle.Render("run "+r.RunID))
	}
	if r.Sheet.Len() == 0 {
		fmt.Fprintln(&buf, "No records")
		return buf.Bytes(), nil
	}

	rows := make([][]string, 0, r.Sheet.Len())
	for i, date := range r.Sheet.Dates {
		row := make([]string, 0, len(r.Sheet.Columns)+1)
		row = append(row, date.Format(calendar.DateFormat))
		for _, v := range r.Sheet.Rows[i] {
			row = append(row, FormatCurrency(v))
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(&buf, newTable(append([]string{"date"}, r.Sheet.Columns...), rows))

	if exposure := r.exposure(); len(exposure) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, titleStyle.Render("EXPOSURE"))
		rows = rows[:0]
		for _, e := range exposure {
			rows = append(rows, []string{e.Symbol, FormatCurrency(e.Value), FormatPercentage(e.Share)})
		}
		fmt.Fprintln(&buf, newTable([]string{"symbol", "value", "share"}, rows))
	}

	if r.LastReturn != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, titleStyle.Render("LAST TAX RETURN"))
		rows = rows[:0]
		for _, line := range returnLines(r.LastReturn) {
			rows = append(rows, []string{line.Label, FormatCurrency(line.Amount)})
		}
		fmt.Fprintln(&buf, newTable([]string{"line", "amount"}, rows))
	}

	if _, last, ok := r.Sheet.Last(); ok {
		fmt.Fprintln(&buf)
		total := last[len(last)-1]
		fmt.Fprintf(&buf, "Final %s: %s\n", portfolio.TotalColumn, FormatCurrency(total))
	}

	return buf.Bytes(), nil
}

func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return amountStyle
			}
		}).
		String()
}
