package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rgehrsitz/rpsim/internal/calendar"
)

// MarkdownFormatter renders the report as GitHub-flavoured markdown tables
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "# Balance Sheet")
	fmt.Fprintln(&buf)
	if r.RunID != "" {
		fmt.Fprintf(&buf, "Run `%s`, primary account **%s**.\n\n", r.RunID, r.Primary)
	}

	header := append([]string{"Date"}, r.Sheet.Columns...)
	rows := make([][]string, 0, r.Sheet.Len())
	for i, date := range r.Sheet.Dates {
		row := []string{date.Format(calendar.DateFormat)}
		for _, v := range r.Sheet.Rows[i] {
			row = append(row, FormatCurrency(v))
		}
		rows = append(rows, row)
	}
	writeMarkdownTable(&buf, header, rows)

	if exposure := r.exposure(); len(exposure) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "## Exposure")
		fmt.Fprintln(&buf)
		rows = rows[:0]
		for _, e := range exposure {
			rows = append(rows, []string{e.Symbol, FormatCurrency(e.Value), FormatPercentage(e.Share)})
		}
		writeMarkdownTable(&buf, []string{"Symbol", "Value", "Share"}, rows)
	}

	if r.LastReturn != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "## Last Tax Return")
		fmt.Fprintln(&buf)
		rows = rows[:0]
		for _, line := range returnLines(r.LastReturn) {
			rows = append(rows, []string{line.Label, FormatCurrency(line.Amount)})
		}
		writeMarkdownTable(&buf, []string{"Line", "Amount"}, rows)
	}

	return buf.Bytes(), nil
}

func writeMarkdownTable(buf *bytes.Buffer, header []string, rows [][]string) {
	fmt.Fprintf(buf, "| %s |\n", strings.Join(header, " | "))
	align := make([]string, len(header))
	align[0] = "---"
	for i := 1; i < len(align); i++ {
		align[i] = "---:"
	}
	fmt.Fprintf(buf, "| %s |\n", strings.Join(align, " | "))
	for _, row := range rows {
		fmt.Fprintf(buf, "| %s |\n", strings.Join(row, " | "))
	}
}

// RenderMarkdown renders markdown for a terminal. Style is a glamour standard
// style name such as "dark", "light" or "notty"; "auto" detects the terminal.
func RenderMarkdown(md []byte, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return renderer.Render(string(md))
}
