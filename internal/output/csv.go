package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/rpsim/internal/calendar"
)

// CSVFormatter writes the balance sheet with one row per date
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := append([]string{"date"}, r.Sheet.Columns...)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, date := range r.Sheet.Dates {
		row := make([]string, 0, len(header))
		row = append(row, date.Format(calendar.DateFormat))
		for _, v := range r.Sheet.Rows[i] {
			row = append(row, v.StringFixed(2))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
