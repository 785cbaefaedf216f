package output

import (
	"encoding/json"

	"github.com/rgehrsitz/rpsim/internal/calendar"
	"github.com/rgehrsitz/rpsim/internal/tax"
	"github.com/shopspring/decimal"
)

// JSONFormatter renders the report as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonRow struct {
	Date   string                     `json:"date"`
	Values map[string]decimal.Decimal `json:"values"`
}

type jsonReport struct {
	RunID       string                     `json:"runId,omitempty"`
	Primary     string                     `json:"primaryAccount,omitempty"`
	Columns     []string                   `json:"columns"`
	Rows        []jsonRow                  `json:"rows"`
	Composition map[string]decimal.Decimal `json:"composition"`
	LastReturn  *tax.Return                `json:"lastReturn,omitempty"`
}

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	out := jsonReport{
		RunID:       r.RunID,
		Primary:     r.Primary,
		Columns:     r.Sheet.Columns,
		Rows:        make([]jsonRow, 0, r.Sheet.Len()),
		Composition: r.Composition,
		LastReturn:  r.LastReturn,
	}
	for i, date := range r.Sheet.Dates {
		values := make(map[string]decimal.Decimal, len(r.Sheet.Columns))
		for c, name := range r.Sheet.Columns {
			values[name] = r.Sheet.Rows[i][c]
		}
		out.Rows = append(out.Rows, jsonRow{Date: date.Format(calendar.DateFormat), Values: values})
	}
	return json.MarshalIndent(out, "", "  ")
}
