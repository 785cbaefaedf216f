package portfolio

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Derived column names of a BalanceSheet
const (
	TaxesColumn = "taxes"
	TotalColumn = "total"
)

// BalanceSheet is a date-indexed table with one column per account followed
// by the taxes settled that day and the total of all account balances.
type BalanceSheet struct {
	Columns []string
	Dates   []time.Time
	Rows    [][]decimal.Decimal
}

// GetBalanceSheet tabulates simulation records. It does not modify records
// and returns equal sheets for equal input.
func (p *Portfolio) GetBalanceSheet(records []domain.Record) *BalanceSheet {
	columns := append(p.AccountNames(), TaxesColumn, TotalColumn)
	sheet := &BalanceSheet{
		Columns: columns,
		Dates:   make([]time.Time, 0, len(records)),
		Rows:    make([][]decimal.Decimal, 0, len(records)),
	}
	for _, rec := range records {
		row := make([]decimal.Decimal, 0, len(columns))
		row = append(row, rec.Balances...)
		row = append(row, rec.Taxes, rec.Total())
		sheet.Dates = append(sheet.Dates, rec.Date)
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// Len returns the number of rows
func (b *BalanceSheet) Len() int { return len(b.Rows) }

// Column returns the values of the named column
func (b *BalanceSheet) Column(name string) ([]decimal.Decimal, error) {
	j := slices.Index(b.Columns, name)
	if j < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}
	values := make([]decimal.Decimal, len(b.Rows))
	for i, row := range b.Rows {
		values[i] = row[j]
	}
	return values, nil
}

// Last returns the final row, or false for an empty sheet
func (b *BalanceSheet) Last() (time.Time, []decimal.Decimal, bool) {
	if len(b.Rows) == 0 {
		return time.Time{}, nil, false
	}
	n := len(b.Rows) - 1
	return b.Dates[n], b.Rows[n], true
}

// SampleMethod selects which row represents a period when resampling
type SampleMethod int

const (
	SampleFirst SampleMethod = iota
	SampleLast
)

// ParseSampleMethod maps "first" or "last" to a SampleMethod
func ParseSampleMethod(s string) (SampleMethod, error) {
	switch s {
	case "first":
		return SampleFirst, nil
	case "last":
		return SampleLast, nil
	default:
		return 0, fmt.Errorf("unknown sample method %q, expected first or last", s)
	}
}

// Resample keeps one row per calendar year
func (b *BalanceSheet) Resample(method SampleMethod) *BalanceSheet {
	out := &BalanceSheet{Columns: slices.Clone(b.Columns)}
	for i, date := range b.Dates {
		newYear := len(out.Dates) == 0 || out.Dates[len(out.Dates)-1].Year() != date.Year()
		switch {
		case newYear:
			out.Dates = append(out.Dates, date)
			out.Rows = append(out.Rows, slices.Clone(b.Rows[i]))
		case method == SampleLast:
			out.Dates[len(out.Dates)-1] = date
			out.Rows[len(out.Rows)-1] = slices.Clone(b.Rows[i])
		}
	}
	return out
}

// TabulateComposition spreads the final balance of every account over the
// symbols of its composition. Percentages are of 100.
func (p *Portfolio) TabulateComposition(b *BalanceSheet) map[string]decimal.Decimal {
	exposure := make(map[string]decimal.Decimal)
	_, row, ok := b.Last()
	if !ok {
		return exposure
	}
	hundred := decimal.NewFromInt(100)
	for _, a := range p.accounts {
		j := slices.Index(b.Columns, a.Name())
		if j < 0 {
			continue
		}
		balance := row[j]
		for symbol, pct := range a.Composition() {
			exposure[symbol] = exposure[symbol].Add(balance.Mul(pct).Div(hundred))
		}
	}
	return exposure
}

// SortedSymbols returns the keys of a composition in lexical order
func SortedSymbols(composition map[string]decimal.Decimal) []string {
	return slices.Sorted(maps.Keys(composition))
}
