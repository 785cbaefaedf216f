package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/rgehrsitz/rpsim/internal/portfolio"
	"github.com/rgehrsitz/rpsim/internal/tax"
	"github.com/shopspring/decimal"
)

// Report is everything a formatter renders for one simulation run
type Report struct {
	RunID       string
	Primary     string
	Sheet       *portfolio.BalanceSheet
	Composition map[string]decimal.Decimal
	LastReturn  *tax.Return
}

// NewReport tabulates records of a run of p. Composition is taken from the
// final row of the full sheet.
func NewReport(p *portfolio.Portfolio, runID string, records []domain.Record) *Report {
	sheet := p.GetBalanceSheet(records)
	return &Report{
		RunID:       runID,
		Primary:     p.PrimaryAccount(),
		Sheet:       sheet,
		Composition: p.TabulateComposition(sheet),
	}
}

// Resampled returns a copy of r whose sheet keeps one row per year
func (r *Report) Resampled(method portfolio.SampleMethod) *Report {
	c := *r
	c.Sheet = r.Sheet.Resample(method)
	return &c
}

// exposureRow is one symbol of the composition with its share of the total
type exposureRow struct {
	Symbol string
	Value  decimal.Decimal
	Share  decimal.Decimal
}

func (r *Report) exposure() []exposureRow {
	total := decimal.Zero
	for _, v := range r.Composition {
		total = total.Add(v)
	}
	rows := make([]exposureRow, 0, len(r.Composition))
	for _, symbol := range portfolio.SortedSymbols(r.Composition) {
		row := exposureRow{Symbol: symbol, Value: r.Composition[symbol]}
		if !total.IsZero() {
			row.Share = row.Value.Div(total).Mul(decimal.NewFromInt(100))
		}
		rows = append(rows, row)
	}
	return rows
}

// returnLine is one labelled line of a tax return summary
type returnLine struct {
	Label  string
	Amount decimal.Decimal
}

func returnLines(r *tax.Return) []returnLine {
	return []returnLine{
		{"Wages", r.Wages},
		{"Taxable interest", r.TaxableInterest},
		{"Ordinary dividends", r.OrdinaryDividends},
		{"Taxable IRA distributions", r.TaxableIRADistributions},
		{"Taxable social security", r.TaxableSocialSecurityBenefits},
		{"Capital gain", r.CapitalGain},
		{"Total income", r.TotalIncome},
		{"Total deductions", r.TotalDeductions},
		{"Taxable income", r.TaxableIncome},
		{"Total tax", r.TotalTax},
		{"Total payments", r.TotalPayments},
		{"Amount owed", r.AmountOwed},
	}
}

// Formatter renders a report in one output format
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(r *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(r *Report) ([]byte, error) { return f.F(r) }

var formatters = map[string]Formatter{
	"console":  ConsoleFormatter{},
	"csv":      CSVFormatter{},
	"json":     JSONFormatter{},
	"markdown": MarkdownFormatter{},
	"md":       MarkdownFormatter{},
	"html":     HTMLFormatter{},
}

// GetFormatterByName returns the formatter registered under name, or nil
func GetFormatterByName(name string) Formatter {
	return formatters[name]
}

// FormatterNames lists the registered formatter names in sorted order
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders r with f and writes the result to w
func WriteFormatted(w io.Writer, f Formatter, r *Report) error {
	data, err := f.Format(r)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// FormatCurrency formats a decimal as US dollars with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	cur := money.New(0, money.USD).Currency()
	cents := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
