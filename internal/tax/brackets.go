package tax

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBracket is the rate applied to taxable income up to Limit. The Limit of
// the last bracket in a table is ignored; that bracket is open-ended.
type TaxBracket struct {
	Limit decimal.Decimal
	Rate  decimal.Decimal
}

// StandardDeduction2023 is the 2023 single-filer standard deduction
var StandardDeduction2023 = decimal.NewFromInt(12550)

// Brackets2023Single returns the 2023 federal brackets for single filers
func Brackets2023Single() []TaxBracket {
	return []TaxBracket{
		{decimal.NewFromInt(10275), decimal.NewFromFloat(0.10)},
		{decimal.NewFromInt(41775), decimal.NewFromFloat(0.12)},
		{decimal.NewFromInt(89075), decimal.NewFromFloat(0.22)},
		{decimal.NewFromInt(170050), decimal.NewFromFloat(0.24)},
		{decimal.NewFromInt(215950), decimal.NewFromFloat(0.32)},
		{decimal.NewFromInt(539900), decimal.NewFromFloat(0.35)},
		{decimal.Zero, decimal.NewFromFloat(0.37)},
	}
}

// Calculator computes federal income tax from a bracket table
type Calculator struct {
	StandardDeduction decimal.Decimal
	Brackets          []TaxBracket
	baseTaxes         []decimal.Decimal
}

// NewCalculator2023 creates a calculator for 2023 single filers
func NewCalculator2023() *Calculator {
	c, err := NewCalculator(StandardDeduction2023, Brackets2023Single())
	if err != nil {
		panic(err)
	}
	return c
}

// NewCalculator creates a calculator with a custom table. Limits must be
// strictly increasing and rates must lie in [0, 1].
func NewCalculator(standardDeduction decimal.Decimal, brackets []TaxBracket) (*Calculator, error) {
	if len(brackets) == 0 {
		return nil, errors.New("tax table has no brackets")
	}
	if standardDeduction.IsNegative() {
		return nil, fmt.Errorf("standard deduction must not be negative, got %s", standardDeduction)
	}
	one := decimal.NewFromInt(1)
	prev := decimal.Zero
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return nil, fmt.Errorf("bracket %d: rate must be between 0 and 1, got %s", i, b.Rate)
		}
		if i == len(brackets)-1 {
			break
		}
		if !b.Limit.GreaterThan(prev) {
			return nil, fmt.Errorf("bracket %d: limit %s must exceed %s", i, b.Limit, prev)
		}
		prev = b.Limit
	}

	c := &Calculator{
		StandardDeduction: standardDeduction,
		Brackets:          append([]TaxBracket(nil), brackets...),
	}
	c.baseTaxes = baseTaxes(c.Brackets)
	return c, nil
}

// baseTaxes returns, for each bracket, the tax owed on all income below it.
func baseTaxes(brackets []TaxBracket) []decimal.Decimal {
	bases := make([]decimal.Decimal, len(brackets))
	total := decimal.Zero
	lower := decimal.Zero
	for i, b := range brackets {
		bases[i] = total
		if i < len(brackets)-1 {
			total = total.Add(b.Limit.Sub(lower).Mul(b.Rate))
			lower = b.Limit
		}
	}
	return bases
}

// BaseTax returns the tax owed on income up to the lower edge of bracket i
func (c *Calculator) BaseTax(i int) decimal.Decimal {
	return c.baseTaxes[i]
}

// IncomeTax applies the bracket table to taxable income: the cumulative tax of
// all lower brackets plus the marginal rate on the remainder.
func (c *Calculator) IncomeTax(taxable decimal.Decimal) decimal.Decimal {
	if !taxable.IsPositive() {
		return decimal.Zero
	}
	lower := decimal.Zero
	for i, b := range c.Brackets {
		last := i == len(c.Brackets)-1
		if last || taxable.LessThanOrEqual(b.Limit) {
			return c.baseTaxes[i].Add(taxable.Sub(lower).Mul(b.Rate))
		}
		lower = b.Limit
	}
	return decimal.Zero
}

// MarginalRate returns the rate applied to the next dollar of taxable income
func (c *Calculator) MarginalRate(taxable decimal.Decimal) decimal.Decimal {
	for i, b := range c.Brackets {
		if i == len(c.Brackets)-1 || taxable.LessThan(b.Limit) {
			return b.Rate
		}
	}
	return decimal.Zero
}
