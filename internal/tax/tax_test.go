package tax

import (
	"testing"

	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestIncomeTax2023Single(t *testing.T) {
	calc := NewCalculator2023()

	tests := []struct {
		name    string
		taxable string
		want    string
	}{
		{"zero", "0", "0"},
		{"negative", "-5000", "0"},
		{"first bracket", "10000", "1000"},
		{"first edge", "10275", "1027.5"},
		{"second bracket", "20000", "2194.5"},
		{"second edge", "41775", "4807.5"},
		{"third edge", "89075", "15213.5"},
		{"fourth edge", "170050", "34647.5"},
		{"fifth edge", "215950", "49335.5"},
		{"sixth edge", "539900", "162718"},
		{"top bracket", "600000", "184955"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.IncomeTax(d(tt.taxable))
			assert.True(t, got.Equal(d(tt.want)), "IncomeTax(%s) = %s, want %s", tt.taxable, got, tt.want)
		})
	}
}

func TestBracketEdgeEqualsBaseTax(t *testing.T) {
	calc := NewCalculator2023()
	for i, b := range calc.Brackets[:len(calc.Brackets)-1] {
		assert.True(t, calc.IncomeTax(b.Limit).Equal(calc.BaseTax(i+1)), "edge %s", b.Limit)
	}
}

func TestIncomeTaxMonotonic(t *testing.T) {
	calc := NewCalculator2023()
	prev := decimal.Zero
	for income := int64(-1000); income <= 700000; income += 137 {
		got := calc.IncomeTax(decimal.NewFromInt(income))
		assert.False(t, got.LessThan(prev), "tax decreased at %d", income)
		prev = got
	}
}

func TestMarginalRate(t *testing.T) {
	calc := NewCalculator2023()
	assert.True(t, calc.MarginalRate(d("0")).Equal(d("0.10")))
	assert.True(t, calc.MarginalRate(d("10275")).Equal(d("0.12")))
	assert.True(t, calc.MarginalRate(d("1000000")).Equal(d("0.37")))
}

func TestNewCalculatorValidation(t *testing.T) {
	_, err := NewCalculator(d("0"), nil)
	assert.Error(t, err)

	_, err = NewCalculator(d("-1"), Brackets2023Single())
	assert.Error(t, err)

	_, err = NewCalculator(d("0"), []TaxBracket{{d("100"), d("0.1")}, {d("50"), d("0.2")}, {d("0"), d("0.3")}})
	assert.Error(t, err, "limits must increase")

	_, err = NewCalculator(d("0"), []TaxBracket{{d("100"), d("1.5")}, {d("0"), d("0.3")}})
	assert.Error(t, err, "rates above 100%")

	flat, err := NewCalculator(d("0"), []TaxBracket{{d("0"), d("0.2")}})
	require.NoError(t, err)
	assert.True(t, flat.IncomeTax(d("1000")).Equal(d("200")))
}

func TestPrepareReturn(t *testing.T) {
	calc := NewCalculator2023()
	w := Worksheet{
		Wages:                  d("60000"),
		W2Withholdings:         d("5000"),
		Interest:               d("100"),
		Dividends:              d("400"),
		IRADistributions:       d("1000"),
		Annuities:              d("700"),
		SocialSecurityBenefits: d("0"),
		CapitalGains:           d("1050"),
		Deductions:             StandardDeduction2023,
	}

	r := calc.Prepare(w)
	assert.True(t, r.TotalIncome.Equal(d("62550")), "annuities are not taxable: %s", r.TotalIncome)
	assert.True(t, r.TaxableIncome.Equal(d("50000")))
	// 4807.5 + 0.22 * (50000 - 41775)
	assert.True(t, r.IncomeTax.Equal(d("6617")))
	assert.True(t, r.AmountOwed.Equal(d("1617")))
	assert.True(t, r.QualifiedDividends.IsZero())
	assert.True(t, r.TaxableAnnuities.IsZero())
	assert.True(t, calc.AmountOwed(w).Equal(r.AmountOwed))
}

func TestPrepareReturnRefund(t *testing.T) {
	calc := NewCalculator2023()
	r := calc.Prepare(Worksheet{Wages: d("10000"), W2Withholdings: d("800"), Deductions: StandardDeduction2023})

	assert.True(t, r.TaxableIncome.IsNegative())
	assert.True(t, r.IncomeTax.IsZero())
	assert.True(t, r.AmountOwed.Equal(d("-800")), "over-withholding is refunded")
}

func TestTotalsAddAssessment(t *testing.T) {
	var totals Totals
	totals.AddAssessment(domain.Assessment{
		Income:           d("3000"),
		W2Withholdings:   d("500"),
		Interest:         d("3"),
		Dividends:        d("40"),
		IRADistributions: d("100"),
	}, true)
	totals.AddAssessment(domain.Assessment{IRADistributions: d("900")}, false)

	w := totals.Worksheet(d("12550"))
	assert.True(t, w.Wages.Equal(d("3500")), "wages include withholdings")
	assert.True(t, w.W2Withholdings.Equal(d("500")))
	assert.True(t, w.Interest.Equal(d("3")))
	assert.True(t, w.Dividends.Equal(d("40")))
	assert.True(t, w.IRADistributions.Equal(d("100")), "tax-free distributions are excluded")
	assert.True(t, w.Deductions.Equal(d("12550")))
}
