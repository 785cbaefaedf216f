package tax

import (
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Worksheet holds one year's income totals in the shape of Form 1040
type Worksheet struct {
	Wages                  decimal.Decimal `json:"wages"`
	W2Withholdings         decimal.Decimal `json:"w2Withholdings"`
	Interest               decimal.Decimal `json:"interest"`
	Dividends              decimal.Decimal `json:"dividends"`
	IRADistributions       decimal.Decimal `json:"iraDistributions"`
	Annuities              decimal.Decimal `json:"annuities"`
	SocialSecurityBenefits decimal.Decimal `json:"socialSecurityBenefits"`
	CapitalGains           decimal.Decimal `json:"capitalGains"`
	Deductions             decimal.Decimal `json:"deductions"`
}

// Totals accumulates year-to-date amounts during a simulation
type Totals struct {
	Wages                  decimal.Decimal
	W2Withholdings         decimal.Decimal
	Interest               decimal.Decimal
	Dividends              decimal.Decimal
	IRADistributions       decimal.Decimal
	Annuities              decimal.Decimal
	SocialSecurityBenefits decimal.Decimal
	CapitalGains           decimal.Decimal
}

// AddAssessment folds one account-day into the totals. Wages are the net
// income plus the tax withheld from it. IRA distributions count only when
// ordinary is set, i.e. when they are taxed as ordinary income.
func (t *Totals) AddAssessment(a domain.Assessment, ordinary bool) {
	t.Wages = t.Wages.Add(a.Income).Add(a.W2Withholdings)
	t.W2Withholdings = t.W2Withholdings.Add(a.W2Withholdings)
	t.Interest = t.Interest.Add(a.Interest)
	t.Dividends = t.Dividends.Add(a.Dividends)
	t.Annuities = t.Annuities.Add(a.Annuities)
	t.SocialSecurityBenefits = t.SocialSecurityBenefits.Add(a.SocialSecurityBenefits)
	if ordinary {
		t.IRADistributions = t.IRADistributions.Add(a.IRADistributions)
	}
}

// Worksheet snapshots the totals with the given deduction
func (t Totals) Worksheet(deductions decimal.Decimal) Worksheet {
	return Worksheet{
		Wages:                  t.Wages,
		W2Withholdings:         t.W2Withholdings,
		Interest:               t.Interest,
		Dividends:              t.Dividends,
		IRADistributions:       t.IRADistributions,
		Annuities:              t.Annuities,
		SocialSecurityBenefits: t.SocialSecurityBenefits,
		CapitalGains:           t.CapitalGains,
		Deductions:             deductions,
	}
}

// Return is an itemised federal return. Lines that are not modelled are
// always zero.
type Return struct {
	Wages                         decimal.Decimal `json:"wages"`
	TaxExemptInterest             decimal.Decimal `json:"taxExemptInterest"`
	TaxableInterest               decimal.Decimal `json:"taxableInterest"`
	QualifiedDividends            decimal.Decimal `json:"qualifiedDividends"`
	OrdinaryDividends             decimal.Decimal `json:"ordinaryDividends"`
	TaxableIRADistributions       decimal.Decimal `json:"taxableIraDistributions"`
	Annuities                     decimal.Decimal `json:"annuities"`
	TaxableAnnuities              decimal.Decimal `json:"taxableAnnuities"`
	TaxableSocialSecurityBenefits decimal.Decimal `json:"taxableSocialSecurityBenefits"`
	CapitalGain                   decimal.Decimal `json:"capitalGain"`
	TotalIncome                   decimal.Decimal `json:"totalIncome"`
	OtherIncome                   decimal.Decimal `json:"otherIncome"`
	AdjustedGrossIncome           decimal.Decimal `json:"adjustedGrossIncome"`
	StandardDeduction             decimal.Decimal `json:"standardDeduction"`
	CharitableContributions       decimal.Decimal `json:"charitableContributions"`
	QualifiedBusinessDeduction    decimal.Decimal `json:"qualifiedBusinessDeduction"`
	TotalDeductions               decimal.Decimal `json:"totalDeductions"`
	TaxableIncome                 decimal.Decimal `json:"taxableIncome"`
	IncomeTax                     decimal.Decimal `json:"incomeTax"`
	OtherTaxes                    decimal.Decimal `json:"otherTaxes"`
	TotalTax                      decimal.Decimal `json:"totalTax"`
	W2Withholdings                decimal.Decimal `json:"w2Withholdings"`
	Form1099Withholdings          decimal.Decimal `json:"form1099Withholdings"`
	TotalPayments                 decimal.Decimal `json:"totalPayments"`

	// AmountOwed is negative when a refund is due.
	AmountOwed decimal.Decimal `json:"amountOwed"`
}

// Prepare fills in a Return from a worksheet. Taxable income may be negative;
// the tax on it is zero.
func (c *Calculator) Prepare(w Worksheet) Return {
	r := Return{
		Wages:                         w.Wages,
		TaxableInterest:               w.Interest,
		OrdinaryDividends:             w.Dividends,
		TaxableIRADistributions:       w.IRADistributions,
		Annuities:                     w.Annuities,
		TaxableSocialSecurityBenefits: w.SocialSecurityBenefits,
		CapitalGain:                   w.CapitalGains,
		StandardDeduction:             w.Deductions,
		W2Withholdings:                w.W2Withholdings,
	}
	r.TotalIncome = decimal.Sum(
		r.Wages,
		r.TaxableInterest,
		r.OrdinaryDividends,
		r.TaxableIRADistributions,
		r.TaxableAnnuities,
		r.TaxableSocialSecurityBenefits,
		r.CapitalGain,
	)
	r.AdjustedGrossIncome = r.TotalIncome.Sub(r.OtherIncome)
	r.TotalDeductions = decimal.Sum(r.StandardDeduction, r.CharitableContributions, r.QualifiedBusinessDeduction)
	r.TaxableIncome = r.AdjustedGrossIncome.Sub(r.TotalDeductions)
	r.IncomeTax = c.IncomeTax(r.TaxableIncome)
	r.TotalTax = r.IncomeTax.Add(r.OtherTaxes)
	r.TotalPayments = r.W2Withholdings.Add(r.Form1099Withholdings)
	r.AmountOwed = domain.RoundMoney(r.TotalTax.Sub(r.TotalPayments))
	return r
}

// AmountOwed returns the tax due on the worksheet less withholdings
func (c *Calculator) AmountOwed(w Worksheet) decimal.Decimal {
	return c.Prepare(w).AmountOwed
}
