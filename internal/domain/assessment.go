package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept on amounts the models
// produce. Balances stay at this scale however long a run is.
const MoneyScale int32 = 8

// RoundMoney rounds d half away from zero to MoneyScale places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Assessment is one account's accounting for one day. Expenses are negative;
// IRADistributions is reported positive although it lowers the balance.
type Assessment struct {
	Date                   time.Time       `json:"date"`
	Balance                decimal.Decimal `json:"balance"`
	Income                 decimal.Decimal `json:"income"`
	W2Withholdings         decimal.Decimal `json:"w2Withholdings"`
	Expenses               decimal.Decimal `json:"expenses"`
	Interest               decimal.Decimal `json:"interest"`
	SocialSecurityBenefits decimal.Decimal `json:"socialSecurityBenefits"`
	Dividends              decimal.Decimal `json:"dividends"`
	IRADistributions       decimal.Decimal `json:"iraDistributions"`
	Annuities              decimal.Decimal `json:"annuities"`
	CapitalGains           decimal.Decimal `json:"capitalGains"`

	// Contributions are deposits into a tax-advantaged account. They move the
	// balance but are not income.
	Contributions decimal.Decimal `json:"contributions"`
}

// NetChange is the amount by which the assessment moves the account balance.
// Withholdings are already excluded from Income and do not move it.
func (a Assessment) NetChange() decimal.Decimal {
	return decimal.Sum(
		a.Income,
		a.Expenses,
		a.Interest,
		a.SocialSecurityBenefits,
		a.Dividends,
		a.Annuities,
		a.CapitalGains,
		a.Contributions,
	).Sub(a.IRADistributions)
}

// Record is one row of a portfolio simulation: the closing balance of every
// account, in registration order, and the tax settled that day.
type Record struct {
	Date     time.Time         `json:"date"`
	Balances []decimal.Decimal `json:"balances"`
	Taxes    decimal.Decimal   `json:"taxes"`
}

// Total sums the account balances of the record.
func (r Record) Total() decimal.Decimal {
	total := decimal.Zero
	for _, b := range r.Balances {
		total = total.Add(b)
	}
	return total
}
