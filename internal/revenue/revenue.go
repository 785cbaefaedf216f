package revenue

import (
	"time"

	"github.com/rgehrsitz/rpsim/internal/calendar"
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Payment produces a signed cash amount for a date.
type Payment interface {
	AssessRevenue(date time.Time) decimal.Decimal
	// Starting omits assessments on or before start.
	Starting(start time.Time) Payment
	// Until omits assessments on or after end.
	Until(end time.Time) Payment
}

// BalancePayment produces an amount that may depend on the balance of the
// account it draws from.
type BalancePayment interface {
	AssessBalance(date time.Time, balance decimal.Decimal) decimal.Decimal
}

// CapitalGainsModel produces returns on a balance.
type CapitalGainsModel interface {
	AssessRevenue(balance decimal.Decimal, date time.Time) decimal.Decimal
}

// FixedIncome credits a fixed amount on every firing day. The zero value never
// pays.
type FixedIncome struct {
	Payment decimal.Decimal
	period  calendar.Predicate
}

// NewFixedIncome creates a FixedIncome paying amount whenever period fires.
func NewFixedIncome(amount decimal.Decimal, period calendar.Predicate) FixedIncome {
	return FixedIncome{Payment: amount, period: period}
}

func (f FixedIncome) AssessRevenue(date time.Time) decimal.Decimal {
	if f.period.Fires(date) {
		return f.Payment
	}
	return decimal.Zero
}

func (f FixedIncome) Starting(start time.Time) Payment {
	f.period = f.period.Starting(start)
	return f
}

func (f FixedIncome) Until(end time.Time) Payment {
	f.period = f.period.Until(end)
	return f
}

// FixedExpense debits a fixed amount on every firing day. The assessed amount
// is never positive, whatever the sign of the configured payment.
type FixedExpense struct {
	Payment decimal.Decimal
	period  calendar.Predicate
}

// NewFixedExpense creates a FixedExpense charging amount whenever period fires.
func NewFixedExpense(amount decimal.Decimal, period calendar.Predicate) FixedExpense {
	return FixedExpense{Payment: amount, period: period}
}

func (f FixedExpense) AssessRevenue(date time.Time) decimal.Decimal {
	if f.period.Fires(date) {
		return f.Payment.Abs().Neg()
	}
	return decimal.Zero
}

func (f FixedExpense) Starting(start time.Time) Payment {
	f.period = f.period.Starting(start)
	return f
}

func (f FixedExpense) Until(end time.Time) Payment {
	f.period = f.period.Until(end)
	return f
}

// Salary is a net paycheck paid on a schedule. Annual federal withholdings are
// prorated across the number of paydays in a reference year.
//
// The payday count is taken once, at construction. Narrowing the schedule
// with Starting or Until keeps the original count, so a partial year still
// withholds the per-paycheck amount of a full year.
type Salary struct {
	// Payment is the net deposit per paycheck, after withholdings.
	Payment decimal.Decimal
	// AnnualGross is informational; the simulation credits Payment.
	AnnualGross decimal.Decimal
	// W2Withholdings is the expected annual federal income tax withheld.
	W2Withholdings decimal.Decimal

	period               calendar.Predicate
	annualPaymentPeriods int
}

// NewSalary creates a Salary and counts its annual paydays.
func NewSalary(payment decimal.Decimal, period calendar.Predicate, annualGross, w2Withholdings decimal.Decimal) Salary {
	return Salary{
		Payment:              payment,
		AnnualGross:          annualGross,
		W2Withholdings:       w2Withholdings,
		period:               period,
		annualPaymentPeriods: calendar.AnnualOccurrences(period),
	}
}

// AnnualPaymentPeriods returns the payday count cached at construction.
func (s Salary) AnnualPaymentPeriods() int { return s.annualPaymentPeriods }

func (s Salary) AssessRevenue(date time.Time) decimal.Decimal {
	if s.period.Fires(date) {
		return s.Payment
	}
	return decimal.Zero
}

// AssessWithholdings returns the federal tax withheld from the paycheck on
// date, or zero when no paycheck is issued.
func (s Salary) AssessWithholdings(date time.Time) decimal.Decimal {
	if s.annualPaymentPeriods == 0 || !s.period.Fires(date) {
		return decimal.Zero
	}
	return domain.RoundMoney(s.W2Withholdings.Div(decimal.NewFromInt(int64(s.annualPaymentPeriods))))
}

func (s Salary) Starting(start time.Time) Payment {
	s.period = s.period.Starting(start)
	return s
}

func (s Salary) Until(end time.Time) Payment {
	s.period = s.period.Until(end)
	return s
}

// balanceAware adapts a Payment to BalancePayment by ignoring the balance.
type balanceAware struct {
	Payment
}

func (b balanceAware) AssessBalance(date time.Time, _ decimal.Decimal) decimal.Decimal {
	return b.AssessRevenue(date)
}

// BalanceAware wraps p so it can be used wherever a BalancePayment is needed.
func BalanceAware(p Payment) BalancePayment {
	if bp, ok := p.(BalancePayment); ok {
		return bp
	}
	return balanceAware{Payment: p}
}
