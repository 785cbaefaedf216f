package revenue

import (
	"math"
	"time"

	"github.com/rgehrsitz/rpsim/internal/calendar"
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/shopspring/decimal"
)

// CompoundInterest credits rate × balance on every compounding day. The zero
// value never pays.
type CompoundInterest struct {
	Rate   decimal.Decimal
	period calendar.Predicate
}

// NewCompoundInterest creates a CompoundInterest model. Rate is applied as-is
// per compounding period.
func NewCompoundInterest(rate decimal.Decimal, period calendar.Predicate) CompoundInterest {
	return CompoundInterest{Rate: rate, period: period}
}

func (c CompoundInterest) AssessRevenue(balance decimal.Decimal, date time.Time) decimal.Decimal {
	if !c.period.Fires(date) {
		return decimal.Zero
	}
	return floorZero(c.Rate.Mul(balance))
}

// SimpleReturns models market growth. The annual return is converted to the
// geometric per-period rate for the number of firing days in a reference year.
// The zero value never pays.
type SimpleReturns struct {
	AnnualizedReturn decimal.Decimal
	period           calendar.Predicate
	perPeriod        decimal.Decimal
}

// NewSimpleReturns creates a SimpleReturns model.
func NewSimpleReturns(annualizedReturn decimal.Decimal, period calendar.Predicate) SimpleReturns {
	return SimpleReturns{
		AnnualizedReturn: annualizedReturn,
		period:           period,
		perPeriod:        PeriodizeAnnualReturn(annualizedReturn, calendar.AnnualOccurrences(period)),
	}
}

// PerPeriodReturn returns the rate applied on each firing day.
func (s SimpleReturns) PerPeriodReturn() decimal.Decimal { return s.perPeriod }

func (s SimpleReturns) AssessRevenue(balance decimal.Decimal, date time.Time) decimal.Decimal {
	if !s.period.Fires(date) {
		return decimal.Zero
	}
	return floorZero(s.perPeriod.Mul(balance))
}

// PeriodizeAnnualReturn returns (1+annual)^(1/periods) - 1, or zero when
// periods is not positive.
func PeriodizeAnnualReturn(annual decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}
	growth := 1 + annual.InexactFloat64()
	if growth <= 0 {
		// A total loss cannot be spread geometrically.
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromFloat(math.Pow(growth, 1/float64(periods)) - 1)
}

// SimpleDividends is a return on equity paid on a schedule, not a true payout
// ratio. The zero value never pays.
type SimpleDividends struct {
	PayoutRatio decimal.Decimal
	period      calendar.Predicate
}

// NewSimpleDividends creates a SimpleDividends model.
func NewSimpleDividends(payoutRatio decimal.Decimal, period calendar.Predicate) SimpleDividends {
	return SimpleDividends{PayoutRatio: payoutRatio, period: period}
}

func (s SimpleDividends) AssessRevenue(balance decimal.Decimal, date time.Time) decimal.Decimal {
	if !s.period.Fires(date) {
		return decimal.Zero
	}
	return floorZero(s.PayoutRatio.Mul(balance))
}

// floorZero clamps a model output at zero and rounds it to domain.MoneyScale.
func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return domain.RoundMoney(d)
}
