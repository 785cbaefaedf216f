package revenue

import (
	"time"

	"github.com/rgehrsitz/rpsim/internal/calendar"
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/shopspring/decimal"
)

// RMDStartAge is the age at which required minimum distributions begin.
const RMDStartAge = 72

// rmdDivisors is the uniform lifetime distribution period, indexed by
// age - RMDStartAge. Ages past the end of the table use the last divisor.
var rmdDivisors = []float64{
	27.4, 26.5, 25.6, 24.7, 23.8, 22.9, 22.0, 21.2, 20.3, 19.5,
	18.7, 17.9, 17.1, 16.3, 15.5, 14.8, 14.1, 13.4, 12.7, 12.0,
	11.4, 10.8, 10.2, 9.6, 9.1, 8.6, 8.1, 7.6, 7.1, 6.7,
	6.3, 5.9, 5.5, 5.2, 4.9, 4.5, 4.2, 3.9, 3.7, 3.4,
	3.1, 2.9, 2.6, 2.4, 2.1, 1.9, 1.9, 1.9, 1.9, 1.9,
}

// RMDDivisor returns the distribution period for age. Ages below the start age
// have no divisor.
func RMDDivisor(age int) (decimal.Decimal, bool) {
	if age < RMDStartAge {
		return decimal.Zero, false
	}
	i := age - RMDStartAge
	if i >= len(rmdDivisors) {
		i = len(rmdDivisors) - 1
	}
	return decimal.NewFromFloat(rmdDivisors[i]), true
}

// RequiredMinimumDistribution withdraws the annual minimum from a
// tax-deferred account, split evenly across the firing days of a year. The
// assessed amount is positive; the account applies it as a debit.
type RequiredMinimumDistribution struct {
	Birthday    time.Time
	period      calendar.Predicate
	occurrences int
}

// NewRequiredMinimumDistribution creates an RMD for an owner born on birthday.
func NewRequiredMinimumDistribution(birthday time.Time, period calendar.Predicate) RequiredMinimumDistribution {
	return RequiredMinimumDistribution{
		Birthday:    calendar.Truncate(birthday),
		period:      period,
		occurrences: calendar.AnnualOccurrences(period),
	}
}

// StartDate is the first date on which distributions may fire.
func (r RequiredMinimumDistribution) StartDate() time.Time {
	return calendar.AddYears(r.Birthday, RMDStartAge)
}

func (r RequiredMinimumDistribution) AssessBalance(date time.Time, balance decimal.Decimal) decimal.Decimal {
	if r.occurrences == 0 || date.Before(r.StartDate()) || !r.period.Fires(date) {
		return decimal.Zero
	}
	if !balance.IsPositive() {
		return decimal.Zero
	}
	divisor, ok := RMDDivisor(calendar.Age(r.Birthday, date))
	if !ok {
		return decimal.Zero
	}
	return domain.RoundMoney(balance.Div(divisor).Div(decimal.NewFromInt(int64(r.occurrences))))
}
