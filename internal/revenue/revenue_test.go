package revenue

import (
	"testing"
	"time"

	"github.com/rgehrsitz/rpsim/internal/calendar"
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFixedIncomeAndExpense(t *testing.T) {
	income := NewFixedIncome(d("100"), calendar.FirstOfMonth)
	expense := NewFixedExpense(d("40"), calendar.FirstOfMonth)
	negative := NewFixedExpense(d("-40"), calendar.FirstOfMonth)

	first := calendar.Date(2023, time.March, 1)
	second := calendar.Date(2023, time.March, 2)

	assert.True(t, income.AssessRevenue(first).Equal(d("100")))
	assert.True(t, income.AssessRevenue(second).IsZero())
	assert.True(t, expense.AssessRevenue(first).Equal(d("-40")))
	assert.True(t, negative.AssessRevenue(first).Equal(d("-40")), "expense is never positive")
	assert.True(t, expense.AssessRevenue(second).IsZero())
}

func TestPaymentNarrowingReturnsNewValue(t *testing.T) {
	income := NewFixedIncome(d("100"), calendar.FirstOfMonth)
	narrowed := income.Starting(calendar.Date(2023, time.June, 1)).Until(calendar.Date(2023, time.September, 1))

	assert.True(t, income.AssessRevenue(calendar.Date(2023, time.February, 1)).Equal(d("100")))
	assert.True(t, narrowed.AssessRevenue(calendar.Date(2023, time.February, 1)).IsZero())
	assert.True(t, narrowed.AssessRevenue(calendar.Date(2023, time.June, 1)).IsZero(), "start is exclusive")
	assert.True(t, narrowed.AssessRevenue(calendar.Date(2023, time.July, 1)).Equal(d("100")))
	assert.True(t, narrowed.AssessRevenue(calendar.Date(2023, time.September, 1)).IsZero(), "end is exclusive")
}

func TestSalaryWithholdings(t *testing.T) {
	salary := NewSalary(d("3777.33"), calendar.FridayBiweekly, d("130000"), d("26000"))
	assert.Equal(t, 26, salary.AnnualPaymentPeriods())

	payday := calendar.Date(2023, time.January, 13)
	assert.True(t, salary.AssessRevenue(payday).Equal(d("3777.33")))
	assert.True(t, salary.AssessWithholdings(payday).Equal(d("1000")))
	assert.True(t, salary.AssessWithholdings(payday.AddDate(0, 0, 1)).IsZero())
}

func TestSalaryKeepsPaydayCountAfterNarrowing(t *testing.T) {
	salary := NewSalary(d("1000"), calendar.FridayBiweekly, d("0"), d("2600"))
	narrowed := salary.Until(calendar.Date(2023, time.March, 1)).(Salary)

	assert.Equal(t, 26, narrowed.AnnualPaymentPeriods())
	assert.True(t, narrowed.AssessWithholdings(calendar.Date(2023, time.January, 13)).Equal(d("100")))
}

func TestSalaryWithNeverScheduleWithholdsNothing(t *testing.T) {
	salary := NewSalary(d("1000"), calendar.Never, d("0"), d("2600"))
	assert.Equal(t, 0, salary.AnnualPaymentPeriods())
	assert.True(t, salary.AssessWithholdings(calendar.Date(2023, time.January, 13)).IsZero())
}

func TestCompoundInterest(t *testing.T) {
	interest := NewCompoundInterest(d("0.0001"), calendar.FirstOfMonth)
	first := calendar.Date(2023, time.February, 1)

	assert.True(t, interest.AssessRevenue(d("33777.33"), first).Equal(d("3.377733")))
	assert.True(t, interest.AssessRevenue(d("33777.33"), first.AddDate(0, 0, 1)).IsZero())
	assert.True(t, interest.AssessRevenue(d("-500"), first).IsZero(), "negative balances earn nothing")
}

func TestSimpleReturnsCompoundsToAnnualRate(t *testing.T) {
	returns := NewSimpleReturns(d("0.10"), calendar.FirstOfMonth)

	balance := d("1000")
	day := calendar.Date(2023, time.January, 1)
	for i := 0; i < 365; i++ {
		balance = balance.Add(returns.AssessRevenue(balance, day))
		day = calendar.NextDay(day)
	}
	assert.InDelta(t, 1100.0, balance.InexactFloat64(), 0.01)
}

func TestSimpleReturnsNonNegative(t *testing.T) {
	returns := NewSimpleReturns(d("-0.20"), calendar.EveryDay)
	assert.True(t, returns.PerPeriodReturn().IsNegative())
	assert.True(t, returns.AssessRevenue(d("1000"), calendar.Date(2023, time.May, 2)).IsZero())

	growth := NewSimpleReturns(d("0.10"), calendar.EveryDay)
	assert.True(t, growth.AssessRevenue(d("-1000"), calendar.Date(2023, time.May, 2)).IsZero(), "negative balances earn nothing")
}

func TestModelOutputsKeepMoneyScale(t *testing.T) {
	day := calendar.Date(2023, time.May, 2)
	returns := NewSimpleReturns(d("0.10"), calendar.EveryDay)
	interest := NewCompoundInterest(d("0.0000333"), calendar.EveryDay)
	dividends := NewSimpleDividends(d("0.0000123"), calendar.EveryDay)

	balance := d("1000")
	for range 3 * 365 {
		balance = balance.Add(returns.AssessRevenue(balance, day))
		balance = balance.Add(interest.AssessRevenue(balance, day))
		balance = balance.Add(dividends.AssessRevenue(balance, day))
		day = calendar.NextDay(day)
	}
	assert.LessOrEqual(t, -balance.Exponent(), domain.MoneyScale, "balance %s", balance)

	assert.LessOrEqual(t, -returns.AssessRevenue(balance, day).Exponent(), domain.MoneyScale)
	assert.LessOrEqual(t, -interest.AssessRevenue(balance, day).Exponent(), domain.MoneyScale)

	salary := NewSalary(d("2500"), calendar.FridayBiweekly, d("85000"), d("9000"))
	assert.True(t, salary.AssessWithholdings(calendar.Date(2023, time.January, 13)).Equal(d("346.15384615")))
}

func TestZeroValueModelsNeverFire(t *testing.T) {
	day := calendar.Date(2023, time.May, 2)

	var income FixedIncome
	assert.True(t, income.AssessRevenue(day).IsZero())
	assert.True(t, income.Starting(calendar.Date(2023, time.January, 1)).AssessRevenue(day).IsZero())

	var expense FixedExpense
	assert.True(t, expense.AssessRevenue(day).IsZero())

	var salary Salary
	assert.True(t, salary.AssessRevenue(day).IsZero())
	assert.True(t, salary.AssessWithholdings(day).IsZero())

	var interest CompoundInterest
	assert.True(t, interest.AssessRevenue(d("1000"), day).IsZero())

	var returns SimpleReturns
	assert.True(t, returns.AssessRevenue(d("1000"), day).IsZero())
}

func TestPeriodizeAnnualReturn(t *testing.T) {
	assert.True(t, PeriodizeAnnualReturn(d("0.10"), 0).IsZero())
	assert.InDelta(t, 0.1, PeriodizeAnnualReturn(d("0.10"), 1).InexactFloat64(), 1e-12)
	assert.True(t, PeriodizeAnnualReturn(d("-1"), 12).Equal(d("-1")))
}

func TestSimpleDividends(t *testing.T) {
	var zero SimpleDividends
	assert.True(t, zero.AssessRevenue(d("1000"), calendar.Date(2023, time.April, 14)).IsZero())

	dividends := NewSimpleDividends(d("0.01"), calendar.Quarterly)
	// ISO week 16 of 2023 ends on Friday 21 April.
	assert.True(t, dividends.AssessRevenue(d("1000"), calendar.Date(2023, time.April, 21)).Equal(d("10")))
	assert.True(t, dividends.AssessRevenue(d("-1000"), calendar.Date(2023, time.April, 21)).IsZero())
}

func TestRMDDivisor(t *testing.T) {
	_, ok := RMDDivisor(71)
	assert.False(t, ok)

	div, ok := RMDDivisor(72)
	assert.True(t, ok)
	assert.True(t, div.Equal(d("27.4")))

	div, _ = RMDDivisor(150)
	assert.True(t, div.Equal(d("1.9")), "ages past the table use the last divisor")
}

func TestRequiredMinimumDistribution(t *testing.T) {
	birthday := calendar.Date(1951, time.March, 15)
	rmd := NewRequiredMinimumDistribution(birthday, calendar.FirstOfMonth)

	assert.Equal(t, calendar.Date(2023, time.March, 15), rmd.StartDate())
	assert.True(t, rmd.AssessBalance(calendar.Date(2023, time.March, 1), d("27400")).IsZero(), "not yet 72")
	assert.True(t, rmd.AssessBalance(calendar.Date(2023, time.April, 2), d("27400")).IsZero(), "not a firing day")

	got := rmd.AssessBalance(calendar.Date(2023, time.April, 1), d("27400"))
	assert.True(t, got.Equal(d("83.33333333")), "got %s", got)

	assert.True(t, rmd.AssessBalance(calendar.Date(2023, time.April, 1), d("-10")).IsZero())
}

func TestBalanceAware(t *testing.T) {
	income := NewFixedIncome(d("250"), calendar.FirstOfMonth)
	bp := BalanceAware(income)
	assert.True(t, bp.AssessBalance(calendar.Date(2023, time.May, 1), d("-1")).Equal(d("250")))

	passthrough := balancedIncome{income}
	assert.IsType(t, balancedIncome{}, BalanceAware(passthrough), "balance-aware payments are not wrapped again")
}

type balancedIncome struct {
	FixedIncome
}

func (b balancedIncome) AssessBalance(date time.Time, _ decimal.Decimal) decimal.Decimal {
	return b.AssessRevenue(date)
}
