package account

import (
	"maps"
	"time"

	"github.com/rgehrsitz/rpsim/internal/calendar"
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/rgehrsitz/rpsim/internal/revenue"
	"github.com/shopspring/decimal"
)

// CashSymbol is the composition key used for uninvested cash
const CashSymbol = "$USD"

// Account is a balance-carrying account with attached revenue models.
// Assess must not mutate the account; the portfolio owns balances.
type Account interface {
	Name() string
	Kind() Kind
	// InitialDeposit returns the opening date and amount.
	InitialDeposit() (time.Time, decimal.Decimal)
	// Composition maps a symbol to its percentage (0-100) of the balance.
	Composition() map[string]decimal.Decimal
	Assess(date time.Time, balance decimal.Decimal) domain.Assessment
}

type base struct {
	name        string
	kind        Kind
	opened      time.Time
	amount      decimal.Decimal
	composition map[string]decimal.Decimal
}

func newBase(name string, kind Kind, opened time.Time, amount decimal.Decimal, composition map[string]decimal.Decimal) base {
	return base{
		name:        name,
		kind:        kind,
		opened:      calendar.Truncate(opened),
		amount:      amount,
		composition: maps.Clone(composition),
	}
}

func (b *base) Name() string { return b.name }

func (b *base) Kind() Kind { return b.kind }

func (b *base) InitialDeposit() (time.Time, decimal.Decimal) { return b.opened, b.amount }

// Composition returns a copy of the symbol allocation
func (b *base) Composition() map[string]decimal.Decimal {
	return maps.Clone(b.composition)
}

func sumPayments(payments []revenue.Payment, date time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.AssessRevenue(date))
	}
	return total
}

func assessGains(model revenue.CapitalGainsModel, balance decimal.Decimal, date time.Time) decimal.Decimal {
	if model == nil {
		return decimal.Zero
	}
	return model.AssessRevenue(balance, date)
}

// DepositAccount is a checking or savings account. It can receive a salary,
// fixed incomes and expenses, and interest on the opening balance of the day.
type DepositAccount struct {
	base
	salary   *revenue.Salary
	incomes  []revenue.Payment
	expenses []revenue.Payment
	interest revenue.CapitalGainsModel
}

// NewDepositAccount creates a cash account holding 100% CashSymbol
func NewDepositAccount(name string, opened time.Time, amount decimal.Decimal) *DepositAccount {
	composition := map[string]decimal.Decimal{CashSymbol: decimal.NewFromInt(100)}
	return &DepositAccount{base: newBase(name, Deposit, opened, amount, composition)}
}

func (a *DepositAccount) WithSalary(s revenue.Salary) *DepositAccount {
	a.salary = &s
	return a
}

func (a *DepositAccount) WithIncome(p revenue.Payment) *DepositAccount {
	a.incomes = append(a.incomes, p)
	return a
}

func (a *DepositAccount) WithExpense(p revenue.Payment) *DepositAccount {
	a.expenses = append(a.expenses, p)
	return a
}

func (a *DepositAccount) WithInterest(m revenue.CapitalGainsModel) *DepositAccount {
	a.interest = m
	return a
}

func (a *DepositAccount) Assess(date time.Time, balance decimal.Decimal) domain.Assessment {
	interest := assessGains(a.interest, balance, date)

	income := decimal.Zero
	withholdings := decimal.Zero
	if a.salary != nil {
		income = a.salary.AssessRevenue(date)
		withholdings = a.salary.AssessWithholdings(date)
	}
	income = income.Add(sumPayments(a.incomes, date))
	expenses := sumPayments(a.expenses, date)

	as := domain.Assessment{
		Date:           date,
		Income:         income,
		W2Withholdings: withholdings,
		Expenses:       expenses,
		Interest:       interest,
	}
	as.Balance = balance.Add(as.NetChange())
	return as
}

// InvestmentAccount is a taxable brokerage account
type InvestmentAccount struct {
	base
	incomes   []revenue.Payment
	expenses  []revenue.Payment
	transfers []revenue.Payment
	returns   revenue.CapitalGainsModel
	dividends revenue.CapitalGainsModel
}

// NewInvestmentAccount creates a taxable account. Composition percentages are
// informational and do not affect returns.
func NewInvestmentAccount(name string, opened time.Time, amount decimal.Decimal, composition map[string]decimal.Decimal) *InvestmentAccount {
	return &InvestmentAccount{base: newBase(name, Investment, opened, amount, composition)}
}

func (a *InvestmentAccount) WithIncome(p revenue.Payment) *InvestmentAccount {
	a.incomes = append(a.incomes, p)
	return a
}

func (a *InvestmentAccount) WithExpense(p revenue.Payment) *InvestmentAccount {
	a.expenses = append(a.expenses, p)
	return a
}

// WithTransfer registers an inbound flow that is not drawn from another
// account of the portfolio.
func (a *InvestmentAccount) WithTransfer(p revenue.Payment) *InvestmentAccount {
	a.transfers = append(a.transfers, p)
	return a
}

func (a *InvestmentAccount) WithExpectedReturn(m revenue.CapitalGainsModel) *InvestmentAccount {
	a.returns = m
	return a
}

func (a *InvestmentAccount) WithDividends(m revenue.CapitalGainsModel) *InvestmentAccount {
	a.dividends = m
	return a
}

func (a *InvestmentAccount) Assess(date time.Time, balance decimal.Decimal) domain.Assessment {
	return a.assess(date, balance)
}

func (a *InvestmentAccount) assess(date time.Time, balance decimal.Decimal) domain.Assessment {
	as := domain.Assessment{
		Date:         date,
		Income:       sumPayments(a.incomes, date).Add(sumPayments(a.transfers, date)),
		Expenses:     sumPayments(a.expenses, date),
		Dividends:    assessGains(a.dividends, balance, date),
		CapitalGains: assessGains(a.returns, balance, date),
	}
	as.Balance = balance.Add(as.NetChange())
	return as
}
