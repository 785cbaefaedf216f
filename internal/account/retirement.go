package account

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/rgehrsitz/rpsim/internal/revenue"
	"github.com/shopspring/decimal"
)

// RetirementAccount is a tax-advantaged account: a traditional IRA, 401(k),
// HSA or Roth IRA. It behaves like an InvestmentAccount and additionally
// tracks contributions and distributions.
type RetirementAccount struct {
	InvestmentAccount
	contributions []revenue.Payment
	distributions []revenue.BalancePayment
}

// NewTraditionalIRA creates an account of one of the IRA family kinds
func NewTraditionalIRA(kind Kind, name string, opened time.Time, amount decimal.Decimal, composition map[string]decimal.Decimal) (*RetirementAccount, error) {
	if !kind.IsRetirement() {
		return nil, fmt.Errorf("account %q: %s is not a retirement account kind", name, kind)
	}
	return &RetirementAccount{
		InvestmentAccount: InvestmentAccount{base: newBase(name, kind, opened, amount, composition)},
	}, nil
}

// WithContribution registers a deposit into the account. Contributions raise
// the balance without being reported as income.
func (a *RetirementAccount) WithContribution(p revenue.Payment) *RetirementAccount {
	a.contributions = append(a.contributions, p)
	return a
}

// WithDistribution registers a withdrawal. The amount may depend on the
// balance, as with required minimum distributions. The withdrawn money leaves
// the portfolio; a portfolio-level distribution credits another account.
func (a *RetirementAccount) WithDistribution(p revenue.BalancePayment) *RetirementAccount {
	a.distributions = append(a.distributions, p)
	return a
}

func (a *RetirementAccount) WithIncome(p revenue.Payment) *RetirementAccount {
	a.InvestmentAccount.WithIncome(p)
	return a
}

func (a *RetirementAccount) WithExpense(p revenue.Payment) *RetirementAccount {
	a.InvestmentAccount.WithExpense(p)
	return a
}

func (a *RetirementAccount) WithTransfer(p revenue.Payment) *RetirementAccount {
	a.InvestmentAccount.WithTransfer(p)
	return a
}

func (a *RetirementAccount) WithExpectedReturn(m revenue.CapitalGainsModel) *RetirementAccount {
	a.InvestmentAccount.WithExpectedReturn(m)
	return a
}

func (a *RetirementAccount) WithDividends(m revenue.CapitalGainsModel) *RetirementAccount {
	a.InvestmentAccount.WithDividends(m)
	return a
}

// Assess applies the investment flows, then contributions, then
// distributions. Distributions are capped at what the account holds after the
// other flows of the day.
func (a *RetirementAccount) Assess(date time.Time, balance decimal.Decimal) domain.Assessment {
	as := a.assess(date, balance)
	as.Contributions = sumPayments(a.contributions, date)

	requested := decimal.Zero
	for _, d := range a.distributions {
		requested = requested.Add(d.AssessBalance(date, balance).Abs())
	}
	available := decimal.Max(balance.Add(as.NetChange()), decimal.Zero)
	as.IRADistributions = decimal.Min(requested, available)

	as.Balance = balance.Add(as.NetChange())
	return as
}
