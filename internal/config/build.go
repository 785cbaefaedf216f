package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/rpsim/internal/account"
	"github.com/rgehrsitz/rpsim/internal/calendar"
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/rgehrsitz/rpsim/internal/portfolio"
	"github.com/rgehrsitz/rpsim/internal/revenue"
	"github.com/rgehrsitz/rpsim/internal/tax"
	"github.com/shopspring/decimal"
)

// scheduleResolver turns schedule names into predicates. Named entries of
// the scenario's schedules map take precedence over built-in names. Each name
// is resolved once so RRULE expansions are shared between models.
type scheduleResolver struct {
	named    map[string]string
	resolved map[string]calendar.Predicate
}

func newScheduleResolver(named map[string]string) *scheduleResolver {
	return &scheduleResolver{named: named, resolved: make(map[string]calendar.Predicate)}
}

func (r *scheduleResolver) resolve(name string) (calendar.Predicate, error) {
	if p, ok := r.resolved[name]; ok {
		return p, nil
	}
	var (
		p   calendar.Predicate
		err error
	)
	if text, ok := r.named[name]; ok {
		p, err = resolveNamed(text)
	} else {
		p, err = calendar.Lookup(name)
	}
	if err != nil {
		return nil, err
	}
	r.resolved[name] = p
	return p, nil
}

// resolveNamed accepts either another schedule name or bare RRULE text.
func resolveNamed(text string) (calendar.Predicate, error) {
	if p, err := calendar.Lookup(text); err == nil {
		return p, nil
	}
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "FREQ=") {
		return calendar.FromRRule(text)
	}
	return nil, fmt.Errorf("unknown schedule %q", text)
}

// BuildTaxCalculator creates the calculator described by the tax settings,
// falling back to the 2023 single-filer values.
func BuildTaxCalculator(settings domain.TaxSettings) (*tax.Calculator, error) {
	deduction := tax.StandardDeduction2023
	if settings.StandardDeduction != nil {
		deduction = *settings.StandardDeduction
	}
	brackets := tax.Brackets2023Single()
	if len(settings.Brackets) > 0 {
		brackets = make([]tax.TaxBracket, len(settings.Brackets))
		for i, b := range settings.Brackets {
			if b.Limit == nil && i != len(settings.Brackets)-1 {
				return nil, fmt.Errorf("bracket %d: only the last bracket may omit its limit", i)
			}
			brackets[i] = tax.TaxBracket{Rate: b.Rate}
			if b.Limit != nil {
				brackets[i].Limit = *b.Limit
			}
		}
	}
	return tax.NewCalculator(deduction, brackets)
}

// BuildPortfolio assembles a portfolio from a validated configuration
func BuildPortfolio(config *domain.Configuration) (*portfolio.Portfolio, error) {
	schedules := newScheduleResolver(config.Schedules)
	p := portfolio.New()

	calc, err := BuildTaxCalculator(config.Tax)
	if err != nil {
		return nil, fmt.Errorf("tax settings: %w", err)
	}
	p.SetTaxCalculator(calc)

	for i := range config.Accounts {
		acc, err := buildAccount(&config.Accounts[i], schedules)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", config.Accounts[i].Name, err)
		}
		if err := p.WithAccount(acc); err != nil {
			return nil, err
		}
	}

	for i := range config.Distributions {
		t, err := buildTransfer(&config.Distributions[i], schedules)
		if err != nil {
			return nil, fmt.Errorf("distribution %d: %w", i, err)
		}
		p.WithDistribution(t)
	}
	for i := range config.Transfers {
		t, err := buildTransfer(&config.Transfers[i], schedules)
		if err != nil {
			return nil, fmt.Errorf("transfer %d: %w", i, err)
		}
		p.WithTransfer(t)
	}

	if err := p.SetPrimaryAccount(config.Simulation.PrimaryAccount); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func buildAccount(cfg *domain.AccountConfig, schedules *scheduleResolver) (account.Account, error) {
	kind, err := account.ParseKind(cfg.Type)
	if err != nil {
		return nil, err
	}
	composition := cfg.Composition
	if len(composition) == 0 {
		composition = map[string]decimal.Decimal{account.CashSymbol: decimal.NewFromInt(100)}
	}

	incomes, err := buildPayments(cfg.Incomes, schedules, incomePayment)
	if err != nil {
		return nil, fmt.Errorf("incomes: %w", err)
	}
	expenses, err := buildPayments(cfg.Expenses, schedules, expensePayment)
	if err != nil {
		return nil, fmt.Errorf("expenses: %w", err)
	}

	switch {
	case kind == account.Deposit:
		acc := account.NewDepositAccount(cfg.Name, cfg.Opened, cfg.Balance)
		for _, p := range incomes {
			acc.WithIncome(p)
		}
		for _, p := range expenses {
			acc.WithExpense(p)
		}
		if cfg.Salary != nil {
			salary, err := buildSalary(cfg.Salary, schedules)
			if err != nil {
				return nil, fmt.Errorf("salary: %w", err)
			}
			acc.WithSalary(salary)
		}
		if cfg.Interest != nil {
			period, err := schedules.resolve(cfg.Interest.Schedule)
			if err != nil {
				return nil, fmt.Errorf("interest: %w", err)
			}
			acc.WithInterest(revenue.NewCompoundInterest(cfg.Interest.Rate, period))
		}
		return acc, nil

	case kind == account.Investment:
		acc := account.NewInvestmentAccount(cfg.Name, cfg.Opened, cfg.Balance, composition)
		for _, p := range incomes {
			acc.WithIncome(p)
		}
		for _, p := range expenses {
			acc.WithExpense(p)
		}
		if err := attachReturns(cfg, schedules,
			func(m revenue.CapitalGainsModel) { acc.WithExpectedReturn(m) },
			func(m revenue.CapitalGainsModel) { acc.WithDividends(m) },
		); err != nil {
			return nil, err
		}
		return acc, nil

	default:
		acc, err := account.NewTraditionalIRA(kind, cfg.Name, cfg.Opened, cfg.Balance, composition)
		if err != nil {
			return nil, err
		}
		for _, p := range incomes {
			acc.WithIncome(p)
		}
		for _, p := range expenses {
			acc.WithExpense(p)
		}
		if err := attachReturns(cfg, schedules,
			func(m revenue.CapitalGainsModel) { acc.WithExpectedReturn(m) },
			func(m revenue.CapitalGainsModel) { acc.WithDividends(m) },
		); err != nil {
			return nil, err
		}

		contributions, err := buildPayments(cfg.Contributions, schedules, incomePayment)
		if err != nil {
			return nil, fmt.Errorf("contributions: %w", err)
		}
		for _, p := range contributions {
			acc.WithContribution(p)
		}
		distributions, err := buildPayments(cfg.Distributions, schedules, incomePayment)
		if err != nil {
			return nil, fmt.Errorf("distributions: %w", err)
		}
		for _, p := range distributions {
			acc.WithDistribution(revenue.BalanceAware(p))
		}
		if cfg.RMD != nil {
			rmd, err := buildRMD(cfg.RMD, schedules)
			if err != nil {
				return nil, err
			}
			acc.WithDistribution(rmd)
		}
		return acc, nil
	}
}

func attachReturns(cfg *domain.AccountConfig, schedules *scheduleResolver, withReturn, withDividends func(revenue.CapitalGainsModel)) error {
	if r := cfg.ExpectedReturn; r != nil {
		period, err := schedules.resolve(r.Schedule)
		if err != nil {
			return fmt.Errorf("expected_return: %w", err)
		}
		if r.Model == domain.ReturnModelCompound {
			withReturn(revenue.NewCompoundInterest(r.Rate, period))
		} else {
			withReturn(revenue.NewSimpleReturns(r.Rate, period))
		}
	}
	if cfg.Dividends != nil {
		period, err := schedules.resolve(cfg.Dividends.Schedule)
		if err != nil {
			return fmt.Errorf("dividends: %w", err)
		}
		withDividends(revenue.NewSimpleDividends(cfg.Dividends.Rate, period))
	}
	return nil
}

func incomePayment(amount decimal.Decimal, period calendar.Predicate) revenue.Payment {
	return revenue.NewFixedIncome(amount, period)
}

func expensePayment(amount decimal.Decimal, period calendar.Predicate) revenue.Payment {
	return revenue.NewFixedExpense(amount, period)
}

func buildPayments(cfgs []domain.PaymentConfig, schedules *scheduleResolver, build func(decimal.Decimal, calendar.Predicate) revenue.Payment) ([]revenue.Payment, error) {
	payments := make([]revenue.Payment, 0, len(cfgs))
	for i, c := range cfgs {
		period, err := schedules.resolve(c.Schedule)
		if err != nil {
			return nil, fmt.Errorf("%d: %w", i, err)
		}
		payments = append(payments, narrow(build(c.Amount, period), c.Starting, c.Until))
	}
	return payments, nil
}

func buildSalary(cfg *domain.SalaryConfig, schedules *scheduleResolver) (revenue.Salary, error) {
	period, err := schedules.resolve(cfg.Schedule)
	if err != nil {
		return revenue.Salary{}, err
	}
	salary := revenue.NewSalary(cfg.Payment, period, cfg.AnnualGross, cfg.W2Withholdings)
	return narrow(revenue.Payment(salary), cfg.Starting, cfg.Until).(revenue.Salary), nil
}

func buildRMD(cfg *domain.RMDConfig, schedules *scheduleResolver) (revenue.RequiredMinimumDistribution, error) {
	period, err := schedules.resolve(cfg.Schedule)
	if err != nil {
		return revenue.RequiredMinimumDistribution{}, fmt.Errorf("rmd: %w", err)
	}
	return revenue.NewRequiredMinimumDistribution(cfg.BirthDate, period), nil
}

func buildTransfer(cfg *domain.TransferConfig, schedules *scheduleResolver) (portfolio.Transfer, error) {
	if cfg.RMD != nil {
		rmd, err := buildRMD(cfg.RMD, schedules)
		if err != nil {
			return portfolio.Transfer{}, err
		}
		return portfolio.NewBalanceTransfer(rmd, cfg.From, cfg.To), nil
	}
	if cfg.Amount == nil {
		return portfolio.Transfer{}, fmt.Errorf("amount or rmd is required")
	}
	period, err := schedules.resolve(cfg.Schedule)
	if err != nil {
		return portfolio.Transfer{}, err
	}
	payment := narrow(revenue.NewFixedIncome(*cfg.Amount, period), cfg.Starting, cfg.Until)
	return portfolio.NewTransfer(payment, cfg.From, cfg.To), nil
}

func narrow(p revenue.Payment, starting, until *time.Time) revenue.Payment {
	if starting != nil {
		p = p.Starting(*starting)
	}
	if until != nil {
		p = p.Until(*until)
	}
	return p
}
