package portfolio

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/rpsim/internal/account"
	"github.com/rgehrsitz/rpsim/internal/tax"
)

var (
	// ErrAccountNotFound is returned when a name does not match a registered account
	ErrAccountNotFound = errors.New("account not found")
	// ErrNoPrimaryAccount is returned when a run starts without a primary account
	ErrNoPrimaryAccount = errors.New("no primary account set")
	// ErrDuplicateAccount is returned when two accounts share a name
	ErrDuplicateAccount = errors.New("duplicate account name")
)

// Portfolio is a set of accounts with transfers between them. Taxes are
// settled against the primary account on the first day of every year.
//
// Accounts, transfers and distributions are registered before a run starts
// and must not change while a run is in progress.
type Portfolio struct {
	accounts      []account.Account
	index         map[string]int
	transfers     []Transfer
	distributions []Transfer
	primary       string
	taxCalc       *tax.Calculator
	Logger        Logger
}

// New creates an empty portfolio using the 2023 single-filer tax table
func New() *Portfolio {
	return &Portfolio{
		index:   make(map[string]int),
		taxCalc: tax.NewCalculator2023(),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (p *Portfolio) SetLogger(l Logger) {
	if l == nil {
		p.Logger = NopLogger{}
		return
	}
	p.Logger = l
}

func (p *Portfolio) logger() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}

// SetTaxCalculator replaces the tax table used for annual settlement
func (p *Portfolio) SetTaxCalculator(c *tax.Calculator) {
	if c == nil {
		c = tax.NewCalculator2023()
	}
	p.taxCalc = c
}

// TaxCalculator returns the tax table used for annual settlement
func (p *Portfolio) TaxCalculator() *tax.Calculator { return p.taxCalc }

// WithAccount registers an account. Names must be unique.
func (p *Portfolio) WithAccount(a account.Account) error {
	if _, ok := p.index[a.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateAccount, a.Name())
	}
	p.index[a.Name()] = len(p.accounts)
	p.accounts = append(p.accounts, a)
	return nil
}

// WithTransfer registers a transfer. Account names are checked when a run
// starts.
func (p *Portfolio) WithTransfer(t Transfer) *Portfolio {
	p.transfers = append(p.transfers, t)
	return p
}

// WithDistribution registers an IRA distribution. Distributions settle like
// transfers, before them, and count towards taxable IRA distributions instead
// of realizing capital gains.
func (p *Portfolio) WithDistribution(t Transfer) *Portfolio {
	p.distributions = append(p.distributions, t)
	return p
}

// SetPrimaryAccount names the account that pays or receives annual taxes
func (p *Portfolio) SetPrimaryAccount(name string) error {
	if _, ok := p.index[name]; !ok {
		return fmt.Errorf("primary account %q: %w", name, ErrAccountNotFound)
	}
	p.primary = name
	return nil
}

// PrimaryAccount returns the name of the primary account
func (p *Portfolio) PrimaryAccount() string { return p.primary }

// Accounts returns the accounts in registration order
func (p *Portfolio) Accounts() []account.Account {
	return append([]account.Account(nil), p.accounts...)
}

// AccountNames returns the account names in registration order
func (p *Portfolio) AccountNames() []string {
	names := make([]string, len(p.accounts))
	for i, a := range p.accounts {
		names[i] = a.Name()
	}
	return names
}

// Account finds an account by name
func (p *Portfolio) Account(name string) (account.Account, error) {
	i, ok := p.index[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrAccountNotFound)
	}
	return p.accounts[i], nil
}

// Transfers returns the registered transfers
func (p *Portfolio) Transfers() []Transfer {
	return append([]Transfer(nil), p.transfers...)
}

// Distributions returns the registered IRA distributions
func (p *Portfolio) Distributions() []Transfer {
	return append([]Transfer(nil), p.distributions...)
}

// Validate checks that a primary account is set and that every transfer
// refers to registered accounts.
func (p *Portfolio) Validate() error {
	if p.primary == "" {
		return ErrNoPrimaryAccount
	}
	if _, ok := p.index[p.primary]; !ok {
		return fmt.Errorf("primary account %q: %w", p.primary, ErrAccountNotFound)
	}
	check := func(kind string, list []Transfer) error {
		for i, t := range list {
			if t.Policy == nil {
				return fmt.Errorf("%s %d: no policy", kind, i)
			}
			if _, ok := p.index[t.Source]; !ok {
				return fmt.Errorf("%s %d source %q: %w", kind, i, t.Source, ErrAccountNotFound)
			}
			if _, ok := p.index[t.Destination]; !ok {
				return fmt.Errorf("%s %d destination %q: %w", kind, i, t.Destination, ErrAccountNotFound)
			}
		}
		return nil
	}
	if err := check("distribution", p.distributions); err != nil {
		return err
	}
	return check("transfer", p.transfers)
}
