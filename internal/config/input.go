package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/rpsim/internal/account"
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a scenario from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration checks the structure of a scenario. Schedule names
// and tax tables are checked when the portfolio is built.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateSimulation(&config.Simulation); err != nil {
		return fmt.Errorf("simulation settings: %w", err)
	}

	if len(config.Accounts) == 0 {
		return fmt.Errorf("no accounts provided")
	}
	names := make(map[string]bool, len(config.Accounts))
	for i := range config.Accounts {
		acc := &config.Accounts[i]
		if err := ip.validateAccount(acc); err != nil {
			return fmt.Errorf("account %d (%s): %w", i, acc.Name, err)
		}
		if names[acc.Name] {
			return fmt.Errorf("account %d: duplicate name %q", i, acc.Name)
		}
		names[acc.Name] = true
	}

	if !names[config.Simulation.PrimaryAccount] {
		return fmt.Errorf("primary account %q is not defined", config.Simulation.PrimaryAccount)
	}

	for i := range config.Transfers {
		if err := ip.validateTransfer(&config.Transfers[i], names); err != nil {
			return fmt.Errorf("transfer %d: %w", i, err)
		}
	}
	for i := range config.Distributions {
		if err := ip.validateTransfer(&config.Distributions[i], names); err != nil {
			return fmt.Errorf("distribution %d: %w", i, err)
		}
	}

	return nil
}

func (ip *InputParser) validateSimulation(sim *domain.SimulationSettings) error {
	if sim.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if sim.Days < 0 {
		return fmt.Errorf("days must not be negative, got %d", sim.Days)
	}
	if sim.PrimaryAccount == "" {
		return fmt.Errorf("primary account is required")
	}
	return nil
}

func (ip *InputParser) validateAccount(acc *domain.AccountConfig) error {
	if acc.Name == "" {
		return fmt.Errorf("name is required")
	}
	kind, err := account.ParseKind(acc.Type)
	if err != nil {
		return err
	}

	if err := validateComposition(acc.Composition); err != nil {
		return err
	}

	if kind != account.Deposit {
		if acc.Salary != nil {
			return fmt.Errorf("salary is only supported on deposit accounts")
		}
		if acc.Interest != nil {
			return fmt.Errorf("interest is only supported on deposit accounts, use expected_return")
		}
	} else {
		if acc.ExpectedReturn != nil || acc.Dividends != nil {
			return fmt.Errorf("deposit accounts take interest, not expected_return or dividends")
		}
	}
	if !kind.IsRetirement() && (len(acc.Contributions) > 0 || len(acc.Distributions) > 0 || acc.RMD != nil) {
		return fmt.Errorf("contributions, distributions and rmd require a retirement account type")
	}

	if acc.Salary != nil {
		if acc.Salary.Schedule == "" {
			return fmt.Errorf("salary schedule is required")
		}
		if acc.Salary.W2Withholdings.IsNegative() {
			return fmt.Errorf("salary w2_withholdings must not be negative")
		}
	}
	for _, group := range []struct {
		name     string
		payments []domain.PaymentConfig
	}{
		{"income", acc.Incomes},
		{"expense", acc.Expenses},
		{"contribution", acc.Contributions},
		{"distribution", acc.Distributions},
	} {
		for i, p := range group.payments {
			if err := validatePayment(p); err != nil {
				return fmt.Errorf("%s %d: %w", group.name, i, err)
			}
		}
	}
	if acc.Interest != nil && acc.Interest.Schedule == "" {
		return fmt.Errorf("interest schedule is required")
	}
	if acc.Dividends != nil && acc.Dividends.Schedule == "" {
		return fmt.Errorf("dividends schedule is required")
	}
	if r := acc.ExpectedReturn; r != nil {
		switch r.Model {
		case domain.ReturnModelSimple, domain.ReturnModelCompound, "":
		default:
			return fmt.Errorf("unknown expected_return model %q", r.Model)
		}
		if r.Schedule == "" {
			return fmt.Errorf("expected_return schedule is required")
		}
	}
	if acc.RMD != nil {
		if err := validateRMD(acc.RMD); err != nil {
			return err
		}
	}
	return nil
}

func validateComposition(composition map[string]decimal.Decimal) error {
	total := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for symbol, pct := range composition {
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return fmt.Errorf("composition %s must be between 0 and 100 percent, got %s", symbol, pct)
		}
		total = total.Add(pct)
	}
	if total.GreaterThan(hundred) {
		return fmt.Errorf("composition adds up to %s percent", total)
	}
	return nil
}

func validatePayment(p domain.PaymentConfig) error {
	if p.Schedule == "" {
		return fmt.Errorf("schedule is required")
	}
	if p.Starting != nil && p.Until != nil && !p.Starting.Before(*p.Until) {
		return fmt.Errorf("starting %s is not before until %s", p.Starting.Format("2006-01-02"), p.Until.Format("2006-01-02"))
	}
	return nil
}

func validateRMD(r *domain.RMDConfig) error {
	if r.BirthDate.IsZero() {
		return fmt.Errorf("rmd birth date is required")
	}
	if r.Schedule == "" {
		return fmt.Errorf("rmd schedule is required")
	}
	return nil
}

func (ip *InputParser) validateTransfer(t *domain.TransferConfig, accounts map[string]bool) error {
	if !accounts[t.From] {
		return fmt.Errorf("source account %q is not defined", t.From)
	}
	if !accounts[t.To] {
		return fmt.Errorf("destination account %q is not defined", t.To)
	}
	if t.From == t.To {
		return fmt.Errorf("source and destination are both %q", t.From)
	}
	switch {
	case t.Amount != nil && t.RMD != nil:
		return fmt.Errorf("amount and rmd are mutually exclusive")
	case t.RMD != nil:
		return validateRMD(t.RMD)
	case t.Amount == nil:
		return fmt.Errorf("amount or rmd is required")
	case !t.Amount.IsPositive():
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	return validatePayment(domain.PaymentConfig{Amount: *t.Amount, Schedule: t.Schedule, Starting: t.Starting, Until: t.Until})
}
