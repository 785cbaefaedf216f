package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Configuration represents a complete scenario file
type Configuration struct {
	Simulation    SimulationSettings `yaml:"simulation" json:"simulation"`
	Tax           TaxSettings        `yaml:"tax" json:"tax"`
	Schedules     map[string]string  `yaml:"schedules,omitempty" json:"schedules,omitempty"`
	Accounts      []AccountConfig    `yaml:"accounts" json:"accounts"`
	Transfers     []TransferConfig   `yaml:"transfers,omitempty" json:"transfers,omitempty"`
	Distributions []TransferConfig   `yaml:"distributions,omitempty" json:"distributions,omitempty"`
}

// SimulationSettings controls the run window and tax settlement
type SimulationSettings struct {
	StartDate      time.Time `yaml:"start_date" json:"start_date"`
	Days           int       `yaml:"days" json:"days"`
	PrimaryAccount string    `yaml:"primary_account" json:"primary_account"`
}

// TaxSettings overrides the default federal tax table. Empty values fall back
// to the 2023 single-filer table.
type TaxSettings struct {
	StandardDeduction *decimal.Decimal   `yaml:"standard_deduction,omitempty" json:"standard_deduction,omitempty"`
	Brackets          []TaxBracketConfig `yaml:"brackets,omitempty" json:"brackets,omitempty"`
}

// TaxBracketConfig is one bracket. A missing limit marks the open top bracket.
type TaxBracketConfig struct {
	Limit *decimal.Decimal `yaml:"limit,omitempty" json:"limit,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Account types accepted in AccountConfig.Type
const (
	AccountTypeDeposit         = "deposit"
	AccountTypeInvestment      = "investment"
	AccountTypeTraditionalIRA  = "traditional_ira"
	AccountTypeTraditional401K = "traditional_401k"
	AccountTypeHSA             = "hsa"
	AccountTypeRothIRA         = "roth_ira"
)

// AccountConfig describes one account and the models attached to it
type AccountConfig struct {
	Name        string                     `yaml:"name" json:"name"`
	Type        string                     `yaml:"type" json:"type"`
	Opened      time.Time                  `yaml:"opened" json:"opened"`
	Balance     decimal.Decimal            `yaml:"balance" json:"balance"`
	Composition map[string]decimal.Decimal `yaml:"composition,omitempty" json:"composition,omitempty"`

	Salary         *SalaryConfig   `yaml:"salary,omitempty" json:"salary,omitempty"`
	Incomes        []PaymentConfig `yaml:"incomes,omitempty" json:"incomes,omitempty"`
	Expenses       []PaymentConfig `yaml:"expenses,omitempty" json:"expenses,omitempty"`
	Interest       *RateConfig     `yaml:"interest,omitempty" json:"interest,omitempty"`
	ExpectedReturn *ReturnConfig   `yaml:"expected_return,omitempty" json:"expected_return,omitempty"`
	Dividends      *RateConfig     `yaml:"dividends,omitempty" json:"dividends,omitempty"`
	Contributions  []PaymentConfig `yaml:"contributions,omitempty" json:"contributions,omitempty"`
	Distributions  []PaymentConfig `yaml:"distributions,omitempty" json:"distributions,omitempty"`
	RMD            *RMDConfig      `yaml:"rmd,omitempty" json:"rmd,omitempty"`
}

// PaymentConfig is a fixed amount on a named schedule, optionally bounded by
// exclusive starting and until dates.
type PaymentConfig struct {
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	Schedule string          `yaml:"schedule" json:"schedule"`
	Starting *time.Time      `yaml:"starting,omitempty" json:"starting,omitempty"`
	Until    *time.Time      `yaml:"until,omitempty" json:"until,omitempty"`
}

// SalaryConfig is a net paycheck with prorated annual withholdings
type SalaryConfig struct {
	Payment        decimal.Decimal `yaml:"payment" json:"payment"`
	Schedule       string          `yaml:"schedule" json:"schedule"`
	AnnualGross    decimal.Decimal `yaml:"annual_gross" json:"annual_gross"`
	W2Withholdings decimal.Decimal `yaml:"w2_withholdings" json:"w2_withholdings"`
	Starting       *time.Time      `yaml:"starting,omitempty" json:"starting,omitempty"`
	Until          *time.Time      `yaml:"until,omitempty" json:"until,omitempty"`
}

// RateConfig is a per-period rate applied to the balance on a schedule
type RateConfig struct {
	Rate     decimal.Decimal `yaml:"rate" json:"rate"`
	Schedule string          `yaml:"schedule" json:"schedule"`
}

// Return models accepted in ReturnConfig.Model
const (
	ReturnModelSimple   = "simple"
	ReturnModelCompound = "compound"
)

// ReturnConfig selects a capital gains model. For the simple model Rate is
// annualized; for the compound model it is applied per period.
type ReturnConfig struct {
	Model    string          `yaml:"model" json:"model"`
	Rate     decimal.Decimal `yaml:"rate" json:"rate"`
	Schedule string          `yaml:"schedule" json:"schedule"`
}

// RMDConfig attaches required minimum distributions for an owner
type RMDConfig struct {
	BirthDate time.Time `yaml:"birth_date" json:"birth_date"`
	Schedule  string    `yaml:"schedule" json:"schedule"`
}

// TransferConfig moves money between two accounts on a schedule. Exactly one
// of Amount or RMD determines the amount.
type TransferConfig struct {
	From     string           `yaml:"from" json:"from"`
	To       string           `yaml:"to" json:"to"`
	Amount   *decimal.Decimal `yaml:"amount,omitempty" json:"amount,omitempty"`
	Schedule string           `yaml:"schedule,omitempty" json:"schedule,omitempty"`
	Starting *time.Time       `yaml:"starting,omitempty" json:"starting,omitempty"`
	Until    *time.Time       `yaml:"until,omitempty" json:"until,omitempty"`
	RMD      *RMDConfig       `yaml:"rmd,omitempty" json:"rmd,omitempty"`
}
