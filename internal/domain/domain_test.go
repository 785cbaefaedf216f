package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestAssessmentNetChange(t *testing.T) {
	a := Assessment{
		Income:           decimal.NewFromInt(1000),
		W2Withholdings:   decimal.NewFromInt(200),
		Expenses:         decimal.NewFromInt(-300),
		Interest:         decimal.NewFromInt(5),
		Dividends:        decimal.NewFromInt(10),
		CapitalGains:     decimal.NewFromInt(20),
		Contributions:    decimal.NewFromInt(100),
		IRADistributions: decimal.NewFromInt(50),
	}
	assert.True(t, a.NetChange().Equal(decimal.NewFromInt(785)), "withholdings do not move the balance, got %s", a.NetChange())
	assert.True(t, Assessment{}.NetChange().IsZero())
}

func TestRecordTotal(t *testing.T) {
	r := Record{
		Balances: []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(-40)},
		Taxes:    decimal.NewFromInt(1000),
	}
	assert.True(t, r.Total().Equal(decimal.NewFromInt(60)), "taxes are not part of the total")
	assert.True(t, Record{}.Total().IsZero())
}

func TestConfigurationYAML(t *testing.T) {
	doc := `
simulation:
  start_date: 2023-01-01
  days: 5
  primary_account: checking
tax:
  standard_deduction: 13850
  brackets:
    - limit: 11000
      rate: 0.10
    - rate: 0.12
accounts:
  - name: checking
    type: deposit
    opened: 2023-01-01
    balance: 1000.50
transfers:
  - from: checking
    to: brokerage
    rmd:
      birth_date: 1950-01-10
      schedule: annual
`
	var cfg Configuration
	assert.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))
	assert.Equal(t, 5, cfg.Simulation.Days)
	assert.True(t, cfg.Tax.StandardDeduction.Equal(decimal.NewFromInt(13850)))
	assert.Len(t, cfg.Tax.Brackets, 2)
	assert.Nil(t, cfg.Tax.Brackets[1].Limit)
	assert.True(t, cfg.Accounts[0].Balance.Equal(decimal.RequireFromString("1000.50")))
	assert.Nil(t, cfg.Transfers[0].Amount)
	if assert.NotNil(t, cfg.Transfers[0].RMD) {
		assert.Equal(t, 1950, cfg.Transfers[0].RMD.BirthDate.Year())
	}
}
