package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/rpsim/internal/account"
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/rgehrsitz/rpsim/internal/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func jan1() time.Time { return time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC) }

func TestBuildPortfolio_Example(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "example.yaml"))
	require.NoError(t, err)

	p, err := BuildPortfolio(config)
	require.NoError(t, err)

	assert.Equal(t, []string{"checking", "brokerage", "ira"}, p.AccountNames())
	assert.Equal(t, "checking", p.PrimaryAccount())
	assert.Len(t, p.Transfers(), 1)
	assert.Len(t, p.Distributions(), 2)

	ira, err := p.Account("ira")
	require.NoError(t, err)
	assert.Equal(t, account.TraditionalIRA, ira.Kind())

	records, err := p.Take(config.Simulation.StartDate, 60)
	require.NoError(t, err)
	require.Len(t, records, 60)
	assert.Equal(t, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), records[59].Date)
}

func TestBuildPortfolio_DefaultComposition(t *testing.T) {
	config := validConfig()
	p, err := BuildPortfolio(config)
	require.NoError(t, err)

	ira, err := p.Account("ira")
	require.NoError(t, err)
	assert.Equal(t, map[string]decimal.Decimal{account.CashSymbol: decimal.NewFromInt(100)}, ira.Composition())
}

func TestBuildPortfolio_RunsPayments(t *testing.T) {
	config := validConfig()
	config.Transfers = nil
	p, err := BuildPortfolio(config)
	require.NoError(t, err)

	records, err := p.Take(jan1(), 3)
	require.NoError(t, err)
	assert.True(t, records[2].Balances[0].Equal(d("1030")), "got %s", records[2].Balances[0])
	assert.True(t, records[2].Balances[1].Equal(d("5000")))
}

func TestBuildPortfolio_NamedRRuleSchedule(t *testing.T) {
	config := validConfig()
	config.Transfers = nil
	config.Schedules = map[string]string{"mid_month": "FREQ=MONTHLY;BYMONTHDAY=15"}
	config.Accounts[0].Incomes = []domain.PaymentConfig{{Amount: d("100"), Schedule: "mid_month"}}

	p, err := BuildPortfolio(config)
	require.NoError(t, err)

	records, err := p.Take(jan1(), 20)
	require.NoError(t, err)
	assert.True(t, records[13].Balances[0].Equal(d("1000")), "Jan 14")
	assert.True(t, records[14].Balances[0].Equal(d("1100")), "Jan 15")
	assert.True(t, records[19].Balances[0].Equal(d("1100")))
}

func TestBuildPortfolio_ScheduleAlias(t *testing.T) {
	config := validConfig()
	config.Schedules = map[string]string{"payday": "monthly_on_3rd"}
	config.Accounts[0].Incomes = []domain.PaymentConfig{{Amount: d("100"), Schedule: "payday"}}
	config.Transfers = nil

	p, err := BuildPortfolio(config)
	require.NoError(t, err)
	records, err := p.Take(jan1(), 3)
	require.NoError(t, err)
	assert.True(t, records[2].Balances[0].Equal(d("1100")))
}

func TestBuildPortfolio_UnknownSchedule(t *testing.T) {
	config := validConfig()
	config.Accounts[0].Incomes[0].Schedule = "fortnightly"

	_, err := BuildPortfolio(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `account "checking"`)
	assert.Contains(t, err.Error(), "fortnightly")
}

func TestBuildPortfolio_PaymentWindow(t *testing.T) {
	config := validConfig()
	config.Transfers = nil
	config.Accounts[0].Incomes[0].Starting = datePtr(2023, time.January, 1)
	config.Accounts[0].Incomes[0].Until = datePtr(2023, time.January, 4)

	p, err := BuildPortfolio(config)
	require.NoError(t, err)
	records, err := p.Take(jan1(), 5)
	require.NoError(t, err)

	// Both bounds are exclusive: only Jan 2 and Jan 3 pay.
	assert.True(t, records[0].Balances[0].Equal(d("1000")))
	assert.True(t, records[4].Balances[0].Equal(d("1020")))
}

func TestBuildPortfolio_RMDDistribution(t *testing.T) {
	config := validConfig()
	config.Transfers = nil
	config.Accounts[0].Incomes = nil
	config.Accounts[0].Balance = decimal.Zero
	config.Accounts[1].Balance = d("26500")
	config.Distributions = []domain.TransferConfig{{
		From: "ira",
		To:   "checking",
		RMD:  &domain.RMDConfig{BirthDate: time.Date(1950, time.January, 10, 0, 0, 0, 0, time.UTC), Schedule: "annual"},
	}}

	p, err := BuildPortfolio(config)
	require.NoError(t, err)
	records, err := p.Take(time.Date(2023, time.December, 24, 0, 0, 0, 0, time.UTC), 2)
	require.NoError(t, err)

	assert.True(t, records[0].Balances[0].IsZero())
	assert.True(t, records[1].Balances[0].Equal(d("1000")), "got %s", records[1].Balances[0])
	assert.True(t, records[1].Balances[1].Equal(d("25500")))
}

func TestBuildPortfolio_AccountRMDLeavesPortfolio(t *testing.T) {
	config := validConfig()
	config.Transfers = nil
	config.Accounts[0].Incomes = nil
	config.Accounts[0].Balance = decimal.Zero
	config.Accounts[1].Balance = d("26500")
	config.Accounts[1].RMD = &domain.RMDConfig{BirthDate: time.Date(1950, time.January, 10, 0, 0, 0, 0, time.UTC), Schedule: "annual"}

	p, err := BuildPortfolio(config)
	require.NoError(t, err)
	records, err := p.Take(time.Date(2023, time.December, 24, 0, 0, 0, 0, time.UTC), 2)
	require.NoError(t, err)

	assert.True(t, records[1].Balances[0].IsZero(), "no account is credited")
	assert.True(t, records[1].Balances[1].Equal(d("25500")), "got %s", records[1].Balances[1])
}

func TestBuildPortfolio_Salary(t *testing.T) {
	config := validConfig()
	config.Transfers = nil
	config.Accounts[0].Incomes = nil
	config.Accounts[0].Salary = &domain.SalaryConfig{
		Payment:        d("2000"),
		Schedule:       "friday_biweekly",
		AnnualGross:    d("70000"),
		W2Withholdings: d("5200"),
	}

	p, err := BuildPortfolio(config)
	require.NoError(t, err)
	records, err := p.Take(jan1(), 14)
	require.NoError(t, err)

	paid := records[13].Balances[0].Sub(d("1000"))
	assert.True(t, paid.Equal(d("2000")), "one paycheck in the first two weeks, got %s", paid)
}

func TestBuildTaxCalculator(t *testing.T) {
	t.Run("defaults to 2023 single filer", func(t *testing.T) {
		calc, err := BuildTaxCalculator(domain.TaxSettings{})
		require.NoError(t, err)
		assert.True(t, calc.StandardDeduction.Equal(tax.StandardDeduction2023))
		assert.Len(t, calc.Brackets, len(tax.Brackets2023Single()))
	})

	t.Run("custom table", func(t *testing.T) {
		calc, err := BuildTaxCalculator(domain.TaxSettings{
			StandardDeduction: decimalPtr("0"),
			Brackets: []domain.TaxBracketConfig{
				{Limit: decimalPtr("1000"), Rate: d("0.1")},
				{Rate: d("0.2")},
			},
		})
		require.NoError(t, err)
		assert.True(t, calc.IncomeTax(d("1500")).Equal(d("200")))
	})

	t.Run("open bracket must be last", func(t *testing.T) {
		_, err := BuildTaxCalculator(domain.TaxSettings{
			Brackets: []domain.TaxBracketConfig{
				{Rate: d("0.1")},
				{Limit: decimalPtr("1000"), Rate: d("0.2")},
			},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only the last bracket may omit its limit")
	})

	t.Run("rejected by BuildPortfolio", func(t *testing.T) {
		config := validConfig()
		config.Tax.Brackets = []domain.TaxBracketConfig{{Rate: d("0.1")}, {Limit: decimalPtr("5"), Rate: d("0.2")}}
		_, err := BuildPortfolio(config)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tax settings")
	})
}
