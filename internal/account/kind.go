package account

import (
	"fmt"

	"github.com/rgehrsitz/rpsim/internal/domain"
)

// Kind tags an account variant
type Kind int

const (
	Deposit Kind = iota
	Investment
	TraditionalIRA
	Traditional401K
	HealthSavingsAccount
	RothIRA
)

func (k Kind) String() string {
	switch k {
	case Deposit:
		return domain.AccountTypeDeposit
	case Investment:
		return domain.AccountTypeInvestment
	case TraditionalIRA:
		return domain.AccountTypeTraditionalIRA
	case Traditional401K:
		return domain.AccountTypeTraditional401K
	case HealthSavingsAccount:
		return domain.AccountTypeHSA
	case RothIRA:
		return domain.AccountTypeRothIRA
	default:
		return "unknown"
	}
}

// ParseKind maps a configuration account type to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case domain.AccountTypeDeposit:
		return Deposit, nil
	case domain.AccountTypeInvestment:
		return Investment, nil
	case domain.AccountTypeTraditionalIRA:
		return TraditionalIRA, nil
	case domain.AccountTypeTraditional401K:
		return Traditional401K, nil
	case domain.AccountTypeHSA:
		return HealthSavingsAccount, nil
	case domain.AccountTypeRothIRA:
		return RothIRA, nil
	default:
		return 0, fmt.Errorf("unknown account type %q", s)
	}
}

// IsRetirement reports whether the kind belongs to the IRA family
func (k Kind) IsRetirement() bool {
	return k >= TraditionalIRA && k <= RothIRA
}

// TaxTreatment describes how money leaving an account is taxed
// Ordinary: fully taxable as ordinary income (traditional IRA, 401k)
// TaxFree: no current year tax impact (Roth, qualified HSA)
// CapitalGains: only the realized gains portion is taxed (taxable accounts)
type TaxTreatment int

const (
	TaxFree TaxTreatment = iota
	OrdinaryIncome
	CapitalGains
)

func (tt TaxTreatment) String() string {
	switch tt {
	case TaxFree:
		return "tax_free"
	case OrdinaryIncome:
		return "ordinary"
	case CapitalGains:
		return "capital_gains"
	default:
		return "unknown"
	}
}

// TaxTreatment returns the treatment of withdrawals from accounts of kind k
func (k Kind) TaxTreatment() TaxTreatment {
	switch k {
	case TraditionalIRA, Traditional401K:
		return OrdinaryIncome
	case HealthSavingsAccount, RothIRA:
		return TaxFree
	default:
		return CapitalGains
	}
}
