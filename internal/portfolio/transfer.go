package portfolio

import (
	"github.com/rgehrsitz/rpsim/internal/revenue"
)

// Transfer moves money between two accounts of a portfolio. The policy sees
// the balance of the source account.
type Transfer struct {
	Policy      revenue.BalancePayment
	Source      string
	Destination string
}

// NewTransfer creates a transfer driven by a fixed payment schedule
func NewTransfer(p revenue.Payment, source, destination string) Transfer {
	return Transfer{Policy: revenue.BalanceAware(p), Source: source, Destination: destination}
}

// NewBalanceTransfer creates a transfer whose amount depends on the source
// balance, such as a required minimum distribution.
func NewBalanceTransfer(p revenue.BalancePayment, source, destination string) Transfer {
	return Transfer{Policy: p, Source: source, Destination: destination}
}
