package portfolio

import (
	"github.com/shopspring/decimal"
)

// LedgerWindow is the number of daily entries a gain stays short-term
const LedgerWindow = 365

// Ledger tracks one account's accrued, unrealized capital gains. Each day's
// gain enters a fixed window; once it has been held for LedgerWindow days it
// matures from short-term to long-term.
//
// Ledger is a value type; copying it copies the whole window.
type Ledger struct {
	entries   [LedgerWindow]decimal.Decimal
	head      int
	size      int
	shortTerm decimal.Decimal
	longTerm  decimal.Decimal
}

// ShortTerm returns gains held for less than a year
func (l *Ledger) ShortTerm() decimal.Decimal { return l.shortTerm }

// LongTerm returns gains held for a year or more
func (l *Ledger) LongTerm() decimal.Decimal { return l.longTerm }

// Len returns the number of days in the window
func (l *Ledger) Len() int { return l.size }

// Accumulate records the capital gain of one day. When the window is full
// the oldest entry matures first.
func (l *Ledger) Accumulate(gain decimal.Decimal) {
	if l.size == LedgerWindow {
		matured := l.entries[l.head]
		l.entries[l.head] = decimal.Zero
		l.head = (l.head + 1) % LedgerWindow
		l.size--
		l.longTerm = l.longTerm.Add(matured)
		l.shortTerm = decimal.Max(l.shortTerm.Sub(matured), decimal.Zero)
	}
	l.entries[(l.head+l.size)%LedgerWindow] = gain
	l.size++
	l.shortTerm = l.shortTerm.Add(gain)
}

// Realize consumes gains for a sale, long-term first, and returns the gains
// realized. The result never exceeds the gains on hand.
func (l *Ledger) Realize(sale decimal.Decimal) decimal.Decimal {
	if !sale.IsPositive() {
		return decimal.Zero
	}
	overdraw := decimal.Min(l.longTerm.Add(l.shortTerm).Sub(sale), decimal.Zero)

	l.longTerm = l.longTerm.Sub(sale)
	if l.longTerm.IsNegative() {
		l.shortTerm = decimal.Max(l.shortTerm.Add(l.longTerm), decimal.Zero)
		l.longTerm = decimal.Zero
	}
	return sale.Add(overdraw)
}
