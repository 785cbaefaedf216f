package portfolio

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/rpsim/internal/account"
	"github.com/rgehrsitz/rpsim/internal/calendar"
	"github.com/rgehrsitz/rpsim/internal/domain"
	"github.com/rgehrsitz/rpsim/internal/tax"
	"github.com/shopspring/decimal"
)

// State is everything a simulation carries from one day to the next.
// Balances and Ledgers are indexed like Portfolio.Accounts.
type State struct {
	Date     time.Time
	Balances []decimal.Decimal
	Ledgers  []Ledger

	// YearToDate accumulates taxable amounts since the last settlement.
	YearToDate tax.Totals

	// LastReturn is the most recent annual settlement, if any.
	LastReturn *tax.Return
}

// Clone returns a deep copy that can be stepped independently
func (s *State) Clone() *State {
	c := &State{
		Date:       s.Date,
		Balances:   slices.Clone(s.Balances),
		Ledgers:    slices.Clone(s.Ledgers),
		YearToDate: s.YearToDate,
	}
	if s.LastReturn != nil {
		r := *s.LastReturn
		c.LastReturn = &r
	}
	return c
}

// NewState returns the opening state of a run on start: every account holds
// its initial deposit and no gains are tracked.
func (p *Portfolio) NewState(start time.Time) *State {
	s := &State{
		Date:     calendar.Truncate(start),
		Balances: make([]decimal.Decimal, len(p.accounts)),
		Ledgers:  make([]Ledger, len(p.accounts)),
	}
	for i, a := range p.accounts {
		_, amount := a.InitialDeposit()
		s.Balances[i] = amount
	}
	return s
}

// Step simulates the day s.Date, advances s to the next day and returns the
// closing record. The order within a day is: account assessments, IRA
// distributions, transfers, then the annual tax settlement on 1 January.
//
// s must have been created for this portfolio and the portfolio must be valid.
func (p *Portfolio) Step(s *State) domain.Record {
	return p.step(s, p.logger())
}

func (p *Portfolio) step(s *State, log Logger) domain.Record {
	date := s.Date

	for i, a := range p.accounts {
		as := a.Assess(date, s.Balances[i])
		s.Balances[i] = s.Balances[i].Add(as.NetChange())
		s.YearToDate.AddAssessment(as, a.Kind().TaxTreatment() == account.OrdinaryIncome)
		s.Ledgers[i].Accumulate(as.CapitalGains)
	}

	for _, t := range p.distributions {
		actual := p.settle(s, t, date, log)
		if p.accounts[p.index[t.Source]].Kind().TaxTreatment() == account.OrdinaryIncome {
			s.YearToDate.IRADistributions = s.YearToDate.IRADistributions.Add(actual)
		}
	}

	for _, t := range p.transfers {
		actual := p.settle(s, t, date, log)
		src := p.index[t.Source]
		s.YearToDate.CapitalGains = s.YearToDate.CapitalGains.Add(s.Ledgers[src].Realize(actual))
	}

	taxes := decimal.Zero
	if calendar.FirstOfYear(date) {
		worksheet := s.YearToDate.Worksheet(p.taxCalc.StandardDeduction)
		s.YearToDate = tax.Totals{}
		ret := p.taxCalc.Prepare(worksheet)
		s.LastReturn = &ret
		taxes = ret.AmountOwed

		primary := p.index[p.primary]
		s.Balances[primary] = s.Balances[primary].Sub(taxes)
		log.Infof("%s tax settled against %s: taxable income %s, owed %s",
			date.Format(calendar.DateFormat), p.primary, ret.TaxableIncome.StringFixed(2), taxes.StringFixed(2))
	}

	rec := domain.Record{
		Date:     date,
		Balances: slices.Clone(s.Balances),
		Taxes:    taxes,
	}
	s.Date = calendar.NextDay(date)
	return rec
}

// settle moves the policy amount from source to destination, clamped so the
// source is not overdrawn, and returns the amount actually moved.
func (p *Portfolio) settle(s *State, t Transfer, date time.Time, log Logger) decimal.Decimal {
	amount := t.Policy.AssessBalance(date, s.Balances[p.index[t.Source]])
	if !amount.IsPositive() {
		return decimal.Zero
	}
	src, dst := p.index[t.Source], p.index[t.Destination]

	overdraw := decimal.Min(s.Balances[src].Sub(amount), decimal.Zero)
	actual := decimal.Max(amount.Add(overdraw), decimal.Zero)
	if overdraw.IsNegative() {
		log.Warnf("%s transfer %s -> %s clamped from %s to %s",
			date.Format(calendar.DateFormat), t.Source, t.Destination, amount.StringFixed(2), actual.StringFixed(2))
	}

	s.Balances[src] = s.Balances[src].Sub(actual)
	s.Balances[dst] = s.Balances[dst].Add(actual)
	return actual
}

// Run is a simulation in progress. A Run is not safe for concurrent use.
type Run struct {
	p     *Portfolio
	state *State
	id    string
	log   Logger
}

// Start validates the portfolio and begins a run on start
func (p *Portfolio) Start(start time.Time) (*Run, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	r := p.newRun(p.NewState(start))
	r.log.Infof("starting on %s with %d accounts, %d transfers, %d distributions",
		r.state.Date.Format(calendar.DateFormat), len(p.accounts), len(p.transfers), len(p.distributions))
	return r, nil
}

// Resume continues a run from a previously cloned state
func (p *Portfolio) Resume(s *State) (*Run, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(s.Balances) != len(p.accounts) || len(s.Ledgers) != len(p.accounts) {
		return nil, fmt.Errorf("state has %d balances for %d accounts", len(s.Balances), len(p.accounts))
	}
	r := p.newRun(s.Clone())
	r.log.Infof("resuming on %s", r.state.Date.Format(calendar.DateFormat))
	return r, nil
}

func (p *Portfolio) newRun(s *State) *Run {
	id := uuid.NewString()
	return &Run{
		p:     p,
		state: s,
		id:    id,
		log:   runLogger{id: id, logger: p.logger()},
	}
}

// ID identifies the run in log output
func (r *Run) ID() string { return r.id }

// State returns a copy of the current state
func (r *Run) State() *State { return r.state.Clone() }

// Next simulates one day and returns its record. A run never ends.
func (r *Run) Next() domain.Record {
	return r.p.step(r.state, r.log)
}

// Records yields one record per day until the consumer stops
func (r *Run) Records() iter.Seq[domain.Record] {
	return func(yield func(domain.Record) bool) {
		for {
			if !yield(r.Next()) {
				return
			}
		}
	}
}

// Take simulates n days from start and returns their records
func (p *Portfolio) Take(start time.Time, n int) ([]domain.Record, error) {
	run, err := p.Start(start)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, max(n, 0))
	for i := 0; i < n; i++ {
		records = append(records, run.Next())
	}
	return records, nil
}
