package calendar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/teambition/rrule-go"
)

// defaultDTStart anchors rules that omit DTSTART so that evaluation never
// depends on the wall clock.
const defaultDTStart = "DTSTART:20230101T000000Z"

// rruleSchedule evaluates an RRULE set one calendar year at a time. Expanded
// years are memoised, which keeps the predicate deterministic while avoiding a
// full re-expansion from DTSTART on every call.
type rruleSchedule struct {
	set   *rrule.Set
	mu    sync.Mutex
	years map[int]map[int]struct{}
}

// FromRRule builds a predicate from RFC 5545 recurrence text, for example
//
//	DTSTART:20230106T000000Z
//	RRULE:FREQ=WEEKLY;INTERVAL=2;BYDAY=FR
//
// A bare "FREQ=..." line is accepted as an RRULE. Rules without DTSTART are
// anchored to 1 January of ReferenceYear.
func FromRRule(text string) (Predicate, error) {
	text = normalizeRRule(text)
	set, err := rrule.StrToRRuleSet(text)
	if err != nil {
		return nil, fmt.Errorf("parse rrule: %w", err)
	}
	s := &rruleSchedule{set: set, years: make(map[int]map[int]struct{})}
	return s.occursOn, nil
}

func normalizeRRule(text string) string {
	lines := strings.Split(strings.TrimSpace(strings.ReplaceAll(text, `\n`, "\n")), "\n")
	hasStart := false
	for i, line := range lines {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "DTSTART"):
			hasStart = true
		case strings.HasPrefix(upper, "FREQ="):
			line = "RRULE:" + line
		}
		lines[i] = line
	}
	if !hasStart {
		lines = append([]string{defaultDTStart}, lines...)
	}
	return strings.Join(lines, "\n")
}

func (s *rruleSchedule) occursOn(date time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, ok := s.years[date.Year()]
	if !ok {
		days = s.expand(date.Year())
		s.years[date.Year()] = days
	}
	_, hit := days[date.YearDay()]
	return hit
}

func (s *rruleSchedule) expand(year int) map[int]struct{} {
	days := make(map[int]struct{})
	from := Date(year, time.January, 1)
	to := Date(year+1, time.January, 1)
	for _, occurrence := range s.set.Between(from, to, true) {
		if occurrence.Year() != year {
			continue
		}
		days[occurrence.YearDay()] = struct{}{}
	}
	return days
}
