package calendar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RRulePrefix marks a schedule name that carries an inline RRULE.
const RRulePrefix = "rrule:"

var builtins = map[string]Predicate{
	"every_day":       EveryDay,
	"never":           Never,
	"friday_biweekly": FridayBiweekly,
	"monday_biweekly": MondayBiweekly,
	"first_of_month":  FirstOfMonth,
	"first_of_year":   FirstOfYear,
	"semiannual":      Semiannual,
	"quarterly":       Quarterly,
	"annual":          Annual,
	"annual_in_may":   AnnualInMay,
	"trading_day":     TradingDay,
}

// Names lists the built-in schedule names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins)+1)
	for name := range builtins {
		names = append(names, name)
	}
	names = append(names, "monthly_on_<day>")
	sort.Strings(names)
	return names
}

// Lookup resolves a schedule name to a predicate. Accepted forms are the
// built-in names, "monthly_on_<day>" (with an optional ordinal suffix such as
// "monthly_on_25th") and "rrule:<RFC 5545 text>".
func Lookup(name string) (Predicate, error) {
	name = strings.TrimSpace(name)
	if p, ok := builtins[name]; ok {
		return p, nil
	}
	if strings.HasPrefix(name, "monthly_on_") {
		day, err := parseDayOfMonth(strings.TrimPrefix(name, "monthly_on_"))
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", name, err)
		}
		return MonthlyOn(day), nil
	}
	if strings.HasPrefix(strings.ToLower(name), RRulePrefix) {
		return FromRRule(name[len(RRulePrefix):])
	}
	return nil, fmt.Errorf("unknown schedule %q", name)
}

func parseDayOfMonth(s string) (int, error) {
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		s = strings.TrimSuffix(s, suffix)
	}
	day, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid day of month: %w", err)
	}
	if day < 1 || day > 31 {
		return 0, fmt.Errorf("day of month must be between 1 and 31, got %d", day)
	}
	return day, nil
}
