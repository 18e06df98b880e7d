package core

import "strings"

// TypeAll matches both transaction types in a Filter.
const TypeAll = "all"

// Filter is the transaction filter specification. Every field is optional;
// an unset field places no restriction. Active predicates combine with AND.
type Filter struct {
	StartDate  string // inclusive, YYYY-MM-DD
	EndDate    string // inclusive
	StartTime  string // inclusive, HH:mm, time-of-day independent of date
	EndTime    string // inclusive
	MinAmount  *int64 // inclusive, cents
	MaxAmount  *int64 // inclusive, cents
	Type       string // "income", "expense", "all" or empty
	Categories []string
	Search     string // case-insensitive substring of note OR category
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.StartDate == "" && f.EndDate == "" &&
		f.StartTime == "" && f.EndTime == "" &&
		f.MinAmount == nil && f.MaxAmount == nil &&
		(f.Type == "" || f.Type == TypeAll) &&
		len(f.Categories) == 0 && f.Search == ""
}

// Matches reports whether a single transaction satisfies every active
// predicate. Date and time bounds compare lexicographically, which is exact
// for the ISO forms the domain validates.
func (f Filter) Matches(t Transaction) bool {
	if f.StartDate != "" && t.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && t.Date > f.EndDate {
		return false
	}
	if f.StartTime != "" && t.Time < f.StartTime {
		return false
	}
	if f.EndTime != "" && t.Time > f.EndTime {
		return false
	}
	if f.MinAmount != nil && t.Amount.Cents < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && t.Amount.Cents > *f.MaxAmount {
		return false
	}
	if f.Type != "" && f.Type != TypeAll && string(t.Type) != f.Type {
		return false
	}
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if c == t.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Note), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) {
			return false
		}
	}
	return true
}

// Apply returns the subset of txs matching the filter, preserving input
// order. The result is always a fresh slice; the input is never mutated.
func (f Filter) Apply(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
