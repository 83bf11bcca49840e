package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s used for case-insensitive search and
// ordering. A fresh Caser is used per call because Casers are not safe for
// concurrent use.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// SearchTerm is a normalised, case-folded search string. The zero value
// matches everything.
type SearchTerm string

// NewSearchTerm trims and folds raw.
func NewSearchTerm(raw string) SearchTerm {
	return SearchTerm(Fold(strings.TrimSpace(raw)))
}

// Blank reports whether the term filters nothing.
func (t SearchTerm) Blank() bool { return t == "" }

// MatchesAny reports whether any field contains the term. Empty fields never
// match.
func (t SearchTerm) MatchesAny(fields ...string) bool {
	if t.Blank() {
		return true
	}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(Fold(f), string(t)) {
			return true
		}
	}
	return false
}

// SearchFields returns the contact fields a search term is matched against.
// BusinessName must already be resolved.
func (c Contact) SearchFields() []string {
	return []string{c.FirstName, c.Surname, c.PreferredName, c.Name, c.Email, c.Phone, c.BusinessName, c.MemberID}
}

// SearchFields returns the member fields a search term is matched against.
func (m Member) SearchFields() []string {
	return []string{m.BusinessName, m.Email, m.Phone, m.MemberID}
}

// NewUntrimmedSearchTerm folds raw without trimming surrounding whitespace.
// Member search matches the term exactly as typed.
func NewUntrimmedSearchTerm(raw string) SearchTerm {
	return SearchTerm(Fold(raw))
}
