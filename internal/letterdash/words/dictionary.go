package words

import "strings"

// Rule describes how answers for a single category are judged once the
// content bank has no opinion. Keywords is the accept list, Rejects are
// substrings that disqualify an answer outright, Partial allows mutual
// substring matching instead of exact equality, and Predicate, when set,
// overrides keyword matching entirely.
type Rule struct {
	Keywords  []string
	Rejects   []string
	Partial   bool
	Predicate func(answer string) bool
}

type Dictionary map[string]Rule

// Lookup resolves the rule for a category name. Category names are
// case-insensitive.
func (d Dictionary) Lookup(category string) (Rule, bool) {
	rule, ok := d[Normalize(category)]
	return rule, ok
}

// Normalize lowercases and trims a word the way every comparison in
// this package expects it.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (r Rule) matches(answer string) bool {
	for _, reject := range r.Rejects {
		if strings.Contains(answer, Normalize(reject)) {
			return false
		}
	}

	if r.Predicate != nil {
		return r.Predicate(answer)
	}

	for _, keyword := range r.Keywords {
		kw := Normalize(keyword)
		if r.Partial {
			if strings.Contains(answer, kw) || strings.Contains(kw, answer) {
				return true
			}
		} else if answer == kw {
			return true
		}
	}

	return false
}
