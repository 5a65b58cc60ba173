package criteria

import (
	"regexp"
	"strings"

	"go-jobhawk-automation/internal/config"
)

// phraseMatches reports whether a configured phrase entry matches the
// subject. Multi-part entries are conjunctive: every part must match on
// its own.
func phraseMatches(phrase config.Phrase, subject string) bool {
	if len(phrase) == 0 {
		return false
	}
	for _, part := range phrase {
		if !termMatches(part, subject) {
			return false
		}
	}
	return true
}

// termMatches applies the boundary rule: the term must appear in the
// subject delimited by non-word characters or string edges (optionally
// wrapped in parentheses), or equal the subject outright. Comparison is
// case-insensitive with both sides trimmed.
func termMatches(term, subject string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	subject = strings.ToLower(strings.TrimSpace(subject))
	if term == "" {
		return false
	}
	if term == subject {
		return true
	}
	pattern := `(?:\A|[^0-9a-z_])\(?` + regexp.QuoteMeta(term) + `\)?(?:[^0-9a-z_]|\z)`
	matched, err := regexp.MatchString(pattern, subject)
	if err != nil {
		return false
	}
	return matched
}
