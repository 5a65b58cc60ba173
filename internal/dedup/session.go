package dedup

import (
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-jobhawk-automation/internal/models"
)

// Session remembers which listings this run has already handled, keyed
// by canonicalized title|company|location. It is never persisted; a new
// process starts empty. Clear exists for the memory-relief path, which
// trades a small risk of reprocessing for freed memory.
type Session struct {
	seen mapset.Set[string]
}

func NewSession() *Session {
	return &Session{seen: mapset.NewSet[string]()}
}

// Key canonicalizes a listing into its session dedup key
func Key(listing *models.Listing) string {
	return canonical(listing.Title) + "|" + canonical(listing.Company) + "|" + canonical(listing.Location)
}

func (s *Session) Seen(listing *models.Listing) bool {
	return s.seen.Contains(Key(listing))
}

func (s *Session) Add(listing *models.Listing) {
	s.seen.Add(Key(listing))
}

func (s *Session) Clear() {
	s.seen = mapset.NewSet[string]()
}

func (s *Session) Len() int {
	return s.seen.Cardinality()
}

// canonical lowercases, trims and strips diacritics so that re-rendered
// variants of the same card ("Montréal" vs "Montreal") dedup together
func canonical(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, str)
	if err != nil {
		result = str
	}
	return strings.ToLower(strings.TrimSpace(result))
}
