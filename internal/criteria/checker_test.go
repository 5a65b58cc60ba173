package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobhawk-automation/internal/config"
	"go-jobhawk-automation/internal/models"
)

func baseConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Behavior.ExpectedLanguage = models.LanguageEnglish
	cfg.Behavior.CheckIgnore = true
	return cfg
}

func englishListing() *models.Listing {
	return &models.Listing{
		Title:    "Software Engineer",
		Company:  "Acme",
		Location: "Remote, US",
		URL:      "https://example.com/jobs/1",
		Language: models.LanguageEnglish,
	}
}

func TestIdealGateBeatsIgnore(t *testing.T) {
	cfg := baseConfig()
	cfg.Behavior.CheckIdeal = true
	cfg.Ideal.Titles = []config.Phrase{{"software engineer"}}
	cfg.Ignore.Companies = []config.Phrase{{"acme"}}

	app := NewChecker(cfg).Check(englishListing())

	assert.True(t, app.Applied)
	assert.Nil(t, app.IgnoreType)
}

func TestNotInIdeal(t *testing.T) {
	cfg := baseConfig()
	cfg.Behavior.CheckIdeal = true
	cfg.Ideal.Titles = []config.Phrase{{"data scientist"}}

	app := NewChecker(cfg).Check(englishListing())

	assert.False(t, app.Applied)
	assert.Equal(t, models.IgnoreTypeNotInIdeal, *app.IgnoreType)
	assert.Nil(t, app.IgnoreCategory)
	assert.Nil(t, app.IgnoreTerm)
}

func TestLanguageMismatch(t *testing.T) {
	cfg := baseConfig()
	listing := englishListing()
	listing.Language = models.LanguageFrench

	app := NewChecker(cfg).Check(listing)

	assert.False(t, app.Applied)
	assert.Equal(t, models.IgnoreTypeLanguage, *app.IgnoreType)
	assert.Equal(t, models.IgnoreCategoryLanguage, *app.IgnoreCategory)
	assert.Equal(t, "French", *app.IgnoreTerm)
}

func TestTitleIgnoreBoundary(t *testing.T) {
	cfg := baseConfig()
	cfg.Ignore.Titles = []config.Phrase{{"senior"}}

	listing := englishListing()
	listing.Title = "Senior Software Engineer"
	app := NewChecker(cfg).Check(listing)
	assert.False(t, app.Applied)
	assert.Equal(t, models.IgnoreCategoryTitle, *app.IgnoreCategory)
	assert.Equal(t, "senior", *app.IgnoreTerm)

	listing = englishListing()
	listing.Title = "Seniority Analyst"
	app = NewChecker(cfg).Check(listing)
	assert.True(t, app.Applied, "word boundary must not match inside a longer word")
}

func TestConjunctivePhrase(t *testing.T) {
	cfg := baseConfig()
	cfg.Ignore.Titles = []config.Phrase{{"embedded", "contractor"}}

	listing := englishListing()
	listing.Title = "Embedded Firmware Engineer"
	app := NewChecker(cfg).Check(listing)
	assert.True(t, app.Applied, "only one part of a conjunctive phrase matched")

	listing.Title = "Embedded Engineer (Contractor)"
	app = NewChecker(cfg).Check(listing)
	assert.False(t, app.Applied)
}

func TestPayBand(t *testing.T) {
	cfg := baseConfig()
	min := 60000.0
	cfg.Search.Salary.Min = &min

	listing := englishListing()
	maxPay := 50000.0
	listing.MaxPay = &maxPay
	app := NewChecker(cfg).Check(listing)
	assert.False(t, app.Applied)
	assert.Equal(t, models.IgnoreCategoryLowPay, *app.IgnoreCategory)

	cfg = baseConfig()
	max := 150000.0
	cfg.Search.Salary.Max = &max
	listing = englishListing()
	minPay := 200000.0
	listing.MinPay = &minPay
	app = NewChecker(cfg).Check(listing)
	assert.False(t, app.Applied)
	assert.Equal(t, models.IgnoreCategoryHighPay, *app.IgnoreCategory)
}

func TestPayBandSkippedWhenUnknown(t *testing.T) {
	cfg := baseConfig()
	min := 60000.0
	cfg.Search.Salary.Min = &min

	// listing exposes no pay: the rule must not fire either way
	app := NewChecker(cfg).Check(englishListing())
	assert.True(t, app.Applied)
}

func TestYoeBand(t *testing.T) {
	cfg := baseConfig()
	maxDesired := 5
	cfg.Search.Yoe.Maximum = &maxDesired

	listing := englishListing()
	minYoe := 8
	listing.MinYoe = &minYoe
	app := NewChecker(cfg).Check(listing)
	assert.False(t, app.Applied)
	assert.Equal(t, models.IgnoreCategoryHighYoe, *app.IgnoreCategory)

	cfg = baseConfig()
	minDesired := 3
	cfg.Search.Yoe.Minimum = &minDesired
	listing = englishListing()
	maxYoe := 1
	listing.MaxYoe = &maxYoe
	app = NewChecker(cfg).Check(listing)
	assert.False(t, app.Applied)
	assert.Equal(t, models.IgnoreCategoryLowYoe, *app.IgnoreCategory)
}

func TestDescriptionIgnoreOnlyOnFullListing(t *testing.T) {
	cfg := baseConfig()
	cfg.Ignore.Descriptions = []config.Phrase{{"clearance"}}

	app := NewChecker(cfg).Check(englishListing())
	assert.True(t, app.Applied, "brief listing has no description to check")

	listing := englishListing()
	desc := "Active security clearance required"
	listing.Description = &desc
	app = NewChecker(cfg).Check(listing)
	assert.False(t, app.Applied)
	assert.Equal(t, models.IgnoreCategoryDescription, *app.IgnoreCategory)
}

func TestTermMatches(t *testing.T) {
	tests := []struct {
		term    string
		subject string
		want    bool
	}{
		{"senior", "Senior Software Engineer", true},
		{"senior", "seniority", false},
		{"intern", "intern", true},
		{"c++", "C++ Developer", true},
		{"go", "Django Developer", false},
		{"go", "Go Developer", true},
		{"remote", "Hybrid (Remote) Optional", true},
		{"", "anything", false},
	}
	for _, tt := range tests {
		if got := termMatches(tt.term, tt.subject); got != tt.want {
			t.Errorf("termMatches(%q, %q) = %v, want %v", tt.term, tt.subject, got, tt.want)
		}
	}
}
