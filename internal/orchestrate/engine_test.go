package orchestrate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobhawk-automation/internal/browser"
	"go-jobhawk-automation/internal/config"
	"go-jobhawk-automation/internal/criteria"
	"go-jobhawk-automation/internal/dedup"
	"go-jobhawk-automation/internal/models"
	"go-jobhawk-automation/internal/scraper"
)

type fakeNode struct{}

func (fakeNode) Find(string) (browser.Node, bool, error)     { return nil, false, nil }
func (fakeNode) FindAll(string) ([]browser.Node, error)      { return nil, nil }
func (fakeNode) Nth(string, int) (browser.Node, bool, error) { return nil, false, nil }
func (fakeNode) Text() (string, error)                       { return "", nil }
func (fakeNode) InnerHTML() (string, error)                  { return "", nil }
func (fakeNode) Attribute(string) (string, error)            { return "", nil }
func (fakeNode) Click() error                                { return nil }
func (fakeNode) ScrollIntoView() error                       { return nil }
func (fakeNode) IsVisible() (bool, error)                    { return true, nil }

type fakePage struct {
	fakeNode
	url        string
	title      string
	navigated  []string
	closed     int
	selectors  map[string]bool
	checkFinds int
}

func (p *fakePage) Find(selector string) (browser.Node, bool, error) {
	p.checkFinds++
	if p.selectors[selector] {
		return fakeNode{}, true, nil
	}
	return nil, false, nil
}

func (p *fakePage) URL() string { return p.url }
func (p *fakePage) Navigate(url string) error {
	p.navigated = append(p.navigated, url)
	return nil
}
func (p *fakePage) Refresh() error                   { return nil }
func (p *fakePage) MouseMove(float64, float64) error { return nil }
func (p *fakePage) Title() (string, error)           { return p.title, nil }
func (p *fakePage) TabCount() int                    { return 1 }
func (p *fakePage) CloseTabsAfter(int) error         { p.closed++; return nil }
func (p *fakePage) ScrollBy(int) error               { return nil }

type fakeOperator struct {
	alerts        []string
	interventions []string
}

func (o *fakeOperator) Alert(text string) error { o.alerts = append(o.alerts, text); return nil }
func (o *fakeOperator) ManualIntervention(reason string) error {
	o.interventions = append(o.interventions, reason)
	return nil
}

type fakeLimits struct {
	logged  []models.Platform
	lastAge time.Duration
	found   bool
}

func (l *fakeLimits) LogRateLimit(_ context.Context, _ string, p models.Platform) error {
	l.logged = append(l.logged, p)
	return nil
}

func (l *fakeLimits) LastRateLimitAge(context.Context, string, models.Platform) (time.Duration, bool, error) {
	return l.lastAge, l.found, nil
}

// emptyBoard reports zero results so ScrapeQuery returns immediately.
type emptyBoard struct{}

func (emptyBoard) Name() models.Platform { return models.PlatformLinkedIn }
func (emptyBoard) Paced() bool           { return false }
func (emptyBoard) ZeroResults(time.Duration) (bool, error) {
	return true, nil
}
func (emptyBoard) Advance(total, index int) (int, int) { return total + 1, index + 1 }
func (emptyBoard) ListingAt(int) (browser.Node, scraper.FetchOutcome, error) {
	return nil, scraper.FetchNotFound, nil
}
func (emptyBoard) HasNextPage() (bool, error) { return false, nil }
func (emptyBoard) NextPage() error            { return nil }
func (emptyBoard) Brief(browser.Node) (*models.Listing, error) {
	return nil, scraper.ErrStaleNode
}
func (emptyBoard) OpenListing(browser.Node, time.Duration) error { return nil }
func (emptyBoard) DetailsPane(time.Duration) (browser.Node, error) {
	return nil, scraper.ErrDetailsAbsent
}
func (emptyBoard) Full(browser.Node, browser.Node) (*models.Listing, error) {
	return nil, scraper.ErrStaleNode
}

type nullStore struct{}

func (nullStore) UpsertListing(context.Context, *models.Listing) error         { return nil }
func (nullStore) UpsertApplication(context.Context, *models.Application) error { return nil }

func testEngine(page *fakePage, op *fakeOperator, limits *fakeLimits) *Engine {
	cfg := &config.Config{}
	cfg.Search.Terms.Match = []string{"golang", "backend"}
	driver := scraper.NewPageDriver(
		emptyBoard{}, page, cfg, criteria.NewChecker(cfg),
		nullStore{}, dedup.NewSession(), nil,
		func() (float64, error) { return 20, nil }, nil,
	)
	return &Engine{
		name:      models.PlatformLinkedIn,
		page:      page,
		cfg:       cfg,
		driver:    driver,
		buildURL:  func(_ *config.Config, term string) string { return "https://example.com/jobs?q=" + term },
		urlMarker: "example.com/jobs",
		login: loginSpec{
			url:      "https://example.com/feed",
			loggedIn: "#nav",
		},
		limits:   limits,
		operator: op,
		address:  "10.0.0.5",
	}
}

func TestLoginSucceedsWhenMarkerPresent(t *testing.T) {
	page := &fakePage{selectors: map[string]bool{"#nav": true}}
	op := &fakeOperator{}
	eng := testEngine(page, op, &fakeLimits{})

	require.NoError(t, eng.Login(context.Background()))
	assert.Equal(t, []string{"https://example.com/feed"}, page.navigated)
	assert.Empty(t, op.interventions)
}

func TestLoginAlertsOnceOnCheckpoint(t *testing.T) {
	page := &fakePage{selectors: map[string]bool{}}
	op := &fakeOperator{}
	eng := testEngine(page, op, &fakeLimits{})

	// Checkpoint stays up for a few polls, then the marker appears as
	// if someone solved it.
	polls := 0
	eng.login.checkpoint = func(browser.Page) (bool, error) {
		polls++
		if polls >= 3 {
			page.selectors["#nav"] = true
		}
		return true, nil
	}

	require.NoError(t, eng.Login(context.Background()))
	assert.Len(t, op.interventions, 1)
}

func TestLoginWarnsAboutRecentRateLimit(t *testing.T) {
	page := &fakePage{selectors: map[string]bool{"#nav": true}}
	op := &fakeOperator{}
	limits := &fakeLimits{lastAge: 2 * time.Hour, found: true}
	eng := testEngine(page, op, limits)

	require.NoError(t, eng.Login(context.Background()))
	require.Len(t, op.alerts, 1)
	assert.Contains(t, op.alerts[0], "rate limited this address")
}

func TestLoginHonorsContextCancellation(t *testing.T) {
	page := &fakePage{selectors: map[string]bool{}}
	eng := testEngine(page, &fakeOperator{}, &fakeLimits{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, eng.Login(ctx), context.Canceled)
}

func TestScrapeVisitsEveryTerm(t *testing.T) {
	page := &fakePage{url: "https://example.com/jobs?q=golang"}
	eng := testEngine(page, &fakeOperator{}, &fakeLimits{})

	require.NoError(t, eng.Scrape(context.Background()))
	assert.Equal(t, []string{
		"https://example.com/jobs?q=golang",
		"https://example.com/jobs?q=backend",
	}, page.navigated)
}

func TestHandleFatalRecordsRateLimit(t *testing.T) {
	page := &fakePage{}
	op := &fakeOperator{}
	limits := &fakeLimits{}
	eng := testEngine(page, op, limits)

	err := eng.handleFatal(context.Background(), &scraper.RateLimitedError{Platform: models.PlatformLinkedIn})
	var rateLimited *scraper.RateLimitedError
	require.ErrorAs(t, err, &rateLimited)
	assert.Equal(t, []models.Platform{models.PlatformLinkedIn}, limits.logged)
	require.Len(t, op.alerts, 1)
	assert.Contains(t, op.alerts[0], "10.0.0.5")
}

func TestHandleFatalClosesTabsOnOverload(t *testing.T) {
	page := &fakePage{}
	op := &fakeOperator{}
	eng := testEngine(page, op, &fakeLimits{})

	err := eng.handleFatal(context.Background(), &scraper.MemoryOverloadError{UsedPercent: 93.5})
	var overload *scraper.MemoryOverloadError
	require.ErrorAs(t, err, &overload)
	assert.Equal(t, 1, page.closed)
	assert.Len(t, op.alerts, 1)
}
