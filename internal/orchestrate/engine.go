package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go-jobhawk-automation/internal/browser"
	"go-jobhawk-automation/internal/config"
	"go-jobhawk-automation/internal/models"
	"go-jobhawk-automation/internal/scraper"
)

var (
	// ErrLoginTimeout means no logged-in marker appeared and nobody
	// resolved the checkpoint in time
	ErrLoginTimeout = errors.New("login never completed")

	// ErrQueryNeverResolved means navigation to a query URL never landed
	// on the results page
	ErrQueryNeverResolved = errors.New("query url never resolved")
)

const (
	loginTimeout     = 5 * time.Minute
	queryURLTimeout  = 60 * time.Second
	loginPollStep    = 500 * time.Millisecond
	queryURLPollStep = 500 * time.Millisecond
)

// Operator is the channel for anything that needs a human: checkpoints,
// rate limits, memory pressure.
type Operator interface {
	Alert(text string) error
	ManualIntervention(reason string) error
}

// RateLimitStore records rate-limit blocks against this host.
type RateLimitStore interface {
	LogRateLimit(ctx context.Context, address string, platform models.Platform) error
	LastRateLimitAge(ctx context.Context, address string, platform models.Platform) (time.Duration, bool, error)
}

// loginSpec is the per-platform recipe for confirming a session.
type loginSpec struct {
	url        string
	loggedIn   string
	checkpoint func(browser.Page) (bool, error)
}

// Engine runs one platform end to end: confirm the session, then walk
// every configured search term through the page driver.
type Engine struct {
	name     models.Platform
	page     browser.Page
	cfg      *config.Config
	driver   *scraper.PageDriver
	buildURL func(*config.Config, string) string
	// urlMarker confirms that navigation landed on the results page
	urlMarker string
	login     loginSpec
	limits    RateLimitStore
	operator  Operator
	address   string
}

func (e *Engine) Name() models.Platform { return e.name }

func (e *Engine) JobsParsed() int { return e.driver.JobsParsed() }

// Login navigates to the platform and polls for a logged-in marker.
// Checkpoints (captcha, verification) alert the operator once and keep
// polling; cookies plus a human get the session through.
func (e *Engine) Login(ctx context.Context) error {
	log.Printf("🔐 Confirming %s session...", e.name)
	e.warnRecentRateLimit(ctx)
	if err := e.page.Navigate(e.login.url); err != nil {
		return fmt.Errorf("navigating to %s login: %w", e.name, err)
	}

	alerted := false
	deadline := time.Now().Add(loginTimeout)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok, err := e.page.Find(e.login.loggedIn); err != nil {
			return err
		} else if ok {
			log.Printf("✅ %s session confirmed.", e.name)
			return nil
		}
		if e.login.checkpoint != nil {
			blocked, err := e.login.checkpoint(e.page)
			if err != nil {
				return err
			}
			if blocked && !alerted {
				alerted = true
				e.intervene(fmt.Sprintf("%s hit a security checkpoint. Please solve it in the open browser.", e.name))
			}
		}
		time.Sleep(loginPollStep)
	}
	return fmt.Errorf("%s: %w", e.name, ErrLoginTimeout)
}

// Scrape walks every configured search term. A term whose results page
// never resolves is skipped; a rate limit or unresolved memory overload
// halts the whole platform.
func (e *Engine) Scrape(ctx context.Context) error {
	terms := e.cfg.Search.Terms.Match
	if len(terms) == 0 {
		terms = []string{""}
	}
	for _, term := range terms {
		if err := ctx.Err(); err != nil {
			return err
		}
		queryURL := e.buildURL(e.cfg, term)
		log.Printf("🔑 %s query %q", e.name, term)
		log.Printf("  🌐 %s", queryURL)
		if err := e.page.Navigate(queryURL); err != nil {
			log.Printf("  ⚠️ Failed to load query page: %v", err)
			continue
		}
		if err := e.waitForQueryURL(ctx); err != nil {
			log.Printf("  ⚠️ %v. Skipping term...", err)
			continue
		}
		if err := browser.HumanScroll(e.page); err != nil {
			log.Printf("  ⚠️ Warmup scroll failed: %v", err)
		}

		if err := e.driver.ScrapeQuery(ctx); err != nil {
			return e.handleFatal(ctx, err)
		}
	}
	return nil
}

func (e *Engine) handleFatal(ctx context.Context, err error) error {
	var rateLimited *scraper.RateLimitedError
	if errors.As(err, &rateLimited) {
		log.Printf("⛔ Rate limited by %s on address %s", rateLimited.Platform, e.address)
		if e.limits != nil {
			if dbErr := e.limits.LogRateLimit(ctx, e.address, rateLimited.Platform); dbErr != nil {
				log.Printf("⚠️ Could not record rate limit: %v", dbErr)
			}
		}
		e.alert(fmt.Sprintf("Rate limited by %s from %s. Halting the platform.", rateLimited.Platform, e.address))
		return err
	}

	var overload *scraper.MemoryOverloadError
	if errors.As(err, &overload) {
		log.Printf("🧠 Unresolved memory overload (%.1f%%). Closing extra tabs and halting %s.", overload.UsedPercent, e.name)
		if closeErr := e.page.CloseTabsAfter(1); closeErr != nil {
			log.Printf("⚠️ Could not close extra tabs: %v", closeErr)
		}
		e.alert(fmt.Sprintf("Memory stayed above the limit on %s (%.1f%%). Platform halted.", e.name, overload.UsedPercent))
		return err
	}
	return err
}

// warnRecentRateLimit checks the block history for this address so a
// fresh run doesn't walk straight back into a cooldown.
func (e *Engine) warnRecentRateLimit(ctx context.Context) {
	if e.limits == nil {
		return
	}
	age, found, err := e.limits.LastRateLimitAge(ctx, e.address, e.name)
	if err != nil {
		log.Printf("⚠️ Could not check rate limit history: %v", err)
		return
	}
	if found && age < 24*time.Hour {
		log.Printf("⚠️ %s rate limited this address %s ago. Expect trouble.", e.name, age.Round(time.Minute))
		e.alert(fmt.Sprintf("Heads up: %s rate limited this address %s ago.", e.name, age.Round(time.Minute)))
	}
}

func (e *Engine) waitForQueryURL(ctx context.Context) error {
	deadline := time.Now().Add(queryURLTimeout)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.Contains(e.page.URL(), e.urlMarker) {
			return nil
		}
		time.Sleep(queryURLPollStep)
	}
	return fmt.Errorf("waiting for %q: %w", e.urlMarker, ErrQueryNeverResolved)
}

func (e *Engine) alert(msg string) {
	if e.operator == nil {
		return
	}
	if err := e.operator.Alert(msg); err != nil {
		log.Printf("⚠️ Could not reach operator channel: %v", err)
	}
}

func (e *Engine) intervene(reason string) {
	log.Printf("🧑‍💻 %s", reason)
	if e.operator == nil {
		return
	}
	if err := e.operator.ManualIntervention(reason); err != nil {
		log.Printf("⚠️ Could not reach operator channel: %v", err)
	}
}
