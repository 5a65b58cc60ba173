package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-jobhawk-automation/internal/browser"
	"go-jobhawk-automation/internal/config"
	"go-jobhawk-automation/internal/criteria"
	"go-jobhawk-automation/internal/dedup"
	"go-jobhawk-automation/internal/models"
)

// errRestartQuery tells ScrapeQuery to navigate back to the query URL
// and walk it again from the top. Index positions are not stable across
// a reload, so resuming mid-index is never attempted; the session dedup
// set keeps the re-walk from reprocessing finished listings.
var errRestartQuery = errors.New("restart current query")

const (
	zeroResultsTimeout = 30 * time.Second
	zeroResultsRetries = 3
	openListingTimeout = 10 * time.Second
	detailsTimeout     = 30 * time.Second
	maxQueryRestarts   = 3
)

// PageDriver runs the listing-walk state machine for one platform. The
// platform supplies DOM specifics through the Paginator and Extractor
// capabilities; everything else — dedup, criteria, persistence, apply
// handoff, memory watching, pacing — is shared here.
type PageDriver struct {
	platform Platform
	page     browser.Page
	cfg      *config.Config
	checker  *criteria.Checker
	store    Store
	session  *dedup.Session
	applier  Applier

	// memUsed samples system memory used percent; injectable for tests
	memUsed func() (float64, error)
	// alert surfaces operator-facing messages (manual intervention,
	// overload) without blocking the loop
	alert func(msg string)

	jobsParsed       int
	overloadRelieved bool
}

func NewPageDriver(
	platform Platform,
	page browser.Page,
	cfg *config.Config,
	checker *criteria.Checker,
	store Store,
	session *dedup.Session,
	applier Applier,
	memUsed func() (float64, error),
	alert func(msg string),
) *PageDriver {
	if alert == nil {
		alert = func(string) {}
	}
	return &PageDriver{
		platform: platform,
		page:     page,
		cfg:      cfg,
		checker:  checker,
		store:    store,
		session:  session,
		applier:  applier,
		memUsed:  memUsed,
		alert:    alert,
	}
}

func (d *PageDriver) JobsParsed() int {
	return d.jobsParsed
}

func (d *PageDriver) ResetJobsParsed() {
	d.jobsParsed = 0
}

// ScrapeQuery walks every listing the current query exposes. It returns
// nil when the result set is exhausted, and an error only for per-run
// fatal conditions (rate limit, unresolved overload, broken page state).
func (d *PageDriver) ScrapeQuery(ctx context.Context) error {
	// the current URL is the resolved query page; restarts navigate back
	// to it rather than refreshing, since a hijacked full-page render may
	// have carried the tab off the results page entirely
	queryURL := d.page.URL()
	restarts := 0
	for {
		err := d.walkListings(ctx)
		if !errors.Is(err, errRestartQuery) {
			return err
		}
		restarts++
		if restarts > maxQueryRestarts {
			return fmt.Errorf("%w (%d attempts)", ErrQueryUnrecoverable, restarts)
		}
		log.Println("  🔄 Reloading and restarting the current query...")
		if navErr := d.page.Navigate(queryURL); navErr != nil {
			return fmt.Errorf("reload during query restart: %w", navErr)
		}
	}
}

func (d *PageDriver) walkListings(ctx context.Context) error {
	zero, err := d.zeroResults()
	if err != nil {
		return err
	}
	if zero {
		log.Println("  0️⃣ 0 results. Skipping query...")
		return nil
	}

	totalTried, index := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		totalTried, index = d.platform.Advance(totalTried, index)
		log.Printf("  🔢 Attempting job listing %d (index %d)...", totalTried, index)

		li, outcome, err := d.platform.ListingAt(index)
		if err != nil {
			if errors.Is(err, ErrSomethingWentWrong) || errors.Is(err, ErrPageFroze) ||
				errors.Is(err, ErrZeroResultsBug) || errors.Is(err, ErrOpensInWindow) {
				log.Printf("  ⚠️ %v", err)
				return errRestartQuery
			}
			return err
		}

		switch outcome {
		case FetchAdvertisement:
			log.Println("    📢 Skipping advertisement slot.")
			continue
		case FetchNotFound:
			more, err := d.platform.HasNextPage()
			if err != nil {
				return err
			}
			if !more {
				log.Println("  🏁 No job listings left -- finished with query.")
				return nil
			}
			log.Println("  ➡️ Advancing to next page...")
			if err := d.platform.NextPage(); err != nil {
				if errors.Is(err, ErrZeroResultsBug) || errors.Is(err, ErrPageFroze) {
					return errRestartQuery
				}
				return err
			}
			continue
		}

		if err := li.ScrollIntoView(); err != nil {
			log.Printf("    ⚠️ Could not scroll listing into view: %v", err)
		}

		brief, err := d.platform.Brief(li)
		if err != nil {
			if errors.Is(err, ErrStaleNode) {
				log.Println("    ⚠️ Listing went stale mid-build. Skipping...")
				continue
			}
			return fmt.Errorf("building brief listing: %w", err)
		}
		brief.Print()

		if d.session.Seen(brief) {
			log.Println("    👀 Already handled this session. Skipping...")
			continue
		}
		d.session.Add(brief)

		app := d.checker.Check(brief)
		if !app.Applied || !d.cfg.Behavior.FullScrape {
			if err := d.persist(ctx, brief, app); err != nil {
				return err
			}
			if !app.Applied {
				continue
			}
			if !d.cfg.Behavior.FullScrape {
				d.finishListing()
				if err := d.checkMemory(); err != nil {
					return err
				}
				continue
			}
		}

		if err := d.drillIn(ctx, li, brief); err != nil {
			return err
		}
	}
}

// drillIn clicks into a listing that passed brief filtering and handles
// the full build, second filter pass, persistence and apply handoff.
func (d *PageDriver) drillIn(ctx context.Context, li browser.Node, brief *models.Listing) error {
	startTabs := d.page.TabCount()

	if err := d.platform.OpenListing(li, openListingTimeout); err != nil {
		switch {
		case errors.Is(err, ErrPageFroze):
			return errRestartQuery
		case errors.Is(err, ErrOpensInWindow):
			// the tab may have navigated away from the results page, so
			// skipping to the next index would walk a dead list. Clean up
			// and re-walk; the session set skips finished listings.
			log.Println("    🪟 Listing opened a full-page render. Cleaning up and restarting the query...")
			if closeErr := d.page.CloseTabsAfter(startTabs); closeErr != nil {
				return closeErr
			}
			return errRestartQuery
		default:
			return err
		}
	}

	details, err := d.platform.DetailsPane(detailsTimeout)
	if err != nil {
		switch {
		case errors.Is(err, ErrDetailsDidntLoad):
			if d.cfg.Behavior.FallbackToBrief {
				log.Println("    📄 Details never loaded. Persisting brief listing instead...")
				app := &models.Application{Applied: true, Listing: brief}
				app.Ignore(models.IgnoreTypeDescriptionNoLoad, models.IgnoreCategoryDescription, "details didn't load")
				return d.persist(ctx, brief, app)
			}
			log.Println("    📄 Details never loaded. Skipping...")
			return nil
		case errors.Is(err, ErrDetailsAbsent):
			log.Println("    📄 No details pane for this listing. Skipping...")
			return nil
		case errors.Is(err, ErrSomethingWentWrong):
			return errRestartQuery
		case errors.Is(err, ErrOpensInWindow):
			log.Println("    🪟 Details hijacked into a full-page render. Cleaning up and restarting the query...")
			if closeErr := d.page.CloseTabsAfter(startTabs); closeErr != nil {
				return closeErr
			}
			return errRestartQuery
		default:
			return err
		}
	}

	full, err := d.platform.Full(li, details)
	if err != nil {
		switch {
		case errors.Is(err, ErrStaleNode):
			log.Printf("    ⚠️ Could not build full listing: %v. Skipping...", err)
			return d.page.CloseTabsAfter(startTabs)
		case errors.Is(err, ErrOpensInWindow):
			log.Println("    🪟 Page hijacked mid-build. Cleaning up and restarting the query...")
			if closeErr := d.page.CloseTabsAfter(startTabs); closeErr != nil {
				return closeErr
			}
			return errRestartQuery
		}
		return fmt.Errorf("building full listing: %w", err)
	}

	app := d.checker.Check(full)
	if err := d.persist(ctx, full, app); err != nil {
		return err
	}

	if app.Applied && d.applier != nil {
		log.Println("    📝 Handing off to the apply flow...")
		if err := d.applier.Apply(ctx, full); err != nil {
			log.Printf("    ⚠️ Apply flow failed: %v", err)
		}
		// close whatever tabs the apply flow opened and forgot
		if err := d.page.CloseTabsAfter(startTabs); err != nil {
			return err
		}
	}

	d.finishListing()
	return d.checkMemory()
}

// finishListing runs the per-listing bookkeeping: counters, the
// pause-every-N breather and the anti-burst pacing.
func (d *PageDriver) finishListing() {
	d.jobsParsed++
	if d.cfg.Behavior.PauseEveryJobs > 0 && d.jobsParsed%d.cfg.Behavior.PauseEveryJobs == 0 {
		d.alert(fmt.Sprintf("Processed %d listings on %s; taking a long breather.", d.jobsParsed, d.platform.Name()))
		browser.RandomDelay(30000, 60000)
	}
	if d.platform.Paced() {
		if err := browser.MouseJiggle(d.page); err != nil {
			log.Printf("    ⚠️ Mouse movement failed: %v", err)
		}
		browser.AntiRateLimitWait()
	}
}

// checkMemory samples system memory after each processed listing. The
// first breach clears the session dedup set (trading possible
// reprocessing for relief) and alerts the operator; a second breach is
// surfaced as fatal so the caller can close excess tabs.
func (d *PageDriver) checkMemory() error {
	if d.memUsed == nil {
		return nil
	}
	used, err := d.memUsed()
	if err != nil {
		log.Printf("    ⚠️ Could not sample memory usage: %v", err)
		return nil
	}
	if used < d.cfg.Behavior.MemoryLimitPercent {
		return nil
	}
	if !d.overloadRelieved {
		log.Printf("  🧠 Memory at %.1f%%. Clearing session dedup state...", used)
		d.session.Clear()
		d.alert(fmt.Sprintf("Memory usage hit %.1f%% on %s; cleared session state. Close extra tabs if this repeats.", used, d.platform.Name()))
		d.overloadRelieved = true
		return nil
	}
	return &MemoryOverloadError{UsedPercent: used}
}

func (d *PageDriver) zeroResults() (bool, error) {
	var lastErr error
	for attempt := 0; attempt < zeroResultsRetries; attempt++ {
		zero, err := d.platform.ZeroResults(zeroResultsTimeout)
		if err == nil {
			return zero, nil
		}
		lastErr = err
		if !errors.Is(err, ErrNoResultsData) {
			return false, err
		}
		log.Println("  ⚠️ No results signal yet. Refreshing...")
		if err := d.page.Refresh(); err != nil {
			return false, err
		}
	}
	return false, fmt.Errorf("probing results count: %w", lastErr)
}

func (d *PageDriver) persist(ctx context.Context, listing *models.Listing, app *models.Application) error {
	log.Println("    💾 Saving listing and decision...")
	if err := d.store.UpsertListing(ctx, listing); err != nil {
		return fmt.Errorf("saving listing: %w", err)
	}
	if err := d.store.UpsertApplication(ctx, app); err != nil {
		return fmt.Errorf("saving application decision: %w", err)
	}
	return nil
}
