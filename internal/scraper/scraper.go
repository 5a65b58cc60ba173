// Define the capability interfaces all platform scrapers implement
// Ensure consistency

package scraper

import (
	"context"
	"time"

	"go-jobhawk-automation/internal/browser"
	"go-jobhawk-automation/internal/models"
)

// FetchOutcome is the result of asking for the listing at an index.
// Advertisements and exhausted pages are expected, frequent outcomes of
// walking a result list, so they are values rather than errors.
type FetchOutcome int

const (
	FetchFound FetchOutcome = iota
	FetchAdvertisement
	FetchNotFound
)

// Paginator walks one platform's paginated result list
type Paginator interface {
	// ZeroResults probes the results-count signal. It returns
	// ErrNoResultsData if the signal never appeared within the timeout.
	ZeroResults(timeout time.Duration) (bool, error)

	// Advance moves the incrementor one step: given the running
	// total-attempts counter and the current index-within-page, it
	// returns both updated. A wrap back to the first index implies the
	// next fetch will miss and trigger a page advance.
	Advance(totalTried, index int) (int, int)

	// ListingAt fetches the listing node at an index within the current
	// page's list
	ListingAt(index int) (browser.Node, FetchOutcome, error)

	HasNextPage() (bool, error)
	NextPage() error
}

// Extractor builds listings out of the platform's DOM
type Extractor interface {
	// Brief builds a listing from the result card alone
	Brief(li browser.Node) (*models.Listing, error)

	// OpenListing clicks into a listing and waits until the click took
	OpenListing(li browser.Node, timeout time.Duration) error

	// DetailsPane waits for the details pane, distinguishing a pane that
	// is still loading (ErrDetailsDidntLoad) from one that will never
	// appear (ErrDetailsAbsent)
	DetailsPane(timeout time.Duration) (browser.Node, error)

	// Full builds a listing including its description
	Full(li, details browser.Node) (*models.Listing, error)
}

// Platform is one job board: pagination + extraction + identity
type Platform interface {
	Paginator
	Extractor

	Name() models.Platform

	// Paced reports whether this board needs the randomized
	// between-listings delay to avoid tripping rate limits
	Paced() bool
}

// Store is the persistence collaborator. Upserts are idempotent per
// listing, so a restarted query can safely re-persist.
type Store interface {
	UpsertListing(ctx context.Context, listing *models.Listing) error
	UpsertApplication(ctx context.Context, app *models.Application) error
}

// Applier is the handoff point to the multi-step application-form
// fillers. Implementations own everything inside the apply modal; the
// scrape loop owns tab bookkeeping around the call.
type Applier interface {
	Apply(ctx context.Context, listing *models.Listing) error
}
