package scraper

import (
	"errors"
	"fmt"

	"go-jobhawk-automation/internal/models"
)

// Named conditions for every bounded wait in the scrape loop, so callers
// can tell "still loading" from "definitely absent" and react
// differently.
var (
	// ErrNoResultsData means the results-count signal never rendered
	ErrNoResultsData = errors.New("could not determine results count")

	// ErrDetailsDidntLoad means the details pane exists but never
	// finished loading; recoverable via the brief-fallback policy
	ErrDetailsDidntLoad = errors.New("job details didn't finish loading")

	// ErrDetailsAbsent means the details pane is permanently missing
	ErrDetailsAbsent = errors.New("job details pane is not present")

	// ErrPageFroze means the page stopped responding to clicks
	ErrPageFroze = errors.New("page appears to have frozen")

	// ErrSomethingWentWrong is the platform's own error interstitial
	ErrSomethingWentWrong = errors.New("platform showed an error page")

	// ErrZeroResultsBug is the glitch where a pagination click lands on
	// an empty result set that a refresh repairs
	ErrZeroResultsBug = errors.New("zero results after pagination click")

	// ErrOpensInWindow means the listing opened a full-page render in a
	// new tab instead of the inline pane
	ErrOpensInWindow = errors.New("listing opened in a new window")

	// ErrStaleNode means a held DOM node was invalidated by a re-render
	ErrStaleNode = errors.New("dom node went stale")

	// ErrQueryUnrecoverable means reloading and re-walking the query kept
	// landing on a broken page state until the restart budget ran out
	ErrQueryUnrecoverable = errors.New("query page kept failing across restarts")
)

// RateLimitedError is fatal for the current run: the orchestration layer
// records the block against this host and halts the platform.
type RateLimitedError struct {
	Platform models.Platform
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited by %s", e.Platform)
}

// MemoryOverloadError surfaces unresolved memory pressure after the
// in-loop relief (clearing session state) has already been tried once.
type MemoryOverloadError struct {
	UsedPercent float64
}

func (e *MemoryOverloadError) Error() string {
	return fmt.Sprintf("system memory at %.1f%% with session state already cleared", e.UsedPercent)
}
