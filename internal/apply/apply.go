// Handoff point for application-form automation. The form steppers
// themselves are out of scope here; LogOnly records what would have been
// applied to so scrape-only runs still produce a useful trail.

package apply

import (
	"context"
	"log"

	"go-jobhawk-automation/internal/models"
)

type LogOnly struct{}

func (LogOnly) Apply(ctx context.Context, listing *models.Listing) error {
	log.Printf("    📨 Would apply to %q at %q (%s)", listing.Title, listing.Company, listing.URL)
	return nil
}
