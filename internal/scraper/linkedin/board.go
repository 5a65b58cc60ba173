package linkedin

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"go-jobhawk-automation/internal/browser"
	"go-jobhawk-automation/internal/config"
	"go-jobhawk-automation/internal/models"
	"go-jobhawk-automation/internal/parse"
	"go-jobhawk-automation/internal/scraper"
)

const (
	listSelector       = "div.scaffold-layout__list ul"
	cardAnchorSelector = "a.job-card-container__link"
	companySelector    = ".artdeco-entity-lockup__subtitle"
	locationSelector   = ".artdeco-entity-lockup__caption"
	paySelector        = ".artdeco-entity-lockup__metadata"
	activeCardSelector = ".job-card-job-posting-card-wrapper--active"
	detailsSelector    = "div.jobs-description-content__text--stretch, #job-details"
	nextPageSelector   = `button[aria-label="View next page"]`

	pollStep = 100 * time.Millisecond
)

var jobViewRe = regexp.MustCompile(`/jobs/view/([0-9]+)`)

// Board drives LinkedIn's job search results. Listings live in a single
// results list that repaginates every pageSize entries; clicking a card
// loads its description into a side pane on the same tab.
type Board struct {
	page browser.Page
	cfg  *config.Config
	now  func() time.Time
}

func New(page browser.Page, cfg *config.Config) *Board {
	return &Board{page: page, cfg: cfg, now: time.Now}
}

func (b *Board) Name() models.Platform { return models.PlatformLinkedIn }

// LinkedIn throttles aggressively, so walks are paced.
func (b *Board) Paced() bool { return true }

func (b *Board) ZeroResults(timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		noMatch, err := b.isNoMatchingJobs()
		if err != nil {
			return false, err
		}
		if noMatch {
			return true, nil
		}
		if _, ok, err := b.page.Find(listSelector); err != nil {
			return false, err
		} else if ok {
			return false, nil
		}
		time.Sleep(pollStep)
	}
	return false, fmt.Errorf("results list never appeared: %w", scraper.ErrNoResultsData)
}

// Advance steps the attempt counter and derives the 1-based position of
// the next card. The position wraps at pageSize; position 0 never exists
// in the list, so the wrap burns one attempt to land back on 1.
func (b *Board) Advance(totalTried, index int) (int, int) {
	totalTried++
	index = totalTried % b.cfg.LinkedIn.PageSize
	if index == 0 {
		totalTried++
		index = 1
	}
	return totalTried, index
}

func (b *Board) ListingAt(index int) (browser.Node, scraper.FetchOutcome, error) {
	// the error-code page means LinkedIn has cut this address off
	if _, ok, err := b.page.Find(".error-code"); err != nil {
		return nil, scraper.FetchNotFound, err
	} else if ok {
		return nil, scraper.FetchNotFound, &scraper.RateLimitedError{Platform: models.PlatformLinkedIn}
	}
	wrong, err := b.isSomethingWentWrong()
	if err != nil {
		return nil, scraper.FetchNotFound, err
	}
	if wrong {
		return nil, scraper.FetchNotFound, scraper.ErrSomethingWentWrong
	}
	list, ok, err := b.page.Find(listSelector)
	if err != nil || !ok {
		return nil, scraper.FetchNotFound, err
	}
	li, ok, err := list.Nth("li", index-1)
	if err != nil || !ok {
		return nil, scraper.FetchNotFound, err
	}
	// promo slots render as cards with no job anchor
	if _, ok, err := li.Find(cardAnchorSelector); err != nil {
		return nil, scraper.FetchNotFound, err
	} else if !ok {
		return li, scraper.FetchAdvertisement, nil
	}
	return li, scraper.FetchFound, nil
}

func (b *Board) HasNextPage() (bool, error) {
	_, ok, err := b.page.Find(nextPageSelector)
	return ok, err
}

func (b *Board) NextPage() error {
	button, ok, err := b.page.Find(nextPageSelector)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("next page button disappeared: %w", scraper.ErrPageFroze)
	}
	if err := button.Click(); err != nil {
		return fmt.Errorf("clicking next page: %w", scraper.ErrPageFroze)
	}
	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok, err := b.page.Find(listSelector); err != nil {
			return err
		} else if ok {
			return nil
		}
		noMatch, err := b.isNoMatchingJobs()
		if err != nil {
			return err
		}
		if noMatch {
			// walk resumes and finds the list gone, ending the query
			return nil
		}
		log.Println("    ⏳ Waiting for next page to load...")
		time.Sleep(pollStep)
	}
	return fmt.Errorf("next page never loaded: %w", scraper.ErrPageFroze)
}

func (b *Board) Brief(li browser.Node) (*models.Listing, error) {
	anchor, ok, err := li.Find(cardAnchorSelector)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, scraper.ErrStaleNode
	}

	title, err := anchor.Attribute("aria-label")
	if err != nil {
		return nil, err
	}
	if title == "" {
		if strong, ok, err := anchor.Find("strong"); err != nil {
			return nil, err
		} else if ok {
			title, _ = strong.Text()
		}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, scraper.ErrStaleNode
	}

	listing := &models.Listing{
		Title:    title,
		Platform: models.PlatformLinkedIn,
	}

	if company, ok, err := li.Find(companySelector); err != nil {
		return nil, err
	} else if ok {
		text, _ := company.Text()
		listing.Company = strings.TrimSpace(text)
	}
	if location, ok, err := li.Find(locationSelector); err != nil {
		return nil, err
	} else if ok {
		text, _ := location.Text()
		listing.Location = strings.TrimSpace(text)
	}
	if pay, ok, err := li.Find(paySelector); err != nil {
		return nil, err
	} else if ok {
		text, _ := pay.Text()
		listing.MinPay, listing.MaxPay = parse.Pay(text)
	}
	if age, ok, err := li.Find("time"); err != nil {
		return nil, err
	} else if ok {
		text, _ := age.Text()
		listing.PostTime = parse.PostTime(text, b.now())
	}

	listing.URL = b.canonicalURL(anchor)
	listing.Language = parse.DetectLanguage(listing.Title + " " + listing.Company + " " + listing.Location)
	return listing, nil
}

// canonicalURL strips the tracking query LinkedIn appends to every card
// href, so the same job always yields the same URL.
func (b *Board) canonicalURL(anchor browser.Node) string {
	href, err := anchor.Attribute("href")
	if err != nil || href == "" {
		return b.page.URL()
	}
	if !strings.HasPrefix(href, "http") {
		href = "https://www.linkedin.com" + href
	}
	if m := jobViewRe.FindStringSubmatch(href); m != nil {
		return "https://www.linkedin.com/jobs/view/" + m[1]
	}
	return strings.SplitN(href, "?", 2)[0]
}

func (b *Board) OpenListing(li browser.Node, timeout time.Duration) error {
	if err := li.Click(); err != nil {
		return scraper.ErrStaleNode
	}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, ok, err := li.Find(activeCardSelector); err == nil && ok {
			return nil
		}
		wrong, err := b.isSomethingWentWrong()
		if err != nil {
			return err
		}
		if wrong {
			return scraper.ErrSomethingWentWrong
		}
		time.Sleep(pollStep)
	}
	return fmt.Errorf("card never became active: %w", scraper.ErrPageFroze)
}

func (b *Board) DetailsPane(timeout time.Duration) (browser.Node, error) {
	seen := false
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		pane, ok, err := b.page.Find(detailsSelector)
		if err != nil {
			return nil, err
		}
		if ok {
			seen = true
			text, err := pane.Text()
			if err == nil && descriptionPopulated(text) {
				return pane, nil
			}
		}
		time.Sleep(pollStep)
	}
	if seen {
		return nil, scraper.ErrDetailsDidntLoad
	}
	return nil, scraper.ErrDetailsAbsent
}

func (b *Board) Full(li, details browser.Node) (*models.Listing, error) {
	listing, err := b.Brief(li)
	if err != nil {
		return nil, err
	}
	raw, err := details.InnerHTML()
	if err != nil {
		return nil, scraper.ErrStaleNode
	}
	description := parse.HTMLText(raw)
	listing.Description = &description
	listing.MinYoe, listing.MaxYoe = parse.Yoe(description)
	return listing, nil
}

// descriptionPopulated filters out the skeleton text the pane shows
// while the real description streams in.
func descriptionPopulated(text string) bool {
	text = strings.TrimSpace(text)
	return len(strings.Split(text, "\n")) > 2 || len(text) > 100
}

func (b *Board) isNoMatchingJobs() (bool, error) {
	return headerTextPresent(b.page, "No matching jobs found")
}

func (b *Board) isSomethingWentWrong() (bool, error) {
	return headerTextPresent(b.page, "Something went wrong")
}

func headerTextPresent(page browser.Page, want string) (bool, error) {
	headers, err := page.FindAll("h2")
	if err != nil {
		return false, err
	}
	for _, h := range headers {
		text, err := h.Text()
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == want {
			return true, nil
		}
	}
	return false, nil
}
