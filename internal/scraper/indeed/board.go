package indeed

import (
	"fmt"
	"strings"
	"time"

	"go-jobhawk-automation/internal/browser"
	"go-jobhawk-automation/internal/config"
	"go-jobhawk-automation/internal/models"
	"go-jobhawk-automation/internal/parse"
	"go-jobhawk-automation/internal/scraper"
)

const (
	listSelector        = "#mosaic-provider-jobcards ul"
	titleSelector       = "h2.jobTitle"
	titleAnchorSelector = "a.jcs-JobTitle"
	companySelector     = `span[data-testid="company-name"]`
	locationSelector    = `div[data-testid="text-location"]`
	paySelector         = `.salary-snippet-container, div[data-testid="attribute_snippet_testid"]`
	ageSelector         = `span[data-testid="myJobsStateDate"]`
	descriptionID       = "#jobDescriptionText"
	paginationSelector  = `nav[role="navigation"] ul li a`

	pollStep = 100 * time.Millisecond
)

// adMarkers are mosaic zones Indeed splices into the result list. A card
// whose HTML carries one of these is sponsored filler, not a result.
var adMarkers = []string{
	"mosaic-afterFifthJobResult",
	"mosaic-afterTenthJobResult",
	"mosaicZone_afterFifteenthJobResult",
	"jobsearch-SerpJobCard--sponsored",
	"icl-JobResult-card--sponsored",
}

// Board drives Indeed's result list. Cards open a details pane on the
// same tab, but some listings hijack the tab to a /viewjob URL instead.
type Board struct {
	page browser.Page
	cfg  *config.Config
	now  func() time.Time
}

func New(page browser.Page, cfg *config.Config) *Board {
	return &Board{page: page, cfg: cfg, now: time.Now}
}

func (b *Board) Name() models.Platform { return models.PlatformIndeed }

func (b *Board) Paced() bool { return false }

// Indeed renders no usable result count, so an empty query is detected
// the slow way, by finding no cards at position 2.
func (b *Board) ZeroResults(timeout time.Duration) (bool, error) {
	return false, nil
}

// Advance steps the attempt counter and derives the card position. The
// list leads with a non-card li, so positions start at 2 and the wrap
// burns one attempt to get back there.
func (b *Board) Advance(totalTried, index int) (int, int) {
	totalTried++
	index = (totalTried % b.cfg.Indeed.PageSize) + 1
	if index == 1 {
		totalTried++
		index = (totalTried % b.cfg.Indeed.PageSize) + 1
	}
	return totalTried, index
}

func (b *Board) ListingAt(index int) (browser.Node, scraper.FetchOutcome, error) {
	if b.hijackedToViewJob() {
		return nil, scraper.FetchNotFound, scraper.ErrOpensInWindow
	}
	list, ok, err := b.page.Find(listSelector)
	if err != nil || !ok {
		return nil, scraper.FetchNotFound, err
	}
	li, ok, err := list.Nth("li", index-1)
	if err != nil || !ok {
		return nil, scraper.FetchNotFound, err
	}
	ad, err := isAdvertisement(li)
	if err != nil {
		return nil, scraper.FetchNotFound, err
	}
	if ad {
		return li, scraper.FetchAdvertisement, nil
	}
	return li, scraper.FetchFound, nil
}

func isAdvertisement(li browser.Node) (bool, error) {
	raw, err := li.InnerHTML()
	if err != nil {
		return false, err
	}
	for _, marker := range adMarkers {
		if strings.Contains(raw, marker) {
			return true, nil
		}
	}
	outline, ok, err := li.Find("div.cardOutline")
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	hidden, err := outline.Attribute("aria-hidden")
	if err != nil {
		return false, err
	}
	return hidden == "true", nil
}

func (b *Board) HasNextPage() (bool, error) {
	anchors, err := b.page.FindAll(paginationSelector)
	if err != nil {
		return false, err
	}
	foundCurrent := false
	for _, anchor := range anchors {
		id, err := anchor.Attribute("data-testid")
		if err != nil {
			continue
		}
		if id == "pagination-page-current" {
			foundCurrent = true
			continue
		}
		if foundCurrent {
			return true, nil
		}
	}
	return false, nil
}

func (b *Board) NextPage() error {
	anchors, err := b.page.FindAll(paginationSelector)
	if err != nil {
		return err
	}
	foundCurrent := false
	for _, anchor := range anchors {
		id, err := anchor.Attribute("data-testid")
		if err != nil {
			continue
		}
		if id == "pagination-page-current" {
			foundCurrent = true
			continue
		}
		if foundCurrent {
			return anchor.Click()
		}
	}
	return fmt.Errorf("next page anchor disappeared: %w", scraper.ErrPageFroze)
}

func (b *Board) Brief(li browser.Node) (*models.Listing, error) {
	title, ok, err := li.Find(titleSelector)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, scraper.ErrStaleNode
	}
	titleText, err := title.Text()
	if err != nil {
		return nil, scraper.ErrStaleNode
	}

	listing := &models.Listing{
		Title:    strings.TrimSpace(titleText),
		Platform: models.PlatformIndeed,
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
	if age, ok, err := li.Find(ageSelector); err != nil {
		return nil, err
	} else if ok {
		text, _ := age.Text()
		listing.PostTime = parse.PostTime(text, b.now())
	}
	if anchor, ok, err := li.Find(titleAnchorSelector); err != nil {
		return nil, err
	} else if ok {
		if href, err := anchor.Attribute("href"); err == nil && href != "" {
			if !strings.HasPrefix(href, "http") {
				href = "https://www.indeed.com" + href
			}
			listing.URL = href
		}
	}
	if listing.URL == "" {
		listing.URL = b.page.URL()
	}

	listing.Language = parse.DetectLanguage(listing.Title + " " + listing.Company + " " + listing.Location)
	return listing, nil
}

func (b *Board) OpenListing(li browser.Node, timeout time.Duration) error {
	if err := li.Click(); err != nil {
		return scraper.ErrStaleNode
	}
	if b.hijackedToViewJob() {
		return scraper.ErrOpensInWindow
	}
	return nil
}

func (b *Board) DetailsPane(timeout time.Duration) (browser.Node, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		pane, ok, err := b.page.Find(descriptionID)
		if err != nil {
			return nil, err
		}
		if ok {
			return pane, nil
		}
		if b.hijackedToViewJob() {
			return nil, scraper.ErrOpensInWindow
		}
		time.Sleep(pollStep)
	}
	if b.hijackedToViewJob() {
		return nil, scraper.ErrOpensInWindow
	}
	return nil, scraper.ErrDetailsDidntLoad
}

func (b *Board) Full(li, details browser.Node) (*models.Listing, error) {
	listing, err := b.Brief(li)
	if err != nil {
		return nil, err
	}
	raw, err := details.InnerHTML()
	if err != nil {
		if b.hijackedToViewJob() {
			return nil, scraper.ErrOpensInWindow
		}
		return nil, scraper.ErrStaleNode
	}
	description := parse.HTMLText(raw)
	listing.Description = &description
	listing.MinYoe, listing.MaxYoe = parse.Yoe(description)
	return listing, nil
}

// hijackedToViewJob reports whether a card click replaced the results
// page with the standalone /viewjob page.
func (b *Board) hijackedToViewJob() bool {
	return strings.Contains(b.page.URL(), "indeed.com/viewjob")
}
