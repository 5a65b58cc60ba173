package glassdoor

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-jobhawk-automation/internal/browser"
	"go-jobhawk-automation/internal/config"
	"go-jobhawk-automation/internal/models"
	"go-jobhawk-automation/internal/parse"
	"go-jobhawk-automation/internal/scraper"
)

// Glassdoor hashes the suffix of most class names per deploy, so
// selectors match on the stable prefix instead of the full class.
const (
	listSelector        = `ul[aria-label="Jobs List"]`
	jobCountSelector    = `[class*="SearchResultsHeader_jobCount"]`
	titleAnchorSelector = `a[class*="JobCard_jobTitle"]`
	companySelector     = `[class*="EmployerProfile_compactEmployerName"]`
	locationSelector    = `[class*="JobCard_location"]`
	paySelector         = `[class*="JobCard_salaryEstimate"]`
	ageSelector         = `[class*="JobCard_listingAge"]`
	detailsSelector     = `[class*="JobDetails_jobDescription"]`
	showMoreSelector    = `button[data-test="load-more"]`
	surveyCloseSelector = "#qual_close_open"
	nudgeCardMarker     = "ForYouNudgeCard"

	pollStep = 100 * time.Millisecond
)

var jobCountRe = regexp.MustCompile(`^([0-9]+) `)
var zeroJobsTitleRe = regexp.MustCompile(`^0 .+ Jobs in `)

// Board drives Glassdoor's single growing result list. There are no
// numbered pages; a show-more button appends the next batch to the same
// list, so card positions map one to one onto attempts.
type Board struct {
	page browser.Page
	cfg  *config.Config
	now  func() time.Time
}

func New(page browser.Page, cfg *config.Config) *Board {
	return &Board{page: page, cfg: cfg, now: time.Now}
}

func (b *Board) Name() models.Platform { return models.PlatformGlassdoor }

func (b *Board) Paced() bool { return false }

// ZeroResults reads the result-count header. The header renders late and
// popups can cover it, so the probe dismisses what it can and keeps
// polling until the timeout.
func (b *Board) ZeroResults(timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if err := b.dismissPopups(); err != nil {
			return false, err
		}
		header, ok, err := b.page.Find(jobCountSelector)
		if err != nil {
			return false, err
		}
		if ok {
			text, err := header.Text()
			if err == nil {
				text = strings.TrimSpace(strings.ReplaceAll(strings.ToLower(text), ",", ""))
				if m := jobCountRe.FindStringSubmatch(text); m != nil {
					count, _ := strconv.Atoi(m[1])
					return count == 0, nil
				}
			}
		}
		time.Sleep(pollStep)
	}
	return false, fmt.Errorf("result count header never appeared: %w", scraper.ErrNoResultsData)
}

// Advance maps attempts straight onto 1-based card positions.
func (b *Board) Advance(totalTried, index int) (int, int) {
	totalTried++
	return totalTried, totalTried
}

func (b *Board) ListingAt(index int) (browser.Node, scraper.FetchOutcome, error) {
	if err := b.dismissPopups(); err != nil {
		return nil, scraper.FetchNotFound, err
	}
	list, ok, err := b.page.Find(listSelector)
	if err != nil || !ok {
		return nil, scraper.FetchNotFound, err
	}
	li, ok, err := list.Nth("li", index-1)
	if err != nil || !ok {
		return nil, scraper.FetchNotFound, err
	}
	class, err := li.Attribute("class")
	if err != nil {
		return nil, scraper.FetchNotFound, err
	}
	if strings.Contains(class, nudgeCardMarker) {
		return li, scraper.FetchAdvertisement, nil
	}
	return li, scraper.FetchFound, nil
}

func (b *Board) HasNextPage() (bool, error) {
	_, ok, err := b.page.Find(showMoreSelector)
	return ok, err
}

// NextPage clicks show-more and waits for the list to grow. A page whose
// title drops to zero jobs afterwards has hit Glassdoor's vanishing
// results bug and needs a fresh walk.
func (b *Board) NextPage() error {
	list, ok, err := b.page.Find(listSelector)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("results list disappeared: %w", scraper.ErrPageFroze)
	}
	before, err := list.FindAll("li")
	if err != nil {
		return err
	}
	button, ok, err := b.page.Find(showMoreSelector)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("show more button disappeared: %w", scraper.ErrPageFroze)
	}
	if err := b.dismissPopups(); err != nil {
		return err
	}
	if err := button.Click(); err != nil {
		return fmt.Errorf("clicking show more: %w", scraper.ErrPageFroze)
	}

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		list, ok, err := b.page.Find(listSelector)
		if err != nil {
			return err
		}
		if ok {
			after, err := list.FindAll("li")
			if err != nil {
				return err
			}
			if len(after) > len(before) {
				return b.checkZeroJobsBug()
			}
		}
		log.Println("    ⏳ Waiting for more listings to load...")
		time.Sleep(pollStep)
	}
	return fmt.Errorf("show more produced no new listings: %w", scraper.ErrPageFroze)
}

func (b *Board) checkZeroJobsBug() error {
	title, err := b.page.Title()
	if err != nil {
		return nil
	}
	if zeroJobsTitleRe.MatchString(title) {
		return scraper.ErrZeroResultsBug
	}
	return nil
}

func (b *Board) Brief(li browser.Node) (*models.Listing, error) {
	anchor, ok, err := li.Find(titleAnchorSelector)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, scraper.ErrStaleNode
	}
	title, err := anchor.Text()
	if err != nil {
		return nil, scraper.ErrStaleNode
	}

	listing := &models.Listing{
		Title:    strings.TrimSpace(title),
		Platform: models.PlatformGlassdoor,
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
	if href, err := anchor.Attribute("href"); err == nil && href != "" {
		listing.URL = href
	} else {
		listing.URL = b.page.URL()
	}

	listing.Language = parse.DetectLanguage(listing.Title + " " + listing.Company + " " + listing.Location)
	return listing, nil
}

func (b *Board) OpenListing(li browser.Node, timeout time.Duration) error {
	if err := b.dismissPopups(); err != nil {
		return err
	}
	startTabs := b.page.TabCount()
	if err := li.Click(); err != nil {
		return fmt.Errorf("clicking card: %w", scraper.ErrPageFroze)
	}
	if strings.Contains(b.page.URL(), "/job-listing/") {
		return scraper.ErrOpensInWindow
	}
	if b.page.TabCount() > startTabs {
		return scraper.ErrOpensInWindow
	}
	return nil
}

func (b *Board) DetailsPane(timeout time.Duration) (browser.Node, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		pane, ok, err := b.page.Find(detailsSelector)
		if err != nil {
			return nil, err
		}
		if ok {
			raw, err := pane.InnerHTML()
			if err == nil && descriptionLoaded(raw) {
				return pane, nil
			}
		}
		time.Sleep(pollStep)
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
		return nil, scraper.ErrStaleNode
	}
	description := parse.HTMLText(raw)
	listing.Description = &description
	listing.MinYoe, listing.MaxYoe = parse.Yoe(description)
	return listing, nil
}

// descriptionLoaded filters out the truncated placeholder the pane shows
// before the full text and its show-more control render.
func descriptionLoaded(raw string) bool {
	return len(raw) > 100 && strings.Contains(raw, "Show more")
}

// dismissPopups closes the survey popup that Glassdoor floats over the
// list and intercepts clicks with.
func (b *Board) dismissPopups() error {
	closeButton, ok, err := b.page.Find(surveyCloseSelector)
	if err != nil || !ok {
		return err
	}
	log.Println("    ❎ Dismissing survey popup...")
	return closeButton.Click()
}
