package orchestrate

import (
	"strings"

	"go-jobhawk-automation/internal/browser"
	"go-jobhawk-automation/internal/config"
	"go-jobhawk-automation/internal/criteria"
	"go-jobhawk-automation/internal/dedup"
	"go-jobhawk-automation/internal/models"
	"go-jobhawk-automation/internal/scraper"
	"go-jobhawk-automation/internal/scraper/glassdoor"
	"go-jobhawk-automation/internal/scraper/indeed"
	"go-jobhawk-automation/internal/scraper/linkedin"
)

// Deps carries the shared collaborators every platform engine wires in.
type Deps struct {
	Config   *config.Config
	Checker  *criteria.Checker
	Store    scraper.Store
	Session  *dedup.Session
	Applier  scraper.Applier
	Limits   RateLimitStore
	Operator Operator
	MemUsed  func() (float64, error)
	Address  string
}

func (d Deps) driverFor(platform scraper.Platform, page browser.Page) *scraper.PageDriver {
	var alert func(string)
	if d.Operator != nil {
		op := d.Operator
		alert = func(msg string) { _ = op.Alert(msg) }
	}
	return scraper.NewPageDriver(platform, page, d.Config, d.Checker, d.Store, d.Session, d.Applier, d.MemUsed, alert)
}

// NewLinkedIn builds the LinkedIn engine. The feed page doubles as the
// login probe: cookies either land us on #global-nav or a checkpoint.
func NewLinkedIn(page browser.Page, deps Deps) *Engine {
	board := linkedin.New(page, deps.Config)
	return &Engine{
		name:      models.PlatformLinkedIn,
		page:      page,
		cfg:       deps.Config,
		driver:    deps.driverFor(board, page),
		buildURL:  linkedin.BuildQueryURL,
		urlMarker: "linkedin.com/jobs/search",
		login: loginSpec{
			url:      "https://www.linkedin.com/feed/",
			loggedIn: "#global-nav",
			checkpoint: func(p browser.Page) (bool, error) {
				return strings.Contains(p.URL(), "checkpoint"), nil
			},
		},
		limits:   deps.Limits,
		operator: deps.Operator,
		address:  deps.Address,
	}
}

// NewIndeed builds the Indeed engine. Cloudflare interstitials show up
// as a verification title instead of a URL change.
func NewIndeed(page browser.Page, deps Deps) *Engine {
	board := indeed.New(page, deps.Config)
	return &Engine{
		name:      models.PlatformIndeed,
		page:      page,
		cfg:       deps.Config,
		driver:    deps.driverFor(board, page),
		buildURL:  indeed.BuildQueryURL,
		urlMarker: "indeed.com/jobs",
		login: loginSpec{
			url:      "https://www.indeed.com/",
			loggedIn: `button[data-gnav-element-name="AccountMenu"]`,
			checkpoint: func(p browser.Page) (bool, error) {
				title, err := p.Title()
				if err != nil {
					return false, err
				}
				return strings.Contains(title, "Additional Verification Required") ||
					strings.Contains(title, "Just a moment"), nil
			},
		},
		limits:   deps.Limits,
		operator: deps.Operator,
		address:  deps.Address,
	}
}

// NewGlassdoor builds the Glassdoor engine.
func NewGlassdoor(page browser.Page, deps Deps) *Engine {
	board := glassdoor.New(page, deps.Config)
	return &Engine{
		name:      models.PlatformGlassdoor,
		page:      page,
		cfg:       deps.Config,
		driver:    deps.driverFor(board, page),
		buildURL:  glassdoor.BuildQueryURL,
		urlMarker: "glassdoor.com/Job",
		login: loginSpec{
			url:      "https://www.glassdoor.com/Community/index.htm",
			loggedIn: `[class*="UserMenu_userMenu"]`,
			checkpoint: func(p browser.Page) (bool, error) {
				title, err := p.Title()
				if err != nil {
					return false, err
				}
				return strings.Contains(title, "Security"), nil
			},
		},
		limits:   deps.Limits,
		operator: deps.Operator,
		address:  deps.Address,
	}
}
