package criteria

import (
	"fmt"
	"log"
	"strings"

	"go-jobhawk-automation/internal/config"
	"go-jobhawk-automation/internal/models"
)

// Checker decides whether a scraped listing is applied to or ignored,
// and records why. Rules run in a fixed order and the first hit wins:
// ideal gate, language, then the ignore checks (title, company,
// location, description, pay band, years-of-experience band).
type Checker struct {
	cfg *config.Config
}

func NewChecker(cfg *config.Config) *Checker {
	return &Checker{cfg: cfg}
}

func (c *Checker) Check(listing *models.Listing) *models.Application {
	app := &models.Application{Applied: true, Listing: listing}

	if c.cfg.Behavior.CheckIdeal {
		if c.matchesIdeal(listing) {
			// ideal match accepts outright, skipping every ignore rule
			return app
		}
		log.Println("    🚫 Ignoring: listing doesn't meet defined \"ideal\" criteria.")
		app.IgnoreTypeOnly(models.IgnoreTypeNotInIdeal)
		return app
	}

	if listing.Language != c.cfg.Behavior.ExpectedLanguage {
		log.Printf("    🚫 Ignoring: listing language is %s", listing.Language)
		app.Ignore(models.IgnoreTypeLanguage, models.IgnoreCategoryLanguage, string(listing.Language))
		return app
	}

	if !c.cfg.Behavior.CheckIgnore {
		return app
	}

	c.checkIgnoreLists(listing, app)
	if app.Applied {
		c.checkPayBand(listing, app)
	}
	if app.Applied {
		c.checkYoeBand(listing, app)
	}
	return app
}

func (c *Checker) matchesIdeal(listing *models.Listing) bool {
	for _, phrase := range c.cfg.Ideal.Titles {
		if phraseMatches(phrase, listing.Title) {
			return true
		}
	}
	for _, phrase := range c.cfg.Ideal.Companies {
		if phraseMatches(phrase, listing.Company) {
			return true
		}
	}
	for _, phrase := range c.cfg.Ideal.Locations {
		if phraseMatches(phrase, listing.Location) {
			return true
		}
	}
	return false
}

func (c *Checker) checkIgnoreLists(listing *models.Listing, app *models.Application) {
	fields := []struct {
		phrases  []config.Phrase
		subject  string
		category models.IgnoreCategory
	}{
		{c.cfg.Ignore.Titles, listing.Title, models.IgnoreCategoryTitle},
		{c.cfg.Ignore.Companies, listing.Company, models.IgnoreCategoryCompany},
		{c.cfg.Ignore.Locations, listing.Location, models.IgnoreCategoryLocation},
	}
	for _, f := range fields {
		for _, phrase := range f.phrases {
			if phraseMatches(phrase, f.subject) {
				log.Printf("    🚫 Ignoring: %s includes %q", strings.ToLower(string(f.category)), phrase)
				app.Ignore(models.IgnoreTypeIsInIgnore, f.category, strings.Join(phrase, " + "))
				return
			}
		}
	}
	if listing.HasDescription() {
		for _, phrase := range c.cfg.Ignore.Descriptions {
			if phraseMatches(phrase, *listing.Description) {
				log.Printf("    🚫 Ignoring: description includes %q", phrase)
				app.Ignore(models.IgnoreTypeIsInIgnore, models.IgnoreCategoryDescription, strings.Join(phrase, " + "))
				return
			}
		}
	}
}

func (c *Checker) checkPayBand(listing *models.Listing, app *models.Application) {
	salary := c.cfg.Search.Salary
	if salary.Min != nil && listing.MaxPay != nil && *salary.Min > *listing.MaxPay {
		log.Printf("    🚫 Ignoring: pays %.0f less than our minimum %.0f", *salary.Min-*listing.MaxPay, *salary.Min)
		app.Ignore(models.IgnoreTypeIsInIgnore, models.IgnoreCategoryLowPay, fmt.Sprintf("%v", *listing.MaxPay))
		return
	}
	if salary.Max != nil && listing.MinPay != nil && *salary.Max < *listing.MinPay {
		log.Printf("    🚫 Ignoring: pays %.0f more than our maximum %.0f", *listing.MinPay-*salary.Max, *salary.Max)
		app.Ignore(models.IgnoreTypeIsInIgnore, models.IgnoreCategoryHighPay, fmt.Sprintf("%v", *listing.MinPay))
	}
}

func (c *Checker) checkYoeBand(listing *models.Listing, app *models.Application) {
	yoe := c.cfg.Search.Yoe
	if yoe.Maximum != nil && listing.MinYoe != nil && *listing.MinYoe > *yoe.Maximum {
		log.Printf("    🚫 Ignoring: demands too many years of experience: %d", *listing.MinYoe)
		app.Ignore(models.IgnoreTypeIsInIgnore, models.IgnoreCategoryHighYoe, fmt.Sprintf("%d", *listing.MinYoe))
		return
	}
	if yoe.Minimum != nil && listing.MaxYoe != nil && *listing.MaxYoe < *yoe.Minimum {
		log.Printf("    🚫 Ignoring: asks for too few years of experience: %d", *listing.MaxYoe)
		app.Ignore(models.IgnoreTypeIsInIgnore, models.IgnoreCategoryLowYoe, fmt.Sprintf("%d", *listing.MaxYoe))
	}
}
