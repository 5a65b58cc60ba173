package glassdoor

import (
	"fmt"
	"net/url"
	"strings"

	"go-jobhawk-automation/internal/config"
)

// BuildQueryURL assembles a search URL for one term. Glassdoor embeds
// the location and keyword offsets into the path itself, then takes the
// remaining filters as ordinary query parameters.
func BuildQueryURL(cfg *config.Config, term string) string {
	location := "united-states"
	if city := cfg.Search.Location.City; city != "" {
		location = strings.ReplaceAll(strings.ToLower(city), " ", "-")
	}
	location = url.QueryEscape(location)

	term = strings.TrimSpace(term)
	locationEnd := len(location)
	termStart := locationEnd + 1
	termEnd := termStart + len(term)

	var b strings.Builder
	b.WriteString("https://www.glassdoor.com/Job/")
	b.WriteString(location)
	fmt.Fprintf(&b, "-%s-jobs-SRCH_IL.0,%d_IN1_KO%d,%d.htm?",
		url.QueryEscape(term), locationEnd, termStart, termEnd)

	remote := 0
	if cfg.Search.Location.Remote {
		remote = 1
	}
	fmt.Fprintf(&b, "remoteWorkType=%d", remote)
	fmt.Fprintf(&b, "&minRating=%g", cfg.Search.MinCompanyRating)
	fmt.Fprintf(&b, "&fromAge=%d", cfg.Search.MaxAgeInDays)

	minSalary := 0
	if cfg.Search.Salary.Min != nil {
		minSalary = int(*cfg.Search.Salary.Min)
	}
	maxSalary := 1000000
	if cfg.Search.Salary.Max != nil {
		maxSalary = int(*cfg.Search.Salary.Max)
	}
	fmt.Fprintf(&b, "&minSalary=%d", minSalary)
	fmt.Fprintf(&b, "&maxSalary=%d", maxSalary)

	if cfg.Glassdoor.EasyApplyOnly {
		b.WriteString("&applicationType=1")
	}
	return b.String()
}
