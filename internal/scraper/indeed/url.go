package indeed

import (
	"fmt"
	"strings"

	"go-jobhawk-automation/internal/config"
)

// BuildQueryURL assembles a search URL for one term. Ignore terms ride
// along as negated keywords, and remote/hybrid preferences are encoded
// as Indeed's opaque attribute tags.
//
// Indeed has no URL facet for easy-apply filtering (the board retired
// its Easy Apply program, and the sc=0kf attribute system carries no
// tag for it), so the easy_apply_only setting cannot be encoded here.
// Detail pages are still checked for an apply button before any
// application attempt.
func BuildQueryURL(cfg *config.Config, term string) string {
	var b strings.Builder
	b.WriteString("https://www.indeed.com/jobs?")

	fmt.Fprintf(&b, "q=%%28%s%%29", term)
	for _, ignore := range cfg.Search.Terms.Ignore {
		fmt.Fprintf(&b, "+-%s", ignore)
	}
	b.WriteString("&from=searchOnDesktopSerp")

	switch {
	case cfg.Search.Location.Remote:
		b.WriteString(`&l="remote"`)
	case cfg.Search.Location.City != "":
		fmt.Fprintf(&b, "&l=%s", cfg.Search.Location.City)
	default:
		b.WriteString("&l=")
	}

	fmt.Fprintf(&b, "&fromage=%d", cfg.Search.MaxAgeInDays)
	minSalary := 0
	if cfg.Search.Salary.Min != nil {
		minSalary = int(*cfg.Search.Salary.Min)
	}
	fmt.Fprintf(&b, "&salaryType=%%24%d%%2B", minSalary)
	fmt.Fprintf(&b, "&radius=%d", cfg.Search.Location.MaxDistanceMiles)

	if cfg.Search.Location.Remote || cfg.Search.Location.Hybrid {
		b.WriteString("&sc=0kf%3A")
		if cfg.Search.Location.Remote {
			b.WriteString("attr%28DSQF7%29")
		} else {
			b.WriteString("attr%28PAXZC%29")
		}
		b.WriteString("%3B")
	}
	return b.String()
}
