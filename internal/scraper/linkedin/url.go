package linkedin

import (
	"fmt"
	"net/url"
	"strings"

	"go-jobhawk-automation/internal/config"
)

// BuildQueryURL assembles a search URL for one term, encoding location,
// workplace type, experience levels, listing age and the ignore terms as
// a NOT clause in the keywords.
func BuildQueryURL(cfg *config.Config, term string) string {
	var b strings.Builder
	b.WriteString("https://www.linkedin.com/jobs/search-results/?")

	if city := cfg.Search.Location.City; city != "" {
		fmt.Fprintf(&b, "&location=%s", url.QueryEscape(city))
	}
	switch {
	case cfg.Search.Location.Remote:
		b.WriteString("&f_WT=2")
	case cfg.Search.Location.Hybrid:
		b.WriteString("&f_WT=3")
	default:
		b.WriteString("&f_WT=1")
	}
	if levels := experienceLevels(cfg.Search.Experience); len(levels) > 0 {
		b.WriteString("&f_E=")
		for i, level := range levels {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, "%d", level)
		}
	}
	fmt.Fprintf(&b, "&f_TPR=r%d", cfg.Search.MaxAgeInDays*86400)
	fmt.Fprintf(&b, "&f_AL=%t", cfg.LinkedIn.EasyApplyOnly)

	b.WriteString("&keywords=")
	if cfg.Search.Location.Remote {
		b.WriteString("remote%20")
	}
	b.WriteString(url.QueryEscape(term))
	if ignore := cfg.Search.Terms.Ignore; len(ignore) > 0 {
		b.WriteString("%20NOT%20%28")
		for i, t := range ignore {
			if i > 0 {
				b.WriteString("%20or%20")
			}
			b.WriteString(url.QueryEscape(t))
		}
		b.WriteString("%29")
	}
	return b.String()
}

// experienceLevels maps the coarse entry/mid/senior toggles onto
// LinkedIn's six f_E buckets, merged ascending without repeats.
func experienceLevels(exp config.Experience) []int {
	var levels []int
	add := func(vals ...int) {
		for _, v := range vals {
			if len(levels) == 0 || levels[len(levels)-1] < v {
				levels = append(levels, v)
			}
		}
	}
	if exp.Entry {
		add(1, 2, 3)
	}
	if exp.Mid {
		add(3, 4)
	}
	if exp.Senior {
		add(4, 5, 6)
	}
	return levels
}
