package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	hoursAgoRe = regexp.MustCompile(`([0-9]+)h`)
	daysAgoRe  = regexp.MustCompile(`([0-9]+)d`)
	isoDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// PostTime turns a listing-age string into an absolute timestamp.
// Boards expose this in two shapes: relative ("5h", "3d", "30d+") and
// ISO dates. Anything else yields nil — some boards simply don't expose
// post times.
func PostTime(raw string, now time.Time) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if isoDateRe.MatchString(raw) {
		t, err := time.Parse("2006-01-02", raw[:10])
		if err == nil {
			return &t
		}
	}

	if match := hoursAgoRe.FindStringSubmatch(raw); match != nil {
		hours, _ := strconv.Atoi(match[1])
		t := now.Add(-time.Duration(hours) * time.Hour)
		return &t
	}

	if match := daysAgoRe.FindStringSubmatch(raw); match != nil {
		days, _ := strconv.Atoi(match[1])
		t := now.AddDate(0, 0, -days)
		return &t
	}

	return nil
}
