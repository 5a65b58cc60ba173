package parse

import (
	"regexp"
	"strconv"
	"strings"
)

const hoursPerYear = 2080

// payPattern pairs a compensation regex with the multiplier that
// annualizes its captured values. Order matters: range patterns must be
// tried before the looser single-value ones, and k-suffixed salaries
// before plain hourly figures, otherwise "$90K" would parse as $90/hr.
type payPattern struct {
	re         *regexp.Regexp
	multiplier float64
}

var payPatterns = []payPattern{
	// "$80k - $100k"
	{regexp.MustCompile(`\$(\d+(?:\.\d+)?)[kK]\s*-\s*\$(\d+(?:\.\d+)?)[kK]`), 1000},
	// "$80,000 - $100,000"
	{regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})+)\s*-\s*\$(\d{1,3}(?:,\d{3})+)`), 1},
	// "$40 - $50" an hour
	{regexp.MustCompile(`\$(\d+(?:\.\d+)?)\s*-\s*\$(\d+(?:\.\d+)?)`), hoursPerYear},
	// "$90K"
	{regexp.MustCompile(`\$(\d+(?:\.\d+)?)[kK]`), 1000},
	// "$90,000"
	{regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})+)`), 1},
	// "$45" an hour
	{regexp.MustCompile(`\$(\d+(?:\.\d+)?)`), hoursPerYear},
}

// Pay extracts an annualized (min, max) pay band from a raw compensation
// string. A single-value match yields min == max. No match yields
// (nil, nil).
func Pay(raw string) (*float64, *float64) {
	for _, p := range payPatterns {
		match := p.re.FindStringSubmatch(raw)
		if match == nil {
			continue
		}
		low, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
		if err != nil {
			continue
		}
		low *= p.multiplier
		if len(match) > 2 {
			high, err := strconv.ParseFloat(strings.ReplaceAll(match[2], ",", ""), 64)
			if err != nil {
				continue
			}
			high *= p.multiplier
			return &low, &high
		}
		high := low
		return &low, &high
	}
	return nil, nil
}
