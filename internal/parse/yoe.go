package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var wordToInt = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20,
}

// yoeRangeRe matches "3-5 years", "three to five years", "3 – 5+ years",
// "2-4 plus years" and the like. Both endpoints may be digits or number
// words.
var yoeRangeRe = regexp.MustCompile(
	`([0-9]+|[a-z]+)\s*(?:–|-|to)\s*([0-9]+|[a-z]+)\+?\s*(?:plus\s+)?years`)

// yoeMinRes match open-ended minimums. Checked only after no range
// matched anywhere in the description.
var yoeMinRes = []*regexp.Regexp{
	regexp.MustCompile(`over\s+([0-9]+|[a-z]+)\s+years`),
	regexp.MustCompile(`at least\s+([0-9]+|[a-z]+)\s+years`),
	regexp.MustCompile(`minimum of\s+([0-9]+|[a-z]+)\s+years`),
	regexp.MustCompile(`minimum\s+([0-9]+|[a-z]+)\s+years`),
	regexp.MustCompile(`([0-9]+|[a-z]+)\s+plus\s+years`),
	regexp.MustCompile(`([0-9]+|[a-z]+)\+\s*years`),
	regexp.MustCompile(`([0-9]+|[a-z]+)\s+years of experience`),
	regexp.MustCompile(`([0-9]+|[a-z]+)\s+years experience`),
	regexp.MustCompile(`([0-9]+|[a-z]+)\s+years of professional`),
	regexp.MustCompile(`([0-9]+|[a-z]+)\s+years professional`),
	regexp.MustCompile(`([0-9]+|[a-z]+)\s+years of progressive experience`),
}

// Yoe pulls a required years-of-experience band out of free-text job
// description copy. Ranges win over open-ended minimums; an open-ended
// match yields (n, nil); no mention yields (nil, nil).
func Yoe(description string) (*int, *int) {
	text := strings.ToLower(description)
	for _, match := range yoeRangeRe.FindAllStringSubmatch(text, -1) {
		low, okLow := yoeTerm(match[1])
		high, okHigh := yoeTerm(match[2])
		if okLow && okHigh {
			return &low, &high
		}
	}
	for _, re := range yoeMinRes {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			if n, ok := yoeTerm(match[1]); ok {
				return &n, nil
			}
		}
	}
	return nil, nil
}

func yoeTerm(term string) (int, bool) {
	if n, err := strconv.Atoi(term); err == nil {
		return n, true
	}
	n, ok := wordToInt[term]
	return n, ok
}
