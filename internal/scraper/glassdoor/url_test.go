package glassdoor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobhawk-automation/internal/config"
)

func urlConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Search.MaxAgeInDays = 7
	return cfg
}

func TestBuildQueryURLDefaultsToUnitedStates(t *testing.T) {
	got := BuildQueryURL(urlConfig(), "golang")
	// "united-states" is 13 runes, so the keyword offsets start at 14
	assert.Contains(t, got, "https://www.glassdoor.com/Job/united-states-golang-jobs-SRCH_IL.0,13_IN1_KO14,20.htm?")
	assert.Contains(t, got, "remoteWorkType=0")
	assert.Contains(t, got, "&minRating=0")
	assert.Contains(t, got, "&fromAge=7")
	assert.Contains(t, got, "&minSalary=0")
	assert.Contains(t, got, "&maxSalary=1000000")
	assert.NotContains(t, got, "&applicationType=1")
}

func TestBuildQueryURLCityAndFilters(t *testing.T) {
	cfg := urlConfig()
	cfg.Search.Location.City = "New York"
	cfg.Search.Location.Remote = true
	cfg.Search.MinCompanyRating = 3.5
	min, max := 90000.0, 150000.0
	cfg.Search.Salary.Min = &min
	cfg.Search.Salary.Max = &max
	cfg.Glassdoor.EasyApplyOnly = true

	got := BuildQueryURL(cfg, "golang")
	assert.Contains(t, got, "/Job/new-york-golang-jobs-")
	assert.Contains(t, got, "remoteWorkType=1")
	assert.Contains(t, got, "&minRating=3.5")
	assert.Contains(t, got, "&minSalary=90000")
	assert.Contains(t, got, "&maxSalary=150000")
	assert.Contains(t, got, "&applicationType=1")
}
