package indeed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobhawk-automation/internal/config"
)

func urlConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Search.MaxAgeInDays = 7
	cfg.Search.Location.MaxDistanceMiles = 25
	return cfg
}

func TestBuildQueryURLBasics(t *testing.T) {
	got := BuildQueryURL(urlConfig(), "golang")
	assert.Contains(t, got, "https://www.indeed.com/jobs?q=%28golang%29")
	assert.Contains(t, got, "&from=searchOnDesktopSerp")
	assert.Contains(t, got, "&l=")
	assert.Contains(t, got, "&fromage=7")
	assert.Contains(t, got, "&salaryType=%240%2B")
	assert.Contains(t, got, "&radius=25")
	assert.NotContains(t, got, "&sc=0kf%3A")
}

func TestBuildQueryURLNegatesIgnoreTerms(t *testing.T) {
	cfg := urlConfig()
	cfg.Search.Terms.Ignore = []string{"clearance", "contract"}
	got := BuildQueryURL(cfg, "golang")
	assert.Contains(t, got, "q=%28golang%29+-clearance+-contract&")
}

func TestBuildQueryURLRemote(t *testing.T) {
	cfg := urlConfig()
	cfg.Search.Location.Remote = true
	got := BuildQueryURL(cfg, "golang")
	assert.Contains(t, got, `&l="remote"`)
	assert.Contains(t, got, "&sc=0kf%3Aattr%28DSQF7%29%3B")
}

func TestBuildQueryURLHybrid(t *testing.T) {
	cfg := urlConfig()
	cfg.Search.Location.Hybrid = true
	cfg.Search.Location.City = "Austin"
	got := BuildQueryURL(cfg, "golang")
	assert.Contains(t, got, "&l=Austin")
	assert.Contains(t, got, "&sc=0kf%3Aattr%28PAXZC%29%3B")
}

func TestBuildQueryURLMinSalary(t *testing.T) {
	cfg := urlConfig()
	min := 90000.0
	cfg.Search.Salary.Min = &min
	got := BuildQueryURL(cfg, "golang")
	assert.Contains(t, got, "&salaryType=%2490000%2B")
}
