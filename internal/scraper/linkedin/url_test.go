package linkedin

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

func TestBuildQueryURLOnsiteDefaults(t *testing.T) {
	cfg := urlConfig()
	got := BuildQueryURL(cfg, "golang developer")
	assert.Contains(t, got, "https://www.linkedin.com/jobs/search-results/?")
	assert.Contains(t, got, "&f_WT=1")
	assert.Contains(t, got, "&f_TPR=r604800")
	assert.Contains(t, got, "&f_AL=false")
	assert.Contains(t, got, "&keywords=golang+developer")
	assert.NotContains(t, got, "&f_E=")
	assert.NotContains(t, got, "&location=")
}

func TestBuildQueryURLRemotePrefixesKeywords(t *testing.T) {
	cfg := urlConfig()
	cfg.Search.Location.Remote = true
	got := BuildQueryURL(cfg, "golang")
	assert.Contains(t, got, "&f_WT=2")
	assert.Contains(t, got, "&keywords=remote%20golang")
}

func TestBuildQueryURLIgnoreTermsBecomeNotClause(t *testing.T) {
	cfg := urlConfig()
	cfg.Search.Terms.Ignore = []string{"clearance", "contract"}
	got := BuildQueryURL(cfg, "golang")
	assert.Contains(t, got, "%20NOT%20%28clearance%20or%20contract%29")
}

func TestExperienceLevelsMergeWithoutRepeats(t *testing.T) {
	tests := []struct {
		name string
		exp  config.Experience
		want []int
	}{
		{"none", config.Experience{}, nil},
		{"entry", config.Experience{Entry: true}, []int{1, 2, 3}},
		{"entry and mid share level three", config.Experience{Entry: true, Mid: true}, []int{1, 2, 3, 4}},
		{"mid and senior share level four", config.Experience{Mid: true, Senior: true}, []int{3, 4, 5, 6}},
		{"all", config.Experience{Entry: true, Mid: true, Senior: true}, []int{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, experienceLevels(tt.exp))
		})
	}
}
