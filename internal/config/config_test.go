package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestPhraseUnmarshal(t *testing.T) {
	raw := `
titles:
  - senior
  - [embedded, contractor]
companies:
  - acme
`
	var lists MatchLists
	err := yaml.Unmarshal([]byte(raw), &lists)
	assert.NoError(t, err)
	assert.Equal(t, []Phrase{{"senior"}, {"embedded", "contractor"}}, lists.Titles)
	assert.Equal(t, []Phrase{{"acme"}}, lists.Companies)
}

func TestPhraseUnmarshalRejectsMapping(t *testing.T) {
	raw := `
titles:
  - key: value
`
	var lists MatchLists
	err := yaml.Unmarshal([]byte(raw), &lists)
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, 26, cfg.LinkedIn.PageSize)
	assert.Equal(t, 20, cfg.Indeed.PageSize)
	assert.Equal(t, "English", string(cfg.Behavior.ExpectedLanguage))
	assert.Equal(t, 50, cfg.Behavior.PauseEveryJobs)
	assert.Equal(t, float64(90), cfg.Behavior.MemoryLimitPercent)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.LinkedIn.PageSize = 24
	cfg.applyDefaults()
	assert.Equal(t, 24, cfg.LinkedIn.PageSize)
}
