package glassdoor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobhawk-automation/internal/config"
)

func TestAdvanceMapsAttemptsToPositions(t *testing.T) {
	b := &Board{cfg: &config.Config{}}
	total, index := 0, 0
	for want := 1; want <= 40; want++ {
		total, index = b.Advance(total, index)
		assert.Equal(t, want, total)
		assert.Equal(t, want, index)
	}
}

func TestDescriptionLoaded(t *testing.T) {
	assert.False(t, descriptionLoaded(""))
	assert.False(t, descriptionLoaded("<p>short</p>"))
	long := strings.Repeat("a", 150)
	assert.False(t, descriptionLoaded(long))
	assert.True(t, descriptionLoaded(long+"<button>Show more</button>"))
}

func TestZeroJobsTitle(t *testing.T) {
	assert.True(t, zeroJobsTitleRe.MatchString("0 Golang Jobs in Austin, TX"))
	assert.False(t, zeroJobsTitleRe.MatchString("120 Golang Jobs in Austin, TX"))
}

func TestJobCountHeader(t *testing.T) {
	m := jobCountRe.FindStringSubmatch("1204 golang jobs in united states")
	assert.NotNil(t, m)
	assert.Equal(t, "1204", m[1])
	assert.Nil(t, jobCountRe.FindStringSubmatch("jobs loading"))
}
