package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileNameCarriesPlatformAndTimestamp(t *testing.T) {
	s := &ScreenShotDebugger{
		outputDir: "logs/screenshots",
		now: func() time.Time {
			return time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC)
		},
	}
	assert.Equal(t, "linkedin_2026-08-31_14-05-09.png", s.fileName("linkedin"))
}
