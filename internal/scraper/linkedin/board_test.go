package linkedin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobhawk-automation/internal/config"
)

func pagedBoard(pageSize int) *Board {
	cfg := &config.Config{}
	cfg.LinkedIn.PageSize = pageSize
	return &Board{cfg: cfg}
}

func TestAdvanceWalksOneBasedPositions(t *testing.T) {
	b := pagedBoard(26)
	total, index := 0, 0
	for want := 1; want <= 25; want++ {
		total, index = b.Advance(total, index)
		assert.Equal(t, want, total)
		assert.Equal(t, want, index)
	}
}

func TestAdvanceSkipsPositionZeroAtPageWrap(t *testing.T) {
	b := pagedBoard(26)

	// attempt 26 would land on position 0, which no card occupies
	total, index := b.Advance(25, 25)
	assert.Equal(t, 27, total)
	assert.Equal(t, 1, index)

	total, index = b.Advance(total, index)
	assert.Equal(t, 28, total)
	assert.Equal(t, 2, index)
}

func TestAdvanceSequenceForThirtyAttempts(t *testing.T) {
	b := pagedBoard(26)

	var totals, indices []int
	total, index := 0, 0
	for i := 0; i < 30; i++ {
		total, index = b.Advance(total, index)
		totals = append(totals, total)
		indices = append(indices, index)
	}

	wantTotals := []int{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
		21, 22, 23, 24, 25, 27, 28, 29, 30, 31,
	}
	wantIndices := []int{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
		21, 22, 23, 24, 25, 1, 2, 3, 4, 5,
	}
	assert.Equal(t, wantTotals, totals)
	assert.Equal(t, wantIndices, indices)
}

func TestAdvanceRespectsConfiguredPageSize(t *testing.T) {
	b := pagedBoard(10)
	total, index := b.Advance(9, 9)
	assert.Equal(t, 11, total)
	assert.Equal(t, 1, index)
}

func TestDescriptionPopulated(t *testing.T) {
	assert.False(t, descriptionPopulated(""))
	assert.False(t, descriptionPopulated("Loading..."))
	assert.True(t, descriptionPopulated("line one\nline two\nline three"))
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	assert.True(t, descriptionPopulated(string(long)))
}
