package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type move struct {
	x, y float64
}

type stubPage struct {
	moves   []move
	scrolls []int
}

func (stubPage) Find(string) (Node, bool, error)     { return nil, false, nil }
func (stubPage) FindAll(string) ([]Node, error)      { return nil, nil }
func (stubPage) Nth(string, int) (Node, bool, error) { return nil, false, nil }
func (stubPage) Text() (string, error)               { return "", nil }
func (stubPage) InnerHTML() (string, error)          { return "", nil }
func (stubPage) Attribute(string) (string, error)    { return "", nil }
func (stubPage) Click() error                        { return nil }
func (stubPage) ScrollIntoView() error               { return nil }
func (stubPage) IsVisible() (bool, error)            { return true, nil }
func (stubPage) URL() string                         { return "" }
func (stubPage) Navigate(string) error               { return nil }
func (stubPage) Refresh() error                      { return nil }
func (stubPage) Title() (string, error)              { return "", nil }
func (stubPage) TabCount() int                       { return 1 }
func (stubPage) CloseTabsAfter(int) error            { return nil }

func (p *stubPage) ScrollBy(pixels int) error {
	p.scrolls = append(p.scrolls, pixels)
	return nil
}

func (p *stubPage) MouseMove(x, y float64) error {
	p.moves = append(p.moves, move{x, y})
	return nil
}

func silenceSleep(t *testing.T) {
	t.Helper()
	orig := sleep
	sleep = func(time.Duration) {}
	t.Cleanup(func() { sleep = orig })
}

func TestMouseJiggleMovesWithinViewportBounds(t *testing.T) {
	silenceSleep(t)
	page := &stubPage{}
	require.NoError(t, MouseJiggle(page))

	require.Len(t, page.moves, 3)
	for _, m := range page.moves {
		assert.GreaterOrEqual(t, m.x, 100.0)
		assert.Less(t, m.x, 900.0)
		assert.GreaterOrEqual(t, m.y, 100.0)
		assert.Less(t, m.y, 600.0)
	}
}

func TestHumanScrollStepsDownThenBacksUp(t *testing.T) {
	silenceSleep(t)
	page := &stubPage{}
	require.NoError(t, HumanScroll(page))

	require.Len(t, page.scrolls, 6)
	for _, px := range page.scrolls[:5] {
		assert.Equal(t, 400, px)
	}
	assert.Equal(t, -200, page.scrolls[5])
}
