// Thin contract between the scrape loop and the real browser.
// The core state machine only ever talks to these interfaces; the
// playwright implementation lives next door and fakes live in tests.

package browser

// Node is one DOM element. Find reports presence explicitly instead of
// erroring, since "not there yet" is an expected, frequent outcome while
// a page renders.
type Node interface {
	Find(selector string) (Node, bool, error)
	FindAll(selector string) ([]Node, error)
	Nth(selector string, index int) (Node, bool, error)
	Text() (string, error)
	InnerHTML() (string, error)
	Attribute(name string) (string, error)
	Click() error
	ScrollIntoView() error
	IsVisible() (bool, error)
}

// Page is the current browser tab plus the handful of tab-set operations
// the apply flow needs to bound window growth.
type Page interface {
	Node
	URL() string
	Navigate(url string) error
	Refresh() error
	Title() (string, error)
	TabCount() int
	CloseTabsAfter(count int) error
	ScrollBy(pixels int) error
	MouseMove(x, y float64) error
}
