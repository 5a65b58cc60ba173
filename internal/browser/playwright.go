package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywright launches a headful Chromium. Job boards fingerprint
// headless browsers aggressively, so headless stays off.
func NewPlaywright() (*PlaywrightManager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(false),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

func (pm *PlaywrightManager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	ctx, err := pm.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	if len(cookies) > 0 {
		if err := ctx.AddCookies(cookies); err != nil {
			return nil, fmt.Errorf("failed to add cookies: %w", err)
		}
	}
	return ctx, nil
}

func (pm *PlaywrightManager) Close() error {
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			return err
		}
	}
	if pm.pw != nil {
		return pm.pw.Stop()
	}
	return nil
}

// WrapPage adapts a playwright page to the Page contract the scrape
// loop consumes
func WrapPage(page playwright.Page) Page {
	return &pwPage{page: page}
}

type pwPage struct {
	page playwright.Page
}

func (p *pwPage) Find(selector string) (Node, bool, error) {
	return findIn(p.page.Locator(selector))
}

func (p *pwPage) FindAll(selector string) ([]Node, error) {
	return allIn(p.page.Locator(selector))
}

func (p *pwPage) Nth(selector string, index int) (Node, bool, error) {
	return findIn(p.page.Locator(selector).Nth(index))
}

func (p *pwPage) Text() (string, error) {
	return p.page.Locator("body").InnerText()
}

func (p *pwPage) InnerHTML() (string, error) {
	return p.page.Locator("body").InnerHTML()
}

func (p *pwPage) Attribute(name string) (string, error) {
	attr, err := p.page.Locator("body").GetAttribute(name)
	if err != nil {
		return "", err
	}
	return attr, nil
}

func (p *pwPage) Click() error {
	return p.page.Locator("body").Click(playwright.LocatorClickOptions{
		Force:    playwright.Bool(true),
		Position: &playwright.Position{X: 1, Y: 1},
	})
}

func (p *pwPage) ScrollIntoView() error { return nil }

func (p *pwPage) IsVisible() (bool, error) { return true, nil }

func (p *pwPage) URL() string {
	return p.page.URL()
}

func (p *pwPage) Navigate(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	})
	return err
}

func (p *pwPage) Refresh() error {
	_, err := p.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (p *pwPage) Title() (string, error) {
	return p.page.Title()
}

func (p *pwPage) TabCount() int {
	return len(p.page.Context().Pages())
}

// CloseTabsAfter closes every tab past the first count ones. The apply
// flow records the tab count before drilling in and restores it after,
// which keeps window growth bounded.
func (p *pwPage) CloseTabsAfter(count int) error {
	pages := p.page.Context().Pages()
	for i := len(pages) - 1; i >= count; i-- {
		if pages[i] == p.page {
			continue
		}
		if err := pages[i].Close(); err != nil {
			return err
		}
	}
	return nil
}

func (p *pwPage) ScrollBy(pixels int) error {
	_, err := p.page.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", pixels))
	return err
}

func (p *pwPage) MouseMove(x, y float64) error {
	return p.page.Mouse().Move(x, y)
}

type pwNode struct {
	loc playwright.Locator
}

func (n *pwNode) Find(selector string) (Node, bool, error) {
	return findIn(n.loc.Locator(selector))
}

func (n *pwNode) FindAll(selector string) ([]Node, error) {
	return allIn(n.loc.Locator(selector))
}

func (n *pwNode) Nth(selector string, index int) (Node, bool, error) {
	return findIn(n.loc.Locator(selector).Nth(index))
}

func (n *pwNode) Text() (string, error) {
	return n.loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(2000),
	})
}

func (n *pwNode) InnerHTML() (string, error) {
	return n.loc.InnerHTML(playwright.LocatorInnerHTMLOptions{
		Timeout: playwright.Float(2000),
	})
}

func (n *pwNode) Attribute(name string) (string, error) {
	attr, err := n.loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(2000),
	})
	if err != nil {
		return "", err
	}
	return attr, nil
}

func (n *pwNode) Click() error {
	return n.loc.Click(playwright.LocatorClickOptions{
		Force: playwright.Bool(true),
	})
}

func (n *pwNode) ScrollIntoView() error {
	return n.loc.ScrollIntoViewIfNeeded()
}

func (n *pwNode) IsVisible() (bool, error) {
	return n.loc.IsVisible()
}

func findIn(loc playwright.Locator) (Node, bool, error) {
	count, err := loc.Count()
	if err != nil {
		return nil, false, err
	}
	if count == 0 {
		return nil, false, nil
	}
	return &pwNode{loc: loc.First()}, true, nil
}

func allIn(loc playwright.Locator) ([]Node, error) {
	locs, err := loc.All()
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, len(locs))
	for i, l := range locs {
		nodes[i] = &pwNode{loc: l}
	}
	return nodes, nil
}
