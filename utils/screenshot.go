package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenShotDebugger captures the page state when a platform halts, so
// rate-limit walls and broken layouts can be inspected after the run.
type ScreenShotDebugger struct {
	outputDir string
	now       func() time.Time
}

func NewScreenShotDebugger(outputDir string) (*ScreenShotDebugger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating screenshot directory: %w", err)
	}
	return &ScreenShotDebugger{outputDir: outputDir, now: time.Now}, nil
}

// Capture writes a full-page screenshot named after the platform and the
// capture time, and returns the path it was saved to.
func (s *ScreenShotDebugger) Capture(page playwright.Page, name string) (string, error) {
	path := filepath.Join(s.outputDir, s.fileName(name))
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("capturing %s screenshot: %w", name, err)
	}
	return path, nil
}

func (s *ScreenShotDebugger) fileName(name string) string {
	return fmt.Sprintf("%s_%s.png", name, s.now().Format("2006-01-02_15-04-05"))
}
