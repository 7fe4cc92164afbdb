package page

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultFetchTimeout bounds loading a page in the headless browser.
const DefaultFetchTimeout = 30 * time.Second

// Fetch loads url in a headless Chrome and returns the rendered HTML, so
// elements created by scripts are included.
func Fetch(ctx context.Context, url string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var content string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &content, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", url, err)
	}
	return content, nil
}

// FetchDocument loads url and parses the rendered page.
func FetchDocument(ctx context.Context, url string, timeout time.Duration) (*Document, error) {
	content, err := Fetch(ctx, url, timeout)
	if err != nil {
		return nil, err
	}
	return ParseString(content)
}
