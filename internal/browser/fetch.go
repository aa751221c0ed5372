package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"github.com/maltedev/partpicker-scraper/internal/scraper"
)

// Fetch loads a page without waiting for scripts and returns the parsed
// document together with the URL the browser actually landed on.
func (b *Browser) Fetch(ctx context.Context, pageURL string) (*scraper.Document, error) {
	return b.load(ctx, pageURL, playwright.WaitUntilStateDomcontentloaded)
}

// Render re-loads a previously fetched page and waits for network idle,
// giving the challenge script time to run and redirect to the real
// content.
func (b *Browser) Render(ctx context.Context, doc *scraper.Document) (*scraper.Document, error) {
	return b.load(ctx, doc.URL.String(), playwright.WaitUntilStateNetworkidle)
}

func (b *Browser) load(ctx context.Context, pageURL string, waitUntil *playwright.WaitUntilState) (*scraper.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		WaitUntil: waitUntil,
		Timeout:   playwright.Float(float64(b.timeout.Milliseconds())),
	}); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", pageURL, err)
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}
	root, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page content: %w", err)
	}

	landed, err := url.Parse(page.URL())
	if err != nil {
		landed, _ = url.Parse(pageURL)
	}

	b.logger.Debug("fetched page", "url", pageURL, "landed", page.URL())
	return &scraper.Document{Root: root, URL: landed}, nil
}

func (b *Browser) Close() error {
	var errs []error

	if b.context != nil {
		if err := b.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
	}
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}
