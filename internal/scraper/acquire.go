package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/maltedev/partpicker-scraper/internal/parser"
)

// acquire fetches pageURL until it yields a usable document.
//
// A rate-limit verification page fails immediately. A challenge page is
// re-rendered once; if the render clears it the document is accepted,
// otherwise the loop backs off for retryDelay and refetches, up to
// maxRetries refetches. With skipRender set the loop instead performs
// one final fetch and accepts whatever comes back.
//
// Transport errors from the fetcher propagate unwrapped.
func (c *Client) acquire(ctx context.Context, pageURL string) (*Document, error) {
	for retries := 0; ; {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		doc, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		switch parser.Classify(doc.Root) {
		case parser.PageOK:
			return doc, nil
		case parser.PageRateLimited:
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, pageURL)
		}

		c.logger.Warn("challenge page served", "url", pageURL, "retries", retries)

		if c.skipRender {
			return c.fetcher.Fetch(ctx, pageURL)
		}

		rendered, err := c.fetcher.Render(ctx, doc)
		if err != nil {
			return nil, err
		}
		switch parser.Classify(rendered.Root) {
		case parser.PageOK:
			return rendered, nil
		case parser.PageRateLimited:
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, pageURL)
		}

		if retries >= c.maxRetries {
			return nil, fmt.Errorf("%w after %d attempts: %s", ErrChallengeExceeded, retries+1, pageURL)
		}
		if c.retryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
		retries++
	}
}
