// Package scraper orchestrates identifier resolution, document
// acquisition and field extraction into a single client. The network
// transport is injected as a Fetcher; the package itself never touches
// the wire.
package scraper

import (
	"context"
	"errors"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrChallengeExceeded means the anti-bot challenge persisted
	// through every render and retry attempt.
	ErrChallengeExceeded = errors.New("anti-bot challenge exceeded retry limit")
	// ErrRateLimited means the site served its verification page.
	// Unlike a challenge this is terminal for the call: retrying
	// inside the loop would only extend the ban.
	ErrRateLimited = errors.New("rate limited by pcpartpicker")
)

// Document is a fetched, parsed page together with the URL it was
// actually served from (after redirects), which anchors relative links
// during extraction.
type Document struct {
	Root *goquery.Document
	URL  *url.URL
}

// Fetcher is the transport capability the client depends on. Fetch
// retrieves and parses a page; Render re-renders a previously fetched
// page with scripts executed, which is how the anti-bot challenge
// resolves itself in a real browser.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*Document, error)
	Render(ctx context.Context, doc *Document) (*Document, error)
}
