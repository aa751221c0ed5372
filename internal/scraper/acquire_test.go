package scraper

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const challengeHTML = `<html><head><title>Just a moment...</title></head><body></body></html>`

const verificationHTML = `<html><head><title>Verification</title></head>
<body><h1 class="pageTitle">Verification</h1></body></html>`

const contentHTML = `<html><head><title>AMD Ryzen 5 5600X</title></head>
<body><h1 class="pageTitle">AMD Ryzen 5 5600X</h1></body></html>`

// fakeFetcher serves canned pages and counts calls. GetParts fetches
// concurrently, so the counters are guarded.
type fakeFetcher struct {
	t          *testing.T
	fetchHTML  []string // consumed per Fetch call; last entry repeats
	renderHTML string   // what every Render returns; "" keeps the input
	fetchErr   error

	mu      sync.Mutex
	fetches int
	renders int
}

func docFrom(t *testing.T, html, rawURL string) *Document {
	t.Helper()
	root, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return &Document{Root: root, URL: u}
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL string) (*Document, error) {
	f.mu.Lock()
	f.fetches++
	i := f.fetches - 1
	f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if i >= len(f.fetchHTML) {
		i = len(f.fetchHTML) - 1
	}
	return docFrom(f.t, f.fetchHTML[i], pageURL), nil
}

func (f *fakeFetcher) Render(_ context.Context, doc *Document) (*Document, error) {
	f.mu.Lock()
	f.renders++
	f.mu.Unlock()
	if f.renderHTML == "" {
		return doc, nil
	}
	return docFrom(f.t, f.renderHTML, doc.URL.String()), nil
}

func newTestClient(t *testing.T, f Fetcher, opts Options) *Client {
	t.Helper()
	c, err := NewClient(f, opts)
	require.NoError(t, err)
	return c
}

func TestAcquireOK(t *testing.T) {
	f := &fakeFetcher{t: t, fetchHTML: []string{contentHTML}}
	c := newTestClient(t, f, Options{})

	doc, err := c.acquire(context.Background(), "https://pcpartpicker.com/product/aaaaaa")
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Equal(t, 1, f.fetches)
	assert.Equal(t, 0, f.renders)
}

// A persisting challenge with MaxRetries=2 costs exactly three fetch
// attempts (initial + 2 retries) before giving up.
func TestAcquireChallengeExhaustsRetries(t *testing.T) {
	f := &fakeFetcher{t: t, fetchHTML: []string{challengeHTML}}
	c := newTestClient(t, f, Options{MaxRetries: Int(2)})

	_, err := c.acquire(context.Background(), "https://pcpartpicker.com/product/aaaaaa")
	assert.ErrorIs(t, err, ErrChallengeExceeded)
	assert.Contains(t, err.Error(), "https://pcpartpicker.com/product/aaaaaa")
	assert.Equal(t, 3, f.fetches)
	assert.Equal(t, 3, f.renders)
}

// An explicit zero budget means no refetching at all: the first
// challenge that survives its render fails the call. Leaving the budget
// unset still falls back to the default.
func TestAcquireChallengeZeroRetries(t *testing.T) {
	f := &fakeFetcher{t: t, fetchHTML: []string{challengeHTML}}
	c := newTestClient(t, f, Options{MaxRetries: Int(0)})

	_, err := c.acquire(context.Background(), "https://pcpartpicker.com/product/aaaaaa")
	assert.ErrorIs(t, err, ErrChallengeExceeded)
	assert.Equal(t, 1, f.fetches)
	assert.Equal(t, 1, f.renders)

	unset := newTestClient(t, &fakeFetcher{t: t}, Options{})
	assert.Equal(t, DefaultMaxRetries, unset.maxRetries)
}

func TestAcquireChallengeClearedByRender(t *testing.T) {
	f := &fakeFetcher{t: t, fetchHTML: []string{challengeHTML}, renderHTML: contentHTML}
	c := newTestClient(t, f, Options{})

	doc, err := c.acquire(context.Background(), "https://pcpartpicker.com/product/aaaaaa")
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Equal(t, 1, f.fetches)
	assert.Equal(t, 1, f.renders)
}

func TestAcquireChallengeClearedOnSecondFetch(t *testing.T) {
	f := &fakeFetcher{t: t, fetchHTML: []string{challengeHTML, contentHTML}}
	c := newTestClient(t, f, Options{MaxRetries: Int(3)})

	doc, err := c.acquire(context.Background(), "https://pcpartpicker.com/product/aaaaaa")
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Equal(t, 2, f.fetches)
	assert.Equal(t, 1, f.renders)
}

// The verification page is terminal on the first sighting: one fetch,
// no render, no retry.
func TestAcquireRateLimited(t *testing.T) {
	f := &fakeFetcher{t: t, fetchHTML: []string{verificationHTML}}
	c := newTestClient(t, f, Options{MaxRetries: Int(5)})

	_, err := c.acquire(context.Background(), "https://pcpartpicker.com/product/aaaaaa")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, f.fetches)
	assert.Equal(t, 0, f.renders)
}

// With rendering skipped the loop performs one final fetch and accepts
// the result even if it is still a challenge page.
func TestAcquireSkipRender(t *testing.T) {
	f := &fakeFetcher{t: t, fetchHTML: []string{challengeHTML}}
	c := newTestClient(t, f, Options{SkipRenderOnChallenge: true})

	doc, err := c.acquire(context.Background(), "https://pcpartpicker.com/product/aaaaaa")
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Equal(t, 2, f.fetches)
	assert.Equal(t, 0, f.renders)
}

// Transport failures are the caller's problem and pass through
// unwrapped.
func TestAcquireTransportErrorPropagates(t *testing.T) {
	transportErr := errors.New("connection reset")
	f := &fakeFetcher{t: t, fetchErr: transportErr}
	c := newTestClient(t, f, Options{})

	_, err := c.acquire(context.Background(), "https://pcpartpicker.com/product/aaaaaa")
	assert.Same(t, transportErr, err)
	assert.Equal(t, 1, f.fetches)
}
