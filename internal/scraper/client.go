package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/maltedev/partpicker-scraper/internal/models"
	"github.com/maltedev/partpicker-scraper/internal/parser"
	"github.com/maltedev/partpicker-scraper/internal/urls"
)

type Options struct {
	// Region is the default region for bare IDs. Empty means "us".
	Region string
	// MaxRetries bounds refetches after a persisting challenge. Nil
	// means DefaultMaxRetries; an explicit zero disables refetching,
	// failing on the first surviving challenge.
	MaxRetries *int
	// RetryDelay is the backoff between challenge refetches.
	RetryDelay time.Duration
	// SkipRenderOnChallenge accepts the final fetch result as-is
	// instead of re-rendering challenge pages.
	SkipRenderOnChallenge bool
	// RateLimit paces fetches in requests per second; 0 disables
	// pacing.
	RateLimit float64
	// ConcurrentLimit bounds the workers used by GetParts.
	ConcurrentLimit int
	Logger          *slog.Logger
}

const (
	DefaultMaxRetries      = 3
	DefaultConcurrentLimit = 4
)

// Int returns a pointer to v, for filling optional Options fields.
func Int(v int) *int {
	return &v
}

type Client struct {
	fetcher     Fetcher
	resolver    *urls.Resolver
	parser      *parser.Parser
	limiter     *rate.Limiter
	logger      *slog.Logger
	maxRetries  int
	retryDelay  time.Duration
	skipRender  bool
	concurrency int
}

func NewClient(fetcher Fetcher, opts Options) (*Client, error) {
	resolver, err := urls.NewResolver(opts.Region)
	if err != nil {
		return nil, err
	}

	maxRetries := DefaultMaxRetries
	if opts.MaxRetries != nil {
		maxRetries = *opts.MaxRetries
		if maxRetries < 0 {
			maxRetries = 0
		}
	}
	concurrency := opts.ConcurrentLimit
	if concurrency <= 0 {
		concurrency = DefaultConcurrentLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Client{
		fetcher:     fetcher,
		resolver:    resolver,
		parser:      parser.New(),
		limiter:     limiter,
		logger:      logger.With("component", "scraper"),
		maxRetries:  maxRetries,
		retryDelay:  opts.RetryDelay,
		skipRender:  opts.SkipRenderOnChallenge,
		concurrency: concurrency,
	}, nil
}

// GetPart fetches and extracts a single product. idOrURL may be a bare
// 6-character ID or any product URL; region overrides the default for
// this call when non-empty.
func (c *Client) GetPart(ctx context.Context, idOrURL, region string) (*models.Part, error) {
	pageURL, err := c.resolver.Product(idOrURL, region)
	if err != nil {
		return nil, err
	}
	doc, err := c.acquire(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	part, err := c.parser.ParsePart(doc.Root, doc.URL)
	if err != nil {
		return nil, fmt.Errorf("extract part %s: %w", pageURL, err)
	}
	c.logger.Info("fetched part", "url", pageURL, "name", part.Name, "vendors", len(part.Vendors))
	return part, nil
}

// GetParts fetches several products concurrently, one worker per fetch,
// bounded by the configured concurrency limit. Order is preserved; the
// first failure cancels the remaining fetches.
func (c *Client) GetParts(ctx context.Context, idsOrURLs []string, region string) ([]*models.Part, error) {
	parts := make([]*models.Part, len(idsOrURLs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, idOrURL := range idsOrURLs {
		i, idOrURL := i, idOrURL
		g.Go(func() error {
			part, err := c.GetPart(ctx, idOrURL, region)
			if err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// GetPartList fetches and extracts a saved build list.
func (c *Client) GetPartList(ctx context.Context, idOrURL, region string) (*models.PartList, error) {
	pageURL, err := c.resolver.PartList(idOrURL, region)
	if err != nil {
		return nil, err
	}
	doc, err := c.acquire(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	list, err := c.parser.ParsePartList(doc.Root, doc.URL)
	if err != nil {
		return nil, fmt.Errorf("extract part list %s: %w", pageURL, err)
	}
	c.logger.Info("fetched part list", "url", pageURL, "parts", len(list.Parts))
	return list, nil
}

// Search runs a product search on the given 1-based page.
func (c *Client) Search(ctx context.Context, query string, page int, region string) (*models.PartSearchResult, error) {
	pageURL, err := c.resolver.Search(query, page, region)
	if err != nil {
		return nil, err
	}
	doc, err := c.acquire(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	result, err := c.parser.ParseSearch(doc.Root, doc.URL)
	if err != nil {
		return nil, fmt.Errorf("extract search results %s: %w", pageURL, err)
	}
	c.logger.Info("searched", "query", query, "page", result.Page, "results", len(result.Parts))
	return result, nil
}

// GetPartReviews fetches a page of a product's reviews. rating filters
// to a single star value (1-5), 0 means unfiltered.
func (c *Client) GetPartReviews(ctx context.Context, idOrURL string, page, rating int, region string) (*models.PartReviewsResult, error) {
	pageURL, err := c.resolver.Reviews(idOrURL, page, rating, region)
	if err != nil {
		return nil, err
	}
	doc, err := c.acquire(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	result, err := c.parser.ParseReviews(doc.Root, doc.URL)
	if err != nil {
		return nil, fmt.Errorf("extract reviews %s: %w", pageURL, err)
	}
	c.logger.Info("fetched reviews", "url", pageURL, "reviews", len(result.Reviews))
	return result, nil
}
