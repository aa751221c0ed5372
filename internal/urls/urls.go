// Package urls resolves user-supplied part identifiers (bare IDs, full
// URLs, region-prefixed URLs) into canonical pcpartpicker.com request
// URLs.
package urls

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	domain        = "pcpartpicker.com"
	defaultRegion = "us"
)

var (
	ErrInvalidIdentifier = errors.New("invalid pcpartpicker URL or ID")
	ErrInvalidRegion     = errors.New("invalid region code")
	ErrInvalidRating     = errors.New("rating filter must be between 1 and 5")
)

var (
	idRE     = regexp.MustCompile(`^[a-zA-Z0-9]{6}$`)
	regionRE = regexp.MustCompile(`^[a-z]{2}$`)

	productURLRE = regexp.MustCompile(
		`^(?:https?://)?(?:([a-z]{2})\.)?pcpartpicker\.com/product/([a-zA-Z0-9]{6})(?:[/?#].*)?$`)
	listURLRE = regexp.MustCompile(
		`^(?:https?://)?(?:([a-z]{2})\.)?pcpartpicker\.com(/(?:list/[a-zA-Z0-9]{6}|user/\w+/saved/[a-zA-Z0-9]{6}))(?:[/?#].*)?$`)

	productLinkRE = regexp.MustCompile(
		`https?://(?:[a-z]{2}\.)?pcpartpicker\.com/product/[a-zA-Z0-9]{6}`)
	listLinkRE = regexp.MustCompile(
		`https?://(?:[a-z]{2}\.)?pcpartpicker\.com/(?:list/[a-zA-Z0-9]{6}|user/\w+/saved/[a-zA-Z0-9]{6})`)
)

// BaseURL returns the site root for a region. "us" (and the empty
// string) map to the bare domain, everything else to a subdomain.
func BaseURL(region string) string {
	region = strings.ToLower(region)
	if region == "" || region == defaultRegion {
		return "https://" + domain
	}
	return "https://" + region + "." + domain
}

// Resolver builds canonical request URLs. Its configured region applies
// to bare IDs; full URLs keep their embedded region subdomain unless an
// explicit per-call override is given.
type Resolver struct {
	region string
}

// NewResolver validates the default region and returns a resolver.
// An empty region means "us".
func NewResolver(region string) (*Resolver, error) {
	if region == "" {
		region = defaultRegion
	}
	region = strings.ToLower(region)
	if !regionRE.MatchString(region) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRegion, region)
	}
	return &Resolver{region: region}, nil
}

func (r *Resolver) pickRegion(embedded, override string) (string, error) {
	if override != "" {
		override = strings.ToLower(override)
		if !regionRE.MatchString(override) {
			return "", fmt.Errorf("%w: %q", ErrInvalidRegion, override)
		}
		return override, nil
	}
	if embedded != "" {
		return embedded, nil
	}
	return r.region, nil
}

// Product resolves a bare ID or product URL into a canonical product
// page URL. region overrides both the embedded subdomain and the
// resolver default when non-empty.
func (r *Resolver) Product(idOrURL, region string) (string, error) {
	if m := productURLRE.FindStringSubmatch(idOrURL); m != nil {
		reg, err := r.pickRegion(m[1], region)
		if err != nil {
			return "", err
		}
		return BaseURL(reg) + "/product/" + m[2], nil
	}
	if idRE.MatchString(idOrURL) {
		reg, err := r.pickRegion("", region)
		if err != nil {
			return "", err
		}
		return BaseURL(reg) + "/product/" + idOrURL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, idOrURL)
}

// PartList resolves a bare ID, /list/ URL or /user/<name>/saved/ URL
// into a canonical part list URL.
func (r *Resolver) PartList(idOrURL, region string) (string, error) {
	if m := listURLRE.FindStringSubmatch(idOrURL); m != nil {
		reg, err := r.pickRegion(m[1], region)
		if err != nil {
			return "", err
		}
		return BaseURL(reg) + m[2], nil
	}
	if idRE.MatchString(idOrURL) {
		reg, err := r.pickRegion("", region)
		if err != nil {
			return "", err
		}
		return BaseURL(reg) + "/list/" + idOrURL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, idOrURL)
}

// Search builds a search URL with a percent-encoded query and 1-based
// page number.
func (r *Resolver) Search(query string, page int, region string) (string, error) {
	reg, err := r.pickRegion("", region)
	if err != nil {
		return "", err
	}
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	return BaseURL(reg) + "/search/?" + params.Encode(), nil
}

// Reviews resolves a product identifier into its review listing URL,
// with 1-based page and an optional star rating filter (0 = no filter).
func (r *Resolver) Reviews(idOrURL string, page, rating int, region string) (string, error) {
	productURL, err := r.Product(idOrURL, region)
	if err != nil {
		return "", err
	}
	if rating < 0 || rating > 5 {
		return "", fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if rating != 0 {
		params.Set("rating", strconv.Itoa(rating))
	}
	return productURL + "/reviews/?" + params.Encode(), nil
}

// ProductLinks extracts every pcpartpicker product URL embedded in a
// blob of text.
func ProductLinks(text string) []string {
	return productLinkRE.FindAllString(text, -1)
}

// ListLinks extracts every pcpartpicker part list URL (including saved
// lists) embedded in a blob of text.
func ListLinks(text string) []string {
	return listLinkRE.FindAllString(text, -1)
}
