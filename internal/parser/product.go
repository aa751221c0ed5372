package parser

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/maltedev/partpicker-scraper/internal/models"
)

var ratingInfoRE = regexp.MustCompile(`\((\d+)\s+Ratings?,\s+([\d.]+)\s+Average\)`)

const (
	thumbnailSuffix = ".256p.jpg"
	fullSizeSuffix  = ".1600.jpg"
)

// ParsePart extracts a full product record from a product page.
// pageURL is the URL the document was fetched from; it anchors relative
// links and is the fallback part URL when the og:url meta is missing.
func (p *Parser) ParsePart(doc *goquery.Document, pageURL *url.URL) (*models.Part, error) {
	titleContainer := doc.Find(".wrapper__pageTitle").First()
	if titleContainer.Length() == 0 {
		return nil, malformed("product", "the title container")
	}
	sidebar := doc.Find(".sidebar-content").First()
	if sidebar.Length() == 0 {
		return nil, malformed("product", "the sidebar")
	}

	partType := text(titleContainer.Find(".breadcrumb").First())
	name := text(titleContainer.Find(".pageTitle").First())

	rating := parseRating(titleContainer)
	specs := parseSpecs(sidebar)
	imageURLs := parseImages(sidebar)

	vendors, err := parseVendors(doc)
	if err != nil {
		return nil, err
	}
	cheapest := cheapestInStock(vendors)

	partURL := attr(doc.Find(`head meta[property="og:url"]`).First(), "content")
	if partURL == "" && pageURL != nil {
		p.logger.Debug("product page without og:url, keeping the fetch URL", "url", pageURL)
		partURL = pageURL.String()
	}

	part := &models.Part{
		Name:          name,
		Type:          partType,
		ImageURLs:     imageURLs,
		URL:           partURL,
		CheapestPrice: cheapest,
		InStock:       cheapest != nil,
		Vendors:       vendors,
		Rating:        rating,
		Specs:         specs,
		Reviews:       p.parseReviewBlocks(doc, pageURL),
	}
	return part, nil
}

// parseRating reads the star widget next to the title. Full glyphs
// count 1 star, half glyphs 0.5; the companion "(N Ratings, X Average)"
// fragment supplies count and average. No widget means no rating.
func parseRating(titleContainer *goquery.Selection) *models.Rating {
	starContainer := titleContainer.Find(".product--rating").First()
	if starContainer.Length() == 0 {
		return nil
	}
	stars := float64(starContainer.Find(".shape-star-full").Length()) +
		0.5*float64(starContainer.Find(".shape-star-half").Length())

	rating := &models.Rating{Stars: stars}
	if m := ratingInfoRE.FindStringSubmatch(titleContainer.Text()); m != nil {
		rating.Count, _ = strconv.Atoi(m[1])
		rating.Average, _ = strconv.ParseFloat(m[2], 64)
	}
	return rating
}

// parseSpecs collects the spec groups in page order. A later duplicate
// title overwrites the earlier value in place, keeping the first
// occurrence's position.
func parseSpecs(sidebar *goquery.Selection) []models.Spec {
	var specs []models.Spec
	index := map[string]int{}
	sidebar.Find(".group--spec").Each(func(_ int, group *goquery.Selection) {
		title := text(group.Find(".group__title").First())
		if title == "" {
			return
		}
		value := text(group.Find(".group__content").First())
		if i, seen := index[title]; seen {
			specs[i].Value = value
			return
		}
		index[title] = len(specs)
		specs = append(specs, models.Spec{Name: title, Value: value})
	})
	return specs
}

// parseImages prefers the thumbnail strip, rewriting each thumbnail to
// its full-resolution variant; a page without the strip carries a
// single primary image with a protocol-relative source.
func parseImages(sidebar *goquery.Selection) []string {
	var imageURLs []string
	thumbnails := sidebar.Find(".product__image-2024-thumbnails").First()
	if thumbnails.Length() == 0 {
		if src := attr(sidebar.Find(".product__image-2024 img").First(), "src"); src != "" {
			imageURLs = append(imageURLs, fixScheme(src))
		}
		return imageURLs
	}
	thumbnails.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := attr(img, "src")
		if src == "" {
			return
		}
		base, _, _ := strings.Cut(src, thumbnailSuffix)
		imageURLs = append(imageURLs, fixScheme(base+fullSizeSuffix))
	})
	return imageURLs
}

// parseVendors walks every non-separator row of the pricing table.
func parseVendors(doc *goquery.Document) ([]models.Vendor, error) {
	table := doc.Find("#prices table tbody")
	if table.Length() == 0 {
		return nil, malformed("product", "the pricing table")
	}

	var vendors []models.Vendor
	var rowErr error
	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if row.HasClass("tr--noBorder") {
			return true
		}
		vendor, err := parseVendorRow(row)
		if err != nil {
			rowErr = err
			return false
		}
		vendors = append(vendors, *vendor)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return vendors, nil
}

func parseVendorRow(row *goquery.Selection) (*models.Vendor, error) {
	logo := row.Find(".td__logo img").First()
	price, final, err := priceBreakdown(row, ".td__finalPrice")
	if err != nil {
		return nil, err
	}
	return &models.Vendor{
		Name:    attr(logo, "alt"),
		LogoURL: fixScheme(attr(logo, "src")),
		InStock: row.Find(".td__availability--inStock").Length() > 0,
		Price:   price,
		BuyURL:  attr(final, "href"),
	}, nil
}
