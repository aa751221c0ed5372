package parser

import (
	"net/url"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/maltedev/partpicker-scraper/internal/models"
)

var leadingIntRE = regexp.MustCompile(`^-?\d+`)

// ParseReviews extracts a review listing page. An empty listing (no
// review blocks, no pagination control) is a valid zero-value result,
// not an error.
func (p *Parser) ParseReviews(doc *goquery.Document, pageURL *url.URL) (*models.PartReviewsResult, error) {
	result := &models.PartReviewsResult{
		Reviews: p.parseReviewBlocks(doc, pageURL),
	}
	result.Page, result.TotalPages = parsePagination(doc)
	return result, nil
}

// parseReviewBlocks walks the review blocks present on a document.
// Product pages embed the same markup, so the product extractor reuses
// this to attach reviews.
func (p *Parser) parseReviewBlocks(doc *goquery.Document, pageURL *url.URL) []models.Review {
	var reviews []models.Review
	doc.Find(".partReviews .partReviews__review").Each(func(_ int, block *goquery.Selection) {
		reviews = append(reviews, parseReview(block, pageURL))
	})
	return reviews
}

func parseReview(block *goquery.Selection, pageURL *url.URL) models.Review {
	authorLink := block.Find(".userDetails__userName a").First()
	review := models.Review{
		Author: models.User{
			Username:   text(authorLink),
			AvatarURL:  fixScheme(attr(block.Find(".userAvatar img").First(), "src")),
			ProfileURL: absoluteURL(attr(authorLink, "href"), pageURL),
		},
		Stars:   block.Find(".product--rating .shape-star-full").Length(),
		Content: text(block.Find(".partReviews__writeup").First()),
	}

	userData := block.Find(".userDetails__userData li")
	if points := leadingIntRE.FindString(text(userData.Eq(0))); points != "" {
		review.Points, _ = strconv.Atoi(points)
	}
	// Kept as the raw relative-time text ("3 months ago"); the site
	// never exposes an absolute timestamp.
	review.CreatedAt = text(userData.Eq(1))

	if build := block.Find(".partReviews__name a").First(); build.Length() > 0 {
		review.BuildName = text(build)
		review.BuildURL = absoluteURL(attr(build, "href"), pageURL)
	}
	return review
}
