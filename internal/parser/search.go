package parser

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/maltedev/partpicker-scraper/internal/models"
)

const searchPageTitle = "Product Search"

// ParseSearch extracts a search result page. When the site has
// redirected straight to a single matching product, the document is a
// product page and is delegated to ParsePart, wrapped as a one-element
// result.
func (p *Parser) ParseSearch(doc *goquery.Document, pageURL *url.URL) (*models.PartSearchResult, error) {
	title := doc.Find(".pageTitle").First()
	if title.Length() > 0 && text(title) != searchPageTitle {
		p.logger.Debug("search redirected to a product page", "title", text(title))
		part, err := p.ParsePart(doc, pageURL)
		if err != nil {
			return nil, err
		}
		return &models.PartSearchResult{
			Parts:      []models.Part{*part},
			Page:       1,
			TotalPages: 1,
		}, nil
	}

	result := &models.PartSearchResult{}
	section := doc.Find(".search-results__pageContent").First()
	section.Find("ul.list-unstyled").Each(func(_ int, entry *goquery.Selection) {
		link := entry.Find("p.search_results--link a").First()
		name := text(link)
		if name == "" {
			return
		}
		part := models.Part{
			Name: name,
			Type: inferCategory(name),
			URL:  absoluteURL(attr(link, "href"), pageURL),
		}
		if src := attr(entry.Find("img").First(), "src"); src != "" {
			part.ImageURLs = []string{fixScheme(src)}
		}
		if priceEl := entry.Find(".product__link--price").First(); priceEl.Length() > 0 {
			if total, currency, ok := splitAmount(priceEl.Text()); ok {
				part.CheapestPrice = &models.Price{
					Total:    models.Float64(total),
					Currency: currency,
				}
				part.InStock = true
			}
		}
		result.Parts = append(result.Parts, part)
	})

	result.Page, result.TotalPages = parsePagination(doc)
	return result, nil
}
