package parser

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/maltedev/partpicker-scraper/internal/models"
)

const noPricesMarker = "No Prices Available"

var parametricMarkers = []string{
	"From parametric selection:",
	"From parametric filter:",
}

// ParsePartList extracts a saved build list: one part per product row,
// each carrying at most one vendor, plus the estimated wattage, the
// final total, and any compatibility notes.
func (p *Parser) ParsePartList(doc *goquery.Document, pageURL *url.URL) (*models.PartList, error) {
	table := doc.Find("table.xs-col-12").First()
	if table.Length() == 0 {
		return nil, malformed("part list", "the parts table")
	}

	list := &models.PartList{}
	if pageURL != nil {
		list.URL = pageURL.String()
	}

	if metric := text(doc.Find(".partlist__keyMetric").First()); metric != "" {
		wattage := strings.TrimSpace(strings.TrimPrefix(metric, "Estimated Wattage:"))
		if m := decimalRE.FindString(wattage); m != "" {
			list.EstimatedWattage, _ = parseDecimal(m)
		}
	}

	var rowErr error
	table.Find("tr.tr__product").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		part, err := parseListRow(row, pageURL)
		if err != nil {
			rowErr = err
			return false
		}
		list.Parts = append(list.Parts, *part)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	if totalCell := table.Find("tr.tr__total--final .td__price").First(); totalCell.Length() > 0 {
		if total, currency, ok := splitAmount(totalCell.Text()); ok {
			list.TotalPrice = total
			list.Currency = currency
		}
	}

	list.CompatibilityNotes = parseCompatibilityNotes(doc)
	return list, nil
}

// parseCompatibilityNotes collects the build's note and warning
// messages, dropping the leading "Note:"/"Warning!" labels.
func parseCompatibilityNotes(doc *goquery.Document) []string {
	var notes []string
	doc.Find("li.info-message, li.warning-message").Each(func(_ int, item *goquery.Selection) {
		note := text(item)
		note = strings.TrimSpace(strings.TrimPrefix(note, "Note:"))
		note = strings.TrimSpace(strings.TrimPrefix(note, "Warning!"))
		if note != "" {
			notes = append(notes, note)
		}
	})
	return notes
}

func parseListRow(row *goquery.Selection, pageURL *url.URL) (*models.Part, error) {
	part := &models.Part{
		Name: listRowName(row.Find(".td__name").First()),
		Type: text(row.Find(".td__component").First()),
	}

	if href := attr(row.Find(".td__name a").First(), "href"); href != "" && !strings.Contains(href, "#view_custom_part") {
		part.URL = absoluteURL(href, pageURL)
	}
	if src := attr(row.Find(".td__image img").First(), "src"); src != "" {
		part.ImageURLs = []string{fixScheme(src)}
	}

	// Two disjoint branches: a full breakdown when the base price cell
	// is populated, otherwise whatever single display price the row
	// shows (possibly nothing).
	baseCell := row.Find(".td__base").First()
	if baseCell.Length() > 0 && text(baseCell) != "" {
		price, final, err := priceBreakdown(row, ".td__price")
		if err != nil {
			return nil, err
		}
		where := row.Find(".td__where a").First()
		vendor := models.Vendor{
			Name:    attr(where.Find("img").First(), "alt"),
			LogoURL: fixScheme(attr(where.Find("img").First(), "src")),
			InStock: true,
			Price:   price,
			BuyURL:  attr(final, "href"),
		}
		if vendor.BuyURL == "" {
			vendor.BuyURL = attr(where, "href")
		}
		part.Vendors = []models.Vendor{vendor}
		part.CheapestPrice = &price
		part.InStock = true
		return part, nil
	}

	displayed := text(row.Find(".td__price").First())
	displayed = strings.TrimSpace(strings.TrimPrefix(displayed, "Price"))
	if displayed == "" || strings.Contains(displayed, noPricesMarker) {
		return part, nil
	}
	if total, currency, ok := splitAmount(displayed); ok {
		part.CheapestPrice = &models.Price{
			Total:    models.Float64(total),
			Currency: currency,
		}
	}
	return part, nil
}

// listRowName rebuilds the part name from the name cell: the parametric
// selection note is dropped and the remaining non-empty text segments
// are newline-joined.
func listRowName(cell *goquery.Selection) string {
	raw := cell.Text()
	for _, marker := range parametricMarkers {
		if i := strings.Index(raw, marker); i >= 0 {
			raw = raw[:i]
		}
	}
	var segments []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			segments = append(segments, line)
		}
	}
	return strings.Join(segments, "\n")
}
