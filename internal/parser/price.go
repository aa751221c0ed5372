package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/maltedev/partpicker-scraper/internal/models"
)

var (
	decimalRE      = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	signedAmountRE = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)
)

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

// splitAmount splits a currency-decorated amount like "$1,229.99" into
// the numeric value and the non-numeric remainder ("$"), which is how
// the currency is inferred throughout the site. A bare number with no
// currency marker is rejected: a total must never be recorded without
// its currency.
func splitAmount(raw string) (value float64, currency string, ok bool) {
	raw = strings.TrimSpace(raw)
	m := decimalRE.FindString(raw)
	if m == "" {
		return 0, "", false
	}
	v, err := parseDecimal(m)
	if err != nil {
		return 0, "", false
	}
	currency = strings.TrimSpace(strings.Replace(raw, m, "", 1))
	if currency == "" {
		return 0, "", false
	}
	return v, currency, true
}

// optionalAmount parses cells like promo and tax that default to zero
// when empty or marked free.
func optionalAmount(raw, currency string) float64 {
	s := strings.TrimSpace(raw)
	if currency != "" {
		s = strings.TrimSpace(strings.ReplaceAll(s, currency, ""))
	}
	if s == "" || strings.EqualFold(s, "free") {
		return 0
	}
	m := signedAmountRE.FindString(s)
	if m == "" {
		return 0
	}
	v, err := parseDecimal(m)
	if err != nil {
		return 0
	}
	return v
}

// shippingAmount handles the shipping cell, which may hold an amount,
// the word FREE, nothing, or a carrier icon instead of text.
func shippingAmount(cell *goquery.Selection) float64 {
	if cell.Find("img").Length() > 0 {
		return 0
	}
	t := text(cell)
	if t == "" || strings.Contains(strings.ToUpper(t), "FREE") {
		return 0
	}
	m := decimalRE.FindString(t)
	if m == "" {
		return 0
	}
	v, err := parseDecimal(m)
	if err != nil {
		return 0
	}
	return v
}

// priceBreakdown reads the base/promo/shipping/tax/total cells shared by
// product vendor rows and part list rows. totalSel names the cell whose
// link holds the final price ("td__finalPrice" on product pages,
// "td__price" on lists).
func priceBreakdown(row *goquery.Selection, totalSel string) (models.Price, *goquery.Selection, error) {
	baseRaw := text(row.Find(".td__base").First())
	base, currency, ok := splitAmount(baseRaw)
	if !ok {
		return models.Price{}, nil, malformed("pricing", "a parsable base price")
	}

	promo := optionalAmount(row.Find(".td__promo").First().Text(), currency)
	if promo > 0 {
		promo = -promo
	}
	shipping := shippingAmount(row.Find(".td__shipping").First())
	tax := optionalAmount(row.Find(".td__tax").First().Text(), currency)

	final := row.Find(totalSel + " a").First()
	if final.Length() == 0 {
		final = row.Find(totalSel).First()
	}
	totalRaw := final.Text()
	if currency != "" {
		totalRaw = strings.ReplaceAll(totalRaw, currency, "")
	}
	totalRaw = strings.TrimSuffix(strings.TrimSpace(totalRaw), "+")
	total, err := parseDecimal(decimalRE.FindString(totalRaw))
	if err != nil {
		return models.Price{}, nil, malformed("pricing", "a parsable total price")
	}

	price := models.Price{
		Base:      models.Float64(base),
		Discounts: models.Float64(promo),
		Shipping:  models.Float64(shipping),
		Tax:       models.Float64(tax),
		Total:     models.Float64(total),
		Currency:  currency,
	}
	return price, final, nil
}

// cheapestInStock picks the in-stock vendor with the lowest total,
// first occurrence winning ties. Out-of-stock vendors never win, even
// at a lower price.
func cheapestInStock(vendors []models.Vendor) *models.Price {
	var best *models.Vendor
	for i := range vendors {
		v := &vendors[i]
		if !v.InStock || v.Price.Total == nil {
			continue
		}
		if best == nil || *v.Price.Total < *best.Price.Total {
			best = v
		}
	}
	if best == nil {
		return nil
	}
	price := best.Price
	return &price
}
