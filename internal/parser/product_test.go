package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/partpicker-scraper/internal/models"
)

func TestParsePart(t *testing.T) {
	p := New()
	doc := mustDoc(t, productPage)
	pageURL := mustURL(t, "https://pcpartpicker.com/product/g94BD3")

	part, err := p.ParsePart(doc, pageURL)
	require.NoError(t, err)

	assert.Equal(t, "AMD Ryzen 5 5600X", part.Name)
	assert.Equal(t, "CPU", part.Type)
	assert.Equal(t, "https://pcpartpicker.com/product/g94BD3", part.URL)

	require.NotNil(t, part.Rating)
	assert.Equal(t, 4.5, part.Rating.Stars)
	assert.Equal(t, 123, part.Rating.Count)
	assert.Equal(t, 4.5, part.Rating.Average)

	assert.Equal(t, []models.Spec{
		{Name: "Core Count", Value: "6"},
		{Name: "TDP", Value: "65 W"},
	}, part.Specs)

	assert.Equal(t, []string{
		"https://cdna.pcpartpicker.com/static/forever/images/product/abc.1600.jpg",
		"https://cdna.pcpartpicker.com/static/forever/images/product/def.1600.jpg",
	}, part.ImageURLs)

	require.Len(t, part.Vendors, 3)

	amazon := part.Vendors[0]
	assert.Equal(t, "Amazon", amazon.Name)
	assert.Equal(t, "https://cdn.pcpartpicker.com/img/amazon.png", amazon.LogoURL)
	assert.True(t, amazon.InStock)
	assert.Equal(t, "/mr/amazon/abc123", amazon.BuyURL)
	assert.Equal(t, 120.0, *amazon.Price.Base)
	assert.Equal(t, 0.0, *amazon.Price.Discounts)
	assert.Equal(t, 0.0, *amazon.Price.Shipping)
	assert.Equal(t, 0.0, *amazon.Price.Tax)
	assert.Equal(t, 120.0, *amazon.Price.Total)
	assert.Equal(t, "$", amazon.Price.Currency)

	newegg := part.Vendors[1]
	assert.False(t, newegg.InStock)
	assert.Equal(t, 99.0, *newegg.Price.Total)
	// Icon instead of shipping text means free shipping.
	assert.Equal(t, 0.0, *newegg.Price.Shipping)

	bestbuy := part.Vendors[2]
	assert.True(t, bestbuy.InStock)
	assert.Equal(t, 157.5, *bestbuy.Price.Base)
	assert.Equal(t, -10.0, *bestbuy.Price.Discounts)
	assert.Equal(t, 2.5, *bestbuy.Price.Shipping)
	assert.Equal(t, 150.0, *bestbuy.Price.Total)
}

// The in-stock vendor at $120 wins even though an out-of-stock vendor
// lists $99.
func TestParsePartCheapestPriceSkipsOutOfStock(t *testing.T) {
	p := New()
	part, err := p.ParsePart(mustDoc(t, productPage), nil)
	require.NoError(t, err)

	assert.True(t, part.InStock)
	require.NotNil(t, part.CheapestPrice)
	assert.Equal(t, 120.0, *part.CheapestPrice.Total)
	assert.Equal(t, "$", part.CheapestPrice.Currency)
}

func TestParsePartIdempotent(t *testing.T) {
	p := New()
	pageURL := mustURL(t, "https://pcpartpicker.com/product/g94BD3")

	first, err := p.ParsePart(mustDoc(t, productPage), pageURL)
	require.NoError(t, err)
	second, err := p.ParsePart(mustDoc(t, productPage), pageURL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParsePartNoRatingSingleImage(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head><title>Thing - PCPartPicker</title></head>
<body>
<section class="wrapper__pageTitle">
	<ol class="breadcrumb"><li>Case</li></ol>
	<h1 class="pageTitle">Some Case</h1>
</section>
<div class="sidebar-content">
	<div class="product__image-2024">
		<img src="//cdna.pcpartpicker.com/static/forever/images/product/main.jpg">
	</div>
</div>
<div id="prices"><table><tbody></tbody></table></div>
</body>
</html>`

	p := New()
	part, err := p.ParsePart(mustDoc(t, page), mustURL(t, "https://pcpartpicker.com/product/aaaaaa"))
	require.NoError(t, err)

	assert.Nil(t, part.Rating)
	assert.Nil(t, part.Specs)
	assert.Equal(t, []string{"https://cdna.pcpartpicker.com/static/forever/images/product/main.jpg"}, part.ImageURLs)
	// og:url missing, the fetched URL stands in.
	assert.Equal(t, "https://pcpartpicker.com/product/aaaaaa", part.URL)
	// No vendors at all: not in stock, no cheapest price.
	assert.False(t, part.InStock)
	assert.Nil(t, part.CheapestPrice)
}

// Spec order follows the page, not the alphabet, and a duplicated
// title overwrites the earlier value without moving it.
func TestParsePartSpecsPreservePageOrder(t *testing.T) {
	page := `<html><body>
<section class="wrapper__pageTitle"><h1 class="pageTitle">Some PSU</h1></section>
<div class="sidebar-content">
	<div class="group--spec">
		<h3 class="group__title">Wattage</h3>
		<div class="group__content">750 W</div>
	</div>
	<div class="group--spec">
		<h3 class="group__title">Efficiency Rating</h3>
		<div class="group__content">80+ Bronze</div>
	</div>
	<div class="group--spec">
		<h3 class="group__title">Color</h3>
		<div class="group__content">Black</div>
	</div>
	<div class="group--spec">
		<h3 class="group__title">Efficiency Rating</h3>
		<div class="group__content">80+ Gold</div>
	</div>
</div>
<div id="prices"><table><tbody></tbody></table></div>
</body></html>`

	p := New()
	part, err := p.ParsePart(mustDoc(t, page), nil)
	require.NoError(t, err)

	assert.Equal(t, []models.Spec{
		{Name: "Wattage", Value: "750 W"},
		{Name: "Efficiency Rating", Value: "80+ Gold"},
		{Name: "Color", Value: "Black"},
	}, part.Specs)

	encoded, err := json.Marshal(part.Specs)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"name":"Wattage","value":"750 W"},{"name":"Efficiency Rating","value":"80+ Gold"},{"name":"Color","value":"Black"}]`,
		string(encoded))
}

func TestParsePartMissingPricingTable(t *testing.T) {
	page := `<html><body>
<section class="wrapper__pageTitle"><h1 class="pageTitle">X</h1></section>
<div class="sidebar-content"></div>
</body></html>`

	p := New()
	_, err := p.ParsePart(mustDoc(t, page), nil)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}
