package parser

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

// A product page with three vendor offers: the cheapest one is out of
// stock, so cheapest-price selection has to skip it.
const productPage = `<!DOCTYPE html>
<html>
<head>
	<title>AMD Ryzen 5 5600X - PCPartPicker</title>
	<meta property="og:url" content="https://pcpartpicker.com/product/g94BD3">
</head>
<body>
<section class="wrapper__pageTitle">
	<section>
		<ol class="breadcrumb"><li>CPU</li></ol>
		<h1 class="pageTitle">AMD Ryzen 5 5600X</h1>
		<div class="product--rating">
			<span class="shape-star-full"></span>
			<span class="shape-star-full"></span>
			<span class="shape-star-full"></span>
			<span class="shape-star-full"></span>
			<span class="shape-star-half"></span>
		</div>
		<div><ul><li>(123 Ratings, 4.5 Average)</li></ul></div>
	</section>
</section>
<div class="sidebar-content">
	<div class="product__image-2024-thumbnails">
		<img src="//cdna.pcpartpicker.com/static/forever/images/product/abc.256p.jpg">
		<img src="//cdna.pcpartpicker.com/static/forever/images/product/def.256p.jpg">
	</div>
	<div class="group--spec">
		<h3 class="group__title">Core Count</h3>
		<div class="group__content">6</div>
	</div>
	<div class="group--spec">
		<h3 class="group__title">TDP</h3>
		<div class="group__content">65 W</div>
	</div>
</div>
<div id="prices">
<table>
<tbody>
	<tr>
		<td class="td__logo"><img src="//cdn.pcpartpicker.com/img/amazon.png" alt="Amazon"></td>
		<td class="td__base">$120.00</td>
		<td class="td__promo"></td>
		<td class="td__shipping">FREE</td>
		<td class="td__tax"></td>
		<td class="td__availability td__availability--inStock">In stock</td>
		<td class="td__finalPrice"><a href="/mr/amazon/abc123">$120.00+</a></td>
	</tr>
	<tr class="tr--noBorder"><td colspan="7"></td></tr>
	<tr>
		<td class="td__logo"><img src="//cdn.pcpartpicker.com/img/newegg.png" alt="Newegg"></td>
		<td class="td__base">$99.00</td>
		<td class="td__promo"></td>
		<td class="td__shipping"><img src="//cdn.pcpartpicker.com/img/truck.png"></td>
		<td class="td__tax"></td>
		<td class="td__availability">Out of stock</td>
		<td class="td__finalPrice"><a href="/mr/newegg/def456">$99.00</a></td>
	</tr>
	<tr>
		<td class="td__logo"><img src="//cdn.pcpartpicker.com/img/bestbuy.png" alt="Best Buy"></td>
		<td class="td__base">$157.50</td>
		<td class="td__promo">-$10.00</td>
		<td class="td__shipping">$2.50</td>
		<td class="td__tax"></td>
		<td class="td__availability td__availability--inStock">In stock</td>
		<td class="td__finalPrice"><a href="/mr/bestbuy/ghi789">$150.00+</a></td>
	</tr>
</tbody>
</table>
</div>
</body>
</html>`
