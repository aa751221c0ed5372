package parser

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// parsePagination reads the current and total page numbers from the
// pagination control. A missing control (zero search results, empty
// review listing) yields 0/0 rather than an error.
func parsePagination(doc *goquery.Document) (page, totalPages int) {
	nav := doc.Find("#module-pagination").First()
	if nav.Length() == 0 {
		return 0, 0
	}
	page, _ = strconv.Atoi(text(nav.Find(".pagination--current").First()))
	totalPages, _ = strconv.Atoi(text(nav.Find("li").Last()))
	return page, totalPages
}
