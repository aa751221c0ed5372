package parser

import "github.com/PuerkitoBio/goquery"

// PageClass is the outcome of inspecting a fetched document before any
// field extraction is attempted.
type PageClass int

const (
	PageOK PageClass = iota
	PageChallenge
	PageRateLimited
)

func (c PageClass) String() string {
	switch c {
	case PageChallenge:
		return "challenge"
	case PageRateLimited:
		return "rate_limited"
	default:
		return "ok"
	}
}

const (
	// Title of the anti-bot interstitial served instead of content.
	challengeTitle = "Just a moment..."
	// Heading of the rate-limit verification page. Distinct from the
	// challenge: a verification page is never retried.
	verificationHeading = "Verification"
)

// Classify decides whether a document is genuine content, an anti-bot
// challenge, or a rate-limit verification page. A missing .pageTitle
// heading is normal (empty review listings have none) and classifies
// as ok.
func Classify(doc *goquery.Document) PageClass {
	if text(doc.Find("title").First()) == challengeTitle {
		return PageChallenge
	}
	heading := doc.Find(".pageTitle").First()
	if heading.Length() > 0 && text(heading) == verificationHeading {
		return PageRateLimited
	}
	return PageOK
}
