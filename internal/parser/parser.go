// Package parser turns fetched pcpartpicker.com documents into typed
// records. All parse methods are pure functions of the document: no
// I/O, no shared state, a fresh value tree per call.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrMalformedDocument is returned when a structurally required element
// is missing, which usually means the site markup changed.
var ErrMalformedDocument = errors.New("malformed document")

func malformed(resource, element string) error {
	return fmt.Errorf("%w: %s page is missing %s", ErrMalformedDocument, resource, element)
}

type Parser struct {
	logger *slog.Logger
}

func New() *Parser {
	return &Parser{
		logger: slog.Default().With("component", "parser"),
	}
}

// fixScheme upgrades protocol-relative image sources ("//cdn.../x.jpg")
// to https URLs and leaves absolute URLs untouched.
func fixScheme(src string) string {
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return src
}

// absoluteURL resolves a possibly relative href against the URL the
// document was fetched from. With no base the href is returned as-is.
func absoluteURL(href string, base *url.URL) string {
	if href == "" || base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return v
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}
