package catalog

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	apperr "vintedwatch/pkg/errors"
)

// overlayLinkSelector matches the stable test-id hook carried by item card
// anchors on the catalog page.
const overlayLinkSelector = `a[data-testid$="--overlay-link"]`

// ParseListings extracts listing items from raw catalog page markup, in
// document order. Anchors without the overlay-link marker or without an href
// are ignored. Extraction failures degrade to sentinel values instead of
// failing; duplicates are not removed here, the ledger diff handles them.
func ParseListings(markup string, domain string) ([]ListingItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, apperr.NewParse(domain, "failed to parse catalog markup", err)
	}

	var items []ListingItem
	doc.Find(overlayLinkSelector).Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		href = resolveURL(href, domain)

		title, ok := s.Attr("title")
		if !ok || title == "" {
			title = NoTitle
		}

		items = append(items, ListingItem{
			ID:    ExtractItemID(href),
			Title: title,
			URL:   href,
		})
	})

	return items, nil
}

// ExtractItemID returns the path segment following "/items/" up to the next
// hyphen, or the Unknown sentinel when the link has no such segment.
func ExtractItemID(link string) string {
	_, rest, found := strings.Cut(link, "/items/")
	if !found || rest == "" {
		return UnknownID
	}
	id, _, _ := strings.Cut(rest, "-")
	if id == "" {
		return UnknownID
	}
	return id
}

// resolveURL prepends the catalog origin to relative hrefs.
func resolveURL(href string, domain string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return "https://" + domain + href
}
