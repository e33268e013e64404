package fetch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Link is a same-domain link with its anchor text.
type Link struct {
	URL  string
	Text string
}

// ExtractLinks extracts all same-domain links from HTML content, resolving
// relative hrefs against baseURL. Order follows document order, deduplicated.
func ExtractLinks(htmlContent string, baseURL string) ([]Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &Error{
			URL:     baseURL,
			Message: "failed to parse base URL",
			Cause:   err,
		}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, &Error{
			URL:     baseURL,
			Message: fmt.Sprintf("invalid base URL: %s (must have scheme and host)", baseURL),
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &Error{
			URL:     baseURL,
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	linkSeen := make(map[string]bool)
	links := make([]Link, 0)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}

		absoluteURL := base.ResolveReference(linkURL)
		if absoluteURL.Host != base.Host {
			return
		}

		absoluteURL.Fragment = ""
		urlString := strings.TrimSuffix(absoluteURL.String(), "/")

		if !linkSeen[urlString] {
			linkSeen[urlString] = true
			links = append(links, Link{
				URL:  urlString,
				Text: strings.TrimSpace(s.Text()),
			})
		}
	})

	return links, nil
}
