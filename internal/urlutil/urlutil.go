// Package urlutil provides URL normalization and deduplication for discovery.
// All functions are pure.
package urlutil

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var domainRe = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)

// ErrInvalidURL is returned when input cannot be normalized to an absolute HTTPS URL.
var ErrInvalidURL = fmt.Errorf("invalid URL")

// EnsureHTTPS forces an https scheme onto a URL or bare domain.
func EnsureHTTPS(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	switch {
	case strings.HasPrefix(s, "http://"):
		return "https://" + strings.TrimPrefix(s, "http://")
	case strings.HasPrefix(s, "https://"):
		return s
	default:
		return "https://" + s
	}
}

// Normalize sanitizes a raw domain or URL into canonical absolute HTTPS form:
// host lowercased, default ports stripped, scheme forced to https, trailing
// slash stripped (except root), query and fragment dropped. Path case is
// preserved. Returns ErrInvalidURL for empty input or inputs without a
// resolvable host.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidURL)
	}

	parsed, err := url.Parse(EnsureHTTPS(s))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" || !domainRe.MatchString(host) {
		return "", fmt.Errorf("%w: no resolvable host in %q", ErrInvalidURL, raw)
	}
	if port := parsed.Port(); port != "" && port != "443" && port != "80" {
		host = host + ":" + port
	}

	path := strings.TrimSuffix(parsed.Path, "/")

	return "https://" + host + path, nil
}

// Dedupe normalizes each URL and removes duplicates by canonical form,
// preserving first-seen order. Entries that fail normalization are dropped.
func Dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		canonical, err := Normalize(u)
		if err != nil {
			continue
		}
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	return out
}

// IsSafeDomain reports whether domain looks like a plain company domain.
// A scheme prefix is tolerated; whitespace, quotes and backslashes are not.
func IsSafeDomain(domain string) bool {
	d := strings.ToLower(strings.TrimSpace(domain))
	if strings.HasPrefix(d, "http://") || strings.HasPrefix(d, "https://") {
		parsed, err := url.Parse(d)
		if err != nil {
			return false
		}
		d = parsed.Host
	}
	if strings.ContainsAny(d, " \\\"'") {
		return false
	}
	return domainRe.MatchString(d)
}

// tldTokens are domain suffix components dropped when deriving a company name.
// Handles multi-part suffixes like co.uk.
var tldTokens = map[string]bool{
	"com": true, "org": true, "net": true, "io": true, "ai": true,
	"app": true, "dev": true, "gov": true, "edu": true, "co": true,
	"us": true, "uk": true, "ca": true, "au": true, "de": true,
	"jp": true, "tech": true, "info": true,
}

// CompanyName derives a likely company name from a domain:
// "stripe.com" -> "Stripe", "data-team.co.uk" -> "Data Team".
func CompanyName(domain string) string {
	cleaned := strings.ToLower(strings.TrimSpace(domain))
	if idx := strings.Index(cleaned, "//"); idx >= 0 {
		cleaned = cleaned[idx+2:]
	}
	if idx := strings.Index(cleaned, ":"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	if idx := strings.Index(cleaned, "/"); idx >= 0 {
		cleaned = cleaned[:idx]
	}

	var parts []string
	for _, p := range strings.Split(cleaned, ".") {
		if p != "" && p != "www" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return title(domain)
	}
	for len(parts) > 1 && tldTokens[parts[len(parts)-1]] {
		parts = parts[:len(parts)-1]
	}

	base := parts[len(parts)-1]
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	return title(base)
}

// title uppercases the first letter of each space-separated word.
func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
