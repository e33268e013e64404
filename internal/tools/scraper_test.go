package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrape_ExtractsMainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `
			<html>
				<body>
					<nav><a href="/">Home</a></nav>
					<main>
						<h1>About Acme</h1>
						<p>We build widgets for everyone.</p>
					</main>
					<footer>Copyright</footer>
				</body>
			</html>
		`)
	}))
	defer server.Close()

	scraper := NewHTTPScraper(nil, false)
	result, err := scraper.Scrape(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, server.URL, result.URL)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.Text, "About Acme")
	assert.Contains(t, result.Text, "We build widgets for everyone.")
	assert.NotContains(t, result.Text, "Home")
	assert.NotContains(t, result.Text, "Copyright")
}

func TestScrape_NotFoundMapsToSkipClass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	scraper := NewHTTPScraper(nil, false)
	_, err := scraper.Scrape(context.Background(), server.URL+"/missing")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, Classify(err))
}

func TestScrape_ForbiddenMapsToAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	scraper := NewHTTPScraper(nil, false)
	_, err := scraper.Scrape(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, KindAuth, Classify(err))
}

func TestScrape_RateLimitedMapsToRetryClass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	scraper := NewHTTPScraper(nil, false)
	_, err := scraper.Scrape(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, KindRateLimited, Classify(err))
}
