package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const contentURLPattern = `"contentUrl":"(https://[^"]+)"`

// Catalog scrapes the upstream movie site: listing pages for the home
// view and per-movie pages for their playable content URL. Listings are
// cached per page number for the life of the process. The room core
// never touches any of this; it only ever receives the resulting URL.
type Catalog struct {
	baseURL        string
	client         *http.Client
	maxRetryTime   time.Duration
	listingPattern *regexp.Regexp
	contentPattern *regexp.Regexp

	lock  sync.Mutex
	pages map[int][]Listing
}

type Listing struct {
	Title string
	URL   string
}

func NewCatalog(baseURL string) *Catalog {
	listingPattern := fmt.Sprintf(`,"url":"(%v/movie/[^"]+)","name"`, regexp.QuoteMeta(baseURL))
	return &Catalog{
		baseURL:        baseURL,
		client:         &http.Client{Timeout: 10 * time.Second},
		maxRetryTime:   30 * time.Second,
		listingPattern: regexp.MustCompile(listingPattern),
		contentPattern: regexp.MustCompile(contentURLPattern),
		pages:          make(map[int][]Listing),
	}
}

func (cat *Catalog) fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		res, err := cat.client.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()
		if res.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("upstream error: %v", res.Status)
		}
		if res.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status: %v", res.Status))
		}
		body, err = io.ReadAll(res.Body)
		return err
	}
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cat.maxRetryTime
	err := backoff.Retry(operation, backoff.WithContext(policy, ctx))
	if err != nil {
		LogCatalogFetchFailed(url, err)
		return nil, err
	}
	return body, nil
}

// ListingsForPage returns the cached listings for a page, scraping the
// upstream listing page on first use.
func (cat *Catalog) ListingsForPage(ctx context.Context, page int) ([]Listing, error) {
	cat.lock.Lock()
	cached, exists := cat.pages[page]
	cat.lock.Unlock()
	if exists {
		return cached, nil
	}

	url := fmt.Sprintf("%v/movie-videos/hindi-movies?page=%d", cat.baseURL, page)
	html, err := cat.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	var listings []Listing
	for _, match := range cat.listingPattern.FindAllStringSubmatch(string(html), -1) {
		listings = append(listings, Listing{Title: cat.extractTitle(match[1]), URL: match[1]})
	}

	cat.lock.Lock()
	cat.pages[page] = listings
	cat.lock.Unlock()
	return listings, nil
}

// Listing resolves a cached listing by page and index, as referenced
// from the home page links.
func (cat *Catalog) Listing(page, index int) (Listing, bool) {
	cat.lock.Lock()
	defer cat.lock.Unlock()
	listings := cat.pages[page]
	if index < 0 || index >= len(listings) {
		return Listing{}, false
	}
	return listings[index], true
}

// ContentURL scrapes a movie page for its playable content URL.
func (cat *Catalog) ContentURL(ctx context.Context, movieURL string) (string, error) {
	html, err := cat.fetch(ctx, movieURL)
	if err != nil {
		return "", err
	}
	match := cat.contentPattern.FindStringSubmatch(string(html))
	if match == nil {
		return "", fmt.Errorf("content URL not found in %v", movieURL)
	}
	return match[1], nil
}

// extractTitle derives a display title from a movie URL slug.
func (cat *Catalog) extractTitle(movieURL string) string {
	slug := strings.TrimPrefix(movieURL, cat.baseURL+"/movie/watch")
	if i := strings.Index(slug, "online"); i >= 0 {
		slug = slug[:i]
	}
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.TrimSpace(strings.Join(words, " "))
}
