// Package search provides DuckDuckGo web search over the plain HTML
// endpoint: no API key, no browser, just a GET and a regex parse.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/jeanpaul/musage/internal/config"
)

// Result is one search hit.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Searcher queries DuckDuckGo and re-ranks results toward reference-grade
// domains.
type Searcher struct {
	client     *http.Client
	userAgent  string
	maxResults int
}

func New(cfg *config.Config) *Searcher {
	return &Searcher{
		client:     &http.Client{Timeout: cfg.Search.Timeout()},
		userAgent:  cfg.Scraper.UserAgent,
		maxResults: cfg.Search.MaxResults,
	}
}

// Search returns up to max ranked results; max <= 0 uses the configured
// default.
func (s *Searcher) Search(ctx context.Context, query string, max int) ([]Result, error) {
	if max <= 0 {
		max = s.maxResults
	}

	searchURL := fmt.Sprintf("https://html.duckduckgo.com/html/?q=%s", url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	// Over-fetch a little so ranking has something to promote.
	results := parseResults(string(body), max+4)
	return rank(results)[:min(max, len(results))], nil
}

var (
	resultLinkRe = regexp.MustCompile(`<a rel="nofollow" class="result__a" href="([^"]*)"[^>]*>(.*?)</a>`)
	resultSnipRe = regexp.MustCompile(`<a class="result__snippet"[^>]*>(.*?)</a>`)
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	htmlEntityRe = regexp.MustCompile(`&[a-z]+;|&#[0-9]+;`)
)

func parseResults(html string, max int) []Result {
	links := resultLinkRe.FindAllStringSubmatch(html, max)
	snippets := resultSnipRe.FindAllStringSubmatch(html, max)

	var results []Result
	for i, link := range links {
		if len(link) < 3 {
			continue
		}
		href := link[1]
		// DuckDuckGo wraps target URLs in a redirect; unwrap it.
		if u, err := url.Parse(href); err == nil {
			if actual := u.Query().Get("uddg"); actual != "" {
				href = actual
			}
		}
		r := Result{
			Title: stripHTML(link[2]),
			URL:   href,
		}
		if i < len(snippets) && len(snippets[i]) >= 2 {
			r.Snippet = stripHTML(snippets[i][1])
		}
		results = append(results, r)
	}
	return results
}

func stripHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	s = htmlEntityRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

// preferredDomains are reference-grade sources promoted to the top of the
// ranking; noisyDomains tend to produce caption and boilerplate noise when
// scraped and are demoted.
var preferredDomains = []string{
	"wikipedia.org", "britannica.com", "stackoverflow.com",
	"docs.python.org", "developer.mozilla.org", "github.com",
	"reuters.com", "apnews.com", "nature.com", "sciencedirect.com",
	"investopedia.com", "healthline.com", "mayoclinic.org",
	"history.com", "nationalgeographic.com",
}

var noisyDomains = []string{
	"bbc.com", "bbc.co.uk",
}

func domainScore(rawURL string) int {
	u := strings.ToLower(rawURL)
	for _, d := range preferredDomains {
		if strings.Contains(u, d) {
			return 10
		}
	}
	for _, d := range noisyDomains {
		if strings.Contains(u, d) {
			return -5
		}
	}
	return 0
}

// rank sorts results by domain score, preserving DuckDuckGo's order within
// each score band.
func rank(results []Result) []Result {
	sort.SliceStable(results, func(i, j int) bool {
		return domainScore(results[i].URL) > domainScore(results[j].URL)
	})
	return results
}
