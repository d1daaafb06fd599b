// Package webpipe is the live web tier: search, scrape the top hits, and
// pick the best extracted fragment as the answer. It is the only place the
// pipeline touches the network, and it is allowed to fail; the caller
// treats any error as "cannot answer from the web".
package webpipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeanpaul/musage/internal/learning"
	"github.com/jeanpaul/musage/internal/scraper"
	"github.com/jeanpaul/musage/internal/search"
)

// ErrNoAnswer reports that search and extraction ran but produced nothing
// usable.
var ErrNoAnswer = errors.New("no usable answer found on the web")

// SearchProvider is satisfied by *search.Searcher.
type SearchProvider interface {
	Search(ctx context.Context, query string, max int) ([]search.Result, error)
}

// ContentScraper is satisfied by *scraper.Scraper.
type ContentScraper interface {
	ScrapeMultiple(ctx context.Context, urls []string) []*scraper.Page
}

// Answer is a web-derived answer with the pages it came from.
type Answer struct {
	Text       string
	SourceURLs []string
}

type Pipeline struct {
	searcher   SearchProvider
	scraper    ContentScraper
	maxSources int
}

func New(searcher SearchProvider, sc ContentScraper) *Pipeline {
	return &Pipeline{
		searcher:   searcher,
		scraper:    sc,
		maxSources: 3,
	}
}

// Answer runs the search-scrape-extract sequence for a query.
func (p *Pipeline) Answer(ctx context.Context, query string) (*Answer, error) {
	results, err := p.searcher.Search(ctx, query, 0)
	if err != nil {
		return nil, fmt.Errorf("web search failed: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoAnswer
	}

	urls := make([]string, 0, p.maxSources)
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		urls = append(urls, r.URL)
		if len(urls) == p.maxSources {
			break
		}
	}

	pages := p.scraper.ScrapeMultiple(ctx, urls)
	if fragment, sources, ok := bestFragment(query, pages); ok {
		return &Answer{Text: fragment, SourceURLs: sources}, nil
	}

	// Scraping produced nothing readable; fall back to the best snippet.
	for _, r := range results {
		if len(r.Snippet) >= minFragmentLen {
			return &Answer{Text: r.Snippet, SourceURLs: []string{r.URL}}, nil
		}
	}
	return nil, ErrNoAnswer
}

const (
	minFragmentLen = 80
	maxFragmentLen = 700
)

// bestFragment picks the paragraph with the highest query-term overlap
// across all scraped pages.
func bestFragment(query string, pages []*scraper.Page) (string, []string, bool) {
	terms := queryTerms(query)

	var (
		best      string
		bestScore = -1.0
	)
	for _, page := range pages {
		for _, para := range strings.Split(page.Content, "\n\n") {
			para = strings.TrimSpace(para)
			if len(para) < minFragmentLen {
				continue
			}
			if score := overlapScore(terms, para); score > bestScore {
				best, bestScore = para, score
			}
		}
	}
	if best == "" {
		return "", nil, false
	}
	if len(best) > maxFragmentLen {
		if cut := strings.LastIndexByte(best[:maxFragmentLen], '.'); cut > minFragmentLen {
			best = best[:cut+1]
		} else {
			best = best[:maxFragmentLen] + "..."
		}
	}

	sources := make([]string, 0, len(pages))
	for _, page := range pages {
		sources = append(sources, page.URL)
	}
	return best, sources, true
}

func queryTerms(query string) []string {
	var terms []string
	for _, w := range strings.Fields(learning.Normalize(query)) {
		if len(w) > 2 {
			terms = append(terms, w)
		}
	}
	return terms
}

func overlapScore(terms []string, text string) float64 {
	if len(terms) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}
