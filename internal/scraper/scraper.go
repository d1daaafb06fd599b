// Package scraper fetches pages and extracts their main content: HTML goes
// through readability and a Markdown conversion, PDFs through a text
// extractor. Requests are rate limited per domain and retried with backoff.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/go-shiori/go-readability"

	"github.com/jeanpaul/musage/internal/config"
)

// Page is the extracted content of one URL.
type Page struct {
	URL      string
	Title    string
	Content  string // cleaned plain text
	Markdown string // content as Markdown (empty for PDFs)
}

type Scraper struct {
	client     *http.Client
	converter  *md.Converter
	userAgent  string
	maxRetries int
	rateDelay  time.Duration
	maxChars   int

	mu          sync.Mutex
	lastRequest map[string]time.Time
}

func New(cfg *config.Config) *Scraper {
	return &Scraper{
		client:      &http.Client{Timeout: cfg.Scraper.Timeout()},
		converter:   md.NewConverter("", true, nil),
		userAgent:   cfg.Scraper.UserAgent,
		maxRetries:  cfg.Scraper.MaxRetries,
		rateDelay:   cfg.Scraper.RateDelay(),
		maxChars:    cfg.Scraper.MaxContentChars,
		lastRequest: make(map[string]time.Time),
	}
}

// Scrape fetches a URL and extracts its main content.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	s.rateLimit(u.Host)

	resp, err := s.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/pdf") || strings.HasSuffix(strings.ToLower(u.Path), ".pdf") {
		return s.extractPDF(resp.Body, rawURL)
	}
	return s.extractHTML(resp.Body, u)
}

// ScrapeMultiple scrapes a list of URLs, skipping failures.
func (s *Scraper) ScrapeMultiple(ctx context.Context, urls []string) []*Page {
	var pages []*Page
	for _, u := range urls {
		page, err := s.Scrape(ctx, u)
		if err != nil {
			continue
		}
		pages = append(pages, page)
	}
	return pages
}

func (s *Scraper) fetch(ctx context.Context, rawURL string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff between attempts.
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(1<<(attempt-1)) * time.Second):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", s.userAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		resp.Body.Close()
		lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)
		// Client errors won't improve on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			break
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", rawURL, lastErr)
}

func (s *Scraper) rateLimit(host string) {
	s.mu.Lock()
	last, seen := s.lastRequest[host]
	now := time.Now()
	s.lastRequest[host] = now
	s.mu.Unlock()

	if seen {
		if wait := s.rateDelay - now.Sub(last); wait > 0 {
			time.Sleep(wait)
		}
	}
}

func (s *Scraper) extractHTML(body io.Reader, pageURL *url.URL) (*Page, error) {
	article, err := readability.FromReader(body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability parse failed: %w", err)
	}

	markdown, err := s.converter.ConvertString(article.Content)
	if err != nil {
		// Fall back to the plain text extraction.
		markdown = ""
	}

	content := cleanText(article.TextContent)
	if len(content) > s.maxChars {
		content = content[:s.maxChars] + "..."
	}
	if len(markdown) > s.maxChars {
		markdown = markdown[:s.maxChars] + "..."
	}

	return &Page{
		URL:      pageURL.String(),
		Title:    article.Title,
		Content:  content,
		Markdown: markdown,
	}, nil
}

var (
	captionLineRe  = regexp.MustCompile(`(?im)^\s*Image\s+(source|caption)[,:].*$`)
	creditInlineRe = regexp.MustCompile(`(?i)\b(Getty Images?|AFP|Reuters|AP Photo|PA Media|Alamy|Shutterstock|EPA)\b[,\s]*`)
	strayTagRe     = regexp.MustCompile(`<[^>]{1,80}>`)
	entityRe       = regexp.MustCompile(`&[a-z]{2,6};`)
	blankRunRe     = regexp.MustCompile(`\n\s*\n\s*\n+`)
	spaceRunRe     = regexp.MustCompile(`[ \t]+`)
)

// cleanText scrubs caption labels, photo credits and HTML artefacts that
// survive extraction.
func cleanText(text string) string {
	text = captionLineRe.ReplaceAllString(text, "")
	text = creditInlineRe.ReplaceAllString(text, "")
	text = strayTagRe.ReplaceAllString(text, " ")
	text = entityRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
