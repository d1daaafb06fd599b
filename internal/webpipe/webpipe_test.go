package webpipe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jeanpaul/musage/internal/scraper"
	"github.com/jeanpaul/musage/internal/search"
)

type fakeSearch struct {
	results []search.Result
	err     error
}

func (f *fakeSearch) Search(ctx context.Context, query string, max int) ([]search.Result, error) {
	return f.results, f.err
}

type fakeScraper struct {
	pages map[string]*scraper.Page
	seen  []string
}

func (f *fakeScraper) ScrapeMultiple(ctx context.Context, urls []string) []*scraper.Page {
	f.seen = append(f.seen, urls...)
	var out []*scraper.Page
	for _, u := range urls {
		if p, ok := f.pages[u]; ok {
			out = append(out, p)
		}
	}
	return out
}

func TestAnswerPicksMostRelevantParagraph(t *testing.T) {
	relevant := "The speed of light in a vacuum is exactly 299,792,458 metres per second, a constant denoted c in physics."
	filler := "This website uses cookies to improve your experience while you navigate through the pages of the site."

	sr := &fakeSearch{results: []search.Result{
		{Title: "Speed of light", URL: "https://en.wikipedia.org/wiki/Speed_of_light"},
	}}
	sc := &fakeScraper{pages: map[string]*scraper.Page{
		"https://en.wikipedia.org/wiki/Speed_of_light": {
			URL:     "https://en.wikipedia.org/wiki/Speed_of_light",
			Content: filler + "\n\n" + relevant,
		},
	}}

	ans, err := New(sr, sc).Answer(context.Background(), "what is the speed of light")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if ans.Text != relevant {
		t.Errorf("picked wrong paragraph: %q", ans.Text)
	}
	if len(ans.SourceURLs) != 1 || ans.SourceURLs[0] != "https://en.wikipedia.org/wiki/Speed_of_light" {
		t.Errorf("sources = %v", ans.SourceURLs)
	}
}

func TestAnswerLimitsScrapedSources(t *testing.T) {
	var results []search.Result
	pages := map[string]*scraper.Page{}
	for _, u := range []string{"https://a.example/", "https://b.example/", "https://c.example/", "https://d.example/"} {
		results = append(results, search.Result{URL: u})
		pages[u] = &scraper.Page{URL: u, Content: strings.Repeat("light travels fast through empty space and slower in glass. ", 3)}
	}

	sc := &fakeScraper{pages: pages}
	if _, err := New(&fakeSearch{results: results}, sc).Answer(context.Background(), "speed of light"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if len(sc.seen) != 3 {
		t.Errorf("scraped %d urls, want 3: %v", len(sc.seen), sc.seen)
	}
}

func TestAnswerFallsBackToSnippet(t *testing.T) {
	snippet := "The Eiffel Tower is a wrought-iron lattice tower on the Champ de Mars in Paris, France, completed in 1889."
	sr := &fakeSearch{results: []search.Result{
		{URL: "https://example.com/eiffel", Snippet: snippet},
	}}
	sc := &fakeScraper{pages: map[string]*scraper.Page{}} // scrape yields nothing

	ans, err := New(sr, sc).Answer(context.Background(), "eiffel tower")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if ans.Text != snippet {
		t.Errorf("Text = %q, want snippet fallback", ans.Text)
	}
}

func TestAnswerErrors(t *testing.T) {
	sc := &fakeScraper{}

	if _, err := New(&fakeSearch{err: errors.New("dns failure")}, sc).Answer(context.Background(), "anything"); err == nil {
		t.Error("expected error when search fails")
	}

	_, err := New(&fakeSearch{}, sc).Answer(context.Background(), "anything")
	if !errors.Is(err, ErrNoAnswer) {
		t.Errorf("err = %v, want ErrNoAnswer", err)
	}

	// Results with no scrapeable content and only tiny snippets.
	sr := &fakeSearch{results: []search.Result{{URL: "https://x.example/", Snippet: "short"}}}
	_, err = New(sr, sc).Answer(context.Background(), "anything")
	if !errors.Is(err, ErrNoAnswer) {
		t.Errorf("err = %v, want ErrNoAnswer", err)
	}
}

func TestBestFragmentTrimsLongParagraphs(t *testing.T) {
	long := strings.Repeat("Photosynthesis converts light energy into chemical energy. ", 20)
	pages := []*scraper.Page{{URL: "https://x.example/", Content: long}}

	got, _, ok := bestFragment("photosynthesis", pages)
	if !ok {
		t.Fatal("expected a fragment")
	}
	if len(got) > maxFragmentLen+3 {
		t.Errorf("fragment length %d exceeds cap", len(got))
	}
	if !strings.HasSuffix(got, ".") && !strings.HasSuffix(got, "...") {
		t.Errorf("fragment should end cleanly: %q", got[len(got)-20:])
	}
}
