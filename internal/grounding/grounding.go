// Package grounding collects best-effort web context for a debate topic.
//
// Every sub-step absorbs its own failures: a refused search, a dead page, or
// a missing credential degrades to less (or no) context, never to an error.
// Grounding is advisory and must not block debate generation.
package grounding

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/alienxp03/folio/internal/llm"
)

const (
	maxResults     = 3
	maxExcerptLen  = 4000
	fetchTimeout   = 10 * time.Second
	truncateMarker = "... [truncated]"
	divider        = "\n\n---\n\n"
	userAgent      = "Mozilla/5.0 (compatible; folio/1.0)"
)

// Result is one organic search hit.
type Result struct {
	Title string
	Link  string
}

// Searcher issues a web search for a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]Result, error)
}

// Service assembles a grounding snippet: refine the topic into a query,
// search, fetch the top result pages concurrently, clean them, and join the
// excerpts in discovery order.
type Service struct {
	client   llm.Client
	searcher Searcher
	http     *http.Client
}

// New creates a grounding service. searcher may be nil (no search
// credential), in which case Ground always returns the empty string.
func New(client llm.Client, searcher Searcher) *Service {
	return &Service{
		client:   client,
		searcher: searcher,
		http: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// Ground returns a text snippet of recent, relevant information for the
// topic, or the empty string. It never returns an error.
func (s *Service) Ground(ctx context.Context, topic string) string {
	if s.searcher == nil {
		return ""
	}

	query := s.refineQuery(ctx, topic)

	results, err := s.searcher.Search(ctx, query, maxResults)
	if err != nil {
		slog.Warn("Grounding search failed", "query", query, "error", err)
		return ""
	}
	if len(results) == 0 {
		return ""
	}

	// Fetches run concurrently; excerpts keep URL-discovery order and a
	// failure in one never cancels the others.
	excerpts := make([]string, len(results))
	var wg sync.WaitGroup
	for i, result := range results {
		wg.Add(1)
		go func(i int, result Result) {
			defer wg.Done()
			body := s.fetchAndClean(ctx, result.Link)
			if body == "" {
				return
			}
			excerpts[i] = fmt.Sprintf("%s\n%s\nSource: %s", result.Title, body, result.Link)
		}(i, result)
	}
	wg.Wait()

	var kept []string
	for _, excerpt := range excerpts {
		if excerpt != "" {
			kept = append(kept, excerpt)
		}
	}

	return strings.Join(kept, divider)
}

// refineQuery converts the topic into a short search query via one model
// call, falling back to the raw topic text on any failure.
func (s *Service) refineQuery(ctx context.Context, topic string) string {
	prompt := fmt.Sprintf("Convert this debate topic into a concise web search query of at most 10 words. "+
		"Respond with ONLY the query, no quotes.\n\nTopic: %s", topic)

	response, err := s.client.Complete(ctx, "You turn questions into effective web search queries.", prompt)
	if err != nil {
		slog.Debug("Query refinement failed, using raw topic", "error", err)
		return topic
	}

	query := strings.Trim(strings.TrimSpace(response), `"'`)
	if query == "" {
		return topic
	}

	// Enforce the word bound even when the model ignores it.
	words := strings.Fields(query)
	if len(words) > 10 {
		query = strings.Join(words[:10], " ")
	}
	return query
}

// fetchAndClean retrieves one page and reduces it to readable text. Any
// network or parse error yields an empty string for that URL only.
func (s *Service) fetchAndClean(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Debug("Grounding fetch skipped", "url", url, "error", err)
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		slog.Debug("Grounding fetch failed", "url", url, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("Grounding fetch rejected", "url", url, "status", resp.StatusCode)
		return ""
	}

	text := extractText(io.LimitReader(resp.Body, 2<<20))
	if len(text) > maxExcerptLen {
		// Back up to a rune boundary so the cut never leaves invalid UTF-8.
		cut := maxExcerptLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + truncateMarker
	}
	return text
}
