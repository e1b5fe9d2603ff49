package grounding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alienxp03/folio/internal/llm"
)

// stubSearcher returns fixed results or an error.
type stubSearcher struct {
	results []Result
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, query string, count int) ([]Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func pageServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}))
}

func TestGroundNeverFails(t *testing.T) {
	client := &llm.MockClient{Responses: []string{"coffee evening ban"}}

	t.Run("NoSearcher", func(t *testing.T) {
		svc := New(client, nil)
		if got := svc.Ground(context.Background(), "topic"); got != "" {
			t.Errorf("expected empty snippet, got %q", got)
		}
	})

	t.Run("SearchError", func(t *testing.T) {
		svc := New(client, &stubSearcher{err: errors.New("credential expired")})
		if got := svc.Ground(context.Background(), "topic"); got != "" {
			t.Errorf("expected empty snippet, got %q", got)
		}
	})

	t.Run("NoResults", func(t *testing.T) {
		svc := New(client, &stubSearcher{})
		if got := svc.Ground(context.Background(), "topic"); got != "" {
			t.Errorf("expected empty snippet, got %q", got)
		}
	})

	t.Run("AllFetchesFail", func(t *testing.T) {
		svc := New(client, &stubSearcher{results: []Result{
			{Title: "Dead", Link: "http://127.0.0.1:1/nothing"},
		}})
		if got := svc.Ground(context.Background(), "topic"); got != "" {
			t.Errorf("expected empty snippet, got %q", got)
		}
	})
}

func TestGroundPerURLIsolation(t *testing.T) {
	alive := pageServer(t, "<html><body><p>Evening caffeine disrupts sleep cycles.</p></body></html>")
	defer alive.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer failing.Close()

	client := &llm.MockClient{Responses: []string{"coffee evening ban"}}
	svc := New(client, &stubSearcher{results: []Result{
		{Title: "Broken first", Link: failing.URL},
		{Title: "Sleep study", Link: alive.URL},
		{Title: "Unreachable", Link: "http://127.0.0.1:1/gone"},
	}})

	got := svc.Ground(context.Background(), "Should coffee be banned after 6pm?")

	if !strings.Contains(got, "Sleep study") {
		t.Errorf("successful excerpt missing from %q", got)
	}
	if !strings.Contains(got, "Evening caffeine disrupts sleep cycles.") {
		t.Error("cleaned body missing")
	}
	if !strings.Contains(got, "Source: "+alive.URL) {
		t.Error("source URL missing")
	}
	if strings.Contains(got, "Broken first") || strings.Contains(got, "Unreachable") {
		t.Error("failed fetches leaked into the snippet")
	}
	if strings.Contains(got, divider) {
		t.Error("single excerpt should not carry a divider")
	}
}

func TestGroundJoinsInDiscoveryOrder(t *testing.T) {
	first := pageServer(t, "<html><body>FIRST-PAGE-TEXT</body></html>")
	defer first.Close()
	second := pageServer(t, "<html><body>SECOND-PAGE-TEXT</body></html>")
	defer second.Close()

	client := &llm.MockClient{Responses: []string{"query"}}
	svc := New(client, &stubSearcher{results: []Result{
		{Title: "One", Link: first.URL},
		{Title: "Two", Link: second.URL},
	}})

	got := svc.Ground(context.Background(), "topic")

	i := strings.Index(got, "FIRST-PAGE-TEXT")
	j := strings.Index(got, "SECOND-PAGE-TEXT")
	if i == -1 || j == -1 {
		t.Fatalf("excerpts missing from %q", got)
	}
	if i > j {
		t.Error("excerpts are not in URL-discovery order")
	}
	if !strings.Contains(got, divider) {
		t.Error("multiple excerpts must be joined with the divider")
	}
}

func TestRefineQuery(t *testing.T) {
	t.Run("UsesModelAnswer", func(t *testing.T) {
		client := &llm.MockClient{Responses: []string{`"evening coffee ban effects"`}}
		svc := New(client, nil)

		got := svc.refineQuery(context.Background(), "Should coffee be banned after 6pm?")
		if got != "evening coffee ban effects" {
			t.Errorf("refineQuery = %q", got)
		}
	})

	t.Run("FallsBackToTopicOnError", func(t *testing.T) {
		client := &llm.MockClient{Err: errors.New("model down")}
		svc := New(client, nil)

		got := svc.refineQuery(context.Background(), "raw topic text")
		if got != "raw topic text" {
			t.Errorf("refineQuery = %q, want raw topic", got)
		}
	})

	t.Run("FallsBackToTopicOnEmpty", func(t *testing.T) {
		client := &llm.MockClient{Responses: []string{"   "}}
		svc := New(client, nil)

		got := svc.refineQuery(context.Background(), "raw topic text")
		if got != "raw topic text" {
			t.Errorf("refineQuery = %q, want raw topic", got)
		}
	})

	t.Run("ClampsToTenWords", func(t *testing.T) {
		client := &llm.MockClient{Responses: []string{"one two three four five six seven eight nine ten eleven twelve"}}
		svc := New(client, nil)

		got := svc.refineQuery(context.Background(), "topic")
		if words := strings.Fields(got); len(words) != 10 {
			t.Errorf("expected 10 words, got %d: %q", len(words), got)
		}
	})
}

func TestFetchAndCleanTruncates(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor sit amet ", 400)
	srv := pageServer(t, "<html><body>"+long+"</body></html>")
	defer srv.Close()

	client := &llm.MockClient{}
	svc := New(client, nil)

	got := svc.fetchAndClean(context.Background(), srv.URL)
	if !strings.HasSuffix(got, truncateMarker) {
		t.Error("long page should be truncated with the marker")
	}
	if len(got) > maxExcerptLen+len(truncateMarker) {
		t.Errorf("excerpt too long: %d", len(got))
	}
}

func TestFetchAndCleanTruncatesOnRuneBoundary(t *testing.T) {
	// 3-byte runes guarantee the byte limit lands mid-rune.
	long := strings.Repeat("咖", maxExcerptLen)
	srv := pageServer(t, "<html><body>"+long+"</body></html>")
	defer srv.Close()

	client := &llm.MockClient{}
	svc := New(client, nil)

	got := svc.fetchAndClean(context.Background(), srv.URL)
	if !strings.HasSuffix(got, truncateMarker) {
		t.Error("long page should be truncated with the marker")
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a multi-byte rune")
	}
}

func TestExtractText(t *testing.T) {
	input := `<html><head><title>t</title><style>.x{color:red}</style>
<script>var a = 1;</script></head>
<body>
<nav>Home About</nav>
<header>Site header</header>
<p>Visible   paragraph
text.</p>
<footer>Copyright</footer>
</body></html>`

	got := extractText(strings.NewReader(input))

	if !strings.Contains(got, "Visible paragraph text.") {
		t.Errorf("visible text missing or whitespace not collapsed: %q", got)
	}
	for _, chrome := range []string{"var a = 1;", "color:red", "Home About", "Site header", "Copyright"} {
		if strings.Contains(got, chrome) {
			t.Errorf("chrome %q leaked into extracted text", chrome)
		}
	}
}
