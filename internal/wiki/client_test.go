package wiki

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/furiabot/furiabot/internal/log"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		Language:   "pt",
		Logger:     log.NewNop(),
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	return client
}

func TestNewClient_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing language", cfg: Config{Logger: log.NewNop()}},
		{name: "missing logger", cfg: Config{Language: "pt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient(tt.cfg); err == nil {
				t.Error("NewClient() expected error, got nil")
			}
		})
	}
}

func TestSummary_ResolvesThenFetches(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/w/api.php"):
			if got := r.URL.Query().Get("search"); got != "furia esports" {
				t.Errorf("search term = %q, want %q", got, "furia esports")
			}
			_, _ = w.Write([]byte(`["furia esports",["FURIA Esports"],[""],["https://pt.wikipedia.org/wiki/FURIA_Esports"]]`))
		case r.URL.Path == "/api/rest_v1/page/summary/FURIA_Esports":
			_, _ = w.Write([]byte(`{
				"title": "FURIA Esports",
				"extract": "FURIA Esports é uma organização brasileira de esportes eletrônicos.",
				"content_urls": {"desktop": {"page": "https://pt.wikipedia.org/wiki/FURIA_Esports"}}
			}`))
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	summary, err := client.Summary(context.Background(), "furia esports")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if summary.Title != "FURIA Esports" {
		t.Errorf("Title = %q, want %q", summary.Title, "FURIA Esports")
	}
	if !strings.Contains(summary.Extract, "organização brasileira") {
		t.Errorf("Extract = %q, missing expected text", summary.Extract)
	}
	if summary.URL != "https://pt.wikipedia.org/wiki/FURIA_Esports" {
		t.Errorf("URL = %q, want canonical page URL", summary.URL)
	}
}

func TestSummary_NoSearchResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["xyzzy",[],[],[]]`))
	})

	_, err := client.Summary(context.Background(), "xyzzy")
	if !errors.Is(err, ErrPageNotFound) {
		t.Errorf("Summary() error = %v, want ErrPageNotFound", err)
	}
}

func TestSummary_PageGone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/w/api.php") {
			_, _ = w.Write([]byte(`["ghost",["Ghost Page"],[""],[""]]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Summary(context.Background(), "ghost")
	if !errors.Is(err, ErrPageNotFound) {
		t.Errorf("Summary() error = %v, want ErrPageNotFound", err)
	}
}

func TestSummary_EmptyExtract(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/w/api.php") {
			_, _ = w.Write([]byte(`["stub",["Stub Page"],[""],[""]]`))
			return
		}
		_, _ = w.Write([]byte(`{"title": "Stub Page", "extract": "  ", "content_urls": {"desktop": {"page": ""}}}`))
	})

	_, err := client.Summary(context.Background(), "stub")
	if !errors.Is(err, ErrPageNotFound) {
		t.Errorf("Summary() error = %v, want ErrPageNotFound", err)
	}
}

func TestSummary_SearchServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Summary(context.Background(), "anything")
	if err == nil {
		t.Fatal("Summary() expected error, got nil")
	}
	if errors.Is(err, ErrPageNotFound) {
		t.Error("server error should not map to ErrPageNotFound")
	}
}
