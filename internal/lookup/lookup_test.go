package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchJoinsFirstThreeSnippets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "white running shoes" {
			t.Errorf("Unexpected query: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"results":[
			{"snippet":"Lightweight trainers"},
			{"snippet":"Breathable mesh upper"},
			{"snippet":"Popular for road running"},
			{"snippet":"Fourth snippet must be dropped"}
		]}`)); err != nil {
			t.Fatalf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, "")
	got := client.Search(context.Background(), "white running shoes")

	want := "Lightweight trainers | Breathable mesh upper | Popular for road running"
	if got != want {
		t.Errorf("Search = %q, want %q", got, want)
	}
}

func TestSearchSendsAPIKeyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-KEY"); got != "secret" {
			t.Errorf("Expected X-API-KEY header, got %q", got)
		}
		if _, err := w.Write([]byte(`{"results":[{"snippet":"one"}]}`)); err != nil {
			t.Fatalf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, "secret")
	if got := client.Search(context.Background(), "q"); got != "one" {
		t.Errorf("Search = %q, want %q", got, "one")
	}
}

func TestSearchFallsBackToSentinel(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("not json")); err != nil {
					t.Fatalf("Failed to write response: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClientWithBaseURL(server.URL, "")
			if got := client.Search(context.Background(), "anything"); got != NoDataFound {
				t.Errorf("Search = %q, want sentinel %q", got, NoDataFound)
			}
		})
	}
}

func TestSearchUnreachableCollaborator(t *testing.T) {
	// Grab a port that nothing is listening on anymore.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClientWithBaseURL(url, "")
	if got := client.Search(context.Background(), "anything"); got != NoDataFound {
		t.Errorf("Search = %q, want sentinel %q", got, NoDataFound)
	}
}

func TestSearchUnconfiguredCollaborator(t *testing.T) {
	client := NewClientWithBaseURL("", "")
	if got := client.Search(context.Background(), "anything"); got != NoDataFound {
		t.Errorf("Search = %q, want sentinel %q", got, NoDataFound)
	}
}

func TestSearchEmptyResultList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"results":[]}`)); err != nil {
			t.Fatalf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	// A successful response with no snippets is not a failure, so the
	// sentinel is not used.
	client := NewClientWithBaseURL(server.URL, "")
	if got := client.Search(context.Background(), "anything"); got != "" {
		t.Errorf("Search = %q, want empty string", got)
	}
}
