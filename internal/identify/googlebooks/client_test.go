package googlebooks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchParsesVolumes(t *testing.T) {
	var gotQuery, gotMax, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		gotMax = r.URL.Query().Get("maxResults")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"volumeInfo": {"title": "Berserk, Vol. 1", "subtitle": "The Black Swordsman"}},
				{"volumeInfo": {"title": "Berserk, Vol. 2"}}
			]
		}`))
	}))
	defer server.Close()

	client, err := New("test-key", server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	volumes, err := client.Search(context.Background(), `intitle:"Berserk"`, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(volumes) != 2 {
		t.Fatalf("volumes = %d, want 2", len(volumes))
	}
	if volumes[0].Title != "Berserk, Vol. 1" || volumes[0].Subtitle != "The Black Swordsman" {
		t.Errorf("first volume = %+v", volumes[0])
	}
	if volumes[1].Subtitle != "" {
		t.Errorf("second volume subtitle = %q, want empty", volumes[1].Subtitle)
	}
	if gotQuery != `intitle:"Berserk"` || gotMax != "5" || gotKey != "test-key" {
		t.Errorf("query params: q=%q maxResults=%q key=%q", gotQuery, gotMax, gotKey)
	}
}

func TestSearchOmitsEmptyKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("key") {
			t.Error("key param should be absent without an API key")
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := New("", server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Search(context.Background(), "Berserk", 5); err != nil {
		t.Fatalf("Search: %v", err)
	}
}

func TestSearchRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := New("k", server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = client.Search(context.Background(), "Berserk", 5)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := New("k", server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Search(context.Background(), "Berserk", 5); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New("k", " "); err == nil {
		t.Fatal("expected an error for a blank base URL")
	}
}
