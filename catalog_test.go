package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestExtractTitle(t *testing.T) {
	cat := NewCatalog("https://example.com")
	cases := map[string]string{
		"https://example.com/movie/watch-great-escape-movie-online-abc": "Great Escape Movie",
		"https://example.com/movie/watch-solo-online-xyz":               "Solo",
	}
	for url, want := range cases {
		if got := cat.extractTitle(url); got != want {
			t.Errorf("wrong title for %v expected: %v got: %v", url, want, got)
		}
	}
}

func TestListingsForPage(t *testing.T) {
	var requests int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		fmt.Fprintf(w, `garbage,"url":"%[1]v/movie/watch-first-film-online-a1","name"more,"url":"%[1]v/movie/watch-second-film-online-b2","name"tail`, server.URL)
	}))
	defer server.Close()

	cat := NewCatalog(server.URL)
	listings, err := cat.ListingsForPage(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("wrong listing count expected: 2 got: %d", len(listings))
	}
	if listings[0].Title != "First Film" {
		t.Errorf("wrong title: %v", listings[0].Title)
	}
	if listings[1].URL != server.URL+"/movie/watch-second-film-online-b2" {
		t.Errorf("wrong url: %v", listings[1].URL)
	}

	// Second call hits the cache, not the server.
	cat.ListingsForPage(context.Background(), 1)
	if atomic.LoadInt32(&requests) != 1 {
		t.Errorf("page not cached, request count: %d", requests)
	}

	first, exists := cat.Listing(1, 0)
	if !exists || first.Title != "First Film" {
		t.Errorf("listing lookup failed: %+v", first)
	}
	if _, exists := cat.Listing(1, 5); exists {
		t.Error("listing lookup succeeded for out-of-range index")
	}
}

func TestContentURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `prefix"contentUrl":"https://cdn.example.com/stream.m3u8"suffix`)
	}))
	defer server.Close()

	cat := NewCatalog(server.URL)
	url, err := cat.ContentURL(context.Background(), server.URL+"/movie/whatever")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/stream.m3u8" {
		t.Errorf("wrong content url: %v", url)
	}
}

func TestContentURLNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `nothing useful here`)
	}))
	defer server.Close()

	cat := NewCatalog(server.URL)
	if _, err := cat.ContentURL(context.Background(), server.URL+"/movie/whatever"); err == nil {
		t.Error("expected error for page without content url")
	}
}

func TestFetchGivesUpOnClientError(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cat := NewCatalog(server.URL)
	if _, err := cat.ListingsForPage(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	if atomic.LoadInt32(&requests) != 1 {
		t.Errorf("client error retried, request count: %d", requests)
	}
}
