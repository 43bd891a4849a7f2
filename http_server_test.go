package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestHTTPServer(store *Store) http.Handler {
	registry := NewRegistry()
	router := NewRouter(store, "http://127.0.0.1:3000")
	catalog := NewCatalog("https://example.com")
	return NewHTTPServer(registry, store, router, catalog)
}

func TestGetWatchPage(t *testing.T) {
	store := NewStore()
	room := store.Create(newTestConn("owner"), "https://cdn.example.com/stream.m3u8")
	handler := newTestHTTPServer(store)

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest("GET", "/watch?room="+room.Code, nil))

	if res.Code != http.StatusOK {
		t.Fatalf("wrong status expected: 200 got: %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "https://cdn.example.com/stream.m3u8") {
		t.Errorf("content url missing from page: %v", res.Body.String())
	}
}

func TestGetWatchPageUnknownRoom(t *testing.T) {
	handler := newTestHTTPServer(NewStore())

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest("GET", "/watch?room=nope42", nil))

	if res.Code != http.StatusNotFound {
		t.Errorf("wrong status expected: 404 got: %d", res.Code)
	}
}

func TestGetWatchPageWithoutReference(t *testing.T) {
	handler := newTestHTTPServer(NewStore())

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest("GET", "/watch", nil))

	if res.Code != http.StatusBadRequest {
		t.Errorf("wrong status expected: 400 got: %d", res.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHTTPServer(NewStore())

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest("GET", "/health", nil))

	if res.Code != http.StatusOK {
		t.Errorf("wrong status expected: 200 got: %d", res.Code)
	}
}
