package main

import (
	"net/http"
)

func main() {
	config := MustLoadConfig()

	registry := NewRegistry()
	store := NewStore()
	router := NewRouter(store, config.BaseURL)
	catalog := NewCatalog(config.CatalogURL)

	handler := NewHTTPServer(registry, store, router, catalog)
	LogStartedServer(config.Port)
	http.ListenAndServe(":"+config.Port, handler)
}
