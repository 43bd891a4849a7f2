package main

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

//go:embed views/*.html
var viewsFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}).ParseFS(viewsFS, "views/*.html"))

type HTTPHandler struct {
	Registry *Registry
	Store    *Store
	Router   *Router
	Catalog  *Catalog
}

func NewHTTPServer(registry *Registry, store *Store, router *Router, catalog *Catalog) http.Handler {
	httpHandler := HTTPHandler{registry, store, router, catalog}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RealIP)
	r.Use(httprate.Limit(60, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint)))
	r.Use(middleware.Heartbeat("/health"))

	r.Get("/ws", httpHandler.websocket())
	r.Get("/watch", httpHandler.getWatchPage())
	r.Get("/", httpHandler.getHomePage())
	return r
}

func (h HTTPHandler) websocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sock, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			LogErrorWhileUpgradingHTTP(err)
			return
		}
		c := h.Registry.Register(sock)
		LogConnected(c.ID(), r.RemoteAddr)
		defer func() {
			h.Router.HandleClose(c)
			h.Registry.Remove(c.ID())
			c.Close()
			LogDisconnected(c.ID())
		}()
		for {
			msg, err := wsutil.ReadClientText(sock)
			if err != nil {
				return
			}
			h.Router.HandleFrame(c, msg)
		}
	}
}

type videoPage struct {
	ContentURL string
}

func (h HTTPHandler) getWatchPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if roomCode := r.URL.Query().Get("room"); roomCode != "" {
			contentURL, exists := h.Store.ContentURL(roomCode)
			if !exists {
				http.NotFound(w, r)
				return
			}
			renderTemplate(w, "video.html", videoPage{ContentURL: contentURL})
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("p"))
		index, err := strconv.Atoi(r.URL.Query().Get("u"))
		if err != nil {
			http.Error(w, "missing movie reference", http.StatusBadRequest)
			return
		}
		listing, exists := h.Catalog.Listing(page, index)
		if !exists {
			http.NotFound(w, r)
			return
		}
		contentURL, err := h.Catalog.ContentURL(r.Context(), listing.URL)
		if err != nil {
			http.Error(w, "error fetching content", http.StatusBadGateway)
			return
		}
		renderTemplate(w, "video.html", videoPage{ContentURL: contentURL})
	}
}

type homePage struct {
	Page     int
	Listings []Listing
}

func (h HTTPHandler) getHomePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		listings, err := h.Catalog.ListingsForPage(r.Context(), page)
		if err != nil {
			http.Error(w, "error fetching catalog", http.StatusBadGateway)
			return
		}
		renderTemplate(w, "home.html", homePage{Page: page, Listings: listings})
	}
}

func renderTemplate(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		LogTemplateRenderFailed(name, err)
	}
}
