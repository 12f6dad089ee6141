package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Se9uencer/FitCheck/scraper"
)

// Handler carries the request handlers' dependencies. The scraper is
// constructed once at startup and injected here rather than living in a
// package global, so its ownership and lifecycle are explicit.
type Handler struct {
	Scraper *scraper.Amazon
	Log     *logrus.Logger
}

func NewHandler(s *scraper.Amazon, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{Scraper: s, Log: log}
}

// Routes builds the full route table wrapped in CORS and latency middleware
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("POST /api/extract", h.Extract)
	mux.HandleFunc("GET /api/product/{asin}", h.ProductByASIN)
	mux.HandleFunc("GET /api/demo/product", h.DemoProduct)

	mux.HandleFunc("POST /api/waitlist", h.JoinWaitlist)
	mux.HandleFunc("GET /api/waitlist", h.RequireAdmin(h.ListWaitlist))

	mux.HandleFunc("POST /api/measurements", h.CreateMeasurement)
	mux.HandleFunc("GET /api/measurements", h.RequireAdmin(h.ListMeasurements))
	mux.HandleFunc("GET /api/measurements/{id}", h.GetMeasurement)

	mux.HandleFunc("POST /api/generate-mannequin", h.GenerateMannequin)
	mux.HandleFunc("POST /api/tryon", h.TryOn)

	mux.HandleFunc("POST /api/admin/login", h.AdminLogin)

	return CORSMiddleware(LatencyMiddleware(h.Log, mux))
}
