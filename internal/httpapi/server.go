package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/pageloadtime/internal/domain"
	"github.com/hamed0406/pageloadtime/internal/format"
	apimw "github.com/hamed0406/pageloadtime/internal/httpapi/middleware"
	"github.com/hamed0406/pageloadtime/internal/metrics"
	"github.com/hamed0406/pageloadtime/internal/probe"
	"github.com/hamed0406/pageloadtime/internal/repo"
)

const (
	msgNoPage      = "Please provide page"
	msgPageMissing = "Page does not exist"
	msgInternal    = "internal error"
)

type Server struct {
	Logger  *zap.Logger
	Pages   repo.PageStore
	Timer   probe.Measurer
	Metrics *metrics.Metrics // optional
}

func NewServer(l *zap.Logger, pages repo.PageStore, timer probe.Measurer, m *metrics.Metrics) *Server {
	return &Server{Logger: l, Pages: pages, Timer: timer, Metrics: m}
}

type RouterOptions struct {
	AllowedOrigins []string // empty allows all
	RateLimitRPM   int      // 0 disables
	RateLimitBurst int
}

func (s *Server) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.Observe(s.Logger, s.Metrics))
	r.Use(chimw.Recoverer)
	if len(opts.AllowedOrigins) == 0 {
		r.Use(cors.AllowAll().Handler)
	} else {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(opts.RateLimitRPM, opts.RateLimitBurst))

		r.Get("/", s.handleHello)
		r.Get("/page_loadtime/{url}", s.handleLoadTime)
		r.Get("/page_loadtime_json/{page}", s.handleLoadTimeJSON)
		r.Get("/pages/{page}", s.handleGetPage)
		r.Post("/pages", s.handleCreatePage)
	})

	return r
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	writeText(w, "Hello, World!")
}

func (s *Server) handleLoadTime(w http.ResponseWriter, r *http.Request) {
	text, err := s.loadTimeText(r.Context(), pathParam(r, "url"))
	if err != nil {
		s.writeMeasureError(w, err)
		return
	}
	writeText(w, text)
}

func (s *Server) handleLoadTimeJSON(w http.ResponseWriter, r *http.Request) {
	ms, err := s.Timer.Measure(r.Context(), pathParam(r, "page"))
	if err != nil {
		s.writeMeasureError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "array" {
		b, err := format.JSONArray(ms)
		if err != nil {
			s.writeInternal(w, "encode_array", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
		return
	}

	out, err := format.JSONFragments(ms)
	if err != nil {
		s.writeInternal(w, "encode_fragments", err)
		return
	}
	// concatenated fragments are not a JSON document, so no JSON content type
	writeText(w, out)
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	page := pathParam(r, "page")
	rec, err := s.Pages.Get(r.Context(), page)
	if errors.Is(err, repo.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgPageMissing)
		return
	}
	if err != nil {
		s.writeInternal(w, "page_get_failed", err, zap.String("page", page))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type createPayload struct {
	Page string `json:"page"`
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	var p createPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Page == "" {
		writeError(w, http.StatusBadRequest, msgNoPage)
		return
	}

	text, err := s.loadTimeText(r.Context(), p.Page)
	if err != nil {
		s.writeMeasureError(w, err)
		return
	}

	rec := &domain.PageRecord{Page: p.Page, LoadingTime: text}
	if err := s.Pages.Put(r.Context(), rec); err != nil {
		s.writeInternal(w, "page_put_failed", err, zap.String("page", p.Page))
		return
	}

	s.Logger.Info("page_stored",
		zap.String("page", rec.Page),
		zap.String("loading_time", rec.LoadingTime),
	)
	writeJSON(w, http.StatusOK, rec)
}

// loadTimeText is shared by GET /page_loadtime and POST /pages so stored
// records hold exactly what the text endpoint would have returned.
func (s *Server) loadTimeText(ctx context.Context, input string) (string, error) {
	ms, err := s.Timer.Measure(ctx, input)
	if err != nil {
		return "", err
	}
	return format.Text(ms), nil
}

func (s *Server) writeMeasureError(w http.ResponseWriter, err error) {
	var nerr *probe.NetworkError
	if !errors.As(err, &nerr) {
		s.writeInternal(w, "measure_failed", err)
		return
	}
	status := http.StatusBadGateway
	if nerr.Timeout() {
		status = http.StatusGatewayTimeout
	}
	writeError(w, status, "failed to load "+nerr.Identifier)
}

func (s *Server) writeInternal(w http.ResponseWriter, event string, err error, fields ...zap.Field) {
	s.Logger.Error(event, append(fields, zap.Error(err))...)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

// pathParam returns the decoded value of a route parameter. chi matches on the
// raw path when the URL carries escapes the default encoding would not produce.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
