package web

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"studiocal/internal/calendar"
	"studiocal/internal/config"
	"studiocal/internal/courses"
	"studiocal/internal/ics"
	appLog "studiocal/internal/log"
	"studiocal/internal/model"
)

// Service is what the HTTP surface needs from the course layer.
type Service interface {
	Events(ctx context.Context, ym calendar.YearMonth) ([]model.EventRecord, error)
	Submit(f courses.EventForm) (calendar.YearMonth, int, error)
}

// Server serves year pages, iCalendar exports and the event form endpoint.
type Server struct {
	cfg       *config.Config
	svc       Service
	validator *courses.FormValidator
	mux       *http.ServeMux
	now       func() time.Time
}

// NewServer constructs a new Server.
func NewServer(cfg *config.Config, svc Service) *Server {
	s := &Server{
		cfg:       cfg,
		svc:       svc,
		validator: courses.NewFormValidator(cfg.Teachers),
		mux:       http.NewServeMux(),
		now:       time.Now,
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /", s.handlePage)

	submit := http.Handler(http.HandlerFunc(s.handleSubmit))
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled for event submission")
		submit = s.basicAuthMiddleware(submit)
	}
	s.mux.Handle("POST /events/", submit)
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="studiocal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handlePage redirects / to the current year's page, or the latest
// configured year when the current one is not offered. Everything else is
// /{year}.html or /{year}.ics.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		http.Redirect(w, r, fmt.Sprintf("/%d.html", s.defaultYear()), http.StatusFound)
		return
	}
	file := strings.TrimPrefix(r.URL.Path, "/")
	if strings.Contains(file, "/") {
		http.NotFound(w, r)
		return
	}
	s.serveYearFile(w, r, file)
}

func (s *Server) defaultYear() int {
	year := s.now().Year()
	if len(s.cfg.Years) == 0 || slices.Contains(s.cfg.Years, year) {
		return year
	}
	return slices.Max(s.cfg.Years)
}

func (s *Server) serveYearFile(w http.ResponseWriter, r *http.Request, file string) {
	name, ext, ok := strings.Cut(file, ".")
	if !ok {
		http.NotFound(w, r)
		return
	}
	year, err := strconv.Atoi(name)
	if err != nil || !s.offersYear(year) {
		http.NotFound(w, r)
		return
	}

	switch ext {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.RenderYear(r.Context(), w, year); err != nil {
			appLog.Error("year page render failed", err, "year", year)
		}
	case "ics":
		body := s.exportYear(r.Context(), year)
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%d.ics"`, year))
		_, _ = w.Write([]byte(body))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) offersYear(year int) bool {
	if year < 1 || year > 9999 {
		return false
	}
	return len(s.cfg.Years) == 0 || slices.Contains(s.cfg.Years, year)
}

// yearEvents loads the events of every month of year. A month that cannot
// be loaded is logged and reported in the returned set.
func (s *Server) yearEvents(ctx context.Context, year int) ([12][]model.EventRecord, map[time.Month]bool) {
	var out [12][]model.EventRecord
	failed := map[time.Month]bool{}
	for m := time.January; m <= time.December; m++ {
		ym := calendar.YearMonth{Year: year, Month: m}
		events, err := s.svc.Events(ctx, ym)
		if err != nil {
			appLog.Error("month events unavailable", err, "month", ym.String())
			failed[m] = true
			continue
		}
		out[m-1] = events
	}
	return out, failed
}

func (s *Server) exportYear(ctx context.Context, year int) string {
	byMonth, _ := s.yearEvents(ctx, year)
	var all []model.EventRecord
	for _, events := range byMonth {
		all = append(all, events...)
	}
	return ics.Export(fmt.Sprintf("Календарь %d", year), all, s.now())
}

// handleSubmit accepts the add-event form and stores its entries.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.validator.Validate(form); err != nil {
		var ve *courses.ValidationError
		if errors.As(err, &ve) {
			http.Error(w, ve.Error(), http.StatusBadRequest)
			return
		}
		appLog.Error("form validation failed", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ym, n, err := s.svc.Submit(form)
	if err != nil {
		appLog.Error("event submission failed", err, "type", form.Type)
		http.Error(w, "failed to store event", http.StatusInternalServerError)
		return
	}
	appLog.Info("events added", "month", ym.String(), "count", n, "type", form.Type)
	http.Redirect(w, r, fmt.Sprintf("/%d.html#%s", ym.Year, ym.String()), http.StatusSeeOther)
}

// ExportStatic writes {dir}/{year}.html and {dir}/{year}.ics for every
// configured year.
func (s *Server) ExportStatic(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, year := range s.cfg.Years {
		htmlPath := filepath.Join(dir, fmt.Sprintf("%d.html", year))
		if err := writeFile(htmlPath, func(f *os.File) error {
			return s.RenderYear(ctx, f, year)
		}); err != nil {
			return fmt.Errorf("web: export %d: %w", year, err)
		}

		icsPath := filepath.Join(dir, fmt.Sprintf("%d.ics", year))
		if err := os.WriteFile(icsPath, []byte(s.exportYear(ctx, year)), 0o644); err != nil {
			return fmt.Errorf("web: export %d: %w", year, err)
		}
		appLog.Info("year exported", "year", year, "path", htmlPath)
	}
	return nil
}

func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
