package devserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures a Server.
type Options struct {
	// Dist is the directory holding the built bundle.
	Dist string

	// APIBaseURL is the backend that /api/* is proxied to. Empty disables
	// the proxy.
	APIBaseURL string

	// Reload enables the live-reload socket, script injection and the
	// dist watcher.
	Reload bool

	// PollInterval is how often the watcher scans Dist.
	PollInterval time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Registry receives the server's metrics. A fresh registry is used
	// when nil so that several servers can coexist in one process.
	Registry *prometheus.Registry
}

// Server is the development server.
type Server struct {
	opts    Options
	logger  *slog.Logger
	router  chi.Router
	metrics *metrics
	reload  *ReloadServer
	watcher *Watcher
}

// New builds the server's routes. It does not start listening.
func New(opts Options) (*Server, error) {
	if opts.Dist == "" {
		return nil, errors.New("devserver: dist directory is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		opts:    opts,
		logger:  opts.Logger.With("component", "devserver"),
		metrics: newMetrics(opts.Registry),
	}
	if opts.Reload {
		s.reload = NewReloadServer(opts.Logger.With("component", "reload"))
		s.watcher = NewWatcher(opts.Dist, opts.PollInterval, opts.Logger.With("component", "watcher"))
		s.watcher.OnChange(func(files []string) {
			s.logger.Info("bundle changed, reloading", "files", len(files), "clients", s.reload.ClientCount())
			s.metrics.reloads.Inc()
			s.reload.NotifyReload(files)
		})
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(s.metrics.middleware)
	r.Use(s.logRequests)

	if opts.APIBaseURL != "" {
		proxy, err := s.apiProxy(opts.APIBaseURL)
		if err != nil {
			return nil, err
		}
		r.Handle("/api/*", proxy)
	}
	r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	if s.reload != nil {
		r.Get(ReloadPath, s.reload.ServeHTTP)
	}
	r.Get("/*", s.serveBundle)
	r.Head("/*", s.serveBundle)

	s.router = r
	return s, nil
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Reloader returns the live-reload server, or nil when reload is disabled.
func (s *Server) Reloader() *ReloadServer {
	return s.reload
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watcher != nil {
		go func() {
			if err := s.watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Warn("watcher stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", addr, "dist", s.opts.Dist, "api", s.opts.APIBaseURL, "reload", s.opts.Reload)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	if s.reload != nil {
		s.reload.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("devserver: shutdown: %w", err)
	}
	return nil
}

func (s *Server) apiProxy(raw string) (http.Handler, error) {
	target, err := url.Parse(raw)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("devserver: invalid API base URL %q", raw)
	}
	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
		if id := chimw.GetReqID(r.Context()); id != "" && r.Header.Get("X-Request-ID") == "" {
			r.Header.Set("X-Request-ID", id)
		}
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		s.metrics.proxyErrors.Inc()
		s.logger.Warn("api proxy failed", "path", r.URL.Path, "error", err)
		http.Error(w, "backend unavailable", http.StatusBadGateway)
	}
	return proxy, nil
}

// serveBundle serves a file from dist, falling back to index.html for
// anything that is not a file.
func (s *Server) serveBundle(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	if name != "/" && name != "/index.html" {
		full := filepath.Join(s.opts.Dist, filepath.FromSlash(name))
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			http.ServeFile(w, r, full)
			return
		}
	}
	s.serveIndex(w, r)
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(s.opts.Dist, "index.html")
	data, err := os.ReadFile(index)
	if err != nil {
		s.logger.Error("index.html missing", "dist", s.opts.Dist, "error", err)
		http.Error(w, "index.html not found in "+s.opts.Dist, http.StatusNotFound)
		return
	}
	if s.reload != nil {
		data = injectScript(data, reloadScript)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(data)
}

// injectScript inserts script before </body>, or appends it when the
// document has no body end tag.
func injectScript(doc []byte, script string) []byte {
	i := bytes.LastIndex(bytes.ToLower(doc), []byte("</body>"))
	if i < 0 {
		return append(doc, script...)
	}
	out := make([]byte, 0, len(doc)+len(script))
	out = append(out, doc[:i]...)
	out = append(out, script...)
	return append(out, doc[i:]...)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		if strings.HasPrefix(r.URL.Path, ReloadPath) {
			return
		}
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
