// Package server is the development server: it publishes the content
// document, serves the static site and pushes live reloads.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"bus-route/pkg/content"
	"bus-route/pkg/handlers"
)

// Server wires the content feed, live reload and static files together
type Server struct {
	publicDir string
	content   *handlers.ContentHandler
	hub       *Hub
	logger    *zap.Logger
	router    chi.Router
}

// New creates a Server publishing source at /content.json and files from publicDir
func New(publicDir string, source content.Source, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		publicDir: publicDir,
		content:   handlers.NewContentHandler(source, logger),
		hub:       NewHub(logger),
		logger:    logger,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/content.json", s.content.ServeHTTP)
	r.Post("/admin/refresh", handlers.RefreshHandler(s.content))
	r.Get("/ws", s.hub.ServeHTTP)
	r.Handle("/*", liveReload(http.FileServer(http.Dir(s.publicDir))))

	return r
}

// Router returns the HTTP handler
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live-reload hub
func (s *Server) Hub() *Hub { return s.hub }

// Reload flushes the content memo and notifies live-reload clients
func (s *Server) Reload() {
	s.content.Flush()
	s.hub.Broadcast(ReloadMessage)
	s.logger.Info("Content changed, reload sent", zap.Int("clients", s.hub.Clients()))
}

// Run serves on addr until ctx is done
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// liveReload injects the reload client into HTML pages
func liveReload(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

		if !strings.HasSuffix(r.URL.Path, ".html") && !strings.HasSuffix(r.URL.Path, "/") {
			next.ServeHTTP(w, r)
			return
		}

		iw := &interceptingWriter{header: make(http.Header), status: http.StatusOK}
		next.ServeHTTP(iw, r)

		for key, values := range iw.header {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}

		body := iw.body.Bytes()
		if iw.status == http.StatusOK {
			body = bytes.Replace(body, []byte("</body>"), []byte(liveReloadScript+"</body>"), 1)
			w.Header().Set("Content-Length", fmt.Sprint(len(body)))
		}
		w.WriteHeader(iw.status)
		w.Write(body)
	})
}

type interceptingWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (iw *interceptingWriter) Header() http.Header         { return iw.header }
func (iw *interceptingWriter) Write(b []byte) (int, error) { return iw.body.Write(b) }
func (iw *interceptingWriter) WriteHeader(status int)      { iw.status = status }

const liveReloadScript = `<script>
(function() {
  var socket = new WebSocket("ws://" + window.location.host + "/ws");
  socket.onmessage = function(event) {
    if (event.data === "reload") { window.location.reload(); }
  };
})();
</script>
`
