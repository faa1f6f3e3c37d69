// Package preview serves a book over local HTTP, rendering chapters to HTML
// on every request so edits show up on reload.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"mdbook/internal/book"
	"mdbook/internal/logging"
	"mdbook/internal/render"
)

const (
	// DefaultPortStart and DefaultPortEnd bound the port scan used when the
	// caller does not pin a port.
	DefaultPortStart = 3500
	DefaultPortEnd   = 3509
)

// ErrNoPortAvailable is returned when every port in the default range is
// taken.
var ErrNoPortAvailable = errors.New("no available port in range 3500-3509")

// Server renders and serves one book.
type Server struct {
	root     string
	renderer *render.Renderer
	logger   *logging.AppLogger
}

// NewServer builds a preview server for the book rooted at root.
func NewServer(root string, renderer *render.Renderer, logger *logging.AppLogger) *Server {
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Server{root: root, renderer: renderer, logger: logger}
}

// FindAvailablePort scans the default range and returns the first free port.
func FindAvailablePort() (int, error) {
	for port := DefaultPortStart; port <= DefaultPortEnd; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err != nil {
			continue
		}
		ln.Close()
		return port, nil
	}
	return 0, ErrNoPortAvailable
}

// Serve listens on the given port until ctx is cancelled. Port 0 triggers
// the default port scan; the chosen address is reported through onReady when
// set.
func (s *Server) Serve(ctx context.Context, port int, onReady func(addr string)) error {
	if port == 0 {
		var err error
		port, err = FindAvailablePort()
		if err != nil {
			return err
		}
	}

	addr := fmt.Sprintf("localhost:%d", port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	if onReady != nil {
		onReady("http://" + addr)
	}
	s.logger.Info("Preview server listening", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Handler returns the request mux. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	return mux
}

// handlePage reloads the book on every request so newly added or edited
// chapters appear without a restart.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	b, err := book.Load(s.root)
	if err != nil {
		s.logger.Error("Preview failed to load book", "error", err)
		http.Error(w, "failed to load book: "+err.Error(), http.StatusInternalServerError)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" {
		path = "index.html"
	}

	for _, ch := range b.Chapters {
		if render.OutputFilename(ch) != path {
			continue
		}
		raw, err := os.ReadFile(ch.Path)
		if err != nil {
			http.Error(w, "failed to read chapter", http.StatusInternalServerError)
			return
		}
		page, err := s.renderer.Page(b, ch, string(raw))
		if err != nil {
			http.Error(w, "failed to render chapter", http.StatusInternalServerError)
			return
		}
		writeHTML(w, page)
		return
	}

	if path == "index.html" {
		page, err := s.renderer.IndexPage(b)
		if err != nil {
			http.Error(w, "failed to render index", http.StatusInternalServerError)
			return
		}
		writeHTML(w, page)
		return
	}

	http.NotFound(w, r)
}

func writeHTML(w http.ResponseWriter, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}
