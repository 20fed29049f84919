package report

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rajkumar-bhange/api-testing-demo/framework"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
)

const (
	httpListenerTimeout = 5 * time.Second
	shutdownTimeout     = 5 * time.Second
)

// Server serves a generated report over HTTP.
type Server struct {
	server *http.Server
	url    string
}

// Serve starts serving the files in dir on the given port of localhost, or on any free
// port if port is zero. It returns once the server is accepting requests.
func Serve(fs afero.Fs, dir string, port int, logger framework.Logger) (*Server, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodHead && req.URL.Path == "/" {
				w.WriteHeader(200)
				return
			}
			logger.Printf("%s %s", req.Method, req.URL.Path)
			next.ServeHTTP(w, req)
		})
	})
	r.Handle("/*", http.FileServer(afero.NewHttpFs(fs).Dir(dir)))

	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return nil, fmt.Errorf("could not listen on port %d: %w", port, err)
	}
	s := &Server{
		server: &http.Server{Handler: r, ReadHeaderTimeout: 10 * time.Second},
		url:    "http://" + listener.Addr().String(),
	}
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("Report server stopped: %s", err)
		}
	}()

	// Wait till the server is definitely listening for requests before anyone opens it
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			_ = s.Close()
			return nil, fmt.Errorf("could not detect own listener at %s", s.url)
		case <-ticker.C:
			resp, err := http.DefaultClient.Head(s.url)
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == 200 {
					return s, nil
				}
			}
		}
	}
}

// URL returns the base URL of the server.
func (s *Server) URL() string {
	return s.url
}

func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
