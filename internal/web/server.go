package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"hivecadlanding/internal/content"
	"hivecadlanding/internal/downloads"
	"hivecadlanding/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Options tunes the server's resolution schedule.
type Options struct {
	// Refresh re-resolves downloads on this interval; zero resolves once.
	Refresh time.Duration
	// ResolveTimeout bounds each resolution.
	ResolveTimeout time.Duration
}

// Server renders the landing page and exposes the resolved downloads.
type Server struct {
	page     *content.Page
	resolver *downloads.Resolver
	cell     *downloads.Cell
	opts     Options
	tmpl     *template.Template
}

// New parses the page template. Downloads stay in the loading state until Start.
func New(page *content.Page, resolver *downloads.Resolver, opts Options) (*Server, error) {
	tmpl, err := template.New("page.html").Funcs(template.FuncMap{
		"join": joinLines,
	}).ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	if opts.ResolveTimeout <= 0 {
		opts.ResolveTimeout = 30 * time.Second
	}

	return &Server{
		page:     page,
		resolver: resolver,
		cell:     downloads.NewCell(),
		opts:     opts,
		tmpl:     tmpl,
	}, nil
}

// Downloads exposes the cell the handlers read from.
func (s *Server) Downloads() *downloads.Cell { return s.cell }

// Start kicks off the first resolution and, when configured, the refresh
// loop. Both stop when ctx is done.
func (s *Server) Start(ctx context.Context) {
	go func() {
		s.resolveOnce(ctx)
		if s.opts.Refresh <= 0 {
			return
		}

		t := time.NewTicker(s.opts.Refresh)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.resolveOnce(ctx)
			}
		}
	}()
}

func (s *Server) resolveOnce(ctx context.Context) {
	rctx, cancel := context.WithTimeout(ctx, s.opts.ResolveTimeout)
	defer cancel()
	<-s.cell.Start(rctx, s.resolver)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.Start(ctx)

	errc := make(chan error, 1)
	go func() {
		logger.Log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type errHandlerFunc func(http.ResponseWriter, *http.Request) error

// Handler returns the routed, logged HTTP handler.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embed guarantees the directory exists
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", s.handle(s.index))
	mux.Handle("GET /api/downloads", s.handle(s.apiDownloads))
	mux.Handle("GET /download/{platform}", s.handle(s.download))
	mux.Handle("GET /healthz", s.handle(func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, err := w.Write([]byte("ok"))
		return err
	}))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	return withRequestLog(mux)
}

func (s *Server) handle(f errHandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil || r.Context().Err() != nil {
			return
		}

		var se statusError
		if errors.As(err, &se) {
			_ = responseError(w, se.status, se.message)
			return
		}

		logFromContext(r.Context()).Error("handler failed", "err", err)
		_ = responseError(w, http.StatusInternalServerError, "internal server error")
	})
}

func logFromContext(ctx context.Context) *slog.Logger {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return logger.Log.With("request_id", id)
	}
	return logger.Log
}
