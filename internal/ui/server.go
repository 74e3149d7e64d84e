// Package ui provides the AutoHub web front end.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/autohub/internal/enquiry"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
	"github.com/leapstack-labs/autohub/internal/ui/notifier"
	"github.com/leapstack-labs/autohub/internal/ui/resources"
	"github.com/leapstack-labs/autohub/internal/ui/router"
)

// Server is the main UI server.
type Server struct {
	listings     common.Listings
	store        enquiry.Store
	sessionStore *sessions.CookieStore
	site         common.Site
	port         int
	watch        bool
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	Listings      common.Listings
	Store         enquiry.Store
	Site          common.Site
	Port          int
	Watch         bool
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		logger.Warn("ui.session_secret is not set, sessions will not survive a restart")
		secret = securecookie.GenerateRandomKey(32)
	}

	sessionStore := sessions.NewCookieStore(secret)
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	site := cfg.Site
	site.IsDev = cfg.Watch || resources.IsDev()

	return &Server{
		listings:     cfg.Listings,
		store:        cfg.Store,
		sessionStore: sessionStore,
		site:         site,
		port:         cfg.Port,
		watch:        cfg.Watch,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Handler builds the HTTP handler with middleware and all routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelInfo),
			NoColor: true,
		}),
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.listings, s.store, s.sessionStore, s.notifier, s.site, s.logger); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	handler, err := s.Handler()
	if err != nil {
		_ = ln.Close()
		return err
	}

	s.logger.Info("starting UI server", "addr", s.URL(ln.Addr()), "dev", s.site.IsDev)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watch {
		eg.Go(func() error {
			return s.watchAssets(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// URL returns the browser address for a listener address.
func (s *Server) URL(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return fmt.Sprintf("http://localhost:%d", tcp.Port)
	}
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// IsDev reports whether pages carry the live reload hook.
func (s *Server) IsDev() bool {
	return s.site.IsDev
}

// Notifier returns the server's notifier for reload events.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchAssets rebuilds the bundle when a source file changes and reloads
// connected browsers when the built assets change.
func (s *Server) watchAssets(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	srcDir := resources.SourceDir()
	staticDir := resources.StaticDir()
	for _, dir := range []string{srcDir, staticDir} {
		if err := watchDirRecursive(watcher, dir); err != nil {
			s.logger.Error("failed to watch asset directory", "dir", dir, "error", err)
			// Don't fail - continue without watching
		}
	}

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			action := s.assetAction(event.Name, srcDir)
			if action == nil {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, action)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// assetAction picks what a change to path triggers, or nil to ignore it.
func (s *Server) assetAction(path, srcDir string) func() {
	switch filepath.Ext(path) {
	case ".ts", ".css", ".js", ".svg", ".png", ".jpg", ".ico":
	default:
		return nil
	}

	if strings.HasPrefix(path, srcDir+string(filepath.Separator)) {
		return func() {
			s.logger.Debug("asset source changed, rebuilding", "file", path)
			if _, err := resources.Build(srcDir, resources.StaticDir(), false); err != nil {
				s.logger.Error("asset build failed", "error", err)
			}
		}
	}

	return func() {
		s.logger.Debug("static asset changed, reloading", "file", path)
		s.notifier.Broadcast()
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
