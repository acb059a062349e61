package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"atelier/internal/domain/config"
	"atelier/internal/domain/content"
	"atelier/internal/index"
	"atelier/internal/ingest"
	"atelier/internal/render"
)

const debounceDelay = 200 * time.Millisecond

type Server struct {
	cfg config.Config
	log *zap.Logger
	idx *index.Store
	md  *render.Markdown

	sseMu     sync.Mutex
	sseConns  map[chan string]struct{}
	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

func New(cfg config.Config, log *zap.Logger) (*Server, error) {
	st, err := index.Open(index.OpenOptions{Path: cfg.Content.IndexPath})
	if err != nil {
		return nil, fmt.Errorf("serve: open index: %w", err)
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		idx:      st,
		md:       render.NewMarkdown(),
		sseConns: make(map[chan string]struct{}),
	}, nil
}

func (s *Server) Close() error {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	if s.idx != nil {
		return s.idx.Close()
	}
	return nil
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Reindex(ctx); err != nil {
		return err
	}
	if err := s.startWatch(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("listening", zap.String("addr", s.cfg.Server.Addr))
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Route("/{collection}", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Get("/categories", s.handleCategories)
			r.Get("/tags", s.handleTags)
			r.Get("/{slug}", s.handleItem)
		})
	})
	r.Get("/dev/events", s.handleSSE)
	return r
}

// Reindex runs the loader for every collection and swaps the rebuilt
// buckets into the store. Per-file problems come back as warnings and are
// logged; only an unreadable collection directory is fatal.
func (s *Server) Reindex(ctx context.Context) error {
	for _, col := range content.Collections {
		dir := s.cfg.Content.Dir(col)
		records, warns, err := ingest.Load(col, dir)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", col, err)
		}
		for _, w := range warns {
			s.log.Warn("ingest", zap.String("collection", string(col)),
				zap.String("path", w.Path), zap.String("msg", w.Msg))
		}
		if err := s.idx.Rebuild(col, records); err != nil {
			return fmt.Errorf("rebuild %s: %w", col, err)
		}
		s.log.Info("indexed", zap.String("collection", string(col)),
			zap.Int("records", len(records)))
	}
	s.broadcastSSE("reload")
	return nil
}

func (s *Server) startWatch(ctx context.Context) error {
	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w
		go s.watchLoop(ctx)

		for _, col := range content.Collections {
			e := filepath.Walk(s.cfg.Content.Dir(col), func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					return w.Add(path)
				}
				return nil
			})
			if e != nil {
				err = e
				return
			}
		}
	})
	return err
}

func (s *Server) watchLoop(ctx context.Context) {
	s.log.Info("watching content directories")
	// A Timer, not a Ticker: it fires once per burst of events and stays
	// quiet until the next Reset.
	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}

	trigger := func() {
		if !debounce.Stop() {
			select {
			case <-debounce.C:
			default:
			}
		}
		debounce.Reset(debounceDelay)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				trigger()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("watcher error", zap.Error(err))
		case <-debounce.C:
			reindexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := s.Reindex(reindexCtx); err != nil {
				s.log.Error("reindex failed", zap.Error(err))
			}
			cancel()
		}
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan string, 8)
	s.sseMu.Lock()
	s.sseConns[ch] = struct{}{}
	s.sseMu.Unlock()
	defer func() {
		s.sseMu.Lock()
		delete(s.sseConns, ch)
		close(ch)
		s.sseMu.Unlock()
	}()

	fmt.Fprintf(w, "data: %s\n\n", "hello")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcastSSE(msg string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()
	for ch := range s.sseConns {
		select {
		case ch <- msg:
		default:
		}
	}
}
