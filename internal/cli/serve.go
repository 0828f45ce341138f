package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/flowtext/mmdascii/pkg/config"
	"github.com/flowtext/mmdascii/pkg/gallery"
	"github.com/flowtext/mmdascii/pkg/mmerr"
	"github.com/flowtext/mmdascii/pkg/pipeline"
	"github.com/flowtext/mmdascii/pkg/rendercache"
)

// serveCommand creates the "serve" command: an HTTP render server
// exposing POST /render, GET /healthz, and the named-diagram gallery.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		cacheBackend string
		redisAddr    string
		galleryDir   string
		mongoURI     string
		database     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the renderer over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cache, err := connectWithSpinner(cmd.Context(), cacheBackend, func(ctx context.Context) (rendercache.Cache, error) {
				return newCache(false, cacheBackend, redisAddr)
			})
			if err != nil {
				return err
			}
			defer cache.Close()

			store, err := connectWithSpinner(cmd.Context(), galleryBackendName(mongoURI), func(ctx context.Context) (gallery.Store, error) {
				return newGalleryStore(ctx, galleryDir, mongoURI, database)
			})
			if err != nil {
				return err
			}
			defer store.Close()

			srv := &server{cache: cache, gallery: store, logger: logger}
			printInfo("Listening on %s", addr)
			return http.ListenAndServe(addr, srv.router())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cacheBackend, "cache-backend", "file", "render cache backend: file, redis, or none")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "redis address, used when --cache-backend=redis")
	cmd.Flags().StringVar(&galleryDir, "gallery-dir", "", "gallery file-store directory (default: ~/.local/share/mmdascii/gallery)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI; enables the mongo gallery backend when set")
	cmd.Flags().StringVar(&database, "mongo-database", "mmdascii", "MongoDB database name, used when --mongo-uri is set")

	return cmd
}

func newGalleryStore(ctx context.Context, dir, mongoURI, database string) (gallery.Store, error) {
	if mongoURI != "" {
		return gallery.NewMongoStore(ctx, mongoURI, database)
	}
	return gallery.NewFileStore(dir)
}

func galleryBackendName(mongoURI string) string {
	if mongoURI != "" {
		return "mongo"
	}
	return "file"
}

// connectWithSpinner runs connect, showing a progress spinner only for
// backends that reach over the network (redis, mongo) and can stall
// while retry.go's backoff runs; file/none backends resolve immediately
// so the spinner would just flicker and is skipped.
func connectWithSpinner[T any](ctx context.Context, backend string, connect func(context.Context) (T, error)) (T, error) {
	if backend != "redis" && backend != "mongo" {
		return connect(ctx)
	}

	sp := newSpinnerWithContext(ctx, "connecting to "+backend)
	sp.Start()
	result, err := connect(ctx)
	if err != nil {
		sp.StopWithError("failed to connect to " + backend)
		var zero T
		return zero, err
	}
	sp.StopWithSuccess("connected to " + backend)
	return result, nil
}

// server holds the dependencies shared by every HTTP handler.
type server struct {
	cache   rendercache.Cache
	gallery gallery.Store
	logger  *charmlog.Logger
}

func (s *server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/render", s.handleRender)
	r.Get("/gallery", s.handleGalleryList)
	r.Post("/gallery/{name}", s.handleGallerySave)
	r.Get("/gallery/{name}", s.handleGalleryRender)

	return r
}

// requestID stamps every request with a correlation id, returned in the
// X-Request-Id response header; the id is not passed to any logger.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleRender renders the request body as Mermaid source, with
// direction/ascii/padding overrides read from query parameters.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	source, err := readBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cfg := configFromQuery(r)

	result, err := s.render(r.Context(), source, cfg)
	if err != nil {
		s.writeRenderError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(result.Output))
}

func (s *server) render(ctx context.Context, source string, cfg config.RenderConfig) (pipeline.Result, error) {
	key := rendercache.RenderKey(source, cfg)
	if data, hit, _ := s.cache.Get(ctx, key); hit {
		return pipeline.Result{Output: string(data)}, nil
	}
	result, err := pipeline.RenderDSL(source, cfg, s.logger)
	if err != nil {
		return pipeline.Result{}, err
	}
	_ = s.cache.Set(ctx, key, []byte(result.Output), time.Hour)
	return result, nil
}

func (s *server) writeRenderError(w http.ResponseWriter, err error) {
	if mmerr.Is(err, mmerr.ErrCodeParse) || mmerr.Is(err, mmerr.ErrCodeUsage) {
		http.Error(w, mmerr.UserMessage(err), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// handleGallerySave stores the request body as the named diagram's
// source, using query-parameter overrides as its saved configuration.
func (s *server) handleGallerySave(w http.ResponseWriter, r *http.Request) {
	source, err := readBody(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc := &gallery.Document{
		Name:      chi.URLParam(r, "name"),
		Source:    source,
		Config:    configFromQuery(r),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.gallery.Put(r.Context(), doc); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// handleGalleryRender re-renders a previously saved diagram.
func (s *server) handleGalleryRender(w http.ResponseWriter, r *http.Request) {
	doc, err := s.gallery.Get(r.Context(), chi.URLParam(r, "name"))
	if errors.Is(err, gallery.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result, err := s.render(r.Context(), doc.Source, doc.Config)
	if err != nil {
		s.writeRenderError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(result.Output))
}

func (s *server) handleGalleryList(w http.ResponseWriter, r *http.Request) {
	names, err := s.gallery.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for _, name := range names {
		w.Write([]byte(name + "\n"))
	}
}

func readBody(r *http.Request) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func configFromQuery(r *http.Request) config.RenderConfig {
	cfg := config.DefaultRenderConfig()
	q := r.URL.Query()
	if v := q.Get("ascii"); v != "" {
		cfg.ASCII, _ = strconv.ParseBool(v)
	}
	if v := q.Get("direction"); v != "" {
		cfg.Direction = mermaidDirection(v)
	}
	if v := q.Get("padding"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Padding = p
		}
	}
	return cfg
}
