package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/cours-de-latin/draconic"
	"github.com/cours-de-latin/draconic/internal/config"
	"github.com/cours-de-latin/draconic/internal/store"
	"github.com/rs/cors"
)

// app wires the lexicon to its store, metrics and HTTP routes.
type app struct {
	cfg     *config.Config
	lex     *draconic.Lexicon
	store   *store.Store
	log     *slog.Logger
	metrics *metrics

	// persistMu orders snapshots and saves so a later snapshot is never
	// overwritten by an earlier one.
	persistMu sync.Mutex
}

// newApp opens the store named in cfg and restores the lexicon from it.
func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	opts, err := cfg.LexiconOptions()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	state, err := st.Load(ctx)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	lex := draconic.New(opts)
	if dropped := lex.Restore(state); len(dropped) > 0 {
		log.Warn("Dropped stored values unknown to the configured inventory", "values", dropped)
	}
	log.Info("Lexicon loaded",
		"path", cfg.Store.Path,
		"entries", len(state.Entries),
		"taken", len(state.Taken),
		"tags", len(state.Tags))

	return &app{
		cfg:     cfg,
		lex:     lex,
		store:   st,
		log:     log,
		metrics: newMetrics(lex),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// persist writes the current lexicon contents to the store.
func (a *app) persist(ctx context.Context) error {
	a.persistMu.Lock()
	defer a.persistMu.Unlock()
	if err := a.store.Save(ctx, a.lex.Snapshot()); err != nil {
		return fmt.Errorf("persist lexicon: %w", err)
	}
	return nil
}

// routes returns the API handler wrapped in CORS and the write limiter.
func (a *app) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/check", handleCheck(a))
	mux.HandleFunc("GET /api/categories", handleCategories(a))

	mux.HandleFunc("GET /api/syllables", handleSyllables(a))
	mux.HandleFunc("GET /api/syllables/random", handleRandomSyllable(a))
	mux.HandleFunc("POST /api/syllables/claim", handleClaim(a))
	mux.HandleFunc("POST /api/syllables/release", handleRelease(a))

	mux.HandleFunc("GET /api/words", handleListWords(a))
	mux.HandleFunc("GET /api/words/{word}", handleGetWord(a))
	mux.HandleFunc("POST /api/words", handleAddWord(a))
	mux.HandleFunc("PUT /api/words/{word}", handleDefineWord(a))
	mux.HandleFunc("DELETE /api/words/{word}", handleDeleteWord(a))

	mux.HandleFunc("GET /api/tags", handleListTags(a))
	mux.HandleFunc("GET /api/tags/{name}", handleGetTag(a))
	mux.HandleFunc("POST /api/tags", handleCreateTag(a))
	mux.HandleFunc("DELETE /api/tags/{name}", handleDeleteTag(a))
	mux.HandleFunc("POST /api/tags/{name}/members", handleAssignTag(a))
	mux.HandleFunc("DELETE /api/tags/{name}/members/{member}", handleUnassignTag(a))

	mux.Handle("GET /metrics", a.metrics.handler())

	c := cors.New(cors.Options{
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(a.limitWrites(mux))
}
