// Command draconic serves the Draconic dictionary as a JSON REST API and
// checks candidate words from the command line.
//
// Endpoints:
//
//	GET    /api/check?word=<word>
//	GET    /api/categories
//	GET    /api/syllables?q=<substr>&pool=all|taken|available
//	GET    /api/syllables/random?pool=<pool>
//	POST   /api/syllables/claim     body: {"syllable":"...","definition":"..."}
//	POST   /api/syllables/release   body: {"syllable":"..."}
//	GET    /api/words?q=<substr>
//	GET    /api/words/{word}
//	POST   /api/words               body: {"word":"...","definition":"..."}
//	PUT    /api/words/{word}        body: {"definition":"..."}
//	DELETE /api/words/{word}
//	GET    /api/tags?q=<substr>
//	GET    /api/tags/{name}
//	POST   /api/tags                body: {"name":"..."}
//	DELETE /api/tags/{name}
//	POST   /api/tags/{name}/members body: {"member":"..."}
//	DELETE /api/tags/{name}/members/{member}
//	GET    /metrics
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cours-de-latin/draconic"
	"github.com/cours-de-latin/draconic/internal/config"
	"github.com/cours-de-latin/draconic/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "draconic"

	// envPrefix names the environment variables that override the config
	// file: DRACONIC_CONFIG, DRACONIC_DB, DRACONIC_ADDR, DRACONIC_LOG_LEVEL.
	envPrefix = "DRACONIC_"

	shutdownTimeout = 10 * time.Second
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// flags are the settings that override the config file and environment.
type flags struct {
	envFile    string
	configPath string
	dbPath     string
	addr       string
	logLevel   string
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Draconic dictionary server",
		Long: `Draconic keeps the dictionary of a constructed language: its syllable
inventory, the words built from it and the affix categories tagged on
syllables.

Without a subcommand it serves the dictionary as a JSON API. Candidate
words are classified as a new word, a variant of a root, or rejected for
improper affix order, duplicate affixes, a lone flag or a collision.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), f)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.envFile, "env-file", ".env", "Environment file loaded before the config (ignored if missing)")
	pf.StringVarP(&f.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&f.dbPath, "db", "", "SQLite database path (overrides store.path)")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.addr, "addr", "", "Listen address (overrides server.addr)")

	cmd.AddCommand(checkCmd(&f), categoriesCmd(&f), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func checkCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check WORD...",
		Short: "Classify words against the stored dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(f, io.Discard)
			if err != nil {
				return err
			}
			// A missing database means an empty dictionary; don't create one.
			if _, err := os.Stat(cfg.Store.Path); errors.Is(err, fs.ErrNotExist) {
				log.Debug("No dictionary at store path, checking against an empty lexicon", "path", cfg.Store.Path)
				opts, err := cfg.LexiconOptions()
				if err != nil {
					return err
				}
				return printChecks(cmd.OutOrStdout(), draconic.New(opts), args)
			}
			a, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()
			return printChecks(cmd.OutOrStdout(), a.lex, args)
		},
	}
}

func printChecks(w io.Writer, lex *draconic.Lexicon, words []string) error {
	var failed error
	for _, word := range words {
		c, err := lex.Check(word)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", draconic.Display(word), err)
			failed = errors.Join(failed, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\troot: %s\n", draconic.Display(c.Word), c.Verdict, draconic.Display(c.RootWord))
	}
	return failed
}

func categoriesCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the affix category order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(f, io.Discard)
			if err != nil {
				return err
			}
			opts, err := cfg.LexiconOptions()
			if err != nil {
				return err
			}
			for i, name := range opts.Order.Names() {
				marker := ""
				switch {
				case i == opts.Order.RootRank():
					marker = "\t(root)"
				case opts.Order.IsFlag(i):
					marker = fmt.Sprintf("\t(flag, requires %s)", opts.Order.Name(i+1))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%2d\t%s%s\n", i, name, marker)
			}
			return nil
		},
	}
}

// setup loads and validates the configuration, applies flag overrides and
// installs the logger. logOut replaces stderr when non-nil and the level
// is not debug, keeping CLI output clean.
func setup(f *flags, logOut io.Writer) (*config.Config, *slog.Logger, error) {
	if f.envFile != "" {
		if err := godotenv.Load(f.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("load env file: %w", err)
		}
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	lc := logger.DefaultConfig()
	lc.Level = level
	lc.Format = cfg.Log.Format
	if logOut != nil && level > slog.LevelDebug {
		lc.Output = logOut
	}
	return cfg, logger.Init(lc), nil
}

// loadConfig layers the config file, DRACONIC_* variables and flags, in
// increasing precedence.
func loadConfig(f *flags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := override(f.configPath, "CONFIG"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if v := override(f.dbPath, "DB"); v != "" {
		cfg.Store.Path = v
	}
	if v := override(f.addr, "ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := override(f.logLevel, "LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}

// override returns the flag value when set, else the environment variable.
func override(flag, env string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envPrefix + env)
}

func serve(ctx context.Context, f flags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, _, err := setup(&f, nil)
	if err != nil {
		return err
	}
	log := logger.ForComponent("server")

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening", "addr", cfg.Server.Addr, "version", Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("Graceful shutdown failed", "error", err)
		}
	}
	return a.persist(context.Background())
}
