package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sadopc/bkspace/internal/config"
	"github.com/sadopc/bkspace/internal/content"
	"github.com/sadopc/bkspace/internal/logging"
	"github.com/sadopc/bkspace/internal/session"
	"github.com/sadopc/bkspace/internal/store"
	"github.com/sadopc/bkspace/internal/tui"
)

// Options configure the bkspace application.
type Options struct {
	ConfigPath string
	DBPath     string // overrides the configured database path
	Offline    bool   // skip the remote and use bundled content
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closer, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		// Logging is best effort; the UI owns the terminal.
		log = zerolog.Nop()
	} else {
		defer closer.Close()
	}

	dbPath := cfg.DBPath
	if opts.DBPath != "" {
		dbPath = opts.DBPath
	}
	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	var remote content.Source
	if !opts.Offline {
		src, closeSource, err := newSource(ctx, cfg.Remote)
		if err != nil {
			log.Warn().Err(err).Str("kind", cfg.Remote.Kind()).Msg("remote content unavailable, using bundled content")
		} else {
			defer closeSource()
			remote = src
		}
	}

	provider := content.NewProvider(remote,
		content.WithFallbackDelay(cfg.ReadingsDelay, cfg.CatalogDelay),
		content.WithLogger(logging.Component(log, "content")),
	)

	progress := store.NewProgress(s, store.WithLogger(logging.Component(log, "progress")))
	progress.PruneStale = cfg.PruneStalePractices

	cache := session.NewCache(provider, logging.Component(log, "session"))

	log.Info().
		Str("db", dbPath).
		Bool("remote", provider.Configured()).
		Msg("starting")

	model := tui.NewApp(ctx, progress, cache, logging.Component(log, "tui"))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// newSource builds the configured remote. A nil source with a nil error
// means no remote is configured.
func newSource(ctx context.Context, r config.Remote) (content.Source, func(), error) {
	switch r.Kind() {
	case "postgres":
		src, err := content.NewPostgresSource(ctx, r.PostgresDSN, r.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	case "rest":
		src, err := content.NewRESTSource(r.URL, r.AnonKey, r.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	default:
		return nil, func() {}, nil
	}
}
