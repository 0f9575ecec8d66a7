package content

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned when no remote content source is set up.
var ErrNotConfigured = errors.New("no remote content source configured")

// Source is a remote content backend. Implementations may return rows in any
// order; the Provider sorts them.
type Source interface {
	Readings(ctx context.Context) ([]Reading, error)
	Forms(ctx context.Context) ([]PracticeForm, error)
	Days(ctx context.Context) ([]CourseDay, error)
}

// Origin records where a collection came from.
type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginFallback Origin = "fallback"
)

const (
	DefaultReadingsDelay = 300 * time.Millisecond
	DefaultCatalogDelay  = 200 * time.Millisecond
)

// Provider serves the three content collections. Whether a remote source is
// in play is decided once, at construction; each collection independently
// falls back to the embedded set when the remote query fails.
type Provider struct {
	remote        Source
	readingsDelay time.Duration
	catalogDelay  time.Duration
	log           zerolog.Logger
}

type Option func(*Provider)

// WithFallbackDelay sets the pause before fallback content is returned.
// Zero disables it.
func WithFallbackDelay(readings, catalog time.Duration) Option {
	return func(p *Provider) {
		p.readingsDelay = readings
		p.catalogDelay = catalog
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(p *Provider) { p.log = l }
}

// NewProvider returns a provider over remote. A nil remote means every
// collection is served from the embedded set.
func NewProvider(remote Source, opts ...Option) *Provider {
	p := &Provider{
		remote:        remote,
		readingsDelay: DefaultReadingsDelay,
		catalogDelay:  DefaultCatalogDelay,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configured reports whether a remote source is in use.
func (p *Provider) Configured() bool {
	return p.remote != nil
}

// Readings returns all readings, newest first.
func (p *Provider) Readings(ctx context.Context) ([]Reading, Origin) {
	return fetch(ctx, p, "readings", p.readingsDelay, func(ctx context.Context) ([]Reading, error) {
		rs, err := p.remote.Readings(ctx)
		SortReadings(rs)
		return rs, err
	}, SeedReadings)
}

// Forms returns all practice forms in source order.
func (p *Provider) Forms(ctx context.Context) ([]PracticeForm, Origin) {
	return fetch(ctx, p, "forms", p.catalogDelay, func(ctx context.Context) ([]PracticeForm, error) {
		return p.remote.Forms(ctx)
	}, SeedForms)
}

// Days returns all course days in day order.
func (p *Provider) Days(ctx context.Context) ([]CourseDay, Origin) {
	return fetch(ctx, p, "course_days", p.catalogDelay, func(ctx context.Context) ([]CourseDay, error) {
		ds, err := p.remote.Days(ctx)
		SortDays(ds)
		return ds, err
	}, SeedDays)
}

func fetch[T any](
	ctx context.Context,
	p *Provider,
	name string,
	delay time.Duration,
	remote func(context.Context) ([]T, error),
	seed func() []T,
) ([]T, Origin) {
	err := ErrNotConfigured
	if p.remote != nil {
		var items []T
		items, err = remote(ctx)
		if err == nil {
			if items == nil {
				items = []T{}
			}
			return items, OriginRemote
		}
	}

	if !errors.Is(err, ErrNotConfigured) {
		p.log.Warn().Err(err).Str("collection", name).Msg("remote fetch failed, using fallback content")
	}
	sleep(ctx, delay)
	return seed(), OriginFallback
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
