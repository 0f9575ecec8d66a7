package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sadopc/bkspace/internal/content"
)

// Loader is the part of content.Provider the session needs.
type Loader interface {
	Readings(ctx context.Context) ([]content.Reading, content.Origin)
	Forms(ctx context.Context) ([]content.PracticeForm, content.Origin)
	Days(ctx context.Context) ([]content.CourseDay, content.Origin)
}

var _ Loader = (*content.Provider)(nil)

// Bundle is the content for one session.
type Bundle struct {
	Readings []content.Reading
	Forms    []content.PracticeForm
	Days     []content.CourseDay

	ReadingsOrigin content.Origin
	FormsOrigin    content.Origin
	DaysOrigin     content.Origin

	Elapsed time.Duration
}

// Offline reports whether any collection came from the embedded set.
func (b Bundle) Offline() bool {
	return b.ReadingsOrigin == content.OriginFallback ||
		b.FormsOrigin == content.OriginFallback ||
		b.DaysOrigin == content.OriginFallback
}

// Today returns the newest reading.
func (b Bundle) Today() (content.Reading, bool) {
	if len(b.Readings) == 0 {
		return content.Reading{}, false
	}
	return b.Readings[0], true
}

func (b Bundle) clone() Bundle {
	out := b
	out.Readings = slices.Clone(b.Readings)
	out.Forms = slices.Clone(b.Forms)
	out.Days = make([]content.CourseDay, len(b.Days))
	for i, d := range b.Days {
		d.Resources = slices.Clone(d.Resources)
		out.Days[i] = d
	}
	return out
}

// LoadAll fetches the three collections concurrently and waits for all of
// them. Each fetch recovers on its own, so the result is always complete.
func LoadAll(ctx context.Context, l Loader) Bundle {
	var b Bundle
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b.Readings, b.ReadingsOrigin = l.Readings(gctx)
		return nil
	})
	g.Go(func() error {
		b.Forms, b.FormsOrigin = l.Forms(gctx)
		return nil
	})
	g.Go(func() error {
		b.Days, b.DaysOrigin = l.Days(gctx)
		return nil
	})
	_ = g.Wait()

	b.Elapsed = time.Since(start)
	return b
}

// Cache performs LoadAll at most once per session and hands every caller a
// copy of the same result.
type Cache struct {
	loader Loader
	log    zerolog.Logger

	once   sync.Once
	bundle Bundle
}

func NewCache(l Loader, log zerolog.Logger) *Cache {
	return &Cache{loader: l, log: log}
}

// Get returns the session bundle, loading it on first use. Concurrent first
// callers block until the single load completes.
func (c *Cache) Get(ctx context.Context) Bundle {
	c.once.Do(func() {
		c.bundle = LoadAll(ctx, c.loader)
		c.log.Info().
			Int("readings", len(c.bundle.Readings)).
			Int("forms", len(c.bundle.Forms)).
			Int("days", len(c.bundle.Days)).
			Bool("offline", c.bundle.Offline()).
			Dur("elapsed", c.bundle.Elapsed).
			Msg("content loaded")
	})
	return c.bundle.clone()
}
