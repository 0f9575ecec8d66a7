package store

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Progress owns the persisted user-state record. All reads and mutations of
// the record go through it; each toggle is one read-modify-write of the whole
// record.
//
// Storage failures never reach the caller. A failed write leaves the intended
// record in an in-memory overlay so the rest of the session stays consistent
// with what the user did; the overlay is dropped on the next successful write.
// A failed read never leads to a write: changes made while the record is
// unreadable are replayed over it once it can be read again.
type Progress struct {
	kv  KV
	log zerolog.Logger
	now func() time.Time

	// PruneStale drops practice keys dated before today whenever the
	// practice set is rewritten.
	PruneStale bool

	mu            sync.Mutex
	pending       *Record
	deferred      []func(Record) Record
	version       uint64
	writeFailures int
}

// ProgressOption customises a Progress.
type ProgressOption func(*Progress)

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) ProgressOption {
	return func(p *Progress) { p.now = now }
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) ProgressOption {
	return func(p *Progress) { p.log = l }
}

// NewProgress builds a progress store over kv.
func NewProgress(kv KV, opts ...ProgressOption) *Progress {
	p := &Progress{kv: kv, log: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Today returns the current calendar date in local time.
func (p *Progress) Today() time.Time {
	n := p.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}

// GetProgress returns the current record. A missing or unreadable record
// yields the empty record; nothing is written until the first toggle.
func (p *Progress) GetProgress() Record {
	rec, _ := p.Snapshot()
	return rec
}

// Snapshot returns the current record together with a version that grows
// with every toggle. A record with a higher version is always newer.
func (p *Progress) Snapshot() (Record, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, _ := p.load()
	return rec.Clone(), p.version
}

// ToggleFavorite flips readingID in the favorites set and returns the new set.
func (p *Progress) ToggleFavorite(readingID string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec := p.apply(func(r Record) Record {
		r.Favorites = toggle(r.Favorites, readingID)
		return r
	})
	return cloneOrEmpty(rec.Favorites)
}

// ToggleCourseDay flips day in the completed-days set and returns the new set.
func (p *Progress) ToggleCourseDay(day int) []int {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec := p.apply(func(r Record) Record {
		r.CompletedCourseDays = toggle(r.CompletedCourseDays, day)
		return r
	})
	return cloneOrEmpty(rec.CompletedCourseDays)
}

// TogglePractice flips the (onDate, practiceID) key and returns every stored
// practice key. A zero onDate means today. Callers filter by date.
func (p *Progress) TogglePractice(practiceID string, onDate time.Time) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if onDate.IsZero() {
		onDate = p.Today()
	}
	key := PracticeKey(onDate, practiceID)

	rec := p.apply(func(r Record) Record {
		r.CompletedPractices = toggle(r.CompletedPractices, key)
		if p.PruneStale {
			r.CompletedPractices = p.prune(r.CompletedPractices, key)
		}
		return r
	})
	return cloneOrEmpty(rec.CompletedPractices)
}

// WriteFailures reports how many writes failed this session.
func (p *Progress) WriteFailures() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writeFailures
}

// apply runs one read-modify-write of the record. When the stored record
// cannot be read, the change is kept as a deferred op and replayed over the
// stored record once it is readable again; nothing is written in between.
// Callers hold p.mu.
func (p *Progress) apply(op func(Record) Record) Record {
	p.version++
	rec, readable := p.load()
	rec = op(rec).normalize()
	if !readable {
		p.deferred = append(p.deferred, op)
		p.writeFailures++
		p.log.Warn().Int("failures", p.writeFailures).Msg("progress record unreadable, change kept in session")
		return rec
	}
	p.deferred = nil
	p.save(rec)
	return rec
}

// load returns the session view of the record and whether it rests on a
// successful read. An absent or malformed stored record reads as empty and
// counts as readable; a storage error does not.
func (p *Progress) load() (Record, bool) {
	if p.pending != nil {
		return p.pending.Clone(), true
	}

	rec, readable := p.read()
	for _, op := range p.deferred {
		rec = op(rec)
	}
	return rec.normalize(), readable
}

func (p *Progress) read() (Record, bool) {
	raw, err := p.kv.Get(ProgressKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return EmptyRecord(), true
		}
		p.log.Warn().Err(err).Msg("read progress record, using empty record")
		return EmptyRecord(), false
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		p.log.Warn().Err(err).Msg("malformed progress record, using empty record")
		return EmptyRecord(), true
	}
	return rec.normalize(), true
}

func (p *Progress) save(rec Record) {
	data, err := json.Marshal(rec)
	if err == nil {
		err = p.kv.Set(ProgressKey, string(data))
	}
	if err != nil {
		p.writeFailures++
		p.pending = &rec
		p.log.Warn().Err(err).Int("failures", p.writeFailures).Msg("progress write failed, keeping session state")
		return
	}
	p.pending = nil
}

func (p *Progress) prune(keys []string, keep string) []string {
	today := p.Today().Format(DateLayout)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		d, _, ok := ParsePracticeKey(k)
		if k != keep && (!ok || d.Format(DateLayout) < today) {
			continue
		}
		out = append(out, k)
	}
	return out
}
