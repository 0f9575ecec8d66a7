package store

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// DailySnapshot is the per-day list of completed practice ids kept under
// DailyPracticeKey. It is overwritten every day.
type DailySnapshot struct {
	Date string   `json:"date"`
	IDs  []string `json:"ids"`
}

// LoadDailySnapshot returns the ids saved for today. A snapshot from another
// day, or one that cannot be read, yields an empty list.
func LoadDailySnapshot(kv KV, today time.Time) []string {
	raw, err := kv.Get(DailyPracticeKey)
	if err != nil {
		return []string{}
	}
	var snap DailySnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return []string{}
	}
	if snap.Date != today.Format(DateLayout) {
		return []string{}
	}
	return dedupe(snap.IDs)
}

// SaveDailySnapshot replaces the snapshot with ids for today.
func SaveDailySnapshot(kv KV, today time.Time, ids []string) error {
	snap := DailySnapshot{Date: today.Format(DateLayout), IDs: cloneOrEmpty(ids)}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal daily snapshot: %w", err)
	}
	return kv.Set(DailyPracticeKey, string(data))
}

// SyncDailySnapshot rewrites the snapshot from the current record's practice
// keys and returns today's ids as stored in it. It is a no-op when the stored
// snapshot already matches. If the snapshot cannot be written the ids from
// the record are returned.
func (p *Progress) SyncDailySnapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	today := p.Today()
	rec, _ := p.load()
	ids := rec.PracticesOn(today)
	stored := LoadDailySnapshot(p.kv, today)
	if slices.Equal(stored, ids) {
		return stored
	}
	if err := SaveDailySnapshot(p.kv, today, ids); err != nil {
		p.log.Warn().Err(err).Msg("daily practice snapshot write failed")
		return ids
	}
	return LoadDailySnapshot(p.kv, today)
}
