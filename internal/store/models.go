package store

import (
	"slices"
	"strings"
	"time"
)

// Persisted keys. They share the kv table and must never collide.
const (
	ProgressKey      = "bk_space_user_data"
	DailyPracticeKey = "bk_abhyas_daily"
)

// DateLayout is the calendar-date encoding used in practice keys and snapshots.
const DateLayout = "2006-01-02"

const practiceKeySep = ":"

// Record is the single persisted user-state record.
type Record struct {
	Favorites           []string `json:"favorites"`
	CompletedCourseDays []int    `json:"completedCourseDays"`
	CompletedPractices  []string `json:"completedPractices"`
}

// EmptyRecord returns the zero-value record with all three sets empty.
func EmptyRecord() Record {
	return Record{
		Favorites:           []string{},
		CompletedCourseDays: []int{},
		CompletedPractices:  []string{},
	}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	return Record{
		Favorites:           cloneOrEmpty(r.Favorites),
		CompletedCourseDays: cloneOrEmpty(r.CompletedCourseDays),
		CompletedPractices:  cloneOrEmpty(r.CompletedPractices),
	}
}

// IsFavorite reports whether readingID is in the favorites set.
func (r Record) IsFavorite(readingID string) bool {
	return slices.Contains(r.Favorites, readingID)
}

// DayCompleted reports whether the course day is marked complete.
func (r Record) DayCompleted(day int) bool {
	return slices.Contains(r.CompletedCourseDays, day)
}

// PracticesOn returns the ids of practices completed on date. Keys for any
// other date are stale and skipped.
func (r Record) PracticesOn(date time.Time) []string {
	return CompletedOn(r.CompletedPractices, date)
}

// normalize replaces nil sets and drops duplicates, keeping first occurrence.
func (r Record) normalize() Record {
	return Record{
		Favorites:           dedupe(r.Favorites),
		CompletedCourseDays: dedupe(r.CompletedCourseDays),
		CompletedPractices:  dedupe(r.CompletedPractices),
	}
}

// PracticeKey encodes a (date, practice id) pair. The date part is fixed
// width, so distinct pairs never produce the same key.
func PracticeKey(date time.Time, practiceID string) string {
	return date.Format(DateLayout) + practiceKeySep + practiceID
}

// ParsePracticeKey splits a key built by PracticeKey.
func ParsePracticeKey(key string) (date time.Time, practiceID string, ok bool) {
	n := len(DateLayout)
	if len(key) <= n+len(practiceKeySep) || key[n:n+len(practiceKeySep)] != practiceKeySep {
		return time.Time{}, "", false
	}
	d, err := time.ParseInLocation(DateLayout, key[:n], time.Local)
	if err != nil {
		return time.Time{}, "", false
	}
	return d, key[n+len(practiceKeySep):], true
}

// CompletedOn filters practice keys down to the practice ids for date.
func CompletedOn(keys []string, date time.Time) []string {
	prefix := date.Format(DateLayout) + practiceKeySep
	ids := []string{}
	for _, k := range keys {
		if id, ok := strings.CutPrefix(k, prefix); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// CountByDay tallies practice completions per calendar date (YYYY-MM-DD).
// Malformed keys are ignored.
func CountByDay(keys []string) map[string]int {
	counts := make(map[string]int)
	for _, k := range keys {
		d, _, ok := ParsePracticeKey(k)
		if !ok {
			continue
		}
		counts[d.Format(DateLayout)]++
	}
	return counts
}

// toggle flips membership of v in set, preserving insertion order.
func toggle[T comparable](set []T, v T) []T {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}

func dedupe[T comparable](in []T) []T {
	out := make([]T, 0, len(in))
	seen := make(map[T]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func cloneOrEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
