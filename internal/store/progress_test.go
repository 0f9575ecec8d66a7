package store

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
	"time"
)

// memKV is a map-backed KV whose reads and writes can be made to fail.
type memKV struct {
	data    map[string]string
	failGet error
	failSet error
	sets    int
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(key string) (string, error) {
	if m.failGet != nil {
		return "", m.failGet
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(key, value string) error {
	if m.failSet != nil {
		return m.failSet
	}
	m.sets++
	m.data[key] = value
	return nil
}

var fixedNow = time.Date(2024, time.January, 2, 9, 30, 0, 0, time.Local)

func newTestProgress(t *testing.T) (*Progress, *memKV) {
	t.Helper()
	kv := newMemKV()
	return NewProgress(kv, WithClock(func() time.Time { return fixedNow })), kv
}

func persisted(t *testing.T, kv KV) Record {
	t.Helper()
	raw, err := kv.Get(ProgressKey)
	if err != nil {
		t.Fatalf("read persisted record: %v", err)
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("decode persisted record: %v", err)
	}
	return rec
}

func assertEmpty(t *testing.T, rec Record) {
	t.Helper()
	if rec.Favorites == nil || rec.CompletedCourseDays == nil || rec.CompletedPractices == nil {
		t.Fatalf("expected non-nil empty sets, got %+v", rec)
	}
	if len(rec.Favorites)+len(rec.CompletedCourseDays)+len(rec.CompletedPractices) != 0 {
		t.Fatalf("expected empty record, got %+v", rec)
	}
}

// ============================================================
// Reads
// ============================================================

func TestGetProgressEmpty(t *testing.T) {
	p, kv := newTestProgress(t)
	assertEmpty(t, p.GetProgress())
	if kv.sets != 0 {
		t.Fatal("reading an absent record must not persist anything")
	}
}

func TestGetProgressCorrupted(t *testing.T) {
	for _, raw := range []string{"{not json", `[1,2,3]`, `{"favorites":"x"}`, ``} {
		p, kv := newTestProgress(t)
		kv.data[ProgressKey] = raw
		assertEmpty(t, p.GetProgress())
	}
}

func TestGetProgressNullFieldsAndDuplicates(t *testing.T) {
	p, kv := newTestProgress(t)
	kv.data[ProgressKey] = `{"favorites":["2","1","2"],"completedCourseDays":null}`

	rec := p.GetProgress()
	if !slices.Equal(rec.Favorites, []string{"2", "1"}) {
		t.Fatalf("expected deduped favorites in order, got %v", rec.Favorites)
	}
	if rec.CompletedCourseDays == nil || rec.CompletedPractices == nil {
		t.Fatalf("expected nil sets normalized, got %+v", rec)
	}
}

func TestGetProgressReadErrorIsEmpty(t *testing.T) {
	p, kv := newTestProgress(t)
	kv.data[ProgressKey] = `{"favorites":["1"]}`
	kv.failGet = errors.New("disk gone")
	assertEmpty(t, p.GetProgress())
}

func TestToggleDuringReadErrorDoesNotOverwrite(t *testing.T) {
	p, kv := newTestProgress(t)
	kv.data[ProgressKey] = `{"favorites":["1","2"],"completedCourseDays":[1,2,3]}`
	kv.failGet = errors.New("database is locked")

	got := p.ToggleFavorite("3")
	if !slices.Equal(got, []string{"3"}) {
		t.Fatalf("expected session-only result, got %v", got)
	}
	if kv.sets != 0 {
		t.Fatalf("a record built on a failed read was written (%d sets)", kv.sets)
	}
	if p.WriteFailures() != 1 {
		t.Fatalf("expected 1 failure, got %d", p.WriteFailures())
	}

	// Storage readable again: the deferred change lands on the stored record.
	kv.failGet = nil
	if !slices.Equal(p.GetProgress().Favorites, []string{"1", "2", "3"}) {
		t.Fatalf("expected deferred change replayed, got %v", p.GetProgress().Favorites)
	}
	p.ToggleCourseDay(4)
	rec := persisted(t, kv)
	if !slices.Equal(rec.Favorites, []string{"1", "2", "3"}) || !slices.Equal(rec.CompletedCourseDays, []int{1, 2, 3, 4}) {
		t.Fatalf("expected stored record kept and extended, got %+v", rec)
	}

	// Replay happens once.
	p.ToggleCourseDay(4)
	if rec := persisted(t, kv); !slices.Equal(rec.Favorites, []string{"1", "2", "3"}) {
		t.Fatalf("deferred change replayed twice: %+v", rec)
	}
}

func TestSnapshotVersionGrowsWithToggles(t *testing.T) {
	p, _ := newTestProgress(t)
	_, v0 := p.Snapshot()
	p.ToggleFavorite("1")
	rec, v1 := p.Snapshot()
	if v1 <= v0 || !rec.IsFavorite("1") {
		t.Fatalf("expected newer version with the change, got %d -> %d %+v", v0, v1, rec)
	}
	if _, v := p.Snapshot(); v != v1 {
		t.Fatalf("reads must not bump the version: %d != %d", v, v1)
	}
}

func TestGetProgressReturnsCopy(t *testing.T) {
	p, _ := newTestProgress(t)
	p.ToggleFavorite("1")

	rec := p.GetProgress()
	rec.Favorites[0] = "mutated"
	if got := p.GetProgress().Favorites[0]; got != "1" {
		t.Fatalf("caller mutation leaked into store: %q", got)
	}
}

// ============================================================
// Toggles
// ============================================================

func TestToggleFavoriteRoundTrip(t *testing.T) {
	p, _ := newTestProgress(t)
	p.ToggleFavorite("a")
	before := p.GetProgress().Favorites

	p.ToggleFavorite("b")
	after := p.ToggleFavorite("b")
	if !slices.Equal(before, after) {
		t.Fatalf("double toggle changed favorites: %v -> %v", before, after)
	}
}

func TestToggleFavoritePreservesOrder(t *testing.T) {
	p, _ := newTestProgress(t)
	p.ToggleFavorite("3")
	p.ToggleFavorite("1")
	got := p.ToggleFavorite("2")
	if !slices.Equal(got, []string{"3", "1", "2"}) {
		t.Fatalf("expected insertion order, got %v", got)
	}
	got = p.ToggleFavorite("1")
	if !slices.Equal(got, []string{"3", "2"}) {
		t.Fatalf("expected 1 removed, got %v", got)
	}
}

func TestToggleCourseDay(t *testing.T) {
	p, _ := newTestProgress(t)
	got := p.ToggleCourseDay(3)
	if !slices.Equal(got, []int{3}) {
		t.Fatalf("expected [3], got %v", got)
	}
	got = p.ToggleCourseDay(3)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil set, got %#v", got)
	}
}

func TestTogglePracticeDistinctDates(t *testing.T) {
	p, _ := newTestProgress(t)
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	d2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)

	p.TogglePractice("form-2", d1)
	got := p.TogglePractice("form-2", d2)

	want := []string{"2024-01-01:form-2", "2024-01-02:form-2"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTogglePracticeDefaultsToToday(t *testing.T) {
	p, _ := newTestProgress(t)
	got := p.TogglePractice("form-1", time.Time{})
	if !slices.Equal(got, []string{"2024-01-02:form-1"}) {
		t.Fatalf("expected today's key, got %v", got)
	}
	ids := p.GetProgress().PracticesOn(p.Today())
	if !slices.Equal(ids, []string{"form-1"}) {
		t.Fatalf("expected form-1 done today, got %v", ids)
	}
}

func TestStalePracticesIgnoredByReaders(t *testing.T) {
	p, _ := newTestProgress(t)
	p.TogglePractice("form-1", fixedNow.AddDate(0, 0, -1))
	p.TogglePractice("form-2", time.Time{})

	rec := p.GetProgress()
	if len(rec.CompletedPractices) != 2 {
		t.Fatalf("stale key should still be stored, got %v", rec.CompletedPractices)
	}
	if ids := rec.PracticesOn(p.Today()); !slices.Equal(ids, []string{"form-2"}) {
		t.Fatalf("expected only today's practice, got %v", ids)
	}
}

func TestPruneStale(t *testing.T) {
	p, _ := newTestProgress(t)
	p.TogglePractice("form-1", fixedNow.AddDate(0, 0, -3))
	p.PruneStale = true

	got := p.TogglePractice("form-2", time.Time{})
	if !slices.Equal(got, []string{"2024-01-02:form-2"}) {
		t.Fatalf("expected stale key pruned, got %v", got)
	}
}

func TestPersistedMatchesLastReturn(t *testing.T) {
	p, kv := newTestProgress(t)
	p.ToggleFavorite("1")
	p.ToggleCourseDay(1)
	p.ToggleCourseDay(2)
	p.TogglePractice("form-3", time.Time{})
	favs := p.ToggleFavorite("2")
	days := p.ToggleCourseDay(1)
	practices := p.TogglePractice("form-4", time.Time{})

	rec := persisted(t, kv)
	if !slices.Equal(rec.Favorites, favs) ||
		!slices.Equal(rec.CompletedCourseDays, days) ||
		!slices.Equal(rec.CompletedPractices, practices) {
		t.Fatalf("persisted %+v does not match returned %v %v %v", rec, favs, days, practices)
	}
}

func TestCorruptedRecordOverwrittenOnWrite(t *testing.T) {
	p, kv := newTestProgress(t)
	kv.data[ProgressKey] = "garbage"

	p.ToggleCourseDay(1)
	rec := persisted(t, kv)
	if !slices.Equal(rec.CompletedCourseDays, []int{1}) {
		t.Fatalf("expected clean record after write, got %+v", rec)
	}
}

func TestProgressOverSQLite(t *testing.T) {
	s := newTestStore(t)
	p := NewProgress(s)
	p.ToggleFavorite("2")

	p2 := NewProgress(s)
	if !p2.GetProgress().IsFavorite("2") {
		t.Fatal("second progress view should see persisted favorite")
	}
}

// ============================================================
// Write failures
// ============================================================

func TestWriteFailureKeepsSessionState(t *testing.T) {
	p, kv := newTestProgress(t)
	kv.failSet = errors.New("quota exceeded")

	got := p.ToggleFavorite("1")
	if !slices.Equal(got, []string{"1"}) {
		t.Fatalf("expected optimistic result, got %v", got)
	}
	if !p.GetProgress().IsFavorite("1") {
		t.Fatal("later reads should reflect the unsaved change")
	}
	got = p.ToggleFavorite("2")
	if !slices.Equal(got, []string{"1", "2"}) {
		t.Fatalf("expected changes to accumulate, got %v", got)
	}
	if p.WriteFailures() != 2 {
		t.Fatalf("expected 2 write failures, got %d", p.WriteFailures())
	}
	if _, ok := kv.data[ProgressKey]; ok {
		t.Fatal("nothing should have been persisted")
	}

	// Storage comes back: next toggle persists the whole session state.
	kv.failSet = nil
	p.ToggleCourseDay(5)
	rec := persisted(t, kv)
	if !slices.Equal(rec.Favorites, []string{"1", "2"}) || !slices.Equal(rec.CompletedCourseDays, []int{5}) {
		t.Fatalf("expected session state flushed, got %+v", rec)
	}
}

// ============================================================
// Practice keys & daily snapshot
// ============================================================

func TestPracticeKeyRoundTrip(t *testing.T) {
	d := time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local)
	key := PracticeKey(d, "form:odd")
	if key != "2024-03-09:form:odd" {
		t.Fatalf("unexpected key %q", key)
	}
	gotDate, id, ok := ParsePracticeKey(key)
	if !ok || id != "form:odd" || gotDate.Format(DateLayout) != "2024-03-09" {
		t.Fatalf("round trip failed: %v %q %v", gotDate, id, ok)
	}
}

func TestParsePracticeKeyRejectsMalformed(t *testing.T) {
	for _, k := range []string{"", "form-1", "2024-13-01:form", "2024-01-01:", "2024-01-01-form"} {
		if _, _, ok := ParsePracticeKey(k); ok {
			t.Fatalf("expected %q to be rejected", k)
		}
	}
}

func TestCountByDay(t *testing.T) {
	keys := []string{"2024-01-01:form-1", "2024-01-01:form-2", "2024-01-02:form-1", "junk"}
	got := CountByDay(keys)
	if got["2024-01-01"] != 2 || got["2024-01-02"] != 1 || len(got) != 2 {
		t.Fatalf("unexpected counts %v", got)
	}
}

func TestDailySnapshot(t *testing.T) {
	p, kv := newTestProgress(t)
	if ids := LoadDailySnapshot(kv, fixedNow); len(ids) != 0 {
		t.Fatalf("expected empty snapshot, got %v", ids)
	}

	keys := p.TogglePractice("form-1", time.Time{})
	if ids := p.SyncDailySnapshot(); !slices.Equal(ids, []string{"form-1"}) {
		t.Fatalf("sync returned %v", ids)
	}
	if ids := LoadDailySnapshot(kv, fixedNow); !slices.Equal(ids, []string{"form-1"}) {
		t.Fatalf("expected [form-1], got %v", ids)
	}

	// A snapshot from yesterday reads as empty.
	SaveDailySnapshot(kv, fixedNow.AddDate(0, 0, -1), []string{"form-5"})
	if ids := LoadDailySnapshot(kv, fixedNow); len(ids) != 0 {
		t.Fatalf("expected stale snapshot ignored, got %v", ids)
	}

	// The snapshot never touches the progress record.
	if !slices.Equal(persisted(t, kv).CompletedPractices, keys) {
		t.Fatal("snapshot write clobbered the progress record")
	}
}
