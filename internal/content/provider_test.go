package content

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSource struct {
	readings    []Reading
	forms       []PracticeForm
	days        []CourseDay
	readingsErr error
	formsErr    error
	daysErr     error
}

func (f *fakeSource) Readings(context.Context) ([]Reading, error) { return f.readings, f.readingsErr }
func (f *fakeSource) Forms(context.Context) ([]PracticeForm, error) {
	return f.forms, f.formsErr
}
func (f *fakeSource) Days(context.Context) ([]CourseDay, error) { return f.days, f.daysErr }

func noDelay() Option { return WithFallbackDelay(0, 0) }

func TestProviderUnconfiguredUsesSeed(t *testing.T) {
	p := NewProvider(nil, noDelay())
	if p.Configured() {
		t.Fatal("nil remote should not be configured")
	}
	ctx := context.Background()

	rs, origin := p.Readings(ctx)
	if origin != OriginFallback {
		t.Fatalf("origin = %q, want fallback", origin)
	}
	if len(rs) != 3 || rs[0].Date != "2023-10-24" {
		t.Fatalf("expected 3 seed readings newest first, got %+v", rs)
	}
	for i := 1; i < len(rs); i++ {
		if rs[i-1].Date < rs[i].Date {
			t.Fatalf("readings not sorted descending at %d", i)
		}
	}

	forms, _ := p.Forms(ctx)
	if len(forms) != 5 || forms[0].ID != "form-1" || forms[4].ID != "form-5" {
		t.Fatalf("unexpected forms %+v", forms)
	}

	days, _ := p.Days(ctx)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	for i, d := range days {
		if d.Day != i+1 {
			t.Fatalf("day %d out of order: %d", i, d.Day)
		}
	}
}

func TestProviderReadingsOnlyFailure(t *testing.T) {
	remote := &fakeSource{
		readingsErr: errors.New("timeout"),
		forms:       []PracticeForm{{ID: "remote-form"}},
		days:        []CourseDay{{Day: 2}, {Day: 1}},
	}
	p := NewProvider(remote, noDelay())
	ctx := context.Background()

	rs, origin := p.Readings(ctx)
	if origin != OriginFallback || rs[0].Date != "2023-10-24" {
		t.Fatalf("expected fallback readings newest first, got %q %+v", origin, rs)
	}

	forms, origin := p.Forms(ctx)
	if origin != OriginRemote || len(forms) != 1 || forms[0].ID != "remote-form" {
		t.Fatalf("forms should come from remote, got %q %+v", origin, forms)
	}

	days, origin := p.Days(ctx)
	if origin != OriginRemote || days[0].Day != 1 || days[1].Day != 2 {
		t.Fatalf("remote days should be sorted ascending, got %q %+v", origin, days)
	}
}

func TestProviderSortsRemoteReadings(t *testing.T) {
	remote := &fakeSource{readings: []Reading{
		{ID: "a", Date: "2001-01-01"},
		{ID: "b", Date: "2024-05-01"},
		{ID: "c", Date: "2010-07-15"},
	}}
	p := NewProvider(remote, noDelay())

	rs, origin := p.Readings(context.Background())
	if origin != OriginRemote {
		t.Fatalf("origin = %q, want remote", origin)
	}
	got := []string{rs[0].ID, rs[1].ID, rs[2].ID}
	if got[0] != "b" || got[1] != "c" || got[2] != "a" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestProviderEmptyRemoteIsNotFallback(t *testing.T) {
	p := NewProvider(&fakeSource{}, noDelay())
	rs, origin := p.Readings(context.Background())
	if origin != OriginRemote || rs == nil || len(rs) != 0 {
		t.Fatalf("expected empty remote collection, got %q %#v", origin, rs)
	}
}

func TestProviderFallbackDelay(t *testing.T) {
	p := NewProvider(nil, WithFallbackDelay(40*time.Millisecond, 0))

	start := time.Now()
	p.Readings(context.Background())
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("fallback returned after %v, want >= 40ms", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p = NewProvider(nil, WithFallbackDelay(time.Hour, time.Hour))
	start = time.Now()
	rs, _ := p.Readings(ctx)
	if time.Since(start) > time.Second || len(rs) != 3 {
		t.Fatal("cancelled context should cut the delay short and still return seed content")
	}
}

func TestSeedCopiesAreIndependent(t *testing.T) {
	days := SeedDays()
	days[0].Resources[0] = "changed"
	days[0].Title = "changed"
	if fresh := SeedDays(); fresh[0].Resources[0] == "changed" || fresh[0].Title == "changed" {
		t.Fatal("mutating a seed copy leaked into the embedded set")
	}
}
