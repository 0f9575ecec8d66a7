package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/sadopc/bkspace/internal/content"
	"github.com/sadopc/bkspace/internal/session"
	"github.com/sadopc/bkspace/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewReadings
	viewPractice
	viewCourse
	viewFavorites
	viewStats
)

var viewNames = []string{"Today", "Readings", "Practice", "Course", "Favorites", "Stats"}

// --- Messages ---

type contentLoadedMsg struct {
	bundle session.Bundle
}

// progressMsg carries the record after a load or a toggle.
type progressMsg struct {
	rec      store.Record
	todayIDs []string
	version  uint64
	failures int
}

// openReadingMsg asks the Readings view to show one reading.
type openReadingMsg struct {
	id string
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	return ansi.Truncate(s, w, "…")
}

// courseLocked reports whether the day at index i cannot be toggled yet: it
// is locked while the previous day is open, unless it is already complete.
func courseLocked(days []content.CourseDay, rec store.Record, i int) bool {
	if i <= 0 || i >= len(days) {
		return false
	}
	return !rec.DayCompleted(days[i-1].Day) && !rec.DayCompleted(days[i].Day)
}

// coursePercent is the rounded share of days marked complete.
func coursePercent(days []content.CourseDay, rec store.Record) int {
	if len(days) == 0 {
		return 0
	}
	done := 0
	for _, d := range days {
		if rec.DayCompleted(d.Day) {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(days)) * 100))
}
