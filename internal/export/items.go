package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sadopc/bkspace/internal/content"
	"github.com/sadopc/bkspace/internal/store"
)

// Item kinds.
const (
	KindFavorite  = "favorite"
	KindCourseDay = "course_day"
	KindPractice  = "practice"
)

// Item is one line of user progress resolved against the loaded content.
type Item struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Date  string `json:"date,omitempty"`
	Title string `json:"title"`
}

// Content is the subset of loaded content an export resolves against.
type Content struct {
	Readings []content.Reading
	Forms    []content.PracticeForm
	Days     []content.CourseDay
}

// Build flattens rec into items: favorites, then course days, then practice
// completions, each in stored order. Ids that match no content get "Unknown".
func Build(rec store.Record, c Content) []Item {
	readings := make(map[string]content.Reading, len(c.Readings))
	for _, r := range c.Readings {
		readings[r.ID] = r
	}
	forms := make(map[string]content.PracticeForm, len(c.Forms))
	for _, f := range c.Forms {
		forms[f.ID] = f
	}
	days := make(map[int]content.CourseDay, len(c.Days))
	for _, d := range c.Days {
		days[d.Day] = d
	}

	items := []Item{}
	for _, id := range rec.Favorites {
		it := Item{Kind: KindFavorite, ID: id, Title: "Unknown"}
		if r, ok := readings[id]; ok {
			it.Date = r.Date
			it.Title = r.TitleHindi
		}
		items = append(items, it)
	}
	for _, day := range rec.CompletedCourseDays {
		it := Item{Kind: KindCourseDay, ID: strconv.Itoa(day), Title: "Unknown"}
		if d, ok := days[day]; ok {
			it.Title = d.Title
		}
		items = append(items, it)
	}
	for _, key := range rec.CompletedPractices {
		date, id, ok := store.ParsePracticeKey(key)
		if !ok {
			continue
		}
		it := Item{Kind: KindPractice, ID: id, Date: date.Format(store.DateLayout), Title: "Unknown"}
		if f, ok := forms[id]; ok {
			it.Title = f.Title
		}
		items = append(items, it)
	}
	return items
}

// DefaultPath returns ~/bkspace-export-YYYY-MM-DD.<ext>.
func DefaultPath(ext string, now time.Time) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, fmt.Sprintf("bkspace-export-%s.%s", now.Format(store.DateLayout), ext))
}
