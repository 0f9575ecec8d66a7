package content

import (
	"cmp"
	"slices"
	"strings"
)

// Category of a reading.
type Category string

const (
	Sakar  Category = "Sakar"
	Avyakt Category = "Avyakt"
)

// Reading is one dated spiritual discourse (murli).
type Reading struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`
	Category       Category `json:"type"`
	TitleHindi     string   `json:"title_hindi"`
	ContentHindi   string   `json:"content_hindi"`
	ContentEnglish string   `json:"content_english"`
	AudioURL       string   `json:"audio_url,omitempty"`
	YouTubeID      string   `json:"youtube_id,omitempty"`
}

// VideoURL returns the watch link for the reading, or "" when it has none.
func (r Reading) VideoURL() string {
	if r.YouTubeID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + r.YouTubeID
}

// PracticeForm is one of the daily meditation forms (abhyas).
type PracticeForm struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	HindiTitle       string `json:"hindi_title"`
	Description      string `json:"description"`
	DescriptionHindi string `json:"description_hindi"`
	ColorTheme       string `json:"color_theme"`
}

// CourseDay is one lesson of the seven-day course.
type CourseDay struct {
	Day             int      `json:"day"`
	Title           string   `json:"title"`
	TitleHindi      string   `json:"title_hindi"`
	ThemeHindi      string   `json:"theme_hindi"`
	Resources       []string `json:"resources"`
	Reflection      string   `json:"reflection"`
	ReflectionHindi string   `json:"reflection_hindi"`
}

// SortReadings orders readings newest first. Dates are ISO so string order
// is date order; ties keep their source order.
func SortReadings(rs []Reading) {
	slices.SortStableFunc(rs, func(a, b Reading) int {
		return cmp.Compare(b.Date, a.Date)
	})
}

// SortDays orders course days by day number.
func SortDays(ds []CourseDay) {
	slices.SortStableFunc(ds, func(a, b CourseDay) int {
		return cmp.Compare(a.Day, b.Day)
	})
}

// FilterReadings returns the readings matching category and query. A
// non-empty query searches the Hindi title, Hindi body, date and category
// case-insensitively and ignores the category. An empty category matches all.
func FilterReadings(rs []Reading, category Category, query string) []Reading {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []Reading{}
	for _, r := range rs {
		if q != "" {
			if matchesQuery(r, q) {
				out = append(out, r)
			}
			continue
		}
		if category == "" || r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

func matchesQuery(r Reading, q string) bool {
	for _, field := range []string{r.TitleHindi, r.ContentHindi, r.Date, string(r.Category)} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// ReadingsByID resolves ids against rs, keeping the order of rs and
// skipping ids that match nothing.
func ReadingsByID(rs []Reading, ids []string) []Reading {
	out := []Reading{}
	for _, r := range rs {
		if slices.Contains(ids, r.ID) {
			out = append(out, r)
		}
	}
	return out
}
