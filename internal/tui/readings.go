package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/bkspace/internal/content"
	"github.com/sadopc/bkspace/internal/session"
	"github.com/sadopc/bkspace/internal/store"
)

var categoryCycle = []content.Category{"", content.Sakar, content.Avyakt}

type readingsModel struct {
	progress *store.Progress
	width    int
	height   int

	all      []content.Reading
	filtered []content.Reading
	rec      store.Record

	category content.Category
	query    string
	cursor   int
	detail   bool

	formActive bool
	form       *huh.Form
	formQuery  *string // survives value copies
}

func newReadingsModel(p *store.Progress) readingsModel {
	q := ""
	return readingsModel{progress: p, rec: store.EmptyRecord(), formQuery: &q}
}

func (r *readingsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r *readingsModel) setContent(b session.Bundle) {
	r.all = b.Readings
	r.applyFilter()
}

func (r *readingsModel) setProgress(rec store.Record) {
	r.rec = rec
}

func (r *readingsModel) applyFilter() {
	r.filtered = content.FilterReadings(r.all, r.category, r.query)
	if r.cursor >= len(r.filtered) {
		r.cursor = max(0, len(r.filtered)-1)
	}
}

// open clears filters and shows the reading with id in detail.
func (r *readingsModel) open(id string) {
	r.category = ""
	r.query = ""
	r.applyFilter()
	for i, rd := range r.filtered {
		if rd.ID == id {
			r.cursor = i
			r.detail = true
			return
		}
	}
}

func (r readingsModel) selected() (content.Reading, bool) {
	if r.cursor < 0 || r.cursor >= len(r.filtered) {
		return content.Reading{}, false
	}
	return r.filtered[r.cursor], true
}

func (r readingsModel) update(msg tea.Msg) (readingsModel, tea.Cmd) {
	if r.formActive && r.form != nil {
		return r.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	if key.Matches(keyMsg, keys.Favorite) {
		if rd, ok := r.selected(); ok {
			return r, loadProgress(r.progress, func() { r.progress.ToggleFavorite(rd.ID) })
		}
		return r, nil
	}

	if r.detail {
		if key.Matches(keyMsg, keys.Back) {
			r.detail = false
		}
		return r, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if r.cursor > 0 {
			r.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if r.cursor < len(r.filtered)-1 {
			r.cursor++
		}
	case key.Matches(keyMsg, keys.Enter):
		if len(r.filtered) > 0 {
			r.detail = true
		}
	case key.Matches(keyMsg, keys.Category):
		r.query = ""
		r.category = nextCategory(r.category)
		r.cursor = 0
		r.applyFilter()
	case key.Matches(keyMsg, keys.Search):
		return r.showSearchForm()
	case key.Matches(keyMsg, keys.Back):
		r.query = ""
		r.category = ""
		r.applyFilter()
	}
	return r, nil
}

func nextCategory(c content.Category) content.Category {
	for i, cc := range categoryCycle {
		if cc == c {
			return categoryCycle[(i+1)%len(categoryCycle)]
		}
	}
	return ""
}

func (r readingsModel) showSearchForm() (readingsModel, tea.Cmd) {
	*r.formQuery = r.query
	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search murlis").
				Placeholder("title, text, date or Sakar/Avyakt").
				Value(r.formQuery),
		),
	).WithShowHelp(true)
	r.formActive = true
	return r, r.form.Init()
}

func (r readingsModel) updateForm(msg tea.Msg) (readingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.formActive = false
			r.form = nil
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.formActive = false
		r.form = nil
		r.query = strings.TrimSpace(*r.formQuery)
		if r.query != "" {
			r.category = ""
		}
		r.cursor = 0
		r.applyFilter()
		return r, nil
	}
	return r, cmd
}

func (r readingsModel) view() string {
	w := r.width - 4
	if r.formActive && r.form != nil {
		return panelStyle.Width(w).Render(r.form.View())
	}
	if r.detail {
		if rd, ok := r.selected(); ok {
			return r.renderDetail(rd, w)
		}
	}
	return r.renderList(w)
}

func (r readingsModel) filterLabel() string {
	var parts []string
	if r.query != "" {
		parts = append(parts, fmt.Sprintf("search %q", r.query))
	}
	if r.category != "" {
		parts = append(parts, string(r.category))
	}
	if len(parts) == 0 {
		return "All"
	}
	return strings.Join(parts, ", ")
}

func (r readingsModel) renderList(w int) string {
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Murlis"), "  ", mutedStyle.Render(r.filterLabel()),
	)

	if len(r.filtered) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", mutedStyle.Render("No murlis match."), "",
			mutedStyle.Render("  /: search  c: category  esc: clear"),
		))
	}

	rows := []string{header, ""}
	for i, rd := range r.filtered {
		cursor := "  "
		style := normalItemStyle
		if i == r.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		star := " "
		if r.rec.IsFavorite(rd.ID) {
			star = warningStyle.Render("★")
		}
		cat := categoryStyle(string(rd.Category)).Render(fmt.Sprintf("%-7s", rd.Category))
		title := truncate(rd.TitleHindi, max(w-30, 10))
		rows = append(rows, fmt.Sprintf("%s%s %s %s %s", style.Render(cursor), star, mutedStyle.Render(rd.Date), cat, style.Render(title)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: read  f: favorite  /: search  c: category  esc: clear"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (r readingsModel) renderDetail(rd content.Reading, w int) string {
	textWidth := max(w-8, 10)
	star := ""
	if r.rec.IsFavorite(rd.ID) {
		star = warningStyle.Render(" ★ favorite")
	}

	rows := []string{
		hindiTitleStyle.Render(rd.TitleHindi),
		mutedStyle.Render(rd.Date+"  ") + categoryStyle(string(rd.Category)).Render(string(rd.Category)) + star,
		"",
		normalItemStyle.Width(textWidth).Render(rd.ContentHindi),
		"",
		mutedStyle.Width(textWidth).Render(rd.ContentEnglish),
	}
	if rd.AudioURL != "" || rd.YouTubeID != "" {
		rows = append(rows, "")
	}
	if rd.AudioURL != "" {
		rows = append(rows, subtitleStyle.Render("Audio  ")+highlightStyle.Render(rd.AudioURL))
	}
	if v := rd.VideoURL(); v != "" {
		rows = append(rows, subtitleStyle.Render("Video  ")+highlightStyle.Render(v))
	}
	rows = append(rows, "", mutedStyle.Render("  f: favorite  esc: back"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
