package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/bkspace/internal/content"
	"github.com/sadopc/bkspace/internal/session"
	"github.com/sadopc/bkspace/internal/store"
)

type todayModel struct {
	progress *store.Progress
	width    int
	height   int

	reading  content.Reading
	hasToday bool
	forms    []content.PracticeForm
	days     []content.CourseDay

	rec      store.Record
	todayIDs []string
}

func newTodayModel(p *store.Progress) todayModel {
	return todayModel{progress: p, rec: store.EmptyRecord()}
}

func (t *todayModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t *todayModel) setContent(b session.Bundle) {
	t.reading, t.hasToday = b.Today()
	t.forms = b.Forms
	t.days = b.Days
}

func (t *todayModel) setProgress(rec store.Record, todayIDs []string) {
	t.rec = rec
	t.todayIDs = todayIDs
}

func (t todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !t.hasToday {
		return t, nil
	}
	id := t.reading.ID
	switch {
	case key.Matches(keyMsg, keys.Enter):
		return t, func() tea.Msg { return openReadingMsg{id: id} }
	case key.Matches(keyMsg, keys.Favorite):
		return t, loadProgress(t.progress, func() { t.progress.ToggleFavorite(id) })
	}
	return t, nil
}

func (t todayModel) view() string {
	w := t.width - 4
	title := titleStyle.Render("Today's Murli")

	if !t.hasToday {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No readings available."),
		))
	}

	r := t.reading
	star := ""
	if t.rec.IsFavorite(r.ID) {
		star = warningStyle.Render(" ★")
	}
	meta := mutedStyle.Render(r.Date+"  ") + categoryStyle(string(r.Category)).Render(string(r.Category)) + star

	textWidth := max(w-8, 10)
	rows := []string{
		title,
		"",
		meta,
		hindiTitleStyle.Render(r.TitleHindi),
		"",
		normalItemStyle.Width(textWidth).Render(truncate(r.ContentHindi, textWidth*2)),
		"",
		mutedStyle.Width(textWidth).Render(truncate(r.ContentEnglish, textWidth*2)),
		"",
		t.renderSummary(),
		"",
		mutedStyle.Render("  enter: read  f: favorite"),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t todayModel) renderSummary() string {
	practice := fmt.Sprintf("Practice today  %s", renderDots(len(t.todayIDs), len(t.forms)))
	course := fmt.Sprintf("Course          %d%% complete", coursePercent(t.days, t.rec))
	favs := fmt.Sprintf("Favorites       %d", len(t.rec.Favorites))
	return lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render(practice),
		subtitleStyle.Render(course),
		subtitleStyle.Render(favs),
	)
}

// renderDots draws done/total as filled and empty dots with a counter.
func renderDots(done, total int) string {
	var parts []string
	for i := 0; i < total; i++ {
		if i < done {
			parts = append(parts, successStyle.Render("●"))
		} else {
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	return strings.Join(parts, " ") + mutedStyle.Render(fmt.Sprintf("  %d/%d", done, total))
}
