package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/bkspace/internal/content"
	"github.com/sadopc/bkspace/internal/session"
	"github.com/sadopc/bkspace/internal/store"
)

type favoritesModel struct {
	progress *store.Progress
	width    int
	height   int

	readings []content.Reading
	items    []content.Reading
	rec      store.Record
	cursor   int
}

func newFavoritesModel(p *store.Progress) favoritesModel {
	return favoritesModel{progress: p, rec: store.EmptyRecord()}
}

func (f *favoritesModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f *favoritesModel) setContent(b session.Bundle) {
	f.readings = b.Readings
	f.resolve()
}

func (f *favoritesModel) setProgress(rec store.Record) {
	f.rec = rec
	f.resolve()
}

func (f *favoritesModel) resolve() {
	f.items = content.ReadingsByID(f.readings, f.rec.Favorites)
	if f.cursor >= len(f.items) {
		f.cursor = max(0, len(f.items)-1)
	}
}

func (f favoritesModel) update(msg tea.Msg) (favoritesModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Up):
		if f.cursor > 0 {
			f.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if f.cursor < len(f.items)-1 {
			f.cursor++
		}
	case key.Matches(keyMsg, keys.Enter):
		if f.cursor < len(f.items) {
			id := f.items[f.cursor].ID
			return f, func() tea.Msg { return openReadingMsg{id: id} }
		}
	case key.Matches(keyMsg, keys.Favorite):
		if f.cursor < len(f.items) {
			id := f.items[f.cursor].ID
			return f, loadProgress(f.progress, func() { f.progress.ToggleFavorite(id) })
		}
	}
	return f, nil
}

func (f favoritesModel) view() string {
	w := f.width - 4
	title := titleStyle.Render("Favorites")

	if len(f.items) == 0 {
		return panelStyle.Width(w).Render(title + "\n\n" +
			mutedStyle.Render("No favorites yet. Press f on a murli to save it."))
	}

	rows := []string{title, ""}
	for i, r := range f.items {
		cursor := "  "
		style := normalItemStyle
		if i == f.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, fmt.Sprintf("%s%s %s %s", style.Render(cursor), warningStyle.Render("★"),
			mutedStyle.Render(r.Date), style.Render(truncate(r.TitleHindi, max(w-22, 10)))))
	}

	rows = append(rows, "", mutedStyle.Render("  enter: read  f: remove"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
