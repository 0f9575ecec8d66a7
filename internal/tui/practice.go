package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/bkspace/internal/content"
	"github.com/sadopc/bkspace/internal/session"
	"github.com/sadopc/bkspace/internal/store"
)

type practiceModel struct {
	progress *store.Progress
	width    int
	height   int

	forms  []content.PracticeForm
	done   []string // ids completed today
	cursor int
}

func newPracticeModel(p *store.Progress) practiceModel {
	return practiceModel{progress: p}
}

func (p *practiceModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *practiceModel) setContent(b session.Bundle) {
	p.forms = b.Forms
	if p.cursor >= len(p.forms) {
		p.cursor = max(0, len(p.forms)-1)
	}
}

// setProgress takes today's ids as read back from the daily snapshot.
func (p *practiceModel) setProgress(todayIDs []string) {
	p.done = todayIDs
}

// doneCount counts today's completions among the loaded forms.
func (p practiceModel) doneCount() int {
	n := 0
	for _, f := range p.forms {
		if slices.Contains(p.done, f.ID) {
			n++
		}
	}
	return n
}

func (p practiceModel) update(msg tea.Msg) (practiceModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if p.cursor < len(p.forms)-1 {
			p.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle), key.Matches(keyMsg, keys.Enter):
		if p.cursor < len(p.forms) {
			id := p.forms[p.cursor].ID
			return p, loadProgress(p.progress, func() { p.progress.TogglePractice(id, time.Time{}) })
		}
	}
	return p, nil
}

func (p practiceModel) view() string {
	w := p.width - 4
	title := titleStyle.Render("Daily Abhyas")

	if len(p.forms) == 0 {
		return panelStyle.Width(w).Render(title + "\n\n" + mutedStyle.Render("No practice forms available."))
	}

	rows := []string{title, "", renderDots(p.doneCount(), len(p.forms)), ""}
	for i, f := range p.forms {
		cursor := "  "
		if i == p.cursor {
			cursor = "> "
		}
		mark := mutedStyle.Render("[ ]")
		if slices.Contains(p.done, f.ID) {
			mark = successStyle.Render("[✓]")
		}
		name := themeStyle(f.ColorTheme).Bold(i == p.cursor).Render(f.Title)
		rows = append(rows, fmt.Sprintf("%s%s %s  %s", cursor, mark, name, mutedStyle.Render(f.HindiTitle)))
	}

	if p.cursor < len(p.forms) {
		f := p.forms[p.cursor]
		textWidth := max(w-8, 10)
		rows = append(rows, "",
			hindiTitleStyle.Render(f.HindiTitle),
			normalItemStyle.Width(textWidth).Render(f.DescriptionHindi),
			mutedStyle.Width(textWidth).Render(f.Description),
		)
	}

	rows = append(rows, "", mutedStyle.Render("  space: mark done  ↑/↓: select"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
