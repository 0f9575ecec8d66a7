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

type courseModel struct {
	progress *store.Progress
	width    int
	height   int

	days   []content.CourseDay
	rec    store.Record
	cursor int
}

func newCourseModel(p *store.Progress) courseModel {
	return courseModel{progress: p, rec: store.EmptyRecord()}
}

func (c *courseModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c *courseModel) setContent(b session.Bundle) {
	c.days = b.Days
	if c.cursor >= len(c.days) {
		c.cursor = max(0, len(c.days)-1)
	}
}

func (c *courseModel) setProgress(rec store.Record) {
	c.rec = rec
}

func (c courseModel) update(msg tea.Msg) (courseModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if c.cursor < len(c.days)-1 {
			c.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle), key.Matches(keyMsg, keys.Enter):
		if c.cursor >= len(c.days) {
			return c, nil
		}
		if courseLocked(c.days, c.rec, c.cursor) {
			prev := c.days[c.cursor-1].Day
			return c, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Complete day %d first", prev)}
			}
		}
		day := c.days[c.cursor].Day
		return c, loadProgress(c.progress, func() { c.progress.ToggleCourseDay(day) })
	}
	return c, nil
}

func (c courseModel) view() string {
	w := c.width - 4
	title := titleStyle.Render("7 Day Rajyoga Course")

	if len(c.days) == 0 {
		return panelStyle.Width(w).Render(title + "\n\n" + mutedStyle.Render("No course days available."))
	}

	pct := coursePercent(c.days, c.rec)
	rows := []string{
		title + "  " + subtitleStyle.Render(fmt.Sprintf("%d%% complete", pct)),
		"",
	}

	for i, d := range c.days {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		var mark string
		switch {
		case c.rec.DayCompleted(d.Day):
			mark = successStyle.Render("✓")
		case courseLocked(c.days, c.rec, i):
			mark = mutedStyle.Render("🔒")
			style = mutedStyle
		default:
			mark = warningStyle.Render("○")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s  %s", cursor, mark,
			style.Render(fmt.Sprintf("Day %d  %s", d.Day, d.Title)), mutedStyle.Render(d.TitleHindi)))
	}

	if c.cursor < len(c.days) {
		rows = append(rows, "", c.renderDay(c.days[c.cursor], max(w-8, 10)))
	}

	rows = append(rows, "", mutedStyle.Render("  space: mark complete  ↑/↓: select"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c courseModel) renderDay(d content.CourseDay, textWidth int) string {
	rows := []string{hindiTitleStyle.Render(d.ThemeHindi)}
	for _, res := range d.Resources {
		rows = append(rows, normalItemStyle.Render("  • "+res))
	}
	rows = append(rows,
		"",
		subtitleStyle.Render("Reflection"),
		normalItemStyle.Width(textWidth).Render(d.ReflectionHindi),
		mutedStyle.Width(textWidth).Render(d.Reflection),
	)
	return strings.Join(rows, "\n")
}
