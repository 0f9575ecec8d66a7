package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/bkspace/internal/store"
)

const statsDays = 7

type dayCount struct {
	date  string
	label string
	count int
}

type statsModel struct {
	progress *store.Progress
	width    int
	height   int

	rec    store.Record
	counts []dayCount
	chart  barchart.Model
}

func newStatsModel(p *store.Progress) statsModel {
	return statsModel{
		progress: p,
		rec:      store.EmptyRecord(),
		chart:    barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.buildChart()
}

func (s *statsModel) setProgress(rec store.Record) {
	s.rec = rec
	s.counts = lastDays(rec.CompletedPractices, s.progress, statsDays)
	s.buildChart()
}

func (s statsModel) update(tea.Msg) (statsModel, tea.Cmd) {
	return s, nil
}

// lastDays tallies practice completions for the n days ending today, oldest
// first.
func lastDays(keys []string, p *store.Progress, n int) []dayCount {
	byDay := store.CountByDay(keys)
	today := p.Today()
	out := make([]dayCount, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		date := d.Format(store.DateLayout)
		out = append(out, dayCount{date: date, label: d.Format("Mon 02"), count: byDay[date]})
	}
	return out
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, dc := range s.counts {
		style := lipgloss.NewStyle().Foreground(colorSuccess)
		if dc.count == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label:  dc.label,
			Values: []barchart.BarValue{{Name: "practices", Value: float64(dc.count), Style: style}},
		})
	}
	if len(bars) == 0 {
		return
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	total := 0
	for _, dc := range s.counts {
		total += dc.count
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Practice"), "  ", mutedStyle.Render(fmt.Sprintf("last %d days", statsDays)),
	)

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %8s", "Date", "Practices")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", max(0, min(w-6, 22)))))
	for _, dc := range s.counts {
		rows = append(rows, fmt.Sprintf("  %-12s %8d", dc.date, dc.count))
	}

	summary := subtitleStyle.Render(fmt.Sprintf("%d practices  •  %d favorites  •  %d course days complete",
		total, len(s.rec.Favorites), len(s.rec.CompletedCourseDays)))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", s.chart.View(), "", strings.Join(rows, "\n"), "", summary,
		),
	)
}
