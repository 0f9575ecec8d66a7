package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/sadopc/bkspace/internal/export"
	"github.com/sadopc/bkspace/internal/session"
	"github.com/sadopc/bkspace/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	ctx      context.Context
	progress *store.Progress
	cache    *session.Cache
	log      zerolog.Logger
	width    int
	height   int

	activeView viewState
	showHelp   bool

	bundle          session.Bundle
	loaded          bool
	writeFailures   int
	progressVersion uint64
	progressSeen    bool

	exportPicking bool
	exportForm    *huh.Form
	exportFormat  *string

	today     todayModel
	readings  readingsModel
	practice  practiceModel
	course    courseModel
	favorites favoritesModel
	stats     statsModel

	help   help.Model
	status string
}

func NewApp(ctx context.Context, p *store.Progress, cache *session.Cache, log zerolog.Logger) App {
	h := help.New()
	h.ShowAll = false

	format := "csv"
	return App{
		ctx:          ctx,
		progress:     p,
		cache:        cache,
		log:          log,
		activeView:   viewToday,
		exportFormat: &format,
		today:        newTodayModel(p),
		readings:     newReadingsModel(p),
		practice:     newPracticeModel(p),
		course:       newCourseModel(p),
		favorites:    newFavoritesModel(p),
		stats:        newStatsModel(p),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadContent(), loadProgress(a.progress, nil))
}

func (a App) loadContent() tea.Cmd {
	return func() tea.Msg {
		return contentLoadedMsg{bundle: a.cache.Get(a.ctx)}
	}
}

// loadProgress runs mutate (if any) and reports the resulting record along
// with today's practice ids from the reconciled daily snapshot.
func loadProgress(p *store.Progress, mutate func()) tea.Cmd {
	return func() tea.Msg {
		if mutate != nil {
			mutate()
		}
		rec, version := p.Snapshot()
		ids := p.SyncDailySnapshot()
		return progressMsg{rec: rec, todayIDs: ids, version: version, failures: p.WriteFailures()}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.readings.setSize(a.width, contentHeight)
		a.practice.setSize(a.width, contentHeight)
		a.course.setSize(a.width, contentHeight)
		a.favorites.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			return a.showExportPicker()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewToday
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewReadings
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewPractice
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewCourse
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewFavorites
			return a, nil
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewStats
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		}

	case contentLoadedMsg:
		a.bundle = msg.bundle
		a.loaded = true
		a.today.setContent(msg.bundle)
		a.readings.setContent(msg.bundle)
		a.practice.setContent(msg.bundle)
		a.course.setContent(msg.bundle)
		a.favorites.setContent(msg.bundle)
		return a, nil

	case progressMsg:
		// Commands run concurrently; a record older than the one shown is dropped.
		if a.progressSeen && msg.version < a.progressVersion {
			return a, nil
		}
		a.progressSeen = true
		a.progressVersion = msg.version
		if msg.failures > a.writeFailures {
			a.status = "Could not save progress"
		}
		a.writeFailures = msg.failures
		a.today.setProgress(msg.rec, msg.todayIDs)
		a.readings.setProgress(msg.rec)
		a.practice.setProgress(msg.todayIDs)
		a.course.setProgress(msg.rec)
		a.favorites.setProgress(msg.rec)
		a.stats.setProgress(msg.rec)
		return a, nil

	case openReadingMsg:
		a.activeView = viewReadings
		a.readings.open(msg.id)
		return a, nil

	case statusMsg:
		a.status = msg.text
		if msg.isError {
			a.log.Warn().Msg(msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		a.log.Info().Str("path", msg.path).Msg("progress exported")
		return a, nil
	}

	if a.exportPicking {
		return a.updateExportPicker(msg)
	}
	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewReadings:
		a.readings, cmd = a.readings.update(msg)
	case viewPractice:
		a.practice, cmd = a.practice.update(msg)
	case viewCourse:
		a.course, cmd = a.course.update(msg)
	case viewFavorites:
		a.favorites, cmd = a.favorites.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewReadings && a.readings.formActive
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch {
	case !a.loaded:
		content = panelStyle.Width(a.width - 4).Render(mutedStyle.Render("Loading content..."))
	case a.activeView == viewToday:
		content = a.today.view()
	case a.activeView == viewReadings:
		content = a.readings.view()
	case a.activeView == viewPractice:
		content = a.practice.view()
	case a.activeView == viewCourse:
		content = a.course.view()
	case a.activeView == viewFavorites:
		content = a.favorites.view()
	case a.activeView == viewStats:
		content = a.stats.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking && a.exportForm != nil {
		content = activePanelStyle.Width(a.width - 4).Render(a.exportForm.View())
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("bkspace")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	indicators := ""
	if a.loaded && a.bundle.Offline() {
		indicators += warningStyle.Render(" ● offline content")
	}
	if a.writeFailures > 0 {
		indicators += accentStyle.Render(" ● not saved")
	}

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	right := indicators + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) showExportPicker() (tea.Model, tea.Cmd) {
	*a.exportFormat = "csv"
	a.exportForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export Format").
				Options(huh.NewOption("CSV", "csv"), huh.NewOption("JSON", "json")).
				Value(a.exportFormat),
		),
	).WithShowHelp(true)
	a.exportPicking = true
	return a, a.exportForm.Init()
}

func (a App) updateExportPicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Back) {
		a.exportPicking = false
		a.exportForm = nil
		return a, nil
	}

	form, cmd := a.exportForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.exportForm = f
	}

	switch a.exportForm.State {
	case huh.StateCompleted:
		a.exportPicking = false
		a.exportForm = nil
		return a, a.doExport(*a.exportFormat)
	case huh.StateAborted:
		a.exportPicking = false
		a.exportForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) doExport(format string) tea.Cmd {
	rec := a.progress.GetProgress()
	c := export.Content{Readings: a.bundle.Readings, Forms: a.bundle.Forms, Days: a.bundle.Days}
	return func() tea.Msg {
		path := export.DefaultPath(format, time.Now())
		var err error
		if format == "json" {
			err = export.ToJSON(rec, c, path)
		} else {
			err = export.ToCSV(rec, c, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
