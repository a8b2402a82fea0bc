package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/horas/internal/db"
	"github.com/dori/horas/internal/model"
	"github.com/dori/horas/internal/month"
	"github.com/dori/horas/internal/session"
	"github.com/dori/horas/internal/summary"
	"github.com/dori/horas/internal/timefmt"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
	liveStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// WatchModel is the live month view. Entry lists arrive over a database
// watcher that only speaks up when the stored rows change; the
// once-per-second tick merely advances the running-session clock.
// Start/stop go through the tracker.
type WatchModel struct {
	db      *db.DB
	tracker *session.Tracker
	loc     *time.Location

	ym        month.YearMonth
	entriesCh <-chan []model.TimeEntry
	stopWatch context.CancelFunc

	now    time.Time
	width  int
	height int

	entries  []model.TimeEntry
	open     *model.InProgress
	limitMin int

	bar       progress.Model
	statusMsg string
	err       error
}

// NewWatchModel creates the watch view for the current month.
func NewWatchModel(database *db.DB, tracker *session.Tracker, loc *time.Location) WatchModel {
	now := time.Now()
	m := WatchModel{
		db:      database,
		tracker: tracker,
		loc:     loc,
		now:     now,
		bar:     progress.New(progress.WithDefaultGradient()),
	}
	return m.watching(month.Current(now, loc))
}

// watching cancels any running watcher and starts one for ym.
func (m WatchModel) watching(ym month.YearMonth) WatchModel {
	if m.stopWatch != nil {
		m.stopWatch()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.ym = ym
	m.entriesCh = m.db.WatchRange(ctx, ym.FirstEpochDay(), ym.LastEpochDay(), time.Second)
	m.stopWatch = cancel
	return m
}

type watchTickMsg time.Time
type watchEntriesMsg struct {
	ym      month.YearMonth
	entries []model.TimeEntry
}
type watchMetaMsg struct {
	open     *model.InProgress
	limitMin int
}
type watchErrorMsg struct{ err error }

func watchTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

// awaitEntries blocks on the watcher until the next changed snapshot.
// The emission is tagged with its month so a late delivery from a
// cancelled watcher can be told apart after navigation.
func awaitEntries(ym month.YearMonth, ch <-chan []model.TimeEntry) tea.Cmd {
	return func() tea.Msg {
		entries, ok := <-ch
		if !ok {
			return nil
		}
		return watchEntriesMsg{ym: ym, entries: entries}
	}
}

func (m WatchModel) loadMeta() tea.Cmd {
	return func() tea.Msg {
		open, err := m.tracker.Open()
		if err != nil {
			return watchErrorMsg{err: err}
		}

		limitMin, err := m.db.MonthlyLimitMinutes()
		if err != nil {
			return watchErrorMsg{err: err}
		}

		return watchMetaMsg{open: open, limitMin: limitMin}
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(awaitEntries(m.ym, m.entriesCh), m.loadMeta(), watchTickCmd())
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(msg.Width-8, 50)
		return m, nil

	case watchTickMsg:
		m.now = time.Time(msg)
		return m, watchTickCmd()

	case watchEntriesMsg:
		if msg.ym != m.ym {
			return m, nil
		}
		m.entries = msg.entries
		m.err = nil
		return m, tea.Batch(awaitEntries(m.ym, m.entriesCh), m.loadMeta())

	case watchMetaMsg:
		m.open = msg.open
		m.limitMin = msg.limitMin
		return m, nil

	case watchErrorMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.stopWatch != nil {
				m.stopWatch()
			}
			return m, tea.Quit

		case "s", " ":
			if m.open != nil {
				if err := m.tracker.Stop(); err != nil {
					m.err = err
					return m, nil
				}
				m.statusMsg = "Session stopped"
			} else {
				if _, err := m.tracker.Start(); err != nil {
					m.err = err
					return m, nil
				}
				m.statusMsg = "Session started"
			}
			return m, m.loadMeta()

		case "left", "h":
			m = m.watching(m.ym.Shift(-1))
			return m, tea.Batch(awaitEntries(m.ym, m.entriesCh), m.loadMeta())

		case "right", "l":
			m = m.watching(m.ym.Shift(1))
			return m, tea.Batch(awaitEntries(m.ym, m.entriesCh), m.loadMeta())

		case "t":
			m = m.watching(month.Current(m.now, m.loc))
			return m, tea.Batch(awaitEntries(m.ym, m.entriesCh), m.loadMeta())
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.ym.Label()))
	b.WriteString("\n\n")

	nowMs := m.now.UnixMilli()
	sum := summary.Summarize(m.entries)
	total := summary.TotalWithLive(sum, m.open, nowMs, m.ym, m.loc)

	if m.open != nil {
		live := m.ym.Overlap(m.open.StartMillis, nowMs, m.loc)
		elapsed := nowMs - m.open.StartMillis
		b.WriteString(labelStyle.Render("Running   "))
		b.WriteString(liveStyle.Render(timefmt.Elapsed(elapsed)))
		if live != elapsed {
			b.WriteString(labelStyle.Render(fmt.Sprintf("  (%s this month)", timefmt.Elapsed(live))))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(labelStyle.Render("Running   "))
		b.WriteString(valueStyle.Render("—"))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Total     "))
	b.WriteString(valueStyle.Render(timefmt.Elapsed(total)))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Days      "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", sum.DaysWorked)))
	b.WriteString("\n")

	status := summary.EvalLimit(m.limitMin, total)
	if status.HasLimit {
		b.WriteString(labelStyle.Render("Remaining "))
		b.WriteString(valueStyle.Render(timefmt.Elapsed(status.RemainingMillis)))
		b.WriteString("\n\n")
		b.WriteString(m.bar.ViewAs(status.Progress))
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s start/stop • ←/→ month • t today • q quit"))

	return cardStyle.Render(b.String())
}
