// Package tui is the full-screen dashboard. It owns no schedule logic: each
// tick it asks the clock for a Snapshot and renders it.
package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezmoss/standupclock/internal/clock"
	"github.com/rezmoss/standupclock/internal/locale"
	"github.com/rezmoss/standupclock/internal/reminder"
	"github.com/rezmoss/standupclock/internal/schedule"
)

const frameInterval = 50 * time.Millisecond

type tickMsg time.Time

type frameMsg time.Time

type permissionMsg struct {
	err error
}

// ConfigMsg carries a reloaded configuration into the program.
type ConfigMsg struct {
	Schedule  schedule.Schedule
	Printer   *locale.Printer
	Particles bool
	Err       error
}

// Options configures the dashboard.
type Options struct {
	Printer   *locale.Printer
	Particles bool
	Seed      uint64
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	clock     *clock.Clock
	printer   *locale.Printer
	particles bool
	burst     *burst
	animating bool

	snap    clock.Snapshot
	started bool
	alert   string

	keys   keyMap
	help   help.Model
	width  int
	height int
}

// New creates the dashboard for c.
func New(c *clock.Clock, opts Options) Model {
	return Model{
		clock:     c,
		printer:   opts.Printer,
		particles: opts.Particles,
		burst:     newBurst(opts.Seed),
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
}

// NewProgram wraps the model in a full-screen program.
func NewProgram(m Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(m.clock.Now()) }
}

// tickCmd schedules the next tick for the next whole second.
func (m Model) tickCmd(now time.Time) tea.Cmd {
	return tea.Tick(schedule.NextDelay(now), func(time.Time) tea.Msg {
		return tickMsg(m.clock.Now())
	})
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// celebrating is true while the standup is running late.
func (m Model) celebrating() bool {
	return m.particles && m.snap.IsStandupDay && m.snap.IsLate
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.alert != "" {
			m.alert = ""
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Notify):
			return m, m.requestPermission()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.burst.resize(msg.Width, msg.Height)

	case tickMsg:
		now := time.Time(msg)
		m.snap = m.clock.Tick(now)
		m.started = true
		cmds := []tea.Cmd{m.tickCmd(now)}
		if m.celebrating() && !m.animating {
			m.animating = true
			cmds = append(cmds, frameCmd())
		}
		return m, tea.Batch(cmds...)

	case frameMsg:
		if !m.celebrating() {
			m.animating = false
			m.burst.reset()
			return m, nil
		}
		m.burst.step(frameInterval)
		return m, frameCmd()

	case permissionMsg:
		if msg.err != nil {
			if errors.Is(msg.err, reminder.ErrUnsupported) {
				m.alert = m.printer.Sprintf(locale.Unsupported)
			} else {
				m.alert = msg.err.Error()
			}
		}
		m.snap.Notification = m.clock.Reminder().State()

	case ConfigMsg:
		if msg.Err != nil {
			m.alert = msg.Err.Error()
			return m, nil
		}
		m.clock.SetSchedule(msg.Schedule)
		if msg.Printer != nil {
			m.printer = msg.Printer
		}
		m.particles = msg.Particles
	}
	return m, nil
}

func (m Model) requestPermission() tea.Cmd {
	r := m.clock.Reminder()
	return func() tea.Msg {
		_, err := r.RequestPermission()
		return permissionMsg{err: err}
	}
}
