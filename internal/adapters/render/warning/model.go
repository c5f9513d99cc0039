package warning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/interview-prep-cli/internal/application"
	"github.com/bnema/interview-prep-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const tickInterval = time.Second

// Actions delegate straight to the session controller.
type Actions struct {
	Extend func(ctx context.Context) (application.SessionSnapshot, error)
	Logout func() application.SessionSnapshot
}

// SnapshotMsg carries a controller snapshot into the program, typically
// from a Subscribe callback via tea.Program.Send.
type SnapshotMsg application.SessionSnapshot

type tickMsg time.Time

type actionDoneMsg struct {
	snap application.SessionSnapshot
	err  error
}

type Model struct {
	snap      application.SessionSnapshot
	actions   Actions
	now       func() time.Time
	current   time.Time
	dismissed bool
	busy      bool
	err       error
	styles    styles
}

func NewModel(initial application.SessionSnapshot, actions Actions, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}

	return Model{
		snap:    initial,
		actions: actions,
		now:     now,
		current: now(),
		styles:  newStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	now := m.now
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg(now())
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.current = time.Time(msg)
		return m, m.tick()
	case SnapshotMsg:
		m.adopt(application.SessionSnapshot(msg))
		return m, nil
	case actionDoneMsg:
		m.busy = false
		m.err = msg.err
		m.adopt(msg.snap)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) adopt(snap application.SessionSnapshot) {
	if snap.State != domain.SessionWarningShown || !snap.WarningAt.Equal(m.snap.WarningAt) {
		m.dismissed = false
	}
	m.snap = snap
	m.current = m.now()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	if !m.Visible() || m.busy {
		return m, nil
	}

	switch msg.String() {
	case "e", "enter":
		if m.actions.Extend == nil {
			return m, nil
		}
		m.busy = true
		m.err = nil
		extend := m.actions.Extend
		return m, func() tea.Msg {
			snap, err := extend(context.Background())
			return actionDoneMsg{snap: snap, err: err}
		}
	case "l":
		if m.actions.Logout == nil {
			return m, nil
		}
		m.busy = true
		logout := m.actions.Logout
		return m, func() tea.Msg {
			return actionDoneMsg{snap: logout()}
		}
	case "d":
		m.dismissed = true
	}

	return m, nil
}

// Visible reports whether the warning overlay is drawn.
func (m Model) Visible() bool {
	_, ok := Present(m.snap, m.current)
	return ok && !m.dismissed
}

func (m Model) Snapshot() application.SessionSnapshot {
	return m.snap
}

func (m Model) View() string {
	presentation, ok := Present(m.snap, m.current)
	if !ok || m.dismissed {
		return m.statusLine() + "\n"
	}

	lines := []string{
		m.styles.title.Render("Session expiring"),
		fmt.Sprintf("%s, your session ends in %s", presentation.Who, m.styles.countdown.Render(presentation.Countdown)),
	}
	if m.busy {
		lines = append(lines, m.styles.faint.Render("working..."))
	} else {
		lines = append(lines, m.styles.keys.Render("[e] extend  [l] log out now  [d] dismiss  [q] quit"))
	}
	if m.err != nil {
		lines = append(lines, m.styles.err.Render(m.err.Error()))
	}

	return m.styles.box.Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) statusLine() string {
	var line string
	switch m.snap.State {
	case domain.SessionActive, domain.SessionWarningShown:
		remaining := max(m.snap.ExpiresAt.Sub(m.current), 0)
		line = fmt.Sprintf("Signed in as %s, session ends in %s", m.snap.Identity.Label(), FormatCountdown(remaining))
	case domain.SessionExpired:
		line = m.styles.err.Render("Session expired. Run `prep login` to sign in again.")
	default:
		line = m.styles.faint.Render("Signed out.")
	}
	if m.err != nil {
		line += "\n" + m.styles.err.Render(m.err.Error())
	}

	return line + "\n" + m.styles.faint.Render("[q] quit")
}

type styles struct {
	box       lipgloss.Style
	title     lipgloss.Style
	countdown lipgloss.Style
	keys      lipgloss.Style
	faint     lipgloss.Style
	err       lipgloss.Style
}

func newStyles() styles {
	return styles{
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 2),
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		countdown: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		keys:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		faint:     lipgloss.NewStyle().Faint(true),
		err:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
