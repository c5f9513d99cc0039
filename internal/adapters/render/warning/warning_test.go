package warning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/interview-prep-cli/internal/application"
	"github.com/bnema/interview-prep-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issued = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func warningSnapshot() application.SessionSnapshot {
	lifetime := domain.DefaultLifetime
	return application.SessionSnapshot{
		State:     domain.SessionWarningShown,
		Identity:  domain.Identity{UserID: "1", DisplayName: "Ada"},
		IssuedAt:  issued,
		WarningAt: lifetime.WarningAt(issued),
		ExpiresAt: lifetime.ExpiresAt(issued),
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 30 * time.Minute, want: "30:00"},
		{in: 4*time.Minute + 59*time.Second, want: "4:59"},
		{in: 1500 * time.Millisecond, want: "0:02"},
		{in: 0, want: "0:00"},
		{in: -time.Second, want: "0:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCountdown(tt.in), tt.in.String())
	}
}

func TestPresentOnlyInWarningState(t *testing.T) {
	snap := warningSnapshot()
	now := snap.ExpiresAt.Add(-5 * time.Minute)

	presentation, ok := Present(snap, now)
	require.True(t, ok)
	assert.Equal(t, "5:00", presentation.Countdown)
	assert.Equal(t, "Ada", presentation.Who)
	assert.Equal(t, []Action{ActionExtend, ActionLogout}, presentation.Actions)

	for _, state := range []domain.SessionState{domain.SessionSignedOut, domain.SessionActive, domain.SessionExpired} {
		snap.State = state
		_, ok := Present(snap, now)
		assert.False(t, ok, state.String())
	}
}

func TestPresentClampsPastDeadline(t *testing.T) {
	snap := warningSnapshot()

	presentation, ok := Present(snap, snap.ExpiresAt.Add(time.Minute))
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), presentation.Remaining)
	assert.Equal(t, "0:00", presentation.Countdown)
}

func TestModelCountdownReachingZeroTriggersNothing(t *testing.T) {
	snap := warningSnapshot()
	actions := Actions{
		Extend: func(context.Context) (application.SessionSnapshot, error) {
			t.Fatal("extend must not be called")
			return application.SessionSnapshot{}, nil
		},
		Logout: func() application.SessionSnapshot {
			t.Fatal("logout must not be called")
			return application.SessionSnapshot{}
		},
	}
	m := NewModel(snap, actions, func() time.Time { return snap.WarningAt })

	updated, cmd := m.Update(tickMsg(snap.ExpiresAt.Add(10 * time.Second)))
	m = updated.(Model)

	require.NotNil(t, cmd, "ticking continues")
	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "0:00")
	assert.Equal(t, domain.SessionWarningShown, m.Snapshot().State)
}

func TestModelExtendDelegatesToController(t *testing.T) {
	snap := warningSnapshot()
	extended := snap
	extended.State = domain.SessionActive
	calls := 0
	m := NewModel(snap, Actions{
		Extend: func(context.Context) (application.SessionSnapshot, error) {
			calls++
			return extended, nil
		},
	}, func() time.Time { return snap.WarningAt })

	updated, cmd := m.Update(keyMsg("e"))
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "working")

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	assert.Equal(t, 1, calls)
	assert.False(t, m.Visible())
	assert.Contains(t, m.View(), "Signed in as Ada")
}

func TestModelExtendFailureShowsError(t *testing.T) {
	snap := warningSnapshot()
	expired := snap
	expired.State = domain.SessionExpired
	m := NewModel(snap, Actions{
		Extend: func(context.Context) (application.SessionSnapshot, error) {
			return expired, errors.New("extend session: session expired")
		},
	}, func() time.Time { return snap.WarningAt })

	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "Session expired")
	assert.Contains(t, view, "extend session")
}

func TestModelLogout(t *testing.T) {
	snap := warningSnapshot()
	m := NewModel(snap, Actions{
		Logout: func() application.SessionSnapshot {
			return application.SessionSnapshot{State: domain.SessionExpired}
		},
	}, func() time.Time { return snap.WarningAt })

	_, cmd := m.Update(keyMsg("l"))
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	assert.Equal(t, domain.SessionExpired, updated.(Model).Snapshot().State)
}

func TestModelDismissUntilNextWarning(t *testing.T) {
	snap := warningSnapshot()
	m := NewModel(snap, Actions{}, func() time.Time { return snap.WarningAt })

	updated, _ := m.Update(keyMsg("d"))
	m = updated.(Model)
	assert.False(t, m.Visible())

	updated, _ = m.Update(SnapshotMsg(snap))
	m = updated.(Model)
	assert.False(t, m.Visible(), "same warning stays dismissed")

	next := snap
	next.WarningAt = snap.WarningAt.Add(24 * time.Hour)
	next.ExpiresAt = snap.ExpiresAt.Add(24 * time.Hour)
	updated, _ = m.Update(SnapshotMsg(next))
	assert.True(t, updated.(Model).Visible())
}

func TestModelIgnoresActionsWhenHidden(t *testing.T) {
	active := warningSnapshot()
	active.State = domain.SessionActive
	m := NewModel(active, Actions{
		Extend: func(context.Context) (application.SessionSnapshot, error) {
			t.Fatal("extend must not be offered outside the warning")
			return application.SessionSnapshot{}, nil
		},
	}, func() time.Time { return active.IssuedAt })

	_, cmd := m.Update(keyMsg("e"))
	assert.Nil(t, cmd)
}

func TestModelQuit(t *testing.T) {
	m := NewModel(warningSnapshot(), Actions{}, nil)

	for _, key := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(key))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}
