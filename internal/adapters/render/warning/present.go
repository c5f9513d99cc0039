// Package warning shows the session expiry warning and its two actions.
// It only reads controller snapshots; the countdown it draws never expires
// anything.
package warning

import (
	"fmt"
	"time"

	"github.com/bnema/interview-prep-cli/internal/application"
	"github.com/bnema/interview-prep-cli/internal/domain"
)

type Action string

const (
	ActionExtend Action = "extend"
	ActionLogout Action = "logout"
)

type Presentation struct {
	Who       string
	Remaining time.Duration
	Countdown string
	ExpiresAt time.Time
	Actions   []Action
}

// Present is visible only while the controller is in the warning state.
func Present(snap application.SessionSnapshot, now time.Time) (Presentation, bool) {
	if snap.State != domain.SessionWarningShown {
		return Presentation{}, false
	}

	remaining := max(snap.ExpiresAt.Sub(now), 0)

	return Presentation{
		Who:       snap.Identity.Label(),
		Remaining: remaining,
		Countdown: FormatCountdown(remaining),
		ExpiresAt: snap.ExpiresAt,
		Actions:   []Action{ActionExtend, ActionLogout},
	}, true
}

// FormatCountdown renders d as M:SS, rounding partial seconds up so 0:00
// only shows once the deadline has passed.
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "0:00"
	}

	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
