package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/interview-prep-cli/internal/application"
	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now      time.Time
	Lifetime domain.Lifetime
	// Draft is a one-line summary of the in-progress interview, if any.
	Draft string
}

func renderView(snap application.SessionSnapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Interview prep session"),
		s.header.Render("state: " + stateLabel(snap.State)),
	}

	switch snap.State {
	case domain.SessionActive, domain.SessionWarningShown:
		lines = append(lines, s.section.Render(renderSession(snap, opts, s)))
	case domain.SessionExpired:
		lines = append(lines, s.warning.Render("Session expired. Run `prep login` to sign in again."))
	default:
		lines = append(lines, s.empty.Render("Not signed in. Run `prep login` or `prep signup`."))
	}

	if opts.Draft != "" {
		lines = append(lines, s.section.Render(s.detail.Render("interview in progress: "+opts.Draft)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(snap application.SessionSnapshot, opts RenderOptions, s styles) string {
	parts := []string{s.identity.Render(identityTitle(snap.Identity))}

	if !snap.IssuedAt.IsZero() {
		parts = append(parts, s.detail.Render("signed in "+formatAt(snap.IssuedAt, opts.Now)))
	}
	parts = append(parts, lifetimeLine(snap, opts, s))
	if snap.State == domain.SessionWarningShown {
		parts = append(parts, s.warning.Render("[expiring soon] run `prep session extend` to stay signed in"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func lifetimeLine(snap application.SessionSnapshot, opts RenderOptions, s styles) string {
	total := opts.Lifetime.Total
	if total <= 0 {
		total = domain.DefaultLifetime.Total
	}

	label := s.lifeKey.Render("session:")
	if opts.Now.IsZero() {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.lifeMeta.Render("expires "+formatAt(snap.ExpiresAt, opts.Now)))
	}

	remaining := max(snap.ExpiresAt.Sub(opts.Now), 0)
	leftPercent := clampPercent(100 * remaining.Seconds() / total.Seconds())
	bar := renderProgressBar(leftPercent, 24, s)
	meta := lipgloss.NewStyle().Foreground(interpolateColor(leftPercent, 0, 100)).
		Render(fmt.Sprintf("%2.0f%% left", leftPercent))
	expiry := s.lifeMeta.Render(fmt.Sprintf("(%s)", formatRemaining(remaining, snap.ExpiresAt)))

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", meta, " ", expiry)
}

func renderProgressBar(leftPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(leftPercent) / 100))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func stateLabel(state domain.SessionState) string {
	switch state {
	case domain.SessionActive:
		return "signed in"
	case domain.SessionWarningShown:
		return "signed in, expiring soon"
	case domain.SessionExpired:
		return "expired"
	default:
		return "signed out"
	}
}

func identityTitle(identity domain.Identity) string {
	label := identity.Label()
	if label == "" {
		return "Signed in"
	}
	if identity.Email != "" && label != identity.Email {
		return fmt.Sprintf("%s <%s>", label, identity.Email)
	}

	return label
}

func formatAt(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return "at " + at.Format(time.RFC3339)
	}

	y1, m1, d1 := now.Date()
	y2, m2, d2 := at.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "at " + at.Format("15:04")
	}

	return "at " + at.Format("15:04 on 02 Jan")
}

func formatRemaining(remaining time.Duration, expiresAt time.Time) string {
	if remaining <= 0 {
		return "expired"
	}
	if remaining < time.Hour {
		minutes := max(int(math.Ceil(remaining.Minutes())), 1)
		suffix := "minutes"
		if minutes == 1 {
			suffix = "minute"
		}
		return fmt.Sprintf("expires in %d %s (%s)", minutes, suffix, expiresAt.Format("15:04"))
	}

	hours := int(math.Ceil(remaining.Hours()))
	suffix := "hours"
	if hours == 1 {
		suffix = "hour"
	}
	return fmt.Sprintf("expires in %d %s (%s)", hours, suffix, expiresAt.Format("15:04"))
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// 240 (faded) at min to 255 (bright white) at max on the ANSI greyscale ramp.
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
