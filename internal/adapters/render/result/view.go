package result

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"
)

type RenderOptions struct {
	// MarkdownStyle is a glamour standard style ("dark", "light", "notty");
	// empty picks one from the terminal.
	MarkdownStyle string
	WordWrap      int
	Now           time.Time
}

var stripPolicy = bluemonday.StrictPolicy()

// clean strips any markup the backend let through; text is shown verbatim.
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

func renderResult(r domain.Result, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("Interview result: %s at %s", clean(r.Role), clean(r.Company))),
		s.header.Render(fmt.Sprintf("mode: %s  rounds: %d  scoring: %s", r.Mode, r.RoundsPlayed, methodLabel(r.Method))),
	}

	summary := []string{
		fmt.Sprintf("%s %.1f / 10", s.label.Render("Average score:"), domain.RoundScore(r.AverageScore)),
		fmt.Sprintf("%s %.1f", s.label.Render("Total score:"), domain.RoundScore(r.TotalScore)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.label.Render("Fit:"), " ", renderBar(float64(r.FitPercentage), 24, s), " ", fmt.Sprintf("%d%%", r.FitPercentage)),
	}
	if r.Passed != nil {
		if *r.Passed {
			summary = append(summary, s.passed.Render("Passed"))
		} else {
			summary = append(summary, s.failed.Render("Not passed"))
		}
	}
	if r.ImprovementNeeded != nil && *r.ImprovementNeeded > 0 {
		summary = append(summary, fmt.Sprintf("%s %.1f points", s.label.Render("Improvement needed:"), domain.RoundScore(*r.ImprovementNeeded)))
	}
	if msg := clean(r.Message); msg != "" {
		summary = append(summary, msg)
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, summary...)))

	if len(r.Questions) > 0 {
		lines = append(lines, s.section.Render(renderQuestions(r.Questions, s)))
	}
	if list := renderList("Strengths", r.Strengths, s); list != "" {
		lines = append(lines, s.section.Render(list))
	}
	if list := renderList("Weak areas", r.WeakAreas, s); list != "" {
		lines = append(lines, s.section.Render(list))
	}
	if roadmap := strings.TrimSpace(r.Roadmap); roadmap != "" {
		lines = append(lines, s.section.Render(s.title.Render("Roadmap")), renderMarkdown(roadmap, opts))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderQuestions(questions []domain.ScoredQuestion, s styles) string {
	parts := make([]string, 0, len(questions)*3)
	for i, q := range questions {
		score := "n/a"
		if q.Score != nil {
			score = fmt.Sprintf("%.1f", domain.RoundScore(*q.Score))
		}
		parts = append(parts, s.question.Render(fmt.Sprintf("Q%d [%s] %s", i+1, score, clean(q.Question))))
		if answer := clean(q.Answer); answer != "" {
			parts = append(parts, s.answer.Render("  "+firstLine(answer)))
		}
		if feedback := clean(q.Feedback); feedback != "" {
			parts = append(parts, s.feedback.Render(feedback))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderList(title string, items []string, s styles) string {
	var lines []string
	for _, item := range items {
		if text := clean(item); text != "" {
			lines = append(lines, "  - "+text)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{s.title.Render(title)}, lines...)...)
}

func renderMarkdown(markdown string, opts RenderOptions) string {
	source := clean(markdown)

	styleOpt := glamour.WithAutoStyle()
	if opts.MarkdownStyle != "" {
		styleOpt = glamour.WithStandardStyle(opts.MarkdownStyle)
	}
	wrap := opts.WordWrap
	if wrap <= 0 {
		wrap = 80
	}

	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return source
	}
	out, err := renderer.Render(source)
	if err != nil {
		return source
	}

	return strings.TrimRight(out, "\n")
}

func renderHistory(results []domain.Result, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Interview history"),
		s.header.Render(fmt.Sprintf("interviews: %d", len(results))),
	}
	if len(results) == 0 {
		lines = append(lines, s.empty.Render("No finished interviews yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, r := range results {
		outcome := ""
		if r.Passed != nil {
			if *r.Passed {
				outcome = " " + s.passed.Render("passed")
			} else {
				outcome = " " + s.failed.Render("not passed")
			}
		}
		lines = append(lines, fmt.Sprintf("%s  %s at %s (%s)  avg %.1f  fit %d%%%s",
			s.header.Render(formatWhen(r.CompletedAt, opts.Now)),
			clean(r.Role), clean(r.Company), r.Mode,
			domain.RoundScore(r.AverageScore), r.FitPercentage, outcome,
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * min(max(percent, 0), 100) / 100))
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func methodLabel(method domain.ScoringMethod) string {
	switch method {
	case domain.ScoringSubMetrics:
		return "per-question sub-scores"
	case domain.ScoringAggregate:
		return "server aggregate"
	default:
		return "unknown"
	}
}

func formatWhen(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if !now.IsZero() {
		y1, m1, d1 := now.Date()
		y2, m2, d2 := at.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			return "today " + at.Format("15:04")
		}
	}

	return at.Format("2006-01-02 15:04")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}

	return s
}
