// Package result renders finished interviews for the terminal.
package result

import (
	"errors"
	"io"

	"github.com/bnema/interview-prep-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	render func(styles) string
	styles styles
	output string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.render(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func Render(r domain.Result, opts RenderOptions) (string, error) {
	return run(func(s styles) string { return renderResult(r, opts, s) })
}

func RenderHistory(results []domain.Result, opts RenderOptions) (string, error) {
	return run(func(s styles) string { return renderHistory(results, opts, s) })
}

func run(render func(styles) string) (string, error) {
	p := tea.NewProgram(
		model{render: render, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
