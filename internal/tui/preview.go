// Package tui implements the interactive terminal preview: a braille
// rendering of a scene whose parameter can be stepped with the arrow keys.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorDim   = lipgloss.Color("240")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	plotStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	errorStyle = lipgloss.NewStyle().Foreground(colorRed)
	helpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// RenderFunc draws the scene at parameter p as lines of braille text.
type RenderFunc func(p float64) ([]string, error)

// PreviewModel is the bubbletea model for the scene preview.
type PreviewModel struct {
	Title string
	Param float64
	Step  float64
	Lines []string
	Err   error

	start  float64
	render RenderFunc
}

// NewPreviewModel creates a preview starting at param p. Each arrow key
// press moves p by step.
func NewPreviewModel(title string, p, step float64, render RenderFunc) PreviewModel {
	m := PreviewModel{Title: title, Param: p, Step: step, start: p, render: render}
	m.redraw()
	return m
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "+":
			m.Param += m.Step
			m.redraw()
		case "left", "h", "-":
			m.Param -= m.Step
			m.redraw()
		case "up", "k":
			m.Step *= 2
		case "down", "j":
			m.Step /= 2
		case "r", "0":
			m.Param = m.start
			m.redraw()
		}
	}
	return m, nil
}

func (m *PreviewModel) redraw() {
	m.Lines, m.Err = m.render(m.Param)
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  p = %.4g  step = %.4g", m.Param, m.Step)))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(errorStyle.Render(m.Err.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(plotStyle.Render(strings.Join(m.Lines, "\n")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ step p • ↑/↓ scale step • r reset • q quit"))
	b.WriteString("\n")
	return b.String()
}
