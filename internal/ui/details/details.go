// Package details contains the project detail view component.
package details

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmelton/plank/internal/project"
	"github.com/dmelton/plank/internal/ui/markdown"
	"github.com/dmelton/plank/internal/ui/styles"
)

const (
	maxContentWidth = 80
	headerHeight    = 3
	footerHeight    = 2
)

// CloseMsg is sent when the detail view should be closed.
type CloseMsg struct{}

// Model holds the detail view state.
type Model struct {
	project       project.Project
	viewport      viewport.Model
	mdRenderer    *markdown.Renderer
	markdownStyle string // "dark" or "light"
	width         int
	height        int
	ready         bool
}

// New creates a detail view for the given project.
func New(p project.Project) Model {
	return Model{
		project:       p,
		markdownStyle: "dark",
	}
}

// SetMarkdownStyle sets the markdown rendering style ("dark" or "light").
func (m Model) SetMarkdownStyle(style string) Model {
	if style == "dark" || style == "light" {
		m.markdownStyle = style
	}
	return m
}

// SetSize updates dimensions and initializes the description viewport.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height

	contentWidth := min(width-4, maxContentWidth)
	if contentWidth < 10 {
		contentWidth = 10
	}
	viewportHeight := max(height-headerHeight-footerHeight, 1)

	if r, err := markdown.New(contentWidth, m.markdownStyle); err == nil {
		m.mdRenderer = r
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = viewportHeight
	}
	m.viewport.SetContent(m.renderDescription())
	m.viewport.GotoTop()
	return m
}

// Project returns the displayed project.
func (m Model) Project() project.Project {
	return m.project
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return CloseMsg{} }

		case "j", "down":
			m.viewport.ScrollDown(1)
			return m, nil

		case "k", "up":
			m.viewport.ScrollUp(1)
			return m, nil

		case "g":
			m.viewport.GotoTop()
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the full detail view.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	return m.renderHeader() + "\n" + m.viewport.View() + "\n\n" + m.renderFooter()
}

// renderHeader shows the title line with status badge and headcount.
func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.TextPrimaryColor)

	badgeColor := styles.ProjectActiveColor
	if m.project.Status == project.StatusFinished {
		badgeColor = styles.ProjectFinishedColor
	}
	badgeStyle := lipgloss.NewStyle().Foreground(badgeColor).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	borderStyle := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)

	meta := fmt.Sprintf("%s · %s", m.project.PeopleLabel(),
		m.project.CreatedAt.Format("2006-01-02"))

	header := titleStyle.Render(m.project.TitleText) +
		"  " + badgeStyle.Render(string(m.project.Status)) +
		"\n" + metaStyle.Render(meta)

	divider := borderStyle.Render(strings.Repeat("─", max(m.viewport.Width, 1)))
	return header + "\n" + divider
}

func (m Model) renderFooter() string {
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	return hintStyle.Render("j/k scroll · esc back")
}

// renderDescription renders the project description as markdown,
// falling back to the raw text if rendering fails.
func (m Model) renderDescription() string {
	desc := m.project.Description
	if strings.TrimSpace(desc) == "" {
		return lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true).
			Render("No description")
	}
	if m.mdRenderer == nil {
		return desc
	}
	rendered, err := m.mdRenderer.Render(desc)
	if err != nil {
		return desc
	}
	return strings.TrimRight(rendered, "\n")
}
