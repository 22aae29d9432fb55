// Package projectform contains the new-project modal: three inputs
// gated by field validation, with keyboard and mouse submission.
package projectform

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/dmelton/plank/internal/ui/overlay"
	"github.com/dmelton/plank/internal/ui/styles"
	"github.com/dmelton/plank/internal/validate"
)

// SubmitMsg is sent when the form passes validation and is submitted.
type SubmitMsg struct {
	Title       string
	Description string
	People      int
}

// CancelMsg is sent when the form is cancelled (Esc or Cancel button).
type CancelMsg struct{}

// Field indices.
const (
	fieldTitle = iota
	fieldDescription
	fieldPeople
)

// Zone IDs for mouse click detection on the form buttons.
const (
	zoneSubmitButton = "plank-form-submit"
	zoneCancelButton = "plank-form-cancel"
)

const (
	formWidth            = 56
	descriptionHeight    = 4
	minDescriptionLength = 5
	minPeople            = 1
	maxPeople            = 10
)

// Model is the project form state.
type Model struct {
	title       textinput.Model
	description textarea.Model
	people      textinput.Model

	focusedIndex  int // 0..2 = fields, -1 = buttons
	focusedButton int // 0 = submit, 1 = cancel

	width, height   int
	validationError string
}

// New creates the form with focus on the title field.
func New() Model {
	title := textinput.New()
	title.Placeholder = "Project title"
	title.CharLimit = 120
	title.Focus()

	description := textarea.New()
	description.Placeholder = "What is this project about?"
	description.SetHeight(descriptionHeight)
	description.ShowLineNumbers = false

	people := textinput.New()
	people.Placeholder = "1-10"
	people.CharLimit = 2

	return Model{
		title:        title,
		description:  description,
		people:       people,
		focusedIndex: fieldTitle,
	}
}

// Init returns the cursor blink command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the viewport dimensions for overlay positioning.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if z := zone.Get(zoneSubmitButton); z != nil && z.InBounds(msg) {
				return m.submit()
			}
			if z := zone.Get(zoneCancelButton); z != nil && z.InBounds(msg) {
				return m, func() tea.Msg { return CancelMsg{} }
			}
		}
		return m, nil
	}

	return m.forwardToFocused(msg)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return CancelMsg{} }

	case "tab":
		m = m.nextField()
		return m, m.blinkCmd()

	case "shift+tab":
		m = m.prevField()
		return m, m.blinkCmd()

	case "enter":
		// Enter inserts a newline inside the description textarea
		if m.focusedIndex == fieldDescription {
			return m.forwardToFocused(msg)
		}
		if m.focusedIndex == -1 {
			if m.focusedButton == 0 {
				return m.submit()
			}
			return m, func() tea.Msg { return CancelMsg{} }
		}
		m = m.nextField()
		return m, m.blinkCmd()

	case "left", "right", "h", "l":
		if m.focusedIndex == -1 {
			m.focusedButton = 1 - m.focusedButton
			return m, nil
		}
	}

	return m.forwardToFocused(msg)
}

func (m Model) forwardToFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focusedIndex {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	case fieldPeople:
		m.people, cmd = m.people.Update(msg)
	}
	return m, cmd
}

// submit validates the three fields and emits SubmitMsg on success.
// The first failing rule's message is shown; nothing is emitted until
// every rule passes.
func (m Model) submit() (Model, tea.Cmd) {
	m.validationError = ""

	title := strings.TrimSpace(m.title.Value())
	description := m.description.Value()
	peopleRaw := strings.TrimSpace(m.people.Value())

	if !validate.OK(validate.Rule{Value: title, Required: true}) {
		m.validationError = "Title is required"
		return m, nil
	}
	if !validate.OK(validate.Rule{Value: description, Required: true, MinLength: validate.IntPtr(minDescriptionLength)}) {
		m.validationError = "Description must be at least 5 characters"
		return m, nil
	}

	people, err := strconv.Atoi(peopleRaw)
	if err != nil {
		m.validationError = "People must be a number"
		return m, nil
	}
	if !validate.OK(validate.Rule{Value: people, Min: validate.FloatPtr(minPeople), Max: validate.FloatPtr(maxPeople)}) {
		m.validationError = "People must be between 1 and 10"
		return m, nil
	}

	// Full gate across all rules before emitting
	if !validate.All(
		validate.Rule{Value: title, Required: true},
		validate.Rule{Value: description, Required: true, MinLength: validate.IntPtr(minDescriptionLength)},
		validate.Rule{Value: people, Min: validate.FloatPtr(minPeople), Max: validate.FloatPtr(maxPeople)},
	) {
		return m, nil
	}

	return m, func() tea.Msg {
		return SubmitMsg{Title: title, Description: description, People: people}
	}
}

// nextField moves focus forward: title, description, people, buttons.
func (m Model) nextField() Model {
	m = m.blurFocused()
	switch m.focusedIndex {
	case fieldTitle:
		m.focusedIndex = fieldDescription
	case fieldDescription:
		m.focusedIndex = fieldPeople
	case fieldPeople:
		m.focusedIndex = -1
		m.focusedButton = 0
	case -1:
		m.focusedIndex = fieldTitle
	}
	return m.focusCurrent()
}

// prevField moves focus backward.
func (m Model) prevField() Model {
	m = m.blurFocused()
	switch m.focusedIndex {
	case fieldTitle:
		m.focusedIndex = -1
		m.focusedButton = 0
	case fieldDescription:
		m.focusedIndex = fieldTitle
	case fieldPeople:
		m.focusedIndex = fieldDescription
	case -1:
		m.focusedIndex = fieldPeople
	}
	return m.focusCurrent()
}

func (m Model) blurFocused() Model {
	switch m.focusedIndex {
	case fieldTitle:
		m.title.Blur()
	case fieldDescription:
		m.description.Blur()
	case fieldPeople:
		m.people.Blur()
	}
	return m
}

func (m Model) focusCurrent() Model {
	switch m.focusedIndex {
	case fieldTitle:
		m.title.Focus()
	case fieldDescription:
		m.description.Focus()
	case fieldPeople:
		m.people.Focus()
	}
	return m
}

func (m Model) blinkCmd() tea.Cmd {
	if m.focusedIndex == fieldTitle || m.focusedIndex == fieldPeople {
		return textinput.Blink
	}
	if m.focusedIndex == fieldDescription {
		return textarea.Blink
	}
	return nil
}

// Title returns the current title input value.
func (m Model) Title() string {
	return m.title.Value()
}

// ValidationError returns the current validation message, empty when
// the last submit attempt passed or none was made.
func (m Model) ValidationError() string {
	return m.validationError
}

// View renders the form box.
func (m Model) View() string {
	contentWidth := formWidth - 4

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor)
	borderStyle := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)
	contentPadding := lipgloss.NewStyle().PaddingLeft(1)

	var content strings.Builder
	content.WriteString(contentPadding.Render(titleStyle.Render("New Project")))
	content.WriteString("\n")
	content.WriteString(borderStyle.Render(strings.Repeat("─", formWidth)))
	content.WriteString("\n\n")

	m.title.Width = contentWidth - 2
	content.WriteString(contentPadding.Render(styles.RenderFormSection(
		[]string{m.title.View()},
		"Title", "required",
		contentWidth,
		m.focusedIndex == fieldTitle,
		styles.BorderHighlightFocusColor,
	)))
	content.WriteString("\n\n")

	m.description.SetWidth(contentWidth - 2)
	content.WriteString(contentPadding.Render(styles.RenderFormSection(
		strings.Split(m.description.View(), "\n"),
		"Description", "min 5 chars",
		contentWidth,
		m.focusedIndex == fieldDescription,
		styles.BorderHighlightFocusColor,
	)))
	content.WriteString("\n\n")

	m.people.Width = contentWidth - 2
	content.WriteString(contentPadding.Render(styles.RenderFormSection(
		[]string{m.people.View()},
		"People", "1-10",
		contentWidth,
		m.focusedIndex == fieldPeople,
		styles.BorderHighlightFocusColor,
	)))
	content.WriteString("\n\n")

	if m.validationError != "" {
		errorStyle := lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
		content.WriteString(contentPadding.Render(" " + errorStyle.Render(m.validationError)))
		content.WriteString("\n\n")
	}

	content.WriteString(contentPadding.Render(" " + m.renderButtons()))
	content.WriteString("\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(formWidth)

	return boxStyle.Render(content.String())
}

// renderButtons renders the zone-marked Create and Cancel buttons.
func (m Model) renderButtons() string {
	onButtons := m.focusedIndex == -1

	submitStyle := styles.PrimaryButtonStyle
	if onButtons && m.focusedButton == 0 {
		submitStyle = styles.PrimaryButtonFocusedStyle
	}
	submitBtn := zone.Mark(zoneSubmitButton, submitStyle.Render("Create"))

	cancelStyle := styles.SecondaryButtonStyle
	if onButtons && m.focusedButton == 1 {
		cancelStyle = styles.SecondaryButtonFocusedStyle
	}
	cancelBtn := zone.Mark(zoneCancelButton, cancelStyle.Render("Cancel"))

	return submitBtn + "  " + cancelBtn
}

// Overlay renders the form centered on the background view.
func (m Model) Overlay(bg string) string {
	fg := m.View()

	if bg == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, fg)
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, fg, bg)
}
