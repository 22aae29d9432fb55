// Package board contains the two-column task board component. The left
// column lists active projects, the right column finished ones; cards
// move between them via the keyboard or a mouse drag gesture.
package board

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/dmelton/plank/internal/config"
	"github.com/dmelton/plank/internal/drag"
	"github.com/dmelton/plank/internal/log"
	"github.com/dmelton/plank/internal/project"
	"github.com/dmelton/plank/internal/ui/styles"
)

// Column indices. The board always has exactly these two columns.
const (
	ColActive   = 0
	ColFinished = 1
)

const cardZonePrefix = "plank-card:"

// CardZoneID returns the bubblezone id for a project card.
func CardZoneID(projectID string) string {
	return cardZonePrefix + projectID
}

func columnZoneID(idx int) string {
	return fmt.Sprintf("plank-col:%d", idx)
}

// cardSource is the drag source for a single project card. It attaches
// the project id as the text payload when the gesture starts.
type cardSource struct {
	id string
}

// DragStart loads the transfer with the card's project id.
func (s cardSource) DragStart(e *drag.Event) {
	if e.Transfer == nil {
		return
	}
	e.Transfer.SetData(drag.FormatText, s.id)
	e.Transfer.SetEffect(drag.EffectMove)
}

// DragEnd carries no state change; highlight cleanup happens on the
// target side.
func (s cardSource) DragEnd(_ *drag.Event) {}

// Model holds the board state: two status-bound columns and the
// in-flight drag gesture, if any.
type Model struct {
	columns []Column
	gesture *drag.Gesture
	focused int
	width   int
	height  int
}

// New creates a board with default column presentation.
func New(mover Mover) Model {
	return NewFromConfig(config.DefaultColumns(), mover)
}

// NewFromConfig creates a board with column names and colors from
// configuration. Statuses are fixed: the first column is always bound
// to Active, the second to Finished.
func NewFromConfig(cols config.ColumnsConfig, mover Mover) Model {
	active := NewColumn(cols.Active.Name, project.StatusActive, mover)
	if cols.Active.Color != "" {
		active = active.SetColor(lipgloss.Color(cols.Active.Color))
	}
	finished := NewColumn(cols.Finished.Name, project.StatusFinished, mover)
	if cols.Finished.Color != "" {
		finished = finished.SetColor(lipgloss.Color(cols.Finished.Color))
	}

	return Model{
		columns: []Column{active, finished},
		gesture: drag.NewGesture(),
		focused: ColActive,
	}
}

// ApplyColumnConfig re-applies column names and colors after a config
// reload, leaving items and selection untouched.
func (m Model) ApplyColumnConfig(cols config.ColumnsConfig) Model {
	m.columns[ColActive].title = cols.Active.Name
	if cols.Active.Color != "" {
		m.columns[ColActive] = m.columns[ColActive].SetColor(lipgloss.Color(cols.Active.Color))
	}
	m.columns[ColFinished].title = cols.Finished.Name
	if cols.Finished.Color != "" {
		m.columns[ColFinished] = m.columns[ColFinished].SetColor(lipgloss.Color(cols.Finished.Color))
	}
	return m
}

// SetProjects splits a registry snapshot into the two columns by
// status, preserving snapshot order within each column.
func (m Model) SetProjects(projects []project.Project) Model {
	var active, finished []project.Project
	for _, p := range projects {
		switch p.Status {
		case project.StatusFinished:
			finished = append(finished, p)
		default:
			active = append(active, p)
		}
	}
	m.columns[ColActive] = m.columns[ColActive].SetItems(active)
	m.columns[ColFinished] = m.columns[ColFinished].SetItems(finished)
	return m
}

// SetSize updates board dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height

	colWidth := width / len(m.columns)
	for i := range m.columns {
		m.columns[i] = m.columns[i].SetSize(colWidth, height)
	}
	return m
}

// SetShowCounts sets whether to display counts in column titles.
func (m Model) SetShowCounts(show bool) Model {
	for i := range m.columns {
		m.columns[i] = m.columns[i].SetShowCounts(show)
	}
	return m
}

// SelectedProject returns the currently selected project, nil when the
// focused column is empty.
func (m Model) SelectedProject() *project.Project {
	if m.focused < 0 || m.focused >= len(m.columns) {
		return nil
	}
	return m.columns[m.focused].SelectedItem()
}

// FocusedColumn returns the currently focused column index.
func (m Model) FocusedColumn() int {
	return m.focused
}

// SetFocus sets the focused column.
func (m Model) SetFocus(col int) Model {
	if col >= 0 && col < len(m.columns) {
		m.focused = col
	}
	return m
}

// Column returns the column at the given index.
func (m Model) Column(idx int) Column {
	if idx < 0 || idx >= len(m.columns) {
		return Column{}
	}
	return m.columns[idx]
}

// SelectByID finds a project by ID across both columns and selects it.
func (m Model) SelectByID(id string) (Model, bool) {
	for i := range m.columns {
		col, found := m.columns[i].SelectByID(id)
		if found {
			m.columns[i] = col
			m.focused = i
			return m, true
		}
	}
	return m, false
}

// IsEmpty returns true if both columns have no items.
func (m Model) IsEmpty() bool {
	for _, col := range m.columns {
		if len(col.Items()) > 0 {
			return false
		}
	}
	return true
}

// Dragging reports whether a drag gesture is in flight.
func (m Model) Dragging() bool {
	return m.gesture.Dragging()
}

// CancelDrag aborts any in-flight drag gesture.
func (m Model) CancelDrag() Model {
	m.gesture.Cancel()
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "h", "left":
			if m.focused > 0 {
				m.focused--
			}
			return m, nil

		case "l", "right":
			if m.focused < len(m.columns)-1 {
				m.focused++
			}
			return m, nil

		case "j", "down", "k", "up":
			if m.focused >= 0 && m.focused < len(m.columns) {
				col := m.columns[m.focused]
				col, _ = col.Update(msg)
				m.columns[m.focused] = col
			}
			return m, nil
		}
	}
	return m, nil
}

// handleMouse drives the drag gesture from terminal mouse events:
// press over a card starts a drag, motion updates the hovered target,
// release drops or cancels.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if id, colIdx, ok := m.cardAt(msg); ok {
			m.focused = colIdx
			m.columns[colIdx], _ = m.columns[colIdx].SelectByID(id)
			m.gesture.Start(cardSource{id: id}, drag.NewTransfer(), msg.X, msg.Y)
			log.Debug(log.CatDrag, "drag start", "id", id)
		}
		return m, nil

	case tea.MouseActionMotion:
		if !m.gesture.Dragging() {
			return m, nil
		}
		m.gesture.MoveTo(m.targetAt(msg), msg.X, msg.Y)
		return m, nil

	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft || !m.gesture.Dragging() {
			return m, nil
		}
		// Resolve the target under the release point before dropping;
		// some terminals deliver no motion event for small drags.
		m.gesture.MoveTo(m.targetAt(msg), msg.X, msg.Y)
		m.gesture.Drop(msg.X, msg.Y)
		return m, nil
	}

	return m, nil
}

// cardAt resolves the project card under the pointer, returning its id
// and column index.
func (m Model) cardAt(msg tea.MouseMsg) (string, int, bool) {
	for colIdx := range m.columns {
		for _, p := range m.columns[colIdx].Items() {
			if z := zone.Get(CardZoneID(p.ID)); z != nil && z.InBounds(msg) {
				return p.ID, colIdx, true
			}
		}
	}
	return "", 0, false
}

// targetAt resolves the drop zone under the pointer, nil when the
// pointer is over neither column.
func (m Model) targetAt(msg tea.MouseMsg) drag.Target {
	for i := range m.columns {
		if z := zone.Get(columnZoneID(i)); z != nil && z.InBounds(msg) {
			return &m.columns[i]
		}
	}
	return nil
}

// View renders the board. A column hovered by an accepted drag renders
// with the drop highlight color.
func (m Model) View() string {
	var cols []string

	contentHeight := m.height
	if contentHeight < 3 {
		contentHeight = 3
	}

	for i := range m.columns {
		col := m.columns[i]
		isFocused := i == m.focused
		col = col.SetFocused(isFocused)

		colColor := col.Color()
		borderFocused := isFocused
		if col.Receptive() {
			colColor = styles.DropReceptiveColor
			borderFocused = true
		}

		rendered := styles.RenderWithTitleBorder(
			col.View(),
			col.Title(),
			col.width,
			contentHeight,
			borderFocused,
			colColor,
			colColor,
		)
		cols = append(cols, zone.Mark(columnZoneID(i), rendered))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
