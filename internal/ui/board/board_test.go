package board

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/dmelton/plank/internal/config"
	"github.com/dmelton/plank/internal/drag"
	"github.com/dmelton/plank/internal/project"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// recordingMover records MoveProject calls for assertions.
type recordingMover struct {
	ids      []string
	statuses []project.Status
}

func (r *recordingMover) MoveProject(id string, status project.Status) {
	r.ids = append(r.ids, id)
	r.statuses = append(r.statuses, status)
}

func sampleProjects() []project.Project {
	return []project.Project{
		{ID: "a", TitleText: "Website", People: 3, Status: project.StatusActive},
		{ID: "b", TitleText: "Migration", People: 1, Status: project.StatusActive},
		{ID: "c", TitleText: "Launch", People: 5, Status: project.StatusFinished},
	}
}

func TestNew_TwoStatusBoundColumns(t *testing.T) {
	m := New(&recordingMover{})

	require.Equal(t, project.StatusActive, m.Column(ColActive).Status())
	require.Equal(t, project.StatusFinished, m.Column(ColFinished).Status())
	require.Equal(t, ColActive, m.FocusedColumn())
}

func TestNewFromConfig_UsesColumnNames(t *testing.T) {
	cols := config.ColumnsConfig{
		Active:   config.ColumnConfig{Name: "Doing", Color: "#FF0000"},
		Finished: config.ColumnConfig{Name: "Done", Color: "#00FF00"},
	}
	m := NewFromConfig(cols, &recordingMover{})
	m = m.SetShowCounts(false)

	require.Equal(t, "Doing", m.Column(ColActive).Title())
	require.Equal(t, "Done", m.Column(ColFinished).Title())
}

func TestSetProjects_SplitsByStatus(t *testing.T) {
	m := New(&recordingMover{})

	m = m.SetProjects(sampleProjects())

	require.Len(t, m.Column(ColActive).Items(), 2)
	require.Len(t, m.Column(ColFinished).Items(), 1)
	require.Equal(t, "Website", m.Column(ColActive).Items()[0].TitleText)
	require.Equal(t, "Launch", m.Column(ColFinished).Items()[0].TitleText)
}

func TestSetProjects_PreservesSnapshotOrder(t *testing.T) {
	m := New(&recordingMover{})

	m = m.SetProjects(sampleProjects())

	active := m.Column(ColActive).Items()
	require.Equal(t, "a", active[0].ID)
	require.Equal(t, "b", active[1].ID)
}

func TestSelectedProject(t *testing.T) {
	m := New(&recordingMover{})
	m = m.SetProjects(sampleProjects())

	selected := m.SelectedProject()

	require.NotNil(t, selected)
	require.Equal(t, "a", selected.ID)
}

func TestSelectedProject_EmptyColumn(t *testing.T) {
	m := New(&recordingMover{})

	require.Nil(t, m.SelectedProject())
}

func TestSelectByID_FocusesOwningColumn(t *testing.T) {
	m := New(&recordingMover{})
	m = m.SetProjects(sampleProjects())

	m, found := m.SelectByID("c")

	require.True(t, found)
	require.Equal(t, ColFinished, m.FocusedColumn())
	require.Equal(t, "c", m.SelectedProject().ID)
}

func TestSelectByID_UnknownID(t *testing.T) {
	m := New(&recordingMover{})
	m = m.SetProjects(sampleProjects())

	_, found := m.SelectByID("nope")

	require.False(t, found)
}

func TestUpdate_FocusMovement(t *testing.T) {
	m := New(&recordingMover{})
	m = m.SetProjects(sampleProjects())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	require.Equal(t, ColFinished, m.FocusedColumn())

	// Already at the right edge
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	require.Equal(t, ColFinished, m.FocusedColumn())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	require.Equal(t, ColActive, m.FocusedColumn())
}

func TestIsEmpty(t *testing.T) {
	m := New(&recordingMover{})
	require.True(t, m.IsEmpty())

	m = m.SetProjects(sampleProjects())
	require.False(t, m.IsEmpty())
}

func TestView_ContainsColumnTitles(t *testing.T) {
	m := New(&recordingMover{})
	m = m.SetProjects(sampleProjects())
	m = m.SetSize(80, 24)

	view := zone.Scan(m.View())

	require.Contains(t, view, "Active Projects (2)")
	require.Contains(t, view, "Finished Projects (1)")
}

func TestView_CountsHiddenWhenDisabled(t *testing.T) {
	m := New(&recordingMover{})
	m = m.SetProjects(sampleProjects())
	m = m.SetSize(80, 24)
	m = m.SetShowCounts(false)

	view := zone.Scan(m.View())

	require.Contains(t, view, "Active Projects")
	require.NotContains(t, view, "Active Projects (2)")
}

func TestView_EmptyColumnsShowPlaceholder(t *testing.T) {
	m := New(&recordingMover{})
	m = m.SetSize(80, 24)

	view := zone.Scan(m.View())

	require.Contains(t, view, "No projects")
}

func TestCardSource_DragStart(t *testing.T) {
	src := cardSource{id: "a"}
	transfer := drag.NewTransfer()
	e := &drag.Event{Transfer: transfer}

	src.DragStart(e)

	require.Equal(t, "a", transfer.Data(drag.FormatText))
	require.Equal(t, drag.EffectMove, transfer.Effect())
}

func TestGesture_DropOnColumnMovesProject(t *testing.T) {
	mover := &recordingMover{}
	m := New(mover)
	m = m.SetProjects(sampleProjects())

	g := drag.NewGesture()
	g.Start(cardSource{id: "a"}, drag.NewTransfer(), 0, 0)

	col := m.Column(ColFinished)
	g.MoveTo(&col, 5, 5)
	require.True(t, col.Receptive())

	g.Drop(5, 5)

	require.Equal(t, []string{"a"}, mover.ids)
	require.Equal(t, []project.Status{project.StatusFinished}, mover.statuses)
	require.False(t, col.Receptive())
}

func TestGesture_ReleaseOffTargetMovesNothing(t *testing.T) {
	mover := &recordingMover{}
	m := New(mover)
	m = m.SetProjects(sampleProjects())

	g := drag.NewGesture()
	g.Start(cardSource{id: "a"}, drag.NewTransfer(), 0, 0)

	col := m.Column(ColFinished)
	g.MoveTo(&col, 5, 5)
	g.MoveTo(nil, 50, 50)
	require.False(t, col.Receptive())

	g.Drop(50, 50)

	require.Empty(t, mover.ids)
}

func TestCancelDrag_ClearsGesture(t *testing.T) {
	mover := &recordingMover{}
	m := New(mover)
	m = m.SetProjects(sampleProjects())

	m.gesture.Start(cardSource{id: "a"}, drag.NewTransfer(), 0, 0)
	require.True(t, m.Dragging())

	m = m.CancelDrag()

	require.False(t, m.Dragging())
	require.Empty(t, mover.ids)
}

func TestApplyColumnConfig_RenamesColumns(t *testing.T) {
	m := New(&recordingMover{})
	m = m.SetShowCounts(false)

	m = m.ApplyColumnConfig(config.ColumnsConfig{
		Active:   config.ColumnConfig{Name: "In Flight"},
		Finished: config.ColumnConfig{Name: "Shipped"},
	})

	require.Equal(t, "In Flight", m.Column(ColActive).Title())
	require.Equal(t, "Shipped", m.Column(ColFinished).Title())
}
