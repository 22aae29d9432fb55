package app

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/dmelton/plank/internal/config"
	"github.com/dmelton/plank/internal/log"
	"github.com/dmelton/plank/internal/project"
	"github.com/dmelton/plank/internal/pubsub"
	"github.com/dmelton/plank/internal/registry"
	"github.com/dmelton/plank/internal/ui/details"
	"github.com/dmelton/plank/internal/ui/projectform"
	"github.com/dmelton/plank/internal/ui/toaster"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()

	logPath := filepath.Join(os.TempDir(), "plank-app-test.log")
	cleanup, err := log.Init(logPath)
	if err != nil {
		panic(err)
	}

	code := m.Run()
	cleanup()
	os.Remove(logPath)
	os.Exit(code)
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(Options{
		Config:   config.Defaults(),
		Registry: registry.New(),
	})
	t.Cleanup(m.Close)

	resized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return resized.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_ShowsExistingProjects(t *testing.T) {
	reg := registry.New()
	reg.AddProject("Website", "desc", 2)

	m := New(Options{Config: config.Defaults(), Registry: reg})
	defer m.Close()
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = resized.(Model)

	require.Contains(t, m.View(), "Website")
}

func TestView_BeforeResizeShowsLoading(t *testing.T) {
	m := New(Options{Config: config.Defaults(), Registry: registry.New()})
	defer m.Close()

	require.Equal(t, "Loading...", m.View())
}

func TestView_ShowsColumnTitlesAndStatusBar(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	require.Contains(t, view, "Active Projects")
	require.Contains(t, view, "Finished Projects")
	require.Contains(t, view, "0 active · 0 finished")
}

func TestUpdate_SnapshotEventRefreshesBoard(t *testing.T) {
	m := newTestModel(t)

	snap := []project.Project{project.New("Rollout", "", 1)}
	updated, _ := m.Update(pubsub.Event[[]project.Project]{
		Type:    pubsub.UpdatedEvent,
		Payload: snap,
	})

	require.Contains(t, updated.(Model).View(), "Rollout")
}

func TestUpdate_NewProjectKeyOpensForm(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(keyMsg("n"))
	m = updated.(Model)

	require.True(t, m.showForm)
	require.Contains(t, m.View(), "New Project")
}

func TestUpdate_SubmitAddsProjectAndShowsToast(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("n"))
	m = updated.(Model)

	updated, _ = m.Update(projectform.SubmitMsg{
		Title:       "Launch",
		Description: "Ship the launch plan",
		People:      4,
	})
	m = updated.(Model)

	require.False(t, m.showForm)
	require.Equal(t, 1, m.registry.Len())
	require.True(t, m.toaster.Visible())
	require.Contains(t, m.View(), "Project added")
}

func TestUpdate_CancelClosesForm(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("n"))
	m = updated.(Model)

	updated, _ = m.Update(projectform.CancelMsg{})
	m = updated.(Model)

	require.False(t, m.showForm)
	require.Zero(t, m.registry.Len())
}

func TestUpdate_EnterOpensDetails(t *testing.T) {
	m := newTestModel(t)
	m.registry.AddProject("Website", "A description", 2)
	updated, _ := m.Update(pubsub.Event[[]project.Project]{
		Type:    pubsub.UpdatedEvent,
		Payload: m.registry.Snapshot(),
	})
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.True(t, m.showDetails)
	require.Contains(t, m.View(), "Website")
}

func TestUpdate_EnterWithoutSelectionIsNoOp(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.False(t, m.showDetails)
}

func TestUpdate_DetailsCloseReturnsToBoard(t *testing.T) {
	m := newTestModel(t)
	m.showDetails = true

	updated, _ := m.Update(details.CloseMsg{})
	m = updated.(Model)

	require.False(t, m.showDetails)
}

func TestUpdate_MoveKeyMovesSelectedProject(t *testing.T) {
	m := newTestModel(t)
	m.registry.AddProject("Website", "", 2)
	updated, _ := m.Update(pubsub.Event[[]project.Project]{
		Type:    pubsub.UpdatedEvent,
		Payload: m.registry.Snapshot(),
	})
	m = updated.(Model)

	updated, _ = m.Update(keyMsg("m"))
	m = updated.(Model)

	require.Equal(t, project.StatusFinished, m.registry.Snapshot()[0].Status)
	require.True(t, m.toaster.Visible())
}

func TestUpdate_MoveWithEmptyBoardIsNoOp(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(keyMsg("m"))
	m = updated.(Model)

	require.False(t, m.toaster.Visible())
}

func TestUpdate_ToggleStatusBar(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.config.UI.ShowStatusBar)

	updated, _ := m.Update(keyMsg("w"))
	m = updated.(Model)

	require.False(t, m.config.UI.ShowStatusBar)
	require.NotContains(t, m.View(), "0 active")
}

func TestUpdate_ToggleCounts(t *testing.T) {
	m := newTestModel(t)
	require.Contains(t, m.View(), "Active Projects (0)")

	updated, _ := m.Update(keyMsg("c"))
	m = updated.(Model)

	view := m.View()
	require.Contains(t, view, "Active Projects")
	require.NotContains(t, view, "Active Projects (0)")
}

func TestUpdate_TogglesPersistToConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	m := New(Options{
		ConfigPath: path,
		Config:     config.Defaults(),
		Registry:   registry.New(),
	})
	defer m.Close()
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = resized.(Model)

	updated, _ := m.Update(keyMsg("c"))
	m = updated.(Model)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.False(t, cfg.UI.ShowCounts)
}

func TestUpdate_QuitKey(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(keyMsg("q"))

	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_HelpToggle(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(keyMsg("?"))
	m = updated.(Model)
	require.Contains(t, m.View(), "w: status bar")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	require.NotContains(t, m.View(), "w: status bar")
}

func TestUpdate_ToastDismiss(t *testing.T) {
	m := newTestModel(t)
	m.toaster = m.toaster.Show("Hello", toaster.StyleInfo)

	updated, _ := m.Update(toaster.DismissMsg{})
	m = updated.(Model)

	require.False(t, m.toaster.Visible())
}

func TestUpdate_LogsKeyIgnoredWithoutDebug(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m = updated.(Model)

	require.False(t, m.logOverlay.Visible())
}

func TestUpdate_LogsKeyTogglesOverlayInDebug(t *testing.T) {
	m := New(Options{
		Config:   config.Defaults(),
		Registry: registry.New(),
		Debug:    true,
	})
	defer m.Close()
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = resized.(Model)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m = updated.(Model)

	require.True(t, m.logOverlay.Visible())
}

func TestReloadConfig_AppliesColumnNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns:\n  active:\n    name: Doing\n"), 0o600))

	m := New(Options{
		ConfigPath: path,
		Config:     config.Defaults(),
		Registry:   registry.New(),
	})
	defer m.Close()
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = resized.(Model)

	updated, _ := m.Update(configChangedMsg{})
	m = updated.(Model)

	require.Contains(t, m.View(), "Doing")
	require.Contains(t, m.View(), "Config reloaded")
}

func TestReloadConfig_BadFileShowsErrorToast(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: [not a map"), 0o600))

	m := New(Options{
		ConfigPath: path,
		Config:     config.Defaults(),
		Registry:   registry.New(),
	})
	defer m.Close()
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = resized.(Model)

	updated, _ := m.Update(configChangedMsg{})
	m = updated.(Model)

	require.Contains(t, m.View(), "Config error")
}
