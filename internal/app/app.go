// Package app wires the board, overlays and registry into the root
// Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/dmelton/plank/internal/config"
	"github.com/dmelton/plank/internal/keys"
	"github.com/dmelton/plank/internal/log"
	"github.com/dmelton/plank/internal/project"
	"github.com/dmelton/plank/internal/pubsub"
	"github.com/dmelton/plank/internal/registry"
	"github.com/dmelton/plank/internal/ui/board"
	"github.com/dmelton/plank/internal/ui/details"
	"github.com/dmelton/plank/internal/ui/logoverlay"
	"github.com/dmelton/plank/internal/ui/projectform"
	"github.com/dmelton/plank/internal/ui/styles"
	"github.com/dmelton/plank/internal/ui/toaster"
	"github.com/dmelton/plank/internal/watcher"
)

const toastDuration = 3 * time.Second

// configChangedMsg signals that the config file on disk was modified.
type configChangedMsg struct{}

// Options configures the root model.
type Options struct {
	ConfigPath string
	Config     config.Config
	Registry   *registry.Registry
	Debug      bool
	Watch      bool // re-apply the config file when it changes
}

// Model is the root application model.
type Model struct {
	opts   Options
	keys   keys.KeyMap
	config config.Config

	registry *registry.Registry
	board    board.Model

	form        projectform.Model
	showForm    bool
	details     details.Model
	showDetails bool

	toaster    toaster.Model
	logOverlay logoverlay.Model
	showHelp   bool

	projectEvents   *pubsub.Broker[[]project.Project]
	projectListener *pubsub.ContinuousListener[[]project.Project]
	logListener     *log.LogListener

	watcher  *watcher.Watcher
	configCh <-chan struct{}

	cancel context.CancelFunc

	width  int
	height int
}

// New builds the root model and registers it as a registry listener.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}

	m := Model{
		opts:     opts,
		keys:     keys.DefaultKeyMap(),
		config:   opts.Config,
		registry: reg,
		board:    board.NewFromConfig(opts.Config.GetColumns(), reg),
		toaster:  toaster.New(),
		cancel:   cancel,
	}
	m.board = m.board.SetShowCounts(opts.Config.UI.ShowCounts)

	// Registry mutations happen inside Update, but the snapshot still
	// travels through the broker so every consumer sees the same
	// message-driven flow.
	m.projectEvents = pubsub.NewBroker[[]project.Project]()
	m.projectListener = pubsub.NewContinuousListener(ctx, m.projectEvents)
	reg.AddListener(func(projects []project.Project) {
		m.projectEvents.Publish(pubsub.UpdatedEvent, projects)
	})

	if opts.Debug {
		m.logOverlay = logoverlay.New()
		m.logListener = log.NewListener(ctx)
	}

	if opts.Watch && opts.Config.AutoReload && opts.ConfigPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.ConfigPath))
		if err != nil {
			log.ErrorErr(log.CatWatcher, "Failed to create config watcher", err)
		} else if ch, err := w.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "Failed to start config watcher", err)
		} else {
			m.watcher = w
			m.configCh = ch
		}
	}

	m.board = m.board.SetProjects(reg.Snapshot())
	return m
}

// Init starts the background listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.projectListener.Listen()}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.configCh != nil {
		cmds = append(cmds, waitForConfigChange(m.configCh))
	}
	return tea.Batch(cmds...)
}

// waitForConfigChange blocks on the watcher channel and turns the next
// notification into a message. Re-issued after each receive.
func waitForConfigChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return configChangedMsg{}
	}
}

// Update routes messages to the active component.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case pubsub.Event[[]project.Project]:
		m.board = m.board.SetProjects(msg.Payload)
		return m, m.projectListener.Listen()

	case log.LogEvent:
		m.logOverlay.Refresh()
		return m, m.logListener.Listen()

	case configChangedMsg:
		return m.reloadConfig()

	case projectform.SubmitMsg:
		m.showForm = false
		m.registry.AddProject(msg.Title, msg.Description, msg.People)
		log.Info(log.CatApp, "Project added", "title", msg.Title)
		return m.showToast("Project added", toaster.StyleSuccess)

	case projectform.CancelMsg:
		m.showForm = false
		return m, nil

	case details.CloseMsg:
		m.showDetails = false
		return m, nil

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Hide()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	m.board = m.board.SetSize(msg.Width, m.boardHeight())
	m.form = m.form.SetSize(msg.Width, msg.Height)
	m.details = m.details.SetSize(msg.Width, msg.Height)
	m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
	m.logOverlay.SetSize(msg.Width, msg.Height)
	return m
}

// boardHeight leaves a row for the status bar when it is shown.
func (m Model) boardHeight() int {
	if m.config.UI.ShowStatusBar {
		return m.height - 1
	}
	return m.height
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.logOverlay.Visible():
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	case m.showForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case m.showDetails:
		return m, nil
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays get the keyboard while they are open.
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}
	if m.showForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	if m.showDetails {
		var cmd tea.Cmd
		m.details, cmd = m.details.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		if m.board.Dragging() {
			m.board = m.board.CancelDrag()
			return m, nil
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		if m.opts.Debug {
			m.logOverlay.Toggle()
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.NewProject):
		m.showForm = true
		m.form = projectform.New().SetSize(m.width, m.height)
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Enter):
		p := m.board.SelectedProject()
		if p == nil {
			return m, nil
		}
		m.showDetails = true
		m.details = details.New(*p).
			SetMarkdownStyle(m.config.UI.MarkdownStyle).
			SetSize(m.width, m.height)
		return m, nil

	case key.Matches(msg, m.keys.Move):
		p := m.board.SelectedProject()
		if p == nil {
			return m, nil
		}
		m.registry.MoveProject(p.ID, p.Status.Opposite())
		m.board, _ = m.board.SelectByID(p.ID)
		label := "Active"
		if p.Status.Opposite() == project.StatusFinished {
			label = "Finished"
		}
		return m.showToast("Moved to "+label, toaster.StyleInfo)

	case key.Matches(msg, m.keys.ToggleStatus):
		m.config.UI.ShowStatusBar = !m.config.UI.ShowStatusBar
		m.board = m.board.SetSize(m.width, m.boardHeight())
		m.persistUI()
		return m, nil

	case key.Matches(msg, m.keys.ToggleCounts):
		m.config.UI.ShowCounts = !m.config.UI.ShowCounts
		m.board = m.board.SetShowCounts(m.config.UI.ShowCounts)
		m.persistUI()
		return m, nil
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.showForm {
		m.form, cmd = m.form.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.showDetails {
		m.details, cmd = m.details.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// reloadConfig re-reads the config file and applies theme and column
// changes without restarting.
func (m Model) reloadConfig() (tea.Model, tea.Cmd) {
	cfg, err := config.Load(m.opts.ConfigPath)
	var next tea.Cmd
	if m.configCh != nil {
		next = waitForConfigChange(m.configCh)
	}
	if err != nil {
		log.ErrorErr(log.CatConfig, "Config reload failed", err)
		model, cmd := m.showToast("Config error: "+err.Error(), toaster.StyleError)
		return model, tea.Batch(cmd, next)
	}

	if err := styles.ApplyTheme(themeFor(cfg.Theme)); err != nil {
		log.ErrorErr(log.CatConfig, "Theme apply failed", err)
		model, cmd := m.showToast("Theme error: "+err.Error(), toaster.StyleError)
		return model, tea.Batch(cmd, next)
	}

	m.config = cfg
	m.board = m.board.
		ApplyColumnConfig(cfg.GetColumns()).
		SetShowCounts(cfg.UI.ShowCounts).
		SetSize(m.width, m.boardHeight())

	log.Info(log.CatConfig, "Config reloaded", "path", m.opts.ConfigPath)
	model, cmd := m.showToast("Config reloaded", toaster.StyleInfo)
	return model, tea.Batch(cmd, next)
}

// themeFor converts the config theme into the styles package's form.
func themeFor(t config.ThemeConfig) styles.ThemeConfig {
	return styles.ThemeConfig{
		Preset: t.Preset,
		Mode:   t.Mode,
		Colors: t.FlattenedColors(),
	}
}

func (m Model) showToast(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	m.toaster = m.toaster.Show(message, style)
	return m, toaster.ScheduleDismiss(toastDuration)
}

// persistUI writes the UI toggles back to the config file.
func (m Model) persistUI() {
	if m.opts.ConfigPath == "" {
		return
	}
	if err := config.SaveUI(m.opts.ConfigPath, m.config.UI); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to save UI settings", err)
	}
}

// View renders the board with any overlays stacked on top.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var view string
	switch {
	case m.showDetails:
		view = m.details.View()
	default:
		view = m.board.View()
		if m.config.UI.ShowStatusBar {
			view = lipgloss.JoinVertical(lipgloss.Left, view, m.statusBar())
		}
	}

	if m.showForm {
		view = m.form.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

// statusBar renders the single-line footer with counts and key hints.
func (m Model) statusBar() string {
	active, finished := 0, 0
	for _, p := range m.registry.Snapshot() {
		if p.Status == project.StatusFinished {
			finished++
		} else {
			active++
		}
	}

	counts := fmt.Sprintf("%d active · %d finished", active, finished)
	hints := "n: new  enter: details  m: move  ?: help  q: quit"
	if m.showHelp {
		hints = "h/l: columns  j/k: select  n: new  enter: details  m: move  w: status bar  c: counts  esc: back  q: quit"
	}

	bar := counts + "    " + hints
	return styles.StatusBarStyle.Width(m.width).Render(bar)
}

// Close releases background resources. Call after the program exits.
func (m Model) Close() {
	m.cancel()
	if m.watcher != nil {
		if err := m.watcher.Stop(); err != nil {
			log.ErrorErr(log.CatWatcher, "Failed to stop watcher", err)
		}
	}
	m.projectEvents.Close()
}
