package board

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/dmelton/plank/internal/drag"
	"github.com/dmelton/plank/internal/log"
	"github.com/dmelton/plank/internal/project"
	"github.com/dmelton/plank/internal/ui/styles"
)

// Mover moves a project to a new status. Satisfied by *registry.Registry.
type Mover interface {
	MoveProject(id string, status project.Status)
}

// projectDelegate renders project cards as single list rows.
type projectDelegate struct {
	focused *bool // pointer to column's focused state
}

func newProjectDelegate(focused *bool) projectDelegate {
	return projectDelegate{
		focused: focused,
	}
}

// Height returns the height of each item.
func (d projectDelegate) Height() int {
	return 1
}

// Spacing returns the spacing between items.
func (d projectDelegate) Spacing() int {
	return 0
}

// Update handles any delegate-level updates.
func (d projectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders a project card with its title and headcount.
func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(project.Project)
	if !ok {
		return
	}

	isSelected := index == m.Index() && d.focused != nil && *d.focused

	titleStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	peopleStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)

	line := titleStyle.Render(p.TitleText) + peopleStyle.Render(fmt.Sprintf("  %s", p.PeopleLabel()))

	if isSelected {
		line = styles.SelectionIndicatorStyle.Render(">") + line
	} else {
		line = " " + line
	}

	// Each card carries a zone so mouse presses can resolve it
	_, _ = fmt.Fprint(w, zone.Mark(CardZoneID(p.ID), line))
}

// Column is a single status-bound list of project cards. Each column is
// permanently bound to one status at construction and acts as the drop
// zone for that status.
type Column struct {
	title      string
	status     project.Status
	color      lipgloss.TerminalColor // custom color for column border/title
	list       list.Model
	items      []project.Project
	width      int
	height     int
	focused    *bool // pointer so it survives value copies
	showCounts *bool // pointer so it survives value copies (nil = default true)
	receptive  *bool // pointer so drop-hover highlight survives value copies
	mover      Mover
}

// NewColumn creates a column bound to the given status.
func NewColumn(title string, status project.Status, mover Mover) Column {
	// Allocate shared state on heap so pointers survive copies
	focused := new(bool)
	receptive := new(bool)

	delegate := newProjectDelegate(focused)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return Column{
		title:     title,
		status:    status,
		list:      l,
		focused:   focused,
		receptive: receptive,
		mover:     mover,
	}
}

// Status returns the status this column is bound to.
func (c Column) Status() project.Status {
	return c.status
}

// SetSize updates column dimensions.
func (c Column) SetSize(width, height int) Column {
	c.width = width
	c.height = height

	// Size list to fit inside borders (2 chars for left/right borders)
	listWidth := width - 2
	if listWidth < 1 {
		listWidth = 1
	}
	// Account for top/bottom borders and bubbles list internal chrome
	listHeight := height - 5
	if listHeight < 1 {
		listHeight = 1
	}
	c.list.SetSize(listWidth, listHeight)
	return c
}

// SetFocused sets whether this column is focused.
func (c Column) SetFocused(focused bool) Column {
	*c.focused = focused
	return c
}

// SetItems populates the column with projects.
func (c Column) SetItems(projects []project.Project) Column {
	c.items = projects
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = p
	}
	c.list.SetItems(items)
	return c
}

// SetShowCounts sets whether to display counts in the column title.
func (c Column) SetShowCounts(show bool) Column {
	if c.showCounts == nil {
		c.showCounts = new(bool)
	}
	*c.showCounts = show
	return c
}

// SelectedItem returns the currently selected project.
func (c Column) SelectedItem() *project.Project {
	if item := c.list.SelectedItem(); item != nil {
		p := item.(project.Project)
		return &p
	}
	return nil
}

// Items returns all projects in the column.
func (c Column) Items() []project.Project {
	return c.items
}

// SelectByID selects the project with the given ID. Returns true if found.
func (c Column) SelectByID(id string) (Column, bool) {
	for i, p := range c.items {
		if p.ID == id {
			c.list.Select(i)
			return c, true
		}
	}
	return c, false
}

// Update handles messages.
func (c Column) Update(msg tea.Msg) (Column, tea.Cmd) {
	var cmd tea.Cmd
	c.list, cmd = c.list.Update(msg)
	return c, cmd
}

// Title returns the formatted title with optional count for border rendering.
// If showCounts is false, returns just the title without count.
func (c Column) Title() string {
	// Default to showing counts if not explicitly set
	if c.showCounts != nil && !*c.showCounts {
		return c.title
	}
	return fmt.Sprintf("%s (%d)", c.title, len(c.items))
}

// View renders the column content (without border - border applied by board).
func (c Column) View() string {
	if len(c.items) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true).
			Padding(1, 2)
		return emptyStyle.Render("No projects")
	}
	return c.list.View()
}

// SetColor sets the column's border/title color.
func (c Column) SetColor(color lipgloss.TerminalColor) Column {
	c.color = color
	return c
}

// Color returns the column's color for rendering.
func (c Column) Color() lipgloss.TerminalColor {
	if c.color == nil {
		return styles.BorderDefaultColor // Default fallback
	}
	return c.color
}

// Receptive reports whether an accepted drag is hovering this column.
func (c Column) Receptive() bool {
	return c.receptive != nil && *c.receptive
}

// DragOver accepts the hovered payload when it carries a project id in
// the text format. Anything else leaves the default behavior in place
// and the column non-receptive.
func (c *Column) DragOver(e *drag.Event) {
	if e.Transfer != nil && e.Transfer.Data(drag.FormatText) != "" {
		e.PreventDefault()
		*c.receptive = true
		return
	}
	*c.receptive = false
}

// DragLeave clears the drop highlight.
func (c *Column) DragLeave(_ *drag.Event) {
	*c.receptive = false
}

// Drop moves the carried project to this column's status. The payload
// is read from the text format only.
func (c *Column) Drop(e *drag.Event) {
	*c.receptive = false
	if e.Transfer == nil {
		return
	}
	id := e.Transfer.Data(drag.FormatText)
	if id == "" || c.mover == nil {
		return
	}
	log.Debug(log.CatDrag, "drop", "id", id, "status", c.status)
	c.mover.MoveProject(id, c.status)
}
