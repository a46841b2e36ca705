package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/lazytree/internal/engine"
	"github.com/rshade/lazytree/internal/tree"
)

// Default dimensions before the first WindowSizeMsg arrives.
const (
	browseDefaultWidth  = 80
	browseDefaultHeight = 24
)

// row is one rendered line of the tree: a node plus its depth and the id of
// the enclosing node (empty for top-level rows).
type row struct {
	node     tree.Node
	depth    int
	parentID string
}

// loadDoneMsg reports that a controller operation finished. The model
// re-reads the decorated snapshot regardless of err; failures surface as
// error placeholders.
type loadDoneMsg struct {
	parentID string
	err      error
}

// BrowseModel is the Bubble Tea model for the interactive tree browser.
type BrowseModel struct {
	ctl *engine.Controller
	ctx context.Context

	expanded map[string]bool
	prevList []string
	rows     []row
	cursor   int

	spin     spinner.Model
	width    int
	height   int
	title    string
	lastErr  error
	quitting bool
}

// NewBrowseModel creates a browser over the given controller. title is shown
// in the header (typically the data source).
func NewBrowseModel(ctx context.Context, ctl *engine.Controller, title string) BrowseModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := BrowseModel{
		ctl:      ctl,
		ctx:      ctx,
		expanded: make(map[string]bool),
		spin:     sp,
		width:    browseDefaultWidth,
		height:   browseDefaultHeight,
		title:    title,
	}
	m.rebuildRows()
	return m
}

// Init kicks off the root load and the spinner.
func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.loadRootCmd(), m.spin.Tick)
}

// Update handles key, resize, spinner, and load-completion messages.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadDoneMsg:
		m.lastErr = msg.err
		m.rebuildRows()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		m.rebuildRows()
		return m, cmd
	}
	return m, nil
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", " ", "right", "l":
		return m.toggleCursor()

	case "left", "h":
		return m.collapseCursor()

	case "r":
		return m.retryCursor()

	case "c":
		m.ctl.ClearCache()
		m.rebuildRows()
		return m, nil

	case "R":
		return m, m.reloadRootCmd()
	}
	return m, nil
}

// toggleCursor expands or collapses the node under the cursor. Newly
// expanded ids — computed by diffing the expansion lists, per the
// presentation contract — are forwarded to the controller.
func (m BrowseModel) toggleCursor() (tea.Model, tea.Cmd) {
	r, ok := m.cursorRow()
	if !ok || r.node.IsPlaceholder() {
		return m, nil
	}

	m.expanded[r.node.ID] = !m.expanded[r.node.ID]
	m.rebuildRows()

	next := m.expansionList()
	added := DiffExpanded(m.prevList, next)
	m.prevList = next

	cmds := make([]tea.Cmd, 0, len(added))
	for _, id := range added {
		cmds = append(cmds, m.expandCmd(id))
	}
	return m, tea.Batch(cmds...)
}

func (m BrowseModel) collapseCursor() (tea.Model, tea.Cmd) {
	r, ok := m.cursorRow()
	if !ok {
		return m, nil
	}
	id := r.node.ID
	if r.node.IsPlaceholder() || !m.expanded[id] {
		id = r.parentID
	}
	if id == "" {
		return m, nil
	}
	delete(m.expanded, id)
	m.rebuildRows()
	m.prevList = m.expansionList()
	return m, nil
}

// retryCursor re-attempts the failed fetch for the node under the cursor,
// accepting the key on either the errored node or its error placeholder.
func (m BrowseModel) retryCursor() (tea.Model, tea.Cmd) {
	r, ok := m.cursorRow()
	if !ok {
		return m, nil
	}
	id := r.node.ID
	if r.node.Placeholder == tree.PlaceholderError {
		id = r.parentID
	}
	if _, errored := m.ctl.Err(id); !errored {
		return m, nil
	}
	return m, m.retryCmd(id)
}

func (m BrowseModel) cursorRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// expansionList returns the currently-expanded ids in render order.
func (m BrowseModel) expansionList() []string {
	var out []string
	for _, r := range m.rows {
		if !r.node.IsPlaceholder() && m.expanded[r.node.ID] {
			out = append(out, r.node.ID)
		}
	}
	return out
}

// rebuildRows flattens the decorated snapshot into visible rows, descending
// only into expanded nodes.
func (m *BrowseModel) rebuildRows() {
	m.rows = m.rows[:0]
	m.appendRows(m.ctl.Decorated(), 0, "")
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BrowseModel) appendRows(nodes []tree.Node, depth int, parentID string) {
	for _, n := range nodes {
		m.rows = append(m.rows, row{node: n, depth: depth, parentID: parentID})
		if n.IsPlaceholder() {
			continue
		}
		if m.expanded[n.ID] {
			m.appendRows(n.Children, depth+1, n.ID)
		}
	}
}

func (m BrowseModel) loadRootCmd() tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{parentID: "", err: m.ctl.LoadChildren(m.ctx, "")}
	}
}

func (m BrowseModel) reloadRootCmd() tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{parentID: "", err: m.ctl.Retry(m.ctx, "")}
	}
}

func (m BrowseModel) expandCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{parentID: id, err: m.ctl.HandleExpansion(m.ctx, id, m.ctl.Snapshot())}
	}
}

func (m BrowseModel) retryCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{parentID: id, err: m.ctl.Retry(m.ctx, id)}
	}
}
