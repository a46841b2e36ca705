package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/lazytree/internal/tree"
)

// indentWidth is the number of spaces per tree depth level.
const indentWidth = 2

//nolint:gochecknoglobals // lipgloss styles are conventionally package-level
var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	loadingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the tree browser.
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("lazytree: "+m.title) + "\n\n")

	if len(m.rows) == 0 {
		b.WriteString(loadingStyle.Render(m.spin.View()+" loading…") + "\n")
	}

	visible := m.visibleWindow()
	for i, r := range visible.rows {
		line := m.renderRow(r)
		if visible.offset+i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + m.statusLine() + "\n")
	b.WriteString(helpStyle.Render(
		"↑/↓ move · enter expand/collapse · r retry · R refresh · c clear cache · q quit"))
	return b.String()
}

// window is the slice of rows that fits the viewport.
type window struct {
	rows   []row
	offset int
}

// visibleWindow keeps the cursor inside the viewport, scrolling as needed.
func (m BrowseModel) visibleWindow() window {
	// Header, blank line, blank line, status, help.
	avail := m.height - 5
	if avail < 1 {
		avail = 1
	}
	if len(m.rows) <= avail {
		return window{rows: m.rows}
	}
	offset := m.cursor - avail/2
	if offset < 0 {
		offset = 0
	}
	if offset > len(m.rows)-avail {
		offset = len(m.rows) - avail
	}
	return window{rows: m.rows[offset : offset+avail], offset: offset}
}

func (m BrowseModel) renderRow(r row) string {
	indent := strings.Repeat(" ", r.depth*indentWidth)

	switch r.node.Placeholder {
	case tree.PlaceholderLoading:
		return indent + loadingStyle.Render(m.spin.View()+" "+r.node.Label)
	case tree.PlaceholderError:
		return indent + errorStyle.Render("✗ "+r.node.Label+" (r to retry)")
	case tree.PlaceholderPending:
		return indent + pendingStyle.Render(r.node.Label)
	case tree.PlaceholderNone:
	}

	arrow := "  "
	if m.expandable(r.node) {
		if m.expanded[r.node.ID] {
			arrow = "▾ "
		} else {
			arrow = "▸ "
		}
	}
	return indent + arrow + r.node.Label
}

// expandable reports whether a node has children to show: loaded ones, a
// decorated placeholder child, or a non-zero count hint.
func (m BrowseModel) expandable(n tree.Node) bool {
	if len(n.Children) > 0 {
		return true
	}
	hint, ok := n.CountHint()
	return ok && hint > 0
}

func (m BrowseModel) statusLine() string {
	loading := len(m.ctl.Loading())
	errored := len(m.ctl.Errors())

	parts := []string{fmt.Sprintf("%d rows", len(m.rows))}
	if loading > 0 {
		parts = append(parts, loadingStyle.Render(fmt.Sprintf("%d loading", loading)))
	}
	if errored > 0 {
		parts = append(parts, errorStyle.Render(fmt.Sprintf("%d failed", errored)))
	}
	if m.lastErr != nil {
		parts = append(parts, errorStyle.Render(m.lastErr.Error()))
	}
	return strings.Join(parts, " · ")
}
