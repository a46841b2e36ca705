package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lazytree/internal/engine"
	"github.com/rshade/lazytree/internal/provider"
	"github.com/rshade/lazytree/internal/tree"
)

// testModel builds a browser over a static provider with the root already
// loaded, so tests exercise the model synchronously.
func testModel(t *testing.T) BrowseModel {
	t.Helper()
	p := provider.NewStatic(map[string][]tree.Node{
		"": {
			{ID: "a", Label: "Alpha", ChildrenCount: tree.Count(1)},
			{ID: "b", Label: "Beta", ChildrenCount: tree.Count(0)},
		},
		"a": {{ID: "a/1", Label: "One", ChildrenCount: tree.Count(0)}},
	})
	ctl := engine.NewController(p)
	require.NoError(t, ctl.LoadChildren(context.Background(), ""))
	return NewBrowseModel(context.Background(), ctl, "test")
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m BrowseModel, msg tea.Msg) (BrowseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(BrowseModel)
	require.True(t, ok)
	return bm, cmd
}

func TestBrowseModelRows(t *testing.T) {
	m := testModel(t)

	require.Len(t, m.rows, 2)
	assert.Equal(t, "a", m.rows[0].node.ID)
	assert.Equal(t, "b", m.rows[1].node.ID)
}

func TestBrowseModelNavigation(t *testing.T) {
	m := testModel(t)

	m, _ = update(t, m, keyMsg("j"))
	assert.Equal(t, 1, m.cursor)

	// Never past the end.
	m, _ = update(t, m, keyMsg("j"))
	assert.Equal(t, 1, m.cursor)

	m, _ = update(t, m, keyMsg("k"))
	assert.Equal(t, 0, m.cursor)
	m, _ = update(t, m, keyMsg("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestBrowseModelExpansion(t *testing.T) {
	m := testModel(t)

	// Expanding "a" issues a command that drives the controller.
	m, cmd := update(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	msg := cmd()
	m, _ = update(t, m, msg)

	// The fetched child is now a visible row under its parent.
	require.Len(t, m.rows, 3)
	assert.Equal(t, "a/1", m.rows[1].node.ID)
	assert.Equal(t, 1, m.rows[1].depth)
	assert.Equal(t, "a", m.rows[1].parentID)

	t.Run("CollapseHidesChildren", func(t *testing.T) {
		collapsed, _ := update(t, m, keyMsg("enter"))
		assert.Len(t, collapsed.rows, 2)
	})

	t.Run("ReExpandShowsChildrenAgain", func(t *testing.T) {
		collapsed, _ := update(t, m, keyMsg("enter"))
		reexpanded, cmd := update(t, collapsed, keyMsg("enter"))
		if cmd != nil {
			reexpanded, _ = update(t, reexpanded, cmd())
		}
		assert.Len(t, reexpanded.rows, 3)
	})
}

func TestBrowseModelLeafExpansionNoop(t *testing.T) {
	m := testModel(t)

	m, _ = update(t, m, keyMsg("j")) // onto leaf "b"
	m, cmd := update(t, m, keyMsg("enter"))
	if cmd != nil {
		m, _ = update(t, m, cmd())
	}
	assert.Len(t, m.rows, 2, "leaf expansion adds no rows")
}

func TestBrowseModelView(t *testing.T) {
	m := testModel(t)

	out := m.View()
	assert.Contains(t, out, "lazytree: test")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Beta")
	assert.Contains(t, out, "q quit")
}

func TestBrowseModelErrorPlaceholderAndRetry(t *testing.T) {
	p := provider.NewStatic(map[string][]tree.Node{
		"":    {{ID: "bad", Label: "Bad", ChildrenCount: tree.Count(1)}},
		"bad": {{ID: "bad/1", Label: "Fixed", ChildrenCount: tree.Count(0)}},
	}, provider.FailOn("bad", errors.New("upstream exploded")))

	ctl := engine.NewController(p)
	require.NoError(t, ctl.LoadChildren(context.Background(), ""))
	m := NewBrowseModel(context.Background(), ctl, "test")

	// Expand the failing node; the fetch fails and a placeholder appears.
	m, cmd := update(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	require.Len(t, m.rows, 2)
	assert.Equal(t, tree.PlaceholderError, m.rows[1].node.Placeholder)
	assert.Contains(t, m.View(), "r to retry")

	// Heal the provider and retry from the placeholder row.
	p.Recover("bad")
	m, _ = update(t, m, keyMsg("j"))
	m, cmd = update(t, m, keyMsg("r"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	require.Len(t, m.rows, 2)
	assert.Equal(t, "bad/1", m.rows[1].node.ID)
	assert.False(t, m.rows[1].node.IsPlaceholder())
}

func TestBrowseModelClearCache(t *testing.T) {
	m := testModel(t)

	m, cmd := update(t, m, keyMsg("c"))
	assert.Nil(t, cmd)
	// Snapshot survives a cache clear.
	assert.Len(t, m.rows, 2)
}

func TestBrowseModelQuit(t *testing.T) {
	m := testModel(t)
	m, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}
