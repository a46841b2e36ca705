package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lazytree/internal/tree"
)

// runCmd executes the root command with args against a scratch config so a
// developer's real config file never leaks into tests.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func scaffold(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "nested"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "nested", "deep.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("x"), 0o600))
	return root
}

func TestDumpJSON(t *testing.T) {
	root := scaffold(t)

	out, err := runCmd(t, "dump", "--path", root, "--depth", "2")
	require.NoError(t, err)

	var forest []tree.Node
	require.NoError(t, json.Unmarshal([]byte(out), &forest))
	require.Len(t, forest, 2)
	assert.Equal(t, "src", forest[0].ID)

	// Depth 2 loads src and src/nested.
	src := forest[0]
	require.Len(t, src.Children, 2)
	assert.Equal(t, "src/nested", src.Children[0].ID)
	assert.True(t, src.Children[0].Loaded())
}

func TestDumpNDJSON(t *testing.T) {
	root := scaffold(t)

	out, err := runCmd(t, "dump", "--path", root, "--depth", "1", "--output", "ndjson")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4) // src, src/nested, src/main.go, top.txt

	var first dumpRecord
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "src", first.ID)
	assert.True(t, first.Loaded)

	var nested dumpRecord
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &nested))
	assert.Equal(t, "src/nested", nested.ID)
	assert.Equal(t, []string{"src"}, nested.Path)
	assert.False(t, nested.Loaded, "depth 1 does not load grandchildren")
}

func TestDumpZeroDepth(t *testing.T) {
	root := scaffold(t)

	out, err := runCmd(t, "dump", "--path", root, "--depth", "0")
	require.NoError(t, err)

	var forest []tree.Node
	require.NoError(t, json.Unmarshal([]byte(out), &forest))
	require.Len(t, forest, 2)
	assert.False(t, forest[0].Loaded())
}

func TestDumpFlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "BadOutput", args: []string{"dump", "--output", "xml"}},
		{name: "NegativeDepth", args: []string{"dump", "--depth", "-1"}},
		{name: "MissingPath", args: []string{"dump", "--path", "/definitely/not/here"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRootFlagValidation(t *testing.T) {
	_, err := runCmd(t, "dump", "--cache-ttl", "-5s")
	assert.Error(t, err)

	_, err = runCmd(t, "dump", "--stale-window", "0s")
	assert.Error(t, err)
}
