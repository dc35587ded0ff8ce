// SPDX-License-Identifier: MIT
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

	"gitlab.com/fisherprime/treestore"
	"gitlab.com/fisherprime/treestore/grid"
)

const mockFile = `
- id: 1
  label: Item 1
- id: 91064cee
  parent: 1
  label: Item 2
- id: 3
  parent: 1
  label: Item 3
- id: 4
  parent: 91064cee
  label: Item 4
- id: 5
  parent: 91064cee
- id: 6
  parent: 91064cee
- id: 7
  parent: 4
- id: 8
  parent: 4
`

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return outBuf.String(), errBuf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "treegrid", cmd.Use)

	for _, name := range []string{"project", "serialize", "deserialize"} {
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, FormatText, formatFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "deserialize", "1)", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestProjectCommand(t *testing.T) {
	path := writeFile(t, mockFile)

	stdout, _, err := execute(t, "project", "-f", path, "--workers", "4")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 9)
	assert.Regexp(t, `^PATH\s+CATEGORY\s+LABEL$`, lines[0])
	assert.Regexp(t, `^1/91064cee\s+Group\s+Item 2$`, lines[2])
	assert.Regexp(t, `^1/91064cee/4/8\s+Item$`, strings.TrimSpace(lines[8]))
}

func TestProjectCommand_JSON(t *testing.T) {
	path := writeFile(t, mockFile)

	stdout, _, err := execute(t, "project", "-f", path, "--format", FormatJSON)
	require.NoError(t, err)

	var rows []struct {
		ID       json.RawMessage `json:"id"`
		Path     []string        `json:"path"`
		Category grid.Category   `json:"category"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 8)

	assert.JSONEq(t, `"91064cee"`, string(rows[1].ID))
	assert.Equal(t, []string{"1", "91064cee", "4", "7"}, rows[6].Path)
	assert.Equal(t, grid.CategoryGroup, rows[3].Category)
	assert.Equal(t, grid.CategoryItem, rows[6].Category)
}

func TestProjectCommand_errors(t *testing.T) {
	dangling := writeFile(t, "- id: 1\n- id: 2\n  parent: 42\n")

	_, _, err := execute(t, "project", "-f", dangling, "--strict")
	assert.ErrorIs(t, err, treestore.ErrLocateParents)

	_, _, err = execute(t, "project", "-f", dangling)
	assert.ErrorIs(t, err, grid.ErrProject)

	_, _, err = execute(t, "project")
	assert.Error(t, err, "--file is required")

	_, _, err = execute(t, "project", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSerializeCommand(t *testing.T) {
	path := writeFile(t, mockFile)

	stdout, _, err := execute(t, "serialize", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "1,91064cee,4,7),8)),5),6)),3))\n", stdout)

	stdout, _, err = execute(t, "serialize", "-f", path, "--format", FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"notation": "1,91064cee,4,7),8)),5),6)),3))"}`, stdout)
}

func TestDeserializeCommand(t *testing.T) {
	stdout, _, err := execute(t, "deserialize", "1,91064cee),3))")
	require.NoError(t, err)
	assert.Equal(t, "- id: 1\n- id: 91064cee\n  parent: 1\n- id: 3\n  parent: 1\n", stdout)

	stdout, _, err = execute(t, "deserialize", "1,91064cee))", "--format", FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id": 1, "parent": null, "label": ""},
		{"id": "91064cee", "parent": 1, "label": ""}
	]`, stdout)

	_, _, err = execute(t, "deserialize", "1,2,3))")
	assert.ErrorIs(t, err, treestore.ErrExcessiveValues)
}

func TestDeserializeCommand_roundTrip(t *testing.T) {
	notation := "1,91064cee,4,7),8)),5),6)),3))"

	stdout, _, err := execute(t, "deserialize", notation)
	require.NoError(t, err)

	stdout, _, err = execute(t, "serialize", "-f", writeFile(t, stdout))
	require.NoError(t, err)
	assert.Equal(t, notation+"\n", stdout)
}

func TestVerbose(t *testing.T) {
	path := writeFile(t, mockFile)

	_, stderr, err := execute(t, "project", "-f", path, "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "loaded 8 items")
}
