package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"base-resolver/internal/schema"
)

const profilesYAML = `version: "1"
definitions:
  - id: observation
    fields:
      - {path: Observation, min: 0, max: "*"}
      - {path: Observation.status, min: 1, max: 1}
      - {path: "Observation.value[x]", min: 0, max: 1}
  - id: vital-signs
    ancestor: observation
    fields:
      - {path: Observation, min: 0, max: "*"}
      - {path: Observation.status, min: 1, max: 1}
      - {path: Observation.valueQuantity, min: 1, max: 1}
`

// execute runs the CLI in a scratch working directory.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	root := newRootCommand()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.Execute()

	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "version")
	require.NoError(t, err)

	for _, exp := range []string{"base-resolver version:", "Git commit:", "Build date:", "Go version:"} {
		assert.Contains(t, out, exp)
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	good := writeFile(t, dir, "profiles.yaml", profilesYAML)

	out, _, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "2 definition(s) valid")

	bad := writeFile(t, dir, "bad.yaml", `definitions:
  - id: broken
    fields:
      - {path: R, min: 2, max: 1}
`)

	out, _, err = execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 invalid definition(s)")
	assert.Contains(t, out, "min_exceeds_max")
}

func TestResolveCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	in := writeFile(t, dir, "profiles.yaml", profilesYAML)
	resolved := filepath.Join(dir, "resolved.yaml")

	out, _, err := execute(t, "resolve", in, "-o", resolved)
	require.NoError(t, err)
	assert.Contains(t, out, "Resolved 2 definition(s)")

	b, err := schema.LoadFile(resolved)
	require.NoError(t, err)
	require.Len(t, b.Definitions, 2)

	vitals := b.Definitions[1]
	require.Equal(t, "vital-signs", vitals.ID)

	value := vitals.Fields[2].Base
	require.NotNil(t, value)
	assert.Equal(t, "Observation.value[x]", value.Path)
	assert.Equal(t, schema.Max(1), value.Max)
	assert.Equal(t, schema.OriginGenerated, value.Origin)

	root := vitals.Fields[0].Base
	require.NotNil(t, root)
	assert.True(t, root.Max.IsUnbounded())
}

func TestResolveToStdout(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	in := writeFile(t, dir, "profiles.yaml", profilesYAML)

	out, errOut, err := execute(t, "resolve", in, "-o", "-", "--only", "vital-signs")
	require.NoError(t, err)

	b, err := schema.Parse([]byte(out))
	require.NoError(t, err)
	require.Len(t, b.Definitions, 2)
	assert.NotNil(t, b.Definitions[1].Fields[1].Base)
	assert.Contains(t, errOut, "Resolved 2 definition(s)")
}

func TestResolveMissingAncestor(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	in := writeFile(t, dir, "orphan.yaml", `definitions:
  - id: orphan
    ancestor: gone
    fields:
      - {path: R, min: 0, max: 1}
`)

	_, _, err := execute(t, "resolve", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `ancestor "gone" not found`)

	out, _, err := execute(t, "resolve", in, "--tolerate-missing")
	require.NoError(t, err)
	assert.Contains(t, out, "ancestor_missing")
	assert.Contains(t, out, "gone: ancestor missing")
}

func TestResolveUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, dir, "orphan.yaml", `definitions:
  - id: orphan
    ancestor: gone
    fields:
      - {path: R, min: 0, max: 1}
`)
	writeFile(t, dir, "base-resolver.yaml", `resolver:
  tolerate_missing_ancestor: true
source:
  paths: [orphan.yaml]
`)

	out, _, err := execute(t, "resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "gone: ancestor missing")
}

func TestResolveFlagErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "resolve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no definitions given")

	_, _, err = execute(t, "resolve", "--save", "x.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--save needs definitions read from --db")

	_, _, err = execute(t, "import", "x.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import needs a database")

	_, _, err = execute(t, "resolve", "--log-level", "loud", "x.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
