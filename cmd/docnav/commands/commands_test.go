package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/report"
	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSpec = `docs:
  - type: category
    label: Getting Started
    collapsed: false
    items:
      - getting-started/introduction
      - getting-started/quick-start
  - roadmap
`

const invalidSpec = `docs:
  - label: X
    items:
      - label: Y
        items: [a]
      - label: Y
        items: [b]
`

type testEnv struct {
	t      *testing.T
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return &testEnv{t: t, dir: dir, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
}

func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run parses args like main does and executes the selected command.
func (e *testEnv) run(args ...string) error {
	e.t.Helper()
	cli := &CLI{}
	g := &Global{Stdout: e.stdout, Stderr: e.stderr}
	parser, err := kong.New(cli,
		kong.Name("docnav"),
		kong.Vars{"version": "test"},
		kong.Bind(g),
		kong.Exit(func(int) { e.t.Fatal("unexpected exit") }),
	)
	require.NoError(e.t, err)
	ctx, err := parser.Parse(args)
	require.NoError(e.t, err)
	return ctx.Run(g, cli)
}

func exitCode(err error) int {
	return errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err)
}

func TestValidate_ValidDefaultConfig(t *testing.T) {
	env := newTestEnv(t)
	env.write("sidebars.yaml", validSpec)

	require.NoError(t, env.run("validate"))
	assert.Contains(t, env.stdout.String(), "Sidebar specification is valid")
	assert.Contains(t, env.stdout.String(), "1 sidebar, 1 category, 3 documents")
}

func TestValidate_InvalidReportsAndExitsWithSpecCode(t *testing.T) {
	env := newTestEnv(t)
	file := env.write("nav/custom.yaml", invalidSpec)

	err := env.run("validate", file, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(err))

	var out report.JSONOutput
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &out))
	assert.False(t, out.Valid)
	require.Len(t, out.Violations, 1)
	assert.Equal(t, []string{"X"}, out.Violations[0].Path)
	assert.Equal(t, "Y", out.Violations[0].Label)
}

func TestValidate_MissingExplicitConfig(t *testing.T) {
	env := newTestEnv(t)
	err := env.run("-c", "other.yaml", "validate")
	require.Error(t, err)
	assert.Equal(t, 7, exitCode(err))
}

func TestValidate_MissingSpecFile(t *testing.T) {
	env := newTestEnv(t)
	err := env.run("validate")
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInitThenBuild(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run("init"))
	assert.Contains(t, env.stdout.String(), "initialized successfully")
	assert.FileExists(t, filepath.Join(env.dir, "docnav.yaml"))

	err := env.run("init")
	require.Error(t, err)
	assert.Equal(t, 7, exitCode(err))
	require.NoError(t, env.run("init", "--force"))

	env.write("sidebars.yaml", validSpec)
	env.stdout.Reset()
	require.NoError(t, env.run("build"))
	assert.Contains(t, env.stdout.String(), "Built 1 sidebar(s)")
	assert.FileExists(t, filepath.Join(env.dir, "site", "sidebars.json"))
	assert.FileExists(t, filepath.Join(env.dir, "site", "config", "_default", "menus.yaml"))
}

func TestBuild_InvalidLeavesExportsUntouched(t *testing.T) {
	env := newTestEnv(t)
	env.write("docnav.yaml", "sidebars:\n  file: sidebars.yaml\nexport:\n  json: out/sidebars.json\n")
	env.write("sidebars.yaml", invalidSpec)

	err := env.run("build")
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(err))
	assert.NoFileExists(t, filepath.Join(env.dir, "out", "sidebars.json"))
}

func TestBuild_NoTargets(t *testing.T) {
	env := newTestEnv(t)
	env.write("sidebars.yaml", validSpec)

	require.NoError(t, env.run("build"))
	assert.Contains(t, env.stdout.String(), "No export targets configured")
}

func TestImportOutline(t *testing.T) {
	env := newTestEnv(t)
	src := env.write("SUMMARY.md", "- Getting Started\n  - [intro](getting-started/introduction.md)\n- [roadmap](roadmap)\n")

	require.NoError(t, env.run("import-outline", src, "--name", "guide"))
	out := env.stdout.String()
	assert.Contains(t, out, "guide:\n")
	assert.Contains(t, out, "label: Getting Started")
	assert.Contains(t, out, "- getting-started/introduction")

	dest := filepath.Join(env.dir, "sidebars.yaml")
	require.NoError(t, env.run("import-outline", src, "-o", dest))
	env.stdout.Reset()
	require.NoError(t, env.run("validate", dest))
	assert.Contains(t, env.stdout.String(), "Sidebar specification is valid")
}

func TestImportOutline_DuplicateLabels(t *testing.T) {
	env := newTestEnv(t)
	src := env.write("SUMMARY.md", "- X\n  - [a](a)\n- X\n  - [b](b)\n")

	err := env.run("import-outline", src)
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(err))
}

func TestWatch_InitialBuildThenStop(t *testing.T) {
	env := newTestEnv(t)
	env.write("docnav.yaml", "sidebars:\n  file: sidebars.yaml\nexport:\n  json: out/sidebars.json\nwatch:\n  debounce: 50ms\n")
	env.write("sidebars.yaml", validSpec)

	root := &CLI{Config: "docnav.yaml"}
	g := &Global{Stdout: env.stdout, Stderr: env.stderr}
	require.NoError(t, root.AfterApply(g))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	require.NoError(t, (&WatchCmd{MetricsAddr: "127.0.0.1:0"}).run(ctx, g, root))

	assert.Contains(t, env.stdout.String(), "Rebuilt")
	assert.FileExists(t, filepath.Join(env.dir, "out", "sidebars.json"))
}

func TestAfterApply_JSONLogging(t *testing.T) {
	env := newTestEnv(t)
	env.write("docnav.yaml", "logging:\n  format: json\n  level: debug\n")

	root := &CLI{Config: "docnav.yaml"}
	g := &Global{Stdout: env.stdout, Stderr: env.stderr}
	require.NoError(t, root.AfterApply(g))
	cfg, err := root.LoadedConfig()
	require.NoError(t, err)
	assert.Equal(t, "sidebars.yaml", cfg.Sidebars.File)
}
