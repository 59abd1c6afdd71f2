package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/karsanda/barong/packages/core/config"
	"github.com/karsanda/barong/packages/manifest"
	"github.com/karsanda/barong/packages/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// resetFlags restores every package level flag to its default, since cobra
// keeps values between Execute calls.
func resetFlags() {
	cwdFlag = ""
	verboseFlag = 0
	noColorFlag = true
	outputFlag = "console"
	outputFileFlag = ""
	recordFlag = false
	dbFlag = manifest.DefaultPath
	watchFlag = false
	listFilesFlag = false
	forceInit = false
	historyLimitFlag = 20
	historyRunFlag = ""
}

func runCLI(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	resetFlags()
	color.NoColor = true

	var stdout, stderr bytes.Buffer
	code := executeArgs(append([]string{"--cwd", dir}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// writeProject lays out a default project with one page.
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json"), `{"label": "Barong", "capture_target": "bitmaps_test"}`)
	writeFile(t, filepath.Join(dir, "tests", "some-page.json"), `{"label": "Some Page", "url": "https://example.com"}`)
	return dir
}

func TestResolve_JSON(t *testing.T) {
	dir := writeProject(t)

	stdout, stderr, code := runCLI(t, dir, "resolve", "-o", "json")
	require.Equal(t, ExitSuccess, code, stderr)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "Barong", doc["label"])
	assert.Equal(t, "tests", doc["test_folder"])
	assert.Equal(t, []any{
		map[string]any{
			"label":       "Some Page",
			"output_file": filepath.Join(dir, "bitmaps_test", "barong__some-page.png"),
			"url":         "https://example.com",
		},
	}, doc["scenarios"])
}

func TestResolve_YAML(t *testing.T) {
	dir := writeProject(t)

	stdout, stderr, code := runCLI(t, dir, "resolve", "--output", "yaml")
	require.Equal(t, ExitSuccess, code, stderr)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "bitmaps_test", doc["capture_target"])
	assert.Len(t, doc["scenarios"], 1)
}

func TestResolve_Console(t *testing.T) {
	dir := writeProject(t)

	stdout, stderr, code := runCLI(t, dir, "resolve")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Some Page → "+filepath.Join(dir, "bitmaps_test", "barong__some-page.png"))
}

func TestResolve_OutputFile(t *testing.T) {
	dir := writeProject(t)
	target := filepath.Join(dir, "scenarios.json")

	stdout, stderr, code := runCLI(t, dir, "resolve", "-o", "json", "--output-file", target)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "barong__some-page.png")
}

func TestResolve_ProjectSelector(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "liputan6.json"), `{"label": "Liputan6", "capture_target": "shots", "test_folder": "pages"}`)
	writeFile(t, filepath.Join(dir, "pages", "home.json"), `{"label": "Home"}`)

	stdout, stderr, code := runCLI(t, dir, "list", "liputan6:home")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "Home\t"+filepath.Join(dir, "shots", "liputan6__home.png")+"\n", stdout)
}

func TestResolve_ExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		args  []string
		code  int
	}{
		{
			name:  "no config",
			setup: func(t *testing.T, dir string) {},
			args:  []string{"resolve"},
			code:  ExitConfigError,
		},
		{
			name:  "selected project missing",
			setup: func(t *testing.T, dir string) {},
			args:  []string{"resolve", "liputan6"},
			code:  ExitConfigError,
		},
		{
			name: "malformed base",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "config.json"), `{"label": `)
			},
			args: []string{"resolve"},
			code: ExitParseError,
		},
		{
			name: "page without label",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "config.json"), `{"label": "Barong", "capture_target": "shots"}`)
				writeFile(t, filepath.Join(dir, "tests", "bad.json"), `{"url": "https://example.com"}`)
			},
			args: []string{"resolve"},
			code: ExitConfigError,
		},
		{
			name:  "unknown format",
			setup: func(t *testing.T, dir string) {},
			args:  []string{"resolve", "-o", "junit"},
			code:  ExitUsageError,
		},
		{
			name:  "too many args",
			setup: func(t *testing.T, dir string) {},
			args:  []string{"resolve", "a", "b"},
			code:  ExitUsageError,
		},
		{
			name:  "unknown flag",
			setup: func(t *testing.T, dir string) {},
			args:  []string{"list", "--nope"},
			code:  ExitUsageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			_, stderr, code := runCLI(t, dir, tt.args...)
			assert.Equal(t, tt.code, code, stderr)
			assert.Contains(t, stderr, "Error:")
		})
	}
}

func TestResolve_RecordAndHistory(t *testing.T) {
	dir := writeProject(t)

	_, stderr, code := runCLI(t, dir, "resolve", "-o", "json", "--record", "--db", "history.db")
	require.Equal(t, ExitSuccess, code, stderr)

	match := regexp.MustCompile(`Recorded run ([0-9a-f-]{36})`).FindStringSubmatch(stderr)
	require.Len(t, match, 2, stderr)
	id := match[1]
	assert.FileExists(t, filepath.Join(dir, "history.db"))

	stdout, stderr, code := runCLI(t, dir, "history", "--db", "history.db")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, id)
	assert.Contains(t, stdout, "(1 scenarios)")

	stdout, stderr, code = runCLI(t, dir, "history", "--db", "history.db", "--run", id)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Some Page → "+filepath.Join(dir, "bitmaps_test", "barong__some-page.png"))

	_, _, code = runCLI(t, dir, "history", "--db", "history.db", "--run", "missing")
	assert.Equal(t, ExitConfigError, code)
}

func TestHistory_Empty(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, code := runCLI(t, dir, "history")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "No recorded runs\n", stdout)
	assert.FileExists(t, filepath.Join(dir, manifest.DefaultPath))
}

func TestList_Files(t *testing.T) {
	dir := writeProject(t)

	stdout, stderr, code := runCLI(t, dir, "list", "--files")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Base: "+filepath.Join(dir, "config.json"))
	assert.Contains(t, stdout, filepath.Join(dir, "tests", "some-page.json"))
	assert.Contains(t, stdout, "Pages: 1")
}

func TestValidate(t *testing.T) {
	dir := writeProject(t)

	stdout, stderr, code := runCLI(t, dir, "validate")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "2 valid, 2 total")

	writeFile(t, filepath.Join(dir, "tests", "broken.json"), `{"label": 7}`)
	stdout, stderr, code = runCLI(t, dir, "validate")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout, "✗ "+filepath.Join(dir, "tests", "broken.json"))
	assert.Contains(t, stderr, "validation failed: 1 invalid file(s)")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, code := runCLI(t, dir, "init")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Created: "+filepath.Join(dir, "config.json"))
	assert.FileExists(t, filepath.Join(dir, "tests", "home.json"))

	stdout, stderr, code = runCLI(t, dir, "list")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "Home\t"+filepath.Join(dir, "bitmaps_test", "barong__home.png")+"\n", stdout)

	_, stderr, code = runCLI(t, dir, "init")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "use --force to overwrite")

	_, stderr, code = runCLI(t, dir, "init", "--force")
	assert.Equal(t, ExitSuccess, code, stderr)
}

func TestInit_Project(t *testing.T) {
	dir := t.TempDir()

	_, stderr, code := runCLI(t, dir, "init", "liputan6")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.FileExists(t, filepath.Join(dir, "liputan6.json"))

	stdout, stderr, code := runCLI(t, dir, "list", "liputan6")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "liputan6__home.png")
}

func TestVersion(t *testing.T) {
	stdout, _, code := runCLI(t, t.TempDir(), "version")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "barong version dev")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("boom"), ExitFailure},
		{&ValidationError{Failed: 2}, ExitFailure},
		{&usageError{err: errors.New("bad flag")}, ExitUsageError},
		{&output.UnknownFormatError{Format: "tap"}, ExitUsageError},
		{fmt.Errorf("wrapped: %w", &config.ParseError{Path: "/p", Err: errors.New("eof")}), ExitParseError},
		{&config.NotFoundError{Path: "/p"}, ExitConfigError},
		{&config.MissingFieldError{Path: "/p", Field: "label"}, ExitConfigError},
		{&config.FieldTypeError{Path: "/p", Field: "label", Want: "string", Got: 1.0}, ExitConfigError},
		{fmt.Errorf("%w: abc", manifest.ErrRunNotFound), ExitConfigError},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
