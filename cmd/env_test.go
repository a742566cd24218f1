// The cmd tests exercise the full stack by building the sift binary once and
// running it against a demo database in a temporary directory:
// command parsing -> service -> relevance builder -> SQLite.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the sift binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "sift-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "sift"
		if os.PathSeparator == '\\' {
			binaryName = "sift.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newBareEnv creates an empty project directory with its own HOME, so the
// global config and audit log never touch the real home directory.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// newTestEnv creates a project initialised with the demo database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init", "--demo")
	return env
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"SIFT_CONFIG=",
		"SIFT_AUTHOR=",
	)
	return cmd
}

// run executes sift with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("sift %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes sift and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runJSON executes sift with -o json and decodes stdout into v.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	cmd := e.command(append(args, "-o", "json")...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	require.NoError(e.t, err, "sift %v: %s", args, stderr.String())
	require.NoError(e.t, json.Unmarshal(out, v), "decoding %s", out)
}

// writeFile writes a file relative to the project directory.
func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// searchResult mirrors the JSON of a search.
type searchResult struct {
	Entity    string           `json:"entity"`
	Tokens    []string         `json:"tokens"`
	Threshold float64          `json:"threshold"`
	Total     int64            `json:"total"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
	Rows      []map[string]any `json:"rows"`
}

// ids returns the id column of every row, in order.
func (r searchResult) ids() []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i], _ = row["id"].(float64)
	}
	return out
}
