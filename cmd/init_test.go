package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("init")
	env.contains(out, "Wrote .sift/config.yaml")

	data, err := os.ReadFile(filepath.Join(env.dir, ".sift", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "driver: sqlite")
	assert.Contains(t, string(data), "# entities:")
	assert.NoFileExists(t, filepath.Join(env.dir, ".sift", "demo.db"))

	// a starter config has no entities yet
	out, err = env.runErr("search", "users", "john")
	assert.Error(t, err)
	env.contains(out, "no entities configured")
	env.contains(out, "sift init --demo")
}

func TestInit_Demo(t *testing.T) {
	env := newTestEnv(t)

	assert.FileExists(t, filepath.Join(env.dir, ".sift", "demo.db"))
	data, err := os.ReadFile(filepath.Join(env.dir, ".sift", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first_name: 10")
	assert.Contains(t, string(data), "posts.title: 3")
}

func TestInit_AlreadyInitialised(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("init")
	assert.Error(t, err)
	env.contains(out, "already exists")

	// --force rewrites the config but keeps the demo data
	env.run("init", "--demo", "--force")
	var res searchResult
	env.runJSON(&res, "search", "users", "john")
	assert.Equal(t, int64(4), res.Total)
}

func TestInit_JSON(t *testing.T) {
	env := newBareEnv(t)

	var res map[string]string
	env.runJSON(&res, "init", "--demo")
	assert.Equal(t, filepath.Join(".sift", "config.yaml"), res["config"])
	assert.Equal(t, filepath.Join(".sift", "demo.db"), res["database"])
}
