package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntities(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("entities")
	env.contains(out, "users (users.id, default threshold 6)")
	env.contains(out, "├── users.first_name  10")
	env.contains(out, "└── join posts on users.id = posts.user_id")
	env.contains(out, "posts (posts.id, default threshold 5.5)")
}

func TestEntities_JSON(t *testing.T) {
	env := newTestEnv(t)

	var infos []struct {
		Name    string `json:"name"`
		Columns []struct {
			Column string  `json:"column"`
			Weight float64 `json:"weight"`
		} `json:"columns"`
	}
	env.runJSON(&infos, "entities")
	require.Len(t, infos, 2)
	assert.Equal(t, "posts", infos[0].Name)
	assert.Equal(t, "users", infos[1].Name)
	assert.Equal(t, "users.first_name", infos[1].Columns[0].Column)
	assert.Len(t, infos[1].Columns, 5)
}

func TestEntities_InvalidDefinition(t *testing.T) {
	env := newBareEnv(t)
	env.writeFile(".sift/config.yaml", `database:
  dsn: .sift/demo.db
entities:
  users:
    columns:
      posts.title: 3
`)

	out, err := env.runErr("entities")
	assert.Error(t, err)
	env.contains(out, "has no join")
}
