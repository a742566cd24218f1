package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuide(t *testing.T) {
	t.Run("main guide", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("guide")
		env.contains(out, "# sift")
		env.contains(out, "Quick start")
	})

	t.Run("lists available on not found", func(t *testing.T) {
		env := newBareEnv(t)

		out, err := env.runErr("guide", "nonexistent")
		assert.Error(t, err)
		env.contains(out, "available:")
		env.contains(out, "scoring")
	})
}

func TestGuide_Topics(t *testing.T) {
	tests := []struct {
		topic   string
		contain string
	}{
		{"search", "sift search <entity> <text>"},
		{"scoring", "15 × w"},
		{"config", "max_limit"},
		{"explain", "--row"},
		{"compare", "--config-b"},
		{"serve", "sift_search"},
	}

	for _, tc := range tests {
		t.Run(tc.topic, func(t *testing.T) {
			env := newBareEnv(t)

			out := env.run("guide", tc.topic)
			env.contains(out, tc.contain)
		})
	}
}

func TestVersion(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("version")
	env.contains(out, "Build Tag:    dev")

	var info map[string]string
	env.runJSON(&info, "version")
	assert.Equal(t, "dev", info["build_tag"])
}
