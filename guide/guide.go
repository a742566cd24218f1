// Package guide embeds the markdown pages shown by "sift guide" and the
// sift_guide MCP tool.
package guide

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.md
var files embed.FS

// index is the page shown when no topic is given. It is not a topic itself.
const index = "guide"

// ErrUnknownTopic is returned by Get for a topic with no page.
var ErrUnknownTopic = errors.New("unknown guide topic")

// Get returns the markdown for topic, or the index page when topic is empty.
// An unknown topic's error lists the topics that exist.
func Get(topic string) (string, error) {
	name := topic
	if name == "" {
		name = index
	}
	data, err := files.ReadFile(name + ".md")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownTopic, topic, strings.Join(List(), ", "))
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the topic names in alphabetical order.
func List() []string {
	matches, _ := fs.Glob(files, "*.md")
	var topics []string
	for _, m := range matches {
		if t := strings.TrimSuffix(m, ".md"); t != index {
			topics = append(topics, t)
		}
	}
	sort.Strings(topics)
	return topics
}
