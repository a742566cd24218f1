package guide_test

import (
	"testing"

	"github.com/jpl-au/sift/guide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	index, err := guide.Get("")
	require.NoError(t, err)
	assert.Contains(t, index, "# sift")

	topics := guide.List()
	assert.NotContains(t, topics, "guide")
	assert.IsNonDecreasing(t, topics)
	for _, topic := range topics {
		assert.Contains(t, index, "`"+topic+"`", "index should mention %s", topic)
		page, err := guide.Get(topic)
		require.NoError(t, err)
		assert.NotEmpty(t, page)
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := guide.Get("missing")
	assert.ErrorIs(t, err, guide.ErrUnknownTopic)
	assert.ErrorContains(t, err, `"missing"`)
	assert.ErrorContains(t, err, "scoring")
}
