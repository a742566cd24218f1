package version_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/jpl-au/sift/internal/version"
	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := version.Get()
	assert.Equal(t, version.Version, info.BuildTag)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+" "+runtime.GOARCH, info.Platform)
	assert.Equal(t, "dev", version.Short())
}

func TestString(t *testing.T) {
	s := version.Get().String()
	assert.True(t, strings.HasPrefix(s, "Build Tag:    dev\n"))
	assert.Contains(t, s, "Drivers:      sqlite, postgres\n")
	assert.Equal(t, 6, strings.Count(s, "\n"))
}
