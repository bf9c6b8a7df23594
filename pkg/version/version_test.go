package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_ContainsVersion(t *testing.T) {
	s := String()
	assert.Contains(t, s, "vibe-search")
	assert.Contains(t, s, Version)
}

func TestInfo_PopulatesRuntimeFields(t *testing.T) {
	info := Info()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.OS)
	assert.NotEmpty(t, info.Arch)
}
