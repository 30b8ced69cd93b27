package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_DefaultsToDev(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.Version)
	assert.Equal(t, "unknown", info.BuildDate)
	assert.Contains(t, info.String(), info.Version)
}

func TestGet_InjectedVersionWins(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v9.9.9"
	assert.Equal(t, "v9.9.9", Get().Version)
}
