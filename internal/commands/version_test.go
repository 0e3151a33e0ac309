package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlag(t *testing.T) {
	out, err := runTally(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "tally version dev (commit: none, built: unknown)")
}
