package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArchonAI/archon-cli/settings"
)

func TestVersionCommand(t *testing.T) {
	config := &settings.Config{}
	cmd := newVersionCommand(config)

	stdout := new(bytes.Buffer)
	cmd.SetOut(stdout)

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "0.0.0-dev+dirty-local-tree (source)\n", stdout.String())
	assert.True(t, config.SkipUpdateCheck)
}
