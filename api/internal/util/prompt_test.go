package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrompt(t *testing.T) {
	dir := t.TempDir()

	custom := filepath.Join(dir, "prompt.txt")
	require.NoError(t, os.WriteFile(custom, []byte("  List the invoice fields as JSON.\n"), 0o644))
	blank := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(blank, []byte(" \n"), 0o644))

	assert.Equal(t, DefaultPrompt, LoadPrompt(""))
	assert.Equal(t, DefaultPrompt, LoadPrompt(filepath.Join(dir, "missing.txt")))
	assert.Equal(t, DefaultPrompt, LoadPrompt(blank))
	assert.Equal(t, "List the invoice fields as JSON.", LoadPrompt(custom))
}
