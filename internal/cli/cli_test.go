package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-works/docstore/internal/ids"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeStorageConfig(t *testing.T) (configPath, dbPath string) {
	t.Helper()
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "docs.db")
	configPath = filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("storage:\n  path: %s\n", dbPath)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath, dbPath
}

func TestGenDefaultsToOneID(t *testing.T) {
	out, err := runCommand(t, "gen")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], ids.EncodedLen)
}

func TestGenCount(t *testing.T) {
	out, err := runCommand(t, "gen", "-n", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		_, err := ids.ParseUntyped(line)
		assert.NoError(t, err, "line: %q", line)
	}
}

func TestGenRejectsBadCount(t *testing.T) {
	_, err := runCommand(t, "gen", "-n", "0")
	assert.ErrorContains(t, err, "count must be at least 1")
}

func TestDecompose(t *testing.T) {
	gen := ids.NewGenerator()
	id := gen.Untyped()

	out, err := runCommand(t, "decompose", id.String())
	require.NoError(t, err)

	assert.Contains(t, out, "t:")
	assert.Contains(t, out, fmt.Sprintf("r:0x%016x", id.Random()))
}

func TestDecomposeSeveral(t *testing.T) {
	gen := ids.NewGenerator()

	out, err := runCommand(t, "decompose", gen.Untyped().String(), gen.Untyped().String())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)
}

func TestDecomposeRejectsGarbage(t *testing.T) {
	_, err := runCommand(t, "decompose", "not-an-id")
	assert.ErrorIs(t, err, ids.ErrUnparseable)
}

func TestSetupCreatesDatabase(t *testing.T) {
	configPath, dbPath := writeStorageConfig(t)

	out, err := runCommand(t, "--config", configPath, "setup")
	require.NoError(t, err)
	assert.Contains(t, out, "database ready")

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestSetupRequiresConfig(t *testing.T) {
	_, err := runCommand(t, "setup")
	assert.ErrorContains(t, err, "--config")
}

func TestPendingEmptyDatabase(t *testing.T) {
	configPath, _ := writeStorageConfig(t)

	out, err := runCommand(t, "--config", configPath, "pending")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func TestPendingRequiresConfig(t *testing.T) {
	_, err := runCommand(t, "pending")
	assert.ErrorContains(t, err, "--config")
}
