package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianVerhoeven/adGuardHomeLists/internal/config"
)

func TestLoadMissingFile(t *testing.T) {
	cnf, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cnf)
	assert.Equal(t, "generatedLists", cnf.Destination)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `destination = "lists"
source = "https://example.com/my-lists"
strict = true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644))

	cnf, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{
		Destination: "lists",
		Source:      "https://example.com/my-lists",
		Strict:      true,
	}, cnf)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(`strict = true`), 0o644))

	cnf, err := config.Load(dir)
	require.NoError(t, err)
	assert.True(t, cnf.Strict)
	assert.Equal(t, config.DefaultDestination, cnf.Destination)
	assert.Equal(t, config.DefaultSource, cnf.Source)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(`destination = [`), 0o644))

	_, err := config.Load(dir)
	assert.ErrorContains(t, err, "failed to parse config file")
}
