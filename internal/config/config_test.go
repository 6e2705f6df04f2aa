package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err, "missing config should not error")
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadFullConfig(t *testing.T) {
	root := t.TempDir()
	content := `max_files: 500
top: 15
workers: 4
ignore:
  - generated/
  - "*.pb.go"
languages:
  - go
  - python
`
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.MaxFiles)
	assert.Equal(t, 15, cfg.Top)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{"generated/", "*.pb.go"}, cfg.Ignore)
	assert.Equal(t, []string{"go", "python"}, cfg.Languages)
}

func TestLoadPartialConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("top: 5\n"), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Top)
	assert.Zero(t, cfg.MaxFiles)
	assert.Empty(t, cfg.Languages)
}

func TestLoadInvalidYAML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("max_files: [not an int"), 0o644))

	_, err := Load(root)
	assert.Error(t, err)
}
