package reelrun

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPipelineConfig_SeededTemplate(t *testing.T) {
	workspace := t.TempDir()
	_, err := SeedConfig(workspace, nil)
	require.NoError(t, err)

	config, err := LoadPipelineConfig(workspace)
	require.NoError(t, err)

	// The bundled template ships with empty credentials and a settings section
	assert.Empty(t, config.Reddit.Creds.ClientID)
	assert.NotNil(t, config.Settings)
}

func TestLoadPipelineConfig_Missing(t *testing.T) {
	_, err := LoadPipelineConfig(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadPipelineConfig_InvalidTOML(t *testing.T) {
	workspace := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workspace, ConfigFileName), []byte("[unclosed\n"), 0644))

	_, err := LoadPipelineConfig(workspace)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid TOML")
}

func TestCheckPipelineConfig(t *testing.T) {
	workspace := t.TempDir()

	content := `[reddit.creds]
client_id = "abc"
client_secret = "def"
username = "user"

[settings]
theme = "dark"
`
	require.NoError(t, os.WriteFile(filepath.Join(workspace, ConfigFileName), []byte(content), 0644))

	warnings, err := CheckPipelineConfig(workspace)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestCheckPipelineConfig_EmptyCreds(t *testing.T) {
	workspace := t.TempDir()

	content := `[reddit.creds]
client_id = ""
client_secret = ""
`
	require.NoError(t, os.WriteFile(filepath.Join(workspace, ConfigFileName), []byte(content), 0644))

	warnings, err := CheckPipelineConfig(workspace)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "[reddit.creds]")
	assert.Contains(t, warnings[1], "[settings]")
}
