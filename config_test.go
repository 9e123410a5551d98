package reelrun

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "reelrun"), config.DataDir)
	assert.Equal(t, DefaultImage, config.Image)
	assert.Empty(t, config.TemplatePath)
	assert.Empty(t, config.Envs)

	// The data directory is created as a side effect
	info, err := os.Stat(config.DataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadConfig_FromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".config", "reelrun")
	require.NoError(t, os.MkdirAll(dataDir, 0755))

	content := `image: ghcr.io/reelrun/pipeline:v3.2
envs:
  - TZ=UTC
`
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte(content), 0644))

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "ghcr.io/reelrun/pipeline:v3.2", config.Image)
	assert.Equal(t, []string{"TZ=UTC"}, config.Envs)
}

func TestSaveConfig_Roundtrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	config, err := LoadConfig()
	require.NoError(t, err)

	config.Image = "ghcr.io/reelrun/pipeline:edge"
	config.Envs = []string{"DEBUG=1"}
	require.NoError(t, SaveConfig(config))

	reloaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ghcr.io/reelrun/pipeline:edge", reloaded.Image)
	assert.Equal(t, []string{"DEBUG=1"}, reloaded.Envs)
}

func TestProjectHash(t *testing.T) {
	hash1, err := ProjectHash("/home/user/videos")
	require.NoError(t, err)
	assert.Len(t, hash1, 12)

	// Deterministic
	again, err := ProjectHash("/home/user/videos")
	require.NoError(t, err)
	assert.Equal(t, hash1, again)

	// Different paths yield different hashes
	hash2, err := ProjectHash("/home/user/other")
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash2)
}

func TestProjectConfig_Roundtrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	workspace := t.TempDir()

	config, hash, err := GetProjectConfig(workspace)
	require.NoError(t, err)
	assert.Len(t, hash, 12)
	assert.Empty(t, config.ContainerName)

	config.ContainerName = "reelrun-videos"
	config.Image = "ghcr.io/reelrun/pipeline:v3"
	config.Volumes = []string{"./fonts:/app/fonts:ro"}
	require.NoError(t, SaveProjectConfig(workspace, config))

	reloaded, _, err := GetProjectConfig(workspace)
	require.NoError(t, err)
	assert.Equal(t, "reelrun-videos", reloaded.ContainerName)
	assert.Equal(t, "ghcr.io/reelrun/pipeline:v3", reloaded.Image)
	assert.Equal(t, []string{"./fonts:/app/fonts:ro"}, reloaded.Volumes)

	absWorkspace, err := filepath.Abs(workspace)
	require.NoError(t, err)
	assert.Equal(t, absWorkspace, reloaded.WorkspacePath)
}

func TestListProjects(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	projects, err := ListProjects()
	require.NoError(t, err)
	assert.Empty(t, projects)

	workspace := t.TempDir()
	require.NoError(t, SaveProjectConfig(workspace, &ProjectConfig{ContainerName: "reelrun-a"}))

	projects, err = ListProjects()
	require.NoError(t, err)
	require.Len(t, projects, 1)

	absWorkspace, err := filepath.Abs(workspace)
	require.NoError(t, err)
	assert.Equal(t, absWorkspace, projects[0].WorkspacePath)
	assert.Equal(t, "reelrun-a", projects[0].Config.ContainerName)
}

func TestRemoveProjectData(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	workspace := t.TempDir()
	require.NoError(t, SaveProjectConfig(workspace, &ProjectConfig{ContainerName: "reelrun-a"}))
	require.NoError(t, RemoveProjectData(workspace))

	projects, err := ListProjects()
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestParseVolumeSpec(t *testing.T) {
	tests := []struct {
		spec          string
		hostPath      string
		containerPath string
		readOnly      bool
		expectError   bool
	}{
		{spec: "/data:/app/data", hostPath: "/data", containerPath: "/app/data"},
		{spec: "./fonts:/app/fonts:ro", hostPath: "./fonts", containerPath: "/app/fonts", readOnly: true},
		{spec: "/data:/app/data:rw", expectError: true},
		{spec: "/data", expectError: true},
		{spec: "a:b:c:d", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			host, container, ro, err := ParseVolumeSpec(tt.spec)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hostPath, host)
			assert.Equal(t, tt.containerPath, container)
			assert.Equal(t, tt.readOnly, ro)
		})
	}
}

func TestResolveVolumePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	base := "/work/project"

	resolved, err := ResolveVolumePath("./fonts", base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "fonts"), resolved)

	resolved, err = ResolveVolumePath("../shared", base)
	require.NoError(t, err)
	assert.Equal(t, "/work/shared", resolved)

	resolved, err = ResolveVolumePath("~/media", base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "media"), resolved)

	resolved, err = ResolveVolumePath("/absolute/path", base)
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", resolved)
}

func TestMergeEnvs(t *testing.T) {
	merged := MergeEnvs(
		[]string{"HTTP_PROXY", "TZ=UTC", "A=1"},
		[]string{"TZ=Europe/Paris"},
		[]string{"A=2", "B=3"},
	)

	assert.Equal(t, []string{"HTTP_PROXY", "TZ=Europe/Paris", "A=2", "B=3"}, merged)
}

func TestMergeEnvs_Empty(t *testing.T) {
	assert.Empty(t, MergeEnvs())
	assert.Empty(t, MergeEnvs(nil, []string{}))
}
