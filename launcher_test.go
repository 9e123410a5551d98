package reelrun

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerName(t *testing.T) {
	tests := []struct {
		workspace string
		expected  string
	}{
		{"/home/user/my-videos", "reelrun-my-videos"},
		{"/home/user/My Videos", "reelrun-My-Videos"},
		{"/home/user/clips!!2024", "reelrun-clips-2024"},
		{"/home/user/a@@@b", "reelrun-a-b"},
		{"/home/user/___", "reelrun-___"},
		{"/home/user/...", "reelrun-workspace"},
	}

	for _, tt := range tests {
		t.Run(tt.workspace, func(t *testing.T) {
			name, err := ContainerName(tt.workspace)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestResolveImage(t *testing.T) {
	assert.Equal(t, DefaultImage, ResolveImage(LaunchOptions{}))

	assert.Equal(t, "global:1", ResolveImage(LaunchOptions{
		Config: &Config{Image: "global:1"},
	}))

	assert.Equal(t, "project:1", ResolveImage(LaunchOptions{
		Config:        &Config{Image: "global:1"},
		ProjectConfig: &ProjectConfig{Image: "project:1"},
	}))

	assert.Equal(t, "flag:1", ResolveImage(LaunchOptions{
		Image:         "flag:1",
		Config:        &Config{Image: "global:1"},
		ProjectConfig: &ProjectConfig{Image: "project:1"},
	}))
}

func TestBuildRunArgs_FixedMounts(t *testing.T) {
	workspace := t.TempDir()
	require.NoError(t, Bootstrap(workspace, nil))

	args, err := BuildRunArgs(LaunchOptions{WorkspaceDir: workspace})
	require.NoError(t, err)

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "run --rm -it --name ")

	mounts := mountSpecs(args)
	require.Len(t, mounts, 3)

	resolved, err := filepath.EvalSymlinks(workspace)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("%s:%s", filepath.Join(resolved, OutDirName), MountAssets), mounts[0])
	assert.Equal(t, fmt.Sprintf("%s:%s", filepath.Join(resolved, EnvFileName), MountEnv), mounts[1])
	assert.Equal(t, fmt.Sprintf("%s:%s", filepath.Join(resolved, ConfigFileName), MountConfig), mounts[2])

	// Image comes last
	assert.Equal(t, DefaultImage, args[len(args)-1])
}

func TestBuildRunArgs_RelativeWorkspace(t *testing.T) {
	workspace := t.TempDir()
	require.NoError(t, Bootstrap(workspace, nil))

	t.Chdir(filepath.Dir(workspace))

	args, err := BuildRunArgs(LaunchOptions{WorkspaceDir: filepath.Base(workspace)})
	require.NoError(t, err)

	// Mount sources must be absolute no matter where the caller sits
	for _, spec := range mountSpecs(args) {
		hostPath := spec[:strings.Index(spec, ":")]
		assert.True(t, filepath.IsAbs(hostPath), "mount source %q should be absolute", hostPath)
	}
}

func TestBuildRunArgs_ExtraVolumes(t *testing.T) {
	workspace := t.TempDir()
	require.NoError(t, Bootstrap(workspace, nil))

	fontsDir := filepath.Join(workspace, "fonts")
	require.NoError(t, os.Mkdir(fontsDir, 0755))

	args, err := BuildRunArgs(LaunchOptions{
		WorkspaceDir: workspace,
		Volumes: []string{
			"./fonts:/app/fonts:ro",
			"./does-not-exist:/app/nowhere",
		},
	})
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(workspace)
	require.NoError(t, err)

	mounts := mountSpecs(args)
	require.Len(t, mounts, 4, "missing host paths are skipped, not mounted")
	assert.Equal(t, filepath.Join(resolved, "fonts")+":/app/fonts:ro", mounts[3])
}

func TestBuildRunArgs_InvalidVolumeSpec(t *testing.T) {
	workspace := t.TempDir()

	_, err := BuildRunArgs(LaunchOptions{
		WorkspaceDir: workspace,
		Volumes:      []string{"just-a-path"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid volume specification")
}

func TestBuildRunArgs_EnvMerging(t *testing.T) {
	workspace := t.TempDir()

	args, err := BuildRunArgs(LaunchOptions{
		WorkspaceDir:  workspace,
		Config:        &Config{Envs: []string{"HTTP_PROXY", "TZ=UTC"}},
		ProjectConfig: &ProjectConfig{Envs: []string{"TZ=Europe/Paris"}},
		Envs:          []string{"DEBUG=1"},
	})
	require.NoError(t, err)

	var envs []string
	for i, arg := range args {
		if arg == "-e" && i+1 < len(args) {
			envs = append(envs, args[i+1])
		}
	}

	assert.Equal(t, []string{"HTTP_PROXY", "TZ=Europe/Paris", "DEBUG=1"}, envs)
}

func TestBuildRunArgs_ContainerNameFromProjectConfig(t *testing.T) {
	workspace := t.TempDir()

	args, err := BuildRunArgs(LaunchOptions{
		WorkspaceDir:  workspace,
		ProjectConfig: &ProjectConfig{ContainerName: "reelrun-pinned"},
	})
	require.NoError(t, err)

	idx := indexOf(args, "--name")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "reelrun-pinned", args[idx+1])
}

// mountSpecs extracts the values following each -v flag, in order.
func mountSpecs(args []string) []string {
	var specs []string
	for i, arg := range args {
		if arg == "-v" && i+1 < len(args) {
			specs = append(specs, args[i+1])
		}
	}
	return specs
}

func indexOf(args []string, target string) int {
	for i, arg := range args {
		if arg == target {
			return i
		}
	}
	return -1
}
