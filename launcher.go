package reelrun

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// In-container mount points, fixed by the pipeline image.
const (
	MountAssets = "/app/assets"
	MountEnv    = "/app/.env"
	MountConfig = "/app/config.toml"
)

// LaunchOptions holds options for running the pipeline container
type LaunchOptions struct {
	// WorkspaceDir is the workspace directory holding config.toml, .env and out/
	WorkspaceDir string

	// Image overrides the pipeline image for this launch
	Image string

	// Volumes are additional volume specs ("host:container[:ro]") for this launch
	Volumes []string

	// Envs are additional env entries ("NAME" or "NAME=VALUE") for this launch
	Envs []string

	// Config is the global configuration
	Config *Config

	// ProjectConfig is the per-workspace configuration
	ProjectConfig *ProjectConfig
}

// ResolveImage returns the effective pipeline image for a launch.
// Priority: CLI flag, project config, global config, built-in default.
func ResolveImage(opts LaunchOptions) string {
	if opts.Image != "" {
		return opts.Image
	}
	if opts.ProjectConfig != nil && opts.ProjectConfig.Image != "" {
		return opts.ProjectConfig.Image
	}
	if opts.Config != nil && opts.Config.Image != "" {
		return opts.Config.Image
	}
	return DefaultImage
}

// ContainerName generates the container name for a workspace.
// Format: reelrun-<basename of workspace>, sanitized to letters, numbers,
// hyphens and underscores.
func ContainerName(workspaceDir string) (string, error) {
	absPath, err := filepath.Abs(workspaceDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	basename := filepath.Base(absPath)

	reg := regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	sanitized := reg.ReplaceAllString(basename, "-")

	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}
	sanitized = strings.Trim(sanitized, "-")

	if sanitized == "" {
		sanitized = "workspace"
	}

	return "reelrun-" + sanitized, nil
}

// resolveWorkspaceDir makes the workspace path absolute with symlinks
// resolved, so bind mount sources are stable regardless of how reelrun was
// invoked.
func resolveWorkspaceDir(workspaceDir string) (string, error) {
	absPath, err := filepath.Abs(workspaceDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		// Workspace may not fully exist yet (fresh checkout); abs is enough
		return absPath, nil
	}

	return realPath, nil
}

// BuildRunArgs constructs the `docker run` argument list for a launch.
// This is the single source of truth for command construction, also used by
// `reelrun info` for display. The returned args do not include "docker"
// itself. All mount sources are absolute paths.
func BuildRunArgs(opts LaunchOptions) ([]string, error) {
	workspace, err := resolveWorkspaceDir(opts.WorkspaceDir)
	if err != nil {
		return nil, err
	}

	containerName := ""
	if opts.ProjectConfig != nil {
		containerName = opts.ProjectConfig.ContainerName
	}
	if containerName == "" {
		containerName, err = ContainerName(workspace)
		if err != nil {
			return nil, err
		}
	}

	args := []string{"run", "--rm", "-it", "--name", containerName}

	// The three fixed mounts of the pipeline contract
	args = append(args,
		"-v", fmt.Sprintf("%s:%s", filepath.Join(workspace, OutDirName), MountAssets),
		"-v", fmt.Sprintf("%s:%s", filepath.Join(workspace, EnvFileName), MountEnv),
		"-v", fmt.Sprintf("%s:%s", filepath.Join(workspace, ConfigFileName), MountConfig),
	)

	// Additional volumes from project config and CLI
	var extraVolumes []string
	if opts.ProjectConfig != nil {
		extraVolumes = append(extraVolumes, opts.ProjectConfig.Volumes...)
	}
	extraVolumes = append(extraVolumes, opts.Volumes...)

	for _, vol := range extraVolumes {
		hostPath, containerPath, readOnly, err := ParseVolumeSpec(vol)
		if err != nil {
			return nil, fmt.Errorf("invalid volume specification: %w", err)
		}

		resolvedHost, err := ResolveVolumePath(hostPath, workspace)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve volume path: %w", err)
		}
		if !filepath.IsAbs(resolvedHost) {
			resolvedHost = filepath.Join(workspace, resolvedHost)
		}

		if _, err := os.Stat(resolvedHost); err != nil {
			zlog.Warn("volume host path not found, skipping",
				zap.String("host_path", resolvedHost),
				zap.String("container_path", containerPath),
				zap.Error(err))
			continue
		}

		mountSpec := fmt.Sprintf("%s:%s", resolvedHost, containerPath)
		if readOnly {
			mountSpec += ":ro"
		}
		args = append(args, "-v", mountSpec)
	}

	// Environment variables: global config, project config, then CLI
	var globalEnvs, projectEnvs []string
	if opts.Config != nil {
		globalEnvs = opts.Config.Envs
	}
	if opts.ProjectConfig != nil {
		projectEnvs = opts.ProjectConfig.Envs
	}
	for _, entry := range MergeEnvs(globalEnvs, projectEnvs, opts.Envs) {
		args = append(args, "-e", entry)
	}

	args = append(args, ResolveImage(opts))

	return args, nil
}

// Launch bootstraps the workspace, then runs the pipeline container in the
// foreground with the terminal attached. It blocks until the container exits
// and returns whatever error docker reported. There are no retries and no
// timeout: interrupting the terminal is handled by docker's own signal
// forwarding.
func Launch(opts LaunchOptions) error {
	workspace, err := resolveWorkspaceDir(opts.WorkspaceDir)
	if err != nil {
		return err
	}
	opts.WorkspaceDir = workspace

	if err := Bootstrap(workspace, opts.Config); err != nil {
		return fmt.Errorf("failed to bootstrap workspace: %w", err)
	}

	args, err := BuildRunArgs(opts)
	if err != nil {
		return err
	}

	zlog.Info("launching pipeline container",
		zap.String("workspace", workspace),
		zap.String("image", ResolveImage(opts)))
	zlog.Debug("executing docker command",
		zap.String("cmd", "docker"),
		zap.Strings("args", args))

	cmd := exec.Command("docker", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker run failed: %w", err)
	}

	zlog.Info("pipeline container exited successfully")
	return nil
}
