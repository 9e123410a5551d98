package reelrun

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ContainerInfo contains information about a reelrun container
type ContainerInfo struct {
	// ID is the container ID
	ID string
	// Name is the container name (e.g., "reelrun-my-videos")
	Name string
	// Status is the container state (e.g., "running", "exited")
	Status string
	// Image is the container image name
	Image string
	// Workspace is the workspace the container was launched for
	Workspace string
}

// dockerPSLine is the shape of one `docker ps --format '{{json .}}'` line
type dockerPSLine struct {
	ID     string `json:"ID"`
	Names  string `json:"Names"`
	Image  string `json:"Image"`
	State  string `json:"State"`
	Status string `json:"Status"`
}

// Find returns container info for the given workspace (any state).
// Returns nil when no container exists.
func Find(workspaceDir string) (*ContainerInfo, error) {
	absPath, err := filepath.Abs(workspaceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	containerName, err := ContainerName(absPath)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("docker", "ps", "-a", "--filter", fmt.Sprintf("name=^%s$", containerName), "--format", "{{json .}}")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		zlog.Debug("docker ps command failed",
			zap.Error(err),
			zap.String("stderr", stderr.String()))
		return nil, nil // Container likely doesn't exist
	}

	output := strings.TrimSpace(stdout.String())
	if output == "" {
		return nil, nil
	}

	info, err := parseContainerLine(output)
	if err != nil {
		return nil, err
	}
	info.Workspace = absPath

	return info, nil
}

// FindRunning returns container info only if the container is running
func FindRunning(workspaceDir string) (*ContainerInfo, error) {
	info, err := Find(workspaceDir)
	if err != nil {
		return nil, err
	}

	if info == nil {
		return nil, nil
	}

	if info.Status != "running" {
		zlog.Debug("container found but not running",
			zap.String("container_id", info.ID),
			zap.String("status", info.Status))
		return nil, nil
	}

	return info, nil
}

// List returns all reelrun containers, running or not
func List() ([]ContainerInfo, error) {
	cmd := exec.Command("docker", "ps", "-a", "--filter", "name=^reelrun-", "--format", "{{json .}}")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		zlog.Debug("docker ps command failed",
			zap.Error(err),
			zap.String("stderr", stderr.String()))
		return nil, fmt.Errorf("docker ps failed: %w", err)
	}

	var infos []ContainerInfo
	for _, line := range strings.Split(strings.TrimSpace(stdout.String()), "\n") {
		if line == "" {
			continue
		}

		info, err := parseContainerLine(line)
		if err != nil {
			zlog.Debug("failed to parse container data", zap.String("line", line), zap.Error(err))
			continue
		}

		infos = append(infos, *info)
	}

	return infos, nil
}

// parseContainerLine decodes one JSON line of `docker ps` output
func parseContainerLine(line string) (*ContainerInfo, error) {
	var data dockerPSLine
	if err := json.Unmarshal([]byte(line), &data); err != nil {
		return nil, fmt.Errorf("failed to parse docker ps output: %w", err)
	}

	return &ContainerInfo{
		ID:     data.ID,
		Name:   data.Names,
		Status: data.State,
		Image:  data.Image,
	}, nil
}

// Stop stops the running container for the given workspace.
// If remove is true, the container is also removed after stopping.
// Returns the stopped container info, or nil if nothing was running.
func Stop(workspaceDir string, remove bool) (*ContainerInfo, error) {
	absPath, err := filepath.Abs(workspaceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := FindRunning(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find running container: %w", err)
	}

	if info == nil {
		zlog.Debug("no running container to stop", zap.String("workspace", absPath))
		return nil, nil
	}

	zlog.Info("stopping container",
		zap.String("container_id", info.ID),
		zap.String("container_name", info.Name),
		zap.String("workspace", absPath))

	stopCmd := exec.Command("docker", "stop", info.ID)
	var stderr bytes.Buffer
	stopCmd.Stderr = &stderr

	if err := stopCmd.Run(); err != nil {
		return nil, fmt.Errorf("docker stop failed: %w (stderr: %s)", err, stderr.String())
	}

	zlog.Info("container stopped",
		zap.String("container_id", info.ID),
		zap.String("container_name", info.Name))

	// Launches use --rm, so the container usually disappears on stop already.
	// An explicit rm covers containers left behind by older versions.
	if remove {
		rmCmd := exec.Command("docker", "rm", info.ID)
		rmCmd.Stderr = &stderr

		if err := rmCmd.Run(); err != nil && !strings.Contains(stderr.String(), "No such container") {
			return nil, fmt.Errorf("docker rm failed: %w (stderr: %s)", err, stderr.String())
		}
	}

	return info, nil
}

// Remove removes a container by ID, stopping it first if needed
func Remove(containerID string) error {
	zlog.Info("removing container", zap.String("container_id", containerID))

	stopCmd := exec.Command("docker", "stop", containerID)
	_ = stopCmd.Run() // container might not be running

	cmd := exec.Command("docker", "rm", containerID)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker rm failed: %w (stderr: %s)", err, stderr.String())
	}

	return nil
}

// Shell connects to the running container's bash shell.
// Returns an error if no container is running for the given workspace.
func Shell(workspaceDir string) error {
	if InsideContainer() {
		return fmt.Errorf("you are already inside a container\nUse 'bash' to open a new shell, or exit and run 'reelrun shell' from the host")
	}

	absPath, err := filepath.Abs(workspaceDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := FindRunning(absPath)
	if err != nil {
		return fmt.Errorf("failed to find running container: %w", err)
	}

	if info == nil {
		return fmt.Errorf("no pipeline container is running for workspace: %s\nStart one first with: reelrun run", absPath)
	}

	zlog.Info("connecting to container shell",
		zap.String("container_id", info.ID),
		zap.String("container_name", info.Name),
		zap.String("workspace", absPath))

	cmd := exec.Command("docker", "exec", "-it", info.ID, "bash")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker exec failed: %w", err)
	}

	return nil
}

// InsideContainer checks if we're currently running inside a container
func InsideContainer() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}
