package reelrun

import (
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// ImageExists checks if the given image is present locally
func ImageExists(image string) bool {
	cmd := exec.Command("docker", "image", "inspect", image)
	return cmd.Run() == nil
}

// PullImage fetches the pipeline image, streaming docker's progress output
// to the terminal
func PullImage(image string) error {
	zlog.Info("pulling pipeline image", zap.String("image", image))

	cmd := exec.Command("docker", "pull", image)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker pull failed: %w", err)
	}

	return nil
}

// DockerAvailable reports whether the docker CLI is usable.
// Returns the version string on success.
func DockerAvailable() (string, error) {
	path, err := exec.LookPath("docker")
	if err != nil {
		return "", fmt.Errorf("docker binary not found on PATH: %w", err)
	}

	cmd := exec.Command("docker", "version", "--format", "{{.Client.Version}}")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("docker at %s is not responding: %w", path, err)
	}

	return string(output), nil
}
