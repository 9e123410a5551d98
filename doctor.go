package reelrun

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CheckResult is the outcome of a single doctor check
type CheckResult struct {
	// Name identifies the check (e.g., "docker")
	Name string
	// OK is true when the check passed
	OK bool
	// Detail is a short human-readable explanation
	Detail string
	// Warnings are non-fatal findings for a passing check
	Warnings []string
}

// Doctor runs the pre-flight checks for a workspace and returns their
// results. It never launches anything and never mutates the workspace.
func Doctor(workspaceDir string, config *Config) []CheckResult {
	var results []CheckResult

	if version, err := DockerAvailable(); err != nil {
		results = append(results, CheckResult{Name: "docker", Detail: err.Error()})
	} else {
		results = append(results, CheckResult{
			Name:   "docker",
			OK:     true,
			Detail: "client version " + strings.TrimSpace(version),
		})
	}

	configPath := filepath.Join(workspaceDir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		results = append(results, CheckResult{
			Name:   ConfigFileName,
			Detail: "not found; 'reelrun init' will seed it from the template",
		})
	} else if warnings, err := CheckPipelineConfig(workspaceDir); err != nil {
		results = append(results, CheckResult{Name: ConfigFileName, Detail: err.Error()})
	} else {
		results = append(results, CheckResult{
			Name:     ConfigFileName,
			OK:       true,
			Detail:   "valid TOML",
			Warnings: warnings,
		})
	}

	envPath := filepath.Join(workspaceDir, EnvFileName)
	if env, err := ReadEnvFile(workspaceDir); err != nil {
		results = append(results, CheckResult{Name: EnvFileName, Detail: err.Error()})
	} else if _, statErr := os.Stat(envPath); os.IsNotExist(statErr) {
		results = append(results, CheckResult{
			Name:   EnvFileName,
			Detail: "not found; 'reelrun init' will seed it",
		})
	} else {
		results = append(results, CheckResult{
			Name:   EnvFileName,
			OK:     true,
			Detail: fmt.Sprintf("%d variable(s)", len(env)),
		})
	}

	results = append(results, checkOutDir(workspaceDir))

	image := ResolveImage(LaunchOptions{WorkspaceDir: workspaceDir, Config: config})
	if ImageExists(image) {
		results = append(results, CheckResult{Name: "image", OK: true, Detail: image + " present locally"})
	} else {
		results = append(results, CheckResult{
			Name:   "image",
			Detail: image + " not present locally; 'reelrun pull' or the first run will fetch it",
		})
	}

	return results
}

// checkOutDir verifies out/ exists and is writable by creating and removing
// a probe file
func checkOutDir(workspaceDir string) CheckResult {
	outDir := filepath.Join(workspaceDir, OutDirName)

	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		return CheckResult{
			Name:   OutDirName + "/",
			Detail: "not found; 'reelrun init' will create it",
		}
	}

	probe, err := os.CreateTemp(outDir, ".reelrun-probe-*")
	if err != nil {
		return CheckResult{
			Name:   OutDirName + "/",
			Detail: fmt.Sprintf("not writable: %s", err),
		}
	}
	probe.Close()
	os.Remove(probe.Name())

	return CheckResult{Name: OutDirName + "/", OK: true, Detail: "writable"}
}
