package reelrun

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultImage is the pre-built pipeline image launched when no override is
// configured.
const DefaultImage = "ghcr.io/reelrun/pipeline:latest"

// Config holds global configuration for reelrun
type Config struct {
	// DataDir is the path to reelrun's data directory (default: ~/.config/reelrun)
	DataDir string `yaml:"data_dir"`

	// Image overrides the pipeline image to launch (default: DefaultImage)
	Image string `yaml:"image"`

	// TemplatePath points to an on-disk config.toml template used instead of
	// the bundled one when seeding a workspace (empty: use bundled template)
	TemplatePath string `yaml:"template_path"`

	// Envs are environment variables injected into every launch.
	// "NAME" passes the host value through, "NAME=VALUE" sets it explicitly.
	Envs []string `yaml:"envs"`
}

// ProjectConfig holds per-workspace configuration settings
type ProjectConfig struct {
	// WorkspacePath is the absolute path to the workspace
	// This is stored to allow listing projects by path
	WorkspacePath string `yaml:"workspace_path"`

	// ContainerName is the container name used for this workspace
	ContainerName string `yaml:"container_name"`

	// Image overrides the pipeline image for this workspace
	Image string `yaml:"image"`

	// Volumes are additional volumes to mount into the container
	// Format: "hostpath:containerpath[:ro]"
	Volumes []string `yaml:"volumes"`

	// Envs are additional environment variables for this workspace
	Envs []string `yaml:"envs"`
}

// LoadConfig loads the global reelrun configuration from
// ~/.config/reelrun/config.yaml, creating the directory if needed.
// Returns sensible defaults if the config file doesn't exist.
func LoadConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	config := &Config{
		DataDir: filepath.Join(homeDir, ".config", "reelrun"),
		Image:   DefaultImage,
	}

	if err := os.MkdirAll(config.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reelrun data directory: %w", err)
	}

	configPath := filepath.Join(config.DataDir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			zlog.Debug("no config file found, using defaults",
				zap.String("config_path", configPath))
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Image == "" {
		config.Image = DefaultImage
	}
	config.DataDir = expandPath(config.DataDir)
	if config.TemplatePath != "" {
		config.TemplatePath = expandPath(config.TemplatePath)
	}

	zlog.Debug("loaded config",
		zap.String("config_path", configPath),
		zap.String("data_dir", config.DataDir),
		zap.String("image", config.Image),
		zap.String("template_path", config.TemplatePath))

	return config, nil
}

// SaveConfig saves the global configuration to <data_dir>/config.yaml
func SaveConfig(config *Config) error {
	configPath := filepath.Join(config.DataDir, "config.yaml")

	if err := os.MkdirAll(config.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create reelrun data directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	zlog.Debug("saved config", zap.String("config_path", configPath))
	return nil
}

// ProjectHash computes the identifier used to store per-workspace data.
// It is the first 12 hex chars of the SHA-256 of the absolute workspace path.
func ProjectHash(workspacePath string) (string, error) {
	absPath, err := filepath.Abs(workspacePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	hash := sha256.Sum256([]byte(absPath))
	return hex.EncodeToString(hash[:])[:12], nil
}

// GetProjectConfig loads the per-workspace configuration.
// Loads from <data_dir>/projects/<hash>/config.yaml if it exists,
// returns defaults otherwise.
func GetProjectConfig(workspacePath string) (*ProjectConfig, string, error) {
	absPath, err := filepath.Abs(workspacePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	projectHash, err := ProjectHash(absPath)
	if err != nil {
		return nil, "", err
	}

	projectConfig := &ProjectConfig{}

	globalConfig, err := LoadConfig()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load global config: %w", err)
	}

	configPath := filepath.Join(globalConfig.DataDir, "projects", projectHash, "config.yaml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			zlog.Debug("no project config found, using defaults",
				zap.String("workspace", absPath),
				zap.String("project_hash", projectHash),
				zap.String("config_path", configPath))
			return projectConfig, projectHash, nil
		}
		return nil, "", fmt.Errorf("failed to read project config: %w", err)
	}

	if err := yaml.Unmarshal(data, projectConfig); err != nil {
		return nil, "", fmt.Errorf("failed to parse project config: %w", err)
	}

	zlog.Debug("loaded project config",
		zap.String("workspace", absPath),
		zap.String("project_hash", projectHash),
		zap.String("config_path", configPath))

	return projectConfig, projectHash, nil
}

// SaveProjectConfig saves the per-workspace configuration
func SaveProjectConfig(workspacePath string, projectConfig *ProjectConfig) error {
	absPath, err := filepath.Abs(workspacePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	// Ensure workspace path is stored in the config
	projectConfig.WorkspacePath = absPath

	projectHash, err := ProjectHash(absPath)
	if err != nil {
		return err
	}

	globalConfig, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load global config: %w", err)
	}

	projectDir := filepath.Join(globalConfig.DataDir, "projects", projectHash)
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	configPath := filepath.Join(projectDir, "config.yaml")

	data, err := yaml.Marshal(projectConfig)
	if err != nil {
		return fmt.Errorf("failed to serialize project config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write project config file: %w", err)
	}

	zlog.Debug("saved project config",
		zap.String("workspace", absPath),
		zap.String("project_hash", projectHash),
		zap.String("config_path", configPath))

	return nil
}

// RemoveProjectData removes all stored data for a workspace.
func RemoveProjectData(workspacePath string) error {
	absPath, err := filepath.Abs(workspacePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	projectHash, err := ProjectHash(absPath)
	if err != nil {
		return err
	}

	globalConfig, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load global config: %w", err)
	}

	projectDir := filepath.Join(globalConfig.DataDir, "projects", projectHash)

	zlog.Debug("removing project data",
		zap.String("workspace", absPath),
		zap.String("project_hash", projectHash),
		zap.String("project_dir", projectDir))

	if err := os.RemoveAll(projectDir); err != nil {
		return fmt.Errorf("failed to remove project directory: %w", err)
	}

	zlog.Info("removed project data",
		zap.String("workspace", absPath),
		zap.String("project_hash", projectHash))

	return nil
}

// ProjectInfo contains information about a known workspace
type ProjectInfo struct {
	// Hash is the project hash (directory name)
	Hash string

	// WorkspacePath is the absolute path to the workspace
	WorkspacePath string

	// Config is the project configuration
	Config *ProjectConfig
}

// ListProjects returns information about all known workspaces
func ListProjects() ([]ProjectInfo, error) {
	globalConfig, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}

	projectsDir := filepath.Join(globalConfig.DataDir, "projects")

	if _, err := os.Stat(projectsDir); os.IsNotExist(err) {
		return nil, nil // No projects yet
	}

	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects directory: %w", err)
	}

	var projects []ProjectInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		projectHash := entry.Name()
		configPath := filepath.Join(projectsDir, projectHash, "config.yaml")

		data, err := os.ReadFile(configPath)
		if err != nil {
			zlog.Debug("failed to read project config",
				zap.String("hash", projectHash),
				zap.Error(err))
			continue
		}

		var config ProjectConfig
		if err := yaml.Unmarshal(data, &config); err != nil {
			zlog.Debug("failed to parse project config",
				zap.String("hash", projectHash),
				zap.Error(err))
			continue
		}

		projects = append(projects, ProjectInfo{
			Hash:          projectHash,
			WorkspacePath: config.WorkspacePath,
			Config:        &config,
		})
	}

	return projects, nil
}

// ParseVolumeSpec parses a volume specification into host path, container path, and options.
// Format: "hostpath:containerpath[:ro]"
func ParseVolumeSpec(spec string) (hostPath, containerPath string, readOnly bool, err error) {
	parts := strings.Split(spec, ":")

	switch len(parts) {
	case 2:
		return parts[0], parts[1], false, nil
	case 3:
		if parts[2] == "ro" {
			return parts[0], parts[1], true, nil
		}
		return "", "", false, fmt.Errorf("invalid volume option %q (expected 'ro')", parts[2])
	default:
		return "", "", false, fmt.Errorf("invalid volume specification %q (expected 'hostpath:containerpath[:ro]')", spec)
	}
}

// ResolveVolumePath resolves a volume host path relative to a base directory.
// Paths starting with ./ or ../ are resolved relative to baseDir.
// Paths starting with ~ are expanded to the user's home directory.
// Other paths are returned as-is (absolute paths).
func ResolveVolumePath(volumePath, baseDir string) (string, error) {
	if strings.HasPrefix(volumePath, "~/") || volumePath == "~" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if volumePath == "~" {
			return homeDir, nil
		}
		return filepath.Join(homeDir, volumePath[2:]), nil
	}

	if strings.HasPrefix(volumePath, "./") || strings.HasPrefix(volumePath, "../") {
		return filepath.Join(baseDir, volumePath), nil
	}

	return volumePath, nil
}

// MergeEnvs combines global, project and CLI env entries, later sources
// overriding earlier ones by name. Each entry is "NAME" (host passthrough)
// or "NAME=VALUE" (explicit). Returns the merged entries in stable order.
func MergeEnvs(sources ...[]string) []string {
	index := make(map[string]int)
	var merged []string

	for _, source := range sources {
		for _, entry := range source {
			name := entry
			if i := strings.IndexByte(entry, '='); i >= 0 {
				name = entry[:i]
			}
			if name == "" {
				continue
			}
			if pos, ok := index[name]; ok {
				merged[pos] = entry
				continue
			}
			index[name] = len(merged)
			merged = append(merged, entry)
		}
	}

	return merged
}

// expandPath expands ~ to home directory and makes path absolute
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
