package reelrun

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Workspace file names, fixed by the pipeline's mount contract.
const (
	ConfigFileName = "config.toml"
	EnvFileName    = ".env"
	OutDirName     = "out"
)

// envFileSkeleton is written when a workspace has no .env yet. The file must
// exist on disk because it is bind-mounted into the container as a file.
const envFileSkeleton = `# Secrets for the reelrun pipeline. Mounted into the container at /app/.env.
# Managed with 'reelrun env set NAME=VALUE' and 'reelrun env unset NAME'.
`

// Bootstrap ensures a workspace has everything the pipeline container mounts:
// a config.toml (seeded from the template when absent), a .env file and an
// out/ directory. Existing files are never touched.
func Bootstrap(workspaceDir string, config *Config) error {
	if _, err := SeedConfig(workspaceDir, config); err != nil {
		return err
	}
	if err := SeedEnvFile(workspaceDir); err != nil {
		return err
	}
	return EnsureOutDir(workspaceDir)
}

// SeedConfig writes the config template to <workspace>/config.toml when that
// file does not exist yet. A config.toml that is already present is left
// untouched, preserving any user edits. Returns true when a new file was
// written.
func SeedConfig(workspaceDir string, config *Config) (bool, error) {
	configPath := filepath.Join(workspaceDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		zlog.Debug("config already exists, leaving untouched",
			zap.String("path", configPath))
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	template, err := loadTemplate(config)
	if err != nil {
		return false, err
	}

	// O_EXCL so a concurrent seeding cannot clobber a config written in
	// between the stat and the write.
	f, err := os.OpenFile(configPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(template); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	zlog.Info("seeded config from template",
		zap.String("path", configPath),
		zap.Int("size", len(template)))

	return true, nil
}

// loadTemplate returns the config template bytes: the file at
// config.template_path when configured, the bundled template otherwise.
func loadTemplate(config *Config) ([]byte, error) {
	if config == nil || config.TemplatePath == "" {
		return ConfigTemplate, nil
	}

	data, err := os.ReadFile(config.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config template %q: %w", config.TemplatePath, err)
	}

	zlog.Debug("using on-disk config template",
		zap.String("path", config.TemplatePath))

	return data, nil
}

// SeedEnvFile creates an empty commented .env in the workspace if absent.
// An existing .env is never modified.
func SeedEnvFile(workspaceDir string) error {
	envPath := filepath.Join(workspaceDir, EnvFileName)

	f, err := os.OpenFile(envPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("failed to create env file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(envFileSkeleton); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}

	zlog.Info("seeded env file", zap.String("path", envPath))
	return nil
}

// EnsureOutDir creates <workspace>/out if missing. Pre-creating it on the
// host keeps ownership with the invoking user instead of docker's root.
func EnsureOutDir(workspaceDir string) error {
	outDir := filepath.Join(workspaceDir, OutDirName)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	return nil
}
