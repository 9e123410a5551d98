package reelrun

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// PipelineConfig is the decoded view of a workspace config.toml. Only the
// sections the CLI cares about are typed; the pipeline itself reads the file
// directly through its mount and owns the full schema.
type PipelineConfig struct {
	Reddit struct {
		Creds struct {
			ClientID     string `toml:"client_id"`
			ClientSecret string `toml:"client_secret"`
			Username     string `toml:"username"`
		} `toml:"creds"`
	} `toml:"reddit"`

	Settings map[string]any `toml:"settings"`
}

// LoadPipelineConfig parses the workspace config.toml.
// Returns os.ErrNotExist (wrapped) when the file has not been seeded yet.
func LoadPipelineConfig(workspaceDir string) (*PipelineConfig, error) {
	configPath := filepath.Join(workspaceDir, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	var config PipelineConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid TOML in %s: %w", ConfigFileName, err)
	}

	return &config, nil
}

// CheckPipelineConfig validates the workspace config.toml and returns
// human-readable warnings for anything suspicious. A parse failure is an
// error; missing or empty sections are warnings since the pipeline has its
// own defaults.
func CheckPipelineConfig(workspaceDir string) ([]string, error) {
	config, err := LoadPipelineConfig(workspaceDir)
	if err != nil {
		return nil, err
	}

	var warnings []string

	if config.Reddit.Creds.ClientID == "" || config.Reddit.Creds.ClientSecret == "" {
		warnings = append(warnings, "[reddit.creds] client_id/client_secret are empty; the pipeline will not be able to fetch threads")
	}
	if config.Settings == nil {
		warnings = append(warnings, "[settings] section is missing; the pipeline will run with built-in defaults")
	}

	return warnings, nil
}
