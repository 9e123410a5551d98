package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
)

// WorkspaceContext contains the resolved configuration for a workspace.
// This consolidates the common pattern of loading the global and project
// configs that appears in run, info, stop and env commands.
type WorkspaceContext struct {
	WorkspaceDir  string
	Config        *reelrun.Config
	ProjectConfig *reelrun.ProjectConfig
}

// LoadWorkspaceContext loads all configuration for the workspace selected by
// the --workspace flag (default: current directory).
func LoadWorkspaceContext(cmd *cobra.Command) (*WorkspaceContext, error) {
	workspaceDir, err := getWorkspaceDir(cmd)
	if err != nil {
		return nil, err
	}

	config, err := reelrun.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	projectConfig, _, err := reelrun.GetProjectConfig(workspaceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	return &WorkspaceContext{
		WorkspaceDir:  workspaceDir,
		Config:        config,
		ProjectConfig: projectConfig,
	}, nil
}

// getWorkspaceDir extracts the workspace directory from the --workspace flag
// or defaults to the current working directory.
func getWorkspaceDir(cmd *cobra.Command) (string, error) {
	workspaceDir, err := cmd.Flags().GetString("workspace")
	if err != nil {
		return "", fmt.Errorf("failed to get workspace flag: %w", err)
	}
	if workspaceDir == "" {
		workspaceDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	return workspaceDir, nil
}

// formatDockerCommand formats docker command arguments for display.
// Values containing spaces are quoted.
func formatDockerCommand(args []string) string {
	var result []string
	for _, arg := range args {
		if strings.Contains(arg, " ") {
			arg = fmt.Sprintf("%q", arg)
		}
		result = append(result, arg)
	}
	return strings.Join(result, " ")
}
