package main

import (
	"fmt"
	"os"

	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	. "github.com/streamingfast/cli"
)

var InfoCommand = Command(infoE,
	"info",
	"Show workspace information",
	Description(`
		Shows information about the reelrun workspace for the current
		directory:
		- Workspace path and hash
		- Container name and running status
		- Pipeline image that would be launched
		- Additional volumes and environment variables
		- The exact docker command 'reelrun run' would execute

		With --all, lists all known workspaces that have been used with
		reelrun.
	`),
	Flags(func(flags *pflag.FlagSet) {
		flags.Bool("all", false, "Show all known workspaces")
		flags.StringP("workspace", "w", "", "Workspace directory (default: current directory)")
	}),
)

// infoE shows workspace information
func infoE(cmd *cobra.Command, args []string) error {
	showAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}

	if showAll {
		return infoAllProjects(cmd)
	}

	return infoCurrentProject(cmd)
}

// infoCurrentProject shows information for the current workspace
func infoCurrentProject(cmd *cobra.Command) error {
	ctx, err := LoadWorkspaceContext(cmd)
	if err != nil {
		return err
	}

	projectHash, err := reelrun.ProjectHash(ctx.WorkspaceDir)
	if err != nil {
		return err
	}

	cmd.Printf("Workspace: %s\n", ctx.WorkspaceDir)
	cmd.Printf("  Hash:  %s\n", projectHash)

	printProjectDetails(cmd, ctx.WorkspaceDir, ctx.Config, ctx.ProjectConfig, "  ")

	return nil
}

// infoAllProjects lists all known workspaces with their status
func infoAllProjects(cmd *cobra.Command) error {
	projects, err := reelrun.ListProjects()
	if err != nil {
		return fmt.Errorf("failed to list workspaces: %w", err)
	}

	if len(projects) == 0 {
		cmd.Println("No known workspaces.")
		cmd.Println("Run 'reelrun' in a directory to register it.")
		return nil
	}

	config, err := reelrun.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cmd.Println("Known workspaces:")
	cmd.Println()

	for _, project := range projects {
		pathDisplay := project.WorkspacePath
		if _, err := os.Stat(project.WorkspacePath); os.IsNotExist(err) {
			pathDisplay += " (path not found)"
		}

		cmd.Printf("  %s\n", pathDisplay)
		cmd.Printf("    Hash:  %s\n", project.Hash)
		printProjectDetails(cmd, project.WorkspacePath, config, project.Config, "    ")
		cmd.Println()
	}

	return nil
}

// printProjectDetails prints container status, image, volumes, envs, and the
// docker command for a workspace with consistent indentation
func printProjectDetails(cmd *cobra.Command, workspaceDir string, config *reelrun.Config, projectConfig *reelrun.ProjectConfig, prefix string) {
	opts := reelrun.LaunchOptions{
		WorkspaceDir:  workspaceDir,
		Config:        config,
		ProjectConfig: projectConfig,
	}

	cmd.Printf("%sImage: %s\n", prefix, reelrun.ResolveImage(opts))

	name := projectConfig.ContainerName
	if name == "" {
		if derived, err := reelrun.ContainerName(workspaceDir); err == nil {
			name = derived
		}
	}
	cmd.Printf("%sContainer:\n", prefix)
	if name != "" {
		cmd.Printf("%s  Name:   %s\n", prefix, name)
	}

	info, err := reelrun.Find(workspaceDir)
	switch {
	case err != nil:
		cmd.Printf("%s  Status: error (%s)\n", prefix, err)
	case info != nil:
		cmd.Printf("%s  Status: %s\n", prefix, info.Status)
		if info.Image != "" {
			cmd.Printf("%s  Image:  %s\n", prefix, info.Image)
		}
	default:
		cmd.Printf("%s  Status: not running\n", prefix)
	}

	if len(projectConfig.Volumes) > 0 {
		cmd.Printf("%sVolumes:\n", prefix)
		for _, v := range projectConfig.Volumes {
			cmd.Printf("%s  - %s\n", prefix, v)
		}
	}

	var globalEnvs []string
	if config != nil {
		globalEnvs = config.Envs
	}
	if merged := reelrun.MergeEnvs(globalEnvs, projectConfig.Envs); len(merged) > 0 {
		cmd.Printf("%sEnvs:\n", prefix)
		for _, e := range merged {
			cmd.Printf("%s  - %s\n", prefix, e)
		}
	}

	if dockerArgs, err := reelrun.BuildRunArgs(opts); err == nil {
		cmd.Printf("%sCommand:\n%s  docker %s\n", prefix, prefix, formatDockerCommand(dockerArgs))
	}
}
