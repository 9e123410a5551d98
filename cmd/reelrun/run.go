package main

import (
	"fmt"

	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	. "github.com/streamingfast/cli"
	"go.uber.org/zap"
)

var RunCommand = Command(runE,
	"run",
	"Bootstrap the workspace and launch the pipeline container",
	Description(`
		Ensures the workspace has a config.toml (seeded from the bundled
		template on first run), a .env file and an out/ directory, then runs
		the pipeline image with:
		- out/ mounted at /app/assets
		- .env mounted at /app/.env
		- config.toml mounted at /app/config.toml

		The container runs in the foreground with the terminal attached
		(docker run --rm -it) and is removed automatically when the pipeline
		exits. An existing config.toml is never overwritten.
	`),
	Flags(func(flags *pflag.FlagSet) {
		flags.StringP("workspace", "w", "", "Workspace directory (default: current directory)")
		flags.String("image", "", "Pipeline image to run (default: from config)")
		flags.StringSliceP("volume", "v", nil, "Additional volume mounts (host:container[:ro])")
		flags.StringSliceP("env", "e", nil, "Additional environment variables (NAME or NAME=VALUE)")
	}),
)

// runE bootstraps the workspace and launches the pipeline container
func runE(cmd *cobra.Command, args []string) error {
	zlog.Debug("starting reelrun run command")

	ctx, err := LoadWorkspaceContext(cmd)
	if err != nil {
		return err
	}

	image, err := cmd.Flags().GetString("image")
	if err != nil {
		return fmt.Errorf("failed to get image flag: %w", err)
	}

	volumes, err := cmd.Flags().GetStringSlice("volume")
	if err != nil {
		return fmt.Errorf("failed to get volume flag: %w", err)
	}

	envs, err := cmd.Flags().GetStringSlice("env")
	if err != nil {
		return fmt.Errorf("failed to get env flag: %w", err)
	}

	// Generate a container name once so other terminals see a stable name
	if ctx.ProjectConfig.ContainerName == "" {
		containerName, err := reelrun.ContainerName(ctx.WorkspaceDir)
		if err != nil {
			return fmt.Errorf("failed to generate container name: %w", err)
		}
		ctx.ProjectConfig.ContainerName = containerName
		zlog.Debug("generated container name", zap.String("name", containerName))
	}

	// Refuse a second concurrent launch for the same workspace
	if running, err := reelrun.FindRunning(ctx.WorkspaceDir); err == nil && running != nil {
		return fmt.Errorf("a pipeline container is already running for this workspace: %s (%s)\nUse 'reelrun shell' to join it or 'reelrun stop' to stop it", running.Name, running.ID)
	}

	// Register this workspace (for reelrun info) BEFORE launching so other
	// terminals can see it while the pipeline runs
	if err := reelrun.SaveProjectConfig(ctx.WorkspaceDir, ctx.ProjectConfig); err != nil {
		zlog.Warn("failed to save project config", zap.Error(err))
		// Non-fatal: continue launching even if we can't save config
	}

	opts := reelrun.LaunchOptions{
		WorkspaceDir:  ctx.WorkspaceDir,
		Image:         image,
		Volumes:       volumes,
		Envs:          envs,
		Config:        ctx.Config,
		ProjectConfig: ctx.ProjectConfig,
	}

	cmd.Printf("Launching pipeline container '%s'...\n", ctx.ProjectConfig.ContainerName)

	return reelrun.Launch(opts)
}
