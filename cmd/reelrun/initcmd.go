package main

import (
	"path/filepath"

	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	. "github.com/streamingfast/cli"
)

var InitCommand = Command(initE,
	"init",
	"Seed the workspace files without launching the container",
	Description(`
		Creates the files the pipeline container mounts, without running it:
		- config.toml, seeded from the bundled template (or the template
		  configured via 'reelrun config template_path')
		- an empty .env file
		- the out/ directory

		Files that already exist are left untouched, so 'init' is safe to run
		repeatedly and never discards user edits.
	`),
	Flags(func(flags *pflag.FlagSet) {
		flags.StringP("workspace", "w", "", "Workspace directory (default: current directory)")
	}),
)

// initE seeds workspace files only
func initE(cmd *cobra.Command, args []string) error {
	ctx, err := LoadWorkspaceContext(cmd)
	if err != nil {
		return err
	}

	seeded, err := reelrun.SeedConfig(ctx.WorkspaceDir, ctx.Config)
	if err != nil {
		return err
	}
	if seeded {
		cmd.Printf("Created %s from template\n", filepath.Join(ctx.WorkspaceDir, reelrun.ConfigFileName))
	} else {
		cmd.Printf("%s already exists, left untouched\n", reelrun.ConfigFileName)
	}

	if err := reelrun.SeedEnvFile(ctx.WorkspaceDir); err != nil {
		return err
	}
	if err := reelrun.EnsureOutDir(ctx.WorkspaceDir); err != nil {
		return err
	}

	cmd.Println("Workspace ready. Edit config.toml, then launch with 'reelrun run'.")
	return nil
}
