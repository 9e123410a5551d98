package main

import (
	"fmt"

	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	. "github.com/streamingfast/cli"
)

var PullCommand = Command(pullE,
	"pull",
	"Fetch the pipeline image ahead of the first run",
	Description(`
		Pulls the pipeline image so the first 'reelrun run' doesn't block on
		a large download. The image is resolved the same way as for run:
		--image flag, workspace config, global config, built-in default.
	`),
	Flags(func(flags *pflag.FlagSet) {
		flags.StringP("workspace", "w", "", "Workspace directory (default: current directory)")
		flags.String("image", "", "Pipeline image to pull (default: from config)")
	}),
)

// pullE pulls the pipeline image
func pullE(cmd *cobra.Command, args []string) error {
	ctx, err := LoadWorkspaceContext(cmd)
	if err != nil {
		return err
	}

	image, err := cmd.Flags().GetString("image")
	if err != nil {
		return fmt.Errorf("failed to get image flag: %w", err)
	}

	resolved := reelrun.ResolveImage(reelrun.LaunchOptions{
		WorkspaceDir:  ctx.WorkspaceDir,
		Image:         image,
		Config:        ctx.Config,
		ProjectConfig: ctx.ProjectConfig,
	})

	cmd.Printf("Pulling %s...\n", resolved)
	if err := reelrun.PullImage(resolved); err != nil {
		return err
	}

	cmd.Println("Image pulled")
	return nil
}
