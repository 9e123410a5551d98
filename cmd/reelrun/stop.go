package main

import (
	"fmt"

	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	. "github.com/streamingfast/cli"
)

var StopCommand = Command(stopE,
	"stop",
	"Stop the running pipeline container for this workspace",
	Description(`
		Stops the pipeline container for the current workspace. If nothing is
		running, this command does nothing. Containers are launched with
		--rm, so stopping also removes them.

		With --all, also removes the workspace's stored configuration
		(container name, image override, volumes, envs). Asks for
		confirmation before proceeding. Workspace files (config.toml, .env,
		out/) are never touched.
	`),
	Flags(func(flags *pflag.FlagSet) {
		flags.Bool("all", false, "Also remove stored workspace configuration")
		flags.StringP("workspace", "w", "", "Workspace directory (default: current directory)")
	}),
)

// stopE stops the running container for the current workspace
func stopE(cmd *cobra.Command, args []string) error {
	workspaceDir, err := getWorkspaceDir(cmd)
	if err != nil {
		return err
	}

	removeAll, _ := cmd.Flags().GetBool("all")

	if removeAll {
		answeredYes, _ := AskConfirmation("This will remove the stored configuration for %s. Continue?", workspaceDir)
		if !answeredYes {
			cmd.Println("Aborted.")
			return nil
		}
	}

	info, err := reelrun.Stop(workspaceDir, true)
	if err != nil {
		return fmt.Errorf("failed to stop container: %w", err)
	}

	if info != nil {
		cmd.Printf("Container stopped: %s (%s)\n", info.Name, shortID(info.ID))
	} else {
		cmd.Println("No pipeline container was running for this workspace")
	}

	if removeAll {
		if err := reelrun.RemoveProjectData(workspaceDir); err != nil {
			return fmt.Errorf("failed to remove workspace data: %w", err)
		}
		cmd.Println("Workspace configuration removed")
	}

	return nil
}

// shortID truncates a container ID for display
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
