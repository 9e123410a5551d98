package main

import (
	"fmt"
	"path/filepath"

	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	. "github.com/streamingfast/cli"
)

var CleanCommand = Command(cleanE,
	"clean",
	"Remove leftover reelrun containers and cached workspace data",
	Flags(func(flags *pflag.FlagSet) {
		flags.Bool("all", false, "Also remove all stored workspace data")
	}),
)

// cleanE removes stopped reelrun containers and, with --all, project data
func cleanE(cmd *cobra.Command, args []string) error {
	cleanAll, _ := cmd.Flags().GetBool("all")

	containers, err := reelrun.List()
	if err != nil {
		return fmt.Errorf("failed to list containers: %w", err)
	}

	removed := 0
	for _, c := range containers {
		if c.Status == "running" {
			cmd.Printf("Skipping running container %s\n", c.Name)
			continue
		}
		if err := reelrun.Remove(c.ID); err != nil {
			cmd.Printf("Failed to remove %s: %s\n", c.Name, err)
			continue
		}
		cmd.Printf("Removed container %s\n", c.Name)
		removed++
	}
	if removed == 0 {
		cmd.Println("No leftover containers to remove")
	}

	if cleanAll {
		answeredYes, _ := AskConfirmation("This will remove ALL stored workspace data. Continue?")
		if !answeredYes {
			cmd.Println("Aborted.")
			return nil
		}

		config, err := reelrun.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		projects, err := reelrun.ListProjects()
		if err != nil {
			return fmt.Errorf("failed to list workspaces: %w", err)
		}
		for _, project := range projects {
			if err := reelrun.RemoveProjectData(project.WorkspacePath); err != nil {
				cmd.Printf("Failed to remove data for %s: %s\n", project.WorkspacePath, err)
			}
		}

		cmd.Printf("Workspace data cleaned from %s\n", filepath.Join(config.DataDir, "projects"))
	}

	cmd.Println("Cleanup complete")
	return nil
}
