package main

import (
	"fmt"

	glamour "charm.land/glamour/v2"
	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
	. "github.com/streamingfast/cli"
)

var DocsCommand = Command(docsE,
	"docs",
	"Show the reelrun usage guide",
	Description(`
		Renders the bundled usage guide covering the workspace layout, the
		container mount contract and configuration.
	`),
)

// docsE renders the embedded usage guide to the terminal
func docsE(cmd *cobra.Command, args []string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithEnvironmentConfig(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := renderer.Render(reelrun.UsageMD)
	if err != nil {
		return fmt.Errorf("failed to render docs: %w", err)
	}

	cmd.Print(out)
	return nil
}
