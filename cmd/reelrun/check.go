package main

import (
	"fmt"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	. "github.com/streamingfast/cli"
)

var CheckCommand = Command(checkE,
	"check",
	"Verify docker, the workspace and the image are ready to run",
	Description(`
		Runs pre-flight checks without launching anything:
		- docker binary present and responding
		- config.toml present and valid TOML
		- .env file present and parseable
		- out/ directory writable
		- pipeline image available locally

		Exits non-zero when any check fails.
	`),
	Flags(func(flags *pflag.FlagSet) {
		flags.StringP("workspace", "w", "", "Workspace directory (default: current directory)")
	}),
)

var (
	checkPassStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).SetString("ok")
	checkFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).SetString("FAIL")
	checkWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// checkE runs the doctor checks and reports the results
func checkE(cmd *cobra.Command, args []string) error {
	ctx, err := LoadWorkspaceContext(cmd)
	if err != nil {
		return err
	}

	results := reelrun.Doctor(ctx.WorkspaceDir, ctx.Config)

	failed := 0
	for _, result := range results {
		status := checkPassStyle.String()
		if !result.OK {
			status = checkFailStyle.String()
			failed++
		}
		cmd.Printf("  [%s] %-14s %s\n", status, result.Name, result.Detail)
		for _, warning := range result.Warnings {
			cmd.Printf("         %s\n", checkWarnStyle.Render("warning: "+warning))
		}
	}

	cmd.Println()
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}

	cmd.Println("All checks passed.")
	return nil
}
