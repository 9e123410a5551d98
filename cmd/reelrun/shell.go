package main

import (
	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	. "github.com/streamingfast/cli"
)

var ShellCommand = Command(shellE,
	"shell",
	"Open a shell inside the running pipeline container",
	Description(`
		Opens a bash shell inside the running pipeline container for the
		current workspace. Errors if no container is running.

		This is equivalent to running: docker exec -it <container> bash
	`),
	Flags(func(flags *pflag.FlagSet) {
		flags.StringP("workspace", "w", "", "Workspace directory (default: current directory)")
	}),
)

// shellE opens a shell in the running container
func shellE(cmd *cobra.Command, args []string) error {
	workspaceDir, err := getWorkspaceDir(cmd)
	if err != nil {
		return err
	}

	return reelrun.Shell(workspaceDir)
}
