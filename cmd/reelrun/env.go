package main

import (
	"fmt"
	"strings"

	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	. "github.com/streamingfast/cli"
)

var EnvGroup = Group("env", "Manage the workspace .env file",
	Command(envListE,
		"list",
		"List variables defined in the workspace .env file",
		Flags(envWorkspaceFlag),
	),
	Command(envSetE,
		"set <NAME=VALUE...>",
		"Set variables in the workspace .env file",
		MinimumNArgs(1),
		Flags(envWorkspaceFlag),
	),
	Command(envUnsetE,
		"unset <names...>",
		"Remove variables from the workspace .env file",
		MinimumNArgs(1),
		Flags(envWorkspaceFlag),
	),
)

func envWorkspaceFlag(flags *pflag.FlagSet) {
	flags.StringP("workspace", "w", "", "Workspace directory (default: current directory)")
}

// envListE lists the variables in the workspace .env file
func envListE(cmd *cobra.Command, args []string) error {
	workspaceDir, err := getWorkspaceDir(cmd)
	if err != nil {
		return err
	}

	env, err := reelrun.ReadEnvFile(workspaceDir)
	if err != nil {
		return err
	}

	if len(env) == 0 {
		cmd.Println("No variables in .env.")
		cmd.Println("Use 'reelrun env set NAME=VALUE' to add one.")
		return nil
	}

	cmd.Println("Workspace .env:")
	for _, name := range reelrun.EnvNames(env) {
		cmd.Printf("  %s=%s\n", name, env[name])
	}

	return nil
}

// envSetE sets variables in the workspace .env file
func envSetE(cmd *cobra.Command, args []string) error {
	workspaceDir, err := getWorkspaceDir(cmd)
	if err != nil {
		return err
	}

	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("invalid assignment %q (expected NAME=VALUE)", arg)
		}

		if err := reelrun.SetEnv(workspaceDir, name, value); err != nil {
			return err
		}
		cmd.Printf("Set %s\n", name)
	}

	return nil
}

// envUnsetE removes variables from the workspace .env file
func envUnsetE(cmd *cobra.Command, args []string) error {
	workspaceDir, err := getWorkspaceDir(cmd)
	if err != nil {
		return err
	}

	for _, name := range args {
		removed, err := reelrun.UnsetEnv(workspaceDir, name)
		if err != nil {
			return err
		}
		if removed {
			cmd.Printf("Removed %s\n", name)
		} else {
			cmd.Printf("%s was not set\n", name)
		}
	}

	return nil
}
