package main

import (
	"fmt"
	"os"

	. "github.com/streamingfast/cli"
	"github.com/streamingfast/logging"
	"go.uber.org/zap"
)

// Version is set via ldflags at build time
var version = "dev"

var zlog, _ = logging.PackageLogger("reelrun", "github.com/reelrun/reelrun/cmd/reelrun")

func init() {
	logging.InstantiateLoggers(logging.WithDefaultLevel(zap.DPanicLevel))
}

func main() {
	Run(
		"reelrun <command>",
		"Bootstrap a workspace and launch the reelrun video pipeline container",

		ConfigureVersion(version),
		ConfigureViper("REELRUN"),

		// Default command (no subcommand = run)
		Execute(runE),

		RunCommand,
		InitCommand,
		ConfigCommand,
		EnvGroup,
		InfoCommand,
		StopCommand,
		ShellCommand,
		PullCommand,
		CheckCommand,
		CleanCommand,
		DocsCommand,

		OnCommandError(func(err error) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			zlog.Debug("command error", zap.Error(err))
			os.Exit(1)
		}),
	)
}
