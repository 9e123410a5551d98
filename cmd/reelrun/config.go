package main

import (
	"fmt"

	"github.com/reelrun/reelrun"
	"github.com/spf13/cobra"
	. "github.com/streamingfast/cli"
)

var ConfigCommand = Command(configE,
	"config [key] [value]",
	"View or edit global configuration settings",
	Description(`
		Without arguments, displays the current global configuration.
		With a key, displays that setting's value.
		With key and value, sets the configuration option.

		This edits the CLI's own settings in ~/.config/reelrun/config.yaml,
		not the workspace config.toml (edit that file directly).
	`),
)

// configE views or edits global configuration
func configE(cmd *cobra.Command, args []string) error {
	if len(args) > 2 {
		return fmt.Errorf("expected at most 2 arguments, got %d", len(args))
	}

	config, err := reelrun.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) == 0 {
		cmd.Println("Global configuration:")
		cmd.Printf("  data_dir: %s\n", config.DataDir)
		cmd.Printf("  image: %s\n", config.Image)
		cmd.Printf("  template_path: %s\n", config.TemplatePath)
		cmd.Printf("  envs: %v\n", config.Envs)
		return nil
	}

	key := args[0]

	if len(args) == 1 {
		switch key {
		case "data_dir":
			cmd.Println(config.DataDir)
		case "image":
			cmd.Println(config.Image)
		case "template_path":
			cmd.Println(config.TemplatePath)
		case "envs":
			cmd.Printf("%v\n", config.Envs)
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		return nil
	}

	value := args[1]
	switch key {
	case "image":
		if value == "" {
			value = reelrun.DefaultImage
		}
		config.Image = value
	case "template_path":
		config.TemplatePath = value
	default:
		return fmt.Errorf("cannot set config key: %s (read-only or unknown)", key)
	}

	if err := reelrun.SaveConfig(config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
