package reelrun

import (
	_ "embed"
)

// ConfigTemplate is the bundled default config.toml, written verbatim into a
// workspace the first time it is bootstrapped.
//
//go:embed embedded/config.template.toml
var ConfigTemplate []byte

// UsageMD is the rendered source for the `reelrun docs` command.
//
//go:embed embedded/usage.md
var UsageMD string
