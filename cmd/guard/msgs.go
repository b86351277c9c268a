package guard

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Run commands when files change"
	MsgMatchShort      = "Print the paths guards derive from changed paths"
	MsgCheckShort      = "Exit 0 if any guard derives a path from changed paths"
	MsgWatchShort      = "Watch files and run guards on changes"
	MsgInitShort       = "Write a starter Guardfile"
	MsgShowShort       = "List the guards of the Guardfile"
	MsgConfigShort     = "Print the default settings"
	MsgConfigLong      = "Config prints the default settings. Save them to $XDG_CONFIG_HOME/guard/config.toml or .guard.toml and edit what you need."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgGuardfileWritten = "Wrote %s\n"
	MsgNoGuards         = "No guards selected."
	MsgWatching         = "Watching %s (%d guards)\n"
	MsgMetricsServing   = "Serving metrics on %s/metrics\n"
	MsgManWritten       = "Wrote man pages to %s\n"

	// Error messages
	MsgErrGuardfileExists = "%s already exists, use --force to overwrite"
	MsgErrMetricsServer   = "metrics server stopped"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Settings file (default $XDG_CONFIG_HOME/guard/config.toml)"
	MsgFlagGuardfile   = "Guardfile to load (default: found in the working directory)"
	MsgFlagFormat      = "Output format: auto, terminal, text, json or yaml"
	MsgFlagGroup       = "Only use guards of these groups"
	MsgFlagGuard       = "Only use guards with these names"
	MsgFlagMetricsAddr = "Serve Prometheus metrics on this address"
	MsgFlagForce       = "Overwrite an existing Guardfile"
	MsgFlagManDir      = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/match-long.txt
	msgMatchLongRaw string
	MsgMatchLong    = strings.TrimSpace(msgMatchLongRaw)

	//go:embed msgs/match-example.txt
	msgMatchExampleRaw string
	MsgMatchExample    = strings.TrimRight(msgMatchExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
