// Package config loads guard's own settings.
//
// Settings are layered, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config, $XDG_CONFIG_HOME/guard/config.toml
//  3. the project config, .guard.toml in the working directory
//  4. GUARD_* environment variables (GUARD_LISTEN_LATENCY sets listen.latency)
//  5. command line flags
//
// Project-specific watch rules live in the Guardfile, see package guardfile.
package config
