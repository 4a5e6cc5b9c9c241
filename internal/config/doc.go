// SPDX-License-Identifier: MPL-2.0

// Package config loads gridkit settings with Viper, using CUE as the file
// format.
//
// The file is config.cue in the gridkit configuration directory
// ($XDG_CONFIG_HOME/gridkit on Linux), or in the working directory, or the
// path given with --config. It is validated against the embedded #Config
// schema before being merged over the defaults. GRIDKIT_* environment
// variables override file values, e.g. GRIDKIT_TABLE_HEIGHT=20.
package config
