// Package config defines the tmgen command line and its config-file surface.
package config

import "github.com/ticos/tmgen/internal/cmd"

// Log holds the logging flags shared by every command.
type Log struct {
	Level    string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"TMGEN_LOG_LEVEL"`
	File     string `help:"Write logs to this file instead of stdout/stderr" type:"path" env:"TMGEN_LOG_FILE"`
	Format   string `help:"Log format: auto (text on a terminal, JSON otherwise), text or json" default:"auto" enum:"auto,text,json" env:"TMGEN_LOG_FORMAT"`
	DumpFile string `name:"dump-file" help:"Dump every rendered artifact to this file" type:"path" env:"TMGEN_LOG_DUMP_FILE"`
}

// CLI is the root kong model.
type CLI struct {
	ConfigFile string `name:"config" help:"Path to a JSON, YAML or TOML config file" type:"path" env:"TMGEN_CONFIG"`
	Log        Log    `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" help:"Generate C sources from a thing model"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
	Version  cmd.Version       `cmd:"" help:"Print the generator version"`
}
