// Package config loads portlauncher settings.
//
// Settings come from an optional file in YAML (gopkg.in/yaml.v3) or TOML
// (github.com/BurntSushi/toml); the format is chosen by file extension.
// Every field has a default, so running without a config file behaves
// exactly like the built-in launcher: apps/ in the working directory, ports
// 8000-8999, sh on macOS/Linux and cmd /C on Windows.
//
// Interpreter overrides are shell-quoted command lines split with
// github.com/kballard/go-shellquote, e.g.
//
//	interpreters:
//	  linux: "bash --noprofile"
package config
