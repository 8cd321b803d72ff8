package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAppsDir is where application directories live, relative to
	// the working directory.
	DefaultAppsDir = "apps"

	// DefaultPortStart and DefaultPortEnd bound the assignable range
	// [start, end).
	DefaultPortStart = 8000
	DefaultPortEnd   = 9000

	// DefaultListen is the address the HTTP API binds to.
	DefaultListen = "127.0.0.1:5000"

	// DefaultFileBase is the file name looked up in the working directory
	// when --config is not given. Extensions are tried in order.
	DefaultFileBase = "portlauncher"
)

// defaultExtensions are tried in order when discovering a config file.
var defaultExtensions = []string{".yaml", ".yml", ".toml"}

// Config holds all portlauncher settings.
type Config struct {
	// AppsDir is the directory containing one subdirectory per application.
	AppsDir string `yaml:"apps_dir" toml:"apps_dir"`

	// PortStart is the first port handed out.
	PortStart int `yaml:"port_start" toml:"port_start"`

	// PortEnd is the exclusive upper bound of the port range.
	PortEnd int `yaml:"port_end" toml:"port_end"`

	// ProbeHostPorts makes the allocator skip ports already bound on the
	// host, in addition to ports held by other launches.
	ProbeHostPorts bool `yaml:"probe_host_ports" toml:"probe_host_ports"`

	// Listen is the HTTP API bind address used by "serve".
	Listen string `yaml:"listen" toml:"listen"`

	// Interpreters overrides the interpreter per GOOS value
	// ("linux", "darwin", "windows"). Each value is a shell-quoted command
	// line; the script path is appended as the last argument.
	Interpreters map[string]string `yaml:"interpreters" toml:"interpreters"`

	// Path is the file the config was loaded from. Empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AppsDir:   DefaultAppsDir,
		PortStart: DefaultPortStart,
		PortEnd:   DefaultPortEnd,
		Listen:    DefaultListen,
	}
}

// Load reads the config file at path. An empty path searches the working
// directory for portlauncher.{yaml,yml,toml} and falls back to Default when
// none exists. Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := discover(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return Default(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default. ext selects the format (".toml"
// for TOML, anything else for YAML).
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, err
		}
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return cfg, nil
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// discover returns the first portlauncher.* file in dir, or "".
func discover(dir string) (string, error) {
	for _, ext := range defaultExtensions {
		candidate := filepath.Join(dir, DefaultFileBase+ext)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", candidate, err)
		}
	}
	return "", nil
}

// Validate checks that the Config is usable.
func (c *Config) Validate() error {
	if c.AppsDir == "" {
		return fmt.Errorf("apps_dir is required")
	}
	if c.PortStart < 1 || c.PortEnd > 65536 {
		return fmt.Errorf("port range %d-%d outside 1-65535", c.PortStart, c.PortEnd-1)
	}
	if c.PortStart >= c.PortEnd {
		return fmt.Errorf("port_start (%d) must be lower than port_end (%d)", c.PortStart, c.PortEnd)
	}
	if c.Listen == "" {
		return fmt.Errorf("listen is required")
	}
	for goos := range c.Interpreters {
		if _, err := c.Interpreter(goos); err != nil {
			return err
		}
	}
	return nil
}

// Interpreter returns the override argv for goos, or nil when none is set.
func (c *Config) Interpreter(goos string) ([]string, error) {
	line, ok := c.Interpreters[goos]
	if !ok {
		return nil, nil
	}
	argv, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("interpreters.%s: %w", goos, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("interpreters.%s: empty command line", goos)
	}
	return argv, nil
}
