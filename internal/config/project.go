package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigFileName is the name of the project configuration file
	ConfigFileName = "fn.toml"

	// DefaultServerHost is the default inspection server host
	DefaultServerHost = "localhost"

	// DefaultServerPort is the default inspection server port
	DefaultServerPort = 7433
)

// ProjectConfig represents the project-level configuration from fn.toml.
// The file is optional: the tracker works from the record directory alone,
// and fn.toml only pins the project name, the record directory, and the
// inspection server address.
type ProjectConfig struct {
	Project    string
	DataDir    string
	ServerHost string
	ServerPort int

	// Track whether values were explicitly set in config file
	hostExplicitlySet bool
	portExplicitlySet bool
}

// projectConfigFile represents the raw TOML structure
type projectConfigFile struct {
	Project string       `toml:"project"`
	DataDir string       `toml:"data_dir"`
	Server  serverConfig `toml:"server"`
}

// serverConfig represents the [server] section in TOML
type serverConfig struct {
	Host string `toml:"host"`
	Port *int   `toml:"port"`
}

// DiscoverProjectConfig finds and parses the fn.toml file by traversing up
// the directory tree from the current working directory. A missing file is
// not an error; it returns (nil, nil).
func DiscoverProjectConfig() (*ProjectConfig, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	return discoverProjectConfigFrom(cwd)
}

// discoverProjectConfigFrom searches for fn.toml starting from the given directory
func discoverProjectConfigFrom(startDir string) (*ProjectConfig, error) {
	dir := startDir

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return ParseProjectConfig(configPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return nil, nil
		}
		dir = parent
	}
}

// ParseProjectConfig parses the fn.toml file at the given path
func ParseProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig projectConfigFile
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if rawConfig.Project == "" {
		return nil, errors.New("project name cannot be empty")
	}

	if rawConfig.Server.Port != nil {
		if err := validatePort(*rawConfig.Server.Port); err != nil {
			return nil, err
		}
	}

	cfg := &ProjectConfig{
		Project:    rawConfig.Project,
		ServerHost: DefaultServerHost,
		ServerPort: DefaultServerPort,
	}

	// A relative data_dir is anchored at the config file's directory.
	if rawConfig.DataDir != "" {
		if filepath.IsAbs(rawConfig.DataDir) {
			cfg.DataDir = rawConfig.DataDir
		} else {
			cfg.DataDir = filepath.Join(filepath.Dir(path), rawConfig.DataDir)
		}
	}

	if rawConfig.Server.Host != "" {
		cfg.ServerHost = rawConfig.Server.Host
		cfg.hostExplicitlySet = true
	}
	if rawConfig.Server.Port != nil {
		cfg.ServerPort = *rawConfig.Server.Port
		cfg.portExplicitlySet = true
	}

	return cfg, nil
}

// HostExplicitlySet returns true if the host was explicitly set in the config file
func (c *ProjectConfig) HostExplicitlySet() bool {
	return c.hostExplicitlySet
}

// PortExplicitlySet returns true if the port was explicitly set in the config file
func (c *ProjectConfig) PortExplicitlySet() bool {
	return c.portExplicitlySet
}

// validatePort checks if the port is in the valid range (1-65535)
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	return nil
}
