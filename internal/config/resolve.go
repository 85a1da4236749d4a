package config

import "os"

// ResolvedConfig represents the final merged configuration with all
// precedence rules applied. Precedence order (highest to lowest):
// 1. Project config (fn.toml)
// 2. Global config (~/.fn/config.toml)
// 3. Built-in defaults (localhost:7433, no actor, no pinned data dir)
type ResolvedConfig struct {
	Project    string
	DataDir    string
	Actor      string
	ServerHost string
	ServerPort int
}

// ResolveConfig discovers the project config, loads the global config,
// and merges them according to precedence rules.
func ResolveConfig() (*ResolvedConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return ResolveConfigWithHome(homeDir)
}

// ResolveConfigWithHome resolves config using a specified home directory.
// This is useful for testing.
func ResolveConfigWithHome(homeDir string) (*ResolvedConfig, error) {
	// Both layers are optional; an absent fn.toml means all addressing
	// comes from the global config or the defaults.
	projectCfg, err := DiscoverProjectConfig()
	if err != nil {
		return nil, err
	}

	globalCfg, err := LoadGlobalConfigFromDir(homeDir)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedConfig{
		ServerHost: DefaultServerHost,
		ServerPort: DefaultServerPort,
	}

	resolved.Actor = globalCfg.Actor
	if globalCfg.ServerHost != "" {
		resolved.ServerHost = globalCfg.ServerHost
	}
	if globalCfg.ServerPort != 0 {
		resolved.ServerPort = globalCfg.ServerPort
	}

	if projectCfg != nil {
		resolved.Project = projectCfg.Project
		resolved.DataDir = projectCfg.DataDir
		if projectCfg.HostExplicitlySet() {
			resolved.ServerHost = projectCfg.ServerHost
		}
		if projectCfg.PortExplicitlySet() {
			resolved.ServerPort = projectCfg.ServerPort
		}
	}

	return resolved, nil
}
