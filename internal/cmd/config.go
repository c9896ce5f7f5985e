package cmd

import "github.com/jmartelli/sshrun/internal/config"

// loadGlobalConfig honors the --config flag and falls back to the default
// location.
func loadGlobalConfig() (*config.GlobalConfig, error) {
	if cfgFile != "" {
		return config.LoadGlobalConfigFrom(cfgFile)
	}
	return config.LoadGlobalConfig()
}

// saveGlobalConfig writes back to the same location loadGlobalConfig read.
func saveGlobalConfig(cfg *config.GlobalConfig) error {
	if cfgFile != "" {
		return config.SaveGlobalConfigTo(cfg, cfgFile)
	}
	return config.SaveGlobalConfig(cfg)
}
