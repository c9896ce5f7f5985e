// Package config manages the sshrun server registry, a YAML file under the
// user configuration directory.
package config

// GlobalConfig represents the global ~/.config/sshrun/config.yaml
type GlobalConfig struct {
	Servers     map[string]ServerConfig `yaml:"servers"`
	DefaultUser string                  `yaml:"default_user,omitempty"`
	DefaultPort int                     `yaml:"default_port,omitempty"`
}

// ServerConfig represents a configured remote host.
type ServerConfig struct {
	Host string `yaml:"host" validate:"required"`
	User string `yaml:"user" validate:"required"`
	Port int    `yaml:"port,omitempty" validate:"gte=0,lte=65535"`

	// KeyPath points at a private key file. Password is stored only when
	// the user explicitly asks for it; prompting is the default.
	KeyPath  string `yaml:"key_path,omitempty"`
	Password string `yaml:"password,omitempty"`

	// Insecure disables host key verification for this server.
	Insecure bool `yaml:"insecure,omitempty"`

	// KnownHostsPath overrides ~/.ssh/known_hosts.
	KnownHostsPath string `yaml:"known_hosts,omitempty"`
}

// DefaultGlobalConfig returns a default global configuration.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Servers:     make(map[string]ServerConfig),
		DefaultPort: 22,
	}
}
