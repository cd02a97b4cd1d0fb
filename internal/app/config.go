package app

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/appops-dev/appops/internal/domain"
	"github.com/appops-dev/appops/internal/usecase/session"
)

// EnvServerName names the server configured through APPOPS_SSH_* variables.
const EnvServerName = "default"

// Transport kinds.
const (
	TransportExec   = "exec"
	TransportNative = "native"
)

// ServerConfig is one entry of the [servers] table.
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	PrivateKey     string `mapstructure:"private_key"`
	PrivateKeyFile string `mapstructure:"private_key_file"`
}

// Config holds the application configuration.
type Config struct {
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   struct {
			Enabled    bool   `mapstructure:"enabled"`
			Path       string `mapstructure:"path"`
			MaxSize    int    `mapstructure:"max_size"`
			MaxBackups int    `mapstructure:"max_backups"`
			MaxAge     int    `mapstructure:"max_age"`
		} `mapstructure:"file"`
	} `mapstructure:"logging"`

	SSH struct {
		Transport      string        `mapstructure:"transport"` // "exec" or "native"
		Binary         string        `mapstructure:"binary"`
		RemoteCommand  string        `mapstructure:"remote_command"`
		ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
		KeyDir         string        `mapstructure:"key_dir"`

		// Single server given through the environment (APPOPS_SSH_HOST...).
		Host       string `mapstructure:"host"`
		Port       int    `mapstructure:"port"`
		Username   string `mapstructure:"username"`
		PrivateKey string `mapstructure:"private_key"`
	} `mapstructure:"ssh"`

	Sentinel struct {
		Command string `mapstructure:"command"`
		Pattern string `mapstructure:"pattern"`
	} `mapstructure:"sentinel"`

	Fleet struct {
		Parallelism int `mapstructure:"parallelism"`
	} `mapstructure:"fleet"`

	Transcript struct {
		Enabled    bool   `mapstructure:"enabled"`
		Dir        string `mapstructure:"dir"`
		MaxSize    int    `mapstructure:"max_size"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAge     int    `mapstructure:"max_age"`
	} `mapstructure:"transcript"`

	DefaultServer string                  `mapstructure:"default_server"`
	Servers       map[string]ServerConfig `mapstructure:"servers"`
}

// LoadOptions controls where configuration comes from.
type LoadOptions struct {
	// ConfigPath overrides the config file search.
	ConfigPath string
	// DotEnvPath is loaded into the environment first when it exists.
	DotEnvPath string
	// Fs is the filesystem config and key files are read from.
	Fs afero.Fs
}

// LoadConfig reads the configuration file (if any), the environment and the
// optional .env file, and returns the validated result.
func LoadConfig(opts LoadOptions) (Config, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.DotEnvPath != "" {
		if err := godotenv.Load(opts.DotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", opts.DotEnvPath, err)
		}
	}

	v := viper.New()
	v.SetFs(opts.Fs)
	if err := loadConfig(v, opts.ConfigPath); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyEnvServer()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadConfig loads configuration from file and sets defaults.
func loadConfig(v *viper.Viper, configPath string) error {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)
	v.SetDefault("ssh.transport", TransportExec)
	v.SetDefault("ssh.binary", "ssh")
	v.SetDefault("ssh.remote_command", "shell")
	v.SetDefault("ssh.connect_timeout", "15s")
	v.SetDefault("ssh.key_dir", "")
	// Registered so AutomaticEnv can fill them from APPOPS_SSH_*.
	v.SetDefault("ssh.host", "")
	v.SetDefault("ssh.port", domain.DefaultSSHPort)
	v.SetDefault("ssh.username", "dokku")
	v.SetDefault("ssh.private_key", "")
	v.SetDefault("sentinel.command", session.DefaultSentinelCommand)
	v.SetDefault("sentinel.pattern", session.DefaultSentinelPattern)
	v.SetDefault("fleet.parallelism", 4)
	v.SetDefault("transcript.enabled", false)
	v.SetDefault("transcript.dir", "")
	v.SetDefault("transcript.max_size", 50)
	v.SetDefault("transcript.max_backups", 5)
	v.SetDefault("transcript.max_age", 30)
	v.SetDefault("default_server", "")

	ConfigureViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("APPOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

// applyEnvServer adds the APPOPS_SSH_* server unless the file already defines
// one with the same name.
func (c *Config) applyEnvServer() {
	if strings.TrimSpace(c.SSH.Host) == "" {
		return
	}
	if c.Servers == nil {
		c.Servers = map[string]ServerConfig{}
	}
	if _, exists := c.Servers[EnvServerName]; exists {
		return
	}
	c.Servers[EnvServerName] = ServerConfig{
		Host:       c.SSH.Host,
		Port:       c.SSH.Port,
		Username:   c.SSH.Username,
		PrivateKey: c.SSH.PrivateKey,
	}
}

// Validate checks the settings that do not need the filesystem.
func (c Config) Validate() error {
	switch c.SSH.Transport {
	case TransportExec, TransportNative:
	default:
		return fmt.Errorf("%w: unknown ssh.transport %q", domain.ErrInvalidConfig, c.SSH.Transport)
	}
	if len(c.Servers) == 0 {
		return fmt.Errorf("%w: no servers configured", domain.ErrInvalidConfig)
	}
	for name := range c.Servers {
		if !domain.IsValidResourceName(name) {
			return fmt.Errorf("%w: server name %q", domain.ErrInvalidConfig, name)
		}
	}
	if c.DefaultServer != "" {
		if _, ok := c.Servers[c.DefaultServer]; !ok {
			return fmt.Errorf("%w: default_server %q is not configured", domain.ErrInvalidConfig, c.DefaultServer)
		}
	}
	if _, err := session.NewSentinel(c.Sentinel.Command, c.Sentinel.Pattern); err != nil {
		return err
	}
	return nil
}

// ServerNames returns the configured server names in sorted order.
func (c Config) ServerNames() []string {
	names := make([]string, 0, len(c.Servers))
	for name := range c.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveDefaultServer returns default_server, or the only server when there
// is exactly one.
func (c Config) ResolveDefaultServer() string {
	if c.DefaultServer != "" {
		return c.DefaultServer
	}
	if len(c.Servers) == 1 {
		return c.ServerNames()[0]
	}
	if _, ok := c.Servers[EnvServerName]; ok {
		return EnvServerName
	}
	return ""
}

// Connection builds the validated connection info of one server. Keys given
// as a file are read through fsys.
func (c Config) Connection(fsys afero.Fs, name string) (domain.ConnectionInfo, error) {
	server, ok := c.Servers[name]
	if !ok {
		return domain.ConnectionInfo{}, fmt.Errorf("%w: %s", domain.ErrServerNotFound, name)
	}

	conn := domain.ConnectionInfo{
		Host:       server.Host,
		Port:       server.Port,
		Username:   server.Username,
		PrivateKey: server.PrivateKey,
	}
	if conn.Port == 0 {
		conn.Port = domain.DefaultSSHPort
	}
	if conn.Username == "" {
		conn.Username = "dokku"
	}
	if conn.PrivateKey == "" && server.PrivateKeyFile != "" {
		key, err := afero.ReadFile(fsys, expandHome(server.PrivateKeyFile))
		if err != nil {
			return domain.ConnectionInfo{}, fmt.Errorf("%w: server %s: %v", domain.ErrInvalidConfig, name, err)
		}
		conn.PrivateKey = string(key)
	}

	if err := conn.Validate(); err != nil {
		return domain.ConnectionInfo{}, fmt.Errorf("server %s: %w", name, err)
	}
	return conn, nil
}
