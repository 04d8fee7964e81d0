package lit

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	literrors "github.com/toyz/lit/internal/errors"
)

// DefaultPort is used when neither the environment nor the caller names one
const DefaultPort = "3000"

// ServerConfig holds configuration for the lit web server
type ServerConfig struct {
	// Port is the port to listen on (default: 3000). PORT and port in the
	// environment override it.
	Port string `mapstructure:"port"`

	// Host is the host to bind to (default: "")
	Host string `mapstructure:"host"`

	// Adapter names the router adapter (default: "echo")
	Adapter string `mapstructure:"adapter"`

	// EnableRequestID tags each request with an X-Request-ID (default: true)
	EnableRequestID bool `mapstructure:"request_id"`

	// EnableLogger enables access logging (default: true)
	EnableLogger bool `mapstructure:"logger"`

	// EnableRecover enables panic recovery (default: true)
	EnableRecover bool `mapstructure:"recover"`

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DefaultServerConfig returns a server configuration with sensible defaults
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            DefaultPort,
		Host:            "",
		Adapter:         "echo",
		EnableRequestID: true,
		EnableLogger:    true,
		EnableRecover:   true,
		ShutdownTimeout: 30 * time.Second,
	}
}

// LoadConfig reads a ServerConfig from an optional YAML file and LIT_*
// environment variables, on top of DefaultServerConfig
func LoadConfig(file string) (*ServerConfig, error) {
	v := viper.New()

	defaults := DefaultServerConfig()
	v.SetDefault("port", defaults.Port)
	v.SetDefault("host", defaults.Host)
	v.SetDefault("adapter", defaults.Adapter)
	v.SetDefault("request_id", defaults.EnableRequestID)
	v.SetDefault("logger", defaults.EnableLogger)
	v.SetDefault("recover", defaults.EnableRecover)
	v.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	v.SetEnvPrefix("LIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, literrors.WrapConfigurationError(file, "read", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, literrors.WrapConfigurationError(file, "decode", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	return &cfg, nil
}

// ResolvePort picks the listening port: the PORT or port environment
// variable, then explicit, then DefaultPort
func ResolvePort(explicit string) string {
	v := viper.New()
	if explicit == "" {
		explicit = DefaultPort
	}
	v.SetDefault("port", explicit)
	_ = v.BindEnv("port", "PORT", "port")
	return v.GetString("port")
}
