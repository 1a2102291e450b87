package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Notifier NotifierConfig `mapstructure:"notifier" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// Driver selects the storage backend; URL is only consulted for the
// postgres driver.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	URL    string `mapstructure:"url" validate:"required_if=Driver postgres,omitempty,url"`
}

// NotifierConfig contains settings for the realtime broadcast hub.
type NotifierConfig struct {
	// SendBuffer is the per-subscriber outbound queue size. A
	// subscriber whose queue stays full misses messages rather than
	// stalling the broadcaster.
	SendBuffer int `mapstructure:"send_buffer" validate:"required,gt=0"`
}
