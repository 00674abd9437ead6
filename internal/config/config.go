package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
	Writes WritesConfig `mapstructure:"writes" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Store drivers understood by the server bootstrap.
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverTables   = "tables"
)

// StoreConfig describes where tasks are persisted.
//
// User and Password are the two credential values the connection string is
// built from. They are deliberately not validated: a missing credential
// surfaces as a connection failure at startup, which is logged but not fatal.
type StoreConfig struct {
	Driver         string        `mapstructure:"driver"          validate:"required,oneof=postgres redis tables"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"            validate:"min=0,lt=65536"`
	Name           string        `mapstructure:"name"            validate:"required"`
	Endpoint       string        `mapstructure:"endpoint"`
	TLS            bool          `mapstructure:"tls"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" validate:"gt=0"`
}

// WritesConfig controls whether task creation waits for the store.
type WritesConfig struct {
	// Detached hands creates to the background writer and responds
	// without waiting for the store acknowledgement.
	Detached  bool `mapstructure:"detached"`
	Workers   int  `mapstructure:"workers"    validate:"gte=1"`
	QueueSize int  `mapstructure:"queue_size" validate:"gte=1"`
}
