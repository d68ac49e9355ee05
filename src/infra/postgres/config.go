package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"movieapi/src/helper/env"
)

// Config is the connection setup shared by the API and the tools.
type Config struct {
	Host           string
	Port           string
	ReadHost       string
	ReadPort       string
	DBName         string
	User           string
	Password       string
	MaxConnections int
}

// ConfigFromEnv reads DB_HOST, DB_PORT, DB_READ_HOST, DB_READ_PORT, DB_NAME,
// DB_USER, DB_PASSWORD and DB_MAX_POOL_CONNECTIONS. Panics when a required one
// is missing.
func ConfigFromEnv() Config {
	host := env.MustGetString("DB_HOST")
	port := env.GetString("DB_PORT", "5432")

	return Config{
		Host:           host,
		Port:           port,
		ReadHost:       env.GetString("DB_READ_HOST", host),
		ReadPort:       env.GetString("DB_READ_PORT", port),
		DBName:         env.MustGetString("DB_NAME"),
		User:           env.MustGetString("DB_USER"),
		Password:       env.MustGetString("DB_PASSWORD"),
		MaxConnections: env.GetInt("DB_MAX_POOL_CONNECTIONS", 25),
	}
}

func NewReadWriteClientFromConfig(config Config) (*ReadWriteClient, error) {
	return NewReadWriteClient(
		config.ReadHost,
		config.Host,
		config.ReadPort,
		config.Port,
		config.DBName,
		config.User,
		config.Password,
		config.MaxConnections,
	)
}

// NewWriteClientFromConfig connects to the primary only.
func NewWriteClientFromConfig(config Config) (*pgxpool.Pool, error) {
	return NewPostgresClient(config.Host, config.Port, config.DBName, config.User, config.Password, config.MaxConnections)
}
