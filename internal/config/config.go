// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file, and
// environment variables.
package config

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"flag"

	"github.com/caarlos0/env/v11"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"address" env:"SERVER_ADDRESS"`

	// DatabaseDSN holds the database connection string.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_URL"`

	// JWTSecret signs session tokens returned on login.
	JWTSecret string `json:"jwt_secret" env:"JWT_SECRET"`

	// TokenTTL is the session token lifetime.
	TokenTTL time.Duration `json:"token_ttl" env:"TOKEN_TTL"`

	// PushGatewayURL is the endpoint of the push-notification gateway.
	PushGatewayURL string `json:"push_gateway_url" env:"PUSH_GATEWAY_URL"`

	// AdminEmail and AdminPassword seed the default administrator on
	// startup.
	AdminEmail    string `json:"admin_email" env:"ADMIN_EMAIL"`
	AdminPassword string `json:"admin_password" env:"ADMIN_PASSWORD"`
	AdminName     string `json:"admin_name" env:"ADMIN_NAME"`

	// DBConnectAttempts and DBConnectInterval bound the startup
	// connection loop.
	DBConnectAttempts int           `json:"db_connect_attempts" env:"DB_CONNECT_ATTEMPTS"`
	DBConnectInterval time.Duration `json:"db_connect_interval" env:"DB_CONNECT_INTERVAL"`

	// Config is the path to the config file.
	Config string `json:"-" env:"CONFIG"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.JWTSecret, "s", "", "session token signing secret")
	flag.DurationVar(&options.TokenTTL, "ttl", 24*time.Hour, "session token lifetime")
	flag.StringVar(&options.PushGatewayURL, "push", "", "push gateway url")
	flag.StringVar(&options.AdminEmail, "admin-email", "admin@admin.com", "default admin email")
	flag.StringVar(&options.AdminPassword, "admin-password", "admin", "default admin password")
	flag.StringVar(&options.AdminName, "admin-name", "admin", "default admin display name")
	flag.IntVar(&options.DBConnectAttempts, "db-attempts", 10, "startup db connection attempts")
	flag.DurationVar(&options.DBConnectInterval, "db-interval", 2*time.Second, "delay between db connection attempts")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, config file, and environment
// variables, in that order of increasing precedence. It returns a pointer
// to the Options struct containing the resolved configuration values.
func Parse() *Options {
	flag.Parse()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	// Environment variables override flags and file values.
	if err := env.Parse(options); err != nil {
		log.Fatalf("error while parsing environment: %v", err)
	}

	return options
}
