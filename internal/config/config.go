// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables, and
// an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// ServerOptions holds the configuration values for the backend server.
type ServerOptions struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the database connection string.
	DatabaseDSN string

	// JWTSecret signs issued session tokens.
	JWTSecret string

	// TokenTTLHours is the lifetime of issued session tokens, in hours.
	TokenTTLHours int

	// Config is the path to the JSON config file.
	Config string
}

// ClientOptions holds the configuration values for the client.
type ClientOptions struct {
	// BaseURL is the remote API base, e.g. "https://host/api".
	BaseURL string

	// DataDir is where the durable local store keeps its files.
	DataDir string

	// ProbeURL is the endpoint the connectivity checker polls.
	ProbeURL string

	// LogLevel sets the zap level for the client ("Debug", "Info", ...).
	LogLevel string

	// Config is the path to the JSON config file.
	Config string
}

// ParseServer parses flags, the optional config file, and environment
// variables into server options. Precedence: env > file > flags.
func ParseServer() *ServerOptions {
	opts := &ServerOptions{}
	flag.StringVar(&opts.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&opts.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&opts.JWTSecret, "s", "", "jwt signing secret")
	flag.IntVar(&opts.TokenTTLHours, "ttl", 168, "token lifetime in hours")
	flag.StringVar(&opts.Config, "config", "config.json", "path to config file")
	flag.StringVar(&opts.Config, "c", "config.json", "path to config file (shorthand)")
	flag.Parse()

	// A .env next to the binary is a convenience for local runs.
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		opts.Config = configPath
	}
	loadFile(opts.Config, opts)

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		opts.Addr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		opts.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		opts.JWTSecret = v
	}
	return opts
}

// ParseClient parses flags, the optional config file, and environment
// variables into client options.
func ParseClient() *ClientOptions {
	opts := &ClientOptions{}
	flag.StringVar(&opts.BaseURL, "url", "http://localhost:8080/api", "remote API base URL")
	flag.StringVar(&opts.DataDir, "data", defaultDataDir(), "local data directory")
	flag.StringVar(&opts.ProbeURL, "probe", "", "connectivity probe URL (defaults to the API base)")
	flag.StringVar(&opts.LogLevel, "loglevel", "Warn", "log level")
	flag.StringVar(&opts.Config, "config", "", "path to config file")
	flag.StringVar(&opts.Config, "c", "", "path to config file (shorthand)")
	flag.Parse()

	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		opts.Config = configPath
	}
	loadFile(opts.Config, opts)

	if v := os.Getenv("NPWALLET_API_URL"); v != "" {
		opts.BaseURL = v
	}
	if v := os.Getenv("NPWALLET_DATA_DIR"); v != "" {
		opts.DataDir = v
	}
	if v := os.Getenv("NPWALLET_LOG_LEVEL"); v != "" {
		opts.LogLevel = v
	}
	if opts.ProbeURL == "" {
		opts.ProbeURL = opts.BaseURL + "/health"
	}
	return opts
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".npwallet"
	}
	return home + string(os.PathSeparator) + ".npwallet"
}

func loadFile(path string, into any) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("error while reading config file: %v", err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		log.Fatalf("error while parsing config file: %v", err)
	}
}
