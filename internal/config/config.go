// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// BaseURL is the public base URL short links are built from.
	BaseURL string

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string

	// RedisAddr holds the Redis address for the document-style backend.
	RedisAddr string

	// FilePath is the path to the storage file for persistent data.
	FilePath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// EnablePprof indicates whether to enable pprof for performance profiling.
	EnablePprof bool

	// EnableHTTPS indicates whether to serve TLS via autocert.
	EnableHTTPS bool

	// TLSHost is the host the autocert manager issues certificates for.
	TLSHost string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", ":3000", "run on ip:port server")
	flag.StringVar(&options.BaseURL, "b", "http://localhost:3000", "public base url")
	flag.StringVar(&options.DatabaseDSN, "d", "", "postgres dsn")
	flag.StringVar(&options.RedisAddr, "r", "", "redis address")
	flag.StringVar(&options.FilePath, "f", "", "path to storage file")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.BoolVar(&options.EnablePprof, "p", false, "enable pprof")
	flag.BoolVar(&options.EnableHTTPS, "s", false, "enable https")
	flag.StringVar(&options.TLSHost, "t", "", "autocert host")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. Environment variables win over flags; a .env file is
// loaded first if present.
func Parse() *Options {
	_ = godotenv.Load()

	flag.Parse()

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	} else if port := os.Getenv("PORT"); port != "" {
		options.Addr = ":" + port
	}

	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		options.BaseURL = baseURL
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}

	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		options.RedisAddr = redisAddr
	}

	if storagePath := os.Getenv("FILE_STORAGE_PATH"); storagePath != "" {
		options.FilePath = storagePath
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		options.LogLevel = logLevel
	}

	if enableHTTPS := os.Getenv("ENABLE_HTTPS"); enableHTTPS != "" {
		httpsMode, err := strconv.ParseBool(enableHTTPS)
		if err != nil {
			options.EnableHTTPS = false
		}

		options.EnableHTTPS = httpsMode
	}

	if tlsHost := os.Getenv("TLS_HOST"); tlsHost != "" {
		options.TLSHost = tlsHost
	}

	return options
}
