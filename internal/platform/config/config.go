// Package config resolves runtime defaults from the environment and .env files.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names read by hlssort.
const (
	EnvOutput    = "HLSSORT_OUTPUT"
	EnvDownload  = "HLSSORT_DOWNLOAD"
	EnvTimeout   = "HLSSORT_TIMEOUT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
)

// Defaults used when neither a flag nor the environment provides a value.
const (
	DefaultOutput   = "sorted.m3u8"
	DefaultDownload = "presorted.m3u8"
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "info"
)

// Settings holds resolved runtime defaults.
type Settings struct {
	Output    string
	Download  string
	Timeout   time.Duration
	LogLevel  string
	LogFormat string
}

// Load reads .env files and sets environment variables that are not already
// set. With no paths, ".env" in the working directory is used. A missing file
// is reported as an error that callers may ignore.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// FromEnv resolves Settings from the current environment.
func FromEnv() Settings {
	return Settings{
		Output:    GetEnv(EnvOutput, DefaultOutput),
		Download:  GetEnv(EnvDownload, DefaultDownload),
		Timeout:   GetEnvDuration(EnvTimeout, DefaultTimeout),
		LogLevel:  GetEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat: GetEnv(EnvLogFormat, ""),
	}
}

// GetEnv returns the value of the environment variable named by key, or fallback
// if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvDuration returns the duration value of the environment variable named
// by key, or fallback if the variable is unset, empty, or not a positive
// duration.
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
