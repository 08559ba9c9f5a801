package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvLogLevel     = "MULTITOOL_LOG_LEVEL"
	EnvLogFile      = "MULTITOOL_LOG_FILE"
	EnvLogPretty    = "MULTITOOL_LOG_PRETTY"
	EnvLogConsole   = "MULTITOOL_LOG_CONSOLE"
	EnvOfficeBinary = "MULTITOOL_SOFFICE"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// Env holds process-level overrides that are not user preferences
type Env struct {
	LogLevel     string
	LogFile      string
	LogPretty    bool
	LogConsole   bool
	OfficeBinary string
}

// LoadEnv reads the optional env files into the process environment and
// returns the overrides. Variables already set in the environment win.
func LoadEnv(files ...string) Env {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	return Env{
		LogLevel:     getEnv(EnvLogLevel, "info"),
		LogFile:      getEnv(EnvLogFile, ""),
		LogPretty:    getBool(EnvLogPretty, true),
		LogConsole:   getBool(EnvLogConsole, false),
		OfficeBinary: getEnv(EnvOfficeBinary, ""),
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
