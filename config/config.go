package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("UG_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("UG_DEBUG") == "true"
}

// GetDBPath returns the sqlite DSN for the user store. The default keeps the
// whole store in memory for the lifetime of the process; point UG_DB_PATH at
// a file to persist across restarts.
func GetDBPath() string {
	dbPath := os.Getenv("UG_DB_PATH")
	if dbPath == "" {
		dbPath = "file::memory:?cache=shared"
	}
	return dbPath
}

func GetListen() string {
	return os.Getenv("UG_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("UG_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return 8080
	}
	return port
}
