package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
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
	logLevel := os.Getenv("LABSTOCK_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("LABSTOCK_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("LABSTOCK_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = fileConfig.DBFolder
	}
	if dbFolderPath == "" {
		if IsDebug() {
			dbFolderPath = "db"
		} else {
			dbFolderPath = "/etc/labstock"
		}
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("LABSTOCK_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = fileConfig.LogFolder
	}
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}
