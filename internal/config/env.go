package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// LoadEnv loads variables from a .env file in the working directory or its
// parent. Variables already set in the environment are not overridden. It
// returns the file that was loaded, or "" when none was found.
func LoadEnv() string {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return ""
		}
		return envFile
	}
	return ""
}

// LogLevelFromEnv returns the level named by LOG_LEVEL, or info when unset or
// unparsable. It is applied before the configuration is read so that start-up
// messages honour it.
func LogLevelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// LogFormatFromEnv returns "json" when LOG_FORMAT asks for it, "text" otherwise.
func LogFormatFromEnv() string {
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		return "json"
	}
	return "text"
}
