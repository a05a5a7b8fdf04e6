package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath   string // SQLite bank library
	BankPath string // JSON bank used when no library bank is named

	// Access gate. The hash wins when both are set.
	Passphrase     string
	PassphraseHash string // bcrypt

	LogLevel slog.Level
	Workers  int // simulation pool size
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		DBPath:         getenvDefault("QUIZ_DB_PATH", "quiz.db"),
		BankPath:       os.Getenv("QUIZ_BANK_PATH"),
		Passphrase:     os.Getenv("QUIZ_PASSPHRASE"),
		PassphraseHash: os.Getenv("QUIZ_PASSPHRASE_HASH"),
		LogLevel:       mustGetLevel("QUIZ_LOG_LEVEL", slog.LevelWarn),
		Workers:        mustGetInt("QUIZ_WORKERS", 4),
	}
}

func mustGetInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Fatalf("config: %s=%q is not a positive integer", k, v)
	}
	return n
}

func mustGetLevel(k string, fallback slog.Level) slog.Level {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
		log.Fatalf("config: %s=%q is not a valid log level: %v", k, v, err)
	}
	return level
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
