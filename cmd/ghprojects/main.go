package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func debug() slog.Level {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "1" {
		level = slog.LevelDebug
	}
	return level
}

func logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: debug(),
	}))
}

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	Execute()
}
