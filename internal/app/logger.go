package app

import (
	"log/slog"
	"os"

	"dronetrack/internal/logx"
)

// NewLogger returns the process-wide structured logger.
func NewLogger() logx.Logger {
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logx.NewSlogAdapter(base)
}
