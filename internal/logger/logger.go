package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds the global zap logger. Production config everywhere except
// development, where a human-readable console encoder is friendlier.
func Init(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)

	switch environment {
	case "development":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("zap.New -> %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
