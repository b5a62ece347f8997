package publishers

import "github.com/samvad-hq/produto-client/internal/logger"

// Logger is the structured logging surface shared with the rest of the module.
type Logger = logger.Logger

func ensureLogger(log Logger) Logger {
	return logger.Ensure(log)
}
