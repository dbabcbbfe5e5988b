package migrate

import (
	"fmt"
	"log/slog"
	"os"
)

// gooseSlogLogger routes goose output through the application logger.
type gooseSlogLogger struct {
	logger *slog.Logger
}

func (l gooseSlogLogger) Printf(format string, v ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l gooseSlogLogger) Fatalf(format string, v ...interface{}) {
	if l.logger != nil {
		l.logger.Error(fmt.Sprintf(format, v...))
	}
	os.Exit(1)
}
