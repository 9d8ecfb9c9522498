package actor

import (
	"sync"

	"go.uber.org/zap"
)

var (
	loggerMu sync.RWMutex
	logger   *zap.Logger = zap.NewNop()

	verboseMu      sync.RWMutex
	verboseExcepts bool
)

// SetVerboseExceptions toggles whether an actor's abnormal termination is
// logged at all (the NOISY_ACTORS-equivalent switch). It defaults to off:
// an alink is always notified via the usual {address, exception} message
// regardless of this setting, which only controls the side-channel log.
func SetVerboseExceptions(v bool) {
	verboseMu.Lock()
	verboseExcepts = v
	verboseMu.Unlock()
}

func verboseExceptionsEnabled() bool {
	verboseMu.RLock()
	defer verboseMu.RUnlock()
	return verboseExcepts
}

// SetLogger installs l as the package-wide logger that actor exceptions
// are reported to while verbose exceptions are enabled. The default, and
// what a nil l installs, is a no-op logger, matching the reference implementation's default of
// staying silent unless a caller opts in.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func currentLogger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// logException reports an actor's abnormal termination at warn level.
// Call sites pass the already-formatted detail rather than the raw error
// so a panic's captured stack trace is logged under its own field
// instead of folded into the message.
func logException(actorID string, detail ExceptionDetail) {
	if !verboseExceptionsEnabled() {
		return
	}
	l := currentLogger()
	fields := []zap.Field{
		zap.String("actor_id", actorID),
		zap.String("kind", detail.Kind),
		zap.String("message", detail.Message),
	}
	if detail.Trace != "" {
		fields = append(fields, zap.String("trace", detail.Trace))
	}
	l.Warn("actor exited with exception", fields...)
}
