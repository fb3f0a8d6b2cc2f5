package logging

// DebugLogger is the smallest logger components accept.
type DebugLogger interface {
	Debug(args ...interface{})
}

// Logger is satisfied by *zap.SugaredLogger.
type Logger interface {
	DebugLogger
	Info(args ...interface{})
	Error(args ...interface{})
}
