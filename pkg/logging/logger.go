package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// NewJSONLogger creates a logger writing entries at or above level to writer
func NewJSONLogger(writer io.Writer, level Level) *JSONLogger {
	return &JSONLogger{
		writer: writer,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// NewFromEnv creates a JSON logger on stderr whose level comes from LOG_LEVEL.
// An unparseable LOG_LEVEL falls back to INFO.
func NewFromEnv() *JSONLogger {
	level, err := ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = InfoLevel
	}
	return NewJSONLogger(os.Stderr, level)
}

func (l *JSONLogger) log(level Level, msg string, fields ...Field) {
	if level < l.level {
		return
	}

	fieldMap := make(map[string]any, len(l.fields)+len(fields))
	for _, f := range l.fields {
		fieldMap[f.Key] = f.Value
	}
	for _, f := range fields {
		fieldMap[f.Key] = f.Value
	}

	entry := LogEntry{
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}
	if len(fieldMap) > 0 {
		entry.Fields = fieldMap
	}

	data, err := json.Marshal(entry)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		fmt.Fprintf(l.writer, "[ERROR] failed to marshal log entry %q: %v\n", msg, err)
		return
	}
	l.writer.Write(append(data, '\n'))
}

// Debug logs a debug-level message
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs an info-level message
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs a warning-level message
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs an error-level message
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

// With creates a child logger with the given fields pre-set
func (l *JSONLogger) With(fields ...Field) Logger {
	newFields := make([]Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &JSONLogger{
		writer: l.writer,
		level:  l.level,
		fields: newFields,
		mu:     l.mu,
	}
}

// Enabled reports whether level passes the logger's threshold
func (l *JSONLogger) Enabled(level Level) bool {
	return level >= l.level
}

// StartStage begins timing a pipeline stage
func StartStage(logger Logger, stage string) *StageTimer {
	return &StageTimer{
		logger: logger,
		stage:  stage,
		start:  time.Now(),
	}
}

// Elapsed returns the time since the stage started
func (t *StageTimer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs stage completion with its duration and any result fields
func (t *StageTimer) End(fields ...Field) time.Duration {
	elapsed := t.Elapsed()
	all := append([]Field{Stage(t.stage), Latency(elapsed)}, fields...)
	t.logger.Info("stage complete", all...)
	return elapsed
}

// EndError logs the stage as failed
func (t *StageTimer) EndError(err error) time.Duration {
	elapsed := t.Elapsed()
	t.logger.Error("stage failed", Stage(t.stage), Latency(elapsed), Error(err))
	return elapsed
}
