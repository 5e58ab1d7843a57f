package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Every production entry is a single JSON object with the standard keys.
func TestProperty_LogsAreStructured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("entries decode as JSON with level, timestamp, message and service", prop.ForAll(
		func(message string, level string) bool {
			var buf bytes.Buffer
			logger := NewJSON(zapcore.AddSync(&buf), zapcore.DebugLevel)

			switch level {
			case "debug":
				logger.Debug(message)
			case "warn":
				logger.Warn(message)
			case "error":
				logger.Error(message)
			default:
				logger.Info(message)
			}
			logger.Sync()

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				return false
			}
			for _, key := range []string{"level", "timestamp", "message", "caller"} {
				if _, ok := entry[key]; !ok {
					return false
				}
			}
			return entry["message"] == message &&
				entry["level"] == level &&
				entry["service"] == ServiceName
		},
		gen.AnyString(),
		gen.OneConstOf("debug", "info", "warn", "error"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestErrorLogsIncludeErrorAndStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(zapcore.AddSync(&buf), zapcore.InfoLevel)

	logger.Error("Failed to save cart", zap.Error(errors.New("connection refused")))
	logger.Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if entry["error"] != "connection refused" {
		t.Errorf("expected error field, got %v", entry["error"])
	}
	if _, ok := entry["stacktrace"]; !ok {
		t.Error("expected stacktrace on error level entries")
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(zapcore.AddSync(&buf), zapcore.InfoLevel)

	logger.Debug("hidden")
	logger.Sync()

	if buf.Len() != 0 {
		t.Errorf("debug entry should be filtered, got %q", buf.String())
	}
}

func TestNew(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		logger, err := New(env)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", env, err)
		}
		if logger == nil {
			t.Fatalf("New(%q) returned nil logger", env)
		}
	}
}
