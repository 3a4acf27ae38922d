package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	
	config := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "tubehub-test",
		Version:     "1.0.0",
		Environment: "test",
		AddSource:   false,
	}
	
	InitLoggerWithWriter(config, &buf)
	
	// Log a test message
	Info("test message", "key", "value", "number", 42)
	
	// Parse JSON output
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	
	// Verify base attributes
	if logEntry["service"] != "tubehub-test" {
		t.Errorf("Expected service=tubehub-test, got %v", logEntry["service"])
	}
	
	if logEntry["version"] != "1.0.0" {
		t.Errorf("Expected version=1.0.0, got %v", logEntry["version"])
	}
	
	if logEntry["environment"] != "test" {
		t.Errorf("Expected environment=test, got %v", logEntry["environment"])
	}
	
	// Verify message
	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}
	
	// Verify level
	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level=INFO, got %v", logEntry["level"])
	}
	
	// Verify custom attributes
	if logEntry["key"] != "value" {
		t.Errorf("Expected key=value, got %v", logEntry["key"])
	}
	
	if logEntry["number"] != float64(42) {
		t.Errorf("Expected number=42, got %v", logEntry["number"])
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-7f3a")

	requestID, ok := RequestIDFromContext(ctx)
	if !ok || requestID != "req-7f3a" {
		t.Errorf("Expected request_id=req-7f3a, got %q (found=%v)", requestID, ok)
	}

	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Error("Expected no request id on bare context")
	}
}

func TestForEnvironment(t *testing.T) {
	tests := []struct {
		env       string
		level     string
		format    string
		addSource bool
	}{
		{EnvironmentDev, LogLevelDebug, LogFormatText, true},
		{EnvironmentTest, LogLevelDebug, LogFormatText, true},
		{EnvironmentStaging, LogLevelInfo, LogFormatJSON, false},
		{EnvironmentProduction, LogLevelInfo, LogFormatJSON, false},
		{"production", LogLevelInfo, LogFormatJSON, false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			config := ForEnvironment(tt.env, "", "")
			if config.Level != tt.level || config.Format != tt.format || config.AddSource != tt.addSource {
				t.Errorf("ForEnvironment(%q) = %+v", tt.env, config)
			}
			if config.ServiceName != DefaultServiceName || config.Version != DefaultVersion {
				t.Errorf("Expected default service and version, got %s %s", config.ServiceName, config.Version)
			}
		})
	}
}

func TestOverride(t *testing.T) {
	config := ForEnvironment("production", "svc", "1.2.3").Override("WARN", "")
	if config.Level != LogLevelWarn {
		t.Errorf("Expected warn level, got %s", config.Level)
	}
	if !config.IsJSON() {
		t.Errorf("Expected preset format kept, got %s", config.Format)
	}

	config = config.Override("", "text")
	if config.IsJSON() || config.Level != LogLevelWarn {
		t.Errorf("Expected text at warn, got %+v", config)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(ForEnvironment(EnvironmentTest, "svc", "v").Override(LogLevelWarn, ""), &buf)

	Info("dropped")
	Warn("kept", "user_id", "u1")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") || !strings.Contains(out, "user_id=u1") {
		t.Errorf("expected warn line with attrs, got %q", out)
	}
}

func TestFromContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(ForEnvironment(EnvironmentProduction, "svc", "v"), &buf)

	FromContext(WithRequestID(context.Background(), "rid-1")).Info("scoped")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry[AttrKeyRequestID] != "rid-1" {
		t.Errorf("Expected request_id=rid-1, got %v", entry[AttrKeyRequestID])
	}
}
