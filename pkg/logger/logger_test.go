package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		logFunc  func(string, ...any)
		logMsg   string
		expected bool
	}{
		{"debug at debug level", "debug", Debug, "debug message", true},
		{"debug at info level", "info", Debug, "debug message", false},
		{"info at info level", "info", Info, "info message", true},
		{"warn at info level", "info", Warn, "warn message", true},
		{"error at info level", "info", Error, "error message", true},
		{"info at unknown level defaults to info", "bogus", Info, "info message", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetDefault(New(tt.logLevel, &buf))

			tt.logFunc(tt.logMsg)
			output := buf.String()

			if tt.expected && !strings.Contains(output, tt.logMsg) {
				t.Errorf("expected log output to contain %q, got: %s", tt.logMsg, output)
			}
			if !tt.expected && strings.Contains(output, tt.logMsg) {
				t.Errorf("expected log output NOT to contain %q, but it did: %s", tt.logMsg, output)
			}
		})
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New("info", &buf))

	Info("hamiltonian built", "molecule", "H2", "num_qubits", 4)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log output: %v", err)
	}
	if entry["msg"] != "hamiltonian built" {
		t.Errorf("expected msg 'hamiltonian built', got %v", entry["msg"])
	}
	if entry["molecule"] != "H2" {
		t.Errorf("expected molecule 'H2', got %v", entry["molecule"])
	}
	if entry["num_qubits"] != float64(4) {
		t.Errorf("expected num_qubits 4, got %v", entry["num_qubits"])
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l := NewText("info", &buf)
	l.Info("scan complete")
	if !strings.Contains(buf.String(), "scan complete") {
		t.Errorf("expected text output to contain message, got: %s", buf.String())
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New("info", &buf))

	With("run_id", "run-123").Info("optimization started")

	output := buf.String()
	if !strings.Contains(output, "run_id") || !strings.Contains(output, "run-123") {
		t.Errorf("expected contextual attributes in output, got: %s", output)
	}
}
