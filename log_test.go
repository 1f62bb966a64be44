package pasture

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zap.AtomicLevel
	}{
		{"", zap.NewAtomicLevelAt(zap.InfoLevel)},
		{"debug", zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"WARN", zap.NewAtomicLevelAt(zap.WarnLevel)},
		{"error", zap.NewAtomicLevelAt(zap.ErrorLevel)},
	}
	for _, tt := range tests {
		l, err := NewLogger(LogConfig{Level: tt.level})
		if err != nil {
			t.Fatalf("%q: %v", tt.level, err)
		}
		if !l.Core().Enabled(tt.want.Level()) {
			t.Errorf("%q: level %v not enabled", tt.level, tt.want.Level())
		}
		if tt.want.Level() > zap.DebugLevel && l.Core().Enabled(tt.want.Level()-1) {
			t.Errorf("%q: level below %v enabled", tt.level, tt.want.Level())
		}
	}
}

func TestNewLoggerUnknownLevel(t *testing.T) {
	if _, err := NewLogger(LogConfig{Level: "chatty"}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewLoggerJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pasture.log")
	l, err := NewLogger(LogConfig{Encoding: "json", Output: []string{path}})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("farm ready", zap.Int("cows", 2))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	if !strings.Contains(line, `"msg":"farm ready"`) || !strings.Contains(line, `"cows":2`) {
		t.Errorf("log line = %s", line)
	}
}
