package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		wantLevel     zapcore.Level
		wantErr       bool
	}{
		{"debug", "json", zapcore.DebugLevel, false},
		{"WARN", "console", zapcore.WarnLevel, false},
		{"", "", zapcore.InfoLevel, false},
		{"bogus", "json", zapcore.InfoLevel, false},
		{"info", "xml", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		logger, err := New(tt.level, tt.format)
		if (err != nil) != tt.wantErr {
			t.Fatalf("New(%q, %q) error = %v, wantErr %v", tt.level, tt.format, err, tt.wantErr)
		}
		if err != nil {
			continue
		}
		if !logger.Core().Enabled(tt.wantLevel) {
			t.Errorf("New(%q): level %v should be enabled", tt.level, tt.wantLevel)
		}
		if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(tt.wantLevel-1) {
			t.Errorf("New(%q): level %v should be disabled", tt.level, tt.wantLevel-1)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext should never return nil")
	}

	logger := zap.NewExample()
	ctx := WithLogger(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Error("FromContext did not return the stored logger")
	}

	if got := WithLogger(ctx, nil); got != ctx {
		t.Error("WithLogger(nil) should return the context unchanged")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	logger := zap.NewExample()
	if OrNop(logger) != logger {
		t.Error("OrNop should return a non-nil logger unchanged")
	}
}
