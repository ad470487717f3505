package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, debug := range []bool{false, true} {
		logger, err := New(debug)
		if err != nil {
			t.Fatalf("debug=%v: %v", debug, err)
		}
		if logger == nil {
			t.Fatalf("debug=%v: expected logger", debug)
		}
	}
}

func TestNewLevel(t *testing.T) {
	logger, err := New(false)
	if err != nil {
		t.Fatal(err)
	}
	if logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level disabled outside debug mode")
	}

	logger, err = New(true)
	if err != nil {
		t.Fatal(err)
	}
	if !logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level enabled in debug mode")
	}
}
