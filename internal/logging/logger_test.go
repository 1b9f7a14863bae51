package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		ctx      context.Context
		expected *zap.SugaredLogger
	}{
		{name: "default", ctx: context.Background(), expected: DefaultLogger()},
		{name: "stored", ctx: WithLogger(context.Background(), stored), expected: stored},
	}
	for _, test := range tests {
		if got := FromContext(test.ctx); got != test.expected {
			t.Errorf("%s: logger from context, got: %p, expected: %p", test.name, got, test.expected)
		}
	}
}

var stored = zap.NewNop().Sugar()

func TestNewLogger(t *testing.T) {
	t.Parallel()
	if !NewLogger(true).Desugar().Core().Enabled(zap.DebugLevel) {
		t.Errorf("debug logger must enable the debug level")
	}
	if NewLogger(false).Desugar().Core().Enabled(zap.DebugLevel) {
		t.Errorf("default logger must not enable the debug level")
	}
}
