package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	heartriskErrors "github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// TestLoggerInterface tests the TestLogger implementation of Logger.
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationTrain)
	testLogger.Warn("warning message", FeatureKey, "ca")
	testLogger.Error("error message", fmt.Errorf("test error"), ProviderKey, "gemini")

	if buffer.Len() == 0 {
		t.Fatal("Expected log output, got empty string")
	}
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}
	if !testLogger.ContainsField("number", 42.0) {
		t.Error("Expected field number=42 not found")
	}
	if !testLogger.ContainsField("error", "test error") {
		t.Error("leading error should be logged under the error key")
	}
	if !testLogger.ContainsField(ProviderKey, "gemini") {
		t.Error("fields after the error should keep their pairing")
	}
}

func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(ModelNameKey, "Ensemble", ModelIDKey, "abc")
	contextLogger.Info("contextual message", OperationKey, OperationPredict)

	assert.True(t, testLogger.ContainsField(ModelNameKey, "Ensemble"))
	assert.True(t, testLogger.ContainsField(ModelIDKey, "abc"))
	assert.True(t, testLogger.ContainsField(OperationKey, OperationPredict))
}

func TestLoggerEnabled(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		check  Level
		expect bool
	}{
		{"debug logger allows debug", LevelDebug, LevelDebug, true},
		{"info logger blocks debug", LevelInfo, LevelDebug, false},
		{"warn logger allows error", LevelWarn, LevelError, true},
		{"error logger blocks warn", LevelError, LevelWarn, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testLogger, _ := NewTestLogger(tt.level)
			assert.Equal(t, tt.expect, testLogger.Enabled(context.Background(), tt.check))

			zl := NewZerologProvider(zerolog.New(&bytes.Buffer{}), tt.level).GetLogger()
			assert.Equal(t, tt.expect, zl.Enabled(context.Background(), tt.check))
		})
	}
}

func TestZerologProvider_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(zerolog.New(&buf), LevelDebug)

	logger := provider.GetLoggerWithName("boosting").With(ModelIDKey, "m-1")
	logger.Info("Training finished", SamplesKey, 303, TierKey, "high")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Training finished", entry["message"])
	assert.Equal(t, "boosting", entry[ComponentKey])
	assert.Equal(t, "m-1", entry[ModelIDKey])
	assert.Equal(t, 303.0, entry[SamplesKey])
	assert.Equal(t, "high", entry[TierKey])
}

func TestZerologProvider_ErrorCarriesStacktrace(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(zerolog.New(&buf), LevelInfo)

	err := heartriskErrors.NewModelNotTrainedError("Ensemble", "Predict")
	provider.GetLogger().Error("Prediction failed", err, OperationKey, OperationPredict)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry["error"], "model is not trained yet")
	assert.NotEmpty(t, entry[StacktraceKey])
	detail, ok := entry["error.detail"].(map[string]interface{})
	require.True(t, ok, "typed errors should be expanded")
	assert.Equal(t, "ModelNotTrainedError", detail["type"])
	assert.Equal(t, OperationPredict, entry[OperationKey])
}

func TestZerologProvider_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(zerolog.New(&buf), LevelInfo)
	provider.GetLogger().Debug("hidden")
	assert.Zero(t, buf.Len())

	provider.SetLevel(LevelDebug)
	provider.GetLogger().Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestToLogLevel(t *testing.T) {
	for in, want := range map[string]Level{"": LevelInfo, "debug": LevelDebug, "WARN": LevelWarn, "error": LevelError} {
		got, err := ToLogLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := ToLogLevel("verbose")
	var valErr *heartriskErrors.ValidationError
	assert.True(t, heartriskErrors.As(err, &valErr))
}

func TestSetup_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartrisk.log")
	closer, err := Setup(Options{Level: "debug", Format: "json", File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	t.Cleanup(func() {
		SetProvider(NewZerologProvider(zerolog.Nop(), LevelInfo))
		heartriskErrors.SetZerologWarnFunc(nil)
	})

	GetLoggerWithName("cli").Info("hello", SamplesKey, 3)
	heartriskErrors.Warn(heartriskErrors.NewUnobservedFeatureWarning("ca", 3))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"component":"cli"`)
	assert.Contains(t, lines[1], "feature 'ca' has no observed values")
	assert.Contains(t, lines[1], `"component":"warnings"`)
}

func TestSetup_RejectsUnknownLevel(t *testing.T) {
	_, err := Setup(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestLoggerProviderIntegration(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelInfo)
	SetProvider(provider)
	t.Cleanup(func() { SetProvider(NewZerologProvider(zerolog.Nop(), LevelInfo)) })

	GetLoggerWithName("narrate").Info("Explanation ready", SourceKey, "local")
	assert.True(t, provider.Logger().ContainsField(ComponentKey, "narrate"))
	assert.Contains(t, buffer.String(), "Explanation ready")

	provider.SetLevel(LevelError)
	GetLogger().Info("suppressed")
	assert.NotContains(t, buffer.String(), "suppressed")
}

func TestConcurrentLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	const goroutines, perG = 8, 25

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger := testLogger.With("worker", id)
			for i := 0; i < perG; i++ {
				logger.Info("predicted", RowKey, i)
			}
		}(g)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, goroutines*perG)
}
