package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/heartrisk/pkg/log"
)

const (
	testConfig = "testdata/config.yaml"
	testSample = "../../clinical/testdata/sample.json"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootConfig := &rootCmdConfig{}
	t.Cleanup(func() { assert.NoError(t, rootConfig.close()) })
	cmd := cliParser(rootConfig)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "heartrisk v"))
}

func TestTrainCmd(t *testing.T) {
	plot := filepath.Join(t.TempDir(), "roc.png")
	out, err := run(t, "train", "--config", testConfig, "--roc-plot", plot)
	require.NoError(t, err)

	for _, want := range []string{"rounds:         10", "accuracy:", "error rate:", "log loss:", "brier score:", "auc:", "feature importance (splits):"} {
		assert.Contains(t, out, want)
	}

	var acc, errRate float64
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, "accuracy:"); ok {
			acc, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
			require.NoError(t, err)
		}
		if v, ok := strings.CutPrefix(line, "error rate:"); ok {
			errRate, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
			require.NoError(t, err)
		}
	}
	assert.Greater(t, acc, 0.5)
	assert.InDelta(t, 1, acc+errRate, 2e-4)
	info, err := os.Stat(plot)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestTrainCmdMissingData(t *testing.T) {
	_, err := run(t, "train", "--config", testConfig, "--data", "testdata/missing.csv")
	assert.Error(t, err)
}

func TestFactorsCmd(t *testing.T) {
	out, err := run(t, "factors", "--config", testConfig, "--sample", testSample, "--lang", "tr")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 13)
	assert.Contains(t, lines[0], "63")
}

func TestAssessCmd(t *testing.T) {
	out, err := run(t, "assess", "--config", testConfig, "--sample", testSample, "--lang", "tr")
	require.NoError(t, err)

	assert.Contains(t, out, "risk score:")
	assert.Contains(t, out, "confidence:  80")
	assert.Contains(t, out, "explanation (local):")
	assert.Contains(t, out, "112'yi arayın")
}

func TestAssessCmdNoNarration(t *testing.T) {
	out, err := run(t, "assess", "--config", testConfig, "--sample", testSample, "--no-narration")
	require.NoError(t, err)
	assert.NotContains(t, out, "explanation")
}

func TestAssessCmdRequiresSample(t *testing.T) {
	_, err := run(t, "assess", "--config", testConfig)
	assert.Error(t, err)

	_, err = run(t, "assess", "--config", testConfig, "--sample", testSample, "--lang", "de")
	assert.Error(t, err)
}

// logFileConfig writes a configuration that sends logs to a file under dir.
func logFileConfig(t *testing.T, dir, dataPath string) (configPath, logPath string) {
	t.Helper()
	logPath = filepath.Join(dir, "heartrisk.log")
	configPath = filepath.Join(dir, "config.yaml")
	body := "log:\n  level: info\n  format: json\n  file: " + logPath + "\n" +
		"training:\n  rounds: 3\n" +
		"data:\n  path: " + dataPath + "\n" +
		"narration:\n  provider: local\n  language: en\n"
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o600))
	return configPath, logPath
}

func TestExecuteClosesLogFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	configPath, logPath := logFileConfig(t, dir, filepath.Join(dir, "missing.csv"))

	rootConfig := &rootCmdConfig{}
	var out bytes.Buffer
	code := execute(rootConfig, []string{"train", "--config", configPath}, &out, &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "loading training data")
	require.NotNil(t, rootConfig.cfg, "setup should have run before the failure")
	assert.Equal(t, logPath, rootConfig.cfg.Log.File)
	assert.Nil(t, rootConfig.closer, "log writer left open after a failed command")
}

func TestExecuteClosesLogFileOnSuccess(t *testing.T) {
	dir := t.TempDir()
	data, err := filepath.Abs("../../clinical/testdata/heart.csv")
	require.NoError(t, err)
	configPath, logPath := logFileConfig(t, dir, data)

	rootConfig := &rootCmdConfig{}
	var out bytes.Buffer
	code := execute(rootConfig, []string{"train", "--config", configPath}, &out, &out)

	assert.Equal(t, 0, code)
	assert.Nil(t, rootConfig.closer)
	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "Training data loaded")
	assert.Contains(t, string(logged), log.AUCKey)
}

type panickingCloser struct{}

func (panickingCloser) Close() error { panic("disk gone") }

func TestCloseRecoversPanickingWriter(t *testing.T) {
	rootConfig := &rootCmdConfig{closer: panickingCloser{}}
	err := rootConfig.close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close log writer")
	assert.NoError(t, rootConfig.close(), "second close is a no-op")
}

func TestExecuteVersionNeedsNoConfig(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, execute(&rootCmdConfig{}, []string{"version"}, &out, &out))
	assert.True(t, strings.HasPrefix(out.String(), "heartrisk v"))
}
