package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rickchristie/trajwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		expected  func() Config
		expectErr error
	}{
		{
			name:     "empty file uses defaults",
			yaml:     "",
			expected: DefaultConfig,
		},
		{
			name: "overrides keep unspecified defaults",
			yaml: "max_steps: 10\n" +
				"mode: set_of_mark\n" +
				"thresholds:\n" +
				"  repeating_action: 3\n",
			expected: func() Config {
				cfg := DefaultConfig()
				cfg.MaxSteps = 10
				cfg.Mode = trajwatch.ModeSetOfMark
				cfg.Thresholds.RepeatingAction = 3
				return cfg
			},
		},
		{
			name: "logging to file",
			yaml: "render_screenshot: true\n" +
				"logging:\n" +
				"  level: debug\n" +
				"  format: json\n" +
				"  file: run.log\n",
			expected: func() Config {
				cfg := DefaultConfig()
				cfg.RenderScreenshot = true
				cfg.Logging.Level = "debug"
				cfg.Logging.Format = "json"
				cfg.Logging.File = "run.log"
				return cfg
			},
		},
		{
			name: "report options",
			yaml: "use_diff: true\n" +
				"markdown_predictions: true\n",
			expected: func() Config {
				cfg := DefaultConfig()
				cfg.UseDiff = true
				cfg.MarkdownPredictions = true
				return cfg
			},
		},
		{
			name:      "unknown mode",
			yaml:      "mode: coordinates\n",
			expectErr: ErrInvalidConfig,
		},
		{
			name:      "zero threshold",
			yaml:      "thresholds:\n  parsing_failure: 0\n",
			expectErr: trajwatch.ErrInvalidThresholds,
		},
		{
			name:      "zero max steps",
			yaml:      "max_steps: 0\n",
			expectErr: ErrInvalidConfig,
		},
		{
			name:      "bad log format",
			yaml:      "logging:\n  format: xml\n",
			expectErr: ErrInvalidConfig,
		},
		{
			name:      "malformed yaml",
			yaml:      "max_steps: [",
			expectErr: ErrInvalidConfig,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.yaml))
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected(), cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_steps: 12\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.MaxSteps)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
