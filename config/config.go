// Package config loads the settings of a monitored run.
//
// Two files are involved. The settings file is YAML and configures the
// monitor, the renderer and logging:
//
//	max_steps: 30
//	mode: id_accessibility_tree
//	render_screenshot: true
//	use_diff: false
//	markdown_predictions: false
//	result_dir: results
//	thresholds:
//	  parsing_failure: 3
//	  repeating_action: 5
//	logging:
//	  level: info
//	  format: console
//
// The run configuration is the JSON task description handed to the agent.
// It is rendered verbatim into the report header and must carry a task_id.
// See [LoadRunConfig].
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rickchristie/trajwatch"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when the settings file holds an unusable value.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the settings of a monitored run.
type Config struct {
	// MaxSteps is the step budget of the run.
	MaxSteps int `yaml:"max_steps"`

	Thresholds trajwatch.Thresholds `yaml:"thresholds"`

	// Mode is the action space of the agent.
	Mode trajwatch.Mode `yaml:"mode"`

	// RenderScreenshot embeds the screenshot of every step in the report.
	RenderScreenshot bool `yaml:"render_screenshot"`

	// UseDiff adds a diff against the previous observation to every step of
	// the report.
	UseDiff bool `yaml:"use_diff"`

	// MarkdownPredictions renders raw predictions in the report as Markdown.
	MarkdownPredictions bool `yaml:"markdown_predictions"`

	// ResultDir is where reports are written.
	ResultDir string `yaml:"result_dir"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger built by the internal logging package.
type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "console" or "json".
	Format string `yaml:"format"`

	// File, when set, additionally writes JSON logs to a rotated file.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// DefaultConfig returns the settings used for keys absent from the file.
func DefaultConfig() Config {
	return Config{
		MaxSteps:   trajwatch.DefaultMaxSteps,
		Thresholds: trajwatch.DefaultThresholds(),
		Mode:       trajwatch.ModeAccessibilityTree,
		ResultDir:  "results",
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads a YAML settings file on top of [DefaultConfig] and validates it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML settings on top of [DefaultConfig] and validates them.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field of c.
func (c Config) Validate() error {
	if c.MaxSteps < 1 {
		return fmt.Errorf("%w: max_steps must be >= 1, got %d", ErrInvalidConfig, c.MaxSteps)
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Mode.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.ResultDir == "" {
		return fmt.Errorf("%w: result_dir must not be empty", ErrInvalidConfig)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q",
			ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
