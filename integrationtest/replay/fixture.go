// Package replay drives recorded trajectories through the monitor and the
// renderer the way a live agent runner does.
//
// A fixture holds the states an environment produced and the actions an agent
// predicted for them. [Run] replays it step by step: it asks the monitor
// whether to stop before every prediction, describes and renders each action,
// and keeps the action history the agent would see.
package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rickchristie/trajwatch"
	"github.com/rickchristie/trajwatch/config"
	"github.com/tmc/langchaingo/llms"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFixture is returned when a fixture cannot be replayed.
var ErrInvalidFixture = errors.New("invalid replay fixture")

// -------------------------------------------------------------------------
// Fixture Types
// -------------------------------------------------------------------------

// Fixture is one recorded run.
type Fixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	TaskID string `yaml:"task_id"`
	Intent string `yaml:"intent"`

	// Config is decoded onto config.DefaultConfig.
	Config config.Config `yaml:"config"`

	Steps []Step `yaml:"steps"`

	// FinalState is the state the environment reached after the last
	// recorded action. It defaults to the state of the last step.
	FinalState *trajwatch.State `yaml:"final_state"`

	// Expect describes the outcome of replaying the fixture. It is only
	// consulted by tests.
	Expect Expectation `yaml:"expect"`
}

// Step is the state the environment produced and the action the agent
// predicted for it.
type Step struct {
	State *trajwatch.State `yaml:"state"`

	// Screenshot is a PNG file relative to the fixture file.
	Screenshot string `yaml:"screenshot"`

	Action *trajwatch.Action `yaml:"action"`
}

// Expectation is the recorded outcome of a fixture.
type Expectation struct {
	StopReason string   `yaml:"stop_reason"`
	Steps      int      `yaml:"steps"`
	History    []string `yaml:"history"`
	Reminders  int      `yaml:"reminders"`
}

// RunConfig returns the run configuration rendered into the report header.
func (f *Fixture) RunConfig() *config.RunConfig {
	var params []config.Param
	if f.Intent != "" {
		params = append(params, config.Param{Key: "intent", Value: f.Intent})
	}
	if f.Name != "" {
		params = append(params, config.Param{Key: "fixture", Value: f.Name})
	}
	return config.NewRunConfig(f.TaskID, params...)
}

// -------------------------------------------------------------------------
// Loading
// -------------------------------------------------------------------------

// LoadFixture reads the fixture at path and loads its screenshots.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	f, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := f.loadScreenshots(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseFixture decodes a fixture. Screenshots are not loaded.
func ParseFixture(data []byte) (*Fixture, error) {
	f := &Fixture{Config: config.DefaultConfig()}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Fixture) validate() error {
	if f.TaskID == "" {
		return fmt.Errorf("%w: missing task_id", ErrInvalidFixture)
	}
	if len(f.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidFixture)
	}
	for i, s := range f.Steps {
		if s.State == nil {
			return fmt.Errorf("%w: step %d has no state", ErrInvalidFixture, i)
		}
		if s.Action == nil {
			return fmt.Errorf("%w: step %d has no action", ErrInvalidFixture, i)
		}
	}
	if err := f.Config.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}
	return nil
}

func (f *Fixture) loadScreenshots(dir string) error {
	for i := range f.Steps {
		s := &f.Steps[i]
		if s.Screenshot == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, s.Screenshot))
		if err != nil {
			return fmt.Errorf("step %d screenshot: %w", i, err)
		}
		s.State.Observation.Image = &llms.BinaryContent{
			MIMEType: "image/png",
			Data:     data,
		}
	}
	return nil
}
