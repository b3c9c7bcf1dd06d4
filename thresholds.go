package trajwatch

import "fmt"

// Thresholds are the limits that turn repeated agent behavior into an early stop.
//
// A non-positive value disables the corresponding condition.
type Thresholds struct {
	// ParsingFailure stops the run once this many consecutive actions failed
	// to parse.
	ParsingFailure int `yaml:"parsing_failure"`

	// RepeatingAction stops the run once the same action was issued this many
	// times. See the monitor package for how typing actions are counted.
	RepeatingAction int `yaml:"repeating_action"`
}

// DefaultThresholds returns the limits used when nothing else is configured:
//   - 3 consecutive parse failures
//   - 5 repetitions of the same action
func DefaultThresholds() Thresholds {
	return Thresholds{
		ParsingFailure:  3,
		RepeatingAction: 5,
	}
}

// DefaultMaxSteps is the step budget used when nothing else is configured.
const DefaultMaxSteps = 30

// Validate returns ErrInvalidThresholds if any limit is not positive.
func (t Thresholds) Validate() error {
	if t.ParsingFailure < 1 {
		return fmt.Errorf("%w: parsing_failure must be >= 1, got %d",
			ErrInvalidThresholds, t.ParsingFailure)
	}
	if t.RepeatingAction < 1 {
		return fmt.Errorf("%w: repeating_action must be >= 1, got %d",
			ErrInvalidThresholds, t.RepeatingAction)
	}
	return nil
}
