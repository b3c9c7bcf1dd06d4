package monitor

import (
	"fmt"

	"github.com/rickchristie/trajwatch"
	"go.uber.org/zap"
)

// Monitor evaluates stop conditions over a trajectory.
//
// Monitor holds no per-run state. It is safe to share across runs and to call
// repeatedly, but the caller must not append to a trajectory while a call on
// it is in progress.
type Monitor struct {
	equivalent trajwatch.Equivalence
	logger     *zap.Logger
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger used to report stop verdicts.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Monitor that uses equivalent to decide whether two actions
// are the same.
// Panics if equivalent is nil.
func New(equivalent trajwatch.Equivalence, opts ...Option) *Monitor {
	if equivalent == nil {
		panic("trajwatch: monitor requires an equivalence predicate")
	}
	m := &Monitor{
		equivalent: equivalent,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ShouldStop reports whether the run must stop and why.
// It is the tuple form of [Monitor.Check].
func (m *Monitor) ShouldStop(
	traj trajwatch.Trajectory,
	maxSteps int,
	thresholds trajwatch.Thresholds,
) (bool, string) {
	v := m.Check(traj, maxSteps, thresholds)
	return v.Stop, v.Reason
}

// Check evaluates the stop conditions in order and returns the first that
// holds. Short or empty trajectories never trigger the threshold conditions.
func (m *Monitor) Check(
	traj trajwatch.Trajectory,
	maxSteps int,
	thresholds trajwatch.Thresholds,
) Verdict {
	v := m.check(traj, maxSteps, thresholds)
	if v.Stop {
		m.logger.Info("early stop",
			zap.String("condition", string(v.Condition)),
			zap.String("reason", v.Reason),
			zap.Int("steps", traj.Steps()),
		)
	}
	return v
}

func (m *Monitor) check(
	traj trajwatch.Trajectory,
	maxSteps int,
	thresholds trajwatch.Thresholds,
) Verdict {
	if traj.Steps() >= maxSteps {
		return Verdict{
			Stop:      true,
			Condition: StopMaxSteps,
			Reason:    fmt.Sprintf("Reached max steps %d", maxSteps),
		}
	}

	actions := traj.Actions()

	if k := thresholds.ParsingFailure; k > 0 && len(actions) >= k {
		if allParseFailures(actions[len(actions)-k:]) {
			return Verdict{
				Stop:      true,
				Condition: StopParsingFailure,
				Reason:    fmt.Sprintf("Failed to parse actions for %d times", k),
			}
		}
	}

	k := thresholds.RepeatingAction
	switch m.repetition(actions, k) {
	case repeatWindow:
		return Verdict{
			Stop:      true,
			Condition: StopRepeatingAction,
			Reason:    fmt.Sprintf("Same action for %d times", k),
		}
	case repeatTyping:
		return Verdict{
			Stop:      true,
			Condition: StopRepeatingTyping,
			Reason:    fmt.Sprintf("Same typing action for %d times", k),
		}
	}

	return continueVerdict
}

// CheckRepetitive applies the repetition rules of [Monitor.Check] without
// stopping the run. On repetition it returns a message for the agent that
// names label, the description of the current action, and k.
// It returns (false, "") when there is no action yet or nothing repeats.
func (m *Monitor) CheckRepetitive(
	traj trajwatch.Trajectory,
	k int,
	label string,
) (bool, string) {
	switch m.repetition(traj.Actions(), k) {
	case repeatWindow:
		return true, fmt.Sprintf(
			"You have issued the same action %s for %d times, "+
				"which means you are in a loop and should try another action.",
			label, k)
	case repeatTyping:
		return true, fmt.Sprintf(
			"You have issued the type action %s for %d times, "+
				"which means you are in a loop and should try another action.",
			label, k)
	default:
		return false, ""
	}
}

func allParseFailures(actions []*trajwatch.Action) bool {
	for _, a := range actions {
		if !a.IsParseFailure() {
			return false
		}
	}
	return true
}
