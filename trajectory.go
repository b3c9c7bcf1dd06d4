package trajwatch

import "fmt"

// Element is a marker interface implemented by *State and *Action, the two
// kinds of entries of a [Trajectory].
type Element interface {
	trajectoryElement()
}

// Trajectory is the alternating State, Action, State, ... history of one run.
//
// A live trajectory has length 2k+1: k actions at odd positions and k+1 states
// at even positions. The caller owns the slice; nothing in this module mutates
// a trajectory it is handed.
type Trajectory []Element

// Steps returns the number of actions taken, (len-1)/2.
func (t Trajectory) Steps() int {
	if len(t) == 0 {
		return 0
	}
	return (len(t) - 1) / 2
}

// Actions returns the actions at odd positions, oldest first. Entries that are
// not actions are skipped.
func (t Trajectory) Actions() []*Action {
	actions := make([]*Action, 0, len(t)/2)
	for i := 1; i < len(t); i += 2 {
		if a, ok := t[i].(*Action); ok {
			actions = append(actions, a)
		}
	}
	return actions
}

// States returns the states at even positions, oldest first.
func (t Trajectory) States() []*State {
	states := make([]*State, 0, len(t)/2+1)
	for i := 0; i < len(t); i += 2 {
		if s, ok := t[i].(*State); ok {
			states = append(states, s)
		}
	}
	return states
}

// LastAction returns the most recent action, or nil if none was taken.
func (t Trajectory) LastAction() *Action {
	for i := len(t) - 1; i >= 0; i-- {
		if a, ok := t[i].(*Action); ok {
			return a
		}
	}
	return nil
}

// LastState returns the most recent state, or nil for an empty trajectory.
func (t Trajectory) LastState() *State {
	for i := len(t) - 1; i >= 0; i-- {
		if s, ok := t[i].(*State); ok {
			return s
		}
	}
	return nil
}

// AppendState returns t with s appended.
func (t Trajectory) AppendState(s *State) Trajectory {
	return append(t, s)
}

// AppendAction returns t with a appended.
func (t Trajectory) AppendAction(a *Action) Trajectory {
	return append(t, a)
}

// Validate checks that t alternates State and Action starting with a State and
// holds no nil entries. A trajectory may end with an Action right after the
// agent predicted it and before the environment produced the next State.
func (t Trajectory) Validate() error {
	for i, e := range t {
		switch v := e.(type) {
		case *State:
			if v == nil {
				return fmt.Errorf("%w: nil state at position %d", ErrInvalidTrajectory, i)
			}
			if i%2 != 0 {
				return fmt.Errorf("%w: state at odd position %d", ErrInvalidTrajectory, i)
			}
		case *Action:
			if v == nil {
				return fmt.Errorf("%w: nil action at position %d", ErrInvalidTrajectory, i)
			}
			if i%2 != 1 {
				return fmt.Errorf("%w: action at even position %d", ErrInvalidTrajectory, i)
			}
		default:
			return fmt.Errorf("%w: unexpected element %T at position %d", ErrInvalidTrajectory, e, i)
		}
	}
	return nil
}
