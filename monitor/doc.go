// Package monitor decides when a web agent must be stopped early.
//
// After every step the caller hands the whole trajectory to [Monitor.Check] (or
// its tuple form [Monitor.ShouldStop]). Conditions are evaluated in order and
// the first one that holds wins:
//
//  1. Step budget: the number of actions taken reached maxSteps.
//  2. Parse failures: the last ParsingFailure actions all failed to parse.
//  3. Repetition: the most recent action repeats.
//
// # Repetition Windows
//
// Repetition is measured differently for typing. For any action other than
// TYPE, the last RepeatingAction actions must all be equivalent to the most
// recent one (a sliding window). For TYPE, every action of the whole history
// that is equivalent to the most recent one is counted, so typing into the same
// field again and again is caught even when other actions are interleaved.
//
// [Monitor.CheckRepetitive] applies the same repetition rules without stopping
// the run; it produces a message meant to be shown to the agent.
//
// # Example
//
//	mon := monitor.New(trajwatch.DefaultEquivalence, monitor.WithLogger(logger))
//	if stop, reason := mon.ShouldStop(traj, 30, trajwatch.DefaultThresholds()); stop {
//	    // append a STOP action carrying reason and end the run
//	}
package monitor
