// Package trajwatch watches the trajectory of a web agent.
//
// A trajectory is the alternating State, Action, State, ... history of one run.
// This package holds the shared data model. Two independent components are
// built on top of it:
//
//   - the monitor package decides after every step whether the run must stop
//     because the agent exhausted its step budget, keeps failing to produce a
//     parsable action, or repeats itself.
//   - the render package persists the trajectory as an HTML document that is
//     rewritten after every step, so the file on disk is always complete.
//
// The format package holds the helpers both of them use to turn actions into
// text and markup.
//
// # Quick Start
//
//	mon := monitor.New(trajwatch.DefaultEquivalence)
//
//	r, err := render.Open(runConfig, "results", trajwatch.ModeAccessibilityTree)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	traj := trajwatch.Trajectory{firstState}
//	meta := trajwatch.NewMetaData()
//	for {
//	    var action *trajwatch.Action
//	    if stop, reason := mon.ShouldStop(traj, maxSteps, thresholds); stop {
//	        action = trajwatch.NewStopAction("Early stop: " + reason)
//	    } else {
//	        action = agent.NextAction(traj, meta)
//	    }
//	    traj = traj.AppendAction(action)
//
//	    label, _, err := format.DescribeAction(action, state.Metadata, mode, prompt)
//	    if err != nil {
//	        return err
//	    }
//	    if err := r.RenderStep(action, state, meta, false); err != nil {
//	        return err
//	    }
//	    meta.ActionHistory = append(meta.ActionHistory, label)
//	    if action.Type == trajwatch.KindStop {
//	        break
//	    }
//	    state = env.Step(action)
//	    traj = traj.AppendState(state)
//	}
//
// # Equivalence
//
// Whether two actions are "the same" is domain knowledge, so the monitor takes
// it as an injected [Equivalence]. [DefaultEquivalence] compares browser
// actions by kind and target.
package trajwatch
