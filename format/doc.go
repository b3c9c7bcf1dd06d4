// Package format turns predicted actions into text and markup.
//
// # Overview
//
// Three helpers cover the two consumers of an action description:
//
//  1. [ActionString] - the action in the agent's own grammar, e.g.
//     "click [12] where [12] is button 'Search'"
//  2. [DescribeAction] - the label kept in the action history, plus an
//     optional reminder that coaches the agent after a recoverable mistake
//  3. [RenderActionMarkup] - the HTML fragment shown in the trajectory report
//
// # Modes
//
// All helpers branch on [trajwatch.Mode]. A mode outside the declared set is a
// configuration mistake and is returned as trajwatch.ErrUnknownMode.
//
// # Recoverable Gaps
//
// Formatting never fails because of the action itself:
//   - a target missing from the observation metadata renders as [NoMatchFound]
//     and produces a reminder instead of a label
//   - a prediction that failed to parse produces a reminder
//   - an empty label becomes [ParsingErrorLabel]
//
// # Example Usage
//
//	prompt := format.NewSplitterPrompt("```")
//	label, reminder, err := format.DescribeAction(action, state.Metadata, mode, prompt)
//	if err != nil {
//	    return err // unknown mode
//	}
//	meta.ActionHistory = append(meta.ActionHistory, label)
//	if reminder != "" {
//	    feedback = append(feedback, trajwatch.Feedback(reminder)...)
//	}
package format
