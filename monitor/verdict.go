package monitor

// StopCondition names the condition that ended a run.
type StopCondition string

const (
	// StopNone means the run may continue.
	StopNone StopCondition = ""

	// StopMaxSteps means the step budget was exhausted.
	StopMaxSteps StopCondition = "max_steps"

	// StopParsingFailure means too many consecutive actions failed to parse.
	StopParsingFailure StopCondition = "parsing_failure"

	// StopRepeatingAction means the last actions were all the same action.
	StopRepeatingAction StopCondition = "repeating_action"

	// StopRepeatingTyping means the same typing action occurred too often in
	// the whole history.
	StopRepeatingTyping StopCondition = "repeating_typing"
)

// Verdict is the outcome of [Monitor.Check].
type Verdict struct {
	// Stop is true when the run must end.
	Stop bool

	// Condition is the condition that triggered, StopNone otherwise.
	Condition StopCondition

	// Reason is a human readable explanation, empty when Stop is false.
	Reason string
}

var continueVerdict = Verdict{}
