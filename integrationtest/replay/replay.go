package replay

import (
	"context"

	"github.com/rickchristie/trajwatch"
	"github.com/rickchristie/trajwatch/format"
	"github.com/rickchristie/trajwatch/monitor"
	"github.com/rickchristie/trajwatch/render"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// EarlyStopPrefix starts the answer of a STOP action issued by the monitor.
const EarlyStopPrefix = "Early stop: "

// -------------------------------------------------------------------------
// Options
// -------------------------------------------------------------------------

type runConfig struct {
	resultDir     string
	logger        *zap.Logger
	prompt        format.PromptContext
	equivalence   trajwatch.Equivalence
	renderOptions []render.Option
	onStep        func(StepResult)
}

// Option configures Run.
type Option func(*runConfig)

// WithResultDir overrides the result_dir of the fixture config.
func WithResultDir(dir string) Option {
	return func(c *runConfig) {
		c.resultDir = dir
	}
}

// WithLogger sets the logger handed to the monitor and the renderer.
func WithLogger(logger *zap.Logger) Option {
	return func(c *runConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrompt sets the prompt context used to describe malformed predictions.
// The default wraps actions in a pair of "```".
func WithPrompt(p format.PromptContext) Option {
	return func(c *runConfig) {
		c.prompt = p
	}
}

// WithEquivalence replaces trajwatch.DefaultEquivalence.
func WithEquivalence(eq trajwatch.Equivalence) Option {
	return func(c *runConfig) {
		if eq != nil {
			c.equivalence = eq
		}
	}
}

// WithRenderOptions passes options to the renderer.
func WithRenderOptions(opts ...render.Option) Option {
	return func(c *runConfig) {
		c.renderOptions = append(c.renderOptions, opts...)
	}
}

// OnStep registers a callback invoked after every rendered step.
func OnStep(fn func(StepResult)) Option {
	return func(c *runConfig) {
		c.onStep = fn
	}
}

// -------------------------------------------------------------------------
// Results
// -------------------------------------------------------------------------

// StepResult is what one replayed step produced.
type StepResult struct {
	Step   int
	Action *trajwatch.Action

	// Label is the entry appended to the action history.
	Label string

	// Reminder coaches the agent after a malformed or mistargeted action.
	Reminder string

	// Repetition warns the agent that it keeps issuing the same action.
	Repetition string

	// Feedback holds Reminder and Repetition as prompt content.
	Feedback []llms.ContentPart
}

// Result is the outcome of a replay.
type Result struct {
	Trajectory trajwatch.Trajectory
	Meta       *trajwatch.MetaData

	// Verdict is the early stop verdict, if the monitor ended the run.
	Verdict monitor.Verdict

	Steps      []StepResult
	ReportPath string
}

// StopReason returns the reason the monitor stopped the run, or "".
func (r *Result) StopReason() string {
	return r.Verdict.Reason
}

// -------------------------------------------------------------------------
// Run
// -------------------------------------------------------------------------

// Run replays f and writes its report.
//
// Before every prediction the monitor decides whether the run must stop; if
// so a STOP action carrying "Early stop: <reason>" replaces the recorded
// action. Every action is described, rendered, and its label appended to the
// history. The run ends on a STOP action, or after the last recorded action
// when the environment has no further state: the final state and an
// unrendered empty STOP action then close the trajectory.
func Run(ctx context.Context, f *Fixture, opts ...Option) (*Result, error) {
	cfg := &runConfig{
		resultDir:   f.Config.ResultDir,
		logger:      zap.NewNop(),
		prompt:      format.NewSplitterPrompt("```"),
		equivalence: trajwatch.DefaultEquivalence,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	mon := monitor.New(cfg.equivalence, monitor.WithLogger(cfg.logger))
	settings := f.Config
	renderOpts := []render.Option{render.WithLogger(cfg.logger)}
	if settings.UseDiff {
		renderOpts = append(renderOpts, render.WithObservationDiff())
	}
	if settings.MarkdownPredictions {
		renderOpts = append(renderOpts, render.WithMarkdownPredictions())
	}
	renderOpts = append(renderOpts, cfg.renderOptions...)

	state := f.Steps[0].State
	res := &Result{
		Trajectory: trajwatch.Trajectory{state},
		Meta:       trajwatch.NewMetaData(),
	}

	err := render.WithRenderer(f.RunConfig(), cfg.resultDir, settings.Mode,
		func(r *render.Renderer) error {
			res.ReportPath = r.Path()

			for i := 0; ; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				var action *trajwatch.Action
				verdict := mon.Check(res.Trajectory, settings.MaxSteps, settings.Thresholds)
				if verdict.Stop {
					res.Verdict = verdict
					action = trajwatch.NewStopAction(EarlyStopPrefix + verdict.Reason)
				} else {
					recorded := *f.Steps[i].Action
					action = &recorded
				}
				res.Trajectory = res.Trajectory.AppendAction(action)

				label, reminder, err := format.DescribeAction(
					action, state.Metadata, settings.Mode, cfg.prompt)
				if err != nil {
					return err
				}
				if err := r.RenderStep(action, state, res.Meta, settings.RenderScreenshot); err != nil {
					return err
				}
				res.Meta.ActionHistory = append(res.Meta.ActionHistory, label)

				step := StepResult{
					Step:     i + 1,
					Action:   action,
					Label:    label,
					Reminder: reminder,
				}
				if action.Type != trajwatch.KindStop {
					_, step.Repetition = mon.CheckRepetitive(
						res.Trajectory, settings.Thresholds.RepeatingAction, label)
				}
				step.Feedback = trajwatch.Feedback(step.Reminder, step.Repetition)
				res.Steps = append(res.Steps, step)
				if cfg.onStep != nil {
					cfg.onStep(step)
				}

				if action.Type == trajwatch.KindStop {
					return nil
				}

				// The environment terminated after the last recorded action.
				if i+1 >= len(f.Steps) {
					final := f.FinalState
					if final == nil {
						final = state
					}
					res.Trajectory = res.Trajectory.
						AppendState(final).
						AppendAction(trajwatch.NewStopAction(""))
					return nil
				}
				state = f.Steps[i+1].State
				res.Trajectory = res.Trajectory.AppendState(state)
			}
		}, renderOpts...)
	if err != nil {
		return res, err
	}
	return res, nil
}
