package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rickchristie/trajwatch"
	"github.com/rickchristie/trajwatch/config"
	"github.com/rickchristie/trajwatch/format"
	"go.uber.org/zap"
)

var (
	// ErrClosed is returned by RenderStep after Close.
	ErrClosed = errors.New("render: renderer is closed")

	// ErrInvalidStep is returned by RenderStep for a nil action or state.
	ErrInvalidStep = errors.New("render: step needs an action and a state")
)

// Renderer writes the trajectory report of one run.
//
// A Renderer is not safe for concurrent use. It must be the only writer of
// its file while open.
type Renderer struct {
	file   *os.File
	path   string
	mode   trajwatch.Mode
	logger *zap.Logger

	markupOpts []format.MarkupOption
	withDiff   bool

	steps     int
	prevState *trajwatch.State
	closed    bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for file lifecycle and per-step messages.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObservationDiff adds a diff against the previous step's observation to
// every section after the first.
func WithObservationDiff() Option {
	return func(r *Renderer) {
		r.withDiff = true
	}
}

// WithMarkdownPredictions renders raw predictions as Markdown.
func WithMarkdownPredictions() Option {
	return func(r *Renderer) {
		r.markupOpts = append(r.markupOpts, format.WithMarkdownPrediction())
	}
}

// FileName returns the report file name for a task id.
func FileName(taskID string) string {
	return "render_" + taskID + ".html"
}

// Open creates the report for run in dir, truncating any previous report of
// the same task, and writes the document shell with the run configuration.
//
// Returns trajwatch.ErrUnknownMode for a mode outside the declared set and
// config.ErrInvalidRunConfig when run has no task id.
func Open(
	run *config.RunConfig,
	dir string,
	mode trajwatch.Mode,
	opts ...Option,
) (*Renderer, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if run == nil || run.TaskID == "" {
		return nil, fmt.Errorf("%w: missing task_id", config.ErrInvalidRunConfig)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create result dir: %w", err)
	}
	path := filepath.Join(dir, FileName(run.TaskID))
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}

	r := &Renderer{
		file:   file,
		path:   path,
		mode:   mode,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.rewrite(runHeader(run)); err != nil {
		file.Close()
		return nil, err
	}

	r.logger.Info("opened trajectory report",
		zap.String("path", path),
		zap.String("task_id", run.TaskID),
		zap.String("mode", string(mode)),
	)
	return r, nil
}

// WithRenderer opens a Renderer, passes it to fn and closes it whatever fn
// returns. Errors from fn and Close are joined.
func WithRenderer(
	run *config.RunConfig,
	dir string,
	mode trajwatch.Mode,
	fn func(*Renderer) error,
	opts ...Option,
) (err error) {
	r, err := Open(run, dir, mode, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, r.Close())
	}()
	return fn(r)
}

// Path returns the location of the report.
func (r *Renderer) Path() string {
	return r.path
}

// Steps returns the number of sections rendered so far.
func (r *Renderer) Steps() int {
	return r.steps
}

// RenderStep appends the section of one step: the page URL and text
// observation of state, the screenshot when includeImage is set, the most
// recent entry of meta's action history and the markup of action.
//
// The document is read back, its body extracted and the whole document
// rewritten with the new section appended, then synced to disk.
func (r *Renderer) RenderStep(
	action *trajwatch.Action,
	state *trajwatch.State,
	meta *trajwatch.MetaData,
	includeImage bool,
) error {
	if r.closed {
		return ErrClosed
	}
	if action == nil || state == nil {
		return ErrInvalidStep
	}

	markup, err := format.RenderActionMarkup(action, state.Metadata, r.mode, r.markupOpts...)
	if err != nil {
		return err
	}

	section := renderSection(sectionInput{
		step:         r.steps + 1,
		state:        state,
		prevState:    r.prevState,
		prevAction:   meta.LastAction(),
		actionMarkup: markup,
		includeImage: includeImage,
		includeDiff:  r.withDiff,
	})

	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek report: %w", err)
	}
	current, err := io.ReadAll(r.file)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}
	body, err := extractBody(string(current))
	if err != nil {
		return err
	}

	if err := r.rewrite(body + section); err != nil {
		return err
	}

	r.steps++
	r.prevState = state
	r.logger.Debug("rendered step",
		zap.Int("step", r.steps),
		zap.String("url", state.URL),
		zap.String("action", action.Type.String()),
	)
	return nil
}

// Close releases the report file. Calling Close more than once is a no-op.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	r.logger.Info("closed trajectory report",
		zap.String("path", r.path),
		zap.Int("steps", r.steps),
	)
	return nil
}

// rewrite replaces the whole file with the document holding body.
func (r *Renderer) rewrite(body string) error {
	if err := r.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate report: %w", err)
	}
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek report: %w", err)
	}
	if _, err := io.WriteString(r.file, buildDocument(body)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := r.file.Sync(); err != nil {
		return fmt.Errorf("sync report: %w", err)
	}
	return nil
}
