// Package render persists a trajectory as a human readable HTML report.
//
// # Lifecycle
//
// A [Renderer] owns one file per run. [Open] creates or truncates the file and
// writes the document shell with the run configuration in it. Every call to
// [Renderer.RenderStep] appends one section for the step. [Renderer.Close]
// releases the file. [WithRenderer] wraps the three so the file is released on
// every path.
//
// # Rewrite Strategy
//
// RenderStep does not append to the end of the file. It reads the whole
// document back, extracts the body, appends the new section and rewrites the
// document from offset zero before syncing it to disk. Each step therefore
// costs O(document size), and in exchange the file is a complete document
// after every step: it can be opened in a browser while the run is still going
// and survives a crash right after any step.
//
// [ReadSections] reopens a report and lists its steps.
//
// # Example
//
//	err := render.WithRenderer(runConfig, "results", trajwatch.ModeAccessibilityTree,
//	    func(r *render.Renderer) error {
//	        for _, step := range steps {
//	            if err := r.RenderStep(step.Action, step.State, meta, true); err != nil {
//	                return err
//	            }
//	        }
//	        return nil
//	    },
//	    render.WithObservationDiff(),
//	)
package render
