package trajwatch

import "errors"

var (
	// ErrUnknownMode is returned for a rendering/action-space mode outside the
	// declared set. It signals misconfiguration and must not be recovered from.
	ErrUnknownMode = errors.New("unknown action set mode")

	ErrUnknownActionKind = errors.New("unknown action kind")

	// ErrInvalidTrajectory is returned by [Trajectory.Validate].
	ErrInvalidTrajectory = errors.New("invalid trajectory")

	ErrInvalidThresholds = errors.New("invalid thresholds")
)
