package inference

import "errors"

// ErrNoActiveModel is returned by Generate when no model has been loaded.
var ErrNoActiveModel = errors.New("no model is currently loaded")

// IsNoActiveModel reports whether err is the invalid-state condition of
// generating without an active model.
func IsNoActiveModel(err error) bool {
	return errors.Is(err, ErrNoActiveModel)
}

// runnerError marks a failure reported by the model runner.
type runnerError struct {
	op  string
	err error
}

func (e runnerError) Error() string { return e.op + ": " + e.err.Error() }

func (e runnerError) Unwrap() error { return e.err }

// IsRunnerFailure reports whether err came from the model runner.
func IsRunnerFailure(err error) bool {
	var re runnerError
	return errors.As(err, &re)
}
