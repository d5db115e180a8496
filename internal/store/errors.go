package store

import "errors"

var (
	ErrTableLoading   = errors.New("table_loading")
	ErrHandFinished   = errors.New("hand_finished")
	ErrHandInProgress = errors.New("hand_in_progress")
	ErrMustCall       = errors.New("must_call")
	ErrNothingToCall  = errors.New("nothing_to_call")
)
