package table

import "errors"

var (
	ErrMissingSeat    = errors.New("missing_seat")
	ErrNegativeAmount = errors.New("negative_amount")
	ErrUnknownAction  = errors.New("unknown_action")
	ErrInvalidStep    = errors.New("invalid_step")
)
