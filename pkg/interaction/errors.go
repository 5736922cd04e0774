package interaction

import "errors"

var (
	// ErrAlreadyReplied is returned when the initial acknowledgement
	// for an interaction has already been sent.
	ErrAlreadyReplied = errors.New("interaction reply already sent")

	// ErrNotAcknowledged is returned when a follow-up is attempted
	// before the initial acknowledgement has been sent.
	ErrNotAcknowledged = errors.New("interaction reply not yet sent")
)
