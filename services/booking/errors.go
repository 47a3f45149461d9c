package booking

import "errors"

var (
	// ErrNotFound means the booking id resolves to nothing.
	ErrNotFound = errors.New("booking not found")

	// ErrAlreadyProcessed means the booking left the expected status before
	// this request got to it, typically a second click on an action link.
	ErrAlreadyProcessed = errors.New("booking has already been processed")

	// ErrForbidden means the caller is not the party allowed to perform the
	// operation.
	ErrForbidden = errors.New("not authorized for this booking")

	// ErrPastDateTime rejects requests scheduled in the past.
	ErrPastDateTime = errors.New("booking time must be in the future")

	// ErrDescriptionTooLong rejects oversized free-text descriptions.
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")

	// ErrInvalidMentor means the target mentor does not exist or does not
	// hold the mentor role.
	ErrInvalidMentor = errors.New("mentor not found")

	// ErrInvalidMentee means the requesting user does not exist or does not
	// hold the mentee role.
	ErrInvalidMentee = errors.New("mentee not found")

	// ErrInvalidTransition means the requested status change is not an
	// allowed edge of the booking lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTokenInvalid means the action token failed validation.
	ErrTokenInvalid = errors.New("invalid action token")

	// ErrTokenUsed means the action token was already redeemed.
	ErrTokenUsed = errors.New("action token already used")
)
