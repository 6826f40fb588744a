package mailer

import "errors"

var (
	// ErrMailNotAccepted is returned when the transport refuses a message.
	ErrMailNotAccepted = errors.New("mail was not accepted for delivery")

	// ErrUnknownTemplate is returned for a template name with no file.
	ErrUnknownTemplate = errors.New("unknown mail template")

	ErrUnknownMode = errors.New("unknown mailer mode")
)
