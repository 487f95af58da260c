package entities

import "errors"

// Domain errors
var (
	ErrInvalidSubject  = errors.New("subject is required")
	ErrInvalidEmail    = errors.New("email is required")
	ErrUserNotFound    = errors.New("user not found")
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrMissingTitle    = errors.New("title is required")
	ErrMissingDate     = errors.New("date is required")
	ErrTaskCompleted   = errors.New("task is already completed")
)
