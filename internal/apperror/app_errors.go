package apperror

import "errors"

var (
	ErrMissingPlayerID           = errors.New("player id is required")
	ErrInvalidInitPayload        = errors.New("invalid init payload")
	ErrEmptyQuestionSet          = errors.New("question set is empty")
	ErrMissingCorrectAnswer      = errors.New("question has no correct answer")
	ErrQuestionSourceUnavailable = errors.New("question source unavailable")
)
