package services

import "errors"

var (
	// ErrUnreadableDocument means the uploaded bytes are not a document we can parse.
	// Callers should ask for a new upload.
	ErrUnreadableDocument = errors.New("unreadable document")

	// ErrModelUnavailable means the language annotation model could not be loaded or used.
	ErrModelUnavailable = errors.New("language model unavailable")

	// ErrWorkerStopped is returned when submitting to a worker pool that has been stopped.
	ErrWorkerStopped = errors.New("analysis worker stopped")
)
