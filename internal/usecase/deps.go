package usecase

import "io"

// MediaStorage is the slice of the object-storage client the usecases need.
// Satisfied by *s3.Client.
type MediaStorage interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
	KeyFromURL(rawURL string) string
}

// EventPublisher pushes fire-and-forget account events to the message broker.
// Satisfied by *queue.Client; a nil publisher disables events.
type EventPublisher interface {
	PublishAccountEvent(event map[string]interface{}) error
}

// UploadInput is an uploaded file ready to be stored: the handler picks the
// object key and content type, the usecase decides whether it gets stored.
type UploadInput struct {
	Reader      io.Reader
	Key         string
	ContentType string
}
