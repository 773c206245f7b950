package usecase

import "errors"

// Business failures as sentinel values. Handlers map them to status codes;
// messages are safe to return to clients. Causes of internal failures are
// logged where they happen and never attached to these values.
var (
	ErrMissingFields       = errors.New("all fields are required")
	ErrFileRequired        = errors.New("file is required")
	ErrUserExists          = errors.New("user with this username or email already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrChannelNotFound     = errors.New("channel does not exist")
	ErrVideoNotFound       = errors.New("video not found")
	ErrInvalidCredentials  = errors.New("invalid user credentials")
	ErrInvalidRefreshToken = errors.New("refresh token is invalid, expired or already used")
	ErrInvalidPassword     = errors.New("current password is incorrect")
	ErrTokenGeneration     = errors.New("something went wrong while generating tokens")
	ErrUploadFailed        = errors.New("file upload failed")
	ErrInternal            = errors.New("something went wrong")
)
