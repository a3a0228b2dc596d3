package domain

import "errors"

var (
	// ErrNotFound indicates that a requested property, query or view was not found.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidInput indicates that the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrInvalidCredentials is returned by the operator login on a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a missing, expired or malformed access token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTooManyImages indicates that a property would exceed the image limit.
	ErrTooManyImages = errors.New("too many images")
	// ErrUnsupportedImage indicates an upload whose content type is not an allowed image type.
	ErrUnsupportedImage = errors.New("unsupported image type")
	// ErrImageTooLarge indicates an upload above the configured size limit.
	ErrImageTooLarge = errors.New("image too large")
	// ErrCacheMiss is returned by PropertyCache when no snapshot is stored.
	ErrCacheMiss = errors.New("cache miss")
)
