package http

import "errors"

var (
	// ErrInvalidJSON means the request body could not be decoded.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrInvalidForm means the multipart upload form could not be parsed.
	ErrInvalidForm = errors.New("invalid multipart form")
)
