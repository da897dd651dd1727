package common

import "time"

const (
	// MaxFormMemory is how much of a multipart form is buffered in memory before spilling to disk.
	MaxFormMemory = 8 << 20
	// RequestTimeout bounds store calls made while serving one request.
	RequestTimeout = 5 * time.Second
	// UploadTimeout bounds a whole submission including both image uploads.
	UploadTimeout = 60 * time.Second
)
