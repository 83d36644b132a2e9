package domain

import "errors"

// Sentinel errors for collection and session operations
var (
	// ErrInvalidVideo indicates a video reference without a video ID
	ErrInvalidVideo = errors.New("video reference has no video id")

	// ErrInvalidChannel indicates a channel reference without a channel ID
	ErrInvalidChannel = errors.New("channel reference has no channel id")
)
