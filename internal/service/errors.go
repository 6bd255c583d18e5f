package service

import "errors"

var (
	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmptyBatch is returned when a submission carries no coupon codes
	ErrEmptyBatch = errors.New("empty coupon batch")
)
