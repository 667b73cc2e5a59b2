package domain

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("rate limited")
	ErrContextDone = errors.New("context cancelled")
	ErrNoVenues    = errors.New("no venue produced data")
)
