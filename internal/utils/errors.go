package util

import "errors"

var (
	ErrInvalidPageId    = errors.New("invalid page id")
	ErrInvalidPageSize  = errors.New("invalid page size")
	ErrInvalidPoolSize  = errors.New("invalid pool size")
	ErrOutBoundOfFrame  = errors.New("frame idx out of bound")
	ErrPoolExhausted    = errors.New("no free or evictable frames")
	ErrNoVictim         = errors.New("no evictable frames")
	ErrPageNotResident  = errors.New("page is not resident in the pool")
	ErrPageNotPinned    = errors.New("page is not pinned")
	ErrPagePinned       = errors.New("page is pinned")
	ErrLogManagerClosed = errors.New("log manager is closed")
	ErrPageOutOfBounds  = errors.New("page out of bounds")
)
