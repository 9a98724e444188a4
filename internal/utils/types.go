package util

// PageID represents a unique page identifier
type PageID int64

// InvalidPageID marks a frame that currently holds no page
const InvalidPageID PageID = -1

// PageSize represents the standard page size (4KB)
const PageSize = 4096

// Options represents database configuration options
type Options struct {
	Path           string
	WALPath        string
	PageSize       int
	BufferPoolSize int
	SyncWrites     bool
	ReadOnly       bool
}

// DefaultOptions returns default database options
func DefaultOptions() Options {
	return Options{
		PageSize:       PageSize,
		BufferPoolSize: 1000, // 4MB default buffer pool
		SyncWrites:     false,
		ReadOnly:       false,
	}
}
