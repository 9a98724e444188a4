package wal

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

const defaultBufferSize = 64 * 1024

// LogManager is an append-only record log. The buffer pool holds one as the
// hook for flush-before-evict ordering; the caching logic itself never
// writes to it yet.
type LogManager struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	path string
}

// Open opens an existing log file or creates a new one.
func Open(path string) (*LogManager, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	return &LogManager{
		file: file,
		buf:  bufio.NewWriterSize(file, defaultBufferSize),
		path: path,
	}, nil
}

// Append writes one length-prefixed record into the log buffer.
func (lm *LogManager) Append(record []byte) error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lm.file == nil {
		return util.ErrLogManagerClosed
	}

	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(record)))
	if _, err := lm.buf.Write(prefix[:]); err != nil {
		return fmt.Errorf("append record prefix: %w", err)
	}
	if _, err := lm.buf.Write(record); err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	return nil
}

// Flush drains the buffer and syncs the file.
func (lm *LogManager) Flush() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lm.file == nil {
		return util.ErrLogManagerClosed
	}

	if err := lm.buf.Flush(); err != nil {
		return fmt.Errorf("flush log buffer: %w", err)
	}
	if err := lm.file.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}

	return nil
}

func (lm *LogManager) Close() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if lm.file == nil {
		return nil // Idempotent
	}

	var err error
	if e := lm.buf.Flush(); e != nil {
		err = errors.Join(err, fmt.Errorf("flush log buffer: %w", e))
	}
	if e := lm.file.Sync(); e != nil {
		err = errors.Join(err, fmt.Errorf("sync log: %w", e))
	}
	if e := lm.file.Close(); e != nil {
		err = errors.Join(err, fmt.Errorf("close log: %w", e))
	}
	lm.file = nil

	return err
}
