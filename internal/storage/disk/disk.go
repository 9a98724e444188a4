package disk

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

/**
* This module is the on-disk page store the buffer pool sits on top of.
* Pages live at offset pageID * PageSize in a single data file.
**/
type Manager interface {
	ReadPage(pageID util.PageID, buf []byte) error
	WritePage(pageID util.PageID, buf []byte) error
	AllocatePage() util.PageID
	DeallocatePage(pageID util.PageID)
	Close() error
}

type FileManager struct {
	mu         sync.Mutex
	file       *os.File
	path       string
	syncWrites bool
	nextPageID util.PageID
	reusable   []util.PageID // deallocated ids handed back by AllocatePage
}

func NewFileManager(path string, syncWrites bool) (*FileManager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return &FileManager{
		file:       f,
		path:       path,
		syncWrites: syncWrites,
		nextPageID: util.PageID(info.Size() / util.PageSize),
	}, nil
}

/* READ FILE */
// ReadPage fills buf with the page's bytes. A page that was allocated but
// never written reads back as zeroes.
func (fm *FileManager) ReadPage(pageID util.PageID, buf []byte) error {
	if pageID < 0 {
		return util.ErrInvalidPageId
	}
	if len(buf) != util.PageSize {
		return util.ErrInvalidPageSize
	}

	offset := int64(pageID) * int64(util.PageSize)
	n, err := fm.file.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read page %d: %w", pageID, err)
	}
	if n < util.PageSize {
		clear(buf[n:])
	}

	return nil
}

/* WRITE FILE */
func (fm *FileManager) WritePage(pageID util.PageID, buf []byte) error {
	if pageID < 0 {
		return util.ErrInvalidPageId
	}
	if len(buf) != util.PageSize {
		return util.ErrInvalidPageSize
	}

	offset := int64(pageID) * int64(util.PageSize)
	if _, err := fm.file.WriteAt(buf, offset); err != nil {
		return fmt.Errorf("write page %d: %w", pageID, err)
	}

	if fm.syncWrites {
		if err := fm.file.Sync(); err != nil {
			return fmt.Errorf("sync after write page %d: %w", pageID, err)
		}
	}

	return nil
}

// AllocatePage hands out a deallocated id when one is available, otherwise
// extends the file logically with the next id.
func (fm *FileManager) AllocatePage() util.PageID {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if n := len(fm.reusable); n > 0 {
		pageID := fm.reusable[n-1]
		fm.reusable = fm.reusable[:n-1]
		return pageID
	}

	pageID := fm.nextPageID
	fm.nextPageID++
	return pageID
}

// DeallocatePage records the id for reuse. The on-disk bytes are left in
// place until the id is handed out again.
func (fm *FileManager) DeallocatePage(pageID util.PageID) {
	if pageID < 0 {
		return
	}

	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.reusable = append(fm.reusable, pageID)
}

/**
* CLOSE FUNCTION
**/
func (fm *FileManager) Close() error {
	if fm == nil || fm.file == nil {
		return nil // Idempotent
	}

	var err error
	if e := fm.file.Sync(); e != nil {
		err = errors.Join(err, fmt.Errorf("sync file: %w", e))
	}
	if e := fm.file.Close(); e != nil {
		err = errors.Join(err, fmt.Errorf("close file: %w", e))
	}
	fm.file = nil

	return err
}
