package buffer

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/bietkhonhungvandi212/clock-db/internal/storage/disk"
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/page"
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/wal"
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

/**
* BufferPool caches disk pages in a fixed arena of frames so that callers
* never take a disk access per logical read/write. It owns the page table,
* the free list and the replacer; one pool-wide mutex serializes every
* public operation, disk calls included. Internal helpers expect the lock
* to be held already.
**/
type BufferPool struct {
	mu        sync.Mutex
	frames    []page.Page // Frame arena, addressed by index
	pageTable *xsync.MapOf[util.PageID, int]
	free      *freeList
	replacer  Replacer
	dm        disk.Manager
	lm        *wal.LogManager // Held for flush-before-evict ordering, not exercised yet
	poolSize  int
}

func NewBufferPool(size int, dm disk.Manager, lm *wal.LogManager) *BufferPool {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}

	bp := &BufferPool{
		frames:    make([]page.Page, size),
		pageTable: xsync.NewMapOf[util.PageID, int](),
		free:      newFreeList(size),
		replacer:  NewClockReplacer(size),
		dm:        dm,
		lm:        lm,
		poolSize:  size,
	}

	for i := range bp.frames {
		bp.frames[i].SetID(util.InvalidPageID)
	}

	return bp
}

// FetchPage returns a pinned handle to the page, reading it from disk when
// it is not resident. The caller must UnpinPage exactly once when done.
func (bp *BufferPool) FetchPage(pageID util.PageID) (*page.Page, error) {
	if pageID < 0 {
		return nil, util.ErrInvalidPageId
	}

	bp.mu.Lock()
	defer bp.mu.Unlock()

	if frameIdx, ok := bp.pageTable.Load(pageID); ok {
		frame := &bp.frames[frameIdx]
		frame.SetPinCount(frame.PinCount() + 1)
		bp.replacer.Pin(frameIdx)
		return frame, nil
	}

	frameIdx, err := bp.spareFrame()
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", pageID, err)
	}

	frame := &bp.frames[frameIdx]
	frame.ResetMemory()
	frame.SetID(pageID)
	frame.SetPinCount(1)
	frame.SetDirty(false)

	if err := bp.dm.ReadPage(pageID, frame.Data()); err != nil {
		frame.SetID(util.InvalidPageID)
		frame.SetPinCount(0)
		bp.free.push(frameIdx)
		return nil, fmt.Errorf("fetch page %d: %w", pageID, err)
	}

	bp.pageTable.Store(pageID, frameIdx)
	bp.replacer.Pin(frameIdx)

	return frame, nil
}

// UnpinPage drops one pin on the page. isDirty ORs into the sticky dirty
// flag. Unpinning a page that is not resident, or whose pin count is
// already zero, is a caller error.
func (bp *BufferPool) UnpinPage(pageID util.PageID, isDirty bool) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	frameIdx, ok := bp.pageTable.Load(pageID)
	if !ok {
		return util.ErrPageNotResident
	}

	frame := &bp.frames[frameIdx]
	if frame.PinCount() <= 0 {
		return fmt.Errorf("unpin page %d: %w", pageID, util.ErrPageNotPinned)
	}

	frame.SetPinCount(frame.PinCount() - 1)
	if isDirty {
		frame.SetDirty(true)
	}
	if frame.PinCount() == 0 {
		bp.replacer.Unpin(frameIdx)
	}

	return nil
}

// FlushPage writes a resident page back to disk. Flushing a clean page is
// still a success; only a non-resident page is an error.
func (bp *BufferPool) FlushPage(pageID util.PageID) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	return bp.flushFrame(pageID)
}

// NewPage allocates a fresh page id on disk and returns a pinned handle to
// its zeroed frame. The new id is carried on the handle.
func (bp *BufferPool) NewPage() (*page.Page, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	frameIdx, err := bp.spareFrame()
	if err != nil {
		return nil, fmt.Errorf("new page: %w", err)
	}

	pageID := bp.dm.AllocatePage()

	frame := &bp.frames[frameIdx]
	frame.ResetMemory()
	frame.SetID(pageID)
	frame.SetPinCount(1)
	frame.SetDirty(false)

	bp.pageTable.Store(pageID, frameIdx)
	bp.replacer.Pin(frameIdx)

	return frame, nil
}

// DeletePage drops a page from the pool and deallocates it on disk. A page
// that is not resident is trivially deleted; a pinned page is in use and
// cannot be.
func (bp *BufferPool) DeletePage(pageID util.PageID) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	frameIdx, ok := bp.pageTable.Load(pageID)
	if !ok {
		return nil
	}

	frame := &bp.frames[frameIdx]
	if frame.PinCount() > 0 {
		return fmt.Errorf("delete page %d: %w", pageID, util.ErrPagePinned)
	}

	bp.dm.DeallocatePage(pageID)
	bp.pageTable.Delete(pageID)
	frame.ResetMemory()
	frame.SetID(util.InvalidPageID)
	frame.SetDirty(false)
	bp.replacer.Remove(frameIdx)
	bp.free.push(frameIdx)

	return nil
}

// FlushAllPages flushes every resident page in ascending page-id order.
// Best effort: one page's failure does not stop the sweep.
func (bp *BufferPool) FlushAllPages() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	pageIDs := make([]util.PageID, 0, bp.poolSize)
	bp.pageTable.Range(func(pageID util.PageID, _ int) bool {
		pageIDs = append(pageIDs, pageID)
		return true
	})
	slices.Sort(pageIDs)

	var errs []error
	for _, pageID := range pageIDs {
		if err := bp.flushFrame(pageID); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// PoolSize returns the total number of frames.
func (bp *BufferPool) PoolSize() int {
	return bp.poolSize
}

// ===================== HELPER FUNCTION =====================

// spareFrame hands back a frame index ready for reuse, free list first,
// else by evicting a victim. A dirty victim is written back exactly once
// and its stale page-table entry is removed before the frame is
// repurposed. The caller must hold bp.mu.
func (bp *BufferPool) spareFrame() (int, error) {
	if frameIdx, ok := bp.free.pop(); ok {
		return frameIdx, nil
	}

	frameIdx, err := bp.replacer.Victim()
	if err != nil {
		return -1, util.ErrPoolExhausted
	}

	victim := &bp.frames[frameIdx]
	if victim.IsDirty() {
		if err := bp.dm.WritePage(victim.ID(), victim.Data()); err != nil {
			bp.replacer.Unpin(frameIdx) // leave the frame evictable again
			return -1, fmt.Errorf("write back page %d: %w", victim.ID(), err)
		}
		victim.SetDirty(false)
	}
	bp.pageTable.Delete(victim.ID())

	return frameIdx, nil
}

// flushFrame writes a resident page to disk unconditionally and clears its
// dirty flag. The caller must hold bp.mu.
func (bp *BufferPool) flushFrame(pageID util.PageID) error {
	frameIdx, ok := bp.pageTable.Load(pageID)
	if !ok {
		return fmt.Errorf("flush page %d: %w", pageID, util.ErrPageNotResident)
	}

	frame := &bp.frames[frameIdx]
	if err := bp.dm.WritePage(pageID, frame.Data()); err != nil {
		return fmt.Errorf("flush page %d: %w", pageID, err)
	}
	frame.SetDirty(false)

	return nil
}
