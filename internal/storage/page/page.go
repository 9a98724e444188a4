package page

import (
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

/**
* Page is one buffer pool frame: a page-sized byte buffer plus the metadata
* the pool tracks per frame. The buffer content is only meaningful while the
* frame holds a valid page id; ResetMemory is mandatory before reuse.
**/
type Page struct {
	id       util.PageID
	pinCount int32
	dirty    bool
	data     [util.PageSize]byte
}

func (p *Page) ID() util.PageID {
	return p.id
}

func (p *Page) SetID(id util.PageID) {
	p.id = id
}

func (p *Page) PinCount() int32 {
	return p.pinCount
}

func (p *Page) SetPinCount(count int32) {
	p.pinCount = count
}

func (p *Page) IsDirty() bool {
	return p.dirty
}

func (p *Page) SetDirty(dirty bool) {
	p.dirty = dirty
}

// Data exposes the frame's buffer for disk I/O and callers.
func (p *Page) Data() []byte {
	return p.data[:]
}

// ResetMemory zeroes the buffer. Metadata is reset by the pool.
func (p *Page) ResetMemory() {
	clear(p.data[:])
}
