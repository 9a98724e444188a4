package buffer

import (
	"sync"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

/**
* ClockReplacer approximates LRU with a circular sweep over per-frame
* reference bits. Every frame starts ineligible with its reference bit
* cleared: nothing is evictable in an empty pool.
**/
type ClockReplacer struct {
	mu        sync.Mutex
	evictable []bool // pin count reached zero
	refBits   []bool // set on unpin, cleared by a sweep pass
	hand      int
	size      int // running count of evictable frames
}

var _ Replacer = &ClockReplacer{}

func NewClockReplacer(poolSize int) *ClockReplacer {
	if poolSize <= 0 {
		panic(util.ErrInvalidPoolSize)
	}

	return &ClockReplacer{
		evictable: make([]bool, poolSize),
		refBits:   make([]bool, poolSize),
	}
}

// Pin marks the frame ineligible regardless of its prior state.
func (c *ClockReplacer) Pin(frameIdx int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if frameIdx < 0 || frameIdx >= len(c.evictable) {
		return
	}
	if c.evictable[frameIdx] {
		c.evictable[frameIdx] = false
		c.size--
	}
}

// Unpin marks the frame eligible and gives it a second chance by setting
// its reference bit.
func (c *ClockReplacer) Unpin(frameIdx int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if frameIdx < 0 || frameIdx >= len(c.evictable) {
		return
	}
	if !c.evictable[frameIdx] {
		c.evictable[frameIdx] = true
		c.size++
	}
	c.refBits[frameIdx] = true
}

// Remove resets the frame's tracking state as though it were newly freed.
func (c *ClockReplacer) Remove(frameIdx int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if frameIdx < 0 || frameIdx >= len(c.evictable) {
		return
	}
	if c.evictable[frameIdx] {
		c.evictable[frameIdx] = false
		c.size--
	}
	c.refBits[frameIdx] = false
}

// Victim sweeps the hand over the frames: ineligible frames are skipped, an
// eligible frame with its reference bit set loses the bit, and the first
// eligible frame with a clear bit is selected and marked ineligible. The
// evictable count bounds the sweep; the iteration cap is a safety net in
// case that invariant is ever broken elsewhere.
func (c *ClockReplacer) Victim() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.size == 0 {
		return -1, util.ErrNoVictim
	}

	poolSize := len(c.evictable)
	for step := 0; step < 2*poolSize; step++ {
		if c.hand >= poolSize {
			c.hand = 0
		}
		idx := c.hand
		c.hand++

		if !c.evictable[idx] {
			continue
		}
		if c.refBits[idx] {
			c.refBits[idx] = false
			continue
		}

		c.evictable[idx] = false
		c.size--
		return idx, nil
	}

	return -1, util.ErrNoVictim
}

// Size returns the current evictable-frame count.
func (c *ClockReplacer) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}
