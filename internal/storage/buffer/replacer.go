package buffer

// Replacer defines the contract for page replacement policies. All methods
// operate on frame indices in [0, poolSize).
type Replacer interface {
	// Pin marks a frame ineligible for eviction. Idempotent.
	Pin(frameIdx int)
	// Unpin marks a frame eligible for eviction. Called when a page's pin
	// count drops to zero.
	Unpin(frameIdx int)
	// Remove resets a frame's tracking state as though it were newly freed.
	Remove(frameIdx int)
	// Victim selects an eligible frame for reuse and marks it ineligible,
	// or returns an error if none is eligible.
	Victim() (int, error)
	// Size returns the number of eligible frames, not the pool size.
	Size() int
}
