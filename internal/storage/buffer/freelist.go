package buffer

// freeList tracks frames that hold no page, as an intrusive index list.
// Free frames are strictly cheaper than evictions, so the pool always
// consults this list before the replacer.
type freeList struct {
	next  []int
	head  int
	count int
}

func newFreeList(size int) *freeList {
	fl := &freeList{
		next:  make([]int, size),
		head:  0,
		count: size,
	}
	for i := 0; i < size; i++ {
		fl.next[i] = i + 1
	}
	fl.next[size-1] = -1

	return fl
}

// pop removes and returns a free frame index, or false when empty.
func (fl *freeList) pop() (int, bool) {
	if fl.head == -1 {
		return -1, false
	}

	freeIdx := fl.head
	fl.head = fl.next[freeIdx]
	fl.next[freeIdx] = -1
	fl.count--

	return freeIdx, true
}

// push returns a vacated frame to the list.
func (fl *freeList) push(frameIdx int) {
	fl.next[frameIdx] = fl.head
	fl.head = frameIdx
	fl.count++
}

func (fl *freeList) len() int {
	return fl.count
}
