package media

import "image"

// DefaultCacheBudget is the per-source decoded frame memory budget.
const DefaultCacheBudget = 256 << 20 // 256 MB

const (
	minCacheFrames = 8
	maxCacheFrames = 128
)

// FrameCache is an LRU cache of decoded frames keyed by frame index.
// Capacity is derived from a byte budget and the frame dimensions, so a
// 4K source keeps fewer frames than a thumbnail-sized one.
//
// FrameCache is not safe for concurrent use; each source owns one.
type FrameCache struct {
	capacity int
	entries  map[int]*cacheEntry
	head     *cacheEntry // most recently used
	tail     *cacheEntry // least recently used
}

type cacheEntry struct {
	index int
	frame *image.RGBA
	prev  *cacheEntry
	next  *cacheEntry
}

// NewFrameCache sizes a cache for frames of the given dimensions under
// DefaultCacheBudget.
func NewFrameCache(width, height int) *FrameCache {
	return NewFrameCacheBudget(width, height, DefaultCacheBudget)
}

// NewFrameCacheBudget sizes a cache for frames of the given dimensions
// under an explicit byte budget. Capacity is clamped to [8, 128] frames.
func NewFrameCacheBudget(width, height, budget int) *FrameCache {
	frameBytes := width * height * 3
	if frameBytes <= 0 {
		frameBytes = 1
	}
	capacity := budget / frameBytes
	if capacity < minCacheFrames {
		capacity = minCacheFrames
	}
	if capacity > maxCacheFrames {
		capacity = maxCacheFrames
	}
	return &FrameCache{
		capacity: capacity,
		entries:  make(map[int]*cacheEntry, capacity),
	}
}

// Get returns the cached frame for index and marks it most recently
// used.
func (c *FrameCache) Get(index int) (*image.RGBA, bool) {
	e, ok := c.entries[index]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.frame, true
}

// Put stores a frame, evicting from the least recently used end when
// over capacity.
func (c *FrameCache) Put(index int, frame *image.RGBA) {
	if e, ok := c.entries[index]; ok {
		e.frame = frame
		c.moveToFront(e)
		return
	}

	e := &cacheEntry{index: index, frame: frame}
	c.entries[index] = e
	c.addToFront(e)

	for len(c.entries) > c.capacity {
		c.removeTail()
	}
}

// Len returns the number of cached frames.
func (c *FrameCache) Len() int { return len(c.entries) }

// Cap returns the frame capacity.
func (c *FrameCache) Cap() int { return c.capacity }

// Clear drops all cached frames.
func (c *FrameCache) Clear() {
	c.entries = make(map[int]*cacheEntry, c.capacity)
	c.head = nil
	c.tail = nil
}

func (c *FrameCache) addToFront(e *cacheEntry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *FrameCache) moveToFront(e *cacheEntry) {
	if c.head == e {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *FrameCache) remove(e *cacheEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (c *FrameCache) removeTail() {
	e := c.tail
	if e == nil {
		return
	}
	c.remove(e)
	delete(c.entries, e.index)
}
