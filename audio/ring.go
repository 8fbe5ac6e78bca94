package audio

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrClosed is returned by writes to a closed buffer
var ErrClosed = errors.New("audio: output closed")

// Ring is a bounded frame FIFO between the control loop and the device.
// Write blocks while the ring is full; Read never blocks.
type Ring struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []int16
	head   int // next frame to read
	size   int
	closed bool

	written uint64
	cleared uint64
}

// NewRing creates a ring holding up to capacity frames
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	r := &Ring{buf: make([]int16, capacity)}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Cap returns the ring capacity in frames
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Len returns the number of queued frames
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Write queues every frame, waiting for the reader whenever the ring fills
func (r *Ring) Write(frames []int16) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for len(frames) > 0 {
		for r.size == len(r.buf) && !r.closed {
			r.cond.Wait()
		}
		if r.closed {
			return ErrClosed
		}

		tail := (r.head + r.size) % len(r.buf)
		free := len(r.buf) - r.size
		end := tail + free
		if end > len(r.buf) {
			end = len(r.buf)
		}
		n := copy(r.buf[tail:end], frames)
		r.size += n
		r.written += uint64(n)
		frames = frames[n:]
		r.cond.Broadcast()
	}
	return nil
}

// Read takes up to len(dst) frames and returns how many it got
func (r *Ring) Read(dst []int16) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for n < len(dst) && r.size > 0 {
		end := r.head + r.size
		if end > len(r.buf) {
			end = len(r.buf)
		}
		c := copy(dst[n:], r.buf[r.head:end])
		r.head = (r.head + c) % len(r.buf)
		r.size -= c
		n += c
	}
	if n > 0 {
		r.cond.Broadcast()
	}
	return n
}

// Clear drops every queued frame
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.head = 0
	r.size = 0
	r.cleared++
	r.cond.Broadcast()
}

// Close wakes blocked writers; later writes fail with ErrClosed
func (r *Ring) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.cond.Broadcast()
}

// Stats returns frames written and number of clears
func (r *Ring) Stats() (written, cleared uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written, r.cleared
}
