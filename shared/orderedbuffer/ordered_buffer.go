package orderedbuffer

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrClosedBuffer = errors.New("buffer is closed")
	ErrOutOfRange   = errors.New("index out of range")
	ErrDuplicate    = errors.New("index already inserted")
)

// OrderedBuffer releases values in index order 0, 1, …, total−1 no matter
// in which order they are inserted. The source channel has room for every
// value, so Insert never blocks.
type OrderedBuffer[T any] struct {
	mu      sync.Mutex
	pending map[int]T
	seen    map[int]struct{}
	next    int
	total   int
	closed  bool

	sink chan T
	done chan struct{}
}

func NewOrderedBuffer[T any](total int) *OrderedBuffer[T] {
	b := &OrderedBuffer[T]{
		pending: make(map[int]T),
		seen:    make(map[int]struct{}),
		total:   total,
		sink:    make(chan T, max(total, 0)),
		done:    make(chan struct{}),
	}
	if total <= 0 {
		b.closeLocked()
	}
	return b
}

// Insert places val at idx and releases every value that is now contiguous.
// The source is closed once all total values have been released.
func (b *OrderedBuffer[T]) Insert(idx int, val T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosedBuffer
	}
	if idx < 0 || idx >= b.total {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, idx, b.total)
	}
	if _, dup := b.seen[idx]; dup {
		return fmt.Errorf("%w: %d", ErrDuplicate, idx)
	}
	b.seen[idx] = struct{}{}
	b.pending[idx] = val

	for {
		v, ok := b.pending[b.next]
		if !ok {
			break
		}
		delete(b.pending, b.next)
		b.sink <- v
		b.next++
	}
	if b.next == b.total {
		b.closeLocked()
	}
	return nil
}

// Source yields the values in index order.
func (b *OrderedBuffer[T]) Source() <-chan T {
	return b.sink
}

// Done is closed together with the source.
func (b *OrderedBuffer[T]) Done() <-chan struct{} {
	return b.done
}

// Close ends the source early, dropping values still waiting for a gap to fill.
func (b *OrderedBuffer[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closeLocked()
	}
}

func (b *OrderedBuffer[T]) closeLocked() {
	b.closed = true
	b.pending = nil
	close(b.sink)
	close(b.done)
}
