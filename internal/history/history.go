package history

import (
	"sync"

	"voice-assistant/internal/model"
)

// DefaultCapacity is the number of turns kept when none is configured.
const DefaultCapacity = 10

// Buffer is a bounded FIFO of conversation turns. Once full, appending drops the oldest turn.
type Buffer struct {
	mu    sync.Mutex
	turns []model.Turn
	start int
	size  int
}

// New creates a buffer holding at most capacity turns.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{turns: make([]model.Turn, capacity)}
}

// Append adds turns in order, evicting the oldest when full.
func (b *Buffer) Append(turns ...model.Turn) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range turns {
		capacity := len(b.turns)
		if b.size < capacity {
			b.turns[(b.start+b.size)%capacity] = t
			b.size++
			continue
		}
		b.turns[b.start] = t
		b.start = (b.start + 1) % capacity
	}
}

// Recent returns up to n most recent turns, oldest first. n <= 0 returns all.
func (b *Buffer) Recent(n int) []model.Turn {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n <= 0 || n > b.size {
		n = b.size
	}
	out := make([]model.Turn, 0, n)
	capacity := len(b.turns)
	for i := b.size - n; i < b.size; i++ {
		out = append(out, b.turns[(b.start+i)%capacity])
	}
	return out
}

// Len returns the number of stored turns.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return len(b.turns)
}

// Clear drops every turn.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start, b.size = 0, 0
}
