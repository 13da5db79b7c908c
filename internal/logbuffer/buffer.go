// Package logbuffer provides a bounded in-memory ring of log entries for
// display. Once the capacity is exceeded the oldest entries are evicted.
package logbuffer

import (
	"sync"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/models"
)

// DefaultCapacity is used when no capacity is configured
const DefaultCapacity = 1000

// Buffer is a thread-safe ring buffer for log entries
type Buffer struct {
	mu       sync.RWMutex
	entries  []models.LogEntry
	capacity int
	head     int
	count    int
}

// New creates a log buffer with the specified capacity
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		entries:  make([]models.LogEntry, capacity),
		capacity: capacity,
	}
}

// Add appends a log entry, evicting the oldest entry when full
func (b *Buffer) Add(entry models.LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.head] = entry
	b.head = (b.head + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	}
}

// Entries returns all buffered entries in chronological order
func (b *Buffer) Entries() []models.LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]models.LogEntry, b.count)
	if b.count == 0 {
		return result
	}

	start := 0
	if b.count == b.capacity {
		start = b.head
	}
	for i := 0; i < b.count; i++ {
		result[i] = b.entries[(start+i)%b.capacity]
	}
	return result
}

// Len returns the number of buffered entries
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Capacity returns the configured capacity
func (b *Buffer) Capacity() int {
	return b.capacity
}

// LevelCount returns the number of buffered entries per severity
func (b *Buffer) LevelCount() map[models.Severity]int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	counts := make(map[models.Severity]int)
	for i := 0; i < b.count; i++ {
		idx := i
		if b.count == b.capacity {
			idx = (b.head + i) % b.capacity
		}
		counts[b.entries[idx].Level]++
	}
	return counts
}

// Clear empties the buffer
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.head = 0
	b.count = 0
}
