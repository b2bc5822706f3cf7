package reconcile

// MaxLog is the number of log lines kept on screen.
const MaxLog = 200

// LogBuffer is a bounded, duplicate-free, append-only list of log lines.
// The oldest lines are evicted first once it is over capacity.
type LogBuffer struct {
	capacity int
	lines    []string
	seen     map[string]int // line -> occurrences in lines
}

// NewLogBuffer returns an empty buffer holding up to capacity lines.
func NewLogBuffer(capacity int) *LogBuffer {
	if capacity <= 0 {
		capacity = MaxLog
	}
	return &LogBuffer{
		capacity: capacity,
		seen:     make(map[string]int),
	}
}

// Merge appends every line not already present, then trims from the front.
// It reports whether the buffer changed.
func (b *LogBuffer) Merge(lines []string) bool {
	changed := false
	for _, line := range lines {
		if b.seen[line] > 0 {
			continue
		}
		b.lines = append(b.lines, line)
		b.seen[line]++
		changed = true
	}
	for len(b.lines) > b.capacity {
		evicted := b.lines[0]
		b.lines = b.lines[1:]
		if b.seen[evicted]--; b.seen[evicted] <= 0 {
			delete(b.seen, evicted)
		}
	}
	return changed
}

// Lines returns a copy of the buffered lines, oldest first.
func (b *LogBuffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of buffered lines.
func (b *LogBuffer) Len() int {
	return len(b.lines)
}

// Clone returns an independent copy of the buffer.
func (b *LogBuffer) Clone() *LogBuffer {
	c := NewLogBuffer(b.capacity)
	c.lines = b.Lines()
	for k, v := range b.seen {
		c.seen[k] = v
	}
	return c
}
