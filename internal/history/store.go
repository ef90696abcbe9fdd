package history

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 1000

// Store is a capacity-bounded history log. It is not safe for concurrent use;
// the owning session serializes access.
type Store struct {
	entries  []string
	capacity int
}

// New creates an empty store with the given capacity
func New(capacity int) *Store {
	s := &Store{}
	s.SetCapacity(capacity)
	return s
}

// Add appends a line, evicting the oldest entry when over capacity.
// Empty lines are ignored.
func (s *Store) Add(line string) bool {
	if line == "" {
		return false
	}

	s.entries = append(s.entries, line)
	s.stifle()
	return true
}

// Clear removes all entries
func (s *Store) Clear() {
	s.entries = nil
}

// Len returns the number of entries
func (s *Store) Len() int {
	return len(s.entries)
}

// Get returns the entry at zero-based index i
func (s *Store) Get(i int) (string, bool) {
	if i < 0 || i >= len(s.entries) {
		return "", false
	}
	return s.entries[i], true
}

// Capacity returns the maximum number of retained entries
func (s *Store) Capacity() int {
	return s.capacity
}

// SetCapacity changes the capacity. Non-positive values select DefaultCapacity.
// Shrinking discards the oldest entries.
func (s *Store) SetCapacity(n int) {
	if n <= 0 {
		n = DefaultCapacity
	}
	s.capacity = n
	s.stifle()
}

// Entries returns a copy of the log, oldest first
func (s *Store) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) stifle() {
	if over := len(s.entries) - s.capacity; over > 0 {
		// Copy so evicted strings are not pinned by the backing array.
		kept := make([]string, s.capacity)
		copy(kept, s.entries[over:])
		s.entries = kept
	}
}
