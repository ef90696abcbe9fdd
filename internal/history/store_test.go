package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIgnoresEmpty(t *testing.T) {
	s := New(10)

	assert.False(t, s.Add(""))
	assert.Equal(t, 0, s.Len())

	assert.True(t, s.Add("x"))
	assert.Equal(t, 1, s.Len())
}

func TestGet(t *testing.T) {
	s := New(10)
	s.Add("x")

	line, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, "x", line)

	_, ok = s.Get(s.Len())
	assert.False(t, ok)

	_, ok = s.Get(-1)
	assert.False(t, ok)
}

func TestEvictsOldestFirst(t *testing.T) {
	s := New(2)
	s.Add("a")
	s.Add("b")
	s.Add("c")

	assert.Equal(t, []string{"b", "c"}, s.Entries())
}

func TestSetCapacity(t *testing.T) {
	tests := []struct {
		name     string
		initial  []string
		capacity int
		wantCap  int
		want     []string
	}{
		{
			name:     "zero selects default",
			initial:  []string{"a"},
			capacity: 0,
			wantCap:  DefaultCapacity,
			want:     []string{"a"},
		},
		{
			name:     "negative selects default",
			initial:  []string{"a", "b"},
			capacity: -5,
			wantCap:  DefaultCapacity,
			want:     []string{"a", "b"},
		},
		{
			name:     "shrink truncates oldest",
			initial:  []string{"a", "b", "c", "d"},
			capacity: 2,
			wantCap:  2,
			want:     []string{"c", "d"},
		},
		{
			name:     "one keeps newest",
			initial:  []string{"a", "b"},
			capacity: 1,
			wantCap:  1,
			want:     []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(10)
			for _, line := range tt.initial {
				s.Add(line)
			}

			s.SetCapacity(tt.capacity)

			assert.Equal(t, tt.wantCap, s.Capacity())
			assert.Equal(t, tt.want, s.Entries())
		})
	}
}

func TestClear(t *testing.T) {
	s := New(10)
	s.Add("a")
	s.Add("b")

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Entries())
}

func TestEntriesIsCopy(t *testing.T) {
	s := New(10)
	s.Add("a")

	entries := s.Entries()
	entries[0] = "mutated"

	line, _ := s.Get(0)
	assert.Equal(t, "a", line)
}
