// Package history provides the capped, ordered log of previously entered lines.
//
// Only non-empty lines are recorded. When the log grows past its capacity the
// oldest entries are evicted first, so the store always holds the most recent
// lines in the order they were entered.
//
// Example Usage:
//
//	store := history.New(2)
//	store.Add("a")
//	store.Add("b")
//	store.Add("c")
//	line, ok := store.Get(0) // "b", true
package history
