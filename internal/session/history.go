package session

import "go.uber.org/zap"

// AddHistory records a line. Empty lines are ignored.
func (s *Session) AddHistory(line string) {
	s.addHistory(line)
}

// ClearHistory removes every entry
func (s *Session) ClearHistory() {
	s.history.Clear()
	s.syncEngineHistory()
}

// HistoryLength returns the number of entries
func (s *Session) HistoryLength() int {
	return s.history.Len()
}

// History returns the entry at zero-based index i
func (s *Session) History(i int) (string, bool) {
	return s.history.Get(i)
}

// SetHistoryCapacity bounds the history, discarding the oldest entries when
// shrinking. Non-positive values select 1000. Initialize reapplies the
// configured capacity.
func (s *Session) SetHistoryCapacity(n int) {
	s.history.SetCapacity(n)
	s.engine.SetHistoryLimit(s.history.Capacity())
	s.syncEngineHistory()
}

func (s *Session) addHistory(line string) {
	if !s.history.Add(line) {
		return
	}
	if err := s.engine.AddHistory(line); err != nil {
		s.logger.Debug("Engine rejected history entry", zap.Error(err))
	}
	s.metrics.SetHistoryEntries(s.history.Len())
}

func (s *Session) syncEngineHistory() {
	if err := s.engine.ResetHistory(s.history.Entries()); err != nil {
		s.logger.Debug("Engine history reset failed", zap.Error(err))
	}
	s.metrics.SetHistoryEntries(s.history.Len())
}
