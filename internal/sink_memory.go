package internal

import "sync"

// MemorySink keeps encoded artifacts in memory. It backs local mode, where an
// uploaded export is processed without touching disk.
type MemorySink struct {
	mu    sync.RWMutex
	index []byte
	days  map[string][]byte
	order []string
}

// NewMemorySink creates an empty MemorySink
func NewMemorySink() *MemorySink {
	return &MemorySink{days: make(map[string][]byte)}
}

func (s *MemorySink) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = nil
	s.days = make(map[string][]byte)
	s.order = nil
	return nil
}

func (s *MemorySink) WriteDay(day *DayFile) error {
	data, err := EncodeDay(day)
	if err != nil {
		return &ExportError{Format: "json", Path: DayFileName(day.Day), Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.days[day.Day]; !exists {
		s.order = append(s.order, day.Day)
	}
	s.days[day.Day] = data
	return nil
}

func (s *MemorySink) WriteIndex(index *Index) error {
	data, err := EncodeIndex(index)
	if err != nil {
		return &ExportError{Format: "json", Path: IndexFileName, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = data
	return nil
}

// Index returns the encoded index, or ErrNoIndex before one was written.
func (s *MemorySink) Index() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil, ErrNoIndex
	}
	return s.index, nil
}

// Day returns the encoded artifact for one day.
func (s *MemorySink) Day(day string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.days[day]
	if !ok {
		return nil, ErrDayNotFound
	}
	return data, nil
}

// Files returns every artifact keyed by file name, in write order.
func (s *MemorySink) Files() ([]string, map[string][]byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.order)+1)
	files := make(map[string][]byte, len(s.order)+1)
	for _, day := range s.order {
		name := DayFileName(day)
		names = append(names, name)
		files[name] = s.days[day]
	}
	if s.index != nil {
		names = append(names, IndexFileName)
		files[IndexFileName] = s.index
	}
	return names, files
}
