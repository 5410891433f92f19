package storage

// MemoryStore is a Provider that never touches disk.
type MemoryStore struct {
	slots map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) (string, bool, error) {
	value, ok := s.slots[key]
	return value, ok, nil
}

func (s *MemoryStore) Put(key, value string) error {
	s.slots[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	delete(s.slots, key)
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return MemoryPath
}
