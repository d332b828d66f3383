package rollback

import "sync"

// keyedMutex serializes rollback decisions per AI system. Eligibility checks
// are read-then-act, so two concurrent evaluations of the same system could
// both pass the cooldown or daily-cap check without this lock.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (m *keyedMutex) lock(key string) {
	m.mu.Lock()
	entry, ok := m.locks[key]
	if !ok {
		entry = &keyedLock{}
		m.locks[key] = entry
	}
	entry.refs++
	m.mu.Unlock()

	entry.mu.Lock()
}

func (m *keyedMutex) unlock(key string) {
	m.mu.Lock()
	entry := m.locks[key]
	entry.refs--
	if entry.refs == 0 {
		delete(m.locks, key)
	}
	m.mu.Unlock()

	entry.mu.Unlock()
}
