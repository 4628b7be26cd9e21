package booking

import "sync"

// roomLocks serializes the conflict-check-then-insert sequence per
// room.  The check and the insert are two separate store calls, so
// without serialization two concurrent requests could both pass the
// conflict query and double-book the room.  Locking on the room id
// keeps unrelated rooms fully concurrent.
type roomLocks struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[uint64]*sync.Mutex)}
}

// acquire returns the mutex for the given room id, creating it on
// first use, and locks it.  The caller must call the returned unlock
// function.  Mutexes are never removed; the set of rooms is small and
// stable for the lifetime of the process.
func (l *roomLocks) acquire(roomID uint64) func() {
	l.mu.Lock()
	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}
