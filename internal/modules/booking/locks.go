package booking

import "sync"

// roomLocks serializes conflict checks per room so two concurrent creates
// for the same room cannot both pass the resolver. Locks are created on
// first use and never discarded; the room population is small.
type roomLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *roomLocks) get(roomID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	return m
}
