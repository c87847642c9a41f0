package game

import (
	"errors"
	"sync"
)

var ErrDuplicateKey = errors.New("room key already in use")

// Rooms is an in-memory registry of active rooms and the single owner
// of Room instances. Every event handler looks its room up by key and
// drops the reference when handling completes.
//
// Multiple goroutines may invoke methods on Rooms simultaneously.
type Rooms struct {
	rooms map[string]*Room
	mu    sync.RWMutex
}

func NewRooms() *Rooms {
	return &Rooms{
		rooms: map[string]*Room{},
	}
}

// Create registers room under its key. Keys are drawn from a bounded
// space, so callers must regenerate and retry on ErrDuplicateKey.
func (rs *Rooms) Create(room *Room) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.rooms == nil {
		rs.rooms = map[string]*Room{}
	}

	if _, exists := rs.rooms[room.Key()]; exists {
		return ErrDuplicateKey
	}
	rs.rooms[room.Key()] = room

	return nil
}

// Get retrieves a room by key.
func (rs *Rooms) Get(key string) (*Room, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	room, ok := rs.rooms[key]
	return room, ok
}

// Delete removes a room from the registry. Deleting an absent key is
// a no-op.
func (rs *Rooms) Delete(key string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	delete(rs.rooms, key)
}

// FindByPlayer returns the room the given player participates in, if
// any. A player is host or guest of at most one room.
func (rs *Rooms) FindByPlayer(id string) (*Room, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	for _, room := range rs.rooms {
		if room.HasPlayer(id) {
			return room, true
		}
	}
	return nil, false
}

// Len returns the number of active rooms.
func (rs *Rooms) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.rooms)
}
