package game

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

type RoomState int

const (
	RoomStateOpen RoomState = iota
	RoomStateReady
	RoomStateInProgress
	RoomStateResolved
)

var roomStateToString = map[RoomState]string{
	RoomStateOpen:       "open",
	RoomStateReady:      "ready",
	RoomStateInProgress: "inProgress",
	RoomStateResolved:   "resolved",
}

func (rs RoomState) String() string {
	if s, ok := roomStateToString[rs]; ok {
		return s
	}
	return "unknown"
}

var ErrRoomUnavailable = errors.New("room is full or does not exist")

// Room pairs a host with at most one guest for a single duel.
//
// Multiple goroutines may invoke methods on a Room simultaneously.
type Room struct {
	key  string
	host *Player

	guest *Player

	// scores is keyed by player ID, never by display name, so two
	// players drawing the same generated name cannot collide.
	scores map[string]int

	state    RoomState
	starting bool
	mu       sync.Mutex
}

func NewRoom(key string, host *Player) *Room {
	return &Room{
		key:    key,
		host:   host,
		scores: map[string]int{},
		state:  RoomStateOpen,
	}
}

// Key returns the room's external address, also used as its
// broadcast-group identifier.
func (r *Room) Key() string {
	return r.key
}

// Host returns the creating participant. The host is immutable until
// room teardown.
func (r *Room) Host() *Player {
	return r.host
}

// Guest returns the second participant or nil while the room is open.
func (r *Room) Guest() *Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.guest
}

// State returns the current room state.
func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// PlayerNames returns the display names currently bound to the room,
// host first.
func (r *Room) PlayerNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := []string{r.host.Name()}
	if r.guest != nil {
		names = append(names, r.guest.Name())
	}
	return names
}

// HasPlayer reports whether id is the room's host or guest.
func (r *Room) HasPlayer(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.host.ID() == id {
		return true
	}
	return r.guest != nil && r.guest.ID() == id
}

// AddGuest admits p as the room's second participant. It fails if a
// guest is already seated.
func (r *Room) AddGuest(p *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RoomStateOpen || r.guest != nil {
		return ErrRoomUnavailable
	}

	r.guest = p
	r.state = RoomStateReady

	return nil
}

// RemoveGuest drops the guest and rewinds the room to waiting for a
// new one. Scores and any in-flight start are discarded.
func (r *Room) RemoveGuest() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.guest = nil
	r.scores = map[string]int{}
	r.starting = false
	r.state = RoomStateOpen
}

// BeginStart reserves the room's single question fetch slot. It
// reports false unless both players are seated and no fetch is
// already in flight.
func (r *Room) BeginStart() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RoomStateReady || r.starting {
		return false
	}
	r.starting = true

	return true
}

// AbortStart releases the fetch slot after a failed fetch. The room
// stays joinable and a later start may retry.
func (r *Room) AbortStart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starting = false
}

// FinishStart transitions the room to an in-progress game. It reports
// false if the reservation was invalidated while the fetch was in
// flight, e.g. the guest left and the room was rewound.
func (r *Room) FinishStart() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.starting || r.state != RoomStateReady {
		return false
	}
	r.starting = false
	r.state = RoomStateInProgress

	return true
}

// Result holds both reconciled scores once a room resolves.
type Result struct {
	Host       *Player
	Guest      *Player
	HostScore  int
	GuestScore int
}

// RecordScore stores p's final score, overwriting any previous
// submission by the same player. The second submission from a
// distinct player resolves the room and returns the reconciled
// result. Submissions outside an in-progress game or from a
// non-participant are dropped.
func (r *Room) RecordScore(p *Player, score int) (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != RoomStateInProgress {
		return Result{}, false
	}
	if !r.isParticipant(p.ID()) {
		return Result{}, false
	}

	r.scores[p.ID()] = score

	if len(r.scores) < 2 {
		return Result{}, false
	}

	r.state = RoomStateResolved

	return Result{
		Host:       r.host,
		Guest:      r.guest,
		HostScore:  r.scores[r.host.ID()],
		GuestScore: r.scores[r.guest.ID()],
	}, true
}

func (r *Room) isParticipant(id string) bool {
	if r.host.ID() == id {
		return true
	}
	return r.guest != nil && r.guest.ID() == id
}

// Broadcast sends v to every participant in the room.
func (r *Room) Broadcast(ctx context.Context, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	errs := errgroup.Group{}
	for _, p := range []*Player{r.host, r.guest} {
		if p == nil {
			continue
		}
		errs.Go(func() error {
			return p.Send(ctx, v)
		})
	}
	return errs.Wait()
}
