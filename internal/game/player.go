package game

import (
	"context"

	"github.com/lithammer/shortuuid/v3"
)

// Conn is the outbound side of a participant connection. The
// coordinator emits events through it but never closes it; the
// gateway owns the connection lifecycle.
type Conn interface {
	WriteJSON(ctx context.Context, v any) error
}

// Player binds a live connection to a session identity.
//
// ID is the stable addressing key for the session's duration. Name is
// display-only and carries no uniqueness guarantee, so it is never
// used as a map key or for routing.
type Player struct {
	id   string
	name string
	conn Conn
}

func NewPlayer(name string, conn Conn) *Player {
	return &Player{
		id:   shortuuid.New()[:8],
		name: name,
		conn: conn,
	}
}

func (p *Player) ID() string {
	return p.id
}

func (p *Player) Name() string {
	return p.name
}

// Send writes a single event to the player's connection.
func (p *Player) Send(ctx context.Context, v any) error {
	return p.conn.WriteJSON(ctx, v)
}
