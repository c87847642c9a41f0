// Package websocket wraps coder/websocket to serialize concurrent
// JSON writes on a single connection.
package websocket

import (
	"context"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Conn is a websocket connection safe for multiple concurrent
// writers. Reads stay on the underlying connection, which supports a
// single reader.
type Conn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func NewConn(conn *websocket.Conn) *Conn {
	return &Conn{c: conn}
}

func (c *Conn) WriteJSON(ctx context.Context, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return wsjson.Write(ctx, c.c, v)
}
