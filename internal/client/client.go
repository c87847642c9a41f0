// Package client provides a typed websocket client used by tests to
// drive the duel protocol.
package client

import (
	"context"
	"encoding/json"

	"quizduel-backend/api"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

type Client struct {
	conn *websocket.Conn
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) Close() {
	_ = c.conn.CloseNow()
}

func (c *Client) send(ctx context.Context, req api.Request[any]) error {
	return wsjson.Write(ctx, c.conn, req)
}

func (c *Client) CreateRoom(ctx context.Context) error {
	return c.send(ctx, api.Request[any]{
		Type: api.RequestTypeCreateRoom,
	})
}

func (c *Client) JoinRoom(ctx context.Context, roomKey string) error {
	return c.send(ctx, api.Request[any]{
		Type: api.RequestTypeJoinRoom,
		Data: api.JoinRoomRequestData{RoomKey: roomKey},
	})
}

func (c *Client) StartGame(ctx context.Context, roomKey string) error {
	return c.send(ctx, api.Request[any]{
		Type: api.RequestTypeStartGame,
		Data: api.StartGameRequestData{RoomKey: roomKey},
	})
}

func (c *Client) SubmitScore(ctx context.Context, roomKey string, score int) error {
	return c.send(ctx, api.Request[any]{
		Type: api.RequestTypeSubmitScore,
		Data: api.SubmitScoreRequestData{RoomKey: roomKey, Score: score},
	})
}

// ReadResponse reads the next server event. Data stays raw so callers
// can decode it per response type.
func (c *Client) ReadResponse(ctx context.Context) (api.Response[json.RawMessage], error) {
	res := api.Response[json.RawMessage]{}
	err := wsjson.Read(ctx, c.conn, &res)
	return res, err
}
