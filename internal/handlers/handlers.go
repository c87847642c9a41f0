package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"quizduel-backend/api"
	"quizduel-backend/internal/config"
	apierrs "quizduel-backend/internal/errors"
	"quizduel-backend/internal/game"
	"quizduel-backend/internal/rate"
	ws "quizduel-backend/internal/websocket"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const requestTimeout = 5 * time.Second

// DuelHandler returns the websocket endpoint binding each connection
// to a generated identity and routing its events to the coordinator.
func DuelHandler(cfg config.Config, coord *game.Coordinator, limiter *rate.Limiter, acceptOpts websocket.AcceptOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if limiter != nil && !limiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		conn, err := websocket.Accept(w, r, &acceptOpts)
		if err != nil {
			// Accept already writes a status code and error message.
			slog.Error("websocket accept failed", slog.Any("error", err))
			return
		}
		conn.SetReadLimit(cfg.Room.WebsocketReadLimit)

		out := ws.NewConn(conn)
		player := game.NewPlayer(game.GenerateName(), out)

		ctx := r.Context()

		slog.InfoContext(ctx, "player connected",
			slog.String("player", player.Name()),
			slog.String("id", player.ID()))

		go ping(ctx, conn, cfg.Room.PingInterval) // Detect timed out connections.

		defer func() {
			conn.CloseNow()

			// The request context may already be gone once the
			// connection drops; disconnect cleanup still has to
			// reach the remaining participant.
			disconnectCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			coord.Disconnect(disconnectCtx, player)

			slog.Info("player disconnected",
				slog.String("player", player.Name()),
				slog.String("id", player.ID()))
		}()

		serve(ctx, coord, player, conn, out)
	}
}

func serve(ctx context.Context, coord *game.Coordinator, player *game.Player, conn *websocket.Conn, out *ws.Conn) {
	for {
		req := api.Request[json.RawMessage]{}
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			if websocket.CloseStatus(err) == -1 { // -1 is an error unrelated to closing.
				timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
				apierrs.WriteWebsocketError(timeoutCtx, out, apierrs.InvalidRequestError(err, api.RequestTypeUnknown, "could not read websocket frame"))
				cancel()
			}
			return
		}

		timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		if err := dispatch(timeoutCtx, coord, player, req); err != nil {
			apierrs.WriteWebsocketError(timeoutCtx, out, err)
		}
		cancel()
	}
}

func dispatch(ctx context.Context, coord *game.Coordinator, player *game.Player, req api.Request[json.RawMessage]) error {
	switch req.Type {
	case api.RequestTypeCreateRoom:
		return coord.CreateRoom(ctx, player)

	case api.RequestTypeJoinRoom:
		data, err := api.DecodeJSON[api.JoinRoomRequestData](req.Data)
		if err != nil {
			return apierrs.InvalidRequestError(err, api.RequestTypeJoinRoom, "invalid join request")
		}
		return coord.JoinRoom(ctx, player, data.RoomKey)

	case api.RequestTypeStartGame:
		data, err := api.DecodeJSON[api.StartGameRequestData](req.Data)
		if err != nil {
			return apierrs.InvalidRequestError(err, api.RequestTypeStartGame, "invalid start request")
		}
		return coord.StartGame(ctx, player, data.RoomKey)

	case api.RequestTypeSubmitScore:
		data, err := api.DecodeJSON[api.SubmitScoreRequestData](req.Data)
		if err != nil {
			return apierrs.InvalidRequestError(err, api.RequestTypeSubmitScore, "invalid score request")
		}
		return coord.SubmitScore(ctx, player, data.RoomKey, data.Score)

	default:
		return apierrs.InvalidRequestError(nil, req.Type, "unknown request type")
	}
}

func ping(ctx context.Context, conn *websocket.Conn, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := conn.Ping(timeoutCtx); err != nil {
				slog.Debug("ping failed, closing conn", slog.Any("error", err))
				conn.CloseNow()
				cancel()
				return
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}
}
