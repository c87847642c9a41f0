package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"

	"quizduel-backend/api"
	"quizduel-backend/internal/config"
	apierrs "quizduel-backend/internal/errors"
)

// QuestionSource fetches a batch of normalized questions from an
// external provider.
type QuestionSource interface {
	Fetch(ctx context.Context, limit int, difficulty string) ([]api.Question, error)
}

// Coordinator executes all room lifecycle transitions in response to
// participant events. It owns the registry; no other component keeps
// a Room reference across calls.
//
// Errors returned by its methods are requester-facing and meant to be
// written back on the requester's connection. Events addressed to
// other participants are emitted directly.
type Coordinator struct {
	rooms  *Rooms
	source QuestionSource

	batchSize  int
	difficulty string
}

func NewCoordinator(rooms *Rooms, source QuestionSource, cfg config.TriviaConf) *Coordinator {
	return &Coordinator{
		rooms:      rooms,
		source:     source,
		batchSize:  cfg.BatchSize,
		difficulty: cfg.Difficulty,
	}
}

const createRoomRetries = 50

var errNoRoomKeyAvailable = errors.New("no room key available")

// newRoomKey draws a 5-digit key in [10000, 99999]. The space is
// small, so room creation retries on collision.
func newRoomKey() string {
	return strconv.Itoa(10000 + rand.IntN(90000))
}

// CreateRoom opens a new room hosted by p and reports its key back to
// the creator.
func (c *Coordinator) CreateRoom(ctx context.Context, p *Player) error {
	var room *Room

	retries := createRoomRetries
	for {
		if retries <= 0 {
			return apierrs.InternalServerError(errNoRoomKeyAvailable, api.RequestTypeCreateRoom)
		}
		room = NewRoom(newRoomKey(), p)
		if err := c.rooms.Create(room); err == nil {
			break
		}
		retries--
	}

	slog.InfoContext(ctx, "room created",
		slog.String("room", room.Key()),
		slog.String("host", p.Name()))

	res := api.Response[api.RoomCreatedData]{
		Type: api.ResponseTypeRoomCreated,
		Data: api.RoomCreatedData{
			RoomKey:  room.Key(),
			HostName: p.Name(),
		},
	}
	return p.Send(ctx, res)
}

// JoinRoom admits p as guest of the room addressed by key. The host
// and the joiner each receive a consistent name pair.
func (c *Coordinator) JoinRoom(ctx context.Context, p *Player, key string) error {
	room, ok := c.rooms.Get(key)
	if !ok {
		return apierrs.RoomUnavailableError(api.RequestTypeJoinRoom, key)
	}
	if err := room.AddGuest(p); err != nil {
		return apierrs.RoomUnavailableError(api.RequestTypeJoinRoom, key)
	}

	host := room.Host()

	slog.InfoContext(ctx, "guest joined",
		slog.String("room", key),
		slog.String("guest", p.Name()))

	joined := api.Response[api.JoinedRoomData]{
		Type: api.ResponseTypeJoinedRoom,
		Data: api.JoinedRoomData{
			RoomKey:   key,
			HostName:  host.Name(),
			GuestName: p.Name(),
		},
	}
	if err := p.Send(ctx, joined); err != nil {
		slog.ErrorContext(ctx, "failed to notify guest", slog.Any("error", err))
	}

	update := api.Response[api.PlayerJoinedData]{
		Type: api.ResponseTypePlayerJoined,
		Data: api.PlayerJoinedData{
			HostName:  host.Name(),
			GuestName: p.Name(),
		},
	}
	if err := host.Send(ctx, update); err != nil {
		slog.ErrorContext(ctx, "failed to notify host", slog.Any("error", err))
	}

	return nil
}

// StartGame fetches a question batch and dispatches it to the whole
// room. Requests naming a stale room, issued by a non-host or raced
// against an in-flight fetch are dropped without a user-facing error.
func (c *Coordinator) StartGame(ctx context.Context, p *Player, key string) error {
	room, ok := c.rooms.Get(key)
	if !ok {
		return nil
	}
	if room.Host().ID() != p.ID() {
		return nil
	}
	if !room.BeginStart() {
		return nil
	}

	questions, err := c.source.Fetch(ctx, c.batchSize, c.difficulty)
	if err != nil {
		room.AbortStart()

		slog.ErrorContext(ctx, "failed to fetch questions",
			slog.String("room", key),
			slog.Any("error", err))

		res := apierrs.WebsocketErrorResponse(apierrs.QuestionsUnavailableError(err))
		if err := room.Broadcast(ctx, res); err != nil {
			slog.ErrorContext(ctx, "failed to broadcast fetch error", slog.Any("error", err))
		}
		return nil
	}

	// The host may have disconnected while the fetch was in flight
	// and the key reassigned to a brand new room.
	if current, ok := c.rooms.Get(key); !ok || current != room {
		return nil
	}
	if !room.FinishStart() {
		return nil
	}

	slog.InfoContext(ctx, "game started",
		slog.String("room", key),
		slog.Int("questions", len(questions)))

	res := api.Response[[]api.Question]{
		Type: api.ResponseTypeGameStarted,
		Data: questions,
	}
	if err := room.Broadcast(ctx, res); err != nil {
		slog.ErrorContext(ctx, "failed to broadcast questions", slog.Any("error", err))
	}

	return nil
}

// SubmitScore records p's final score. The second submission resolves
// the room: each side receives a personalized result and the room is
// removed. Submissions naming an unknown key are stale and dropped.
func (c *Coordinator) SubmitScore(ctx context.Context, p *Player, key string, score int) error {
	room, ok := c.rooms.Get(key)
	if !ok {
		return nil
	}

	result, done := room.RecordScore(p, score)
	if !done {
		return nil
	}

	c.rooms.Delete(key)

	slog.InfoContext(ctx, "room resolved",
		slog.String("room", key),
		slog.Int("host_score", result.HostScore),
		slog.Int("guest_score", result.GuestScore))

	hostMsg, guestMsg := resultMessages(result)

	hostRes := api.Response[api.GameResultData]{
		Type: api.ResponseTypeGameResult,
		Data: api.GameResultData{Message: hostMsg},
	}
	if err := result.Host.Send(ctx, hostRes); err != nil {
		slog.ErrorContext(ctx, "failed to send host result", slog.Any("error", err))
	}

	guestRes := api.Response[api.GameResultData]{
		Type: api.ResponseTypeGameResult,
		Data: api.GameResultData{Message: guestMsg},
	}
	if err := result.Guest.Send(ctx, guestRes); err != nil {
		slog.ErrorContext(ctx, "failed to send guest result", slog.Any("error", err))
	}

	return nil
}

// resultMessages renders each side's outcome line. Comparison is a
// strict greater-than on integers; equal scores tie for both sides.
func resultMessages(res Result) (host, guest string) {
	hostName, guestName := res.Host.Name(), res.Guest.Name()

	switch {
	case res.HostScore > res.GuestScore:
		host = fmt.Sprintf("You won! (%d vs %d for %s)", res.HostScore, res.GuestScore, guestName)
		guest = fmt.Sprintf("You lost! (%d vs %d for %s)", res.GuestScore, res.HostScore, hostName)
	case res.GuestScore > res.HostScore:
		host = fmt.Sprintf("You lost! (%d vs %d for %s)", res.HostScore, res.GuestScore, guestName)
		guest = fmt.Sprintf("You won! (%d vs %d for %s)", res.GuestScore, res.HostScore, hostName)
	default:
		host = fmt.Sprintf("It's a tie! (%d vs %d)", res.HostScore, res.GuestScore)
		guest = host
	}

	return host, guest
}

// Disconnect removes p from any room it participates in. A departing
// host tears the room down at any state; a departing guest rewinds
// the room to waiting for a new guest. Connections that belonged to
// no room are a no-op.
func (c *Coordinator) Disconnect(ctx context.Context, p *Player) {
	room, ok := c.rooms.FindByPlayer(p.ID())
	if !ok {
		return
	}

	if room.Host().ID() == p.ID() {
		c.rooms.Delete(room.Key())

		slog.InfoContext(ctx, "host disconnected, room closed",
			slog.String("room", room.Key()),
			slog.String("host", p.Name()))

		res := apierrs.WebsocketErrorResponse(apierrs.HostDisconnectedError())
		if err := room.Broadcast(ctx, res); err != nil {
			// The host's own write fails on its dead connection.
			slog.DebugContext(ctx, "failed to broadcast room closure", slog.Any("error", err))
		}
		return
	}

	slog.InfoContext(ctx, "guest disconnected",
		slog.String("room", room.Key()),
		slog.String("guest", p.Name()))

	room.RemoveGuest()

	res := apierrs.WebsocketErrorResponse(apierrs.GuestDisconnectedError())
	if err := room.Host().Send(ctx, res); err != nil {
		slog.ErrorContext(ctx, "failed to notify host", slog.Any("error", err))
	}
}
