package errors

import (
	"context"
	"errors"
	"log/slog"

	"quizduel-backend/api"
)

// JSONWriter is the minimal connection surface needed to answer a
// request with an error event.
type JSONWriter interface {
	WriteJSON(ctx context.Context, v any) error
}

// WebsocketErrorResponse converts err to its wire representation.
// Unrecognized errors are masked as internal server errors.
func WebsocketErrorResponse(err error) api.Response[api.WebsocketErrorData] {
	res := api.Response[api.WebsocketErrorData]{
		Type: api.ResponseTypeError,
	}

	apiErr := api.ErrorData{}
	if errors.As(err, &apiErr) {
		res.Data.Request = apiErr.Request
		res.Data.Code = apiErr.Code
		res.Data.Message = apiErr.Message
		res.Data.Extra = apiErr.Extra
	} else {
		res.Data.Code = api.InternalServerErrorCode
		res.Data.Message = "unexpected error"
	}

	return res
}

// WriteWebsocketError logs err and writes its wire representation on
// conn.
func WriteWebsocketError(ctx context.Context, conn JSONWriter, err error) {
	res := WebsocketErrorResponse(err)

	slog.ErrorContext(ctx, "ws error",
		slog.Any("error", err),
		slog.Any("error_code", res.Data.Code))

	if err := conn.WriteJSON(ctx, res); err != nil {
		slog.ErrorContext(ctx, "ws error: failed to write response", slog.Any("error", err))
	}
}

func InvalidRequestError(err error, req api.RequestType, cause string) api.ErrorData {
	return api.ErrorData{
		Request: req,
		Code:    api.InvalidRequestCode,
		Message: "invalid request",
		Extra: struct {
			Cause string `json:"cause"`
		}{
			Cause: cause,
		},
		Err: err,
	}
}

func RoomUnavailableError(req api.RequestType, roomKey string) api.ErrorData {
	return api.ErrorData{
		Request: req,
		Code:    api.RoomUnavailableCode,
		Message: "room is full or does not exist",
		Extra: struct {
			RoomKey string `json:"roomKey"`
		}{
			RoomKey: roomKey,
		},
	}
}

func QuestionsUnavailableError(err error) api.ErrorData {
	return api.ErrorData{
		Request: api.RequestTypeStartGame,
		Code:    api.QuestionsUnavailableCode,
		Message: "failed to load questions",
		Err:     err,
	}
}

func HostDisconnectedError() api.ErrorData {
	return api.ErrorData{
		Code:    api.HostDisconnectedCode,
		Message: "the host has disconnected, game over",
	}
}

func GuestDisconnectedError() api.ErrorData {
	return api.ErrorData{
		Code:    api.GuestDisconnectedCode,
		Message: "the guest has disconnected",
	}
}

func TooManyRequestsError() api.ErrorData {
	return api.ErrorData{
		Code:    api.TooManyRequestsCode,
		Message: "too many requests",
	}
}

func InternalServerError(err error, req api.RequestType) api.ErrorData {
	return api.ErrorData{
		Request: req,
		Code:    api.InternalServerErrorCode,
		Message: "internal server error",
		Err:     err,
	}
}
