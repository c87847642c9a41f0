package api

import "encoding/json"

type RequestType string

const (
	RequestTypeUnknown     RequestType = "unknown"
	RequestTypeCreateRoom  RequestType = "createRoom"
	RequestTypeJoinRoom    RequestType = "joinRoom"
	RequestTypeStartGame   RequestType = "startGame"
	RequestTypeSubmitScore RequestType = "submitScore"
)

type Request[T any] struct {
	Type RequestType `json:"type"`
	Data T           `json:"data,omitempty"`
}

type ResponseType string

const (
	ResponseTypeError        ResponseType = "error"
	ResponseTypeRoomCreated  ResponseType = "roomCreated"
	ResponseTypeJoinedRoom   ResponseType = "joinedRoom"
	ResponseTypePlayerJoined ResponseType = "playerJoined"
	ResponseTypeGameStarted  ResponseType = "gameStarted"
	ResponseTypeGameResult   ResponseType = "gameResult"
)

type Response[T any] struct {
	Type    ResponseType `json:"type"`
	Message string       `json:"message,omitempty"`
	Data    T            `json:"data,omitempty"`
}

type JoinRoomRequestData struct {
	RoomKey string `json:"roomKey"`
}

type StartGameRequestData struct {
	RoomKey string `json:"roomKey"`
}

type SubmitScoreRequestData struct {
	RoomKey string `json:"roomKey"`
	Score   int    `json:"score"`
}

type RoomCreatedData struct {
	RoomKey  string `json:"roomKey"`
	HostName string `json:"hostName"`
}

type JoinedRoomData struct {
	RoomKey   string `json:"roomKey"`
	HostName  string `json:"hostName"`
	GuestName string `json:"guestName"`
}

type PlayerJoinedData struct {
	HostName  string `json:"hostName"`
	GuestName string `json:"guestName"`
}

type GameResultData struct {
	Message string `json:"message"`
}

// DecodeJSON round-trips a decoded request payload into a typed
// request data struct.
func DecodeJSON[T any](data any) (res T, err error) {
	b, err := json.Marshal(data)
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(b, &res); err != nil {
		return res, err
	}
	return res, nil
}
