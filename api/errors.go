package api

type WebsocketErrorCode uint8

const (
	InvalidRequestCode       WebsocketErrorCode = 201
	RoomUnavailableCode      WebsocketErrorCode = 202
	QuestionsUnavailableCode WebsocketErrorCode = 203
	HostDisconnectedCode     WebsocketErrorCode = 204
	GuestDisconnectedCode    WebsocketErrorCode = 205
	TooManyRequestsCode      WebsocketErrorCode = 206
	InternalServerErrorCode  WebsocketErrorCode = 207
)

type WebsocketErrorData struct {
	Request RequestType        `json:"request,omitempty"`
	Code    WebsocketErrorCode `json:"code"`
	Message string             `json:"message,omitempty"`
	Extra   any                `json:"extra,omitempty"`
}

type ErrorData struct { //nolint: errname
	Request RequestType        `json:"request,omitempty"`
	Code    WebsocketErrorCode `json:"code"`
	Message string             `json:"message,omitempty"`
	Extra   any                `json:"extra,omitempty"`
	Err     error              `json:"-"`
}

func (e ErrorData) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}
