package main

import (
	"encoding/json"
	"errors"
)

func UnmarshalJSON[T any](data []byte) T {
	var parsed T
	json.Unmarshal(data, &parsed)
	return parsed
}

// Inbound frames. Every frame is JSON with a required "type" field; each
// recognized type gets its own schema so a frame missing a required field
// is rejected up front instead of failing on a nested access later.

type HostMessage struct {
	Room struct {
		MovieURL string `json:"movie_url"`
	} `json:"room"`
}

type JoinMessage struct {
	Room struct {
		Name string `json:"name"`
	} `json:"room"`
}

// ControlsMessage keeps the raw frame: the payload is opaque to the
// server and relayed verbatim.
type ControlsMessage struct {
	Raw []byte
}

var ErrUndefinedType = errors.New("incorrect type")

// Returns one of HostMessage, JoinMessage, ControlsMessage
func ParseMessage(frame []byte) (any, error) {
	var discriminant struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(frame, &discriminant); err != nil {
		return nil, err
	}
	switch discriminant.Type {
	case "host":
		parsed := UnmarshalJSON[HostMessage](frame)
		if parsed.Room.MovieURL == "" {
			return nil, errors.New("host message without room.movie_url")
		}
		return parsed, nil
	case "join":
		parsed := UnmarshalJSON[JoinMessage](frame)
		if parsed.Room.Name == "" {
			return nil, errors.New("join message without room.name")
		}
		return parsed, nil
	case "controls":
		return ControlsMessage{Raw: frame}, nil
	default:
		return nil, ErrUndefinedType
	}
}

// Outbound frames.

type URLMessage struct {
	Type string `json:"type"`
	Room struct {
		URL string `json:"url"`
	} `json:"room"`
}

func NewURLMessage(watchURL string) URLMessage {
	m := URLMessage{Type: "url"}
	m.Room.URL = watchURL
	return m
}

type ConnectionMessage struct {
	Type    string `json:"type"`
	Clients struct {
		Length int `json:"length"`
	} `json:"clients"`
}

func NewConnectionMessage(memberCount int) ConnectionMessage {
	m := ConnectionMessage{Type: "connection"}
	m.Clients.Length = memberCount
	return m
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorMessage(message string) ErrorMessage {
	return ErrorMessage{Type: "error", Message: message}
}

type RoomClosedMessage struct {
	Type string `json:"type"`
}

func NewRoomClosedMessage() RoomClosedMessage {
	return RoomClosedMessage{Type: "room_closed"}
}
