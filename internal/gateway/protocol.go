package gateway

import "github.com/eleven-am/voicenotes/internal/dto"

// ClientMessageType enumerates the JSON control frames a mobile client sends.
// Audio travels as binary frames and never appears here.
type ClientMessageType string

const (
	ClientStart        ClientMessageType = "start"
	ClientStop         ClientMessageType = "stop"
	ClientRouteChange  ClientMessageType = "route_change"
	ClientInterruption ClientMessageType = "interruption"
	ClientNetwork      ClientMessageType = "network"
)

type ClientMessage struct {
	Type ClientMessageType `json:"type"`

	// start
	ConversationID string `json:"conversation_id,omitempty"`

	// route_change
	Reason     string `json:"reason,omitempty"`
	InputName  string `json:"input_name,omitempty"`
	OutputName string `json:"output_name,omitempty"`

	// interruption
	Phase            string `json:"phase,omitempty"`
	InterruptionType string `json:"interruption_type,omitempty"`
	Hint             string `json:"hint,omitempty"`

	// network
	Available *bool `json:"available,omitempty"`
}

type ServerMessageType string

const (
	ServerSessionStarted ServerMessageType = "session_started"
	ServerPartial        ServerMessageType = "partial"
	ServerRecord         ServerMessageType = "record"
	ServerQueueStatus    ServerMessageType = "queue_status"
	ServerSessionEnded   ServerMessageType = "session_ended"
	ServerError          ServerMessageType = "error"
)

type ServerMessage struct {
	Type           ServerMessageType    `json:"type"`
	SessionID      string               `json:"session_id,omitempty"`
	ConversationID string               `json:"conversation_id,omitempty"`
	Text           string               `json:"text,omitempty"`
	Record         *dto.MessageResponse `json:"record,omitempty"`
	Status         string               `json:"status,omitempty"`
	Count          int                  `json:"count,omitempty"`
	Code           string               `json:"code,omitempty"`
	Message        string               `json:"message,omitempty"`
}

// Frame is one inbound websocket frame: either a parsed control message or a
// chunk of audio.
type Frame struct {
	Control *ClientMessage
	Audio   []byte
}
