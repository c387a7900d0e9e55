package realtime

import (
	"encoding/json"
	"strings"
	"time"
)

// EventChatMessage is the only event name the hub understands, inbound and outbound.
const EventChatMessage = "chat message"

// TimestampLayout renders hub timestamps as ISO-8601 UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Envelope is the frame layout on the wire: {"event": ..., "data": ...}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type ChatMessage struct {
	User      string `json:"user"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type outbound struct {
	Event string      `json:"event"`
	Data  ChatMessage `json:"data"`
}

func encodeChat(user, text string, at time.Time) ([]byte, error) {
	return json.Marshal(outbound{
		Event: EventChatMessage,
		Data: ChatMessage{
			User:      user,
			Text:      text,
			Timestamp: at.UTC().Format(TimestampLayout),
		},
	})
}

// parseInbound returns the chat text carried by frame. ok is false for
// anything that is not a chat message with non-blank string data.
func parseInbound(frame []byte) (text string, ok bool) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return "", false
	}
	if env.Event != EventChatMessage || len(env.Data) == 0 {
		return "", false
	}
	if err := json.Unmarshal(env.Data, &text); err != nil {
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
