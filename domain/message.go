// Package domain contains core concepts of the chat client.
// This file defines ChatMessage values and how they are decoded from the wire.
// Messages are immutable once received.
package domain

import (
	"chatroom/errors"
	"encoding/json"
	"fmt"
)

// Status is the closed set of message kinds known to the client.
// Anything else on the wire decodes to StatusUnknown.
type Status int

const (
	StatusUnknown Status = iota
	StatusJoin
	StatusMessage
)

func (s Status) String() string {
	switch s {
	case StatusJoin:
		return "JOIN"
	case StatusMessage:
		return "MESSAGE"
	default:
		return "UNKNOWN"
	}
}

func ParseStatus(raw string) Status {
	switch raw {
	case "JOIN":
		return StatusJoin
	case "MESSAGE":
		return StatusMessage
	default:
		return StatusUnknown
	}
}

// ChatMessage represents an immutable chat entry.
type ChatMessage struct {
	SenderName Identity
	Message    string
	Status     Status
}

type wireMessage struct {
	SenderName string `json:"senderName" validate:"required"`
	Message    string `json:"message"`
	Status     string `json:"status" validate:"required"`
}

// DecodeChatMessage parses a broker body into a ChatMessage.
// An empty body is kept as is. Unknown status values are not an error here,
// the caller decides what to do with them.
func DecodeChatMessage(body []byte) (ChatMessage, error) {
	var wire wireMessage
	if err := json.Unmarshal(body, &wire); err != nil {
		return ChatMessage{}, fmt.Errorf("%w: %w", errors.ErrMalformedPayload, err)
	}
	if err := validate.Struct(wire); err != nil {
		return ChatMessage{}, fmt.Errorf("%w: %w", errors.ErrMalformedPayload, err)
	}
	return ChatMessage{
		SenderName: Identity(wire.SenderName),
		Message:    wire.Message,
		Status:     ParseStatus(wire.Status),
	}, nil
}
