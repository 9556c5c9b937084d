package runtime

import (
	"chatroom/domain"
	"chatroom/errors"
	"chatroom/projection"
	"fmt"
	"log/slog"
)

// Router classifies inbound payloads and applies them to the conversations.
// A payload is decoded and classified fully before any mutation, so a rejected
// payload never leaves the store half updated.
type Router struct {
	log           *slog.Logger
	conversations *projection.Conversations
}

func NewRouter(log *slog.Logger, conversations *projection.Conversations) *Router {
	return &Router{log: log, conversations: conversations}
}

// Handle routes one payload. Rejected payloads are logged and returned as
// ErrMalformedPayload or ErrUnknownStatus; neither stops further routing.
func (r *Router) Handle(payload domain.Payload) error {
	msg, err := domain.DecodeChatMessage(payload.Body)
	if err != nil {
		r.log.Warn("Dropping malformed payload", "channel", payload.Channel, "error", err)
		return err
	}

	switch msg.Status {
	case domain.StatusJoin:
		// JOIN only opens a conversation, it is never displayed
		r.conversations.EnsurePrivate(msg.SenderName)
	case domain.StatusMessage:
		switch payload.Channel {
		case domain.ChannelPublic:
			r.conversations.AppendPublic(msg)
		case domain.ChannelPrivate:
			r.conversations.AppendPrivate(msg.SenderName, msg)
		}
	case domain.StatusUnknown:
		r.log.Debug("Ignoring message with unknown status", "channel", payload.Channel, "sender", msg.SenderName)
		return fmt.Errorf("%w: from %s", errors.ErrUnknownStatus, msg.SenderName)
	}
	return nil
}
