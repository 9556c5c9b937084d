// Package projection builds the local conversation state from routed messages.
// Handles ordering and lazy creation of private logs.
// Does not decode payloads or interact with UI directly.
package projection

import (
	"chatroom/domain"
	"slices"
)

// Conversations holds the public log and one private log per peer.
// It is not safe for concurrent use, the owner serializes access.
type Conversations struct {
	public       []domain.ChatMessage
	private      map[domain.Identity][]domain.ChatMessage
	participants []domain.Identity // first-appearance order of private keys
}

func NewConversations() *Conversations {
	return &Conversations{
		public:  nil,
		private: make(map[domain.Identity][]domain.ChatMessage),
	}
}

func (c *Conversations) AppendPublic(msg domain.ChatMessage) {
	c.public = append(c.public, msg)
}

// EnsurePrivate creates an empty log for id. It is a no-op when one exists.
func (c *Conversations) EnsurePrivate(id domain.Identity) {
	if _, ok := c.private[id]; ok {
		return
	}
	c.private[id] = nil
	c.participants = append(c.participants, id)
}

// AppendPrivate adds msg to the log of id, creating the log first if needed.
func (c *Conversations) AppendPrivate(id domain.Identity, msg domain.ChatMessage) {
	c.EnsurePrivate(id)
	c.private[id] = append(c.private[id], msg)
}

func (c *Conversations) Participants() []domain.Identity {
	return slices.Clone(c.participants)
}

func (c *Conversations) PublicLog() []domain.ChatMessage {
	return slices.Clone(c.public)
}

// PrivateLog returns a copy of the log for id and whether it exists.
func (c *Conversations) PrivateLog(id domain.Identity) ([]domain.ChatMessage, bool) {
	log, ok := c.private[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(log), true
}

// Log returns the messages shown for tab. Unknown peers yield an empty log.
func (c *Conversations) Log(tab domain.Tab) []domain.ChatMessage {
	if tab.IsPublic() {
		return c.PublicLog()
	}
	log, _ := c.PrivateLog(tab.Peer())
	return log
}
