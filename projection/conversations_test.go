package projection

import (
	"chatroom/domain"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func message(sender domain.Identity, text string) domain.ChatMessage {
	return domain.ChatMessage{SenderName: sender, Message: text, Status: domain.StatusMessage}
}

func TestConversations_AppendPublic_KeepsArrivalOrder(t *testing.T) {
	req := require.New(t)
	conversations := NewConversations()

	// When ten public messages arrive
	for i := range 10 {
		conversations.AppendPublic(message("bob", fmt.Sprintf("msg %d", i)))
	}

	// Then the log holds all of them in order
	log := conversations.PublicLog()
	req.Len(log, 10)
	for i, msg := range log {
		req.Equal(fmt.Sprintf("msg %d", i), msg.Message)
	}
	req.Empty(conversations.Participants())
}

func TestConversations_AppendPublic_KeepsDuplicates(t *testing.T) {
	req := require.New(t)
	conversations := NewConversations()

	conversations.AppendPublic(message("bob", "hi"))
	conversations.AppendPublic(message("bob", "hi"))

	req.Len(conversations.PublicLog(), 2)
}

func TestConversations_EnsurePrivate_IsIdempotent(t *testing.T) {
	req := require.New(t)
	conversations := NewConversations()

	// Given carol already has a conversation with one message
	conversations.EnsurePrivate("carol")
	conversations.AppendPrivate("carol", message("carol", "hey"))

	// When carol is ensured again
	conversations.EnsurePrivate("carol")

	// Then there is still exactly one log and it is untouched
	req.Equal([]domain.Identity{"carol"}, conversations.Participants())
	log, ok := conversations.PrivateLog("carol")
	req.True(ok)
	req.Len(log, 1)
}

func TestConversations_AppendPrivate_CreatesLogLazily(t *testing.T) {
	req := require.New(t)
	conversations := NewConversations()

	// Given dave never joined
	_, ok := conversations.PrivateLog("dave")
	req.False(ok)

	// When dave sends a private message
	conversations.AppendPrivate("dave", message("dave", "psst"))

	// Then dave has a log holding that message
	log, ok := conversations.PrivateLog("dave")
	req.True(ok)
	req.Equal([]domain.ChatMessage{message("dave", "psst")}, log)
	req.Equal([]domain.Identity{"dave"}, conversations.Participants())
}

func TestConversations_Participants_FirstAppearanceOrder(t *testing.T) {
	req := require.New(t)
	conversations := NewConversations()

	conversations.EnsurePrivate("zoe")
	conversations.AppendPrivate("adam", message("adam", "1"))
	conversations.AppendPrivate("zoe", message("zoe", "2"))
	conversations.EnsurePrivate("Adam")

	req.Equal([]domain.Identity{"zoe", "adam", "Adam"}, conversations.Participants())
}

func TestConversations_ReadsAreCopies(t *testing.T) {
	req := require.New(t)
	conversations := NewConversations()
	conversations.AppendPublic(message("bob", "original"))
	conversations.AppendPrivate("carol", message("carol", "original"))

	// When callers tamper with what they read
	public := conversations.PublicLog()
	public[0].Message = "tampered"
	private, _ := conversations.PrivateLog("carol")
	private[0].Message = "tampered"
	participants := conversations.Participants()
	participants[0] = "mallory"

	// Then the store is unchanged
	req.Equal("original", conversations.PublicLog()[0].Message)
	log, _ := conversations.PrivateLog("carol")
	req.Equal("original", log[0].Message)
	req.Equal([]domain.Identity{"carol"}, conversations.Participants())
}

func TestConversations_Log(t *testing.T) {
	req := require.New(t)
	conversations := NewConversations()
	conversations.AppendPublic(message("bob", "public"))
	conversations.AppendPrivate("carol", message("carol", "private"))

	req.Equal([]domain.ChatMessage{message("bob", "public")}, conversations.Log(domain.PublicTab()))
	req.Equal([]domain.ChatMessage{message("carol", "private")}, conversations.Log(domain.PrivateTab("carol")))
	req.Empty(conversations.Log(domain.PrivateTab("nobody")))
}
