package ui

import (
	"bytes"
	"chatroom/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerminal_Observe_Disconnected(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer

	NewTerminal(&out, false).Observe(domain.View{Version: 1})

	req.Contains(out.String(), "not connected")
}

func TestTerminal_Observe_Connected(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	view := domain.View{
		Version:      3,
		Connected:    true,
		Self:         "alice",
		ActiveTab:    domain.PrivateTab("carol"),
		Participants: []domain.Identity{"bob", "carol"},
		ActiveMessages: []domain.ChatMessage{
			{SenderName: "carol", Message: "hey", Status: domain.StatusMessage},
			{SenderName: "alice", Message: "hello", Status: domain.StatusMessage},
		},
	}

	NewTerminal(&out, false).Observe(view)

	rendered := out.String()
	req.Contains(rendered, "connected as alice")
	req.Contains(rendered, "tab: carol")
	req.Contains(rendered, "(v3)")
	req.Contains(rendered, "carol *")
	req.Contains(rendered, "bob")
	req.Contains(rendered, "<carol>  hey")
	req.Contains(rendered, "hello  <alice>")
}

func TestParseCommand(t *testing.T) {
	req := require.New(t)

	cmd, err := ParseCommand(":public")
	req.NoError(err)
	req.Equal(Command{Kind: CommandSelectTab, Tab: domain.PublicTab()}, cmd)

	cmd, err = ParseCommand("  :tab   carol ")
	req.NoError(err)
	req.Equal(Command{Kind: CommandSelectTab, Tab: domain.PrivateTab("carol")}, cmd)

	cmd, err = ParseCommand(":quit")
	req.NoError(err)
	req.Equal(CommandQuit, cmd.Kind)

	_, err = ParseCommand(":tab")
	req.Error(err)
	_, err = ParseCommand("hello")
	req.Error(err)
	_, err = ParseCommand("")
	req.Error(err)
}
