// Package domain contains core concepts of the chat client.
// This file defines the session, tab selection and the observable view.
package domain

import (
	"slices"

	"github.com/google/uuid"
)

type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connecting
	Connected
	Closed
)

func (s ConnectionState) String() string {
	switch s {
	case Connecting:
		return "CONNECTING"
	case Connected:
		return "CONNECTED"
	case Closed:
		return "CLOSED"
	default:
		return "DISCONNECTED"
	}
}

// Tab selects which log is displayed: the public stream or one peer.
type Tab struct {
	peer    Identity
	private bool
}

func PublicTab() Tab {
	return Tab{}
}

func PrivateTab(peer Identity) Tab {
	return Tab{peer: peer, private: true}
}

func (t Tab) IsPublic() bool {
	return !t.private
}

// Peer returns the selected identity, empty for the public tab.
func (t Tab) Peer() Identity {
	return t.peer
}

func (t Tab) String() string {
	if t.private {
		return string(t.peer)
	}
	return "PUBLIC"
}

// Session is created on each registration attempt and lives until the client stops.
type Session struct {
	ID        uuid.UUID
	Self      Identity
	State     ConnectionState
	ActiveTab Tab
}

// View is the snapshot a presentation layer observes.
// A new Version is produced on every mutation; slices are never shared with the store.
type View struct {
	Version        uint64
	Connected      bool
	Self           Identity
	ActiveTab      Tab
	Participants   []Identity
	ActiveMessages []ChatMessage
}

// Clone returns a view whose slices can be modified without affecting v.
func (v View) Clone() View {
	v.Participants = slices.Clone(v.Participants)
	v.ActiveMessages = slices.Clone(v.ActiveMessages)
	return v
}
