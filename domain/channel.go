package domain

import "fmt"

// Channel tells which subscription a payload arrived on.
type Channel int

const (
	ChannelPublic Channel = iota
	ChannelPrivate
)

func (c Channel) String() string {
	if c == ChannelPrivate {
		return "PRIVATE"
	}
	return "PUBLIC"
}

// PublicDestination is the shared broadcast address.
const PublicDestination = "/chatroom/public"

// PrivateDestination is the per-identity delivery address.
func PrivateDestination(id Identity) string {
	return fmt.Sprintf("/user/%s/private", id)
}

// Payload is a raw broker body tagged with its channel. Its content is not interpreted.
type Payload struct {
	Channel Channel
	Body    []byte
}
