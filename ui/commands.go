package ui

import (
	"chatroom/domain"
	"fmt"
	"strings"
)

type CommandKind int

const (
	CommandSelectTab CommandKind = iota
	CommandQuit
)

type Command struct {
	Kind CommandKind
	Tab  domain.Tab
}

// ParseCommand reads one input line: ":public", ":tab <name>" or ":quit".
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}
	switch fields[0] {
	case ":public":
		return Command{Kind: CommandSelectTab, Tab: domain.PublicTab()}, nil
	case ":tab":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: :tab <name>")
		}
		return Command{Kind: CommandSelectTab, Tab: domain.PrivateTab(domain.Identity(fields[1]))}, nil
	case ":quit":
		return Command{Kind: CommandQuit}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
}
