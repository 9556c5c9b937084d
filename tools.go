//go:build tools

// Package chatroom pins the code generators used by go:generate, so that
// mockgen resolves from go.mod on a fresh checkout.
package chatroom

import (
	_ "go.uber.org/mock/mockgen"
)
