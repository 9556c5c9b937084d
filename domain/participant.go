// Package domain contains core concepts of the chat client.
// This file defines participant identities and their invariants.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"chatroom/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Identity is the display name a participant registers with.
// It is case-sensitive and doubles as the private routing key.
type Identity string

// ValidateIdentity rejects names that cannot be used to build a private destination.
func ValidateIdentity(id Identity) error {
	if err := validate.Var(string(id), "required,excludesall=/"); err != nil {
		return fmt.Errorf("%w: %q", errors.ErrInvalidIdentity, id)
	}
	return nil
}
