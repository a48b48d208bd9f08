package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxNameLength = 32

var ErrInvalidName = errors.New("display name is empty or too long")

// NewGuest mints a guest identity for a display name. Identities live only
// as long as their token; nothing is stored server-side.
func NewGuest(name string) (Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return Identity{}, ErrInvalidName
	}
	return Identity{ID: uuid.NewString(), Name: name}, nil
}
