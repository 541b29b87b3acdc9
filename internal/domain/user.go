package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultAvatarURL is stored for users registered without an avatar.
const DefaultAvatarURL = "https://cdn-icons-png.flaticon.com/512/149/149071.png"

type User struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
	CreatedAt time.Time
}

// NewUser trims and validates registration input. Both name and email are
// required; email uniqueness is left to the store.
func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidUser)
	}
	return &User{Name: name, Email: email, AvatarURL: DefaultAvatarURL}, nil
}

// DisplayName returns the user's name, or the ID when the name is missing.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}
