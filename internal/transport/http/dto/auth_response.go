package dto

import (
	"time"

	"github.com/stormiq/signals-api/internal/domain"
)

// ProfileView is the standard user payload for auth responses.
type ProfileView struct {
	ID         int64             `json:"id"`
	Type       string            `json:"type"`
	Attributes ProfileAttributes `json:"attributes"`
}

type ProfileAttributes struct {
	Email     *string `json:"email"`
	CreatedAt string  `json:"created_at"`
}

// SessionMeta carries the session token alongside a profile payload.
type SessionMeta struct {
	AccessToken string `json:"access_token"`
}

// NewProfileView builds a profile payload. The email is only included for
// the account owner's own views.
func NewProfileView(u domain.User, includeEmail bool) ProfileView {
	var email *string
	if includeEmail {
		email = &u.Email
	}
	return ProfileView{
		ID:   u.ID,
		Type: "profile",
		Attributes: ProfileAttributes{
			Email:     email,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		},
	}
}
