package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is the two-state session field on a user account.
// Transitions are validated by the account service; the entity only
// knows the two legal values.
type SessionState string

const (
	// SessionLoggedIn marks an account with an active session.
	SessionLoggedIn SessionState = "logged_in"

	// SessionLoggedOut marks an account without an active session.
	SessionLoggedOut SessionState = "logged_out"
)

// IsValid reports whether the session state is one of the two legal values.
func (s SessionState) IsValid() bool {
	return s == SessionLoggedIn || s == SessionLoggedOut
}

// UserStatus is an auxiliary presence indicator shown to other users.
// It mirrors the session state on transitions but is not authoritative
// for session logic; Session is.
type UserStatus string

const (
	StatusOnline  UserStatus = "online"
	StatusOffline UserStatus = "offline"
)

// User represents one registered account of the application.
type User struct {
	ID             uuid.UUID    `json:"id"`
	Username       string       `json:"username"`
	HashedPassword string       `json:"-"` // Never expose the credential in JSON
	Token          string       `json:"-"` // Session token, only surfaced by the auth endpoints
	Session        SessionState `json:"session"`
	Status         UserStatus   `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	Birthday       *time.Time   `json:"birthday,omitempty"`
}

// NewUser creates a new User with the given username.
// It mints the account ID and the session token, stamps the creation time
// and starts the account logged in: registration implies an active session.
//
// NOTE: the caller is responsible for hashing the password and setting
// HashedPassword before the user is stored.
func NewUser(username string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Token:     uuid.NewString(),
		Session:   SessionLoggedIn,
		Status:    StatusOnline,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.Token == "" {
		return ErrEmptyToken
	}

	if !u.Session.IsValid() {
		return ErrInvalidSessionState
	}

	return nil
}

// LoggedIn reports whether the account currently has an active session.
func (u *User) LoggedIn() bool {
	return u.Session == SessionLoggedIn
}
