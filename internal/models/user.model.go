package models

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleHousekeeper Role = "housekeeper"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleHousekeeper
}

// StoredUser is a roster entry of the local login roster. Passwords are kept
// and compared in plaintext; the roster is an offline fallback, not a credential store.
type StoredUser struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	Role            Role   `json:"role"`
	HousekeeperName string `json:"housekeeperName,omitempty"`
}

// DisplayName is the housekeeper alias when one is set, otherwise the login name.
func (u StoredUser) DisplayName() string {
	if u.HousekeeperName != "" {
		return u.HousekeeperName
	}
	return u.Username
}

func (u StoredUser) ToProfile() UserProfile {
	return UserProfile{
		Username:        u.Username,
		Role:            u.Role,
		HousekeeperName: u.HousekeeperName,
		DisplayName:     u.DisplayName(),
	}
}

// UserProfile is the roster entry without its password.
type UserProfile struct {
	Username        string `json:"username"`
	Role            Role   `json:"role"`
	HousekeeperName string `json:"housekeeperName,omitempty"`
	DisplayName     string `json:"displayName"`
}

// Session is the single logged-in session. ID is fresh on every login and is
// carried as the token id, so renames keep the token valid and a new login
// revokes older tokens.
type Session struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Role        Role      `json:"role"`
	LoggedInAt  time.Time `json:"loggedInAt"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Username        *string `json:"username,omitempty"`
	Password        *string `json:"password,omitempty"`
	Role            *Role   `json:"role,omitempty"`
	HousekeeperName *string `json:"housekeeperName,omitempty"`
}
