package authController

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"roomboard/internal/logger"
	. "roomboard/internal/models"
	"roomboard/internal/repositories"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPersist            = errors.New("user change not persisted")
)

type LoginResult struct {
	Session Session `json:"session"`
	Token   string  `json:"token"`
}

type SessionClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthControllerInterface interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) *Session
	ValidateToken(ctx context.Context, token string) (*Session, error)

	ListUsers(ctx context.Context) []UserProfile
	AddUser(ctx context.Context, user StoredUser) (UserProfile, error)
	DeleteUser(ctx context.Context, username string) error
	UpdateUser(ctx context.Context, username string, request UpdateUserRequest) (UserProfile, error)
	AdminUsernames(ctx context.Context) []string
}

// AuthController holds the login roster and the single process-wide session.
// Roster and session change together under mu.
type AuthController struct {
	repo   repositories.UserRepository
	secret []byte
	now    func() time.Time
	log    logger.Logger

	mu      sync.Mutex
	users   []StoredUser
	session *Session
}

func New(
	ctx context.Context,
	repos repositories.Repository,
	sessionSecret string,
	now func() time.Time,
) *AuthController {
	if now == nil {
		now = time.Now
	}

	return &AuthController{
		repo:    repos.User,
		secret:  []byte(sessionSecret),
		now:     now,
		log:     logger.New("authController"),
		users:   repos.User.LoadRoster(ctx),
		session: repos.User.LoadSession(ctx),
	}
}

// Login checks the credentials against every roster entry so the time taken
// does not depend on which entry matched.
func (c *AuthController) Login(ctx context.Context, username, password string) (LoginResult, error) {
	log := logger.NewWithContext(ctx, "authController").Function("Login")

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, log.ErrorWithType(ErrValidation, "username and password are required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	matched := -1
	for i, user := range c.users {
		nameMatch := strings.EqualFold(user.Username, username)
		passwordMatch := subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) == 1
		if nameMatch && passwordMatch && matched < 0 {
			matched = i
		}
	}

	if matched < 0 {
		log.Warn("Login rejected")
		return LoginResult{}, ErrInvalidCredentials
	}

	user := c.users[matched]
	session := Session{
		ID:          uuid.NewString(),
		Username:    user.Username,
		DisplayName: user.DisplayName(),
		Role:        user.Role,
		LoggedInAt:  c.now(),
	}

	token, err := c.issueToken(session)
	if err != nil {
		return LoginResult{}, log.Err("failed to sign session token", err)
	}

	c.session = &session
	log.Info("User logged in", "username", session.Username, "role", session.Role)

	result := LoginResult{Session: session, Token: token}
	if err := c.repo.SaveSession(ctx, session); err != nil {
		return result, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return result, nil
}

func (c *AuthController) Logout(ctx context.Context) error {
	log := logger.NewWithContext(ctx, "authController").Function("Logout")

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		log.Info("User logged out", "username", c.session.Username)
	}
	c.session = nil

	if err := c.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (c *AuthController) CurrentSession(ctx context.Context) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}
	session := *c.session
	return &session
}

// ValidateToken accepts a token only while its id matches the current session.
// The subject is informational; it goes stale when the user is renamed.
func (c *AuthController) ValidateToken(ctx context.Context, token string) (*Session, error) {
	log := logger.NewWithContext(ctx, "authController").Function("ValidateToken")

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		log.Debug("Rejected session token", "error", err)
		return nil, ErrUnauthorized
	}

	session := c.CurrentSession(ctx)
	if session == nil || session.ID == "" ||
		subtle.ConstantTimeCompare([]byte(session.ID), []byte(claims.ID)) != 1 {
		log.Debug("Token does not belong to the active session", "subject", claims.Subject)
		return nil, ErrUnauthorized
	}

	return session, nil
}

func (c *AuthController) issueToken(session Session) (string, error) {
	claims := SessionClaims{
		Role: session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       session.ID,
			Subject:  session.Username,
			IssuedAt: jwt.NewNumericDate(session.LoggedInAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *AuthController) ListUsers(ctx context.Context) []UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()

	profiles := make([]UserProfile, len(c.users))
	for i, user := range c.users {
		profiles[i] = user.ToProfile()
	}
	return profiles
}

func (c *AuthController) AdminUsernames(ctx context.Context) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var admins []string
	for _, user := range c.users {
		if user.Role == RoleAdmin {
			admins = append(admins, user.Username)
		}
	}
	return admins
}

func (c *AuthController) AddUser(ctx context.Context, user StoredUser) (UserProfile, error) {
	log := logger.NewWithContext(ctx, "authController").Function("AddUser")

	user.Username = strings.TrimSpace(user.Username)
	user.HousekeeperName = strings.TrimSpace(user.HousekeeperName)
	if user.Role == "" {
		user.Role = RoleHousekeeper
	}

	if user.Username == "" || user.Password == "" {
		return UserProfile{}, log.ErrorWithType(ErrValidation, "username and password are required")
	}
	if !user.Role.IsValid() {
		return UserProfile{}, log.ErrorWithType(ErrValidation, "invalid role", "role", user.Role)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(user.Username) >= 0 {
		return UserProfile{}, log.ErrorWithType(ErrValidation, "username already exists", "username", user.Username)
	}

	c.users = append(c.users, user)
	log.Info("User added", "username", user.Username, "role", user.Role)

	return user.ToProfile(), c.persistRoster(ctx)
}

// DeleteUser removes a roster entry. Deleting the logged-in user also ends the
// session, and the last admin cannot be removed.
func (c *AuthController) DeleteUser(ctx context.Context, username string) error {
	log := logger.NewWithContext(ctx, "authController").Function("DeleteUser")

	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.indexOf(username)
	if index < 0 {
		return log.ErrorWithType(ErrNotFound, "user not found", "username", username)
	}

	removed := c.users[index]
	if removed.Role == RoleAdmin && c.adminCount() == 1 {
		return log.ErrorWithType(ErrValidation, "cannot delete the last admin", "username", username)
	}

	c.users = append(c.users[:index:index], c.users[index+1:]...)
	log.Info("User deleted", "username", removed.Username)

	if err := c.persistRoster(ctx); err != nil {
		return err
	}

	if c.session != nil && strings.EqualFold(c.session.Username, removed.Username) {
		c.session = nil
		if err := c.repo.ClearSession(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
	}

	return nil
}

// UpdateUser patches a roster entry. When the entry belongs to the logged-in
// user the session is rewritten in the same critical section.
func (c *AuthController) UpdateUser(
	ctx context.Context,
	username string,
	request UpdateUserRequest,
) (UserProfile, error) {
	log := logger.NewWithContext(ctx, "authController").Function("UpdateUser")

	c.mu.Lock()
	defer c.mu.Unlock()

	index := c.indexOf(username)
	if index < 0 {
		return UserProfile{}, log.ErrorWithType(ErrNotFound, "user not found", "username", username)
	}

	original := c.users[index]
	updated := original

	if request.Username != nil {
		renamed := strings.TrimSpace(*request.Username)
		if renamed == "" {
			return UserProfile{}, log.ErrorWithType(ErrValidation, "username cannot be empty")
		}
		if other := c.indexOf(renamed); other >= 0 && other != index {
			return UserProfile{}, log.ErrorWithType(ErrValidation, "username already exists", "username", renamed)
		}
		updated.Username = renamed
	}

	if request.Password != nil {
		if *request.Password == "" {
			return UserProfile{}, log.ErrorWithType(ErrValidation, "password cannot be empty")
		}
		updated.Password = *request.Password
	}

	if request.Role != nil {
		if !request.Role.IsValid() {
			return UserProfile{}, log.ErrorWithType(ErrValidation, "invalid role", "role", *request.Role)
		}
		if original.Role == RoleAdmin && *request.Role != RoleAdmin && c.adminCount() == 1 {
			return UserProfile{}, log.ErrorWithType(ErrValidation, "cannot demote the last admin")
		}
		updated.Role = *request.Role
	}

	if request.HousekeeperName != nil {
		updated.HousekeeperName = strings.TrimSpace(*request.HousekeeperName)
	}

	c.users[index] = updated

	var sessionErr error
	if c.session != nil && strings.EqualFold(c.session.Username, original.Username) {
		session := *c.session
		session.Username = updated.Username
		session.DisplayName = updated.DisplayName()
		session.Role = updated.Role
		c.session = &session
		if err := c.repo.SaveSession(ctx, session); err != nil {
			sessionErr = fmt.Errorf("%w: %w", ErrPersist, err)
		}
	}

	log.Info("User updated", "username", original.Username, "newUsername", updated.Username)

	if err := c.persistRoster(ctx); err != nil {
		return updated.ToProfile(), err
	}
	return updated.ToProfile(), sessionErr
}

func (c *AuthController) indexOf(username string) int {
	username = strings.TrimSpace(username)
	for i, user := range c.users {
		if strings.EqualFold(user.Username, username) {
			return i
		}
	}
	return -1
}

func (c *AuthController) adminCount() int {
	count := 0
	for _, user := range c.users {
		if user.Role == RoleAdmin {
			count++
		}
	}
	return count
}

// persistRoster must be called with mu held.
func (c *AuthController) persistRoster(ctx context.Context) error {
	if err := c.repo.SaveRoster(ctx, c.users); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
