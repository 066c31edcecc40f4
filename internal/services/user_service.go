package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lyhu_portal/internal/models"
	"lyhu_portal/internal/redis"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the only authentication failure callers see.
var ErrInvalidCredentials = errors.New("invalid email or password")

type SessionStore interface {
	SetSession(ctx context.Context, token string, data *redis.SessionData, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, token string) error
}

type UserService interface {
	Authenticate(email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	SetCurrentUser(ctx context.Context, token string, user *models.User) error
	GetCurrentUser(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
	GetUserByID(id string) (*models.User, error)
	GetAllUsers() []models.User
}

type UserOptions struct {
	RequirePassword bool
	DemoPassword    string
	SessionTTL      time.Duration
}

type userService struct {
	users    []models.User
	sessions SessionStore
	opts     UserOptions
	log      logrus.FieldLogger
}

func NewUserService(sessions SessionStore, opts UserOptions, log logrus.FieldLogger) (UserService, error) {
	// one hash for every demo account
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(opts.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	users := models.DefaultUsers()
	for i := range users {
		users[i].PasswordHash = hashedPassword
	}

	return &userService{
		users:    users,
		sessions: sessions,
		opts:     opts,
		log:      log.WithField("component", "identity"),
	}, nil
}

// Authenticate matches the email exactly. The password is only checked when
// RequirePassword is set.
func (s *userService) Authenticate(email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	for i := range s.users {
		if s.users[i].Email != email {
			continue
		}
		if s.opts.RequirePassword {
			if err := bcrypt.CompareHashAndPassword(s.users[i].PasswordHash, []byte(password)); err != nil {
				return nil, ErrInvalidCredentials
			}
		}
		user := s.users[i]
		return &user, nil
	}
	return nil, ErrInvalidCredentials
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.Authenticate(email, password)
	if err != nil {
		s.log.WithField("email", email).Info("Login rejected")
		return "", nil, err
	}

	token := uuid.NewString()
	if err := s.SetCurrentUser(ctx, token, user); err != nil {
		return "", nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User signed in")
	return token, user, nil
}

// SetCurrentUser stores the session record; a nil user clears it.
func (s *userService) SetCurrentUser(ctx context.Context, token string, user *models.User) error {
	if user == nil {
		return s.Logout(ctx, token)
	}

	data := &redis.SessionData{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.SetSession(ctx, token, data, s.opts.SessionTTL); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// GetCurrentUser returns nil without error when nobody is signed in under token.
func (s *userService) GetCurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	data, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, redis.ErrSessionNotFound) {
			return nil, nil
		}
		if errors.Is(err, redis.ErrCorruptSession) {
			s.log.WithError(err).Warn("Ignoring unreadable session record")
			return nil, nil
		}
		return nil, err
	}
	if !data.Role.Valid() {
		s.log.WithField("role", data.Role).Warn("Ignoring session with unknown role")
		return nil, nil
	}

	return &models.User{
		ID:    data.UserID,
		Email: data.Email,
		Name:  data.Name,
		Role:  data.Role,
	}, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", id)
}

func (s *userService) GetAllUsers() []models.User {
	users := make([]models.User, len(s.users))
	copy(users, s.users)
	return users
}

// DashboardPath is the landing route of a role.
func DashboardPath(role models.UserRole) string {
	switch role {
	case models.RoleAdmin:
		return "/admin"
	case models.RoleSales:
		return "/sales"
	case models.RoleCTV:
		return "/ctv"
	case models.RoleCustomer:
		return "/customer"
	}
	return "/login"
}
