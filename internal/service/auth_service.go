package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wanderlust-app/wanderlust/internal/models"
	"github.com/wanderlust-app/wanderlust/internal/repository"
	"github.com/wanderlust-app/wanderlust/pkg/rabbitmq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	bcryptCost = 12
	sessionTTL = 24 * time.Hour
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, *models.Session, error)
	Login(ctx context.Context, username, password string) (*models.User, *models.Session, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	publisher *rabbitmq.Publisher
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, publisher *rabbitmq.Publisher) AuthService {
	return &authService{users: users, sessions: sessions, publisher: publisher}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, *models.Session, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	handle, err := s.uniqueHandle(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Handle:       handle,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	_ = s.publisher.Publish("user.registered", map[string]any{
		"user_id": user.ID,
		"handle":  user.Handle,
	})

	return user, session, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, *models.Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *authService) openSession(ctx context.Context, userID uint) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// uniqueHandle derives the public @handle from the display name and keeps
// appending a random numeric suffix until no existing user holds it.
func (s *authService) uniqueHandle(ctx context.Context, username string) (string, error) {
	base := deriveHandle(username)
	handle := base
	for {
		taken, err := s.users.HandleExists(ctx, handle)
		if err != nil {
			return "", err
		}
		if !taken {
			return handle, nil
		}
		handle = fmt.Sprintf("%s%d", base, rand.Intn(1000))
	}
}

func deriveHandle(username string) string {
	return "@" + strings.ToLower(strings.Join(strings.Fields(username), ""))
}
