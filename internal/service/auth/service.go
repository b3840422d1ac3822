package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/genapagie/ovinpro/internal/domain/models"
	"github.com/genapagie/ovinpro/internal/repository/mongodb"
)

var (
	// ErrUsernameTaken is returned before any write when the username is
	// already registered, and again if the storage-level insert loses an
	// unlikely race.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials hides whether the username or the password was
	// wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore is the slice of the repository the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenIssuer signs API tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
}

// Service handles breeder account registration and login.
type Service struct {
	store  UserStore
	tokens TokenIssuer
	logger *zap.Logger
}

// NewService wires an auth service instance.
func NewService(store UserStore, tokens TokenIssuer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, tokens: tokens, logger: logger}
}

// Register creates a new account and returns it with a signed token. The
// username is checked before any write; the unique index in the store closes
// the remaining race window.
func (s *Service) Register(ctx context.Context, username, password, farmName string) (*models.User, string, error) {
	if username == "" || password == "" || farmName == "" {
		return nil, "", fmt.Errorf("username, password and farm name are required")
	}

	existing, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("lookup username: %w", err)
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		FarmName:     farmName,
		Role:         models.RoleAdmin,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, mongodb.ErrUsernameTaken) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("farm", farmName))

	signed, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return &user, signed, nil
}

// Login verifies credentials and returns the user with a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("lookup username: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, signed, nil
}
