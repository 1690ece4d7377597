package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/platform/logger"
	"github.com/cardstack/cardstack-api/internal/service/auth"
	"github.com/cardstack/cardstack-api/internal/store"
)

// AuthResult bundles a user with a freshly issued token pair.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// UserService handles registration, login and token refresh.
type UserService interface {
	// Register creates a new account and issues a token pair.
	// Returns store.ErrEmailExists if the email is taken.
	Register(ctx context.Context, email, password string) (*AuthResult, error)

	// Login verifies credentials and issues a token pair.
	// Returns auth.ErrInvalidCredentials on any mismatch; it never reveals
	// whether the email exists.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}

type userServiceImpl struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	verifier   auth.PasswordVerifier
	logger     *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("jwtService cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore:  userStore,
		jwtService: jwtService,
		verifier:   verifier,
		logger:     logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register
func (s *userServiceImpl) Register(
	ctx context.Context,
	email, password string,
) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return s.issueTokens(ctx, user)
}

// Login implements UserService.Login
func (s *userServiceImpl) Login(
	ctx context.Context,
	email, password string,
) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("password mismatch during login",
			slog.String("user_id", user.ID.String()))
		return nil, auth.ErrInvalidCredentials
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return s.issueTokens(ctx, user)
}

// Refresh implements UserService.Refresh
func (s *userServiceImpl) Refresh(
	ctx context.Context,
	refreshToken string,
) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *userServiceImpl) issueTokens(
	ctx context.Context,
	user *domain.User,
) (*AuthResult, error) {
	accessToken, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
