package service

import (
	"context"
	"errors"
	"strings"

	autherrors "rihla/internal/auth/errors"
	"rihla/internal/auth/repository"
	"rihla/internal/auth/validator"
	"rihla/pkg/config"
	apperrors "rihla/pkg/errors"
	"rihla/pkg/model"
	"rihla/pkg/sanitizer"
	"rihla/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

// AuthService registers accounts, exchanges credentials for access tokens
// and resolves the current caller.
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
	Me(ctx context.Context, userID string) (*model.UserView, error)
}

type authService struct {
	repo      repository.UserRepository
	validator *validator.AuthValidator
	issuer    *token.Issuer
	cfg       *config.Config
}

func NewAuthService(
	repo repository.UserRepository,
	validator *validator.AuthValidator,
	issuer *token.Issuer,
	cfg *config.Config,
) AuthService {
	return &authService{
		repo:      repo,
		validator: validator,
		issuer:    issuer,
		cfg:       cfg,
	}
}

func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	s.sanitizeRegister(req)

	if err := s.validator.ValidateRegister(req); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "error", err)
		return nil, apperrors.Validation("Registration validation failed", map[string]any{"error": err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Email:          req.Email,
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		HashedPassword: string(hash),
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("Email already registered")
		}
		s.cfg.Log.Error("Failed to create user", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "email", user.Email)
	return s.tokenResponse(user)
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	req.Email = strings.ToLower(sanitizer.TrimAndNormalize(req.Email))

	if err := s.validator.ValidateLogin(req); err != nil {
		s.cfg.Log.Warn("Login validation failed", "error", err)
		return nil, apperrors.Validation("Login validation failed", map[string]any{"error": err.Error()})
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return s.tokenResponse(user)
}

func (s *authService) Me(ctx context.Context, userID string) (*model.UserView, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Missing caller identity")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return nil, apperrors.NotFoundWithID("User", userID)
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user.View(), nil
}

func (s *authService) sanitizeRegister(req *model.RegisterRequest) {
	req.Email = strings.ToLower(sanitizer.TrimAndNormalize(req.Email))
	req.FullName = sanitizer.NormalizeName(req.FullName)

	raw := sanitizer.TrimAndNormalize(req.PhoneNumber)
	if normalized := sanitizer.NormalizePhone(raw); normalized != "" {
		req.PhoneNumber = normalized
	} else {
		req.PhoneNumber = raw
	}
}

func (s *authService) tokenResponse(user *model.User) (*model.TokenResponse, error) {
	accessToken, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue access token", err)
	}
	return &model.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		User:        user.View(),
	}, nil
}
