package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	autherrors "rihla/internal/auth/errors"
	"rihla/internal/auth/validator"
	"rihla/pkg/config"
	apperrors "rihla/pkg/errors"
	"rihla/pkg/logger"
	"rihla/pkg/model"
	"rihla/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user *model.User) error
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "user-1"
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, autherrors.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, autherrors.ErrUserNotFound
}

func (m *mockUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func newTestAuthService(repo *mockUserRepo) AuthService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatJSON,
			Service: "test",
		}),
		BcryptCost: bcrypt.MinCost,
	}
	return &authService{
		repo:      repo,
		validator: validator.NewAuthValidator(),
		issuer:    token.NewIssuer("test-secret", time.Hour),
		cfg:       cfg,
	}
}

func registerReq() *model.RegisterRequest {
	return &model.RegisterRequest{
		Email:       "Amine@Example.COM",
		FullName:    "amine benali",
		PhoneNumber: "0550123456",
		Password:    "s3cret-password",
	}
}

func TestRegister_NormalizesAndHashes(t *testing.T) {
	var created *model.User
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = "user-1"
			created = user
			return nil
		},
	}
	svc := newTestAuthService(repo)

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Email != "amine@example.com" {
		t.Errorf("expected lowercased email, got %s", created.Email)
	}
	if created.PhoneNumber != "+213550123456" {
		t.Errorf("expected E.164 phone, got %s", created.PhoneNumber)
	}
	if created.HashedPassword == "s3cret-password" {
		t.Error("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.HashedPassword), []byte("s3cret-password")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Errorf("bad token response: %+v", resp)
	}
	if resp.User == nil || resp.User.ID != "user-1" {
		t.Error("response must carry the user view")
	}
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *model.User) error {
			return autherrors.ErrDuplicateEmail
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), registerReq())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestRegister_WeakPasswordRejected(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	req := registerReq()
	req.Password = "short"
	_, err := svc.Register(context.Background(), req)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusUnprocessableEntity {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret-password"), bcrypt.MinCost)
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			if email != "amine@example.com" {
				return nil, autherrors.ErrUserNotFound
			}
			return &model.User{ID: "user-1", Email: email, HashedPassword: string(hash)}, nil
		},
	}
	svc := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "  Amine@Example.com ",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	issuer := token.NewIssuer("test-secret", time.Hour)
	subject, err := issuer.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if subject != "user-1" {
		t.Errorf("expected subject user-1, got %s", subject)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email, HashedPassword: string(hash)}, nil
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "amine@example.com",
		Password: "wrong-password",
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
	// Unknown account and wrong password must be indistinguishable.
	if appErr.Message != "Invalid email or password" {
		t.Errorf("unexpected message: %s", appErr.Message)
	}
}

func TestMe_MissingCaller(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	_, err := svc.Me(context.Background(), "")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}
