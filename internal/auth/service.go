// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/raj-p26/inklink-backend/internal/core"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", core.ErrUnauthorized)
	ErrEmailTaken         = fmt.Errorf("email already registered: %w", core.ErrConflict)
	ErrAccountSuspended   = fmt.Errorf("account suspended: %w", core.ErrForbidden)
)

const (
	AccountActive      = "active"
	AccountSuspended   = "suspended"
	AccountDeactivated = "deactivated"
)

type UserInfo struct {
	ID               string
	FirstName        string
	LastName         string
	Username         string
	Email            string
	About            string
	PasswordHash     string
	Role             string
	AccountStatus    string
	RegistrationDate time.Time
	LastLoginDate    *time.Time
}

type NewUser struct {
	FirstName    string
	LastName     string
	Username     string
	Email        string
	About        string
	PasswordHash string
}

// UserProvider is the identity store as seen by the auth flows. Lookups
// that match nothing return an error wrapping core.ErrNotFound; a violated
// email uniqueness constraint on Create wraps core.ErrDuplicateKey.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u NewUser) (*UserInfo, error)
	SetPassword(ctx context.Context, userID, password string) error
	TouchLastLogin(ctx context.Context, userID string) error
}

type Service struct {
	tokens      *TokenService
	users       UserProvider
	hasher      Hasher
	credentials *CredentialVerifier
}

func NewService(
	tokens *TokenService,
	users UserProvider,
	hasher Hasher,
) *Service {
	return &Service{
		tokens:      tokens,
		users:       users,
		hasher:      hasher,
		credentials: NewCredentialVerifier(users, hasher),
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, NewUser{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		About:        req.About,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.createAuthResponse(user)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.credentials.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if user == nil {
		core.AddSpanEvent(ctx, "auth.login_rejected")
		return nil, ErrInvalidCredentials
	}

	if user.AccountStatus == AccountSuspended {
		return nil, ErrAccountSuspended
	}

	core.AddSpanEvent(ctx, "auth.login", attribute.String("user.id", user.ID))

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		slog.WarnContext(ctx, "update last login failed",
			"user_id", user.ID,
			"error", err,
		)
	}

	return s.createAuthResponse(user)
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID, currentPassword, newPassword string,
) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	if err := s.users.SetPassword(ctx, userID, newPassword); err != nil {
		return fmt.Errorf("set password: %w", err)
	}

	return nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) createAuthResponse(user *UserInfo) (*AuthResponse, error) {
	token, err := s.tokens.IssueDefault(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResponse{
		User: toUserResponse(user),
		Token: TokenResponse{
			AccessToken: token.Value,
			TokenType:   "Bearer",
			ExpiresIn:   int(token.ExpiresAt.Sub(token.IssuedAt).Seconds()),
			ExpiresAt:   token.ExpiresAt,
		},
	}, nil
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Username:         u.Username,
		Email:            u.Email,
		About:            u.About,
		Role:             u.Role,
		AccountStatus:    u.AccountStatus,
		RegistrationDate: u.RegistrationDate,
		LastLoginDate:    u.LastLoginDate,
	}
}
