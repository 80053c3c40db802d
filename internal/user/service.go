// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/raj-p26/inklink-backend/internal/auth"
	"github.com/raj-p26/inklink-backend/internal/core"
	"github.com/raj-p26/inklink-backend/internal/middleware"
	"github.com/raj-p26/inklink-backend/internal/patch"
)

var ErrSelfStatusChange = fmt.Errorf(
	"cannot change own account status: %w",
	core.ErrForbidden,
)

// NewUpdateTemplate declares the writable users columns. Passwords are
// hashed by the password_hash transform before they are bound.
func NewUpdateTemplate(hasher core.PasswordHasher) *patch.Template {
	return patch.MustTemplate("users", "id",
		patch.Column{Name: "first_name"},
		patch.Column{Name: "last_name"},
		patch.Column{Name: "username"},
		patch.Column{Name: "email"},
		patch.Column{Name: "about"},
		patch.Column{Name: "password_hash", Transform: hasher.Hash},
	)
}

type Service struct {
	repo     Repository
	template *patch.Template
}

func NewService(repo Repository, hasher core.PasswordHasher) *Service {
	return &Service{
		repo:     repo,
		template: NewUpdateTemplate(hasher),
	}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, email)
}

func (s *Service) Create(
	ctx context.Context,
	nu auth.NewUser,
) (*auth.UserInfo, error) {
	user := &User{
		ID:            uuid.New().String(),
		FirstName:     nu.FirstName,
		LastName:      nu.LastName,
		Username:      nu.Username,
		Email:         nu.Email,
		PasswordHash:  nu.PasswordHash,
		About:         nu.About,
		Role:          RoleUser,
		AccountStatus: StatusActive,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// SetPassword stores password through the update template, so it is hashed
// exactly like a password sent to UpdateMe.
func (s *Service) SetPassword(
	ctx context.Context,
	userID, password string,
) error {
	_, err := s.apply(ctx, userID, patch.Changes{}.Set("password_hash", password))
	return err
}

func (s *Service) TouchLastLogin(ctx context.Context, userID string) error {
	return s.repo.TouchLastLogin(ctx, userID)
}

// ResolveIdentity loads the identity behind a verified token subject.
func (s *Service) ResolveIdentity(
	ctx context.Context,
	id string,
) (*middleware.Identity, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Role:          user.Role,
		AccountStatus: user.AccountStatus,
	}, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

// UpdateMe applies the present fields of req to the caller's row and
// returns the updated user.
func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	changes := req.Changes()

	if req.Email != nil {
		current, err := s.repo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}

		if current.Email != *req.Email {
			taken, err := s.repo.ExistsByEmail(ctx, *req.Email)
			if err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if taken {
				return nil, auth.ErrEmailTaken
			}
		}
	}

	if _, err := s.apply(ctx, userID, changes); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) DeleteMe(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("delete me: %w", core.ErrUnauthorized)
	}

	return s.repo.Delete(ctx, userID)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) CountByStatus(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByStatus(ctx)
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	actorID, targetID, status string,
) (*User, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"update status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	if actorID == targetID {
		return nil, ErrSelfStatusChange
	}

	if err := s.repo.UpdateStatus(ctx, targetID, status); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, targetID)
}

func (s *Service) apply(
	ctx context.Context,
	userID string,
	changes patch.Changes,
) (int64, error) {
	stmt, err := s.template.Build(userID, changes)
	if err != nil {
		return 0, fmt.Errorf("build user update: %w", err)
	}

	rows, err := s.repo.ApplyUpdate(ctx, stmt)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return 0, auth.ErrEmailTaken
		}
		return 0, err
	}

	if rows == 0 {
		return 0, fmt.Errorf("update user: %w", core.ErrNotFound)
	}

	return rows, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Username:         u.Username,
		Email:            u.Email,
		About:            u.About,
		PasswordHash:     u.PasswordHash,
		Role:             u.Role,
		AccountStatus:    u.AccountStatus,
		RegistrationDate: u.RegistrationDate,
		LastLoginDate:    u.LastLoginDate,
	}
}

var (
	_ auth.UserProvider           = (*Service)(nil)
	_ middleware.IdentityResolver = (*Service)(nil)
)
