// AngelaMos | 2026
// credentials.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/raj-p26/inklink-backend/internal/core"
)

// Hasher is the subset of the password hasher the auth flows rely on.
type Hasher interface {
	core.PasswordHasher
	VerifyTimingSafe(password string, digest *string) bool
	NeedsRehash(digest string) bool
}

type CredentialVerifier struct {
	users  UserProvider
	hasher Hasher
}

func NewCredentialVerifier(users UserProvider, hasher Hasher) *CredentialVerifier {
	return &CredentialVerifier{users: users, hasher: hasher}
}

// Authenticate returns the matching user with PasswordHash cleared, or
// nil, nil when the email is unknown or the password is wrong. The two
// misses are indistinguishable to the caller and cost one hash each.
func (v *CredentialVerifier) Authenticate(
	ctx context.Context,
	email, password string,
) (*UserInfo, error) {
	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			v.hasher.VerifyTimingSafe(password, nil)
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !v.hasher.VerifyTimingSafe(password, &user.PasswordHash) {
		return nil, nil
	}

	if v.hasher.NeedsRehash(user.PasswordHash) {
		if err := v.users.SetPassword(ctx, user.ID, password); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	public := *user
	public.PasswordHash = ""
	return &public, nil
}
