// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/raj-p26/inklink-backend/internal/auth"
)

type User struct {
	ID               string     `db:"id"`
	FirstName        string     `db:"first_name"`
	LastName         string     `db:"last_name"`
	Username         string     `db:"username"`
	Email            string     `db:"email"`
	PasswordHash     string     `db:"password_hash"`
	About            string     `db:"about"`
	Role             string     `db:"role"`
	AccountStatus    string     `db:"account_status"`
	RegistrationDate time.Time  `db:"registration_date"`
	LastLoginDate    *time.Time `db:"last_login_date"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsActive() bool {
	return u.AccountStatus == StatusActive
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusActive      = auth.AccountActive
	StatusSuspended   = auth.AccountSuspended
	StatusDeactivated = auth.AccountDeactivated
)

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusSuspended, StatusDeactivated:
		return true
	}
	return false
}
