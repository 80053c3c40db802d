// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/raj-p26/inklink-backend/internal/patch"
)

// UpdateUserRequest is a sparse update. Nil fields are left unchanged.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty"  validate:"omitempty,min=1,max=100"`
	Username  *string `json:"username,omitempty"   validate:"omitempty,min=3,max=50"`
	Email     *string `json:"email,omitempty"      validate:"omitempty,email,max=255"`
	About     *string `json:"about,omitempty"      validate:"omitempty,max=1000"`
	Password  *string `json:"password,omitempty"   validate:"omitempty,min=8,max=128"`
}

// Changes maps the present fields onto users columns. The plaintext
// password lands in password_hash, whose column transform hashes it.
func (r UpdateUserRequest) Changes() patch.Changes {
	return patch.Changes{}.
		SetIf("first_name", r.FirstName).
		SetIf("last_name", r.LastName).
		SetIf("username", r.Username).
		SetIf("email", r.Email).
		SetIf("about", r.About).
		SetIf("password_hash", r.Password)
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended deactivated"`
}

type UserResponse struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	About            string     `json:"about"`
	Role             string     `json:"role"`
	AccountStatus    string     `json:"account_status"`
	RegistrationDate time.Time  `json:"registration_date"`
	LastLoginDate    *time.Time `json:"last_login_date,omitempty"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
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

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
