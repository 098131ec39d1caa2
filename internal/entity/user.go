package entity

import "time"

const (
	UserRoleAdmin = "admin"
	UserRoleUser  = "user"
)

// DbUser represents a persisted user account.
type DbUser struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Login             string    `gorm:"column:login;type:varchar(35);uniqueIndex;not null" json:"login"`
	PasswordHash      string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role              string    `gorm:"column:role;type:varchar(50);index;not null" json:"role"`
	IsActive          bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsInitialPassword bool      `gorm:"column:is_initial_password;not null;default:true" json:"is_initial_password"`
	CreatedBy         *uint     `gorm:"column:created_by" json:"created_by,omitempty"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// UserSummary is a lightweight user description returned to clients.
type UserSummary struct {
	ID                uint      `json:"id"`
	Login             string    `json:"login"`
	Role              string    `json:"role"`
	IsActive          bool      `json:"is_active"`
	IsInitialPassword bool      `json:"is_initial_password"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TokenResponse is returned by the login endpoint.
type TokenResponse struct {
	AccessToken            string `json:"access_token"`
	TokenType              string `json:"token_type"`
	RequiresPasswordChange bool   `json:"requires_password_change"`
}

type UserCreateRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// CredentialsUpdateRequest changes the caller's own login and/or password.
// NewPassword must satisfy the password policy and differ from OldPassword.
type CredentialsUpdateRequest struct {
	NewLogin           *string `json:"new_login,omitempty"`
	OldPassword        string  `json:"old_password" binding:"required"`
	NewPassword        *string `json:"new_password,omitempty"`
	ConfirmNewPassword *string `json:"confirm_new_password,omitempty"`
}
