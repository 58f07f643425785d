package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/technest-labs/storefront-backend/pkg/db/models"
)

// RegisterInput is the customer sign-up payload.
type RegisterInput struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=128"`
	Contact  *string `json:"contact,omitempty" validate:"omitempty,max=20"`
}

// LoginInput authenticates a customer or an admin by email.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDTO is the account view returned to its owner.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Contact     *string    `json:"contact,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SessionDTO is the login result: a bearer token plus the profile.
type SessionDTO struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

// AdminSessionDTO is the admin login result.
type AdminSessionDTO struct {
	AccessToken string    `json:"access_token"`
	AdminID     uuid.UUID `json:"admin_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
}

func toUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Contact:     user.Contact,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
