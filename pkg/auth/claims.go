package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/technest-labs/storefront-backend/pkg/enums"
)

// Claims is the access token payload. Role distinguishes storefront
// customers from back-office admins; every privileged route checks it
// explicitly instead of relying on ambient session state.
type Claims struct {
	UserID uuid.UUID       `json:"uid"`
	Role   enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token carries the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == enums.ActorRoleAdmin
}
