package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/technest-labs/storefront-backend/pkg/config"
	"github.com/technest-labs/storefront-backend/pkg/db"
	"github.com/technest-labs/storefront-backend/pkg/db/models"
	"github.com/technest-labs/storefront-backend/pkg/enums"
	pkgerrors "github.com/technest-labs/storefront-backend/pkg/errors"
	"github.com/technest-labs/storefront-backend/pkg/logger"
	"github.com/technest-labs/storefront-backend/pkg/security"
)

type tokenMinter interface {
	MintAccessToken(userID uuid.UUID, role enums.ActorRole) (string, error)
}

// Service handles registration, login and profile access for both customer
// and admin accounts.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (SessionDTO, error)
	Login(ctx context.Context, input LoginInput) (SessionDTO, error)
	AdminLogin(ctx context.Context, input LoginInput) (AdminSessionDTO, error)
	Profile(ctx context.Context, userID uuid.UUID) (UserDTO, error)
}

type service struct {
	repo        *Repository
	minter      tokenMinter
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
}

// NewService builds the accounts service.
func NewService(repo *Repository, minter tokenMinter, passwordCfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	if minter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token minter is required")
	}
	return &service{
		repo:        repo,
		minter:      minter,
		passwordCfg: passwordCfg,
		logg:        logg,
		now:         time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (SessionDTO, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" {
		return SessionDTO{}, pkgerrors.MissingField("username")
	}
	if email == "" {
		return SessionDTO{}, pkgerrors.MissingField("email")
	}
	if input.Password == "" {
		return SessionDTO{}, pkgerrors.MissingField("password")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Contact:      input.Contact,
		IsActive:     true,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username or email already registered")
		}
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	token, err := s.minter.MintAccessToken(created.ID, enums.ActorRoleCustomer)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	if s.logg != nil {
		logCtx := s.logg.WithUserID(ctx, created.ID.String())
		s.logg.Info(logCtx, "users.registered")
	}
	return SessionDTO{AccessToken: token, User: toUserDTO(*created)}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (SessionDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return SessionDTO{}, pkgerrors.MissingField("email")
	}
	if input.Password == "" {
		return SessionDTO{}, pkgerrors.MissingField("password")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return SessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "account disabled")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now().UTC()
	if err := s.repo.TouchLastLogin(ctx, user.ID, now); err == nil {
		user.LastLoginAt = &now
	}

	token, err := s.minter.MintAccessToken(user.ID, enums.ActorRoleCustomer)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}
	return SessionDTO{AccessToken: token, User: toUserDTO(*user)}, nil
}

func (s *service) AdminLogin(ctx context.Context, input LoginInput) (AdminSessionDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return AdminSessionDTO{}, pkgerrors.MissingField("email")
	}
	if input.Password == "" {
		return AdminSessionDTO{}, pkgerrors.MissingField("password")
	}

	admin, err := s.repo.FindAdminByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return AdminSessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return AdminSessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin")
	}

	ok, err := security.VerifyPassword(input.Password, admin.PasswordHash)
	if err != nil || !ok {
		return AdminSessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.minter.MintAccessToken(admin.ID, enums.ActorRoleAdmin)
	if err != nil {
		return AdminSessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}
	return AdminSessionDTO{
		AccessToken: token,
		AdminID:     admin.ID,
		Name:        admin.Name,
		Email:       admin.Email,
	}, nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (UserDTO, error) {
	if userID == uuid.Nil {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return toUserDTO(*user), nil
}
