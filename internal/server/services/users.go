package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/dmitrijs2005/feedbackhub/internal/server/auth"
	"github.com/dmitrijs2005/feedbackhub/internal/server/authz"
	"github.com/dmitrijs2005/feedbackhub/internal/server/config"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/users"
	"github.com/google/uuid"
)

// LoginResult is what a successful login returns. ManagerName is only
// meaningful when HasManagerName is set: employees with a manager reference
// get the manager's name, or nil when the reference is stale.
type LoginResult struct {
	User           *models.User
	Token          string
	ManagerName    *string
	HasManagerName bool
}

// UserService handles registration, login and identity resolution.
type UserService struct {
	users                 users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	newID                 func() string
	now                   func() time.Time
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		users:                 m.Users(),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		newID:                 uuid.NewString,
		now:                   clock,
	}
}

// Register creates an account. The manager reference is accepted for any
// role and is not checked for existence; only its format is validated.
func (s *UserService) Register(ctx context.Context, email, name, password string, role models.Role, managerID *string) (*models.User, error) {
	if _, err := models.ParseRole(string(role)); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidArgument, err)
	}
	if managerID != nil && *managerID == "" {
		managerID = nil
	}
	if managerID != nil {
		id, ok := canonicalID(*managerID)
		if !ok {
			return nil, invalidID("manager", *managerID)
		}
		managerID = &id
	}

	// fast path; the store's unique index still decides under concurrency
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", common.ErrorAlreadyExists)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           s.newID(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		ManagerID:    managerID,
		CreatedAt:    s.now(),
	}

	u, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: email already registered", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
	}

	token, err := auth.GenerateToken(user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	res := &LoginResult{User: user, Token: token}

	if user.Role == models.RoleEmployee && user.HasManager() {
		res.HasManagerName = true
		manager, err := s.users.GetByID(ctx, user.ManagerRef())
		switch {
		case err == nil:
			res.ManagerName = &manager.Name
		case errors.Is(err, common.ErrorNotFound):
		default:
			return nil, fmt.Errorf("error looking up manager: %w", err)
		}
	}

	return res, nil
}

// Authenticate resolves a bearer token to its user. Every failure is
// reported as common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	email, err := auth.GetSubjectFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: invalid token", common.ErrorUnauthorized)
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	return user, nil
}

// GetByID needs no caller; any user record is public minus its password.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	cid, ok := canonicalID(id)
	if !ok {
		return nil, invalidID("user", id)
	}
	user, err := s.users.GetByID(ctx, cid)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: user not found", common.ErrorNotFound)
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	return user, nil
}

// ListTeam returns the employees managed by the caller.
func (s *UserService) ListTeam(ctx context.Context, caller authz.Caller) ([]*models.User, error) {
	if err := authz.RequireRole(caller, models.RoleManager); err != nil {
		return nil, fmt.Errorf("%w: only managers can access their team", common.ErrorForbidden)
	}
	team, err := s.users.ListByManager(ctx, caller.ID, models.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("error listing team: %w", err)
	}
	return team, nil
}
