package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mobimama/mobimama-api/internal/i18n"
	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/repository"
	"github.com/mobimama/mobimama-api/internal/session"
	"github.com/mobimama/mobimama-api/pkg/apperror"
	"github.com/mobimama/mobimama-api/pkg/security"
)

const bcryptCost = 12

// Dashboard targets per role, returned to the client after login.
const (
	redirectMother = "/mother/dashboard"
	redirectStaff  = "/staff/dashboard"
	redirectAdmin  = "/mobi-panel-888x"
)

type Service struct {
	users    repository.UserRepository
	sessions session.Store
	tokens   *session.TokenCodec
	hasher   security.PasswordHasher
}

func NewService(users repository.UserRepository, sessions session.Store, tokens *session.TokenCodec) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		hasher:   security.NewBcryptHasher(bcryptCost),
	}
}

// Register creates a non-admin account. Validation failures never create a row.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperror.Validation("username is required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperror.Validation("passwords do not match")
	}

	role := model.Role(req.Role)
	if !model.ValidRole(role) || role == model.RoleAdmin {
		return nil, apperror.Validation("invalid role")
	}

	if existing, err := s.users.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperror.Validation("username already taken")
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordLength) {
			return nil, apperror.Validation("password too short")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ProvisionAdmin creates an admin account directly. Admins are never
// self-registered; this is the path the seeder and admin panel use.
func (s *Service) ProvisionAdmin(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.Validation("username is required")
	}

	if existing, err := s.users.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperror.Validation("username already taken")
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordLength) {
			return nil, apperror.Validation("password too short")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return user, nil
}

// Login verifies credentials and establishes a session. The same generic
// auth error covers unknown usernames and wrong passwords.
func (s *Service) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Auth("invalid username or password")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return s.establishSession(ctx, user, password)
}

// AdminLogin is the separate admin-panel login path. It only ever matches
// rows whose role is exactly admin, and verifies the same bcrypt hash as the
// normal path.
func (s *Service) AdminLogin(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	user, err := s.users.GetByUsernameAndRole(ctx, username, model.RoleAdmin)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Auth("invalid admin credentials")
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	return s.establishSession(ctx, user, password)
}

// Logout invalidates the session. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	sid, err := s.tokens.Decode(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Resolve maps a bearer token to the session it authenticates.
func (s *Service) Resolve(ctx context.Context, token string) (*session.Session, error) {
	sid, err := s.tokens.Decode(token)
	if err != nil {
		return nil, apperror.Auth("invalid session token")
	}

	sess, err := s.sessions.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, apperror.Auth("session expired")
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	return sess, nil
}

func (s *Service) establishSession(ctx context.Context, user *model.User, password string) (*model.LoginResponse, error) {
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperror.Auth("invalid username or password")
	}

	sess := &session.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Language:  i18n.DefaultLanguage,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokens.Encode(sess.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &model.LoginResponse{
		Token:    token,
		Redirect: redirectFor(user.Role),
		User:     user,
	}, nil
}

func redirectFor(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return redirectAdmin
	case model.RoleClinic, model.RoleNurse:
		return redirectStaff
	default:
		return redirectMother
	}
}
