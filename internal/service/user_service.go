package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"commerce/internal/apperror"
	"commerce/internal/model"
	"commerce/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// ErrInvalidCredentials is returned by Login for a wrong email or password.
// Both collapse into one error so the response does not leak which was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidRefreshToken is returned when a refresh token is unknown or expired.
var ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

// --- DTOs ---

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type CreateUserRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	RoleIDs  []string `json:"role_ids"`
}

type UpdateUserRequest struct {
	Name     *string   `json:"name"`
	Email    *string   `json:"email"`
	Password *string   `json:"password"`
	RoleIDs  *[]string `json:"role_ids"`
}

// --- Interface ---

type UserService interface {
	Login(ctx context.Context, req LoginRequest) (*model.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error

	List(ctx context.Context, page, limit int) ([]model.User, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, req CreateUserRequest) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SeedAdmin(ctx context.Context, email, password string) error
}

type userService struct {
	userRepo  repository.UserRepository
	roleRepo  repository.RoleRepository
	txMgr     repository.TransactionManager
	cache     SnapshotInvalidator
	jwtSecret []byte
}

func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	txMgr repository.TransactionManager,
	cache SnapshotInvalidator,
	jwtSecret []byte,
) UserService {
	if cache == nil {
		cache = noopInvalidator{}
	}
	return &userService{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		txMgr:     txMgr,
		cache:     cache,
		jwtSecret: jwtSecret,
	}
}

// --- Authentication ---

func (s *userService) signAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(accessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func newRefreshTokenValue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *userService) issueTokenPair(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	accessToken, err := s.signAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshValue, err := newRefreshTokenValue()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	rt := &model.RefreshToken{
		UserID:    userID,
		Token:     refreshValue,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(ctx, rt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshValue}, nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*model.User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	// opportunistic cleanup of stale refresh tokens
	if err := s.userRepo.DeleteExpiredRefreshTokens(ctx); err != nil {
		log.Println("failed to prune expired refresh tokens:", err)
	}

	pair, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates the refresh token: the presented token is consumed and a
// fresh pair is issued.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	rt, err := s.userRepo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if time.Now().After(rt.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(ctx, refreshToken)
		return nil, ErrInvalidRefreshToken
	}

	if err := s.userRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokenPair(ctx, rt.UserID)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.userRepo.DeleteRefreshToken(ctx, refreshToken)
}

// --- User management ---

func (s *userService) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, total, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByIDWithRoles(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) resolveRoles(ctx context.Context, ve *apperror.ValidationError, rawIDs []string) ([]model.Role, error) {
	roles := make([]model.Role, 0, len(rawIDs))
	for _, raw := range rawIDs {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			ve.Add("role_ids", "must contain valid ids")
			return nil, nil
		}
		role, err := s.roleRepo.FindByID(ctx, parsed)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				ve.Add("role_ids", "must reference existing roles")
				return nil, nil
			}
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

func hashPassword(ve *apperror.ValidationError, password string) string {
	if len(password) < 8 {
		ve.Add("password", "must be at least 8 characters")
		return ""
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		ve.Add("password", "could not be hashed")
		return ""
	}
	return string(hashed)
}

func (s *userService) Create(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	ve := apperror.NewValidation()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		ve.Add("name", "required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		ve.Add("email", "required")
	} else if !strings.Contains(email, "@") {
		ve.Add("email", "must be a valid email address")
	} else {
		exists, err := s.userRepo.EmailExists(ctx, email, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if exists {
			ve.Add("email", "has already been taken")
		}
	}
	hashed := hashPassword(ve, req.Password)
	roles, err := s.resolveRoles(ctx, ve, req.RoleIDs)
	if err != nil {
		return nil, err
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	user := &model.User{Name: name, Email: email, Password: hashed}
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		return s.userRepo.ReplaceRoles(txCtx, user, roles)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Invalid("email", "has already been taken")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return s.Get(ctx, user.ID)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	ve := apperror.NewValidation()

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			ve.Add("name", "required")
		}
		user.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			ve.Add("email", "required")
		} else if !strings.Contains(email, "@") {
			ve.Add("email", "must be a valid email address")
		} else {
			exists, err := s.userRepo.EmailExists(ctx, email, id)
			if err != nil {
				return nil, err
			}
			if exists {
				ve.Add("email", "has already been taken")
			}
		}
		user.Email = email
	}
	if req.Password != nil {
		if hashed := hashPassword(ve, *req.Password); hashed != "" {
			user.Password = hashed
		}
	}

	var roles []model.Role
	if req.RoleIDs != nil {
		roles, err = s.resolveRoles(ctx, ve, *req.RoleIDs)
		if err != nil {
			return nil, err
		}
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	user.Roles = nil
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Save(txCtx, user); err != nil {
			return err
		}
		if req.RoleIDs != nil {
			return s.userRepo.ReplaceRoles(txCtx, user, roles)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Invalid("email", "has already been taken")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.cache.Invalidate(id)
	return s.Get(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, user); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.cache.Invalidate(id)
	return nil
}

// SeedAdmin creates the initial administrator account bound to the admin
// role. No-op when the email is already registered.
func (s *userService) SeedAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	exists, err := s.userRepo.EmailExists(ctx, email, uuid.Nil)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	adminRole, err := s.roleRepo.FindByName(ctx, "admin")
	if err != nil {
		return fmt.Errorf("admin role not seeded: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{Name: "Administrateur", Email: email, Password: string(hashed)}
	return s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		if err := s.userRepo.ReplaceRoles(txCtx, user, []model.Role{*adminRole}); err != nil {
			return err
		}
		log.Printf("Seeded admin user %q", email)
		return nil
	})
}
