package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/budget-service/config"
	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserExists is returned when trying to register an existing user.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidToken is returned when token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenBlacklisted is returned when token is blacklisted.
	ErrTokenBlacklisted = errors.New("token is blacklisted")
	// ErrDefaultRolesMissing is returned when the seeded roles are absent.
	ErrDefaultRolesMissing = errors.New("default roles not initialized")
)

// Default role names.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ClaimsWithJWT extends dto.Claims with JWT RegisteredClaims for token generation.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// AuthService provides authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error)
	Register(ctx context.Context, email, username, password, name string) (*dto.TokenPair, *model.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	// IsAdmin reports whether the user holds the admin role.
	IsAdmin(ctx context.Context, user *model.User) bool
}

// AuthServiceImpl implements AuthService. Token handling is delegated to a
// TokenService.
type AuthServiceImpl struct {
	userRepo     repository.UserRepositoryInterface
	roleRepo     repository.RoleRepositoryInterface
	tokenService TokenService
	isAdminEmail func(string) bool
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepositoryInterface,
	roleRepo repository.RoleRepositoryInterface,
	tokenRepo repository.TokenRepositoryInterface,
	authConfig config.AuthConfig,
) *AuthServiceImpl {
	tokenService := NewTokenService(tokenRepo, NewTokenConfigFromAuthConfig(authConfig))
	return NewAuthServiceWithTokenService(userRepo, roleRepo, tokenService, authConfig.IsAdminEmail)
}

// NewAuthServiceWithTokenService creates an authentication service around an
// existing TokenService. isAdminEmail may be nil.
func NewAuthServiceWithTokenService(
	userRepo repository.UserRepositoryInterface,
	roleRepo repository.RoleRepositoryInterface,
	tokenService TokenService,
	isAdminEmail func(string) bool,
) *AuthServiceImpl {
	if isAdminEmail == nil {
		isAdminEmail = func(string) bool { return false }
	}
	return &AuthServiceImpl{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		tokenService: tokenService,
		isAdminEmail: isAdminEmail,
	}
}

// Login authenticates a user and returns JWT tokens. Users on the admin
// allow-list who lack the admin role are granted it here.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil || !user.Active || user.ID.IsZero() {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if s.isAdminEmail(user.Email) {
		s.grantAdmin(ctx, user)
	}

	// Old refresh tokens are dropped so each login starts a single session chain.
	if err := s.tokenService.InvalidateUserTokens(ctx, user.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to invalidate existing tokens: %w", err)
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token pair: %w", err)
	}
	return tokenPair, user, nil
}

func (s *AuthServiceImpl) grantAdmin(ctx context.Context, user *model.User) {
	admin, err := s.roleRepo.FindByName(ctx, RoleAdmin)
	if err != nil || admin == nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("admin role unavailable")
		return
	}
	adminID := admin.ID.Hex()
	for _, id := range user.Roles {
		if id == adminID {
			return
		}
	}
	roles := append(append([]string{}, user.Roles...), adminID)
	if err := s.userRepo.UpdateRoles(ctx, user.ID, roles); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("failed to grant admin role")
		return
	}
	user.Roles = roles
}

func (s *AuthServiceImpl) Register(ctx context.Context, email, username, password, name string) (*dto.TokenPair, *model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrUserExists
	}
	existing, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrUserExists
	}

	userRole, err := s.roleRepo.FindByName(ctx, RoleUser)
	if err != nil {
		return nil, nil, err
	}
	if userRole == nil {
		return nil, nil, ErrDefaultRolesMissing
	}
	roles := []string{userRole.ID.Hex()}

	if s.isAdminEmail(email) {
		adminRole, err := s.roleRepo.FindByName(ctx, RoleAdmin)
		if err != nil {
			return nil, nil, err
		}
		if adminRole == nil {
			return nil, nil, ErrDefaultRolesMissing
		}
		roles = append(roles, adminRole.ID.Hex())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
		Name:     name,
		Roles:    roles,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return tokenPair, user, nil
}

// RefreshToken rotates a refresh token: the presented one is deleted and a
// new pair is issued.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenService.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if token == nil || token.Type != model.TokenTypeRefresh || time.Now().After(token.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, ErrInvalidCredentials
	}

	if err := s.tokenService.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to delete old refresh token: %w", err)
	}
	return s.tokenService.GenerateTokenPair(ctx, user)
}

func (s *AuthServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	return s.tokenService.ValidateAccessToken(ctx, tokenString)
}

// Logout blacklists the access token and deletes the refresh token. Either
// may be empty; failures of both are joined.
func (s *AuthServiceImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	var errs []error

	if accessToken != "" {
		if err := s.tokenService.InvalidateAccessToken(ctx, accessToken); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate access token during logout")
			errs = append(errs, fmt.Errorf("invalidate access token: %w", err))
		}
	}
	if refreshToken != "" {
		if err := s.tokenService.DeleteRefreshToken(ctx, refreshToken); err != nil {
			log.Warn().Err(err).Msg("failed to delete refresh token during logout")
			errs = append(errs, fmt.Errorf("delete refresh token: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *AuthServiceImpl) IsAdmin(ctx context.Context, user *model.User) bool {
	if user == nil || len(user.Roles) == 0 {
		return false
	}
	roles, err := s.roleRepo.FindByIDs(ctx, user.Roles)
	if err != nil {
		return false
	}
	for _, r := range roles {
		if r.Name == RoleAdmin && r.Active {
			return true
		}
	}
	return false
}
