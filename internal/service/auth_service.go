package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hc2580411/vwms/internal/config"
	"github.com/hc2580411/vwms/internal/dto"
	"github.com/hc2580411/vwms/internal/infra"
	"github.com/hc2580411/vwms/internal/model"
	"github.com/hc2580411/vwms/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// adminLockWindow is how long an admin session blocks a second admin login.
const adminLockWindow = 30 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAdminLocked means another admin session was active within the lock
	// window. Employee accounts are never locked out this way.
	ErrAdminLocked = errors.New("admin account is in use by another session")

	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, userID uint) error
	Register(ctx context.Context, req dto.RegisterRequest) (dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
}

type authService struct {
	users     repository.UserRepository
	snapshots *infra.SnapshotStore
	cfg       *config.Config
}

func NewAuthService(users repository.UserRepository, snapshots *infra.SnapshotStore, cfg *config.Config) AuthService {
	return &authService{users: users, snapshots: snapshots, cfg: cfg}
}

func mapUser(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		Name:       u.Name,
		IsLoggedIn: u.IsLoggedIn,
		LastActive: u.LastActive,
	}
}

func (s *authService) generateToken(u *model.User) (string, int, error) {
	expiresIn := s.cfg.JWTExpirationHours * 3600
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"role":     u.Role,
		"exp":      time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresIn, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	// The lock applies only to admins, and only while the previous session
	// looks alive. A stale flag (crash without logout) expires on its own.
	if u.Role == model.RoleAdmin && u.IsLoggedIn && u.LastActive != nil &&
		time.Since(*u.LastActive) < adminLockWindow {
		return dto.LoginResponse{}, ErrAdminLocked
	}

	now := time.Now().UTC()
	u.IsLoggedIn = true
	u.LastActive = &now
	if err := s.users.Update(ctx, u); err != nil {
		return dto.LoginResponse{}, err
	}
	if err := s.snapshots.Save(); err != nil {
		return dto.LoginResponse{}, fmt.Errorf("persist snapshot: %w", err)
	}

	token, expiresIn, err := s.generateToken(u)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	return dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
		User:        mapUser(*u),
	}, nil
}

func (s *authService) Logout(ctx context.Context, userID uint) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	u.IsLoggedIn = false
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}
	if err := s.snapshots.Save(); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// Register creates an employee account. Admin accounts are seed-only.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.UserResponse, error) {
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return dto.UserResponse{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("hash password: %w", err)
	}
	u := model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         model.RoleEmployee,
		Name:         req.Name,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return dto.UserResponse{}, err
	}
	if err := s.snapshots.Save(); err != nil {
		return dto.UserResponse{}, fmt.Errorf("persist snapshot: %w", err)
	}
	return mapUser(u), nil
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, mapUser(u))
	}
	return resp, nil
}
