package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kenziahmos000/web-project-new/internal/auth"
	apperrors "github.com/kenziahmos000/web-project-new/internal/errors"
	"github.com/kenziahmos000/web-project-new/internal/model"
	"github.com/kenziahmos000/web-project-new/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Unknown email and wrong password produce this same value so a caller
	// cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when registering an existing email.
	ErrUserAlreadyExists = errors.New("user already exists with this email")
)

// RosterStats summarizes the user roster for the admin dashboard.
type RosterStats struct {
	TotalUsers   int `json:"totalUsers"`
	RegularUsers int `json:"regularUsers"`
	AdminUsers   int `json:"adminUsers"`
}

// UserRoster partitions all users into regular and admin groups.
type UserRoster struct {
	Regular []model.PublicUser `json:"regular"`
	Admins  []model.PublicUser `json:"admins"`
	Stats   RosterStats        `json:"-"`
}

// AuthService handles registration, login and identity resolution.
type AuthService interface {
	Register(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context, requesterID uuid.UUID) (*UserRoster, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a user with a bcrypt-hashed password and issues a session
// token. The email unique index is the authoritative duplicate guard; the
// lookup beforehand only provides the friendly error on the common path.
func (s *authService) Register(ctx context.Context, email, password string) (string, *model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a concurrent registration race.
			return "", nil, ErrUserAlreadyExists
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}

// Login authenticates a user and issues a fresh session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}

// Me resolves the token's identity against the user store.
func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ListUsers returns the full roster, admin only. The requester's role is
// read fresh from the store rather than trusted from token claims.
func (s *authService) ListUsers(ctx context.Context, requesterID uuid.UUID) (*UserRoster, error) {
	requester, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find requester: %w", err)
	}
	if !isElevated(requester) {
		return nil, apperrors.ErrAdminOnly
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	roster := &UserRoster{
		Regular: []model.PublicUser{},
		Admins:  []model.PublicUser{},
	}
	for _, u := range users {
		if u.IsAdmin {
			roster.Admins = append(roster.Admins, u.Public())
		} else {
			roster.Regular = append(roster.Regular, u.Public())
		}
	}
	roster.Stats = RosterStats{
		TotalUsers:   len(users),
		RegularUsers: len(roster.Regular),
		AdminUsers:   len(roster.Admins),
	}
	return roster, nil
}

// isElevated is the single capability predicate for admin-only operations.
// Elevation has no issuance pathway here; the flag is set directly in the
// store.
func isElevated(user *model.User) bool {
	return user.IsAdmin
}
