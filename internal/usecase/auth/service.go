package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pharmaflux/internal/domain/account"
	"pharmaflux/internal/domain/profile"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
	Role     profile.Role
	FullName string

	// Employer registration only.
	CompanyName        string
	RegistrationNumber string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (profile.Profile, error)
	Login(ctx context.Context, in LoginInput) (profile.Profile, error)
}

type Service struct {
	accounts account.Repository
	profiles profile.Repository
}

func NewService(accounts account.Repository, profiles profile.Repository) *Service {
	return &Service{accounts: accounts, profiles: profiles}
}

// Register creates the authentication identity and its profile. The role
// is fixed here and can never change afterwards.
func (s *Service) Register(ctx context.Context, in RegisterInput) (profile.Profile, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return profile.Profile{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return profile.Profile{}, ErrInvalidInput
	}
	if !in.Role.Valid() {
		return profile.Profile{}, ErrInvalidInput
	}
	if in.Role == profile.RoleEmployer && strings.TrimSpace(in.CompanyName) == "" {
		return profile.Profile{}, ErrInvalidInput
	}

	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	if exists {
		return profile.Profile{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}

	acct := account.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		exists, exErr := s.accounts.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return profile.Profile{}, ErrEmailAlreadyRegistered
		}
		return profile.Profile{}, ErrInternal
	}

	p := profile.Profile{
		ID:                 uuid.New(),
		AuthID:             acct.ID,
		Role:               in.Role,
		FullName:           strings.TrimSpace(in.FullName),
		Email:              email,
		CompanyName:        strings.TrimSpace(in.CompanyName),
		RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return profile.Profile{}, ErrInternal
	}

	created, err := s.profiles.GetByID(ctx, p.ID)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	return created, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (profile.Profile, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return profile.Profile{}, ErrInvalidCredentials
	}

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return profile.Profile{}, ErrInvalidCredentials
		}
		return profile.Profile{}, ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(in.Password)) != nil {
		return profile.Profile{}, ErrInvalidCredentials
	}

	p, err := s.profiles.GetByAuthID(ctx, acct.ID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrInvalidCredentials
		}
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}
