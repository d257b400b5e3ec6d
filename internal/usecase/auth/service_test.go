package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"pharmaflux/internal/domain/account"
	"pharmaflux/internal/domain/profile"
)

type mockAccountRepo struct {
	byEmail map[string]account.Account

	createErr error
	existsErr error
}

func (m *mockAccountRepo) Create(_ context.Context, a account.Account) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.byEmail == nil {
		m.byEmail = map[string]account.Account{}
	}
	m.byEmail[a.Email] = a
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id uuid.UUID) (account.Account, error) {
	for _, a := range m.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}

func (m *mockAccountRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.byEmail[email]
	return ok, nil
}

type mockProfileRepo struct {
	byID map[uuid.UUID]profile.Profile
}

func (m *mockProfileRepo) Create(_ context.Context, p profile.Profile) error {
	if m.byID == nil {
		m.byID = map[uuid.UUID]profile.Profile{}
	}
	m.byID[p.ID] = p
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) GetByAuthID(_ context.Context, authID uuid.UUID) (profile.Profile, error) {
	for _, p := range m.byID {
		if p.AuthID == authID {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (m *mockProfileRepo) Update(context.Context, uuid.UUID, profile.UpdateInput) error { return nil }

func (m *mockProfileRepo) ListCandidates(context.Context) ([]profile.Profile, error) {
	return nil, nil
}

func validCandidate() RegisterInput {
	return RegisterInput{
		Email:    "marie@example.test",
		Password: "long-enough-password",
		Role:     profile.RoleCandidate,
		FullName: "Marie Dubois",
	}
}

func TestRegister_Candidate(t *testing.T) {
	s := NewService(&mockAccountRepo{}, &mockProfileRepo{})

	p, err := s.Register(context.Background(), validCandidate())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Role != profile.RoleCandidate {
		t.Fatalf("expected candidate role, got %s", p.Role)
	}
	if p.Email != "marie@example.test" {
		t.Fatalf("unexpected email %s", p.Email)
	}
	if p.AuthID == uuid.Nil {
		t.Fatalf("expected profile linked to an account")
	}
}

func TestRegister_NormalizesEmail(t *testing.T) {
	s := NewService(&mockAccountRepo{}, &mockProfileRepo{})

	in := validCandidate()
	in.Email = "  Marie@Example.Test "
	p, err := s.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Email != "marie@example.test" {
		t.Fatalf("expected lowercased email, got %s", p.Email)
	}
}

func TestRegister_Validation(t *testing.T) {
	s := NewService(&mockAccountRepo{}, &mockProfileRepo{})

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"empty email", func(in *RegisterInput) { in.Email = " " }},
		{"short password", func(in *RegisterInput) { in.Password = "short" }},
		{"bad role", func(in *RegisterInput) { in.Role = "admin" }},
		{"employer without company", func(in *RegisterInput) {
			in.Role = profile.RoleEmployer
			in.CompanyName = ""
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCandidate()
			tc.mutate(&in)
			if _, err := s.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	accounts := &mockAccountRepo{}
	s := NewService(accounts, &mockProfileRepo{})

	if _, err := s.Register(context.Background(), validCandidate()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := s.Register(context.Background(), validCandidate()); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	accounts := &mockAccountRepo{}
	s := NewService(accounts, &mockProfileRepo{})

	created, err := s.Register(context.Background(), validCandidate())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	p, err := s.Login(context.Background(), LoginInput{Email: "MARIE@example.test", Password: "long-enough-password"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if p.ID != created.ID {
		t.Fatalf("expected profile %s, got %s", created.ID, p.ID)
	}

	if _, err := s.Login(context.Background(), LoginInput{Email: "marie@example.test", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := s.Login(context.Background(), LoginInput{Email: "nobody@example.test", Password: "whatever-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
