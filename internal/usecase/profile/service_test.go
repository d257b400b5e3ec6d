package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"pharmaflux/internal/domain/profile"
)

type mockRepo struct {
	byID       map[uuid.UUID]profile.Profile
	lastUpdate profile.UpdateInput
}

func (m *mockRepo) Create(_ context.Context, p profile.Profile) error {
	if m.byID == nil {
		m.byID = map[uuid.UUID]profile.Profile{}
	}
	m.byID[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) GetByAuthID(_ context.Context, authID uuid.UUID) (profile.Profile, error) {
	for _, p := range m.byID {
		if p.AuthID == authID {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, id uuid.UUID, in profile.UpdateInput) error {
	m.lastUpdate = in
	p := m.byID[id]
	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.SkillTags != nil {
		p.SkillTags = in.SkillTags
	}
	if in.CompanyName != nil {
		p.CompanyName = *in.CompanyName
	}
	m.byID[id] = p
	return nil
}

func (m *mockRepo) ListCandidates(context.Context) ([]profile.Profile, error) { return nil, nil }

func strPtr(s string) *string { return &s }

func TestUpdateMe_CandidateCannotSetEmployerFields(t *testing.T) {
	p := profile.Profile{ID: uuid.New(), Role: profile.RoleCandidate}
	repo := &mockRepo{byID: map[uuid.UUID]profile.Profile{p.ID: p}}
	s := NewService(repo)

	updated, err := s.UpdateMe(context.Background(), p.ID, profile.UpdateInput{
		SkillTags:   []string{"pharmacy"},
		CompanyName: strPtr("Sneaky SARL"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.lastUpdate.CompanyName != nil {
		t.Fatalf("employer fields must be stripped for candidates")
	}
	if len(updated.SkillTags) != 1 || updated.SkillTags[0] != "pharmacy" {
		t.Fatalf("candidate fields must pass through, got %v", updated.SkillTags)
	}
}

func TestUpdateMe_EmployerCannotSetCandidateFields(t *testing.T) {
	p := profile.Profile{ID: uuid.New(), Role: profile.RoleEmployer}
	repo := &mockRepo{byID: map[uuid.UUID]profile.Profile{p.ID: p}}
	s := NewService(repo)

	_, err := s.UpdateMe(context.Background(), p.ID, profile.UpdateInput{
		SkillTags:   []string{"pharmacy"},
		CompanyName: strPtr("Pharmacie Centrale"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.lastUpdate.SkillTags != nil {
		t.Fatalf("candidate fields must be stripped for employers")
	}
	if repo.lastUpdate.CompanyName == nil || *repo.lastUpdate.CompanyName != "Pharmacie Centrale" {
		t.Fatalf("employer fields must pass through")
	}
}

func TestUpdateMe_UnknownProfile(t *testing.T) {
	s := NewService(&mockRepo{})
	if _, err := s.UpdateMe(context.Background(), uuid.New(), profile.UpdateInput{}); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
}
