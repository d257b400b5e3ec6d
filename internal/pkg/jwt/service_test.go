package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := newTestService()
	profileID := uuid.New()

	tok, err := s.GenerateAccessToken(profileID, "candidate")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.ProfileID != profileID {
		t.Fatalf("expected profile id %s, got %s", profileID, claims.ProfileID)
	}
	if claims.Role != "candidate" {
		t.Fatalf("expected role candidate, got %s", claims.Role)
	}
	if s.IsRefreshToken(claims) {
		t.Fatalf("access token must not validate as refresh")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	s := newTestService()
	profileID := uuid.New()

	tok, err := s.GenerateRefreshToken(profileID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !s.IsRefreshToken(claims) {
		t.Fatalf("expected refresh token type")
	}
	if claims.Role != "" {
		t.Fatalf("refresh token must not carry a role, got %s", claims.Role)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	s := newTestService()
	other := NewHMACService("other-access", "other-refresh", time.Minute, time.Minute)

	tok, err := s.GenerateAccessToken(uuid.New(), "employer")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	s := newTestService()
	s.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := s.GenerateAccessToken(uuid.New(), "candidate")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	s.now = time.Now
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	s := newTestService()
	if _, err := s.ValidateToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestGenerate_MissingSecret(t *testing.T) {
	s := NewHMACService("", "", 0, 0)
	if _, err := s.GenerateAccessToken(uuid.New(), "candidate"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
