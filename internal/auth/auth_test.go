package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mkwon-dev/riderpay/internal/models"
)

// memoryProfiles is an in-memory ProfileStorage for authenticator tests.
type memoryProfiles struct {
	byEmail map[string]*models.Profile
}

func newMemoryProfiles() *memoryProfiles {
	return &memoryProfiles{byEmail: make(map[string]*models.Profile)}
}

func (m *memoryProfiles) CreateProfile(_ context.Context, profile *models.Profile) error {
	if _, ok := m.byEmail[profile.Email]; ok {
		return errors.New("email taken")
	}
	if profile.ID == "" {
		profile.ID = fmt.Sprintf("profile-%d", len(m.byEmail)+1)
	}
	m.byEmail[profile.Email] = profile
	return nil
}

func (m *memoryProfiles) GetProfileByEmail(_ context.Context, email string) (*models.Profile, error) {
	profile, ok := m.byEmail[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return profile, nil
}

func (m *memoryProfiles) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	for _, profile := range m.byEmail {
		if profile.ID == id {
			return profile, nil
		}
	}
	return nil, errors.New("not found")
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a rider profile with a hashed password", func(t *testing.T) {
		a := NewPasswordAuthenticator(newMemoryProfiles())

		profile, err := a.Register(ctx, "rider@riderpay.kr", "김재성", "correct horse")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if profile.Role != models.RoleRider {
			t.Errorf("expected rider role, got %s", profile.Role)
		}
		if profile.TenantID != "" {
			t.Errorf("new profiles must not carry a tenant, got %q", profile.TenantID)
		}
		if profile.PasswordHash == "correct horse" || profile.PasswordHash == "" {
			t.Error("password stored without hashing")
		}
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		a := NewPasswordAuthenticator(newMemoryProfiles())
		if _, err := a.Register(ctx, "x@y.kr", "x", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		a := NewPasswordAuthenticator(newMemoryProfiles())
		if _, err := a.Register(ctx, "dup@riderpay.kr", "first", "password1"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if _, err := a.Register(ctx, "dup@riderpay.kr", "second", "password2"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemoryProfiles())

	registered, err := a.Register(ctx, "rider@riderpay.kr", "김재성", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		profile, err := a.Authenticate(ctx, "rider@riderpay.kr", "correct horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if profile.ID != registered.ID {
			t.Errorf("expected profile %s, got %s", registered.ID, profile.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "rider@riderpay.kr", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "ghost@riderpay.kr", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	profile := &models.Profile{
		ID:       "profile-1",
		Email:    "admin@riderpay.kr",
		Role:     models.RoleAdmin,
		TenantID: "tenant-1",
	}

	t.Run("round-trips claims", func(t *testing.T) {
		m := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

		token, err := m.Generate(profile)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.ProfileID != "profile-1" || claims.Role != string(models.RoleAdmin) || claims.TenantID != "tenant-1" {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		m := NewJWTManager("test-secret-key-32-bytes-long!!!", -time.Hour)

		token, err := m.Generate(profile)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects tokens signed with a different secret", func(t *testing.T) {
		m := NewJWTManager("secret-one", time.Hour)
		other := NewJWTManager("secret-two", time.Hour)

		token, err := m.Generate(profile)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		m := NewJWTManager("secret", time.Hour)
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
