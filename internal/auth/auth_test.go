package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/storage"
)

type memoryUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, email)
}

func (m *memoryUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
}

// lateUsers hides existing accounts from lookups, so Register only learns
// about a duplicate at insert time, as when two registrations race.
type lateUsers struct {
	*memoryUsers
}

func (l lateUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, email)
}

func (l lateUsers) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := l.memoryUsers.GetUserByEmail(ctx, user.Email); err == nil {
		return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, user.Email)
	}
	return l.memoryUsers.CreateUser(ctx, user)
}

func TestRegisterDuplicateAtInsert(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(lateUsers{newMemoryUsers()}).WithCost(bcrypt.MinCost)

	if _, err := a.Register(ctx, "ana@example.com", "Ana", "correct-horse"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := a.Register(ctx, "ana@example.com", "Ana", "correct-horse"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemoryUsers()).WithCost(bcrypt.MinCost)

	user, err := a.Register(ctx, " Ana@Example.com ", "Ana", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in clear text")
	}

	if _, err := a.Register(ctx, "ana@example.com", "Ana 2", "another-pass"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
	if _, err := a.Register(ctx, "bo@example.com", "Bo", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := a.Register(ctx, "not-an-email", "Bo", "long-enough"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}

	got, err := a.Authenticate(ctx, "ANA@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated wrong user: %s", got.ID)
	}

	if _, err := a.Authenticate(ctx, "ana@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("0123456789abcdef0123", time.Hour)
	user := models.NewUser("ana@example.com", "Ana", "hash")

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	id := claims.Identity()
	if id.UserID != user.ID || id.Email != user.Email {
		t.Errorf("unexpected identity: %+v", id)
	}

	other := NewJWTManager("a-different-secret-value", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong key, got %v", err)
	}
	if _, err := m.Validate("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestJWTManagerExpired(t *testing.T) {
	m := NewJWTManager("0123456789abcdef0123", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.Generate(models.NewUser("ana@example.com", "Ana", "hash"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	m.now = time.Now
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTManagerRejectsOtherAlgorithms(t *testing.T) {
	m := NewJWTManager("0123456789abcdef0123", time.Hour)
	claims := &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("0123456789abcdef0123"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for HS512 token, got %v", err)
	}
}
