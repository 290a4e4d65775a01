package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"loja-api/internal/models"
	"loja-api/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func activeCustomer() *models.Customer {
	return &models.Customer{
		ID:    uuid.New(),
		Nome:  "Maria Silva",
		Email: "maria@example.com",
		Senha: "hashed:senha-forte",
		Ativo: true,
	}
}

func newAuthService(customers *mockCustomerRepo, sessions *mockSessionRepo, limiter *mockLimiter) *AuthService {
	return NewAuthService(customers, sessions, &mockHasher{}, &mockTokens{},
		limiter, 30*24*time.Hour, zap.NewNop())
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	customers := &mockCustomerRepo{
		existsByEmail: func(_ context.Context, _ string) (bool, error) { return true, nil },
	}
	svc := newAuthService(customers, &mockSessionRepo{}, &mockLimiter{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Nome: "Maria", Email: "maria@example.com", Senha: "senha-forte",
	})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	var created *models.Customer
	customers := &mockCustomerRepo{
		create: func(_ context.Context, c *models.Customer) error {
			c.ID = uuid.New()
			created = c
			return nil
		},
	}
	svc := newAuthService(customers, &mockSessionRepo{}, &mockLimiter{})

	if _, err := svc.Register(context.Background(), RegisterInput{
		Nome: "Maria", Email: "maria@example.com", Senha: "senha-forte",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.Senha == "senha-forte" || created.Senha == "" {
		t.Errorf("plaintext password stored: %q", created.Senha)
	}
	if !created.Ativo {
		t.Error("new customers must start active")
	}
}

func TestLoginSuccess(t *testing.T) {
	customer := activeCustomer()
	customers := &mockCustomerRepo{
		getByEmail: func(_ context.Context, _ string) (*models.Customer, error) { return customer, nil },
	}
	var created *models.CustomerSession
	pruned := false
	sessions := &mockSessionRepo{
		create: func(_ context.Context, s *models.CustomerSession) error {
			created = s
			return nil
		},
		pruneOldest: func(_ context.Context, _ uuid.UUID, keep int) (int64, error) {
			if keep != 5 {
				t.Errorf("prune keep = %d, want 5", keep)
			}
			pruned = true
			return 0, nil
		},
	}
	resetKey := ""
	limiter := &mockLimiter{
		reset: func(_ context.Context, key string) error {
			resetKey = key
			return nil
		},
	}

	svc := newAuthService(customers, sessions, limiter)
	ip := "203.0.113.7"
	got, token, exp, err := svc.Login(context.Background(), "Maria@Example.com", "senha-forte",
		ClientMeta{IP: &ip})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if got.ID != customer.ID || token == "" || exp.IsZero() {
		t.Errorf("unexpected login result: %v %q %v", got.ID, token, exp)
	}
	if created == nil {
		t.Fatal("session row not created")
	}
	if created.TokenHash == token || created.TokenHash != util.Sha256Base64URL(token) {
		t.Error("session must store the token hash, not the token")
	}
	if !pruned {
		t.Error("old sessions must be pruned after login")
	}
	if resetKey != "203.0.113.7:maria@example.com" {
		t.Errorf("limiter reset key = %q", resetKey)
	}
}

func TestLoginRateLimited(t *testing.T) {
	customers := &mockCustomerRepo{
		getByEmail: func(_ context.Context, _ string) (*models.Customer, error) {
			t.Error("credentials must not be checked when the limit is hit")
			return nil, nil
		},
	}
	limiter := &mockLimiter{
		allow: func(_ context.Context, key string) (bool, error) { return false, nil },
	}

	svc := newAuthService(customers, &mockSessionRepo{}, limiter)
	_, _, _, err := svc.Login(context.Background(), "maria@example.com", "qualquer",
		ClientMeta{})
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Errorf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestLoginLimiterOutageFailsOpen(t *testing.T) {
	customer := activeCustomer()
	customers := &mockCustomerRepo{
		getByEmail: func(_ context.Context, _ string) (*models.Customer, error) { return customer, nil },
	}
	limiter := &mockLimiter{
		allow: func(_ context.Context, _ string) (bool, error) {
			return false, errors.New("redis down")
		},
	}

	svc := newAuthService(customers, &mockSessionRepo{}, limiter)
	if _, _, _, err := svc.Login(context.Background(), "maria@example.com", "senha-forte",
		ClientMeta{}); err != nil {
		t.Errorf("a broken limiter must not block logins: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	customer := activeCustomer()
	customers := &mockCustomerRepo{
		getByEmail: func(_ context.Context, _ string) (*models.Customer, error) { return customer, nil },
	}
	svc := newAuthService(customers, &mockSessionRepo{}, &mockLimiter{})

	_, _, _, err := svc.Login(context.Background(), "maria@example.com", "errada", ClientMeta{})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(&mockCustomerRepo{}, &mockSessionRepo{}, &mockLimiter{})
	_, _, _, err := svc.Login(context.Background(), "ninguem@example.com", "senha", ClientMeta{})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveCustomer(t *testing.T) {
	customer := activeCustomer()
	customer.Ativo = false
	customers := &mockCustomerRepo{
		getByEmail: func(_ context.Context, _ string) (*models.Customer, error) { return customer, nil },
	}
	svc := newAuthService(customers, &mockSessionRepo{}, &mockLimiter{})

	_, _, _, err := svc.Login(context.Background(), "maria@example.com", "senha-forte", ClientMeta{})
	if !errors.Is(err, ErrCustomerInactive) {
		t.Errorf("expected ErrCustomerInactive, got %v", err)
	}
}

func TestVerifySessionChecksAllThree(t *testing.T) {
	customer := activeCustomer()
	sessionID := uuid.New()
	token := "tok-" + sessionID.String()

	session := &models.CustomerSession{
		ID:         sessionID,
		CustomerID: customer.ID,
		TokenHash:  util.Sha256Base64URL(token),
		ExpiresAt:  time.Now().Add(time.Hour),
	}

	customers := &mockCustomerRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (*models.Customer, error) { return customer, nil },
	}
	sessions := &mockSessionRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (*models.CustomerSession, error) { return session, nil },
	}
	tokens := &mockTokens{
		parse: func(_ context.Context, tk string) (*SessionToken, error) {
			if tk != token {
				return nil, ErrSessionInvalid
			}
			return &SessionToken{CustomerID: customer.ID, SessionID: sessionID}, nil
		},
	}
	svc := NewAuthService(customers, sessions, &mockHasher{}, tokens,
		&mockLimiter{}, time.Hour, zap.NewNop())

	if _, _, err := svc.VerifySession(context.Background(), token); err != nil {
		t.Fatalf("valid session rejected: %v", err)
	}

	// Bad signature.
	if _, _, err := svc.VerifySession(context.Background(), "forged"); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("forged token: expected ErrSessionInvalid, got %v", err)
	}

	// Session row gone (logged out).
	sessions.getByID = func(_ context.Context, _ uuid.UUID) (*models.CustomerSession, error) {
		return nil, nil
	}
	if _, _, err := svc.VerifySession(context.Background(), token); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("deleted session: expected ErrSessionInvalid, got %v", err)
	}

	// Expired row.
	expired := *session
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	sessions.getByID = func(_ context.Context, _ uuid.UUID) (*models.CustomerSession, error) {
		return &expired, nil
	}
	if _, _, err := svc.VerifySession(context.Background(), token); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("expired session: expected ErrSessionInvalid, got %v", err)
	}

	// Token hash mismatch (rotated token replaying an old session id).
	mismatched := *session
	mismatched.TokenHash = "outro-hash"
	sessions.getByID = func(_ context.Context, _ uuid.UUID) (*models.CustomerSession, error) {
		return &mismatched, nil
	}
	if _, _, err := svc.VerifySession(context.Background(), token); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("hash mismatch: expected ErrSessionInvalid, got %v", err)
	}

	// Customer deactivated after login.
	sessions.getByID = func(_ context.Context, _ uuid.UUID) (*models.CustomerSession, error) {
		return session, nil
	}
	customer.Ativo = false
	if _, _, err := svc.VerifySession(context.Background(), token); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("inactive customer: expected ErrSessionInvalid, got %v", err)
	}
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	customer := activeCustomer()
	var newHash string
	customers := &mockCustomerRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (*models.Customer, error) { return customer, nil },
		updatePassword: func(_ context.Context, _ uuid.UUID, hash string) error {
			newHash = hash
			return nil
		},
	}
	revoked := false
	sessions := &mockSessionRepo{
		deleteAllByCustomer: func(_ context.Context, id uuid.UUID) (int64, error) {
			if id != customer.ID {
				t.Errorf("revoked sessions of wrong customer: %s", id)
			}
			revoked = true
			return 3, nil
		},
	}

	svc := newAuthService(customers, sessions, &mockLimiter{})
	if err := svc.ChangePassword(context.Background(), customer.ID, "senha-forte", "nova-senha-123"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if newHash == "" || newHash == "nova-senha-123" {
		t.Errorf("new password not hashed: %q", newHash)
	}
	if !revoked {
		t.Error("all sessions must be revoked after a password change")
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	customer := activeCustomer()
	customers := &mockCustomerRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (*models.Customer, error) { return customer, nil },
	}
	sessions := &mockSessionRepo{
		deleteAllByCustomer: func(_ context.Context, _ uuid.UUID) (int64, error) {
			t.Error("sessions must survive a failed password change")
			return 0, nil
		},
	}

	svc := newAuthService(customers, sessions, &mockLimiter{})
	err := svc.ChangePassword(context.Background(), customer.ID, "errada", "nova-senha-123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginKey(t *testing.T) {
	ip := "198.51.100.4"
	if got := loginKey(&ip, " Maria@Example.COM "); got != "198.51.100.4:maria@example.com" {
		t.Errorf("loginKey = %q", got)
	}
	if got := loginKey(nil, "maria@example.com"); got != "unknown:maria@example.com" {
		t.Errorf("loginKey without ip = %q", got)
	}
}
