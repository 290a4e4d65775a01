package service

import (
	"context"
	"strings"
	"time"

	"loja-api/internal/models"
	"loja-api/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxSessionsPerCustomer = 5

type RegisterInput struct {
	Nome        string `json:"nome" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Senha       string `json:"senha" binding:"required,min=8"`
	CPF         string `json:"cpf,omitempty"`
	Telefone    string `json:"telefone,omitempty"`
	AceitaEmail bool   `json:"aceitaEmail"`
	AceitaSMS   bool   `json:"aceitaSms"`
}

type AuthService struct {
	customers CustomerRepo
	sessions  SessionRepo
	hasher    PasswordHasher
	tokens    TokenProvider
	limiter   Limiter

	sessionTTL time.Duration
	now        func() time.Time
	log        *zap.Logger
}

func NewAuthService(
	customers CustomerRepo,
	sessions SessionRepo,
	hasher PasswordHasher,
	tokens TokenProvider,
	limiter Limiter,
	sessionTTL time.Duration,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		customers:  customers,
		sessions:   sessions,
		hasher:     hasher,
		tokens:     tokens,
		limiter:    limiter,
		sessionTTL: sessionTTL,
		now:        time.Now,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.Customer, error) {
	exists, err := s.customers.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(in.Senha)
	if err != nil {
		return nil, err
	}

	c := &models.Customer{
		Nome:        in.Nome,
		Email:       in.Email,
		Senha:       hash,
		Telefone:    in.Telefone,
		AceitaEmail: in.AceitaEmail,
		AceitaSMS:   in.AceitaSMS,
		Ativo:       true,
	}
	if cpf := strings.TrimSpace(in.CPF); cpf != "" {
		c.CPF = &cpf
	}

	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("customer registered", zap.String("customer_id", c.ID.String()))
	return c, nil
}

// Login verifies credentials behind a per-`ip:identifier` rate limit:
// 5 attempts per window, the 6th is refused before the password is even
// looked at. A successful login resets the counter.
func (s *AuthService) Login(ctx context.Context, email, senha string, meta ClientMeta) (*models.Customer, string, time.Time, error) {
	key := loginKey(meta.IP, email)

	allowed, err := s.limiter.Allow(ctx, key)
	if err != nil {
		// A broken limiter backend must not lock every customer out.
		s.log.Warn("rate limiter unavailable, allowing attempt", zap.Error(err))
		allowed = true
	}
	if !allowed {
		return nil, "", time.Time{}, ErrTooManyAttempts
	}

	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if customer == nil || !s.hasher.Compare(customer.Senha, senha) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !customer.Ativo {
		return nil, "", time.Time{}, ErrCustomerInactive
	}

	now := s.now()
	session := &models.CustomerSession{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		IP:         meta.IP,
		UserAgent:  meta.UserAgent,
		ExpiresAt:  now.Add(s.sessionTTL),
		CreatedAt:  now,
		LastSeenAt: now,
	}

	token, exp, err := s.tokens.SignSession(ctx, customer.ID, session.ID, s.sessionTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	session.TokenHash = util.Sha256Base64URL(token)

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", time.Time{}, err
	}
	if _, err := s.sessions.PruneOldest(ctx, customer.ID, maxSessionsPerCustomer); err != nil {
		s.log.Warn("session prune failed", zap.Error(err))
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		s.log.Warn("rate limiter reset failed", zap.Error(err))
	}

	return customer, token, exp, nil
}

// VerifySession requires all three: valid signature, live session row, and
// an active customer.
func (s *AuthService) VerifySession(ctx context.Context, token string) (*models.Customer, *SessionToken, error) {
	st, err := s.tokens.ParseSession(ctx, token)
	if err != nil {
		return nil, nil, ErrSessionInvalid
	}

	session, err := s.sessions.GetByID(ctx, st.SessionID)
	if err != nil {
		return nil, nil, err
	}
	now := s.now()
	if session == nil || now.After(session.ExpiresAt) {
		return nil, nil, ErrSessionInvalid
	}
	if session.TokenHash != util.Sha256Base64URL(token) {
		return nil, nil, ErrSessionInvalid
	}

	customer, err := s.customers.GetByID(ctx, st.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil || !customer.Ativo {
		return nil, nil, ErrSessionInvalid
	}

	if err := s.sessions.Touch(ctx, session.ID, now); err != nil {
		s.log.Warn("session touch failed", zap.Error(err))
	}
	return customer, st, nil
}

func (s *AuthService) Customer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	_, err := s.sessions.Delete(ctx, sessionID)
	return err
}

// ChangePassword verifies the current password and revokes every session
// of the customer.
func (s *AuthService) ChangePassword(ctx context.Context, customerID uuid.UUID, atual, nova string) error {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrNotFound
	}
	if !s.hasher.Compare(customer.Senha, atual) {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(nova)
	if err != nil {
		return err
	}
	if err := s.customers.UpdatePassword(ctx, customerID, hash); err != nil {
		return err
	}

	if _, err := s.sessions.DeleteAllByCustomer(ctx, customerID); err != nil {
		s.log.Error("failed to revoke sessions after password change",
			zap.String("customer_id", customerID.String()), zap.Error(err))
		return err
	}
	return nil
}

func loginKey(ip *string, identifier string) string {
	addr := "unknown"
	if ip != nil && *ip != "" {
		addr = *ip
	}
	return addr + ":" + strings.ToLower(strings.TrimSpace(identifier))
}
