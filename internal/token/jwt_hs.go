package token

import (
	"context"
	"errors"
	"time"

	"loja-api/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// HSProvider signs customer session tokens with HS256.
type HSProvider struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewHSProvider(secret, issuer, audience string) *HSProvider {
	return &HSProvider{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}
}

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

func (p *HSProvider) SignSession(ctx context.Context, customerID, sessionID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	now := p.now()
	exp := now.Add(ttl)

	claims := sessionClaims{
		SID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   customerID.String(),
			Audience:  []string{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(p.secret)
	return signed, exp, err
}

func (p *HSProvider) ParseSession(ctx context.Context, token string) (*service.SessionToken, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithAudience(p.audience), jwt.WithIssuer(p.issuer))
	if err != nil {
		return nil, err
	}
	sc, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	customerID, err := uuid.Parse(sc.Subject)
	if err != nil {
		return nil, err
	}
	sessionID, err := uuid.Parse(sc.SID)
	if err != nil {
		return nil, err
	}

	return &service.SessionToken{
		CustomerID: customerID,
		SessionID:  sessionID,
		Exp:        sc.ExpiresAt.Time,
	}, nil
}
