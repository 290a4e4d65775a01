package token

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSignAndParseSession(t *testing.T) {
	p := NewHSProvider("segredo-de-teste", "loja-api", "loja-clientes")
	customerID := uuid.New()
	sessionID := uuid.New()

	tok, exp, err := p.SignSession(context.Background(), customerID, sessionID, time.Hour)
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}
	if exp.Before(time.Now()) {
		t.Errorf("expiry in the past: %v", exp)
	}

	st, err := p.ParseSession(context.Background(), tok)
	if err != nil {
		t.Fatalf("ParseSession: %v", err)
	}
	if st.CustomerID != customerID || st.SessionID != sessionID {
		t.Errorf("claims round trip mismatch: %+v", st)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer := NewHSProvider("segredo-a", "loja-api", "loja-clientes")
	verifier := NewHSProvider("segredo-b", "loja-api", "loja-clientes")

	tok, _, err := signer.SignSession(context.Background(), uuid.New(), uuid.New(), time.Hour)
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}
	if _, err := verifier.ParseSession(context.Background(), tok); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestParseRejectsWrongAudienceAndIssuer(t *testing.T) {
	signer := NewHSProvider("segredo", "loja-api", "loja-clientes")

	tok, _, err := signer.SignSession(context.Background(), uuid.New(), uuid.New(), time.Hour)
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	wrongAud := NewHSProvider("segredo", "loja-api", "outro-publico")
	if _, err := wrongAud.ParseSession(context.Background(), tok); err == nil {
		t.Error("wrong audience accepted")
	}

	wrongIss := NewHSProvider("segredo", "outra-api", "loja-clientes")
	if _, err := wrongIss.ParseSession(context.Background(), tok); err == nil {
		t.Error("wrong issuer accepted")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	p := NewHSProvider("segredo", "loja-api", "loja-clientes")
	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, _, err := p.SignSession(context.Background(), uuid.New(), uuid.New(), time.Hour)
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	verifier := NewHSProvider("segredo", "loja-api", "loja-clientes")
	if _, err := verifier.ParseSession(context.Background(), tok); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	p := NewHSProvider("segredo", "loja-api", "loja-clientes")
	if _, err := p.ParseSession(context.Background(), "nao-e-um-jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}
