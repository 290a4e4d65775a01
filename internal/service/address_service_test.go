package service

import (
	"context"
	"errors"
	"testing"

	"loja-api/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func sampleAddressInput() AddressInput {
	return AddressInput{
		Logradouro: "Rua das Flores",
		Numero:     "100",
		Bairro:     "Centro",
		Cidade:     "São Paulo",
		UF:         "sp",
		CEP:        "01000-000",
	}
}

func TestAddressCreatePrincipal(t *testing.T) {
	customerID := uuid.New()
	var setFor uuid.UUID
	repo := &mockAddressRepo{
		create: func(_ context.Context, a *models.CustomerAddress) error {
			a.ID = uuid.New()
			return nil
		},
		setPrincipal: func(_ context.Context, _ uuid.UUID, addressID uuid.UUID) error {
			setFor = addressID
			return nil
		},
	}
	svc := NewAddressService(repo, zap.NewNop())

	in := sampleAddressInput()
	in.Principal = true
	a, err := svc.Create(context.Background(), customerID, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.UF != "SP" {
		t.Errorf("UF not uppercased: %q", a.UF)
	}
	if !a.Principal || setFor != a.ID {
		t.Error("principal flag must go through SetPrincipal")
	}
}

func TestAddressUpdateRejectsForeignAddress(t *testing.T) {
	owner := uuid.New()
	intruder := uuid.New()
	addressID := uuid.New()
	repo := &mockAddressRepo{
		getByID: func(_ context.Context, id uuid.UUID) (*models.CustomerAddress, error) {
			return &models.CustomerAddress{ID: id, CustomerID: owner}, nil
		},
	}
	svc := NewAddressService(repo, zap.NewNop())

	_, err := svc.Update(context.Background(), intruder, addressID, sampleAddressInput())
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestAddressDeleteUnknown(t *testing.T) {
	svc := NewAddressService(&mockAddressRepo{}, zap.NewNop())

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrAddressNotFound) {
		t.Errorf("expected ErrAddressNotFound, got %v", err)
	}
}
