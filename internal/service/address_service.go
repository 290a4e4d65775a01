package service

import (
	"context"
	"strings"

	"loja-api/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AddressInput struct {
	Logradouro  string `json:"logradouro" binding:"required"`
	Numero      string `json:"numero" binding:"required"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro" binding:"required"`
	Cidade      string `json:"cidade" binding:"required"`
	UF          string `json:"uf" binding:"required,len=2"`
	CEP         string `json:"cep" binding:"required"`
	Principal   bool   `json:"principal"`
}

// AddressService manages the customer address book. At most one address is
// principal at a time, enforced by the repository's unset-others transition.
type AddressService struct {
	addresses AddressRepo
	log       *zap.Logger
}

func NewAddressService(addresses AddressRepo, log *zap.Logger) *AddressService {
	return &AddressService{addresses: addresses, log: log}
}

func (s *AddressService) List(ctx context.Context, customerID uuid.UUID) ([]models.CustomerAddress, error) {
	return s.addresses.ListByCustomer(ctx, customerID)
}

func (s *AddressService) Create(ctx context.Context, customerID uuid.UUID, in AddressInput) (*models.CustomerAddress, error) {
	a := &models.CustomerAddress{
		CustomerID:  customerID,
		Logradouro:  in.Logradouro,
		Numero:      in.Numero,
		Complemento: in.Complemento,
		Bairro:      in.Bairro,
		Cidade:      in.Cidade,
		UF:          strings.ToUpper(in.UF),
		CEP:         in.CEP,
	}
	if err := s.addresses.Create(ctx, a); err != nil {
		return nil, err
	}
	if in.Principal {
		if err := s.addresses.SetPrincipal(ctx, customerID, a.ID); err != nil {
			return nil, err
		}
		a.Principal = true
	}
	return a, nil
}

func (s *AddressService) Update(ctx context.Context, customerID, addressID uuid.UUID, in AddressInput) (*models.CustomerAddress, error) {
	a, err := s.ownedAddress(ctx, customerID, addressID)
	if err != nil {
		return nil, err
	}

	a.Logradouro = in.Logradouro
	a.Numero = in.Numero
	a.Complemento = in.Complemento
	a.Bairro = in.Bairro
	a.Cidade = in.Cidade
	a.UF = strings.ToUpper(in.UF)
	a.CEP = in.CEP

	if err := s.addresses.Update(ctx, a); err != nil {
		return nil, err
	}
	if in.Principal && !a.Principal {
		if err := s.addresses.SetPrincipal(ctx, customerID, a.ID); err != nil {
			return nil, err
		}
		a.Principal = true
	}
	return a, nil
}

func (s *AddressService) Delete(ctx context.Context, customerID, addressID uuid.UUID) error {
	if _, err := s.ownedAddress(ctx, customerID, addressID); err != nil {
		return err
	}
	_, err := s.addresses.Delete(ctx, addressID)
	return err
}

func (s *AddressService) SetPrincipal(ctx context.Context, customerID, addressID uuid.UUID) error {
	if _, err := s.ownedAddress(ctx, customerID, addressID); err != nil {
		return err
	}
	return s.addresses.SetPrincipal(ctx, customerID, addressID)
}

func (s *AddressService) ownedAddress(ctx context.Context, customerID, addressID uuid.UUID) (*models.CustomerAddress, error) {
	a, err := s.addresses.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAddressNotFound
	}
	if a.CustomerID != customerID {
		return nil, ErrForbidden
	}
	return a, nil
}
