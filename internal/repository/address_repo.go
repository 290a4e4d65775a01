package repository

import (
	"context"
	"errors"

	"loja-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressRepo interface {
	Create(ctx context.Context, a *models.CustomerAddress) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CustomerAddress, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CustomerAddress, error)
	Update(ctx context.Context, a *models.CustomerAddress) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// SetPrincipal marks one address as principal and unsets every other
	// address of the same customer, in a single transaction.
	SetPrincipal(ctx context.Context, customerID, addressID uuid.UUID) error
}

type addressRepo struct{ db *gorm.DB }

func NewAddressRepo(db *gorm.DB) AddressRepo { return &addressRepo{db: db} }

func (r *addressRepo) Create(ctx context.Context, a *models.CustomerAddress) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *addressRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CustomerAddress, error) {
	var a models.CustomerAddress
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

func (r *addressRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CustomerAddress, error) {
	var list []models.CustomerAddress
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("principal DESC, created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *addressRepo) Update(ctx context.Context, a *models.CustomerAddress) error {
	return r.db.WithContext(ctx).Model(a).Updates(map[string]any{
		"logradouro":  a.Logradouro,
		"numero":      a.Numero,
		"complemento": a.Complemento,
		"bairro":      a.Bairro,
		"cidade":      a.Cidade,
		"uf":          a.UF,
		"cep":         a.CEP,
	}).Error
}

func (r *addressRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.CustomerAddress{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *addressRepo) SetPrincipal(ctx context.Context, customerID, addressID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CustomerAddress{}).
			Where("customer_id = ? AND principal = true", customerID).
			Update("principal", false).Error; err != nil {
			return err
		}
		res := tx.Model(&models.CustomerAddress{}).
			Where("id = ? AND customer_id = ?", addressID, customerID).
			Update("principal", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
