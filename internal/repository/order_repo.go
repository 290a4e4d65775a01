package repository

import (
	"context"
	"errors"

	"loja-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	StatusEntrega   *models.StatusEntrega
	StatusPagamento *models.StatusPagamento
	CustomerID      *uuid.UUID
	Limit           int
	Offset          int
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateStatusEntrega(ctx context.Context, id uuid.UUID, status models.StatusEntrega) error
	UpdateStatusPagamento(ctx context.Context, id uuid.UUID, status models.StatusPagamento) error
	UpdatePayLink(ctx context.Context, id uuid.UUID, link string) error
	List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error)

	WithTx(ctx context.Context, fn func(txOrders OrderRepo, txHistory HistoryRepo) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	// Itens are created through the association in the same transaction.
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Preload("Historico", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &o, err
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *orderRepo) UpdateStatusEntrega(ctx context.Context, id uuid.UUID, status models.StatusEntrega) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).Update("status_entrega", status).Error
}

func (r *orderRepo) UpdateStatusPagamento(ctx context.Context, id uuid.UUID, status models.StatusPagamento) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).Update("status_pagamento", status).Error
}

func (r *orderRepo) UpdatePayLink(ctx context.Context, id uuid.UUID, link string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).Update("link_pagamento", link).Error
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.StatusEntrega != nil {
		q = q.Where("status_entrega = ?", *f.StatusEntrega)
	}
	if f.StatusPagamento != nil {
		q = q.Where("status_pagamento = ?", *f.StatusPagamento)
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []*models.Order
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).
		Preload("Itens").Find(&list).Error
	return list, total, err
}

func (r *orderRepo) WithTx(ctx context.Context, fn func(OrderRepo, HistoryRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepo{db: tx}, &historyRepo{db: tx})
	})
}
