package repository

import (
	"context"

	"loja-api/internal/models"

	"gorm.io/gorm"
)

// NotificationRepo stores raw gateway webhooks. Append-only.
type NotificationRepo interface {
	Create(ctx context.Context, n *models.PaymentNotification) error
	ListByReference(ctx context.Context, referenceID string) ([]models.PaymentNotification, error)
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepo(db *gorm.DB) NotificationRepo { return &notificationRepo{db: db} }

func (r *notificationRepo) Create(ctx context.Context, n *models.PaymentNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListByReference(ctx context.Context, referenceID string) ([]models.PaymentNotification, error) {
	var list []models.PaymentNotification
	err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}
