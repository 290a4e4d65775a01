package repository

import (
	"context"

	"loja-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryRepo is append-only: there is intentionally no update or delete.
type HistoryRepo interface {
	Append(ctx context.Context, h *models.HistoricoStatusEntrega) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.HistoricoStatusEntrega, error)
}

type historyRepo struct{ db *gorm.DB }

func NewHistoryRepo(db *gorm.DB) HistoryRepo { return &historyRepo{db: db} }

func (r *historyRepo) Append(ctx context.Context, h *models.HistoricoStatusEntrega) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *historyRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.HistoricoStatusEntrega, error) {
	var list []models.HistoricoStatusEntrega
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}
