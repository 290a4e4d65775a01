package repository

import (
	"context"
	"errors"
	"time"

	"loja-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepo interface {
	Create(ctx context.Context, s *models.CustomerSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CustomerSession, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteAllByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	// PruneOldest keeps only the `keep` most recent sessions for a customer.
	PruneOldest(ctx context.Context, customerID uuid.UUID, keep int) (int64, error)
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepo(db *gorm.DB) SessionRepo { return &sessionRepo{db: db} }

func (r *sessionRepo) Create(ctx context.Context, s *models.CustomerSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CustomerSession, error) {
	var s models.CustomerSession
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *sessionRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.CustomerSession{}).
		Where("id = ?", id).Update("last_seen_at", at).Error
}

func (r *sessionRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.CustomerSession{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *sessionRepo) DeleteAllByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.CustomerSession{}, "customer_id = ?", customerID)
	return res.RowsAffected, res.Error
}

func (r *sessionRepo) PruneOldest(ctx context.Context, customerID uuid.UUID, keep int) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
DELETE FROM customer_sessions
WHERE customer_id = ?
  AND id NOT IN (
    SELECT id FROM customer_sessions
    WHERE customer_id = ?
    ORDER BY created_at DESC
    LIMIT ?
  )`, customerID, customerID, keep)
	return res.RowsAffected, res.Error
}
