package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service deletes expired customer sessions in the background.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) CleanupExpiredSessions(ctx context.Context) error {
	res := s.db.WithContext(ctx).
		Exec("DELETE FROM customer_sessions WHERE expires_at < ?", time.Now())
	if res.Error != nil {
		s.log.Error("failed to cleanup expired sessions", zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.log.Info("cleaned up expired sessions", zap.Int64("count", res.RowsAffected))
	}
	return nil
}

// Run sweeps immediately and then on every tick until ctx is cancelled.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.CleanupExpiredSessions(ctx); err != nil {
		s.log.Error("initial session cleanup failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			s.log.Info("session cleanup stopped")
			return
		case <-ticker.C:
			if err := s.CleanupExpiredSessions(ctx); err != nil {
				s.log.Error("session cleanup failed", zap.Error(err))
			}
		}
	}
}
