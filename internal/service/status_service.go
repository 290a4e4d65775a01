package service

import (
	"context"
	"time"

	"loja-api/internal/models"
	"loja-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChangeStatusInput struct {
	StatusNovo  models.StatusEntrega `json:"statusNovo" binding:"required"`
	AlteradoPor string               `json:"alteradoPor" binding:"required"`
	Observacao  *string              `json:"observacao,omitempty"`
}

// StatusService tracks delivery-status transitions. Any status may follow
// any other; the guard rails are the actor allow-list and the audit row
// committed atomically with the transition.
type StatusService struct {
	orders  repository.OrderRepo
	history repository.HistoryRepo
	actors  map[string]struct{}
	events  EventBus
	now     func() time.Time
	log     *zap.Logger
}

func NewStatusService(
	orders repository.OrderRepo,
	history repository.HistoryRepo,
	actors []string,
	events EventBus,
	log *zap.Logger,
) *StatusService {
	set := make(map[string]struct{}, len(actors))
	for _, a := range actors {
		set[a] = struct{}{}
	}
	return &StatusService{
		orders:  orders,
		history: history,
		actors:  set,
		events:  events,
		now:     time.Now,
		log:     log,
	}
}

func (s *StatusService) ChangeStatus(ctx context.Context, orderID uuid.UUID, in ChangeStatusInput) (*models.HistoricoStatusEntrega, error) {
	if !models.ValidStatusEntrega(in.StatusNovo) {
		return nil, ErrInvalidStatus
	}
	if _, ok := s.actors[in.AlteradoPor]; !ok {
		return nil, ErrActorNotAllowed
	}

	var entry *models.HistoricoStatusEntrega

	err := s.orders.WithTx(ctx, func(orders repository.OrderRepo, history repository.HistoryRepo) error {
		o, err := orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}

		if err := orders.UpdateStatusEntrega(ctx, orderID, in.StatusNovo); err != nil {
			return err
		}

		entry = &models.HistoricoStatusEntrega{
			OrderID:        orderID,
			StatusAnterior: o.StatusEntrega,
			StatusNovo:     in.StatusNovo,
			AlteradoPor:    in.AlteradoPor,
			Observacao:     in.Observacao,
		}
		return history.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		ev := StatusChangedEvent{
			OrderID:        orderID,
			StatusAnterior: entry.StatusAnterior,
			StatusNovo:     entry.StatusNovo,
			AlteradoPor:    entry.AlteradoPor,
			ChangedAt:      s.now(),
		}
		if err := s.events.PublishStatusChanged(ctx, ev); err != nil {
			s.log.Warn("status changed event publish failed", zap.Error(err))
		}
	}

	s.log.Info("delivery status changed",
		zap.String("order_id", orderID.String()),
		zap.String("de", string(entry.StatusAnterior)),
		zap.String("para", string(entry.StatusNovo)),
		zap.String("por", entry.AlteradoPor))
	return entry, nil
}

func (s *StatusService) History(ctx context.Context, orderID uuid.UUID) ([]models.HistoricoStatusEntrega, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return s.history.ListByOrder(ctx, orderID)
}
