package service

import (
	"context"
	"errors"
	"testing"

	"loja-api/internal/models"
	"loja-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testActors = []string{"ana.souza", "carlos.lima"}

func TestChangeStatusAppendsAuditAtomically(t *testing.T) {
	orderID := uuid.New()
	orders := &mockOrderRepo{
		getByID: func(_ context.Context, id uuid.UUID) (*models.Order, error) {
			return &models.Order{ID: id, StatusEntrega: models.EntregaPago}, nil
		},
	}
	var updated models.StatusEntrega
	orders.updateStatusEntrega = func(_ context.Context, _ uuid.UUID, st models.StatusEntrega) error {
		updated = st
		return nil
	}
	var audit *models.HistoricoStatusEntrega
	orders.history = &mockHistoryRepo{
		appendFn: func(_ context.Context, h *models.HistoricoStatusEntrega) error {
			audit = h
			return nil
		},
	}

	svc := NewStatusService(orders, &mockHistoryRepo{}, testActors, nil, zap.NewNop())
	obs := "saiu do centro de distribuição"
	entry, err := svc.ChangeStatus(context.Background(), orderID, ChangeStatusInput{
		StatusNovo:  models.EntregaEnviado,
		AlteradoPor: "ana.souza",
		Observacao:  &obs,
	})
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	if updated != models.EntregaEnviado {
		t.Errorf("status not updated: %q", updated)
	}
	if audit == nil {
		t.Fatal("audit row not appended")
	}
	if audit.StatusAnterior != models.EntregaPago || audit.StatusNovo != models.EntregaEnviado {
		t.Errorf("wrong transition recorded: %s -> %s", audit.StatusAnterior, audit.StatusNovo)
	}
	if entry.AlteradoPor != "ana.souza" || entry.Observacao == nil || *entry.Observacao != obs {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewStatusService(&mockOrderRepo{}, &mockHistoryRepo{}, testActors, nil, zap.NewNop())

	_, err := svc.ChangeStatus(context.Background(), uuid.New(), ChangeStatusInput{
		StatusNovo:  "EM_ORBITA",
		AlteradoPor: "ana.souza",
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestChangeStatusRejectsUnknownActor(t *testing.T) {
	orders := &mockOrderRepo{
		withTx: func(_ context.Context, _ func(repository.OrderRepo, repository.HistoryRepo) error) error {
			t.Error("no transaction may start for a rejected actor")
			return nil
		},
	}
	svc := NewStatusService(orders, &mockHistoryRepo{}, testActors, nil, zap.NewNop())

	_, err := svc.ChangeStatus(context.Background(), uuid.New(), ChangeStatusInput{
		StatusNovo:  models.EntregaEnviado,
		AlteradoPor: "intruso",
	})
	if !errors.Is(err, ErrActorNotAllowed) {
		t.Errorf("expected ErrActorNotAllowed, got %v", err)
	}
}

func TestChangeStatusOrderNotFound(t *testing.T) {
	svc := NewStatusService(&mockOrderRepo{}, &mockHistoryRepo{}, testActors, nil, zap.NewNop())

	_, err := svc.ChangeStatus(context.Background(), uuid.New(), ChangeStatusInput{
		StatusNovo:  models.EntregaEnviado,
		AlteradoPor: "ana.souza",
	})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestChangeStatusAuditFailureAbortsTransition(t *testing.T) {
	orderID := uuid.New()
	boom := errors.New("disk full")
	orders := &mockOrderRepo{
		getByID: func(_ context.Context, id uuid.UUID) (*models.Order, error) {
			return &models.Order{ID: id, StatusEntrega: models.EntregaPago}, nil
		},
		history: &mockHistoryRepo{
			appendFn: func(_ context.Context, _ *models.HistoricoStatusEntrega) error {
				return boom
			},
		},
	}

	svc := NewStatusService(orders, &mockHistoryRepo{}, testActors, nil, zap.NewNop())
	_, err := svc.ChangeStatus(context.Background(), orderID, ChangeStatusInput{
		StatusNovo:  models.EntregaEnviado,
		AlteradoPor: "ana.souza",
	})
	if !errors.Is(err, boom) {
		t.Errorf("append failure must abort the transaction, got %v", err)
	}
}

func TestHistoryRequiresExistingOrder(t *testing.T) {
	svc := NewStatusService(&mockOrderRepo{}, &mockHistoryRepo{}, testActors, nil, zap.NewNop())

	_, err := svc.History(context.Background(), uuid.New())
	if !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
