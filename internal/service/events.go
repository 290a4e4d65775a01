package service

import (
	"context"
	"time"

	"loja-api/internal/models"

	"github.com/google/uuid"
)

type OrderItemEvent struct {
	ReferenceID string  `json:"reference_id"`
	Nome        string  `json:"nome"`
	Quantidade  int     `json:"quantidade"`
	Preco       float64 `json:"preco"`
}

type OrderCreatedEvent struct {
	OrderID     uuid.UUID        `json:"order_id"`
	CustomerID  *uuid.UUID       `json:"customer_id,omitempty"`
	Itens       []OrderItemEvent `json:"itens"`
	TotalPedido float64          `json:"total_pedido"`
	Cupons      []string         `json:"cupons,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type StatusChangedEvent struct {
	OrderID        uuid.UUID            `json:"order_id"`
	StatusAnterior models.StatusEntrega `json:"status_anterior"`
	StatusNovo     models.StatusEntrega `json:"status_novo"`
	AlteradoPor    string               `json:"alterado_por"`
	ChangedAt      time.Time            `json:"changed_at"`
}

// EventBus is optional: a nil bus disables publishing, and publish errors
// must never fail the request that produced the event.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, ev OrderCreatedEvent) error
	PublishStatusChanged(ctx context.Context, ev StatusChangedEvent) error
}
