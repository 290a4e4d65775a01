package service

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	ctxKeyCustomerID ctxKey = iota
	ctxKeySessionID
)

func WithCustomerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKeyCustomerID, id)
}

func CustomerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKeyCustomerID).(uuid.UUID)
	return id, ok
}

func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, id)
}

func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKeySessionID).(uuid.UUID)
	return id, ok
}
