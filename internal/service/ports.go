package service

import (
	"context"
	"time"

	"loja-api/internal/catalog"
	"loja-api/internal/models"
	"loja-api/internal/payment"

	"github.com/google/uuid"
)

type CustomerRepo interface {
	Create(ctx context.Context, c *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	GetByCPF(ctx context.Context, cpf string) (*models.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	UpdateProfile(ctx context.Context, c *models.Customer) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *models.CustomerSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CustomerSession, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteAllByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	PruneOldest(ctx context.Context, customerID uuid.UUID, keep int) (int64, error)
}

type AddressRepo interface {
	Create(ctx context.Context, a *models.CustomerAddress) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CustomerAddress, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CustomerAddress, error)
	Update(ctx context.Context, a *models.CustomerAddress) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SetPrincipal(ctx context.Context, customerID, addressID uuid.UUID) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type SessionToken struct {
	CustomerID uuid.UUID
	SessionID  uuid.UUID
	Exp        time.Time
}

type TokenProvider interface {
	SignSession(ctx context.Context, customerID, sessionID uuid.UUID, ttl time.Duration) (string, time.Time, error)
	ParseSession(ctx context.Context, token string) (*SessionToken, error)
}

// Catalog is the read-only CMS view of products and coupons.
type Catalog interface {
	ProductsByIDs(ctx context.Context, ids []int64) ([]catalog.Product, error)
	ProductByDocumentID(ctx context.Context, documentID string) (*catalog.Product, error)
	ProductByName(ctx context.Context, nome string) (*catalog.Product, error)
	CouponByCode(ctx context.Context, code string) (*catalog.Coupon, error)
}

type CheckoutGateway interface {
	CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutResponse, error)
}

// Limiter counts attempts per key. Allow records the attempt, Reset clears
// the counter (called after a successful login).
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

type ClientMeta struct {
	IP        *string
	UserAgent *string
}
