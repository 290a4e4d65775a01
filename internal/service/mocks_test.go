package service

import (
	"context"
	"time"

	"loja-api/internal/catalog"
	"loja-api/internal/models"
	"loja-api/internal/payment"
	"loja-api/internal/repository"

	"github.com/google/uuid"
)

type mockCatalog struct {
	productsByIDs func(ctx context.Context, ids []int64) ([]catalog.Product, error)
	byDocumentID  func(ctx context.Context, documentID string) (*catalog.Product, error)
	byName        func(ctx context.Context, nome string) (*catalog.Product, error)
	couponByCode  func(ctx context.Context, code string) (*catalog.Coupon, error)
}

func (m *mockCatalog) ProductsByIDs(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	if m.productsByIDs != nil {
		return m.productsByIDs(ctx, ids)
	}
	return nil, nil
}

func (m *mockCatalog) ProductByDocumentID(ctx context.Context, documentID string) (*catalog.Product, error) {
	if m.byDocumentID != nil {
		return m.byDocumentID(ctx, documentID)
	}
	return nil, nil
}

func (m *mockCatalog) ProductByName(ctx context.Context, nome string) (*catalog.Product, error) {
	if m.byName != nil {
		return m.byName(ctx, nome)
	}
	return nil, nil
}

func (m *mockCatalog) CouponByCode(ctx context.Context, code string) (*catalog.Coupon, error) {
	if m.couponByCode != nil {
		return m.couponByCode(ctx, code)
	}
	return nil, nil
}

type mockCustomerRepo struct {
	create         func(ctx context.Context, c *models.Customer) error
	getByID        func(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	getByEmail     func(ctx context.Context, email string) (*models.Customer, error)
	getByCPF       func(ctx context.Context, cpf string) (*models.Customer, error)
	existsByEmail  func(ctx context.Context, email string) (bool, error)
	updatePassword func(ctx context.Context, id uuid.UUID, hash string) error
	updateProfile  func(ctx context.Context, c *models.Customer) error
}

func (m *mockCustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	if m.create != nil {
		return m.create(ctx, c)
	}
	return nil
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, nil
}

func (m *mockCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	if m.getByEmail != nil {
		return m.getByEmail(ctx, email)
	}
	return nil, nil
}

func (m *mockCustomerRepo) GetByCPF(ctx context.Context, cpf string) (*models.Customer, error) {
	if m.getByCPF != nil {
		return m.getByCPF(ctx, cpf)
	}
	return nil, nil
}

func (m *mockCustomerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmail != nil {
		return m.existsByEmail(ctx, email)
	}
	return false, nil
}

func (m *mockCustomerRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if m.updatePassword != nil {
		return m.updatePassword(ctx, id, hash)
	}
	return nil
}

func (m *mockCustomerRepo) UpdateProfile(ctx context.Context, c *models.Customer) error {
	if m.updateProfile != nil {
		return m.updateProfile(ctx, c)
	}
	return nil
}

type mockSessionRepo struct {
	create              func(ctx context.Context, s *models.CustomerSession) error
	getByID             func(ctx context.Context, id uuid.UUID) (*models.CustomerSession, error)
	touch               func(ctx context.Context, id uuid.UUID, at time.Time) error
	delete              func(ctx context.Context, id uuid.UUID) (bool, error)
	deleteAllByCustomer func(ctx context.Context, customerID uuid.UUID) (int64, error)
	pruneOldest         func(ctx context.Context, customerID uuid.UUID, keep int) (int64, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, s *models.CustomerSession) error {
	if m.create != nil {
		return m.create(ctx, s)
	}
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CustomerSession, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.touch != nil {
		return m.touch(ctx, id, at)
	}
	return nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return true, nil
}

func (m *mockSessionRepo) DeleteAllByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	if m.deleteAllByCustomer != nil {
		return m.deleteAllByCustomer(ctx, customerID)
	}
	return 0, nil
}

func (m *mockSessionRepo) PruneOldest(ctx context.Context, customerID uuid.UUID, keep int) (int64, error) {
	if m.pruneOldest != nil {
		return m.pruneOldest(ctx, customerID, keep)
	}
	return 0, nil
}

type mockHasher struct {
	hash    func(password string) (string, error)
	compare func(hash, password string) bool
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hash != nil {
		return m.hash(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) bool {
	if m.compare != nil {
		return m.compare(hash, password)
	}
	return hash == "hashed:"+password
}

type mockTokens struct {
	sign  func(ctx context.Context, customerID, sessionID uuid.UUID, ttl time.Duration) (string, time.Time, error)
	parse func(ctx context.Context, token string) (*SessionToken, error)
}

func (m *mockTokens) SignSession(ctx context.Context, customerID, sessionID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	if m.sign != nil {
		return m.sign(ctx, customerID, sessionID, ttl)
	}
	return "tok-" + sessionID.String(), time.Now().Add(ttl), nil
}

func (m *mockTokens) ParseSession(ctx context.Context, token string) (*SessionToken, error) {
	if m.parse != nil {
		return m.parse(ctx, token)
	}
	return nil, ErrSessionInvalid
}

type mockLimiter struct {
	allow func(ctx context.Context, key string) (bool, error)
	reset func(ctx context.Context, key string) error
}

func (m *mockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if m.allow != nil {
		return m.allow(ctx, key)
	}
	return true, nil
}

func (m *mockLimiter) Reset(ctx context.Context, key string) error {
	if m.reset != nil {
		return m.reset(ctx, key)
	}
	return nil
}

type mockGateway struct {
	createCheckout func(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutResponse, error)
}

func (m *mockGateway) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutResponse, error) {
	if m.createCheckout != nil {
		return m.createCheckout(ctx, req)
	}
	return &payment.CheckoutResponse{
		Links: []payment.Link{{Rel: "PAY", Href: "https://pagbank.example/checkout/abc"}},
	}, nil
}

type mockOrderRepo struct {
	create                func(ctx context.Context, o *models.Order) error
	getByID               func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	deleteFn              func(ctx context.Context, id uuid.UUID) (bool, error)
	updateStatusEntrega   func(ctx context.Context, id uuid.UUID, status models.StatusEntrega) error
	updateStatusPagamento func(ctx context.Context, id uuid.UUID, status models.StatusPagamento) error
	updatePayLink         func(ctx context.Context, id uuid.UUID, link string) error
	list                  func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	withTx                func(ctx context.Context, fn func(repository.OrderRepo, repository.HistoryRepo) error) error

	history *mockHistoryRepo
}

func (m *mockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.create != nil {
		return m.create(ctx, o)
	}
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, nil
}

func (m *mockOrderRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

func (m *mockOrderRepo) UpdateStatusEntrega(ctx context.Context, id uuid.UUID, status models.StatusEntrega) error {
	if m.updateStatusEntrega != nil {
		return m.updateStatusEntrega(ctx, id, status)
	}
	return nil
}

func (m *mockOrderRepo) UpdateStatusPagamento(ctx context.Context, id uuid.UUID, status models.StatusPagamento) error {
	if m.updateStatusPagamento != nil {
		return m.updateStatusPagamento(ctx, id, status)
	}
	return nil
}

func (m *mockOrderRepo) UpdatePayLink(ctx context.Context, id uuid.UUID, link string) error {
	if m.updatePayLink != nil {
		return m.updatePayLink(ctx, id, link)
	}
	return nil
}

func (m *mockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.list != nil {
		return m.list(ctx, f)
	}
	return nil, 0, nil
}

// WithTx runs fn against the mock itself; tests that care about rollback
// semantics override withTx.
func (m *mockOrderRepo) WithTx(ctx context.Context, fn func(repository.OrderRepo, repository.HistoryRepo) error) error {
	if m.withTx != nil {
		return m.withTx(ctx, fn)
	}
	h := m.history
	if h == nil {
		h = &mockHistoryRepo{}
	}
	return fn(m, h)
}

type mockHistoryRepo struct {
	appendFn    func(ctx context.Context, h *models.HistoricoStatusEntrega) error
	listByOrder func(ctx context.Context, orderID uuid.UUID) ([]models.HistoricoStatusEntrega, error)
}

func (m *mockHistoryRepo) Append(ctx context.Context, h *models.HistoricoStatusEntrega) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, h)
	}
	return nil
}

func (m *mockHistoryRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.HistoricoStatusEntrega, error) {
	if m.listByOrder != nil {
		return m.listByOrder(ctx, orderID)
	}
	return nil, nil
}

type mockNotificationRepo struct {
	create          func(ctx context.Context, n *models.PaymentNotification) error
	listByReference func(ctx context.Context, referenceID string) ([]models.PaymentNotification, error)
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *models.PaymentNotification) error {
	if m.create != nil {
		return m.create(ctx, n)
	}
	return nil
}

func (m *mockNotificationRepo) ListByReference(ctx context.Context, referenceID string) ([]models.PaymentNotification, error) {
	if m.listByReference != nil {
		return m.listByReference(ctx, referenceID)
	}
	return nil, nil
}

type mockAddressRepo struct {
	create         func(ctx context.Context, a *models.CustomerAddress) error
	getByID        func(ctx context.Context, id uuid.UUID) (*models.CustomerAddress, error)
	listByCustomer func(ctx context.Context, customerID uuid.UUID) ([]models.CustomerAddress, error)
	update         func(ctx context.Context, a *models.CustomerAddress) error
	deleteFn       func(ctx context.Context, id uuid.UUID) (bool, error)
	setPrincipal   func(ctx context.Context, customerID, addressID uuid.UUID) error
}

func (m *mockAddressRepo) Create(ctx context.Context, a *models.CustomerAddress) error {
	if m.create != nil {
		return m.create(ctx, a)
	}
	return nil
}

func (m *mockAddressRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CustomerAddress, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, nil
}

func (m *mockAddressRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CustomerAddress, error) {
	if m.listByCustomer != nil {
		return m.listByCustomer(ctx, customerID)
	}
	return nil, nil
}

func (m *mockAddressRepo) Update(ctx context.Context, a *models.CustomerAddress) error {
	if m.update != nil {
		return m.update(ctx, a)
	}
	return nil
}

func (m *mockAddressRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

func (m *mockAddressRepo) SetPrincipal(ctx context.Context, customerID, addressID uuid.UUID) error {
	if m.setPrincipal != nil {
		return m.setPrincipal(ctx, customerID, addressID)
	}
	return nil
}
