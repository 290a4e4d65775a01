package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"loja-api/internal/models"
	"loja-api/internal/payment"
	"loja-api/internal/repository"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
)

type CheckoutCustomerInput struct {
	Nome           string `json:"nome" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	CPF            string `json:"cpf" binding:"required"`
	Telefone       string `json:"telefone" binding:"required"`
	DataNascimento string `json:"dataNascimento,omitempty"` // 2006-01-02
}

type CheckoutAddressInput struct {
	Logradouro  string `json:"logradouro" binding:"required"`
	Numero      string `json:"numero" binding:"required"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro" binding:"required"`
	Cidade      string `json:"cidade" binding:"required"`
	UF          string `json:"uf" binding:"required,len=2"`
	CEP         string `json:"cep" binding:"required"`
}

type CheckoutItemInput struct {
	ReferenceID string  `json:"reference_id" binding:"required"`
	Nome        string  `json:"nome" binding:"required"`
	Quantidade  int     `json:"quantity" binding:"required"`
	Preco       float64 `json:"preco" binding:"required"`
}

type CreateOrderInput struct {
	Cliente        CheckoutCustomerInput `json:"cliente" binding:"required"`
	Endereco       CheckoutAddressInput  `json:"endereco" binding:"required"`
	Itens          []CheckoutItemInput   `json:"items" binding:"required"`
	Cupons         []string              `json:"cupons"`
	TotalPedido    float64               `json:"totalPedido"`
	Descontos      float64               `json:"descontos"`
	FreteCalculado float64               `json:"freteCalculado"`
	Transportadora string                `json:"transportadora"`
	PrazoFreteDias int                   `json:"prazoFreteDias"`
	PaymentMethod  string                `json:"paymentMethod"`
}

type CreateOrderResult struct {
	ID   uuid.UUID
	Link string
}

// OrderService owns the checkout write path: persist the order, obtain a
// hosted checkout link from the gateway, and compensate by deleting the
// order when the gateway call fails. Single round trip, no retry.
type OrderService struct {
	orders        repository.OrderRepo
	history       repository.HistoryRepo
	notifications repository.NotificationRepo
	customers     CustomerRepo
	hasher        PasswordHasher
	gateway       CheckoutGateway
	events        EventBus

	freteAdicional int64 // centavos baked into every gateway payload
	now            func() time.Time
	log            *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepo,
	history repository.HistoryRepo,
	notifications repository.NotificationRepo,
	customers CustomerRepo,
	hasher PasswordHasher,
	gateway CheckoutGateway,
	events EventBus,
	freteAdicional int64,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:         orders,
		history:        history,
		notifications:  notifications,
		customers:      customers,
		hasher:         hasher,
		gateway:        gateway,
		events:         events,
		freteAdicional: freteAdicional,
		now:            time.Now,
		log:            log,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	if len(in.Itens) == 0 {
		return nil, ErrEmptyItems
	}
	for _, it := range in.Itens {
		if it.Quantidade <= 0 {
			return nil, ErrQuantityInvalid
		}
	}

	customer, err := s.resolveCustomer(ctx, in.Cliente)
	if err != nil {
		return nil, err
	}

	var nascimento *time.Time
	if in.Cliente.DataNascimento != "" {
		if d, err := time.Parse("2006-01-02", in.Cliente.DataNascimento); err == nil {
			nascimento = &d
		}
	}

	order := &models.Order{
		NomeCliente:    in.Cliente.Nome,
		Email:          in.Cliente.Email,
		CPF:            in.Cliente.CPF,
		Telefone:       in.Cliente.Telefone,
		DataNascimento: nascimento,

		Logradouro:  in.Endereco.Logradouro,
		Numero:      in.Endereco.Numero,
		Complemento: in.Endereco.Complemento,
		Bairro:      in.Endereco.Bairro,
		Cidade:      in.Endereco.Cidade,
		UF:          strings.ToUpper(in.Endereco.UF),
		CEP:         in.Endereco.CEP,

		TotalPedido:    in.TotalPedido,
		Descontos:      in.Descontos,
		FreteCalculado: in.FreteCalculado,
		Transportadora: in.Transportadora,
		PrazoFreteDias: in.PrazoFreteDias,

		StatusPagamento: models.PagamentoPendente,
		StatusEntrega:   models.EntregaAguardandoPagamento,
		PaymentMethod:   in.PaymentMethod,
		Cupons:          in.Cupons,
	}
	if customer != nil {
		order.CustomerID = &customer.ID
	}

	for _, it := range in.Itens {
		order.Itens = append(order.Itens, models.OrderItem{
			ReferenceID:   it.ReferenceID,
			Nome:          it.Nome,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.Preco,
			Subtotal:      round2(it.Preco * float64(it.Quantidade)),
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	resp, err := s.gateway.CreateCheckout(ctx, s.buildCheckoutRequest(order))
	if err != nil {
		// Compensating action: the order must not survive a failed
		// gateway call.
		if _, delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			s.log.Error("compensating delete failed",
				zap.String("order_id", order.ID.String()), zap.Error(delErr))
		}
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	link, ok := resp.PayLink()
	if !ok {
		if _, delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			s.log.Error("compensating delete failed",
				zap.String("order_id", order.ID.String()), zap.Error(delErr))
		}
		return nil, fmt.Errorf("%w: no PAY link in gateway response", ErrGateway)
	}

	if err := s.orders.UpdatePayLink(ctx, order.ID, link); err != nil {
		// Order and checkout exist; losing the stored link is not worth
		// failing the request over.
		s.log.Error("failed to persist pay link",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	if s.events != nil {
		ev := OrderCreatedEvent{
			OrderID:     order.ID,
			CustomerID:  order.CustomerID,
			TotalPedido: order.TotalPedido,
			Cupons:      order.Cupons,
			CreatedAt:   s.now(),
		}
		for _, it := range order.Itens {
			ev.Itens = append(ev.Itens, OrderItemEvent{
				ReferenceID: it.ReferenceID,
				Nome:        it.Nome,
				Quantidade:  it.Quantidade,
				Preco:       it.PrecoUnitario,
			})
		}
		if err := s.events.PublishOrderCreated(ctx, ev); err != nil {
			s.log.Warn("order created event publish failed", zap.Error(err))
		}
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.Float64("total", order.TotalPedido))
	return &CreateOrderResult{ID: order.ID, Link: link}, nil
}

// resolveCustomer binds the order to the session customer when present.
// Guest checkout falls back to CPF then email, and finally creates an
// implicit customer with a random temporary password.
func (s *OrderService) resolveCustomer(ctx context.Context, in CheckoutCustomerInput) (*models.Customer, error) {
	if id, ok := CustomerIDFromContext(ctx); ok {
		c, err := s.customers.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}

	if c, err := s.customers.GetByCPF(ctx, in.CPF); err != nil {
		return nil, err
	} else if c != nil {
		return c, nil
	}

	if c, err := s.customers.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if c != nil {
		return c, nil
	}

	tmp, err := nanorand.Gen(12)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(tmp)
	if err != nil {
		return nil, err
	}

	cpf := in.CPF
	c := &models.Customer{
		Nome:     in.Nome,
		Email:    in.Email,
		Senha:    hash,
		CPF:      &cpf,
		Telefone: in.Telefone,
		Ativo:    true,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("implicit customer created at guest checkout",
		zap.String("customer_id", c.ID.String()))
	return c, nil
}

func (s *OrderService) buildCheckoutRequest(o *models.Order) payment.CheckoutRequest {
	req := payment.CheckoutRequest{
		ReferenceID: o.ID.String(),
		Customer: payment.Customer{
			Name:  o.NomeCliente,
			Email: o.Email,
			TaxID: onlyDigits(o.CPF),
		},
		DiscountAmount:   centavos(o.Descontos),
		AdditionalAmount: centavos(o.FreteCalculado) + s.freteAdicional,
	}

	if country, area, number, ok := splitPhone(o.Telefone); ok {
		req.Customer.Phones = []payment.Phone{{
			Country: country, Area: area, Number: number, Type: "MOBILE",
		}}
	}

	for _, it := range o.Itens {
		req.Items = append(req.Items, payment.Item{
			ReferenceID: it.ReferenceID,
			Name:        it.Nome,
			Quantity:    it.Quantidade,
			UnitAmount:  centavos(it.PrecoUnitario),
		})
	}
	return req
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// GetOrderForCustomer enforces ownership for the customer-facing lookup.
func (s *OrderService) GetOrderForCustomer(ctx context.Context, id, customerID uuid.UUID) (*models.Order, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.CustomerID == nil || *o.CustomerID != customerID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	return s.orders.List(ctx, f)
}

type webhookPayload struct {
	ReferenceID string `json:"reference_id"`
	Charges     []struct {
		Status string `json:"status"`
	} `json:"charges"`
}

// ApplyPaymentNotification stores the raw webhook payload append-only and,
// when it matches an order, updates the payment status. A PAID charge on an
// order still awaiting payment also moves delivery to PAGO, with an audit
// row, in the same transaction.
func (s *OrderService) ApplyPaymentNotification(ctx context.Context, payload []byte) (string, error) {
	var wp webhookPayload
	_ = json.Unmarshal(payload, &wp) // a malformed payload is still stored

	n := &models.PaymentNotification{
		ReferenceID: wp.ReferenceID,
		Payload:     payload,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return "", err
	}

	orderID, err := uuid.Parse(wp.ReferenceID)
	if err != nil || len(wp.Charges) == 0 {
		s.log.Warn("payment notification without matchable order",
			zap.String("reference_id", wp.ReferenceID))
		return wp.ReferenceID, nil
	}

	status := mapChargeStatus(wp.Charges[0].Status)

	err = s.orders.WithTx(ctx, func(orders repository.OrderRepo, history repository.HistoryRepo) error {
		o, err := orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			s.log.Warn("payment notification for unknown order",
				zap.String("reference_id", wp.ReferenceID))
			return nil
		}
		if err := orders.UpdateStatusPagamento(ctx, orderID, status); err != nil {
			return err
		}
		if status == models.PagamentoPago && o.StatusEntrega == models.EntregaAguardandoPagamento {
			if err := orders.UpdateStatusEntrega(ctx, orderID, models.EntregaPago); err != nil {
				return err
			}
			return history.Append(ctx, &models.HistoricoStatusEntrega{
				OrderID:        orderID,
				StatusAnterior: models.EntregaAguardandoPagamento,
				StatusNovo:     models.EntregaPago,
				AlteradoPor:    "pagbank-webhook",
			})
		}
		return nil
	})
	if err != nil {
		return wp.ReferenceID, err
	}

	s.log.Info("payment notification applied",
		zap.String("reference_id", wp.ReferenceID),
		zap.String("status", string(status)))
	return wp.ReferenceID, nil
}

func mapChargeStatus(s string) models.StatusPagamento {
	switch strings.ToUpper(s) {
	case "PAID":
		return models.PagamentoPago
	case "DECLINED":
		return models.PagamentoRecusado
	case "CANCELED":
		return models.PagamentoCancelado
	case "REFUNDED":
		return models.PagamentoEstornado
	}
	return models.PagamentoPendente
}

func centavos(v float64) int64 {
	return int64(math.Round(v * 100))
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitPhone breaks a Brazilian phone into country/area/number. Accepts
// "+55 11 91234-5678", "(11) 91234-5678" and bare digit runs.
func splitPhone(s string) (country, area, number string, ok bool) {
	d := onlyDigits(s)
	if len(d) >= 12 && strings.HasPrefix(d, "55") {
		d = d[2:]
	}
	if len(d) < 10 {
		return "", "", "", false
	}
	return "55", d[:2], d[2:], true
}
