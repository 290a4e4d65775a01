package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type StatusEntrega string

const (
	EntregaAguardandoPagamento StatusEntrega = "AGUARDANDO_PAGAMENTO"
	EntregaPago                StatusEntrega = "PAGO"
	EntregaSeparacao           StatusEntrega = "SEPARACAO"
	EntregaEnviado             StatusEntrega = "ENVIADO"
	EntregaEntregue            StatusEntrega = "ENTREGUE"
	EntregaCancelado           StatusEntrega = "CANCELADO"
	EntregaDevolvido           StatusEntrega = "DEVOLVIDO"
)

// ValidStatusEntrega reports whether s is one of the known delivery states.
// There is deliberately no transition graph: support staff may move an order
// to any state, the audit history is the guard rail.
func ValidStatusEntrega(s StatusEntrega) bool {
	switch s {
	case EntregaAguardandoPagamento, EntregaPago, EntregaSeparacao,
		EntregaEnviado, EntregaEntregue, EntregaCancelado, EntregaDevolvido:
		return true
	}
	return false
}

type StatusPagamento string

const (
	PagamentoPendente  StatusPagamento = "PENDENTE"
	PagamentoPago      StatusPagamento = "PAGO"
	PagamentoRecusado  StatusPagamento = "RECUSADO"
	PagamentoCancelado StatusPagamento = "CANCELADO"
	PagamentoEstornado StatusPagamento = "ESTORNADO"
)

type Customer struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Nome           string     `gorm:"type:text;not null"`
	Email          string     `gorm:"not null"` // uniqueness via lower(email) functional index
	Senha          string     `gorm:"not null"` // argon2id hash
	CPF            *string    `gorm:"type:varchar(14);uniqueIndex"`
	Telefone       string     `gorm:"type:text"`
	DataNascimento *time.Time `gorm:"type:date"`
	AceitaEmail    bool       `gorm:"not null;default:true"`
	AceitaSMS      bool       `gorm:"not null;default:false"`
	Ativo          bool       `gorm:"not null;default:true;index"`
	CreatedAt      time.Time  `gorm:"not null;default:now()"`
	UpdatedAt      time.Time  `gorm:"not null;default:now()"`

	Enderecos []CustomerAddress `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (Customer) TableName() string { return "customers" }

type CustomerAddress struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Logradouro  string    `gorm:"type:text;not null"`
	Numero      string    `gorm:"type:text;not null"`
	Complemento string    `gorm:"type:text"`
	Bairro      string    `gorm:"type:text;not null"`
	Cidade      string    `gorm:"type:text;not null"`
	UF          string    `gorm:"type:char(2);not null"`
	CEP         string    `gorm:"type:varchar(9);not null"`
	// Principal: at most one per customer, enforced by the repository
	// (unset-others inside a transaction), not by a DB constraint.
	Principal bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (CustomerAddress) TableName() string { return "customer_addresses" }

type CustomerSession struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash  string    `gorm:"not null;index"` // sha256(jwt), never the raw token
	IP         *string   `gorm:"type:inet"`
	UserAgent  *string   `gorm:"type:text"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null;default:now();index"`
	LastSeenAt time.Time `gorm:"not null;default:now()"`
}

func (CustomerSession) TableName() string { return "customer_sessions" }

type Order struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`

	// Customer snapshot at checkout time; the customer row may change later.
	NomeCliente    string     `gorm:"type:text;not null"`
	Email          string     `gorm:"type:text;not null"`
	CPF            string     `gorm:"type:varchar(14);not null"`
	Telefone       string     `gorm:"type:text;not null"`
	DataNascimento *time.Time `gorm:"type:date"`

	// Shipping address snapshot.
	Logradouro  string `gorm:"type:text;not null"`
	Numero      string `gorm:"type:text;not null"`
	Complemento string `gorm:"type:text"`
	Bairro      string `gorm:"type:text;not null"`
	Cidade      string `gorm:"type:text;not null"`
	UF          string `gorm:"type:char(2);not null"`
	CEP         string `gorm:"type:varchar(9);not null"`

	TotalPedido    float64 `gorm:"not null;default:0"`
	Descontos      float64 `gorm:"not null;default:0"`
	FreteCalculado float64 `gorm:"not null;default:0"`
	Transportadora string  `gorm:"type:text"`
	PrazoFreteDias int     `gorm:"not null;default:0"`

	StatusPagamento StatusPagamento `gorm:"type:text;not null;default:'PENDENTE';index"`
	StatusEntrega   StatusEntrega   `gorm:"type:text;not null;default:'AGUARDANDO_PAGAMENTO';index"`
	PaymentMethod   string          `gorm:"type:text"`
	Cupons          pq.StringArray  `gorm:"type:text[]"`
	LinkPagamento   string          `gorm:"type:text"`

	NotaFiscalNumero *string `gorm:"type:text"`
	NotaFiscalChave  *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Itens     []OrderItem              `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Historico []HistoricoStatusEntrega `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ReferenceID   string    `gorm:"type:text;not null"` // catalog product id
	Nome          string    `gorm:"type:text;not null"`
	Quantidade    int       `gorm:"type:int;not null"`
	PrecoUnitario float64   `gorm:"not null"`
	Subtotal      float64   `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }

// HistoricoStatusEntrega is append-only: rows are never updated or deleted.
type HistoricoStatusEntrega struct {
	ID             uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID     `gorm:"type:uuid;not null;index"`
	StatusAnterior StatusEntrega `gorm:"type:text;not null"`
	StatusNovo     StatusEntrega `gorm:"type:text;not null"`
	AlteradoPor    string        `gorm:"type:text;not null"`
	Observacao     *string       `gorm:"type:text"`
	CreatedAt      time.Time     `gorm:"not null;default:now();index"`
}

func (HistoricoStatusEntrega) TableName() string { return "historico_status_entrega" }

// PaymentNotification stores raw gateway webhook payloads append-only.
// ReferenceID is extracted from the payload for lookup; the payload itself
// stays untouched.
type PaymentNotification struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ReferenceID string    `gorm:"type:text;index"`
	Payload     []byte    `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time `gorm:"not null;default:now()"`
}

func (PaymentNotification) TableName() string { return "payment_notifications" }
