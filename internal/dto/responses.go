package dto

import (
	"time"

	"loja-api/internal/models"

	"github.com/google/uuid"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type CustomerProfile struct {
	ID          uuid.UUID `json:"id"`
	Nome        string    `json:"nome"`
	Email       string    `json:"email"`
	CPF         *string   `json:"cpf,omitempty"`
	Telefone    string    `json:"telefone,omitempty"`
	AceitaEmail bool      `json:"aceitaEmail"`
	AceitaSMS   bool      `json:"aceitaSms"`
	CriadoEm    time.Time `json:"criadoEm"`
}

func FromCustomer(c *models.Customer) CustomerProfile {
	return CustomerProfile{
		ID:          c.ID,
		Nome:        c.Nome,
		Email:       c.Email,
		CPF:         c.CPF,
		Telefone:    c.Telefone,
		AceitaEmail: c.AceitaEmail,
		AceitaSMS:   c.AceitaSMS,
		CriadoEm:    c.CreatedAt,
	}
}

type LoginResponse struct {
	Token    string          `json:"token"`
	ExpiraEm time.Time       `json:"expiraEm"`
	Cliente  CustomerProfile `json:"cliente"`
}

type AddressResponse struct {
	ID          uuid.UUID `json:"id"`
	Logradouro  string    `json:"logradouro"`
	Numero      string    `json:"numero"`
	Complemento string    `json:"complemento,omitempty"`
	Bairro      string    `json:"bairro"`
	Cidade      string    `json:"cidade"`
	UF          string    `json:"uf"`
	CEP         string    `json:"cep"`
	Principal   bool      `json:"principal"`
}

func FromAddress(a *models.CustomerAddress) AddressResponse {
	return AddressResponse{
		ID:          a.ID,
		Logradouro:  a.Logradouro,
		Numero:      a.Numero,
		Complemento: a.Complemento,
		Bairro:      a.Bairro,
		Cidade:      a.Cidade,
		UF:          a.UF,
		CEP:         a.CEP,
		Principal:   a.Principal,
	}
}

func FromAddresses(list []models.CustomerAddress) []AddressResponse {
	out := make([]AddressResponse, 0, len(list))
	for i := range list {
		out = append(out, FromAddress(&list[i]))
	}
	return out
}

type OrderCreatedResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
	Link    string    `json:"link"`
}

type OrderItemResponse struct {
	ReferenceID   string  `json:"referenceId"`
	Nome          string  `json:"nome"`
	Quantidade    int     `json:"quantidade"`
	PrecoUnitario float64 `json:"precoUnitario"`
	Subtotal      float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID              uuid.UUID              `json:"id"`
	NomeCliente     string                 `json:"nomeCliente"`
	Email           string                 `json:"email"`
	CPF             string                 `json:"cpf"`
	Telefone        string                 `json:"telefone"`
	Logradouro      string                 `json:"logradouro"`
	Numero          string                 `json:"numero"`
	Complemento     string                 `json:"complemento,omitempty"`
	Bairro          string                 `json:"bairro"`
	Cidade          string                 `json:"cidade"`
	UF              string                 `json:"uf"`
	CEP             string                 `json:"cep"`
	TotalPedido     float64                `json:"totalPedido"`
	Descontos       float64                `json:"descontos"`
	FreteCalculado  float64                `json:"freteCalculado"`
	Transportadora  string                 `json:"transportadora,omitempty"`
	PrazoFreteDias  int                    `json:"prazoFreteDias"`
	StatusPagamento models.StatusPagamento `json:"statusPagamento"`
	StatusEntrega   models.StatusEntrega   `json:"statusEntrega"`
	PaymentMethod   string                 `json:"paymentMethod,omitempty"`
	Cupons          []string               `json:"cupons,omitempty"`
	LinkPagamento   string                 `json:"linkPagamento,omitempty"`
	CriadoEm        time.Time              `json:"criadoEm"`
	Itens           []OrderItemResponse    `json:"itens"`
	Historico       []HistoricoResponse    `json:"historico,omitempty"`
}

func FromOrder(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		NomeCliente:     o.NomeCliente,
		Email:           o.Email,
		CPF:             o.CPF,
		Telefone:        o.Telefone,
		Logradouro:      o.Logradouro,
		Numero:          o.Numero,
		Complemento:     o.Complemento,
		Bairro:          o.Bairro,
		Cidade:          o.Cidade,
		UF:              o.UF,
		CEP:             o.CEP,
		TotalPedido:     o.TotalPedido,
		Descontos:       o.Descontos,
		FreteCalculado:  o.FreteCalculado,
		Transportadora:  o.Transportadora,
		PrazoFreteDias:  o.PrazoFreteDias,
		StatusPagamento: o.StatusPagamento,
		StatusEntrega:   o.StatusEntrega,
		PaymentMethod:   o.PaymentMethod,
		Cupons:          o.Cupons,
		LinkPagamento:   o.LinkPagamento,
		CriadoEm:        o.CreatedAt,
		Itens:           make([]OrderItemResponse, 0, len(o.Itens)),
	}
	for _, it := range o.Itens {
		resp.Itens = append(resp.Itens, OrderItemResponse{
			ReferenceID:   it.ReferenceID,
			Nome:          it.Nome,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
			Subtotal:      it.Subtotal,
		})
	}
	for i := range o.Historico {
		resp.Historico = append(resp.Historico, FromHistorico(&o.Historico[i]))
	}
	return resp
}

type OrderListResponse struct {
	Total   int64           `json:"total"`
	Pedidos []OrderResponse `json:"pedidos"`
}

type HistoricoResponse struct {
	ID             uuid.UUID            `json:"id"`
	StatusAnterior models.StatusEntrega `json:"statusAnterior"`
	StatusNovo     models.StatusEntrega `json:"statusNovo"`
	AlteradoPor    string               `json:"alteradoPor"`
	Observacao     *string              `json:"observacao,omitempty"`
	CriadoEm       time.Time            `json:"criadoEm"`
}

func FromHistorico(h *models.HistoricoStatusEntrega) HistoricoResponse {
	return HistoricoResponse{
		ID:             h.ID,
		StatusAnterior: h.StatusAnterior,
		StatusNovo:     h.StatusNovo,
		AlteradoPor:    h.AlteradoPor,
		Observacao:     h.Observacao,
		CriadoEm:       h.CreatedAt,
	}
}

func FromHistoricos(list []models.HistoricoStatusEntrega) []HistoricoResponse {
	out := make([]HistoricoResponse, 0, len(list))
	for i := range list {
		out = append(out, FromHistorico(&list[i]))
	}
	return out
}
