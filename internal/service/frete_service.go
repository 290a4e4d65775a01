package service

import (
	"context"
	"strings"
)

type FreteQuoteInput struct {
	UF       string  `json:"uf" binding:"required,len=2"`
	Subtotal float64 `json:"subtotal"`
}

type FreteQuote struct {
	Valor          float64 `json:"valor"`
	PrazoDias      int     `json:"prazoDias"`
	Transportadora string  `json:"transportadora"`
	Gratis         bool    `json:"gratis"`
}

type freteRate struct {
	valor float64
	prazo int
}

// Per-UF flat rate table. Rates grow with distance from the fulfillment
// center in São Paulo.
var freteTable = map[string]freteRate{
	"SP": {15.90, 3},
	"RJ": {19.90, 5}, "MG": {19.90, 5}, "ES": {19.90, 5},
	"PR": {24.90, 7}, "SC": {24.90, 7}, "RS": {24.90, 7},
	"DF": {24.90, 7}, "GO": {24.90, 7}, "MS": {24.90, 7}, "MT": {24.90, 8},
	"BA": {29.90, 9}, "SE": {29.90, 10}, "AL": {29.90, 10}, "PE": {29.90, 10},
	"PB": {29.90, 10}, "RN": {29.90, 10}, "CE": {29.90, 10}, "PI": {29.90, 11},
	"MA": {29.90, 11}, "TO": {29.90, 10},
	"PA": {34.90, 12}, "AP": {34.90, 14}, "AM": {34.90, 14}, "RR": {34.90, 15},
	"AC": {34.90, 15}, "RO": {34.90, 13},
}

// FreteService quotes shipping from the flat per-UF table, with free
// shipping above a configured subtotal.
type FreteService struct {
	gratisMinimo   float64
	transportadora string
}

func NewFreteService(gratisMinimo float64, transportadora string) *FreteService {
	return &FreteService{gratisMinimo: gratisMinimo, transportadora: transportadora}
}

func (s *FreteService) Quote(ctx context.Context, in FreteQuoteInput) (*FreteQuote, error) {
	rate, ok := freteTable[strings.ToUpper(strings.TrimSpace(in.UF))]
	if !ok {
		return nil, ErrUFInvalid
	}

	q := &FreteQuote{
		Valor:          rate.valor,
		PrazoDias:      rate.prazo,
		Transportadora: s.transportadora,
	}
	if s.gratisMinimo > 0 && in.Subtotal >= s.gratisMinimo {
		q.Valor = 0
		q.Gratis = true
	}
	return q, nil
}
