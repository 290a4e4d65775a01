package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"loja-api/internal/catalog"

	"go.uber.org/zap"
)

type CartItemInput struct {
	ID         string  `json:"id"`
	DocumentID string  `json:"documentId,omitempty"`
	Nome       string  `json:"nome,omitempty"`
	Preco      float64 `json:"preco"`
	Quantity   int     `json:"quantity"`
}

type CartCouponInput struct {
	Codigo      string   `json:"codigo"`
	Multiplicar *float64 `json:"multiplacar,omitempty"`
	Diminuir    *float64 `json:"diminuir,omitempty"`
}

type ValidateCartInput struct {
	Items  []CartItemInput   `json:"items"`
	Cupons []CartCouponInput `json:"cupons"`
}

type OutdatedProduct struct {
	ID                 string  `json:"id"`
	Nome               string  `json:"nome,omitempty"`
	PrecoCarrinho      float64 `json:"precoCarrinho"`
	PrecoAtual         float64 `json:"precoAtual"`
	PrecoAtualComCupom float64 `json:"precoAtualComCupom"`
}

type UpdatedProduct struct {
	ID       string  `json:"id"`
	Nome     string  `json:"nome,omitempty"`
	Preco    float64 `json:"preco"`
	Quantity int     `json:"quantity"`
}

type CouponReport struct {
	Codigo      string  `json:"codigo"`
	Valido      bool    `json:"valido"`
	Motivo      string  `json:"motivo,omitempty"`
	Multiplicar float64 `json:"multiplacar"`
	Diminuir    float64 `json:"diminuir"`
}

type ValidateCartResult struct {
	Atualizado             bool              `json:"atualizado"`
	ProdutosDesatualizados []OutdatedProduct `json:"produtosDesatualizados"`
	CuponsDesatualizados   []CouponReport    `json:"cuponsDesatualizados"`
	ProdutosAtualizados    []UpdatedProduct  `json:"produtosAtualizados"`
}

// CartService recomputes authoritative cart prices server-side and flags
// drift against the client-cached snapshot. Pure read, no side effects.
type CartService struct {
	catalog   Catalog
	tolerance float64
	now       func() time.Time
	log       *zap.Logger
}

func NewCartService(cat Catalog, tolerance float64, log *zap.Logger) *CartService {
	return &CartService{
		catalog:   cat,
		tolerance: tolerance,
		now:       time.Now,
		log:       log,
	}
}

func (s *CartService) ValidateCart(ctx context.Context, in ValidateCartInput) (*ValidateCartResult, error) {
	res := &ValidateCartResult{
		ProdutosDesatualizados: []OutdatedProduct{},
		CuponsDesatualizados:   []CouponReport{},
		ProdutosAtualizados:    []UpdatedProduct{},
	}

	// Coupon resolution. An invalid coupon is reported and dropped: the
	// running accumulator is left untouched. A valid coupon OVERWRITES the
	// accumulator rather than composing -- one coupon per cart, matching
	// the storefront rule.
	multiplicador := 1.0
	diminuir := 0.0
	now := s.now()

	for _, cin := range in.Cupons {
		cp, err := s.catalog.CouponByCode(ctx, cin.Codigo)
		if err != nil {
			return nil, err
		}
		if cp == nil {
			res.CuponsDesatualizados = append(res.CuponsDesatualizados, CouponReport{
				Codigo: cin.Codigo, Valido: false, Motivo: "cupom não encontrado",
			})
			continue
		}
		if err := cp.Validate(now); err != nil {
			res.CuponsDesatualizados = append(res.CuponsDesatualizados, CouponReport{
				Codigo: cin.Codigo, Valido: false, Motivo: couponMotivo(err),
			})
			continue
		}

		m, d := cp.Transform()
		multiplicador = m
		diminuir = d

		// The client caches the transform alongside the code; report
		// drift so it can refresh its copy.
		if (cin.Multiplicar != nil && math.Abs(*cin.Multiplicar-m) > s.tolerance) ||
			(cin.Diminuir != nil && math.Abs(*cin.Diminuir-d) > s.tolerance) {
			res.CuponsDesatualizados = append(res.CuponsDesatualizados, CouponReport{
				Codigo: cin.Codigo, Valido: true, Motivo: "transformação divergente",
				Multiplicar: m, Diminuir: d,
			})
		}
	}

	// Batch fetch by numeric id, then per-item fallbacks.
	byID := make(map[int64]catalog.Product)
	var ids []int64
	for _, it := range in.Items {
		if id, err := strconv.ParseInt(it.ID, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	products, err := s.catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, it := range in.Items {
		p, err := s.resolveProduct(ctx, it, byID)
		if err != nil {
			return nil, err
		}

		// Not found fails safe toward "outdated": a zero authoritative
		// price can never match a real cached one.
		precoAtual := 0.0
		nome := it.Nome
		if p != nil {
			precoAtual = p.Preco
			nome = p.Nome
		}

		precoComCupom := round2(precoAtual*multiplicador - diminuir)

		if math.Abs(precoComCupom-it.Preco) > s.tolerance {
			res.ProdutosDesatualizados = append(res.ProdutosDesatualizados, OutdatedProduct{
				ID:                 it.ID,
				Nome:               nome,
				PrecoCarrinho:      it.Preco,
				PrecoAtual:         precoAtual,
				PrecoAtualComCupom: precoComCupom,
			})
			continue
		}

		res.ProdutosAtualizados = append(res.ProdutosAtualizados, UpdatedProduct{
			ID:       it.ID,
			Nome:     nome,
			Preco:    precoComCupom,
			Quantity: it.Quantity,
		})
	}

	res.Atualizado = len(res.ProdutosDesatualizados) == 0 && len(res.CuponsDesatualizados) == 0
	return res, nil
}

// resolveProduct looks up by id, falling back to documentId, falling back to
// exact name. Returns nil when the product is gone from the catalog.
func (s *CartService) resolveProduct(ctx context.Context, it CartItemInput, byID map[int64]catalog.Product) (*catalog.Product, error) {
	if id, err := strconv.ParseInt(it.ID, 10, 64); err == nil {
		if p, ok := byID[id]; ok {
			return &p, nil
		}
	}
	if it.DocumentID != "" {
		p, err := s.catalog.ProductByDocumentID(ctx, it.DocumentID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	if it.Nome != "" {
		p, err := s.catalog.ProductByName(ctx, it.Nome)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	s.log.Warn("cart item not found in catalog", zap.String("id", it.ID), zap.String("nome", it.Nome))
	return nil, nil
}

func couponMotivo(err error) string {
	switch err {
	case catalog.ErrCouponInactive:
		return "cupom inativo"
	case catalog.ErrCouponExpired:
		return "cupom expirado"
	case catalog.ErrCouponExhausted:
		return "cupom esgotado"
	}
	return "cupom inválido"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
