package catalog

import (
	"context"
	"errors"
	"net/url"
	"time"
)

var (
	ErrCouponInactive  = errors.New("coupon inactive")
	ErrCouponExpired   = errors.New("coupon expired")
	ErrCouponExhausted = errors.New("coupon exhausted")
)

// Coupon mirrors the CMS record. The field is spelled "multiplacar" upstream;
// the JSON tag keeps the wire name, the Go name does not repeat the typo.
type Coupon struct {
	Codigo        string     `json:"codigo"`
	Multiplicar   float64    `json:"multiplacar"`
	Diminuir      float64    `json:"diminuir"`
	Ativo         bool       `json:"ativo"`
	DataExpiracao *time.Time `json:"data_expiracao"`
	UsosRestantes *int       `json:"usos_restantes"`
}

type couponList struct {
	Data []Coupon `json:"data"`
}

// CouponByCode returns nil when no coupon matches the code.
func (c *Client) CouponByCode(ctx context.Context, code string) (*Coupon, error) {
	q := url.Values{}
	q.Set("filters[codigo][$eq]", code)
	q.Set("populate", "*")

	var out couponList
	if err := c.get(ctx, "/api/cupoms", q, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, nil
	}
	return &out.Data[0], nil
}

// Validate checks activity, expiry and remaining uses against now.
// A nil UsosRestantes means unlimited.
func (cp *Coupon) Validate(now time.Time) error {
	if !cp.Ativo {
		return ErrCouponInactive
	}
	if cp.DataExpiracao != nil && now.After(*cp.DataExpiracao) {
		return ErrCouponExpired
	}
	if cp.UsosRestantes != nil && *cp.UsosRestantes <= 0 {
		return ErrCouponExhausted
	}
	return nil
}

// Transform is the normalized discount: preco*Multiplicar - Diminuir.
// A zero multiplier on the record means "no multiplier" (1.0).
func (cp *Coupon) Transform() (multiplicar, diminuir float64) {
	multiplicar = cp.Multiplicar
	if multiplicar == 0 {
		multiplicar = 1
	}
	return multiplicar, cp.Diminuir
}
