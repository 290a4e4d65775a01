package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client creates hosted checkouts on PagBank. One round trip, no retry:
// the caller compensates on failure.
type Client struct {
	baseURL         string
	token           string
	redirectURL     string
	notificationURL string
	http            *http.Client
	log             *zap.Logger
}

func NewClient(baseURL, token, redirectURL, notificationURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL:         baseURL,
		token:           token,
		redirectURL:     redirectURL,
		notificationURL: notificationURL,
		http:            &http.Client{Timeout: 30 * time.Second},
		log:             log,
	}
}

type Phone struct {
	Country string `json:"country"`
	Area    string `json:"area"`
	Number  string `json:"number"`
	Type    string `json:"type"`
}

type Customer struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	TaxID  string  `json:"tax_id"`
	Phones []Phone `json:"phones,omitempty"`
}

type Item struct {
	ReferenceID string `json:"reference_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	UnitAmount  int64  `json:"unit_amount"` // centavos
}

type CheckoutRequest struct {
	ReferenceID      string   `json:"reference_id"`
	Customer         Customer `json:"customer"`
	Items            []Item   `json:"items"`
	DiscountAmount   int64    `json:"discount_amount,omitempty"`
	AdditionalAmount int64    `json:"additional_amount,omitempty"`
	RedirectURL      string   `json:"redirect_url"`
	NotificationURLs []string `json:"notification_urls,omitempty"`
}

type Link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

type CheckoutResponse struct {
	ID    string `json:"id"`
	Links []Link `json:"links"`
}

// PayLink extracts the rel=PAY entry from the hypermedia links.
func (r *CheckoutResponse) PayLink() (string, bool) {
	for _, l := range r.Links {
		if l.Rel == "PAY" {
			return l.Href, true
		}
	}
	return "", false
}

func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	if req.RedirectURL == "" {
		req.RedirectURL = c.redirectURL
	}
	if len(req.NotificationURLs) == 0 && c.notificationURL != "" {
		req.NotificationURLs = []string{c.notificationURL}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkouts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("pagbank request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Error("pagbank checkout rejected",
			zap.String("reference_id", req.ReferenceID),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("pagbank status %d: %s", resp.StatusCode, string(detail))
	}

	var out CheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("pagbank response decode failed: %w", err)
	}

	c.log.Info("pagbank checkout created",
		zap.String("reference_id", req.ReferenceID),
		zap.String("checkout_id", out.ID))
	return &out, nil
}
