package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Client talks to the headless CMS that owns products and coupons.
// All reads, no writes.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL, token string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

type Product struct {
	ID         int64   `json:"id"`
	DocumentID string  `json:"documentId"`
	Nome       string  `json:"nome"`
	Preco      float64 `json:"preco"`
}

type productList struct {
	Data []Product `json:"data"`
}

// ProductsByIDs fetches products with filters[id][$in]. Missing ids are
// simply absent from the result.
func (c *Client) ProductsByIDs(ctx context.Context, ids []int64) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := url.Values{}
	for i, id := range ids {
		q.Set(fmt.Sprintf("filters[id][$in][%d]", i), strconv.FormatInt(id, 10))
	}

	var out productList
	if err := c.get(ctx, "/api/produtos", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) ProductByDocumentID(ctx context.Context, documentID string) (*Product, error) {
	q := url.Values{}
	q.Set("filters[documentId][$eq]", documentID)

	var out productList
	if err := c.get(ctx, "/api/produtos", q, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, nil
	}
	return &out.Data[0], nil
}

// ProductByName is the last-resort lookup: exact match on nome.
func (c *Client) ProductByName(ctx context.Context, nome string) (*Product, error) {
	q := url.Values{}
	q.Set("filters[nome][$eq]", nome)

	var out productList
	if err := c.get(ctx, "/api/produtos", q, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, nil
	}
	return &out.Data[0], nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("cms returned non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("cms status %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
