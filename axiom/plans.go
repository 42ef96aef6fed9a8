package axiom

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Plan is a subscription plan offered on the platform.
type Plan struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	PriceCents      int    `json:"price_cents"`
	Currency        string `json:"currency,omitempty"`
	Interval        string `json:"interval,omitempty"`
	StripePriceID   string `json:"stripe_price_id,omitempty"`
	StripeProductID string `json:"stripe_product_id,omitempty"`
	MinutesIncluded int    `json:"minutes_included,omitempty"`
	Status          string `json:"status,omitempty"`
}

type PlanCreate struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	PriceCents      int    `json:"price_cents"`
	Currency        string `json:"currency,omitempty"`
	Interval        string `json:"interval,omitempty"`
	StripePriceID   string `json:"stripe_price_id,omitempty"`
	StripeProductID string `json:"stripe_product_id,omitempty"`
	MinutesIncluded int    `json:"minutes_included,omitempty"`
}

// PlanUpdate is the PUT payload. Only non-nil fields reach the wire.
type PlanUpdate struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	PriceCents      *int    `json:"price_cents,omitempty"`
	Currency        *string `json:"currency,omitempty"`
	Interval        *string `json:"interval,omitempty"`
	StripePriceID   *string `json:"stripe_price_id,omitempty"`
	StripeProductID *string `json:"stripe_product_id,omitempty"`
	MinutesIncluded *int    `json:"minutes_included,omitempty"`
	Status          *string `json:"status,omitempty"`
}

type ListPlansParams struct {
	Page     int
	PageSize int
	Search   string
}

func (p ListPlansParams) query() url.Values {
	query := url.Values{}
	if p.Page > 0 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		query.Set("search", p.Search)
	}
	return query
}

func (c *Client) ListPlans(ctx context.Context, params ListPlansParams) (List[Plan], error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/admin/billing/plans", params.query(), nil)
	if err != nil {
		return List[Plan]{}, err
	}
	return decodeList[Plan](body)
}

func (c *Client) GetPlan(ctx context.Context, id string) (Plan, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/admin/billing/plans/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return Plan{}, err
	}
	return decode[Plan](body)
}

func (c *Client) CreatePlan(ctx context.Context, req PlanCreate) (Plan, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/admin/billing/plans", nil, req)
	if err != nil {
		return Plan{}, err
	}
	return decode[Plan](body)
}

func (c *Client) UpdatePlan(ctx context.Context, id string, req PlanUpdate) (Plan, error) {
	body, err := c.do(ctx, http.MethodPut, "/auth/admin/billing/plans/"+url.PathEscape(id), nil, req)
	if err != nil {
		return Plan{}, err
	}
	return decode[Plan](body)
}

func (c *Client) DeletePlan(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/auth/admin/billing/plans/"+url.PathEscape(id), nil, nil)
	return err
}
