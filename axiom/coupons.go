package axiom

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Coupon statuses as reported by the billing backend.
const (
	CouponStatusActive    = "active"
	CouponStatusDraft     = "draft"
	CouponStatusScheduled = "scheduled"
	CouponStatusExpired   = "expired"
)

// Coupon is a billing discount code.
type Coupon struct {
	ID             string   `json:"id"`
	Code           string   `json:"code"`
	PercentOff     int      `json:"percent_off,omitempty"`
	AmountOffCents int      `json:"amount_off_cents,omitempty"`
	Status         string   `json:"status"`
	PlanIDs        []string `json:"plan_ids,omitempty"`
	StartsAt       string   `json:"starts_at,omitempty"`
	ExpiresAt      string   `json:"expires_at,omitempty"`
	MaxRedemptions int      `json:"max_redemptions,omitempty"`
	TimesRedeemed  int      `json:"times_redeemed,omitempty"`
}

type CouponCreate struct {
	Code           string   `json:"code"`
	PercentOff     int      `json:"percent_off,omitempty"`
	AmountOffCents int      `json:"amount_off_cents,omitempty"`
	Status         string   `json:"status,omitempty"`
	PlanIDs        []string `json:"plan_ids,omitempty"`
	StartsAt       string   `json:"starts_at,omitempty"`
	ExpiresAt      string   `json:"expires_at,omitempty"`
	MaxRedemptions int      `json:"max_redemptions,omitempty"`
}

// CouponUpdate is the PUT payload. Only non-nil fields reach the wire.
type CouponUpdate struct {
	Code           *string  `json:"code,omitempty"`
	PercentOff     *int     `json:"percent_off,omitempty"`
	AmountOffCents *int     `json:"amount_off_cents,omitempty"`
	Status         *string  `json:"status,omitempty"`
	PlanIDs        []string `json:"plan_ids,omitempty"`
	StartsAt       *string  `json:"starts_at,omitempty"`
	ExpiresAt      *string  `json:"expires_at,omitempty"`
	MaxRedemptions *int     `json:"max_redemptions,omitempty"`
}

type ListCouponsParams struct {
	Page     int
	PageSize int
	Search   string
	Status   string
	PlanID   string
}

func (p ListCouponsParams) query() url.Values {
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
	if p.Status != "" {
		query.Set("status", p.Status)
	}
	if p.PlanID != "" {
		query.Set("plan_id", p.PlanID)
	}
	return query
}

func (c *Client) ListCoupons(ctx context.Context, params ListCouponsParams) (List[Coupon], error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/admin/billing/coupons", params.query(), nil)
	if err != nil {
		return List[Coupon]{}, err
	}
	return decodeList[Coupon](body)
}

func (c *Client) GetCoupon(ctx context.Context, id string) (Coupon, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/admin/billing/coupons/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return Coupon{}, err
	}
	return decode[Coupon](body)
}

func (c *Client) CreateCoupon(ctx context.Context, req CouponCreate) (Coupon, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/admin/billing/coupons", nil, req)
	if err != nil {
		return Coupon{}, err
	}
	return decode[Coupon](body)
}

func (c *Client) UpdateCoupon(ctx context.Context, id string, req CouponUpdate) (Coupon, error) {
	body, err := c.do(ctx, http.MethodPut, "/auth/admin/billing/coupons/"+url.PathEscape(id), nil, req)
	if err != nil {
		return Coupon{}, err
	}
	return decode[Coupon](body)
}

func (c *Client) DeleteCoupon(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/auth/admin/billing/coupons/"+url.PathEscape(id), nil, nil)
	return err
}
