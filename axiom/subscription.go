package axiom

import (
	"context"
	"net/http"
)

type SubscribeRequest struct {
	PlanID        string `json:"plan_id"`
	StripePriceID string `json:"stripe_price_id,omitempty"`
	CouponCode    string `json:"coupon_code,omitempty"`
}

type UpdatePriceRequest struct {
	PlanID        string `json:"plan_id"`
	StripePriceID string `json:"stripe_price_id"`
}

type ApplyCouponRequest struct {
	CouponCode string `json:"coupon_code"`
}

// SubscriptionResult is what the billing backend reports after a
// subscription action. CheckoutURL is set when Stripe needs the user to
// complete payment.
type SubscriptionResult struct {
	Status      string `json:"status,omitempty"`
	Message     string `json:"message,omitempty"`
	CheckoutURL string `json:"checkout_url,omitempty"`
}

func (c *Client) Subscribe(ctx context.Context, req SubscribeRequest) (SubscriptionResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/subscription/subscribe", nil, req)
	if err != nil {
		return SubscriptionResult{}, err
	}
	return decode[SubscriptionResult](body)
}

func (c *Client) UpdatePrice(ctx context.Context, req UpdatePriceRequest) (SubscriptionResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/subscription/update-price", nil, req)
	if err != nil {
		return SubscriptionResult{}, err
	}
	return decode[SubscriptionResult](body)
}

func (c *Client) ApplyCoupon(ctx context.Context, req ApplyCouponRequest) (SubscriptionResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/subscription/apply-coupon", nil, req)
	if err != nil {
		return SubscriptionResult{}, err
	}
	return decode[SubscriptionResult](body)
}
