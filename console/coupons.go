package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/datatable"
	"github.com/axiomconsultancy/axiom-admin-go/fetch"
)

type CouponsController struct {
	api  CouponsAPI
	seq  *fetch.Sequencer
	busy *busyTracker
	now  func() time.Time
}

func NewCouponsController(api CouponsAPI) *CouponsController {
	return &CouponsController{
		api:  api,
		seq:  fetch.NewSequencer(),
		busy: newBusyTracker(),
		now:  time.Now,
	}
}

type CouponsQuery struct {
	Query
	Status string
	PlanID string
}

// List fetches coupons. A backend with no coupon data yet (an empty
// legacy-array response to an unfiltered query) falls back to the demo
// seed so the screen is demonstrable before billing is configured; the
// seed is paged and filtered locally like any client-paged set.
func (c *CouponsController) List(ctx context.Context, key string, q CouponsQuery) (Page[axiom.Coupon], error) {
	return guarded(c.seq, ctx, key, func(ctx context.Context) (Page[axiom.Coupon], error) {
		nq := q.Query.normalized()
		search := strings.TrimSpace(q.Search)

		list, err := c.api.ListCoupons(ctx, axiom.ListCouponsParams{
			Page:     nq.Page,
			PageSize: nq.PageSize,
			Search:   search,
			Status:   q.Status,
			PlanID:   q.PlanID,
		})
		if err != nil {
			return Page[axiom.Coupon]{}, err
		}

		if !list.Paged {
			items := list.Items
			strategy := ClientPaged

			if len(items) == 0 && search == "" && q.PlanID == "" {
				items = DemoCoupons(c.now())
				strategy = DemoSeed
			}

			items = filterCouponsByStatus(items, q.Status, c.now())
			return slicePage(items, nq, strategy), nil
		}

		return resolvePage(ctx, nq, func(ctx context.Context, page, pageSize int) (axiom.List[axiom.Coupon], error) {
			if page == nq.Page {
				return list, nil
			}
			return c.api.ListCoupons(ctx, axiom.ListCouponsParams{
				Page:     page,
				PageSize: pageSize,
				Search:   search,
				Status:   q.Status,
				PlanID:   q.PlanID,
			})
		})
	})
}

func (c *CouponsController) Get(ctx context.Context, id string) (axiom.Coupon, error) {
	return c.api.GetCoupon(ctx, id)
}

func (c *CouponsController) Create(ctx context.Context, form CouponForm) (axiom.Coupon, error) {
	req, err := BuildCouponCreate(form)
	if err != nil {
		return axiom.Coupon{}, err
	}
	return c.api.CreateCoupon(ctx, req)
}

func (c *CouponsController) Update(ctx context.Context, key, id string, form CouponForm) (axiom.Coupon, error) {
	req, err := BuildCouponUpdate(form)
	if err != nil {
		return axiom.Coupon{}, err
	}

	if !c.busy.mark(key, id) {
		return axiom.Coupon{}, ErrRowBusy
	}
	defer c.busy.unmark(key, id)

	return c.api.UpdateCoupon(ctx, id, req)
}

func (c *CouponsController) Delete(ctx context.Context, key, id string) error {
	if !c.busy.mark(key, id) {
		return ErrRowBusy
	}
	defer c.busy.unmark(key, id)

	return c.api.DeleteCoupon(ctx, id)
}

func (c *CouponsController) BusyRows(key string) []string {
	return c.busy.busyRows(key)
}

// EffectiveCouponStatus derives the status shown in the table. An
// explicit draft stays draft; otherwise the validity window decides:
// not started yet is scheduled, past the end is expired, else active.
func EffectiveCouponStatus(coupon axiom.Coupon, now time.Time) string {
	if coupon.Status == axiom.CouponStatusDraft {
		return axiom.CouponStatusDraft
	}

	if coupon.StartsAt != "" {
		if starts, err := time.Parse(time.RFC3339, coupon.StartsAt); err == nil && now.Before(starts) {
			return axiom.CouponStatusScheduled
		}
	}
	if coupon.ExpiresAt != "" {
		if expires, err := time.Parse(time.RFC3339, coupon.ExpiresAt); err == nil && now.After(expires) {
			return axiom.CouponStatusExpired
		}
	}

	if coupon.Status != "" {
		return coupon.Status
	}
	return axiom.CouponStatusActive
}

func filterCouponsByStatus(coupons []axiom.Coupon, status string, now time.Time) []axiom.Coupon {
	if status == "" {
		return coupons
	}

	var out []axiom.Coupon
	for _, coupon := range coupons {
		if EffectiveCouponStatus(coupon, now) == status {
			out = append(out, coupon)
		}
	}
	return out
}

// DemoCoupons is the seed shown while the billing backend has no coupon
// data. Validity windows are relative to now so the derived statuses
// stay stable: one live coupon, one draft, one scheduled.
func DemoCoupons(now time.Time) []axiom.Coupon {
	return []axiom.Coupon{
		{
			ID:             "demo-launch20",
			Code:           "LAUNCH20",
			PercentOff:     20,
			Status:         axiom.CouponStatusActive,
			StartsAt:       now.Add(-30 * 24 * time.Hour).Format(time.RFC3339),
			ExpiresAt:      now.Add(60 * 24 * time.Hour).Format(time.RFC3339),
			MaxRedemptions: 500,
			TimesRedeemed:  112,
		},
		{
			ID:         "demo-welcome5",
			Code:       "WELCOME5",
			PercentOff: 5,
			Status:     axiom.CouponStatusDraft,
		},
		{
			ID:             "demo-blackfriday",
			Code:           "BLACKFRIDAY",
			PercentOff:     40,
			Status:         axiom.CouponStatusScheduled,
			StartsAt:       now.Add(45 * 24 * time.Hour).Format(time.RFC3339),
			ExpiresAt:      now.Add(50 * 24 * time.Hour).Format(time.RFC3339),
			MaxRedemptions: 1000,
		},
	}
}

// CouponColumns defines the coupons table.
func CouponColumns() []datatable.Column {
	return []datatable.Column{
		{Key: "code", Title: "Code", Width: 160, Sticky: datatable.StickyLeft, Visible: true, Sortable: true},
		{Key: "discount", Title: "Discount", Width: 110, Visible: true, Align: "right"},
		{Key: "status", Title: "Status", Width: 110, Visible: true, Hideable: true},
		{Key: "window", Title: "Valid", Width: 210, Visible: true, Hideable: true},
		{Key: "redemptions", Title: "Redeemed", Width: 110, Visible: true, Hideable: true, Align: "right"},
		{Key: "actions", Title: "", Width: 90, Sticky: datatable.StickyRight, Visible: true},
	}
}

// CouponRows renders coupons for the table, including the derived
// status.
func CouponRows(coupons []axiom.Coupon, now time.Time) []datatable.Row {
	rows := make([]datatable.Row, 0, len(coupons))
	for _, coupon := range coupons {
		discount := ""
		switch {
		case coupon.PercentOff > 0:
			discount = strconv.Itoa(coupon.PercentOff) + "%"
		case coupon.AmountOffCents > 0:
			discount = fmt.Sprintf("$%.2f", float64(coupon.AmountOffCents)/100)
		}

		window := ""
		if coupon.StartsAt != "" || coupon.ExpiresAt != "" {
			window = formatWindowDate(coupon.StartsAt) + " - " + formatWindowDate(coupon.ExpiresAt)
		}

		redemptions := strconv.Itoa(coupon.TimesRedeemed)
		if coupon.MaxRedemptions > 0 {
			redemptions += " / " + strconv.Itoa(coupon.MaxRedemptions)
		}

		rows = append(rows, datatable.Row{
			"id":          coupon.ID,
			"code":        coupon.Code,
			"discount":    discount,
			"status":      EffectiveCouponStatus(coupon, now),
			"window":      window,
			"redemptions": redemptions,
		})
	}
	return rows
}

func formatWindowDate(value string) string {
	if value == "" {
		return "open"
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.Format("2006-01-02")
	}
	return value
}

// CouponForm carries the coupon modal's fields as submitted.
type CouponForm struct {
	Code           string   `json:"code"`
	PercentOff     string   `json:"percent_off"`
	AmountOff      string   `json:"amount_off"`
	Status         string   `json:"status"`
	PlanIDs        []string `json:"plan_ids"`
	StartsAt       string   `json:"starts_at"`
	ExpiresAt      string   `json:"expires_at"`
	MaxRedemptions string   `json:"max_redemptions"`
}

// BuildCouponCreate validates and trims the create modal. Exactly one
// of percent-off and amount-off must be set.
func BuildCouponCreate(form CouponForm) (axiom.CouponCreate, error) {
	code := strings.ToUpper(strings.TrimSpace(form.Code))
	if code == "" {
		return axiom.CouponCreate{}, fmt.Errorf("coupon code is required")
	}

	percent, amount, err := parseDiscount(form.PercentOff, form.AmountOff)
	if err != nil {
		return axiom.CouponCreate{}, err
	}
	if percent == 0 && amount == 0 {
		return axiom.CouponCreate{}, fmt.Errorf("a discount is required")
	}

	maxRedemptions, err := parseOptionalInt(form.MaxRedemptions, "max redemptions")
	if err != nil {
		return axiom.CouponCreate{}, err
	}

	return axiom.CouponCreate{
		Code:           code,
		PercentOff:     percent,
		AmountOffCents: amount,
		Status:         strings.TrimSpace(form.Status),
		PlanIDs:        trimAll(form.PlanIDs),
		StartsAt:       strings.TrimSpace(form.StartsAt),
		ExpiresAt:      strings.TrimSpace(form.ExpiresAt),
		MaxRedemptions: maxRedemptions,
	}, nil
}

// BuildCouponUpdate keeps only the fields whose trimmed value is
// non-empty.
func BuildCouponUpdate(form CouponForm) (axiom.CouponUpdate, error) {
	var req axiom.CouponUpdate

	if code := strings.ToUpper(strings.TrimSpace(form.Code)); code != "" {
		req.Code = &code
	}

	percent, amount, err := parseDiscount(form.PercentOff, form.AmountOff)
	if err != nil {
		return axiom.CouponUpdate{}, err
	}
	if percent > 0 {
		req.PercentOff = &percent
	}
	if amount > 0 {
		req.AmountOffCents = &amount
	}

	if status := strings.TrimSpace(form.Status); status != "" {
		req.Status = &status
	}
	if planIDs := trimAll(form.PlanIDs); len(planIDs) > 0 {
		req.PlanIDs = planIDs
	}
	if starts := strings.TrimSpace(form.StartsAt); starts != "" {
		req.StartsAt = &starts
	}
	if expires := strings.TrimSpace(form.ExpiresAt); expires != "" {
		req.ExpiresAt = &expires
	}

	maxRedemptions, err := parseOptionalInt(form.MaxRedemptions, "max redemptions")
	if err != nil {
		return axiom.CouponUpdate{}, err
	}
	if maxRedemptions > 0 {
		req.MaxRedemptions = &maxRedemptions
	}

	return req, nil
}

func parseDiscount(percentOff, amountOff string) (int, int, error) {
	percent, err := parseOptionalInt(percentOff, "percent off")
	if err != nil {
		return 0, 0, err
	}
	if percent < 0 || percent > 100 {
		return 0, 0, fmt.Errorf("percent off must be between 0 and 100")
	}

	amount := 0
	if trimmed := strings.TrimSpace(amountOff); trimmed != "" {
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("amount off must be a number: %q", trimmed)
		}
		amount = int(value * 100)
	}

	if percent > 0 && amount > 0 {
		return 0, 0, fmt.Errorf("use either percent off or amount off, not both")
	}

	return percent, amount, nil
}

func parseOptionalInt(value, label string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number: %q", label, trimmed)
	}
	return parsed, nil
}
