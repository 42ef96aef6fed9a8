package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/datatable"
	"github.com/axiomconsultancy/axiom-admin-go/fetch"
)

type PlansController struct {
	api  PlansAPI
	seq  *fetch.Sequencer
	busy *busyTracker
}

func NewPlansController(api PlansAPI) *PlansController {
	return &PlansController{
		api:  api,
		seq:  fetch.NewSequencer(),
		busy: newBusyTracker(),
	}
}

func (c *PlansController) List(ctx context.Context, key string, q Query) (Page[axiom.Plan], error) {
	return guarded(c.seq, ctx, key, func(ctx context.Context) (Page[axiom.Plan], error) {
		return resolvePage(ctx, q, func(ctx context.Context, page, pageSize int) (axiom.List[axiom.Plan], error) {
			return c.api.ListPlans(ctx, axiom.ListPlansParams{
				Page:     page,
				PageSize: pageSize,
				Search:   strings.TrimSpace(q.Search),
			})
		})
	})
}

func (c *PlansController) Get(ctx context.Context, id string) (axiom.Plan, error) {
	return c.api.GetPlan(ctx, id)
}

func (c *PlansController) Create(ctx context.Context, form PlanForm) (axiom.Plan, error) {
	req, err := BuildPlanCreate(form)
	if err != nil {
		return axiom.Plan{}, err
	}
	return c.api.CreatePlan(ctx, req)
}

func (c *PlansController) Update(ctx context.Context, key, id string, form PlanForm) (axiom.Plan, error) {
	req, err := BuildPlanUpdate(form)
	if err != nil {
		return axiom.Plan{}, err
	}

	if !c.busy.mark(key, id) {
		return axiom.Plan{}, ErrRowBusy
	}
	defer c.busy.unmark(key, id)

	return c.api.UpdatePlan(ctx, id, req)
}

func (c *PlansController) Delete(ctx context.Context, key, id string) error {
	if !c.busy.mark(key, id) {
		return ErrRowBusy
	}
	defer c.busy.unmark(key, id)

	return c.api.DeletePlan(ctx, id)
}

func (c *PlansController) BusyRows(key string) []string {
	return c.busy.busyRows(key)
}

// PlanColumns defines the plans table.
func PlanColumns() []datatable.Column {
	return []datatable.Column{
		{Key: "name", Title: "Plan", Width: 200, Sticky: datatable.StickyLeft, Visible: true, Sortable: true},
		{Key: "price", Title: "Price", Width: 120, Visible: true, Sortable: true, Align: "right"},
		{Key: "interval", Title: "Billing", Width: 100, Visible: true, Hideable: true},
		{Key: "minutes", Title: "Minutes", Width: 100, Visible: true, Hideable: true, Align: "right"},
		{Key: "stripe", Title: "Stripe price", Width: 220, Visible: false, Hideable: true},
		{Key: "status", Title: "Status", Width: 100, Visible: true, Hideable: true},
		{Key: "actions", Title: "", Width: 90, Sticky: datatable.StickyRight, Visible: true},
	}
}

// PlanRows renders plans for the table.
func PlanRows(plans []axiom.Plan) []datatable.Row {
	rows := make([]datatable.Row, 0, len(plans))
	for _, plan := range plans {
		rows = append(rows, datatable.Row{
			"id":       plan.ID,
			"name":     plan.Name,
			"price":    formatPrice(plan.PriceCents, plan.Currency),
			"interval": plan.Interval,
			"minutes":  strconv.Itoa(plan.MinutesIncluded),
			"stripe":   plan.StripePriceID,
			"status":   plan.Status,
		})
	}
	return rows
}

func formatPrice(cents int, currency string) string {
	if currency == "" {
		currency = "usd"
	}
	return fmt.Sprintf("%.2f %s", float64(cents)/100, strings.ToUpper(currency))
}

// PlanForm carries the plan modal's fields as submitted.
type PlanForm struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	Currency        string `json:"currency"`
	Interval        string `json:"interval"`
	StripePriceID   string `json:"stripe_price_id"`
	StripeProductID string `json:"stripe_product_id"`
	MinutesIncluded string `json:"minutes_included"`
	Status          string `json:"status"`
}

// BuildPlanCreate validates and trims the create modal. The price field
// is entered in whole currency units and stored in cents.
func BuildPlanCreate(form PlanForm) (axiom.PlanCreate, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return axiom.PlanCreate{}, fmt.Errorf("plan name is required")
	}

	priceCents, err := parsePriceCents(form.Price)
	if err != nil {
		return axiom.PlanCreate{}, err
	}

	minutes, err := parseOptionalInt(form.MinutesIncluded, "included minutes")
	if err != nil {
		return axiom.PlanCreate{}, err
	}

	return axiom.PlanCreate{
		Name:            name,
		Description:     strings.TrimSpace(form.Description),
		PriceCents:      priceCents,
		Currency:        strings.ToLower(strings.TrimSpace(form.Currency)),
		Interval:        strings.TrimSpace(form.Interval),
		StripePriceID:   strings.TrimSpace(form.StripePriceID),
		StripeProductID: strings.TrimSpace(form.StripeProductID),
		MinutesIncluded: minutes,
	}, nil
}

// BuildPlanUpdate keeps only the fields whose trimmed value is
// non-empty.
func BuildPlanUpdate(form PlanForm) (axiom.PlanUpdate, error) {
	var req axiom.PlanUpdate

	if name := strings.TrimSpace(form.Name); name != "" {
		req.Name = &name
	}
	if description := strings.TrimSpace(form.Description); description != "" {
		req.Description = &description
	}
	if strings.TrimSpace(form.Price) != "" {
		priceCents, err := parsePriceCents(form.Price)
		if err != nil {
			return axiom.PlanUpdate{}, err
		}
		req.PriceCents = &priceCents
	}
	if currency := strings.ToLower(strings.TrimSpace(form.Currency)); currency != "" {
		req.Currency = &currency
	}
	if interval := strings.TrimSpace(form.Interval); interval != "" {
		req.Interval = &interval
	}
	if priceID := strings.TrimSpace(form.StripePriceID); priceID != "" {
		req.StripePriceID = &priceID
	}
	if productID := strings.TrimSpace(form.StripeProductID); productID != "" {
		req.StripeProductID = &productID
	}
	if strings.TrimSpace(form.MinutesIncluded) != "" {
		minutes, err := parseOptionalInt(form.MinutesIncluded, "included minutes")
		if err != nil {
			return axiom.PlanUpdate{}, err
		}
		req.MinutesIncluded = &minutes
	}
	if status := strings.TrimSpace(form.Status); status != "" {
		req.Status = &status
	}

	return req, nil
}

func parsePriceCents(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("price must be a number: %q", trimmed)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("price cannot be negative")
	}
	return int(parsed*100 + 0.5), nil
}
