package console

import (
	"testing"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
)

func TestBuildPlanCreateParsesPrice(t *testing.T) {
	req, err := BuildPlanCreate(PlanForm{
		Name:     "  Pro  ",
		Price:    "29.99",
		Currency: "USD",
		Interval: "month",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if req.Name != "Pro" {
		t.Errorf("Expected trimmed name 'Pro', got %q", req.Name)
	}
	if req.PriceCents != 2999 {
		t.Errorf("Expected 2999 cents, got %d", req.PriceCents)
	}
	if req.Currency != "usd" {
		t.Errorf("Expected lower-cased currency 'usd', got %q", req.Currency)
	}
}

func TestBuildPlanCreateRejectsBadInput(t *testing.T) {
	testCases := []struct {
		name string
		form PlanForm
	}{
		{name: "Missing name", form: PlanForm{Price: "10"}},
		{name: "Non-numeric price", form: PlanForm{Name: "Pro", Price: "ten"}},
		{name: "Negative price", form: PlanForm{Name: "Pro", Price: "-5"}},
		{name: "Non-numeric minutes", form: PlanForm{Name: "Pro", MinutesIncluded: "lots"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildPlanCreate(tc.form); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestBuildPlanUpdateKeepsOnlySetFields(t *testing.T) {
	req, err := BuildPlanUpdate(PlanForm{Price: "49", Status: "active"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if req.PriceCents == nil || *req.PriceCents != 4900 {
		t.Errorf("Expected price pointer 4900, got %v", req.PriceCents)
	}
	if req.Status == nil || *req.Status != "active" {
		t.Errorf("Expected status pointer 'active', got %v", req.Status)
	}
	if req.Name != nil || req.Currency != nil || req.MinutesIncluded != nil {
		t.Error("Expected untouched fields to stay nil")
	}
}

func TestPlanRowsFormatsPrice(t *testing.T) {
	rows := PlanRows([]axiom.Plan{
		{ID: "p1", Name: "Starter", PriceCents: 900, Currency: "usd"},
		{ID: "p2", Name: "Pro", PriceCents: 4950, Currency: "eur"},
		{ID: "p3", Name: "Legacy", PriceCents: 1000},
	})

	if rows[0]["price"] != "9.00 USD" {
		t.Errorf("Expected '9.00 USD', got %q", rows[0]["price"])
	}
	if rows[1]["price"] != "49.50 EUR" {
		t.Errorf("Expected '49.50 EUR', got %q", rows[1]["price"])
	}
	if rows[2]["price"] != "10.00 USD" {
		t.Errorf("Expected the currency to default to USD, got %q", rows[2]["price"])
	}
}
