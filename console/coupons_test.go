package console

import (
	"context"
	"testing"
	"time"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
)

func fixedNow() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func TestCouponsListFallsBackToDemoSeed(t *testing.T) {
	mock := NewMockCouponsAPI()
	mock.Legacy = true
	controller := NewCouponsController(mock)
	controller.now = fixedNow

	page, err := controller.List(context.Background(), "coupons", CouponsQuery{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.Strategy != DemoSeed {
		t.Errorf("Expected demo seed strategy, got %q", page.Strategy)
	}
	if len(page.Items) != 3 {
		t.Fatalf("Expected the 3 demo coupons, got %d", len(page.Items))
	}

	codes := make(map[string]bool)
	for _, coupon := range page.Items {
		codes[coupon.Code] = true
	}
	for _, code := range []string{"LAUNCH20", "WELCOME5", "BLACKFRIDAY"} {
		if !codes[code] {
			t.Errorf("Expected demo coupon %s", code)
		}
	}
}

func TestCouponsDemoSeedActiveFilterYieldsLaunch20(t *testing.T) {
	mock := NewMockCouponsAPI()
	mock.Legacy = true
	controller := NewCouponsController(mock)
	controller.now = fixedNow

	page, err := controller.List(context.Background(), "coupons", CouponsQuery{
		Status: axiom.CouponStatusActive,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(page.Items) != 1 {
		t.Fatalf("Expected exactly one active demo coupon, got %d", len(page.Items))
	}
	if page.Items[0].Code != "LAUNCH20" {
		t.Errorf("Expected LAUNCH20, got %s", page.Items[0].Code)
	}
	if page.Strategy != DemoSeed {
		t.Errorf("Expected demo seed strategy, got %q", page.Strategy)
	}
}

func TestCouponsListPrefersBackendData(t *testing.T) {
	mock := NewMockCouponsAPI(axiom.Coupon{ID: "c1", Code: "REAL10", PercentOff: 10, Status: axiom.CouponStatusActive})
	mock.Legacy = true
	controller := NewCouponsController(mock)
	controller.now = fixedNow

	page, err := controller.List(context.Background(), "coupons", CouponsQuery{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.Strategy != ClientPaged {
		t.Errorf("Expected client paging over backend data, got %q", page.Strategy)
	}
	if len(page.Items) != 1 || page.Items[0].Code != "REAL10" {
		t.Errorf("Expected only the backend coupon, got %v", page.Items)
	}
}

func TestCouponsSearchDoesNotTriggerDemoSeed(t *testing.T) {
	// An empty result for a search means nothing matched, not that the
	// backend has no coupon data.
	mock := NewMockCouponsAPI()
	mock.Legacy = true
	controller := NewCouponsController(mock)
	controller.now = fixedNow

	page, err := controller.List(context.Background(), "coupons", CouponsQuery{
		Query: Query{Search: "NOPE"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.Strategy != ClientPaged {
		t.Errorf("Expected client strategy for an empty search, got %q", page.Strategy)
	}
	if len(page.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(page.Items))
	}
}

func TestEffectiveCouponStatus(t *testing.T) {
	now := fixedNow()
	past := now.Add(-24 * time.Hour).Format(time.RFC3339)
	future := now.Add(24 * time.Hour).Format(time.RFC3339)

	testCases := []struct {
		name     string
		coupon   axiom.Coupon
		expected string
	}{
		{
			name:     "Draft stays draft",
			coupon:   axiom.Coupon{Status: axiom.CouponStatusDraft, StartsAt: past, ExpiresAt: future},
			expected: axiom.CouponStatusDraft,
		},
		{
			name:     "Future start is scheduled",
			coupon:   axiom.Coupon{Status: axiom.CouponStatusActive, StartsAt: future},
			expected: axiom.CouponStatusScheduled,
		},
		{
			name:     "Past expiry is expired",
			coupon:   axiom.Coupon{Status: axiom.CouponStatusActive, StartsAt: past, ExpiresAt: past},
			expected: axiom.CouponStatusExpired,
		},
		{
			name:     "Inside window is active",
			coupon:   axiom.Coupon{Status: axiom.CouponStatusActive, StartsAt: past, ExpiresAt: future},
			expected: axiom.CouponStatusActive,
		},
		{
			name:     "No window and no status defaults to active",
			coupon:   axiom.Coupon{},
			expected: axiom.CouponStatusActive,
		},
		{
			name:     "Unparseable window keeps the declared status",
			coupon:   axiom.Coupon{Status: axiom.CouponStatusActive, StartsAt: "soon"},
			expected: axiom.CouponStatusActive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EffectiveCouponStatus(tc.coupon, now); got != tc.expected {
				t.Errorf("Expected status %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestBuildCouponCreate(t *testing.T) {
	req, err := BuildCouponCreate(CouponForm{
		Code:       "  spring25  ",
		PercentOff: "25",
		PlanIDs:    []string{"plan-1", " "},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if req.Code != "SPRING25" {
		t.Errorf("Expected upper-cased code SPRING25, got %q", req.Code)
	}
	if req.PercentOff != 25 {
		t.Errorf("Expected percent off 25, got %d", req.PercentOff)
	}
	if len(req.PlanIDs) != 1 || req.PlanIDs[0] != "plan-1" {
		t.Errorf("Expected trimmed plan ids, got %v", req.PlanIDs)
	}
}

func TestBuildCouponCreateRejectsBadInput(t *testing.T) {
	testCases := []struct {
		name string
		form CouponForm
	}{
		{name: "Missing code", form: CouponForm{PercentOff: "10"}},
		{name: "No discount", form: CouponForm{Code: "X"}},
		{name: "Both discounts", form: CouponForm{Code: "X", PercentOff: "10", AmountOff: "5"}},
		{name: "Percent above 100", form: CouponForm{Code: "X", PercentOff: "120"}},
		{name: "Non-numeric amount", form: CouponForm{Code: "X", AmountOff: "five"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildCouponCreate(tc.form); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestBuildCouponCreateAmountInCents(t *testing.T) {
	req, err := BuildCouponCreate(CouponForm{Code: "FLAT", AmountOff: "12.50"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if req.AmountOffCents != 1250 {
		t.Errorf("Expected 1250 cents, got %d", req.AmountOffCents)
	}
}

func TestBuildCouponUpdateKeepsOnlySetFields(t *testing.T) {
	req, err := BuildCouponUpdate(CouponForm{Status: "expired"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if req.Status == nil || *req.Status != "expired" {
		t.Errorf("Expected status pointer 'expired', got %v", req.Status)
	}
	if req.Code != nil || req.PercentOff != nil || req.AmountOffCents != nil {
		t.Error("Expected untouched fields to stay nil")
	}
}

func TestDemoCouponsDerivedStatuses(t *testing.T) {
	now := fixedNow()
	expected := map[string]string{
		"LAUNCH20":    axiom.CouponStatusActive,
		"WELCOME5":    axiom.CouponStatusDraft,
		"BLACKFRIDAY": axiom.CouponStatusScheduled,
	}

	for _, coupon := range DemoCoupons(now) {
		if got := EffectiveCouponStatus(coupon, now); got != expected[coupon.Code] {
			t.Errorf("Expected %s to derive %q, got %q", coupon.Code, expected[coupon.Code], got)
		}
	}
}
