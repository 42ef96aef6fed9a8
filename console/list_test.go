package console

import (
	"context"
	"fmt"
	"testing"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
)

func makeUsers(n int) []axiom.User {
	users := make([]axiom.User, n)
	for i := range users {
		users[i] = axiom.User{
			ID:       fmt.Sprintf("user-%02d", i+1),
			Username: fmt.Sprintf("user%02d", i+1),
			Email:    fmt.Sprintf("user%02d@example.com", i+1),
			Role:     axiom.RoleUser,
		}
	}
	return users
}

func TestResolvePageClampsAfterDelete(t *testing.T) {
	// 47 records fill five pages of ten. After seven deletes the last
	// page is page 4, so a stale request for page 5 must land there.
	mock := NewMockUsersAPI(makeUsers(40)...)
	controller := NewUsersController(mock)

	page, err := controller.List(context.Background(), "users", UsersQuery{
		Query: Query{Page: 5, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.PageNum != 4 {
		t.Errorf("Expected clamp to page 4, got page %d", page.PageNum)
	}
	if len(page.Items) != 10 {
		t.Errorf("Expected 10 items on the clamped page, got %d", len(page.Items))
	}
	if page.TotalRecords != 40 {
		t.Errorf("Expected total 40, got %d", page.TotalRecords)
	}
	if page.Strategy != ServerPaged {
		t.Errorf("Expected server strategy, got %q", page.Strategy)
	}
	if len(mock.ListCalls) != 2 {
		t.Errorf("Expected exactly one refetch (2 calls), got %d calls", len(mock.ListCalls))
	}
	if mock.ListCalls[1].Page != 4 {
		t.Errorf("Expected refetch of page 4, got page %d", mock.ListCalls[1].Page)
	}
}

func TestResolvePageWalksBackWithoutTotal(t *testing.T) {
	// An envelope without a usable total cannot be clamped directly, so
	// the fetch steps back one page at a time until it finds data.
	var calls []int
	fetch := func(ctx context.Context, page, pageSize int) (axiom.List[axiom.User], error) {
		calls = append(calls, page)
		if page >= 3 {
			return axiom.List[axiom.User]{Paged: true}, nil
		}
		return axiom.List[axiom.User]{Items: makeUsers(10), Paged: true}, nil
	}

	page, err := resolvePage(context.Background(), Query{Page: 5, PageSize: 10}, fetch)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.PageNum != 2 {
		t.Errorf("Expected walk-back to page 2, got page %d", page.PageNum)
	}
	expected := []int{5, 4, 3, 2}
	if len(calls) != len(expected) {
		t.Fatalf("Expected calls %v, got %v", expected, calls)
	}
	for i, want := range expected {
		if calls[i] != want {
			t.Errorf("Expected call %d to fetch page %d, got %d", i, want, calls[i])
		}
	}
}

func TestResolvePageWalkBackStopsAtPageOne(t *testing.T) {
	fetch := func(ctx context.Context, page, pageSize int) (axiom.List[axiom.User], error) {
		return axiom.List[axiom.User]{Paged: true}, nil
	}

	page, err := resolvePage(context.Background(), Query{Page: 3, PageSize: 10}, fetch)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if page.PageNum != 1 {
		t.Errorf("Expected to stop at page 1, got page %d", page.PageNum)
	}
	if len(page.Items) != 0 {
		t.Errorf("Expected an empty page, got %d items", len(page.Items))
	}
}

func TestResolvePageLegacyArrayPagesLocally(t *testing.T) {
	mock := NewMockUsersAPI(makeUsers(25)...)
	mock.Legacy = true
	controller := NewUsersController(mock)

	testCases := []struct {
		name          string
		page          int
		expectedPage  int
		expectedItems int
		firstID       string
	}{
		{name: "Middle page", page: 2, expectedPage: 2, expectedItems: 10, firstID: "user-11"},
		{name: "Short last page", page: 3, expectedPage: 3, expectedItems: 5, firstID: "user-21"},
		{name: "Past the end clamps", page: 9, expectedPage: 3, expectedItems: 5, firstID: "user-21"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := controller.List(context.Background(), "users", UsersQuery{
				Query: Query{Page: tc.page, PageSize: 10},
			})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if page.Strategy != ClientPaged {
				t.Errorf("Expected client strategy for a legacy response, got %q", page.Strategy)
			}
			if page.PageNum != tc.expectedPage {
				t.Errorf("Expected page %d, got %d", tc.expectedPage, page.PageNum)
			}
			if len(page.Items) != tc.expectedItems {
				t.Errorf("Expected %d items, got %d", tc.expectedItems, len(page.Items))
			}
			if page.TotalRecords != 25 {
				t.Errorf("Expected total 25, got %d", page.TotalRecords)
			}
			if len(page.Items) > 0 && page.Items[0].ID != tc.firstID {
				t.Errorf("Expected first item %s, got %s", tc.firstID, page.Items[0].ID)
			}
		})
	}
}

func TestQueryNormalization(t *testing.T) {
	testCases := []struct {
		name     string
		in       Query
		expected Query
	}{
		{name: "Zero values", in: Query{}, expected: Query{Page: 1, PageSize: DefaultPageSize}},
		{name: "Negative page", in: Query{Page: -3, PageSize: 20}, expected: Query{Page: 1, PageSize: 20}},
		{name: "Oversized page size", in: Query{Page: 2, PageSize: 5000}, expected: Query{Page: 2, PageSize: 100}},
		{name: "Already valid", in: Query{Page: 4, PageSize: 25}, expected: Query{Page: 4, PageSize: 25}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.normalized()
			if got.Page != tc.expected.Page || got.PageSize != tc.expected.PageSize {
				t.Errorf("Expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}
