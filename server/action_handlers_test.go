package server

import (
	"context"
	"fmt"
	"testing"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/console"
)

func exportFixture(n int) []axiom.Summary {
	summaries := make([]axiom.Summary, 0, n)
	for i := 0; i < n; i++ {
		summaries = append(summaries, axiom.Summary{
			ID:        fmt.Sprintf("call-%03d", i),
			CreatedAt: "2025-03-01T10:00:00Z",
			Fields:    map[string]string{"Caller Name": fmt.Sprintf("Caller %d", i)},
		})
	}
	return summaries
}

func TestCollectSummariesWalksAllPages(t *testing.T) {
	mock := console.NewMockSummariesAPI(exportFixture(250)...)

	all, err := collectSummaries(context.Background(), mock, exportRequest{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 250 {
		t.Fatalf("Expected 250 summaries, got %d", len(all))
	}
	if all[0].ID != "call-000" || all[249].ID != "call-249" {
		t.Error("Expected summaries in backend order")
	}
}

func TestCollectSummariesLegacyArrayIsOneShot(t *testing.T) {
	mock := console.NewMockSummariesAPI(exportFixture(30)...)
	mock.Legacy = true

	all, err := collectSummaries(context.Background(), mock, exportRequest{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 30 {
		t.Errorf("Expected the legacy array once, got %d summaries", len(all))
	}
}

func TestCollectSummariesEmptyBackend(t *testing.T) {
	mock := console.NewMockSummariesAPI()

	all, err := collectSummaries(context.Background(), mock, exportRequest{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Expected no summaries, got %d", len(all))
	}
}

func TestCollectSummariesPropagatesErrors(t *testing.T) {
	mock := console.NewMockSummariesAPI()
	mock.Err = axiom.APIError{Status: 500, Message: "backend down"}

	if _, err := collectSummaries(context.Background(), mock, exportRequest{}); err == nil {
		t.Fatal("Expected an error")
	}
}
