package export

import (
	"encoding/csv"
	"reflect"
	"strings"
	"testing"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
)

func TestSummariesCSVStableColumns(t *testing.T) {
	summaries := []axiom.Summary{
		{
			CreatedAt: "2025-03-01T10:00:00Z",
			Fields:    map[string]string{"Caller Name": "Ana", "Duration": "3m12s"},
		},
		{
			CreatedAt: "2025-03-01T11:00:00Z",
			Fields:    map[string]string{"Duration": "1m02s", "Booking Ref": "BR-7"},
		},
	}

	data, err := CSV(summaries)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV, got %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d records", len(records))
	}

	expectedHeader := []string{"created_at", "Caller Name", "Duration", "Booking Ref"}
	if !reflect.DeepEqual(records[0], expectedHeader) {
		t.Errorf("Expected header %v, got %v", expectedHeader, records[0])
	}

	expectedFirst := []string{"2025-03-01T10:00:00Z", "Ana", "3m12s", ""}
	if !reflect.DeepEqual(records[1], expectedFirst) {
		t.Errorf("Expected first row %v, got %v", expectedFirst, records[1])
	}

	expectedSecond := []string{"2025-03-01T11:00:00Z", "", "1m02s", "BR-7"}
	if !reflect.DeepEqual(records[2], expectedSecond) {
		t.Errorf("Expected second row %v, got %v", expectedSecond, records[2])
	}
}

func TestSummariesCSVEmptyInput(t *testing.T) {
	data, err := CSV(nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected only the header, got %d records", len(records))
	}
	if !reflect.DeepEqual(records[0], []string{"created_at"}) {
		t.Errorf("Expected a bare created_at header, got %v", records[0])
	}
}
