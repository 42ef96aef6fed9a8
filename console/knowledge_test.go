package console

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
)

func TestKnowledgeDeleteRefusedWhileInUse(t *testing.T) {
	mock := NewMockKnowledgeAPI(axiom.Document{ID: "doc-1", Name: "faq.pdf"})
	mock.Dependents["doc-1"] = []axiom.DependentAgent{
		{ID: "agent-1", Name: "Front Desk"},
		{ID: "agent-2", Name: "Night Shift"},
	}
	controller := NewKnowledgeController(mock)

	err := controller.Delete(context.Background(), "knowledge", "doc-1", false)

	var inUse *ErrDocumentInUse
	if !errors.As(err, &inUse) {
		t.Fatalf("Expected ErrDocumentInUse, got %v", err)
	}
	if len(inUse.Agents) != 2 {
		t.Errorf("Expected 2 dependent agents, got %d", len(inUse.Agents))
	}
	if !strings.Contains(inUse.Error(), "Front Desk") || !strings.Contains(inUse.Error(), "Night Shift") {
		t.Errorf("Expected the error to name the agents, got %q", inUse.Error())
	}
	if len(mock.Deleted) != 0 {
		t.Errorf("Expected no delete to reach the backend, got %v", mock.Deleted)
	}
}

func TestKnowledgeDeleteForcedBypassesDependents(t *testing.T) {
	mock := NewMockKnowledgeAPI(axiom.Document{ID: "doc-1", Name: "faq.pdf"})
	mock.Dependents["doc-1"] = []axiom.DependentAgent{{ID: "agent-1", Name: "Front Desk"}}
	controller := NewKnowledgeController(mock)

	if err := controller.Delete(context.Background(), "knowledge", "doc-1", true); err != nil {
		t.Fatalf("Expected forced delete to succeed, got %v", err)
	}
	if len(mock.Deleted) != 1 || mock.Deleted[0] != "doc-1" {
		t.Errorf("Expected doc-1 to be deleted, got %v", mock.Deleted)
	}
}

func TestKnowledgeDeleteWithoutDependents(t *testing.T) {
	mock := NewMockKnowledgeAPI(axiom.Document{ID: "doc-1", Name: "faq.pdf"})
	controller := NewKnowledgeController(mock)

	if err := controller.Delete(context.Background(), "knowledge", "doc-1", false); err != nil {
		t.Fatalf("Expected delete to succeed, got %v", err)
	}
	if len(mock.Documents) != 0 {
		t.Errorf("Expected the document to be gone, got %v", mock.Documents)
	}
}

func TestKnowledgeRowsFormatsSize(t *testing.T) {
	rows := KnowledgeRows([]axiom.Document{
		{ID: "doc-1", Name: "faq.pdf", SizeBytes: 2048000},
		{ID: "doc-2", Name: "notes.txt"},
	})

	if rows[0]["size"] == "" {
		t.Error("Expected a humanized size for a sized document")
	}
	if rows[1]["size"] != "" {
		t.Errorf("Expected empty size when unknown, got %q", rows[1]["size"])
	}
}
