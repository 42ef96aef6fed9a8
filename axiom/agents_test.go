package axiom

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListAgents_QueryParameters(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"items":[],"total":0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithToken("tok")

	_, err := client.ListAgents(context.Background(), ListAgentsParams{
		Page:     2,
		PageSize: 25,
		Search:   "front desk",
	})
	if err != nil {
		t.Fatalf("Expected list to succeed, got %v", err)
	}

	if gotPath != "/auth/admin/agents" {
		t.Errorf("Expected path /auth/admin/agents, got %q", gotPath)
	}
	if !strings.Contains(gotQuery, "page=2") || !strings.Contains(gotQuery, "page_size=25") {
		t.Errorf("Expected pagination parameters in query, got %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "search=front+desk") {
		t.Errorf("Expected search parameter in query, got %q", gotQuery)
	}
}

func TestUpdateAgent_PatchWithOnlySetFields(t *testing.T) {
	var gotMethod string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":"a1","name":"Reception"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithToken("tok")

	name := "Reception"
	_, err := client.UpdateAgent(context.Background(), "a1", AgentUpdate{Name: &name})
	if err != nil {
		t.Fatalf("Expected update to succeed, got %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("Expected PATCH, got %s", gotMethod)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("Expected a JSON body, got %v", err)
	}
	if len(payload) != 1 {
		t.Errorf("Expected only the name field in the payload, got %v", payload)
	}
	if string(payload["name"]) != `"Reception"` {
		t.Errorf("Expected name 'Reception', got %s", payload["name"])
	}
}

func TestDeleteAgent_Path(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithToken("tok")

	if err := client.DeleteAgent(context.Background(), "a9"); err != nil {
		t.Fatalf("Expected delete to succeed, got %v", err)
	}

	if gotMethod != http.MethodDelete || gotPath != "/auth/admin/agents/a9" {
		t.Errorf("Expected DELETE /auth/admin/agents/a9, got %s %s", gotMethod, gotPath)
	}
}

func TestListUnassignedAgents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/admin/agents/unassigned" {
			t.Errorf("Expected the unassigned path, got %q", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"a1","name":"Spare"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithToken("tok")

	agents, err := client.ListUnassignedAgents(context.Background())
	if err != nil {
		t.Fatalf("Expected list to succeed, got %v", err)
	}
	if len(agents) != 1 || agents[0].Name != "Spare" {
		t.Errorf("Expected one agent named Spare, got %v", agents)
	}
}

func TestUploadAgentDocument_MultipartText(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":"d1","type":"text","status":"processing"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithToken("tok")

	doc, err := client.UploadAgentDocument(context.Background(), "a1", DocumentUpload{
		Name: "FAQ",
		Text: "Opening hours are 9 to 5.",
	})
	if err != nil {
		t.Fatalf("Expected upload to succeed, got %v", err)
	}

	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("Expected a multipart request, got %q", gotContentType)
	}
	if !strings.Contains(string(gotBody), "Opening hours are 9 to 5.") {
		t.Error("Expected the text field in the multipart body")
	}
	if doc.ID != "d1" {
		t.Errorf("Expected document d1, got %q", doc.ID)
	}
}

func TestUploadAgentDocument_RequiresSource(t *testing.T) {
	client := NewClient("http://unused", nil)

	if _, err := client.UploadAgentDocument(context.Background(), "a1", DocumentUpload{Name: "empty"}); err == nil {
		t.Error("Expected an upload without file, url, or text to fail")
	}
}
