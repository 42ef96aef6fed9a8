package axiom

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestSetUserBlocked_SendsOnlyBlockedFlag(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":"u1","username":"dana","blocked":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithToken("tok")

	user, err := client.SetUserBlocked(context.Background(), "u1", true)
	if err != nil {
		t.Fatalf("Expected block to succeed, got %v", err)
	}

	if gotMethod != http.MethodPut || gotPath != "/auth/admin/users/u1" {
		t.Errorf("Expected PUT /auth/admin/users/u1, got %s %s", gotMethod, gotPath)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("Expected a JSON body, got %v", err)
	}
	if len(payload) != 1 || string(payload["blocked"]) != "true" {
		t.Errorf("Expected payload with only blocked=true, got %s", gotBody)
	}

	if !user.Blocked {
		t.Error("Expected the returned user to be blocked")
	}
}

func TestSoftDeleteUser_Path(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithToken("tok")

	if err := client.SoftDeleteUser(context.Background(), "u2"); err != nil {
		t.Fatalf("Expected soft delete to succeed, got %v", err)
	}

	if gotMethod != http.MethodDelete || gotPath != "/auth/admin/users/u2/soft" {
		t.Errorf("Expected DELETE /auth/admin/users/u2/soft, got %s %s", gotMethod, gotPath)
	}
}

func TestListUsers_RoleAndBlockedFilters(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"items":[],"total":0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithToken("tok")

	blocked := false
	_, err := client.ListUsers(context.Background(), ListUsersParams{
		Role:    RoleUser,
		Blocked: &blocked,
	})
	if err != nil {
		t.Fatalf("Expected list to succeed, got %v", err)
	}

	values, err := url.ParseQuery(gotQuery)
	if err != nil {
		t.Fatal(err)
	}
	if values.Get("role") != "user" {
		t.Errorf("Expected role filter 'user', got %q", values.Get("role"))
	}
	if values.Get("blocked") != "false" {
		t.Errorf("Expected blocked filter 'false', got %q", values.Get("blocked"))
	}
}
