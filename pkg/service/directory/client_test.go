package directory_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orgwatch/dirsync/pkg/service/directory"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		token   string
		wantErr bool
	}{
		{
			name:    "valid configuration",
			baseURL: "https://directory.example.com/v1",
			token:   "test-token",
			wantErr: false,
		},
		{
			name:    "empty base URL",
			baseURL: "",
			token:   "test-token",
			wantErr: true,
		},
		{
			name:    "empty token",
			baseURL: "https://directory.example.com/v1",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := directory.New(tt.baseURL, tt.token)
			if tt.wantErr {
				if err == nil {
					t.Error("New() expected error but got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error: %v", err)
			}
			if svc == nil {
				t.Error("New() returned nil service")
			}
		})
	}
}

func TestListTeamsPagination(t *testing.T) {
	var gotAuth string
	var requests int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotAuth = r.Header.Get("Authorization")

		switch r.URL.Path {
		case "/teams":
			// First page carries a continuation link back to this server
			if r.URL.Query().Get("page") == "2" {
				writeJSON(t, w, map[string]any{
					"value": []map[string]any{
						{"Id": "team-3", "DisplayName": "Gamma"},
					},
				})
				return
			}
			writeJSON(t, w, map[string]any{
				"value": []map[string]any{
					{"Id": "team-1", "DisplayName": "Alpha"},
					{"Id": "team-2", "DisplayName": "Beta"},
				},
				"@odata.nextLink": "http://" + r.Host + "/teams?page=2",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	svc, err := directory.New(srv.URL, "test-token")
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	var names []string
	for rec, err := range svc.ListTeams(context.Background()) {
		if err != nil {
			t.Fatalf("ListTeams yielded error: %v", err)
		}
		v, _ := rec.Get("DisplayName")
		names = append(names, v.(string))
	}

	if requests != 2 {
		t.Errorf("expected 2 page requests, got %d", requests)
	}
	if len(names) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(names))
	}
	if names[0] != "Alpha" || names[1] != "Beta" || names[2] != "Gamma" {
		t.Errorf("unexpected team order: %v", names)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
}

func TestListTeamsEarlyStop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"value": []map[string]any{
				{"Id": "team-1"},
				{"Id": "team-2"},
			},
			"@odata.nextLink": "http://" + r.Host + "/teams?page=2",
		})
	}))
	defer srv.Close()

	svc, err := directory.New(srv.URL, "test-token")
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	count := 0
	for _, err := range svc.ListTeams(context.Background()) {
		if err != nil {
			t.Fatalf("ListTeams yielded error: %v", err)
		}
		count++
		break
	}

	if count != 1 {
		t.Errorf("expected iteration to stop after 1 record, got %d", count)
	}
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/user-9" {
			http.NotFound(w, r)
			return
		}
		writeJSON(t, w, map[string]any{
			"Id":                "user-9",
			"UserPrincipalName": "u9@example.com",
			"AccountEnabled":    true,
		})
	}))
	defer srv.Close()

	svc, err := directory.New(srv.URL, "test-token")
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	rec, err := svc.GetUser(context.Background(), "user-9")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}

	if v, _ := rec.Get("UserPrincipalName"); v != "u9@example.com" {
		t.Errorf("unexpected principal name: %v", v)
	}
	if v, _ := rec.Get("AccountEnabled"); v != true {
		t.Errorf("unexpected AccountEnabled: %v", v)
	}
}

func TestWithTenantScopesPaths(t *testing.T) {
	var gotPaths []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		switch r.URL.Path {
		case "/tenants/acme/teams/team-1":
			writeJSON(t, w, map[string]any{"Id": "team-1", "DisplayName": "Alpha"})
		case "/tenants/acme/users":
			writeJSON(t, w, map[string]any{
				"value": []map[string]any{
					{"Id": "user-1"},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	svc, err := directory.New(srv.URL, "test-token", directory.WithTenant("acme"))
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	if _, err := svc.GetTeam(context.Background(), "team-1"); err != nil {
		t.Fatalf("GetTeam failed: %v", err)
	}
	count := 0
	for _, err := range svc.ListUsers(context.Background()) {
		if err != nil {
			t.Fatalf("ListUsers yielded error: %v", err)
		}
		count++
	}
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}

	want := []string{"/tenants/acme/teams/team-1", "/tenants/acme/users"}
	if len(gotPaths) != len(want) {
		t.Fatalf("unexpected request paths: %v", gotPaths)
	}
	for i := range want {
		if gotPaths[i] != want[i] {
			t.Errorf("request %d: expected path %q, got %q", i, want[i], gotPaths[i])
		}
	}
}

func TestGetTeamServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc, err := directory.New(srv.URL, "test-token")
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	if _, err := svc.GetTeam(context.Background(), "team-1"); err == nil {
		t.Error("expected error for non-OK status, got nil")
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode response: %v", err)
	}
}
