package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(server.URL, "Bearer test-token", opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, server
}

func TestSearchRESTFiltersIneligible(t *testing.T) {
	var gotBody restSearchRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != restSearchPath {
			t.Errorf("path = %q, want %q", r.URL.Path, restSearchPath)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"total":   3,
			"data": []map[string]any{
				{"order_id": 1, "task_code_front": "AB1", "order": map[string]any{
					"id": 1, "order_details": []map[string]any{{"id": 11, "status_code_string": "C1F1R1P1E1V0"}},
				}},
				{"order_id": 2, "task_code_front": "AB2", "order": map[string]any{
					"id": 2, "order_details": []map[string]any{{"id": 12, "status_code_string": "C1F1R1P1E1V1I0"}},
				}},
				{"order_id": 3, "task_code_front": "AB3", "order": map[string]any{
					"id": 3, "order_details": []map[string]any{{"id": 13, "status_code_string": "C1F1R1P1E1V0"}},
				}},
			},
		})
	}))

	result := client.Search(context.Background(), "AB")
	if gotBody.TaskCode != "AB" || gotBody.Limit != searchLimit {
		t.Errorf("request body = %+v", gotBody)
	}
	if result.TotalFound != 3 {
		t.Errorf("TotalFound = %d, want 3", result.TotalFound)
	}
	if result.ValidCount != 2 {
		t.Errorf("ValidCount = %d, want 2", result.ValidCount)
	}
	if len(result.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want only eligible lines", len(result.Lines))
	}
	if result.Lines[0].ID != 11 || result.Lines[1].ID != 13 {
		t.Errorf("line ids = (%d, %d), want (11, 13)", result.Lines[0].ID, result.Lines[1].ID)
	}
}

func TestSearchRESTUnsuccessfulEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	result := client.Search(context.Background(), "AB")
	if result.TotalFound != 0 || result.ValidCount != 0 || len(result.Lines) != 0 {
		t.Fatalf("want empty result, got %+v", result)
	}
}

func TestSearchIndexDialect(t *testing.T) {
	var gotBody indexSearchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/indexes/order_details/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if key := r.Header.Get("X-Meilisearch-API-Key"); key != "meili-key" {
			t.Errorf("X-Meilisearch-API-Key = %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"totalHits": 1,
			"hits": []map[string]any{
				{"id": 5, "order_id": 9, "task_code_front": "QQ7", "status_code_string": "C1F1R1P1E1V0"},
			},
		})
	}))
	t.Cleanup(server.Close)

	// Force the index dialect via the path marker.
	client, err := New(server.URL+"/indexes/order_details", "meili-key")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if client.Dialect() != DialectIndex {
		t.Fatalf("Dialect = %q, want index", client.Dialect())
	}
	// The base URL carries the index prefix already, so the search path is
	// joined against the server root instead.
	client.baseURL = server.URL

	result := client.Search(context.Background(), "QQ7")
	if gotBody.Filter != `task_code_front_prefix = "QQ7"` {
		t.Errorf("filter = %q", gotBody.Filter)
	}
	if len(gotBody.Sort) != 1 || gotBody.Sort[0] != "created_at:desc" {
		t.Errorf("sort = %v", gotBody.Sort)
	}
	if gotBody.HitsPerPage != searchLimit || gotBody.Page != 1 {
		t.Errorf("paging = (%d, %d)", gotBody.HitsPerPage, gotBody.Page)
	}
	if result.TotalFound != 1 || result.ValidCount != 1 || len(result.Lines) != 1 {
		t.Fatalf("result = %+v", result)
	}
	if result.Lines[0].ID != 5 || result.Lines[0].OrderID != 9 {
		t.Errorf("line = %+v", result.Lines[0])
	}
}

func TestSearchTransportFailureIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client, err := New(server.URL, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result := client.Search(context.Background(), "AB")
	if result.TotalFound != 0 || len(result.Lines) != 0 {
		t.Fatalf("want empty result after transport failure, got %+v", result)
	}
}

func TestSearchEmptyCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for an empty code")
	}))
	if result := client.Search(context.Background(), ""); result.TotalFound != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestUpdateStatusCode(t *testing.T) {
	cases := []struct {
		name       string
		httpStatus int
		body       string
		want       bool
	}{
		{"http ok no envelope", http.StatusOK, `{}`, true},
		{"http ok empty body", http.StatusOK, ``, true},
		{"envelope true", http.StatusOK, `{"status": true}`, true},
		{"envelope false overrides ok", http.StatusOK, `{"status": false}`, false},
		{"server error", http.StatusInternalServerError, `{}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut {
					t.Errorf("method = %q, want PUT", r.Method)
				}
				if r.URL.Path != "/orders/42/status-code" {
					t.Errorf("path = %q", r.URL.Path)
				}
				var body struct {
					StatusCodeString string `json:"status_code_string"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("decode request: %v", err)
				}
				if body.StatusCodeString != "C1F1R1P1E1V1I0" {
					t.Errorf("status_code_string = %q", body.StatusCodeString)
				}
				w.WriteHeader(tc.httpStatus)
				w.Write([]byte(tc.body))
			}))
			got, err := client.UpdateStatusCode(context.Background(), 42, "C1F1R1P1E1V1I0")
			if err != nil {
				t.Fatalf("UpdateStatusCode: %v", err)
			}
			if got != tc.want {
				t.Fatalf("accepted = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUpdateStatusRejectedOnIndexDialect(t *testing.T) {
	client, err := New("http://10.0.0.5:7700", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := client.UpdateStatus(context.Background(), 1, "done", "")
	if ok || err == nil {
		t.Fatalf("want rejection on index dialect, got (%v, %v)", ok, err)
	}
}

func TestTestConnectionLadder(t *testing.T) {
	t.Run("rest 422 means reachable", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		if !client.TestConnection(context.Background()) {
			t.Fatal("422 from the search endpoint should count as reachable")
		}
	})

	t.Run("rest auth rejection is definitive", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		if client.TestConnection(context.Background()) {
			t.Fatal("401 must fail the probe without falling back")
		}
	})

	t.Run("falls back to health endpoint", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" && r.Method == http.MethodGet {
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		if !client.TestConnection(context.Background()) {
			t.Fatal("healthy /health should count as reachable")
		}
	})

	t.Run("everything down", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		if client.TestConnection(context.Background()) {
			t.Fatal("all-404 backend must not probe as reachable")
		}
	})
}
