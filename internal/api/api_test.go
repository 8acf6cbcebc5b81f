package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/17okk-xie/portfolio/internal/auth"
	"github.com/17okk-xie/portfolio/internal/catalog"
	"github.com/17okk-xie/portfolio/internal/contact"
	"github.com/17okk-xie/portfolio/internal/db"
	"github.com/17okk-xie/portfolio/internal/store"
)

const (
	testJWTSecret = "test-secret"
	testPIN       = "7526"
)

type testEnv struct {
	server  *httptest.Server
	catalog *catalog.Store
}

func setupTestServer(t *testing.T) (*testEnv, string) {
	t.Helper()
	database := db.NewTestDB(t)

	pin, err := auth.NewPIN(testPIN)
	if err != nil {
		t.Fatalf("NewPIN: %v", err)
	}

	cat := catalog.New(store.NewKV(database))
	router := NewRouter(Deps{
		Catalog:     cat,
		Contact:     contact.NewService(store.Messages{DB: database}, nil),
		PIN:         pin,
		JWTSecret:   testJWTSecret,
		Revocations: store.Revocations{DB: database},
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	body, _ := json.Marshal(map[string]string{"pin": testPIN})
	resp, err := http.Post(server.URL+"/api/auth/pin", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("unlock request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unlock failed: %d", resp.StatusCode)
	}

	var tokenResp map[string]any
	json.NewDecoder(resp.Body).Decode(&tokenResp)
	token, _ := tokenResp["token"].(string)
	if token == "" {
		t.Fatal("empty token from unlock")
	}

	return &testEnv{server: server, catalog: cat}, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func do(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	req, err := authRequest(method, url, token, body)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestUnlockEndpoint(t *testing.T) {
	env, _ := setupTestServer(t)

	resp := do(t, "POST", env.server.URL+"/api/auth/pin", "", map[string]string{"pin": "0000"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong PIN, got %d", resp.StatusCode)
	}

	resp = do(t, "POST", env.server.URL+"/api/auth/pin", "", map[string]string{"pin": "12"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed PIN, got %d", resp.StatusCode)
	}
}

func TestListProjects(t *testing.T) {
	env, _ := setupTestServer(t)

	resp := do(t, "GET", env.server.URL+"/api/projects", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var items []catalog.CatalogItem
	json.NewDecoder(resp.Body).Decode(&items)
	if len(items) != len(catalog.Builtins()) {
		t.Errorf("expected %d projects, got %d", len(catalog.Builtins()), len(items))
	}

	resp = do(t, "GET", env.server.URL+"/api/projects?category=media", "", nil)
	var media []catalog.CatalogItem
	json.NewDecoder(resp.Body).Decode(&media)
	if len(media) != 3 {
		t.Errorf("expected 3 media projects, got %d", len(media))
	}
	for _, it := range media {
		if it.Category != catalog.CategoryMedia {
			t.Errorf("project %d has category %q", it.ID, it.Category)
		}
	}

	resp = do(t, "GET", env.server.URL+"/api/projects?category=music", "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown category, got %d", resp.StatusCode)
	}
}

func TestGetProject(t *testing.T) {
	env, _ := setupTestServer(t)

	resp := do(t, "GET", env.server.URL+"/api/projects/6", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp = do(t, "GET", env.server.URL+"/api/projects/424242", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}

	resp = do(t, "GET", env.server.URL+"/api/projects/abc", "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUnauthenticatedAccess(t *testing.T) {
	env, _ := setupTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{"PUT", "/api/projects/1"},
		{"DELETE", "/api/projects/1"},
		{"POST", "/api/projects/1/restore"},
		{"POST", "/api/projects/bulk-delete"},
		{"GET", "/api/projects/hidden"},
		{"GET", "/api/messages"},
	} {
		resp := do(t, tc.method, env.server.URL+tc.path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, resp.StatusCode)
		}
	}

	wrongScope, _ := auth.GenerateToken(testJWTSecret, "other", 0)
	resp := do(t, "GET", env.server.URL+"/api/projects/hidden", wrongScope, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong scope, got %d", resp.StatusCode)
	}
}

func TestUpdateHideRestoreFlow(t *testing.T) {
	env, token := setupTestServer(t)
	base := env.server.URL + "/api/projects/"

	resp := do(t, "PUT", base+"3", token, map[string]string{"status": "completed"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	var updated catalog.CatalogItem
	json.NewDecoder(resp.Body).Decode(&updated)
	if updated.Status != catalog.StatusCompleted {
		t.Errorf("expected Completed, got %q", updated.Status)
	}

	resp = do(t, "PUT", base+"3", token, map[string]string{"status": "paused"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad status: expected 400, got %d", resp.StatusCode)
	}
	resp = do(t, "PUT", base+"3", token, map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty patch: expected 400, got %d", resp.StatusCode)
	}

	resp = do(t, "DELETE", base+"3", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}

	resp = do(t, "GET", base+"hidden", token, nil)
	var hidden []catalog.CatalogItem
	json.NewDecoder(resp.Body).Decode(&hidden)
	if len(hidden) != 1 || hidden[0].ID != 3 || hidden[0].Status != catalog.StatusCompleted {
		t.Errorf("unexpected hidden list: %+v", hidden)
	}

	resp = do(t, "POST", base+"3/restore", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("restore: expected 204, got %d", resp.StatusCode)
	}
	resp = do(t, "GET", base+"3", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("restored project: expected 200, got %d", resp.StatusCode)
	}
}

func TestBulkDeleteEndpoint(t *testing.T) {
	env, token := setupTestServer(t)

	resp := do(t, "POST", env.server.URL+"/api/projects/bulk-delete", token, map[string]any{"ids": []int64{1, 999999}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Deleted []int64           `json:"deleted"`
		Failed  map[string]string `json:"failed"`
	}
	json.NewDecoder(resp.Body).Decode(&out)
	if len(out.Deleted) != 1 || out.Deleted[0] != 1 {
		t.Errorf("expected [1] deleted, got %v", out.Deleted)
	}
	if _, ok := out.Failed["999999"]; !ok {
		t.Errorf("expected 999999 in failures, got %v", out.Failed)
	}

	resp = do(t, "POST", env.server.URL+"/api/projects/bulk-delete", token, map[string]any{"ids": []int64{}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty ids: expected 400, got %d", resp.StatusCode)
	}
}

func TestContactFlow(t *testing.T) {
	env, token := setupTestServer(t)

	resp := do(t, "POST", env.server.URL+"/api/contact", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "subject": "Hi", "message": "Love the reel.",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp = do(t, "POST", env.server.URL+"/api/contact", "", map[string]string{
		"name": "Ada", "email": "nope", "subject": "Hi", "message": "x",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var verr struct {
		Fields map[string]string `json:"fields"`
	}
	json.NewDecoder(resp.Body).Decode(&verr)
	if verr.Fields["email"] == "" {
		t.Errorf("expected email field error, got %v", verr.Fields)
	}

	resp = do(t, "GET", env.server.URL+"/api/messages", token, nil)
	var messages []map[string]any
	json.NewDecoder(resp.Body).Decode(&messages)
	if len(messages) != 1 {
		t.Errorf("expected 1 message, got %d", len(messages))
	}
}

func TestLockRevokesSession(t *testing.T) {
	env, token := setupTestServer(t)

	resp := do(t, "POST", env.server.URL+"/api/auth/lock", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("lock: expected 204, got %d", resp.StatusCode)
	}

	resp = do(t, "GET", env.server.URL+"/api/projects/hidden", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after lock, got %d", resp.StatusCode)
	}
}

func TestUploadedProjectViaCatalog(t *testing.T) {
	env, token := setupTestServer(t)

	item, err := env.catalog.Create(t.Context(), catalog.CreateInput{Title: "Reel", MediaRef: "/media/x.mp4"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	url := fmt.Sprintf("%s/api/projects/%d", env.server.URL, item.ID)
	resp := do(t, "GET", url, "", nil)
	var got map[string]any
	json.NewDecoder(resp.Body).Decode(&got)
	if got["kind"] != "uploaded" {
		t.Errorf("expected kind uploaded, got %v", got["kind"])
	}

	resp = do(t, "DELETE", url, token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	resp = do(t, "POST", url+"/restore", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("restore no-op: expected 204, got %d", resp.StatusCode)
	}
	resp = do(t, "GET", url, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleted upload: expected 404, got %d", resp.StatusCode)
	}
}

func TestLoggingMiddlewareRecordsStatus(t *testing.T) {
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/pot", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", rec.Code)
	}
}
