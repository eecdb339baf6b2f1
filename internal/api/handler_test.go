package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emicklei/go-restful/v3"

	"github.com/kopischke/mdsearch/internal/api"
	"github.com/kopischke/mdsearch/internal/attr"
	"github.com/kopischke/mdsearch/internal/query"
)

type stubFinder struct {
	gotReq query.Request
	items  []map[string]any
	err    error
}

func (s *stubFinder) Find(_ context.Context, req query.Request) ([]map[string]any, error) {
	s.gotReq = req
	return s.items, s.err
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(context.Context) error { return s.err }

func setupTestAPI(finder api.Finder) *restful.Container {
	return setupTestAPIWithPinger(finder, &stubPinger{})
}

func setupTestAPIWithPinger(finder api.Finder, pinger api.Pinger) *restful.Container {
	container := restful.NewContainer()
	api.RegisterRoutes(container, api.NewHandler(finder, pinger))
	return container
}

func postFind(t *testing.T, container *restful.Container, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/query/v1/find", bytes.NewReader(payload))
	req.Header.Set("Content-Type", restful.MIME_JSON)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func TestAPI_Find(t *testing.T) {
	finder := &stubFinder{
		items: []map[string]any{
			{attr.Path: "/docs/a.txt"},
			{attr.Path: "/docs/b.txt"},
		},
	}
	container := setupTestAPI(finder)

	recorder := postFind(t, container, api.FindRequest{
		Predicate:  `kMDItemFSName == "*.txt"`,
		Scopes:     []string{"kMDQueryScopeHome"},
		MaxResults: 10,
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", recorder.Code, recorder.Body.String())
	}

	var response api.FindResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Count != 2 || len(response.Items) != 2 {
		t.Errorf("unexpected response: %+v", response)
	}
	if finder.gotReq.MaxResults != 10 || len(finder.gotReq.Scopes) != 1 {
		t.Errorf("request not passed through: %+v", finder.gotReq)
	}
}

func TestAPI_Find_BadPredicate(t *testing.T) {
	finder := &stubFinder{err: query.ErrBadQuery}
	container := setupTestAPI(finder)

	recorder := postFind(t, container, api.FindRequest{Predicate: `kMDItemBogus == "x"`})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestAPI_Find_UnknownScope(t *testing.T) {
	finder := &stubFinder{}
	container := setupTestAPI(finder)

	recorder := postFind(t, container, api.FindRequest{
		Predicate: `kMDItemFSSize > 0`,
		Scopes:    []string{"kMDQueryScopeAttic"},
	})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
	// The request must be rejected before it reaches the engine.
	if finder.gotReq.Predicate != "" {
		t.Errorf("finder was called: %+v", finder.gotReq)
	}
}

func TestAPI_Find_MissingPredicate(t *testing.T) {
	container := setupTestAPI(&stubFinder{})

	recorder := postFind(t, container, api.FindRequest{})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestAPI_Attributes(t *testing.T) {
	container := setupTestAPI(&stubFinder{})

	req := httptest.NewRequest(http.MethodGet, "/query/v1/attributes", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	var response api.AttributesResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Attributes) != len(attr.Keys()) {
		t.Errorf("got %d attributes, want %d", len(response.Attributes), len(attr.Keys()))
	}
}

func TestAPI_Health(t *testing.T) {
	container := setupTestAPI(&stubFinder{})

	req := httptest.NewRequest(http.MethodGet, "/query/v1/health", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("status = %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("status = %q", response.Status)
	}
}

func TestAPI_Health_EngineDown(t *testing.T) {
	container := setupTestAPIWithPinger(&stubFinder{}, &stubPinger{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/query/v1/health", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", recorder.Code)
	}
}
