package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"csvalign/adapters/llm"
	"csvalign/app"
	"csvalign/internal/config"
)

func newTestServer(t *testing.T, mock *llm.MockClient) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := llm.NewRegistry(time.Second)
	registry.Register(llm.ProviderOpenAI, mock)

	service := app.NewCompareService(registry, config.AIConfig{
		DefaultProvider: llm.ProviderOpenAI,
		DefaultModel:    "gpt-4o",
		MaxTokens:       1024,
		Timeout:         time.Second,
		APIKeys:         map[string]string{},
	}, nil)

	catalog, err := llm.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	server, err := NewServer(service, catalog, config.ServerConfig{GinMode: gin.TestMode}, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server
}

func uploadCSV(t *testing.T, server *Server, slot, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("slot", slot); err != nil {
		t.Fatalf("write slot field: %v", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write file content: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func postProcess(server *Server, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func TestUploadAndProcess(t *testing.T) {
	mock := &llm.MockClient{Response: "```csv\nname, a, b\nx, 1, 3\n```"}
	server := newTestServer(t, mock)

	if w := uploadCSV(t, server, "first", "a.csv", "name,a\nx,1"); w.Code != http.StatusOK {
		t.Fatalf("upload first: status %d: %s", w.Code, w.Body.String())
	}
	if w := uploadCSV(t, server, "second", "b.csv", "name,b\nx,3"); w.Code != http.StatusOK {
		t.Fatalf("upload second: status %d: %s", w.Code, w.Body.String())
	}

	w := postProcess(server, `{"provider":"openai","api_key":"sk-test"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("process: status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result struct {
			Headers []string   `json:"headers"`
			Rows    [][]string `json:"rows"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Result.Headers) != 3 || resp.Result.Headers[0] != "name" {
		t.Errorf("headers = %v", resp.Result.Headers)
	}
	if mock.Calls != 1 {
		t.Errorf("expected one completion call, got %d", mock.Calls)
	}
	if mock.LastReq.Model != "gpt-4o" {
		t.Errorf("model = %q, want catalog default", mock.LastReq.Model)
	}
}

func TestProcess_WithoutUploads(t *testing.T) {
	server := newTestServer(t, &llm.MockClient{Response: "x"})

	w := postProcess(server, `{"provider":"openai","api_key":"sk-test"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "MISSING_INPUT") {
		t.Errorf("body should carry the error code: %s", w.Body.String())
	}
}

func TestProcess_MissingKey(t *testing.T) {
	server := newTestServer(t, &llm.MockClient{Response: "x"})
	uploadCSV(t, server, "first", "a.csv", "a\n1")
	uploadCSV(t, server, "second", "b.csv", "b\n2")

	w := postProcess(server, `{"provider":"openai"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "MISSING_CREDENTIAL") {
		t.Errorf("body should carry the error code: %s", w.Body.String())
	}
}

func TestUpload_BadSlot(t *testing.T) {
	server := newTestServer(t, &llm.MockClient{})

	if w := uploadCSV(t, server, "third", "a.csv", "a\n1"); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDownload(t *testing.T) {
	mock := &llm.MockClient{Response: "```csv\na, b\n1, 2\n```"}
	server := newTestServer(t, mock)

	req := httptest.NewRequest(http.MethodGet, "/api/result/download", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("download before any result: status %d", w.Code)
	}

	uploadCSV(t, server, "first", "a.csv", "a\n1")
	uploadCSV(t, server, "second", "b.csv", "b\n2")
	if w := postProcess(server, `{"provider":"openai","api_key":"k"}`); w.Code != http.StatusOK {
		t.Fatalf("process: status %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/result/download", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("download: status %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "processed-comparison.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if got := w.Body.String(); got != "a, b\n1, 2\n" {
		t.Errorf("download body = %q", got)
	}
}

func TestProviders(t *testing.T) {
	server := newTestServer(t, &llm.MockClient{})

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/providers", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Providers []llm.ProviderInfo `json:"providers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Providers) != 4 {
		t.Errorf("expected 4 providers, got %d", len(resp.Providers))
	}
}

func TestStatus(t *testing.T) {
	server := newTestServer(t, &llm.MockClient{})
	uploadCSV(t, server, "first", "a.csv", "a\n1")

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["firstLoaded"] != true || resp["secondLoaded"] != false {
		t.Errorf("status = %v", resp)
	}
	if resp["processing"] != false {
		t.Errorf("processing = %v", resp["processing"])
	}
}
