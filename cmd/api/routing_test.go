package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"booklib/internal/author"
	"booklib/internal/book"
	"booklib/internal/category"
)

// The router itself can be exercised without a database; only handlers
// that reach a repository need one.
func newTestRouter() http.Handler {
	books := book.NewHandler(book.NewService(nil, nil, nil))
	authors := author.NewHandler(author.NewService(nil))
	categories := category.NewHandler(category.NewService(nil))
	return newRouter(nil, books, authors, categories)
}

func TestRouting_APIInfo(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for GET /, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != true {
		t.Error("expected success envelope")
	}
}

func TestRouting_Healthz(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for GET /healthz, got %d", w.Code)
	}
}

func TestRouting_UnknownPathIsJSON404(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON body: %v", err)
	}
	if body["success"] != false {
		t.Error("expected error envelope")
	}
}

func TestRouting_WrongMethodIsJSON405(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/books", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON body: %v", err)
	}
	errObj, ok := body["error"].(map[string]any)
	if !ok || errObj["message"] != "Method not allowed for this endpoint" {
		t.Errorf("unexpected 405 body: %v", body)
	}
}
