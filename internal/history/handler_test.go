package history

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc *Service, userID string, isGuest bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("isGuest", isGuest)
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return router
}

func TestHistoryRequiresLogin(t *testing.T) {
	router := newTestRouter(newTestService(), "guest:abc", true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "login_required" {
		t.Fatalf("expected login_required, got %q", body.Error.Code)
	}
}

func TestHistoryCreateAndList(t *testing.T) {
	svc := newTestService()
	router := newTestRouter(svc, "user-1", false)

	payload := map[string]any{
		"documentName": "lease.pdf",
		"documentType": "Rental Agreement",
		"content":      "the tenant shall...",
		"fileType":     "pdf",
		"fileSize":     1024,
	}
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/history", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		History []recordDTO `json:"history"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.History) != 1 {
		t.Fatalf("expected 1 record, got %d", len(body.History))
	}
	if body.History[0].DocumentName != "lease.pdf" {
		t.Fatalf("unexpected document name %q", body.History[0].DocumentName)
	}
	if body.History[0].UploadedAt == "" {
		t.Fatalf("expected uploadedAt timestamp")
	}
}

func TestHistoryListRejectsBadLimit(t *testing.T) {
	router := newTestRouter(newTestService(), "user-1", false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=abc", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHistoryUpdateUnknownIDReturns404(t *testing.T) {
	router := newTestRouter(newTestService(), "user-1", false)

	raw := []byte(`{"documentName":"renamed.pdf"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/history/nope", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestHistoryDeleteRemovesRecord(t *testing.T) {
	svc := newTestService()
	router := newTestRouter(svc, "user-1", false)

	rec, err := svc.Create(context.Background(), "user-1", NewRecord{DocumentName: "doc.pdf", Content: "text"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/history/"+rec.ID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/history/"+rec.ID, nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}
