// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lazycatapps/wasscan/internal/models"
	apperrors "github.com/lazycatapps/wasscan/internal/pkg/errors"
)

// mockWasScanService implements service.WasScanService for testing
type mockWasScanService struct {
	createFunc func(in *models.WasScanInput) (*models.WasScan, error)
	listFunc   func() ([]*models.WasScan, error)
	getFunc    func(ref string) (*models.WasScan, error)
	updateFunc func(ref string, in *models.WasScanInput) (*models.WasScan, error)
	deleteFunc func(ref string) error
	copyFunc   func(ref string, in *models.CopyInput) (*models.WasScan, error)
}

func (m *mockWasScanService) Create(in *models.WasScanInput) (*models.WasScan, error) {
	if m.createFunc != nil {
		return m.createFunc(in)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockWasScanService) List() ([]*models.WasScan, error) {
	if m.listFunc != nil {
		return m.listFunc()
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockWasScanService) Get(ref string) (*models.WasScan, error) {
	if m.getFunc != nil {
		return m.getFunc(ref)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockWasScanService) Update(ref string, in *models.WasScanInput) (*models.WasScan, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ref, in)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockWasScanService) Delete(ref string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ref)
	}
	return fmt.Errorf("not implemented")
}

func (m *mockWasScanService) Copy(ref string, in *models.CopyInput) (*models.WasScan, error) {
	if m.copyFunc != nil {
		return m.copyFunc(ref, in)
	}
	return nil, fmt.Errorf("not implemented")
}

// mockLogger implements logger.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Info(format string, args ...interface{})  {}
func (m *mockLogger) Error(format string, args ...interface{}) {}
func (m *mockLogger) Debug(format string, args ...interface{}) {}

// setupTestRouter creates a test Gin router
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to parse envelope: %v (%s)", err, w.Body.String())
	}
	return env
}

func sampleScan(id, name string) *models.WasScan {
	scan := models.NewWasScan(id, "uuid-"+id)
	scan.Name = name
	return scan
}

// TestCreate tests the Create handler
func TestCreate(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockCreate     func(in *models.WasScanInput) (*models.WasScan, error)
		expectedStatus int
		expectedCode   int
		checkResponse  func(*testing.T, models.Envelope)
	}{
		{
			name: "Valid scan request",
			requestBody: map[string]interface{}{
				"name":       "Example",
				"repository": map[string]interface{}{"id": "5"},
			},
			mockCreate: func(in *models.WasScanInput) (*models.WasScan, error) {
				if in.Repository == nil || in.Repository.ID != "5" {
					return nil, fmt.Errorf("repository not bound: %+v", in.Repository)
				}
				return sampleScan("1", *in.Name), nil
			},
			expectedStatus: http.StatusOK,
			expectedCode:   models.ErrorCodeNone,
			checkResponse: func(t *testing.T, env models.Envelope) {
				resp, ok := env.Response.(map[string]interface{})
				if !ok {
					t.Fatalf("Expected object response, got %T", env.Response)
				}
				if resp["id"] != "1" || resp["name"] != "Example" {
					t.Errorf("Unexpected response: %v", resp)
				}
			},
		},
		{
			name:           "Invalid JSON body",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.ErrorCodeInvalidInput,
		},
		{
			name:           "Wrong member type",
			requestBody:    map[string]interface{}{"name": 5},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.ErrorCodeInvalidInput,
		},
		{
			name:        "Service validation error",
			requestBody: map[string]interface{}{"name": ""},
			mockCreate: func(in *models.WasScanInput) (*models.WasScan, error) {
				return nil, apperrors.NewInvalidInput("name is required")
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.ErrorCodeInvalidInput,
			checkResponse: func(t *testing.T, env models.Envelope) {
				if env.ErrorMsg != "name is required" {
					t.Errorf("Expected error_msg 'name is required', got '%s'", env.ErrorMsg)
				}
			},
		},
		{
			name:        "Service error",
			requestBody: map[string]interface{}{"name": "x"},
			mockCreate: func(in *models.WasScanInput) (*models.WasScan, error) {
				return nil, fmt.Errorf("disk full")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   models.ErrorCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWasScanHandler(&mockWasScanService{createFunc: tt.mockCreate}, &mockLogger{})
			router := setupTestRouter()
			router.POST("/rest/wasScan", h.Create)

			var body []byte
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.requestBody)
			}
			req := httptest.NewRequest(http.MethodPost, "/rest/wasScan", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			env := decodeEnvelope(t, w)
			if env.ErrorCode != tt.expectedCode {
				t.Errorf("Expected error_code %d, got %d", tt.expectedCode, env.ErrorCode)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, env)
			}
		})
	}
}

// TestList tests the List handler with and without a fields projection
func TestList(t *testing.T) {
	svc := &mockWasScanService{
		listFunc: func() ([]*models.WasScan, error) {
			return []*models.WasScan{sampleScan("1", "a"), sampleScan("2", "b")}, nil
		},
	}
	h := NewWasScanHandler(svc, &mockLogger{})
	router := setupTestRouter()
	router.GET("/rest/wasScan", h.List)

	tests := []struct {
		name       string
		query      string
		expectKeys int
	}{
		{"all fields", "", 0},
		{"projected", "?fields=id,name", 2},
		{"projected with spaces", "?fields=name,%20description", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/rest/wasScan"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			env := decodeEnvelope(t, w)
			items, ok := env.Response.([]interface{})
			if !ok || len(items) != 2 {
				t.Fatalf("Expected 2 scans, got %v", env.Response)
			}
			first := items[0].(map[string]interface{})
			if tt.expectKeys > 0 && len(first) != tt.expectKeys {
				t.Errorf("Expected %d keys, got %v", tt.expectKeys, first)
			}
			if first["id"] != "1" {
				t.Errorf("Expected id '1', got %v", first["id"])
			}
		})
	}
}

// TestGet tests the Get handler
func TestGet(t *testing.T) {
	svc := &mockWasScanService{
		getFunc: func(ref string) (*models.WasScan, error) {
			if ref == "7" {
				return sampleScan("7", "seven"), nil
			}
			return nil, apperrors.NewNotFound("WAS Scan #" + ref + " not found")
		},
	}
	h := NewWasScanHandler(svc, &mockLogger{})
	router := setupTestRouter()
	router.GET("/rest/wasScan/:id", h.Get)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rest/wasScan/7?fields=name", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	resp := decodeEnvelope(t, w).Response.(map[string]interface{})
	if len(resp) != 2 || resp["name"] != "seven" {
		t.Errorf("Expected id and name, got %v", resp)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rest/wasScan/8", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.ErrorCode != models.ErrorCodeNotFound {
		t.Errorf("Expected error_code %d, got %d", models.ErrorCodeNotFound, env.ErrorCode)
	}
}

// TestUpdate tests the Update handler
func TestUpdate(t *testing.T) {
	var gotRef string
	svc := &mockWasScanService{
		updateFunc: func(ref string, in *models.WasScanInput) (*models.WasScan, error) {
			gotRef = ref
			scan := sampleScan(ref, "n")
			if in.Description != nil {
				scan.Description = *in.Description
			}
			return scan, nil
		},
	}
	h := NewWasScanHandler(svc, &mockLogger{})
	router := setupTestRouter()
	router.PATCH("/rest/wasScan/:id", h.Update)

	req := httptest.NewRequest(http.MethodPatch, "/rest/wasScan/3", bytes.NewBufferString(`{"description":"changed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if gotRef != "3" {
		t.Errorf("Expected ref '3', got '%s'", gotRef)
	}
	resp := decodeEnvelope(t, w).Response.(map[string]interface{})
	if resp["description"] != "changed" {
		t.Errorf("Expected description 'changed', got %v", resp["description"])
	}
}

// TestDelete tests the Delete handler
func TestDelete(t *testing.T) {
	svc := &mockWasScanService{
		deleteFunc: func(ref string) error {
			if ref != "1" {
				return apperrors.NewNotFound("not found")
			}
			return nil
		},
	}
	h := NewWasScanHandler(svc, &mockLogger{})
	router := setupTestRouter()
	router.DELETE("/rest/wasScan/:id", h.Delete)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/rest/wasScan/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Response != "" || env.Type != "regular" {
		t.Errorf("Unexpected delete envelope: %+v", env)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/rest/wasScan/2", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// TestCopy tests the Copy handler
func TestCopy(t *testing.T) {
	svc := &mockWasScanService{
		copyFunc: func(ref string, in *models.CopyInput) (*models.WasScan, error) {
			if in.TargetUser.ID == nil {
				return nil, apperrors.NewInvalidInput("targetUser requires an id or uuid")
			}
			scan := sampleScan("9", in.Name)
			scan.Owner = &in.TargetUser
			return scan, nil
		},
	}
	h := NewWasScanHandler(svc, &mockLogger{})
	router := setupTestRouter()
	router.POST("/rest/wasScan/:id/copy", h.Copy)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"copy to user id", `{"name":"dup","targetUser":{"id":4}}`, http.StatusOK},
		{"missing target", `{"name":"dup","targetUser":{}}`, http.StatusBadRequest},
		{"malformed body", `{"name":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/rest/wasScan/1/copy", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if w.Code != http.StatusOK {
				return
			}
			resp := decodeEnvelope(t, w).Response.(map[string]interface{})
			if resp["name"] != "dup" {
				t.Errorf("Expected name 'dup', got %v", resp["name"])
			}
			owner, _ := resp["owner"].(map[string]interface{})
			if owner["id"] != float64(4) {
				t.Errorf("Expected owner id 4, got %v", resp["owner"])
			}
		})
	}
}
