package documents_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"projectdocs-backend/internal/bootstrap"
	"projectdocs-backend/internal/documents"
	"projectdocs-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "handler-test-secret")

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func registerUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":           email,
		"password":        "longenough",
		"confirmPassword": "longenough",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var auth struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if auth.Token == "" {
		t.Fatalf("expected token in register response")
	}
	return auth.Token
}

func uploadFile(t *testing.T, router *gin.Engine, token, fileName, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestDocumentsUploadAndList(t *testing.T) {
	router := newTestApp(t)
	token := registerUser(t, router, "uploader@example.com")

	resp := uploadFile(t, router, token, "plan.pdf", "application/pdf", []byte("%PDF-1.4 fake"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ID       string `json:"id"`
		FileName string `json:"fileName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected document id, got empty")
	}
	if created.FileName != "plan.pdf" {
		t.Fatalf("fileName = %q", created.FileName)
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	reqList.Header.Set("Authorization", "Bearer "+token)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respList.Code)
	}
	var listed []struct {
		ID       string `json:"id"`
		FileName string `json:"fileName"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("expected the uploaded document back, got %+v", listed)
	}
}

func TestDocumentsUploadRejectsUnsupportedType(t *testing.T) {
	router := newTestApp(t)
	token := registerUser(t, router, "types@example.com")

	resp := uploadFile(t, router, token, "notes.txt", "text/plain", []byte("plain text"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", errResp.Error.Code)
	}
}

func TestDocumentsUploadEnforcesCap(t *testing.T) {
	router := newTestApp(t)
	token := registerUser(t, router, "cap@example.com")

	for i := 0; i < documents.MaxPerUser; i++ {
		resp := uploadFile(t, router, token, fmt.Sprintf("doc-%d.pdf", i), "application/pdf", []byte("%PDF-1.4"))
		if resp.Code != http.StatusCreated {
			t.Fatalf("upload %d: expected 201, got %d: %s", i, resp.Code, resp.Body.String())
		}
	}

	resp := uploadFile(t, router, token, "one-too-many.pdf", "application/pdf", []byte("%PDF-1.4"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 past the cap, got %d", resp.Code)
	}
	var errResp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", errResp.Error.Code)
	}
}

func TestDocumentsDelete(t *testing.T) {
	router := newTestApp(t)
	token := registerUser(t, router, "delete@example.com")

	resp := uploadFile(t, router, token, "plan.pdf", "application/pdf", []byte("%PDF-1.4"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	reqDel := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+created.ID, nil)
	reqDel.Header.Set("Authorization", "Bearer "+token)
	respDel := httptest.NewRecorder()
	router.ServeHTTP(respDel, reqDel)
	if respDel.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", respDel.Code)
	}

	// A second delete finds nothing.
	respDel2 := httptest.NewRecorder()
	reqDel2 := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+created.ID, nil)
	reqDel2.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(respDel2, reqDel2)
	if respDel2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for the second delete, got %d", respDel2.Code)
	}
}

func TestDocumentsRequireAuth(t *testing.T) {
	router := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", resp.Code)
	}
}
