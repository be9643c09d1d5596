package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vitals/vitals/internal/platform/auth"
)

func newTestHandler() (*Handler, *mockUserRepo) {
	repo := newMockUserRepo()
	svc := NewService(repo, auth.NewTokenIssuer("test-secret", time.Hour))
	return NewHandler(svc), repo
}

func postJSON(path, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func TestRegisterHandler(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()

	req, rec := postJSON("/api/auth/register",
		`{"username":"jsmith","email":"jsmith@example.com","password":"hunter2"}`)
	c := e.NewContext(req, rec)

	if err := h.register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var body tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Token == "" {
		t.Error("response token is empty")
	}
	if _, ok := repo.users["jsmith@example.com"]; !ok {
		t.Error("user not persisted")
	}
}

func TestRegisterHandlerDuplicate(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	req, rec := postJSON("/api/auth/register",
		`{"username":"jsmith","email":"jsmith@example.com","password":"hunter2"}`)
	if err := h.register(e.NewContext(req, rec)); err != nil {
		t.Fatalf("first register: %v", err)
	}

	req, rec = postJSON("/api/auth/register",
		`{"username":"other","email":"jsmith@example.com","password":"different"}`)
	err := h.register(e.NewContext(req, rec))

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400 HTTPError", err)
	}
	if he.Message != "User already exists" {
		t.Errorf("message = %v, want User already exists", he.Message)
	}
}

func TestRegisterHandlerMissingFields(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	req, rec := postJSON("/api/auth/register", `{"email":"jsmith@example.com"}`)
	err := h.register(e.NewContext(req, rec))

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400 HTTPError", err)
	}
}

func TestLoginHandler(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	req, rec := postJSON("/api/auth/register",
		`{"username":"jsmith","email":"jsmith@example.com","password":"hunter2"}`)
	if err := h.register(e.NewContext(req, rec)); err != nil {
		t.Fatalf("register: %v", err)
	}

	req, rec = postJSON("/api/auth/login",
		`{"email":"jsmith@example.com","password":"hunter2"}`)
	if err := h.login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Token == "" {
		t.Error("response token is empty")
	}
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	req, rec := postJSON("/api/auth/login",
		`{"email":"nobody@example.com","password":"hunter2"}`)
	err := h.login(e.NewContext(req, rec))

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400 HTTPError", err)
	}
	if he.Message != "Invalid credentials" {
		t.Errorf("message = %v, want Invalid credentials", he.Message)
	}
}
