package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	gohttp "github.com/km-arc/go-passform/framework/http"
	"github.com/km-arc/go-passform/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

type pair struct {
	Password     string `json:"password"`
	Confirmation string `json:"password_confirmation"`
}

func newJSONRequest(t *testing.T, body string) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return gohttp.NewRequest(req)
}

func newResponse(t *testing.T) (*gohttp.Response, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	return m
}

// ── Request ──────────────────────────────────────────────────────────────────

func TestRequest_BindJSON(t *testing.T) {
	var p pair
	if err := newJSONRequest(t, `{"password":"Abc123!","password_confirmation":"Abc123?"}`).Bind(&p); err != nil {
		t.Fatalf("Bind error: %v", err)
	}
	if p.Password != "Abc123!" || p.Confirmation != "Abc123?" {
		t.Errorf("bound: %+v", p)
	}
}

func TestRequest_BindJSON_EmptyBody(t *testing.T) {
	var p pair
	if err := newJSONRequest(t, "").Bind(&p); !errors.Is(err, gohttp.ErrEmptyBody) {
		t.Errorf("expected ErrEmptyBody, got %v", err)
	}
}

func TestRequest_BindJSON_InvalidJSON(t *testing.T) {
	var p pair
	if err := newJSONRequest(t, `{bad json}`).Bind(&p); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestRequest_BindJSON_TooLarge(t *testing.T) {
	body := `{"password":"` + strings.Repeat("a", gohttp.MaxBodyBytes) + `"}`
	var p pair
	if err := newJSONRequest(t, body).Bind(&p); err == nil {
		t.Error("expected error for oversized body")
	}
}

func TestRequest_BindForm(t *testing.T) {
	values := url.Values{"password": {"Abc123!"}, "password_confirmation": {"Abc123!"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var p pair
	if err := gohttp.NewRequest(req).Bind(&p); err != nil {
		t.Fatalf("Bind error: %v", err)
	}
	if p.Password != "Abc123!" || p.Confirmation != "Abc123!" {
		t.Errorf("bound: %+v", p)
	}
}

func TestRequest_QueryAndHeader(t *testing.T) {
	raw := httptest.NewRequest(http.MethodGet, "/?page=2", nil)
	raw.Header.Set("X-Request-Id", "abc")
	req := gohttp.NewRequest(raw)

	if got := req.Query("page", "1"); got != "2" {
		t.Errorf("Query: got %q want 2", got)
	}
	if got := req.Query("size", "10"); got != "10" {
		t.Errorf("Query fallback: got %q want 10", got)
	}
	if got := req.Header("X-Request-Id"); got != "abc" {
		t.Errorf("Header: got %q want abc", got)
	}
	if req.Raw() != raw {
		t.Error("Raw should return the wrapped request")
	}
}

func TestRequest_RouteParam(t *testing.T) {
	r := chi.NewRouter()
	var got string
	r.Get("/forms/{id}", func(w http.ResponseWriter, req *http.Request) {
		got = gohttp.NewRequest(req).RouteParam("id")
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/forms/42", nil))

	if got != "42" {
		t.Errorf("RouteParam: got %q want 42", got)
	}
}

// ── Response ─────────────────────────────────────────────────────────────────

func TestResponse_Success(t *testing.T) {
	res, rr := newResponse(t)
	res.Success(map[string]any{"kind": "success"})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	data, ok := decodeJSON(t, rr)["data"].(map[string]any)
	if !ok || data["kind"] != "success" {
		t.Errorf("expected data envelope, got %v", data)
	}
}

func TestResponse_Created(t *testing.T) {
	res, rr := newResponse(t)
	res.Created(map[string]any{"id": "x"})
	if rr.Code != http.StatusCreated {
		t.Errorf("status: got %d want 201", rr.Code)
	}
}

func TestResponse_NoContent(t *testing.T) {
	res, rr := newResponse(t)
	res.NoContent()
	if rr.Code != http.StatusNoContent || rr.Body.Len() != 0 {
		t.Errorf("got %d with %d bytes", rr.Code, rr.Body.Len())
	}
}

func TestResponse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		call   func(*gohttp.Response)
		status int
		msg    string
	}{
		{"Error", func(r *gohttp.Response) { r.Error(http.StatusBadRequest, "bad input") }, 400, "bad input"},
		{"NotFound default", func(r *gohttp.Response) { r.NotFound() }, 404, "Not found."},
		{"NotFound custom", func(r *gohttp.Response) { r.NotFound("Form not found.") }, 404, "Form not found."},
		{"Conflict", func(r *gohttp.Response) { r.Conflict() }, 409, "Conflict."},
		{"ServerError", func(r *gohttp.Response) { r.ServerError() }, 500, "Server Error."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			tt.call(res)
			if rr.Code != tt.status {
				t.Errorf("status: got %d want %d", rr.Code, tt.status)
			}
			if got := decodeJSON(t, rr)["message"]; got != tt.msg {
				t.Errorf("message: got %v want %q", got, tt.msg)
			}
		})
	}
}

func TestResponse_ValidationError(t *testing.T) {
	v := validation.Make(map[string]string{"password": "short"}, validation.Rules{"password": "password"})
	if !v.Fails() {
		t.Fatal("expected validation failure")
	}

	res, rr := newResponse(t)
	res.ValidationError(v.Errors(), map[string]any{"kind": "too_short"})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d want 422", rr.Code)
	}
	m := decodeJSON(t, rr)
	if m["message"] != "Password is too short" {
		t.Errorf("message: got %v", m["message"])
	}
	if m["kind"] != "too_short" {
		t.Errorf("kind: got %v", m["kind"])
	}
	codes, _ := m["codes"].(map[string]any)
	if codes["password"] != "length" {
		t.Errorf("codes: got %v", m["codes"])
	}
	errs, _ := m["errors"].(map[string]any)
	if msgs, _ := errs["password"].([]any); len(msgs) != 1 {
		t.Errorf("errors: got %v", m["errors"])
	}
}
