package httpjson

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestMsg(t *testing.T) {
	rec := httptest.NewRecorder()
	Msg(rec, 404, "No project by this name found.")

	if rec.Code != 404 {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["msg"] != "No project by this name found." {
		t.Errorf("msg: got %q", body["msg"])
	}
}

func TestFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	FieldErrors(rec, "Name is required", "Please include a valid email")

	if rec.Code != 400 {
		t.Errorf("status: got %d, want 400", rec.Code)
	}

	var body struct {
		Errors []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Errors) != 2 {
		t.Fatalf("errors: got %d entries, want 2", len(body.Errors))
	}
	if body.Errors[0].Msg != "Name is required" {
		t.Errorf("first error: got %q", body.Errors[0].Msg)
	}
}

func TestServerError_GenericBody(t *testing.T) {
	rec := httptest.NewRecorder()
	ServerError(rec, zap.NewNop(), "insert user failed", errAny)

	if rec.Code != 500 {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("internal error detail leaked to the client")
	}
}

var errAny = &testErr{"dial tcp: connection refused"}

type testErr struct{ s string }

func (e *testErr) Error() string { return e.s }

func TestDecode(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Alpha"}`))
	var p payload
	if err := Decode(req, &p); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if p.Title != "Alpha" {
		t.Errorf("title: got %q, want Alpha", p.Title)
	}
}

func TestDecode_EmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	var p struct{}
	if err := Decode(req, &p); err != nil {
		t.Errorf("empty body should decode to zero value, got %v", err)
	}
}

func TestDecode_BadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":`))
	var p struct{}
	if err := Decode(req, &p); err != ErrBadBody {
		t.Errorf("expected ErrBadBody, got %v", err)
	}
}
