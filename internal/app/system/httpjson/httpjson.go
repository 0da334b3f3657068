// internal/app/system/httpjson/httpjson.go

// Package httpjson is the one place request bodies are decoded and
// responses are written. Error responses carry {"msg": "..."} or, for
// field validation failures, {"errors": [{"msg": "..."}, ...]} — the
// wire shape clients already depend on.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; every payload in this API is tiny.
const maxBodyBytes = 1 << 20

// FieldError is one entry of a validation error response.
type FieldError struct {
	Msg string `json:"msg"`
}

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Msg writes {"msg": msg} with the given status.
func Msg(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"msg": msg})
}

// FieldErrors writes a 400 with {"errors":[{"msg":...},...]}.
func FieldErrors(w http.ResponseWriter, msgs ...string) {
	errs := make([]FieldError, 0, len(msgs))
	for _, m := range msgs {
		errs = append(errs, FieldError{Msg: m})
	}
	Write(w, http.StatusBadRequest, map[string][]FieldError{"errors": errs})
}

// ServerError logs the failure with its cause and answers a generic
// 500. The detail never reaches the client.
func ServerError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	logger.Error(op, zap.Error(err))
	Msg(w, http.StatusInternalServerError, "Server error")
}

// ErrBadBody is returned by Decode for unreadable or non-JSON bodies.
var ErrBadBody = errors.New("invalid JSON body")

// Decode reads the request body into dst. Unknown fields are ignored;
// a missing body decodes into the zero value so handlers can treat
// every field as optional and validate individually.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrBadBody
	}
	return nil
}
