// internal/app/system/inputval/inputval.go

// Package inputval validates user-supplied input. It offers standalone
// checks (IsValidEmail, IsValidObjectID) plus a small struct-tag engine
// (Validate) for request payloads.
package inputval

import (
	"fmt"
	"net/mail"
	"reflect"
	"strconv"
	"strings"
)

// IsValidEmail reports whether the string is a plain RFC 5322 address.
// Display-name forms ("User <user@example.com>") are rejected.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == email
}

// IsValidObjectID reports whether the string is a 24-character hex
// Mongo ObjectID.
func IsValidObjectID(id string) bool {
	id = strings.TrimSpace(id)
	if len(id) != 24 {
		return false
	}
	for _, c := range id {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// FieldError is a single validation failure.
type FieldError struct {
	Field   string
	Message string
}

// Result collects validation failures in field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first failure message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All returns every failure message joined with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the failure messages in order.
func (r *Result) Messages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// Validate applies the rules in each string field's `validate` tag.
// Supported rules: required, min=N, max=N, email, objectid. The `label`
// tag names the field in messages; the Go field name is the fallback.
// At most one failure is recorded per field (the first rule to fail).
func Validate(v any) *Result {
	result := &Result{}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return result
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || field.Type.Kind() != reflect.String {
			continue
		}

		label := field.Tag.Get("label")
		if label == "" {
			label = field.Name
		}
		value := strings.TrimSpace(rv.Field(i).String())

		if msg := applyRules(tag, label, value); msg != "" {
			result.Errors = append(result.Errors, FieldError{Field: field.Name, Message: msg})
		}
	}
	return result
}

func applyRules(tag, label, value string) string {
	for _, rule := range strings.Split(tag, ",") {
		name, arg, _ := strings.Cut(rule, "=")
		switch name {
		case "required":
			if value == "" {
				return fmt.Sprintf("%s is required.", label)
			}
		case "min":
			n, _ := strconv.Atoi(arg)
			if len(value) < n {
				return fmt.Sprintf("%s must be at least %d characters.", label, n)
			}
		case "max":
			n, _ := strconv.Atoi(arg)
			if len(value) > n {
				return fmt.Sprintf("%s must be at most %d characters.", label, n)
			}
		case "email":
			if !IsValidEmail(value) {
				return "A valid email address is required."
			}
		case "objectid":
			if !IsValidObjectID(value) {
				return fmt.Sprintf("%s must be a valid id.", label)
			}
		}
	}
	return ""
}
