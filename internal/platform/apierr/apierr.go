package apierr

import (
	"fmt"
	"net/http"
)

// Codes returned in the error envelope.
const (
	CodeBadRequest          = "bad_request"
	CodeForbidden           = "forbidden"
	CodeNotFound            = "not_found"
	CodeCorruptRecord       = "corrupt_record"
	CodeUpstreamTimeout     = "upstream_timeout"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeInternal            = "internal"
	CodeCSRF                = "csrf"
)

var publicMessages = map[string]string{
	CodeBadRequest:          "the request was malformed",
	CodeForbidden:           "you may not modify this profile",
	CodeNotFound:            "no profile data found",
	CodeCorruptRecord:       "stored profile is corrupt",
	CodeUpstreamTimeout:     "an upstream service timed out, try again",
	CodeUpstreamUnavailable: "an upstream service failed, try again",
	CodeInternal:            "internal error",
	CodeCSRF:                "invalid csrf token",
}

// Error is an HTTP-facing failure. Err is for logs; callers see Public().
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s (%d)", e.Code, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// Public returns the fixed message for the code, never the cause text.
func (e *Error) Public() string {
	if msg, ok := publicMessages[e.Code]; ok {
		return msg
	}
	if txt := http.StatusText(e.Status); txt != "" {
		return txt
	}
	return publicMessages[CodeInternal]
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}
