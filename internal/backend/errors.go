package backend

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxDetailLen bounds how much of an unparseable error body is kept.
const maxDetailLen = 200

// RequestError is the single failure type for backend calls. It covers
// transport failures (Status 0), non-2xx responses, and undecodable bodies.
type RequestError struct {
	Op        string // "generate-learning-plan" or "resources"
	Status    int    // HTTP status, 0 if no response was received
	Detail    string // backend "detail" message or truncated raw body
	RequestID string
	Err       error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "backend: %s", e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	return b.String()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// truncate bounds s to maxDetailLen bytes without splitting a rune.
func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxDetailLen {
		return s
	}
	cut := maxDetailLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
