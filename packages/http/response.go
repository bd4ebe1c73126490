package http

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Response is a completed HTTP exchange as the assertion engines see it:
// read-only, fully buffered, with time-to-last-byte timing.
type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

// BodyJSON parses the body as JSON into generic Go values.
func (r *Response) BodyJSON() (any, error) {
	var result any
	if err := json.Unmarshal(r.Body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Header looks up a header case-insensitively.
func (r *Response) Header(key string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType(), "application/json")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}

// Size reports the body size in bytes, preferring the declared
// Content-Length when present.
func (r *Response) Size() int {
	if cl := r.Header("Content-Length"); cl != "" {
		if n, err := strconv.Atoi(cl); err == nil {
			return n
		}
	}
	return len(r.Body)
}
