package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_HeaderCaseInsensitive(t *testing.T) {
	r := &Response{Headers: map[string]string{"Content-Type": "application/json"}}

	assert.Equal(t, "application/json", r.Header("content-type"))
	assert.Equal(t, "application/json", r.Header("CONTENT-TYPE"))
	assert.Equal(t, "", r.Header("x-missing"))
}

func TestResponse_IsJSON(t *testing.T) {
	r := &Response{Headers: map[string]string{"Content-Type": "application/json; charset=utf-8"}}
	assert.True(t, r.IsJSON())

	r = &Response{Headers: map[string]string{"Content-Type": "text/html"}}
	assert.False(t, r.IsJSON())
}

func TestResponse_BodyJSON(t *testing.T) {
	r := &Response{Body: []byte(`{"id": 7, "tags": ["a", "b"]}`)}

	v, err := r.BodyJSON()
	require.NoError(t, err)

	obj, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), obj["id"])

	r = &Response{Body: []byte(`{broken`)}
	_, err = r.BodyJSON()
	assert.Error(t, err)
}

func TestResponse_Size(t *testing.T) {
	r := &Response{Body: []byte("12345")}
	assert.Equal(t, 5, r.Size())

	r = &Response{
		Headers: map[string]string{"Content-Length": "1024"},
		Body:    []byte("short"),
	}
	assert.Equal(t, 1024, r.Size(), "declared Content-Length wins")
}

func TestResponse_StatusClassesAndTiming(t *testing.T) {
	r := &Response{StatusCode: 204, Duration: 1500 * time.Millisecond}

	assert.True(t, r.IsSuccess())
	assert.Equal(t, int64(1500), r.DurationMs())

	r = &Response{StatusCode: 404}
	assert.False(t, r.IsSuccess())
}
