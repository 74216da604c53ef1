package onap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		BaseDelay:     time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestDoMergesAndDeletesHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom", r.Header.Get("X-Custom"))
		assert.Equal(t, "cs0008", r.Header.Get("USER_ID"))
		assert.Empty(t, r.Header.Get("Accept"))
	}))
	defer server.Close()

	client := NewClient("TEST", WithHeaders(SDCCreatorHeaders()), WithRetry(fastRetry()))
	_, err := client.Do(context.Background(), &Request{
		Method: "GET",
		Action: "header test",
		URL:    server.URL,
		Headers: map[string]string{
			"X-Custom": "custom",
			"Accept":   "",
		},
	})
	require.NoError(t, err)
}

func TestDoRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"ok": true}`)
	}))
	defer server.Close()

	client := NewClient("TEST", WithRetry(fastRetry()))
	data, err := client.Do(context.Background(), &Request{Method: "GET", Action: "retry test", URL: server.URL})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("TEST", WithRetry(fastRetry()))
	_, err := client.Do(context.Background(), &Request{Method: "GET", Action: "404 test", URL: server.URL})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDoJSONDecodesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		fmt.Fprint(w, `{"name": "test"}`)
	}))
	defer server.Close()

	client := NewClient("TEST", WithRetry(fastRetry()))
	var out struct {
		Name string `json:"name"`
	}
	err := client.DoJSON(context.Background(), &Request{
		Method: "POST",
		Action: "json test",
		URL:    server.URL,
		JSON:   map[string]string{"hello": "world"},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "test", out.Name)
}

func TestDoJSONInvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer server.Close()

	client := NewClient("TEST", WithRetry(fastRetry()))
	var out map[string]any
	err := client.DoJSON(context.Background(), &Request{Method: "GET", Action: "bad json", URL: server.URL}, &out)
	var invalid *InvalidResponseError
	require.ErrorAs(t, err, &invalid)
}

func TestDoJSONIgnoresEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient("TEST", WithRetry(fastRetry()))
	var out map[string]any
	err := client.DoJSON(context.Background(), &Request{Method: "PUT", Action: "empty body", URL: server.URL}, &out)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestMultipartUpload(t *testing.T) {
	body, contentType, err := MultipartUpload("upload", "package.zip", []byte("zip-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="))
	assert.Contains(t, string(body), `filename="package.zip"`)
	assert.Contains(t, string(body), "zip-bytes")
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Resource: "vsp test", Current: "Draft", Required: "Certified"}
	assert.Contains(t, err.Error(), "Draft")
	assert.Contains(t, err.Error(), "Certified")
}
