package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"imagify/internal/errors"
)

func TestGenerationClient_Generate(t *testing.T) {
	payload := []byte("png-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret-key", r.Header.Get("x-api-key"))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "a cute cat", r.FormValue("prompt"))
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	client := NewGenerationClient(srv.URL, "secret-key")
	img, err := client.Generate(context.Background(), "a cute cat")
	assert.NoError(t, err)
	assert.Equal(t, payload, img)
}

func TestGenerationClient_ClassifiesStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"auth failure", http.StatusUnauthorized, errors.ErrProviderAuth},
		{"forbidden", http.StatusForbidden, errors.ErrProviderAuth},
		{"rate limited", http.StatusTooManyRequests, errors.ErrProviderRateLimited},
		{"bad prompt", http.StatusBadRequest, errors.ErrProviderBadRequest},
		{"unprocessable", http.StatusUnprocessableEntity, errors.ErrProviderBadRequest},
		{"gateway timeout", http.StatusGatewayTimeout, errors.ErrProviderTimeout},
		{"server error", http.StatusInternalServerError, errors.ErrProviderUnavailable},
		{"bad gateway", http.StatusBadGateway, errors.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewGenerationClient(srv.URL, "k")
			_, err := client.Generate(context.Background(), "prompt")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerationClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewGenerationClient(srv.URL, "k")
	client.http.Timeout = 20 * time.Millisecond

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, errors.ErrProviderTimeout)
}

func TestGenerationClient_Unreachable(t *testing.T) {
	// Nobody listens here.
	client := NewGenerationClient("http://127.0.0.1:1", "k")
	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, errors.ErrProviderUnavailable)
}
