package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"imagify/internal/errors"
)

func TestMediaClient_Transform(t *testing.T) {
	var probed string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		probed = r.URL.Path
	}))
	defer srv.Close()

	client := NewMediaClient(srv.URL, "democloud")

	tests := []struct {
		name   string
		kind   TransformKind
		opts   TransformOptions
		effect string
	}{
		{"remove background", TransformRemoveBackground, TransformOptions{}, "e_background_removal"},
		{"upscale", TransformUpscale, TransformOptions{}, "e_upscale"},
		{"enhance", TransformEnhance, TransformOptions{}, "e_enhance"},
		{"optimize defaults", TransformOptimize, TransformOptions{}, "f_auto,q_auto"},
		{"optimize explicit", TransformOptimize, TransformOptions{Quality: "80", Format: "webp"}, "f_webp,q_80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := client.Transform(context.Background(), "https://example.com/cat.png", tt.kind, tt.opts)
			assert.NoError(t, err)
			assert.Contains(t, result, "/democloud/image/fetch/"+tt.effect+"/")
			assert.True(t, strings.Contains(probed, tt.effect))
			// Source URL must be escaped into a single path segment.
			assert.Contains(t, result, "https%3A%2F%2Fexample.com%2Fcat.png")
		})
	}
}

func TestMediaClient_UnknownKind(t *testing.T) {
	client := NewMediaClient("http://unused", "c")
	_, err := client.Transform(context.Background(), "https://example.com/a.png", TransformKind("mangle"), TransformOptions{})
	assert.Error(t, err)
}

func TestMediaClient_ProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewMediaClient(srv.URL, "c")
	_, err := client.Transform(context.Background(), "https://example.com/a.png", TransformUpscale, TransformOptions{})
	assert.ErrorIs(t, err, errors.ErrProviderAuth)
}
