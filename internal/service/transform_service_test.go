package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"imagify/internal/errors"
	"imagify/internal/provider"
)

func TestTransformService_Transform(t *testing.T) {
	media := new(MockMediaTransformer)
	media.On("Transform", mock.Anything, "https://example.com/a.png", provider.TransformUpscale, provider.TransformOptions{}).
		Return("https://cdn.example.com/upscaled.png", nil)

	svc := NewTransformService(media)
	result, err := svc.Transform(context.Background(), "https://example.com/a.png", provider.TransformUpscale, provider.TransformOptions{})

	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/upscaled.png", result)
	media.AssertExpectations(t)
}

func TestTransformService_RejectsBadSourceURL(t *testing.T) {
	media := new(MockMediaTransformer)
	svc := NewTransformService(media)

	for _, src := range []string{"", "   ", "not-a-url", "/relative/path.png"} {
		_, err := svc.Transform(context.Background(), src, provider.TransformEnhance, provider.TransformOptions{})
		assert.ErrorIs(t, err, errors.ErrBadRequest, "source %q", src)
	}
	media.AssertNotCalled(t, "Transform", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransformService_KindSpecificFailureMessage(t *testing.T) {
	media := new(MockMediaTransformer)
	media.On("Transform", mock.Anything, mock.Anything, provider.TransformRemoveBackground, mock.Anything).
		Return("", errors.ErrProviderUnavailable)

	svc := NewTransformService(media)
	_, err := svc.Transform(context.Background(), "https://example.com/a.png", provider.TransformRemoveBackground, provider.TransformOptions{})

	// The taxonomy error stays intact for status mapping while the message
	// names the operation that failed.
	assert.ErrorIs(t, err, errors.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "background removal failed")
}
