package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"imagify/internal/errors"
	"imagify/internal/provider"
)

// TransformService applies a single named transformation to an existing
// hosted image. Authenticated but free of charge: transformations do not
// touch the credit ledger. The asymmetry with generation is deliberate until
// product says otherwise, and is isolated here so a debit would be a
// one-line wiring change.
type TransformService interface {
	Transform(ctx context.Context, sourceURL string, kind provider.TransformKind, opts provider.TransformOptions) (string, error)
}

type transformService struct {
	media provider.MediaTransformer
}

// NewTransformService creates a new transform service.
func NewTransformService(media provider.MediaTransformer) TransformService {
	return &transformService{media: media}
}

func (s *transformService) Transform(ctx context.Context, sourceURL string, kind provider.TransformKind, opts provider.TransformOptions) (string, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return "", fmt.Errorf("%w: image URL must not be empty", errors.ErrBadRequest)
	}
	if u, err := url.Parse(sourceURL); err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: image URL must be absolute", errors.ErrBadRequest)
	}

	result, err := s.media.Transform(ctx, sourceURL, kind, opts)
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", labelFor(kind), err)
	}
	return result, nil
}

func labelFor(kind provider.TransformKind) string {
	switch kind {
	case provider.TransformRemoveBackground:
		return "background removal"
	case provider.TransformUpscale:
		return "upscaling"
	case provider.TransformEnhance:
		return "enhancement"
	case provider.TransformOptimize:
		return "optimization"
	default:
		return string(kind)
	}
}
