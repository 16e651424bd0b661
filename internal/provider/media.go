package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TransformKind names one supported media transformation.
type TransformKind string

const (
	TransformRemoveBackground TransformKind = "remove-background"
	TransformUpscale          TransformKind = "upscale"
	TransformEnhance          TransformKind = "enhance"
	TransformOptimize         TransformKind = "optimize"
)

// TransformOptions carries kind-specific knobs. Only optimize uses them.
type TransformOptions struct {
	Quality string
	Format  string
}

// MediaTransformer is the capability a media delivery provider must offer:
// given a hosted source image, produce a new hosted URL for the transformed
// asset. The source is never mutated.
type MediaTransformer interface {
	Transform(ctx context.Context, sourceURL string, kind TransformKind, opts TransformOptions) (string, error)
}

// mediaProbeTimeout bounds the delivery-URL validation request. The source
// design left this call unbounded; a cap keeps a stuck provider from pinning
// request goroutines.
const mediaProbeTimeout = 30 * time.Second

// MediaClient builds Cloudinary-style fetch URLs and verifies the provider
// will serve them.
type MediaClient struct {
	baseURL   string
	cloudName string
	http      *http.Client
}

// NewMediaClient builds a media transformation client.
func NewMediaClient(baseURL, cloudName string) *MediaClient {
	return &MediaClient{
		baseURL:   baseURL,
		cloudName: cloudName,
		http:      &http.Client{Timeout: mediaProbeTimeout},
	}
}

// Transform derives the delivery URL for the requested transformation and
// probes it once so failures surface now rather than when the client renders
// the image.
func (c *MediaClient) Transform(ctx context.Context, sourceURL string, kind TransformKind, opts TransformOptions) (string, error) {
	effect, err := effectFor(kind, opts)
	if err != nil {
		return "", err
	}

	result := fmt.Sprintf("%s/%s/image/fetch/%s/%s",
		c.baseURL, c.cloudName, effect, url.QueryEscape(sourceURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, result, nil)
	if err != nil {
		return "", fmt.Errorf("build probe: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ClassifyStatus(resp.StatusCode)
	}
	return result, nil
}

func effectFor(kind TransformKind, opts TransformOptions) (string, error) {
	switch kind {
	case TransformRemoveBackground:
		return "e_background_removal", nil
	case TransformUpscale:
		return "e_upscale", nil
	case TransformEnhance:
		return "e_enhance", nil
	case TransformOptimize:
		quality := opts.Quality
		if quality == "" {
			quality = "auto"
		}
		format := opts.Format
		if format == "" {
			format = "auto"
		}
		return fmt.Sprintf("f_%s,q_%s", format, quality), nil
	default:
		return "", fmt.Errorf("unknown transformation %q", kind)
	}
}
