package provider

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"imagify/internal/errors"
)

// GenerationTimeout bounds a single text-to-image call.
const GenerationTimeout = 60 * time.Second

// ImageGenerator is the capability a text-to-image provider must offer.
// Implementations return raw image bytes or one of the classified provider
// errors from the errors package; callers never see vendor status codes.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// GenerationClient calls a ClipDrop-compatible text-to-image endpoint.
type GenerationClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewGenerationClient builds a client with the provider timeout applied.
func NewGenerationClient(baseURL, apiKey string) *GenerationClient {
	return &GenerationClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: GenerationTimeout},
	}
}

// Generate submits the prompt as a multipart form and returns the image bytes.
func (c *GenerationClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("prompt", prompt); err != nil {
		return nil, fmt.Errorf("encode prompt: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ClassifyStatus(resp.StatusCode)
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ErrProviderUnavailable
	}
	return img, nil
}

// ClassifyStatus maps a provider HTTP status to the fixed error taxonomy.
// Kept separate from the workflow so a new vendor only needs a client that
// funnels its responses through the same mapping.
func ClassifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.ErrProviderAuth
	case status == http.StatusTooManyRequests:
		return errors.ErrProviderRateLimited
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return errors.ErrProviderBadRequest
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return errors.ErrProviderTimeout
	default:
		return errors.ErrProviderUnavailable
	}
}

func classifyTransportError(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.ErrProviderTimeout
	}
	var netErr interface{ Timeout() bool }
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.ErrProviderTimeout
	}
	return errors.ErrProviderUnavailable
}
