package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ridloal/lux-storefront/internal/platform/logger"
)

var (
	ErrUpstreamUnavailable = errors.New("media host unavailable")
	ErrEmptyPayload        = errors.New("no file data provided")
)

// UploadResult is what the media host hands back for a stored image.
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Client stores and removes product images on the external media host.
type Client interface {
	Upload(ctx context.Context, fileDataURI string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

type httpClient struct {
	UploadURL  string
	DeleteURL  string
	Folder     string
	HTTPClient *http.Client
}

func NewHTTPClient(uploadURL, deleteURL, folder string, timeout time.Duration) Client {
	return &httpClient{
		UploadURL: uploadURL,
		DeleteURL: deleteURL,
		Folder:    folder,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type uploadRequest struct {
	File   string `json:"file"`
	Folder string `json:"folder,omitempty"`
}

type deleteRequest struct {
	PublicID string `json:"public_id"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Result string `json:"result"`
}

func (c *httpClient) Upload(ctx context.Context, fileDataURI string) (*UploadResult, error) {
	if strings.TrimSpace(fileDataURI) == "" {
		return nil, ErrEmptyPayload
	}
	var result UploadResult
	if err := c.post(ctx, c.UploadURL, uploadRequest{File: fileDataURI, Folder: c.Folder}, &result); err != nil {
		return nil, err
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("%w: upload response carried no url", ErrUpstreamUnavailable)
	}
	return &result, nil
}

func (c *httpClient) Delete(ctx context.Context, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return nil
	}
	return c.post(ctx, c.DeleteURL, deleteRequest{PublicID: publicID}, nil)
}

func (c *httpClient) post(ctx context.Context, url string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal media request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create media request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Error("MediaClient: HTTPClient.Do failed", err, url)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Error
		if msg == "" {
			msg = errResp.Result
		}
		logger.Error(fmt.Sprintf("MediaClient: media host returned status %d", resp.StatusCode), nil, msg)
		return fmt.Errorf("%w: status %d %s", ErrUpstreamUnavailable, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}
