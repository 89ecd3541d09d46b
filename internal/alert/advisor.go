package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ridloal/lux-storefront/internal/platform/logger"
)

var ErrAdvisorUnavailable = errors.New("alert advisor unavailable")

// Advisor turns a low-stock snapshot into advisory messages.
type Advisor interface {
	GenerateAlerts(ctx context.Context, req AdvisorRequest) (AdvisorResponse, error)
}

type httpAdvisor struct {
	URL        string
	HTTPClient *http.Client
}

func NewHTTPAdvisor(url string, timeout time.Duration) Advisor {
	return &httpAdvisor{
		URL: url,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GenerateAlerts makes a single attempt; every failure is reported as
// ErrAdvisorUnavailable.
func (a *httpAdvisor) GenerateAlerts(ctx context.Context, payload AdvisorRequest) (AdvisorResponse, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return AdvisorResponse{}, fmt.Errorf("failed to marshal advisor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.URL, bytes.NewReader(jsonPayload))
	if err != nil {
		return AdvisorResponse{}, fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		logger.Error("Advisor.GenerateAlerts: HTTPClient.Do failed", err)
		return AdvisorResponse{}, fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AdvisorResponse{}, fmt.Errorf("%w: advisor returned status %d", ErrAdvisorUnavailable, resp.StatusCode)
	}

	var out AdvisorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return AdvisorResponse{}, fmt.Errorf("%w: malformed response: %v", ErrAdvisorUnavailable, err)
	}
	if out.Alerts == nil {
		out.Alerts = []AdvisorAlert{}
	}
	return out, nil
}
