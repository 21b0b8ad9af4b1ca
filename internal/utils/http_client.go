package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client so the client adapter can be built on a
// preconfigured instance.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an HTTPClient with baseURL and a per-request timeout.
// Requests are retried twice on transport errors.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", 10*time.Second)
//	resp, err := client.R().Get("/api/health")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "pass-guard-client")

	return &HTTPClient{Client: c}
}
