package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://api.mail.example", 10*time.Second, 2)
//	resp, err := client.R().SetBody(msg).Post("/send")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a resty client bound to baseURL.
//
// timeout bounds a single attempt; retryCount failed attempts are retried
// with resty's default backoff. Zero values leave resty's defaults in place.
func NewHTTPClient(baseURL string, timeout time.Duration, retryCount int) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if retryCount > 0 {
		client.SetRetryCount(retryCount).
			SetRetryWaitTime(200 * time.Millisecond).
			SetRetryMaxWaitTime(2 * time.Second)
	}

	return &HTTPClient{Client: client}
}
