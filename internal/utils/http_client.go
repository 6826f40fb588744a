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
//	client := utils.NewHTTPClient(5*time.Second, apiKey)
//	resp, err := client.R().SetBody(msg).Post("https://mail.example/send")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a JSON client with the given request timeout. When
// bearerToken is not empty every request carries it in the Authorization
// header.
func NewHTTPClient(timeout time.Duration, bearerToken string) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if bearerToken != "" {
		client.SetAuthToken(bearerToken)
	}

	return &HTTPClient{Client: client}
}
