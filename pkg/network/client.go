package network

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/lcalzada-xor/framestrip/pkg/config"
)

// ErrStatus is wrapped by Fetch when the server answers with a non-2xx status.
var ErrStatus = errors.New("unexpected status")

// maxFetchSize caps how much of a remote script Fetch reads into memory.
const maxFetchSize = 64 << 20

// Client wraps http.Client with retry logic and rate limiting.
type Client struct {
	HTTPClient  *http.Client
	RateLimiter *RateLimiter
	UserAgent   string
	MaxRetries  int
}

// NewClient creates a Client sized for the given number of concurrent
// fetches. rateLimit is in requests per second (0 = unlimited).
func NewClient(timeout time.Duration, proxyURL string, concurrency int, rateLimit float64) *Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,

		MaxIdleConns:        concurrency * 2,
		MaxIdleConnsPerHost: max(concurrency/2, 10),
		MaxConnsPerHost:     concurrency,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if proxyURL != "" {
		if pURL, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(pURL)
		}
	}

	return &Client{
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		RateLimiter: NewRateLimiter(rateLimit),
		UserAgent:   config.DefaultUserAgent,
		MaxRetries:  3,
	}
}

// Do sends an HTTP request with automatic retries and rate limiting.
// Server errors and transport failures are retried; 4xx responses are not.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.RateLimiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	var resp *http.Response
	var err error

	for i := 0; i <= c.MaxRetries; i++ {
		if i > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(math.Pow(2, float64(i-1))*100) * time.Millisecond
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(backoff):
			}
		}

		resp, err = c.HTTPClient.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if err != nil && req.Context().Err() != nil {
			return nil, req.Context().Err()
		}

		// the last 5xx response is handed back to the caller
		if resp != nil && i < c.MaxRetries {
			resp.Body.Close()
		}
	}

	if err != nil {
		return nil, fmt.Errorf("request failed after %d retries: %w", c.MaxRetries, err)
	}
	return resp, nil
}

// Fetch downloads the body at rawURL. Non-2xx responses are reported as
// errors wrapping ErrStatus.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("fetch %s: %w %d", rawURL, ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return body, nil
}
