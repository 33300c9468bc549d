// Package sdk provides the low-level Kite Connect REST client.
package sdk

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	rateLimitDelay   = 350 * time.Millisecond // ~3 requests/second API budget
	requestQueueSize = 100
	kiteVersion      = "3"
)

// requestJob represents a job in the rate limiting queue
type requestJob struct {
	method     string
	path       string
	params     url.Values
	authorized bool
	resultCh   chan requestResult
}

// requestResult represents the result of a request
type requestResult struct {
	data json.RawMessage
	err  error
}

// envelope is the standard Kite Connect response wrapper
type envelope struct {
	Status    string          `json:"status"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	ErrorType string          `json:"error_type"`
}

// Client represents the Kite Connect SDK client
type Client struct {
	apiKey       string
	apiSecret    string
	baseURL      string
	loginBaseURL string
	httpClient   *http.Client
	log          zerolog.Logger
	requestQueue chan requestJob
	stopChan     chan struct{}
	workerDone   chan struct{}
	once         sync.Once

	mu          sync.RWMutex
	accessToken string
}

// NewClient creates a new Kite Connect SDK client.
// The client is created without a session; call SetAccessToken or
// GenerateSession before making authorized requests.
func NewClient(apiKey, apiSecret string, log zerolog.Logger) *Client {
	c := &Client{
		apiKey:       apiKey,
		apiSecret:    apiSecret,
		baseURL:      "https://api.kite.trade",
		loginBaseURL: "https://kite.zerodha.com",
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		log:          log.With().Str("component", "kite-sdk").Logger(),
		requestQueue: make(chan requestJob, requestQueueSize),
		stopChan:     make(chan struct{}),
		workerDone:   make(chan struct{}),
	}

	// Start the rate limiting worker
	go c.worker()

	return c
}

// SetAccessToken installs a session access token obtained externally
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// HasSession reports whether a session access token is present
func (c *Client) HasSession() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken != ""
}

// LoginURL returns the broker login URL that starts the external auth flow
func (c *Client) LoginURL() string {
	return fmt.Sprintf("%s/connect/login?v=%s&api_key=%s", c.loginBaseURL, kiteVersion, url.QueryEscape(c.apiKey))
}

// sessionChecksum computes the SHA-256 checksum the session exchange requires:
// SHA256(apiKey + requestToken + apiSecret), hex encoded.
func sessionChecksum(apiKey, requestToken, apiSecret string) string {
	sum := sha256.Sum256([]byte(apiKey + requestToken + apiSecret))
	return hex.EncodeToString(sum[:])
}

// request enqueues a request and waits for its result.
// All requests flow through the rate limiting queue.
func (c *Client) request(method, path string, params url.Values, authorized bool) (json.RawMessage, error) {
	select {
	case <-c.stopChan:
		return nil, fmt.Errorf("client is closed")
	default:
	}

	resultCh := make(chan requestResult, 1)

	job := requestJob{
		method:     method,
		path:       path,
		params:     params,
		authorized: authorized,
		resultCh:   resultCh,
	}

	select {
	case c.requestQueue <- job:
		// Job queued successfully
	case <-c.stopChan:
		return nil, fmt.Errorf("client is closed")
	default:
		return nil, fmt.Errorf("request queue is full")
	}

	result := <-resultCh
	return result.data, result.err
}

// worker processes requests from the queue sequentially with rate limiting
func (c *Client) worker() {
	defer close(c.workerDone)

	var lastRequestTime time.Time
	firstRequest := true

	processJob := func(job requestJob) {
		// Wait for rate limit delay (except before first request)
		if !firstRequest {
			elapsed := time.Since(lastRequestTime)
			if elapsed < rateLimitDelay {
				time.Sleep(rateLimitDelay - elapsed)
			}
		}
		firstRequest = false

		var result requestResult
		result.data, result.err = c.doRequest(job.method, job.path, job.params, job.authorized)

		lastRequestTime = time.Now()
		job.resultCh <- result
	}

	for {
		select {
		case <-c.stopChan:
			// Drain remaining jobs from queue before exiting
			for {
				select {
				case job, ok := <-c.requestQueue:
					if !ok {
						return
					}
					processJob(job)
				default:
					return
				}
			}
		case job, ok := <-c.requestQueue:
			if !ok {
				return
			}
			processJob(job)
		}
	}
}

// Close gracefully shuts down the rate limiting worker
func (c *Client) Close() {
	// The queue channel itself stays open so a racing request fails with
	// "client is closed" instead of panicking on send.
	c.once.Do(func() {
		close(c.stopChan)
		<-c.workerDone
	})
}

// doRequest performs one HTTP round trip without rate limiting
func (c *Client) doRequest(method, path string, params url.Values, authorized bool) (json.RawMessage, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return nil, fmt.Errorf("api keypair is not valid")
	}

	c.mu.RLock()
	accessToken := c.accessToken
	c.mu.RUnlock()

	if authorized && accessToken == "" {
		return nil, fmt.Errorf("session not initialized")
	}

	requestURL := c.baseURL + path

	var body io.Reader
	if method == http.MethodGet || method == http.MethodDelete {
		if len(params) > 0 {
			requestURL += "?" + params.Encode()
		}
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequest(method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Kite-Version", kiteVersion)
	req.Header.Set("User-Agent", "evenfolio/1.0")
	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if authorized {
		req.Header.Set("Authorization", "token "+c.apiKey+":"+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		bodyStr := string(respBody)
		if len(bodyStr) > 500 {
			bodyStr = bodyStr[:500] + "..."
		}
		return nil, fmt.Errorf("invalid response (HTTP %d): %s", resp.StatusCode, bodyStr)
	}

	if resp.StatusCode != http.StatusOK || env.Status != "success" {
		return nil, fmt.Errorf("api error (HTTP %d, %s): %s", resp.StatusCode, env.ErrorType, env.Message)
	}

	return env.Data, nil
}
