package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTokenCookie is the cookie the dashboard stores its bearer token in.
const DefaultTokenCookie = "hch_token"

var ErrMissingToken = errors.New("missing auth token")

// TokenSource supplies the bearer token attached to every request.
type TokenSource interface {
	Token() (string, error)
}

// CookieTokenSource reads the token from a named cookie in a jar, the way
// the browser dashboard does.
type CookieTokenSource struct {
	Jar  http.CookieJar
	URL  *url.URL
	Name string
}

func (s *CookieTokenSource) Token() (string, error) {
	name := s.Name
	if name == "" {
		name = DefaultTokenCookie
	}
	for _, cookie := range s.Jar.Cookies(s.URL) {
		if cookie.Name == name && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", ErrMissingToken
}

// StaticTokenSource wraps a fixed token, for CLI and test use.
type StaticTokenSource string

func (s StaticTokenSource) Token() (string, error) {
	if s == "" {
		return "", ErrMissingToken
	}
	return string(s), nil
}

// APIError is returned for any non-2xx response. The status code and raw
// response body are embedded in the message so callers can surface them.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed: %d %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        zerolog.Logger
}

func New(baseURL string, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		log:        log,
	}
}

// do performs an authenticated JSON request. Outgoing bodies are
// deep-transformed camelCase→snake_case, responses snake_case→camelCase,
// so in-memory types keep camelCase tags while the wire stays snake_case.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := encodeSnakeBody(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("request failed")
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return decodeCamelBody(raw, out)
}

// Login authenticates against login_check and returns the bearer token.
// It is the one unauthenticated call, so it bypasses the token source.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login_check", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}
	return result.Token, nil
}

func encodeSnakeBody(body any) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return nil, err
	}
	return json.Marshal(ConvertKeysToSnake(decoded))
}

func decodeCamelBody(raw []byte, out any) error {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	encoded, err := json.Marshal(ConvertKeysToCamel(decoded))
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, out)
}
