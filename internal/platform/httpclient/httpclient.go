package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-wellness-timeline/internal/platform/logger"

	"github.com/bytedance/sonic"
)

const (
	DefaultTimeout = 10 * time.Second

	// maxBody limita lo que se lee de una respuesta (errores y decode).
	maxBody = 8 << 20
)

var errNilClient = errors.New("httpclient: nil client")

// Client envuelve *http.Client con helpers JSON para los adapters que hablan
// con el data-service.
type Client struct {
	HTTP    *http.Client
	BaseURL string // opcional; si se define se aceptan paths relativos

	// Headers se envían en cada request (p.ej. API key del data-service).
	Headers map[string]string

	Log logger.Logger
}

func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP: &http.Client{Timeout: timeout},
		Log:  logger.Discard(),
	}
}

func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// HTTPError es una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// IsStatus indica si err es un HTTPError con ese status.
func IsStatus(err error, status int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == status
}

// GetJSON es DoJSON para GET sin body.
func (c *Client) GetJSON(ctx context.Context, pathOrURL string, query url.Values, out any) error {
	return c.DoJSON(ctx, http.MethodGet, pathOrURL, query, nil, out)
}

// DoJSON manda `in` como JSON (nil = sin body) y decodifica la respuesta en
// `out` (nil = se descarta). pathOrURL es absoluta o relativa a BaseURL.
// Un status no-2xx vuelve como *HTTPError.
func (c *Client) DoJSON(ctx context.Context, method, pathOrURL string, query url.Values, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errNilClient
	}

	target, err := c.buildURL(pathOrURL, query)
	if err != nil {
		return err
	}

	var payload []byte
	if in != nil {
		if payload, err = sonic.Marshal(in); err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
	}

	start := time.Now()
	raw, err := c.roundTrip(ctx, method, target, payload)
	c.logger().Debug("upstream call", map[string]any{
		"method":      method,
		"url":         target,
		"duration_ms": time.Since(start).Milliseconds(),
		"error":       errString(err),
	})
	if err != nil {
		return err
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.Headers {
		if strings.TrimSpace(k) != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}

func (c *Client) buildURL(pathOrURL string, query url.Values) (string, error) {
	target, err := c.resolveURL(pathOrURL)
	if err != nil {
		return "", err
	}
	if len(query) == 0 {
		return target, nil
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + query.Encode(), nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	switch {
	case pathOrURL == "":
		return "", errors.New("httpclient: empty url")
	case strings.HasPrefix(pathOrURL, "http://"), strings.HasPrefix(pathOrURL, "https://"):
		return pathOrURL, nil
	case c.BaseURL == "":
		return "", errors.New("httpclient: relative path requires BaseURL")
	}
	return c.BaseURL + "/" + strings.TrimPrefix(pathOrURL, "/"), nil
}

func (c *Client) logger() logger.Logger {
	if c.Log == nil {
		return logger.Discard()
	}
	return c.Log
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
