package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/squad-to-scale-migrator/pkg/errors"
)

const (
	defaultConnectTimeout    = 10 * time.Second
	defaultMaxAttempts       = 3
	defaultBackoffBase       = 1000 * time.Millisecond
	defaultBackoffMultiplier = 2

	headerAccept         = "application/json, text/html"
	headerAcceptEncoding = "identity;q=1.0"
	headerContentType    = "application/json;charset=UTF-8"
)

var ErrUnsupportedHTTPVersion = errors.New("unsupported http version")

// status codes answered by an overloaded or restarting server
var retryableStatus = map[int]struct{}{
	http.StatusRequestTimeout:      {},
	http.StatusInternalServerError: {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

type Protocol string

const (
	HTTP1 Protocol = "HTTP/1.1"
	HTTP2 Protocol = "HTTP/2"
)

type Options struct {
	Host              string
	Username          string
	Password          string
	HTTPVersion       string
	ConnectTimeout    time.Duration
	MaxAttempts       uint
	BackoffBase       time.Duration
	BackoffMultiplier int
}

// Client is the authenticated transport shared by the Jira, Squad and Scale clients.
type Client struct {
	host        string
	username    string
	password    string
	protocol    Protocol
	maxAttempts uint
	backoffBase time.Duration
	multiplier  int
	http        *http.Client
}

func New(opts Options) (*Client, error) {
	protocol, err := ParseProtocol(opts.HTTPVersion)
	if err != nil {
		return nil, err
	}

	host := strings.TrimSuffix(strings.TrimSpace(opts.Host), "/")
	if host == "" {
		return nil, errors.New("host is required")
	}

	c := &Client{
		host:        host,
		username:    opts.Username,
		password:    opts.Password,
		protocol:    protocol,
		maxAttempts: opts.MaxAttempts,
		backoffBase: opts.BackoffBase,
		multiplier:  opts.BackoffMultiplier,
	}
	if c.maxAttempts == 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.backoffBase <= 0 {
		c.backoffBase = defaultBackoffBase
	}
	if c.multiplier <= 0 {
		c.multiplier = defaultBackoffMultiplier
	}

	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	c.http = &http.Client{Transport: newTransport(protocol, connectTimeout)}

	return c, nil
}

// ParseProtocol maps the configured http version onto a supported protocol.
func ParseProtocol(version string) (Protocol, error) {
	switch strings.TrimSpace(version) {
	case "1.1", "1":
		return HTTP1, nil
	case "2", "2.0":
		return HTTP2, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedHTTPVersion, version)
	}
}

func newTransport(protocol Protocol, connectTimeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}).DialContext
	t.DisableCompression = true

	switch protocol {
	case HTTP1:
		t.ForceAttemptHTTP2 = false
		t.Protocols = new(http.Protocols)
		t.Protocols.SetHTTP1(true)
	case HTTP2:
		t.ForceAttemptHTTP2 = true
	}
	return t
}

func (c *Client) Host() string { return c.host }

func (c *Client) Protocol() Protocol { return c.protocol }

// Get issues a GET against uri, which is relative to the host and may carry a query string.
func (c *Client) Get(ctx context.Context, uri string) (string, error) {
	return c.do(ctx, http.MethodGet, uri, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (string, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (string, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

type retryableError struct {
	statusCode int
	cause      error
}

func (e *retryableError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("connect timeout: %v", e.cause)
	}
	return fmt.Sprintf("retryable status %d", e.statusCode)
}

func (e *retryableError) Unwrap() error { return e.cause }

func (c *Client) do(ctx context.Context, method, uri string, body any) (string, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request body for %s: %w", uri, err)
		}
	}

	endpoint := c.host + uri
	log := zap.S().Named("http")

	operation := func() (string, error) {
		req, err := c.newRequest(ctx, method, endpoint, payload)
		if err != nil {
			return "", backoff.Permanent(err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if isConnectTimeout(err) {
				return "", &retryableError{cause: err}
			}
			return "", backoff.Permanent(fmt.Errorf("%s %s: %w", method, endpoint, err))
		}
		defer resp.Body.Close()

		if _, ok := retryableStatus[resp.StatusCode]; ok {
			_, _ = io.Copy(io.Discard, resp.Body)
			return "", &retryableError{statusCode: resp.StatusCode}
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", backoff.Permanent(fmt.Errorf("failed to read response body from %s: %w", endpoint, err))
		}

		text, err := decode(resp.Header.Get("Content-Encoding"), raw)
		if err != nil {
			return "", backoff.Permanent(err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", backoff.Permanent(srvErrors.NewAPIError(resp.StatusCode, text, endpoint))
		}
		return text, nil
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(newLinearBackOff(c.backoffBase, c.multiplier)),
		backoff.WithMaxTries(c.maxAttempts),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Warnw("request failed, retrying", "method", method, "endpoint", endpoint, "error", err, "wait", wait)
		}),
	)
	if err != nil {
		var retryErr *retryableError
		if errors.As(err, &retryErr) {
			log.Errorw("no answer from server", "method", method, "endpoint", endpoint, "attempts", c.maxAttempts)
			return "", srvErrors.NewNoAnswerError(endpoint, int(c.maxAttempts), err)
		}
		return "", err
	}
	return result, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, payload []byte) (*http.Request, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", headerAccept)
	req.Header.Set("Accept-Encoding", headerAcceptEncoding)
	if payload != nil {
		req.Header.Set("Content-Type", headerContentType)
	}
	return req, nil
}

func isConnectTimeout(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" && opErr.Timeout() {
		return true
	}
	return false
}
