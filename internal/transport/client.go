// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/apex/log"
	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/staranto/cludder/internal/cacheutil"
)

// FunctionPath is the URL prefix every remote function lives under.
const FunctionPath = "/fn/cludder/"

const formContentType = "application/x-www-form-urlencoded; charset=UTF-8"

var (
	// ErrTransport is the only failure kind: a network error or a non-2xx
	// response.
	ErrTransport = errors.New("transport failure")
	ErrNoHost    = errors.New("no backend host configured")
)

// StatusError is a non-2xx response.
type StatusError struct {
	Function   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Function, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrTransport
}

// Caller is a synchronous remote function call.
type Caller interface {
	Call(ctx context.Context, fn string, payload any) (Response, error)
}

// Client calls remote functions over HTTP.
type Client struct {
	host    string
	http    *http.Client
	lookups map[string]bool
	scope   cacheutil.Scope
}

type Option func(*Client)

// WithHTTPClient replaces the default pooled client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLookupCache names the functions whose successful responses may be
// served from the on-disk cache. Only side-effect free lookups belong here.
func WithLookupCache(fns ...string) Option {
	return func(c *Client) {
		for _, fn := range fns {
			c.lookups[fn] = true
		}
	}
}

func NewClient(host string, opts ...Option) (*Client, error) {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return nil, ErrNoHost
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	if _, err := url.Parse(host); err != nil {
		return nil, fmt.Errorf("invalid host %q: %w", host, err)
	}

	c := &Client{
		host:    host,
		http:    cleanhttp.DefaultPooledClient(),
		lookups: map[string]bool{},
		scope:   cacheutil.HostScope(host),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Host is the normalized backend base URL.
func (c *Client) Host() string {
	return c.host
}

// Call POSTs payload to the named function and returns the raw body. Every
// failure wraps ErrTransport.
func (c *Client) Call(ctx context.Context, fn string, payload any) (Response, error) {
	body, err := encodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to encode payload: %w", ErrTransport, fn, err)
	}

	cacheKey := fn + "\x00" + string(body)
	if c.lookups[fn] {
		if entry, ok := c.scope.Read(cacheKey); ok {
			log.WithField("fn", fn).Debugf("cache hit: %s", entry.Path)
			return Response(entry.Data), nil
		}
	}

	endpoint := c.host + FunctionPath + url.PathEscape(fn)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to create request: %w", ErrTransport, fn, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", formContentType)
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to execute request: %w", ErrTransport, fn, err)
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read response: %w", ErrTransport, fn, err)
	}

	log.WithFields(log.Fields{
		"fn":         fn,
		"request_id": requestID,
		"status":     resp.StatusCode,
	}).Debug("response received")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			Function:   fn,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(doc.String()),
		}
	}

	if c.lookups[fn] {
		if err := c.scope.Write(cacheKey, doc.Bytes()); err != nil {
			log.WithError(err).Warn("failed to write response to cache")
		}
	}

	return Response(doc.Bytes()), nil
}

// encodePayload mirrors a browser form post: strings go out verbatim and
// anything else is flattened into form values.
func encodePayload(payload any) ([]byte, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(p), nil
	case []byte:
		return p, nil
	case url.Values:
		return []byte(p.Encode()), nil
	default:
		v, err := query.Values(payload)
		if err != nil {
			return nil, err
		}
		return []byte(v.Encode()), nil
	}
}
