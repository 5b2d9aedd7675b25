// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package api is the HTTP client for the IDS backend.
package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"grimm.is/cybershield/internal/errors"
	"grimm.is/cybershield/internal/logging"
	"grimm.is/cybershield/internal/model"
)

// maxBody caps how much of a response is read.
const maxBody = 8 << 20

// Client fetches snapshots from the backend. Each call hits exactly one
// endpoint and either decodes a snapshot or returns a classified error.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	logger  *logging.Logger
}

// NewClient creates a client for baseURL (no trailing slash).
func NewClient(baseURL string, timeout time.Duration, insecure bool, logger *logging.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: insecure}

	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger.WithComponent("api"),
	}
}

func (c *Client) SystemMetrics(ctx context.Context) (*model.SystemMetrics, error) {
	var out model.SystemMetrics
	if err := c.get(ctx, model.EndpointSystemMetrics, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TrafficMonitor(ctx context.Context) (*model.TrafficMonitor, error) {
	var out model.TrafficMonitor
	if err := c.get(ctx, model.EndpointTrafficMonitor, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Statistics(ctx context.Context) (*model.Statistics, error) {
	var out model.Statistics
	if err := c.get(ctx, model.EndpointStatistics, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateReport asks the backend to build and persist a report.
func (c *Client) GenerateReport(ctx context.Context) (*model.ReportEnvelope, error) {
	var out model.ReportEnvelope
	if err := c.get(ctx, model.EndpointGenerateReport, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reset clears the backend's session state.
func (c *Client) Reset(ctx context.Context) (*model.ResetResult, error) {
	var out model.ResetResult
	if err := c.get(ctx, model.EndpointReset, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	url := c.BaseURL + endpoint
	reqID := uuid.NewString()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "build request"), "endpoint", endpoint)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "endpoint", endpoint, "request_id", reqID, "duration", time.Since(start), "error", err)
		return errors.Attr(errors.Wrapf(err, errors.KindTransport, "GET %s", endpoint), "endpoint", endpoint)
	}
	defer resp.Body.Close()

	c.logger.Debug("response", "endpoint", endpoint, "request_id", reqID, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		err := errors.Errorf(errors.KindStatus, "api error: %s", resp.Status)
		err = errors.Attr(err, "endpoint", endpoint)
		return errors.Attr(err, "status", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(v); err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindDecode, fmt.Sprintf("decode %s", endpoint)), "endpoint", endpoint)
	}
	return nil
}
