package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/trusteddatanow/catalog/internal/utils"
)

// Outcome is the result of one liveness probe.
type Outcome struct {
	Active        bool   `json:"active"`
	StatusCode    int    `json:"statusCode"`              // last HTTP status, 0 on transport failure
	Reason        string `json:"reason,omitempty"`        // set when not active
	AuthChallenge bool   `json:"authChallenge,omitempty"` // 401/407 seen: reachable but gated
}

// Checker probes a single URL for liveness.
//
// A HEAD request is tried first; some sites reject HEAD outright, so
// 403/404/405 and transport errors fall back to GET. 2xx/3xx responses count
// as active. Transport failures are retried with backoff up to the retry
// budget; HTTP error statuses are an answer, not a failure, and are never
// retried.
type Checker struct {
	client    *http.Client
	userAgent string
	attempts  uint
}

// NewChecker creates a checker. retries is the number of extra attempts
// allowed on transport errors; timeout bounds each request.
func NewChecker(timeout time.Duration, retries int, userAgent string) *Checker {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 0,
			}).DialContext,
			TLSHandshakeTimeout: timeout,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			DisableKeepAlives: true,
		},
	}
	return &Checker{
		client:    client,
		userAgent: userAgent,
		attempts:  uint(retries) + 1,
	}
}

// Check probes rawURL and classifies the result. It never returns an error:
// an exhausted retry budget or an error status becomes an inactive Outcome.
func (c *Checker) Check(ctx context.Context, rawURL string) Outcome {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Outcome{Active: false, Reason: "empty url"}
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}

	status, err := retry.DoWithData(
		func() (int, error) {
			return c.probeOnce(ctx, rawURL)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return Outcome{Active: false, Reason: classifyTransportError(err)}
	}

	out := Outcome{StatusCode: status}
	switch {
	case status >= 200 && status < 400:
		out.Active = true
	case status == http.StatusUnauthorized || status == http.StatusProxyAuthRequired:
		out.Reason = fmt.Sprintf("HTTP %d", status)
		out.AuthChallenge = true
	default:
		out.Reason = fmt.Sprintf("HTTP %d", status)
	}
	return out
}

// probeOnce performs one HEAD-then-GET probe. The returned error is always a
// transport failure, which makes it retryable.
func (c *Checker) probeOnce(ctx context.Context, url string) (int, error) {
	status, err := c.request(ctx, http.MethodHead, url)
	if err == nil && !headFallbackStatus(status) {
		return status, nil
	}
	// HEAD is widely unsupported; ask again with GET before believing it.
	return c.request(ctx, http.MethodGet, url)
}

func headFallbackStatus(status int) bool {
	switch status {
	case http.StatusForbidden, http.StatusNotFound, http.StatusMethodNotAllowed:
		return true
	}
	return false
}

func (c *Checker) request(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	utils.Drain(resp.Body)
	return resp.StatusCode, nil
}

func classifyTransportError(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns failure: " + dnsErr.Err
	}

	var certErr *tls.CertificateVerificationError
	var recErr tls.RecordHeaderError
	if errors.As(err, &certErr) || errors.As(err, &recErr) {
		return "tls failure"
	}

	return "connection error: " + err.Error()
}
