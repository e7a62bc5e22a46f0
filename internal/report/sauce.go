package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"xbt/internal/config"
	"xbt/internal/domain"
	"xbt/internal/logging"
)

// SauceReporter marks Sauce jobs as passed or failed through the REST API
type SauceReporter struct {
	apiURL      string
	credentials config.Credentials
	client      *retryablehttp.Client
}

// NewSauceReporter creates a reporter using the configured credentials
func NewSauceReporter(cfg *config.Config, logger logrus.FieldLogger) *SauceReporter {
	return &SauceReporter{
		apiURL:      strings.TrimRight(cfg.Credentials.APIURL, "/"),
		credentials: cfg.Credentials,
		client:      NewRetryClient(cfg.ReportRetries, logger),
	}
}

// NewRetryClient returns a retrying HTTP client that logs attempts at debug level
func NewRetryClient(retryMax int, logger logrus.FieldLogger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.Logger = log.New(io.Discard, "", log.LstdFlags)
	logger = logging.OrDiscard(logger)
	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		logger.WithFields(logrus.Fields{
			"method":  req.Method,
			"url":     redact(req.URL),
			"attempt": attempt,
		}).Debug("reporting verdict")
	}
	return client
}

// JobURL returns the REST endpoint of a job
func (r *SauceReporter) JobURL(sessionID string) string {
	return fmt.Sprintf("%s/rest/v1/%s/jobs/%s", r.apiURL, url.PathEscape(r.credentials.Username), url.PathEscape(sessionID))
}

// Report sends {"passed": v.Passed} for the job v.SessionID
func (r *SauceReporter) Report(ctx context.Context, v domain.Verdict) error {
	if v.SessionID == "" {
		return &domain.ReportingError{Err: fmt.Errorf("verdict has no session id")}
	}

	body, err := json.Marshal(v)
	if err != nil {
		return &domain.ReportingError{SessionID: v.SessionID, Err: fmt.Errorf("marshal verdict: %w", err)}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPut, r.JobURL(v.SessionID), bytes.NewReader(body))
	if err != nil {
		return &domain.ReportingError{SessionID: v.SessionID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(r.credentials.Username, r.credentials.AccessKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return &domain.ReportingError{SessionID: v.SessionID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &domain.ReportingError{
			SessionID: v.SessionID,
			Err:       fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		}
	}
	return nil
}

func redact(u *url.URL) string {
	c := *u
	c.User = nil
	return c.String()
}
