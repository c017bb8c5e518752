// Package scheduling resolves a person's live status from the Scheduling Service.
package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"jari-backend/internal/common/config"
	"jari-backend/internal/common/errors"
	"jari-backend/internal/common/httpclient"
	"jari-backend/internal/common/logger"
	"jari-backend/internal/common/metrics"
)

const serviceName = "scheduling"

// The upstream rejects requests without a browser User-Agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

// Client queries the Scheduling Service for a person's current status. A
// single failed attempt is a single reported failure; there are no retries.
type Client struct {
	baseURL string
	http    *httpclient.Client
	logger  logger.Logger
}

func NewClient(cfg config.SchedulingConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    httpclient.NewClient(cfg.Timeout),
		logger:  log.WithFields(map[string]interface{}{"service": serviceName}),
	}
}

// CheckStatus fetches the live status for the given identifiers and
// normalizes it into a Verdict. Empty identifiers fail locally before any
// network call is made.
func (c *Client) CheckStatus(ctx context.Context, concernID, personID string) (*Verdict, error) {
	if concernID == "" || personID == "" {
		c.logger.Warn("status check called with missing concernId or personId", map[string]interface{}{
			"concernId": concernID,
			"personId":  personID,
		})
		return nil, errors.NewMissingIdentifiersError()
	}

	statusURL := fmt.Sprintf("%s/check_person_status/%s/%s",
		c.baseURL, url.PathEscape(concernID), url.PathEscape(personID))

	c.logger.Info("checking person status", map[string]interface{}{
		"concernId": concernID,
		"personId":  personID,
	})

	headers := map[string]string{
		"User-Agent":   browserUserAgent,
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}

	start := time.Now()
	status, body, err := c.http.Get(ctx, statusURL, headers)
	metrics.UpstreamRequestDuration.WithLabelValues(serviceName).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, c.fail(errors.NewSchedulingUpstreamError(fmt.Sprintf("request failed: %v", err)), concernID, personID)
	}

	if status != 200 {
		return nil, c.fail(errors.NewSchedulingUpstreamError(
			fmt.Sprintf("unexpected status %d: %s", status, truncate(string(body), 512)),
		), concernID, personID)
	}

	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, c.fail(errors.NewSchedulingParseError(
			fmt.Sprintf("%v: %s", err, truncate(string(body), 512)),
		), concernID, personID)
	}

	if !resp.Success {
		return nil, c.fail(errors.NewSchedulingNotSuccessfulError(), concernID, personID)
	}

	// Second decode stage: content is a JSON document inside a JSON string.
	var content statusContent
	if err := json.Unmarshal([]byte(resp.Content), &content); err != nil {
		return nil, c.fail(errors.NewSchedulingContentParseError(
			fmt.Sprintf("%v: %s", err, truncate(resp.Content, 512)),
		), concernID, personID)
	}

	personStatus := content.Data.Status
	if personStatus == "" {
		personStatus = "unknown"
	}

	var details map[string]interface{}
	_ = json.Unmarshal([]byte(resp.Content), &details)

	verdict := &Verdict{
		Available: personStatus == "available",
		Status:    personStatus,
		Details:   details,
	}

	c.logger.Info("person status resolved", map[string]interface{}{
		"concernId": concernID,
		"personId":  personID,
		"status":    verdict.Status,
		"available": verdict.Available,
	})
	return verdict, nil
}

func (c *Client) fail(stdErr *errors.StandardError, concernID, personID string) error {
	metrics.UpstreamRequestFailures.WithLabelValues(serviceName, string(stdErr.Code)).Inc()
	c.logger.Error("status check failed", map[string]interface{}{
		"concernId": concernID,
		"personId":  personID,
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
	})
	return stdErr
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
