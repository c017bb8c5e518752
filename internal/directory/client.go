// Package directory resolves a person's identity from the Directory Service.
package directory

import (
	"context"
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

const serviceName = "directory"

// Client queries the Directory Service for an organization's people listing.
// The dataset is fetched fresh on every lookup; nothing is cached.
type Client struct {
	baseURL string
	http    *httpclient.Client
	logger  logger.Logger
}

func NewClient(cfg config.DirectoryConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    httpclient.NewClient(cfg.Timeout),
		logger:  log.WithFields(map[string]interface{}{"service": serviceName}),
	}
}

// Resolve looks up fullName in the company's directory. It returns exactly one
// of: a PersonRecord, a PERSON_NOT_FOUND error (the normal negative result),
// or a DIRECTORY_UPSTREAM_FAILED error. Matching is a linear scan over the
// flattened dataset; names compare case-insensitively after trimming, and the
// first match in source order wins.
func (c *Client) Resolve(ctx context.Context, fullName, company string) (*PersonRecord, error) {
	searchURL := fmt.Sprintf("%s/api/company-structure/%s", c.baseURL, url.PathEscape(company))

	c.logger.Debug("fetching company structure", map[string]interface{}{
		"company": company,
		"url":     searchURL,
	})

	start := time.Now()
	status, body, err := c.http.Get(ctx, searchURL, map[string]string{
		"Accept": "application/json",
	})
	metrics.UpstreamRequestDuration.WithLabelValues(serviceName).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, c.upstreamError(fmt.Sprintf("request failed: %v", err), company)
	}

	if status < 200 || status >= 300 {
		return nil, c.upstreamError(
			fmt.Sprintf("unexpected status %d: %s", status, truncate(string(body), 512)),
			company,
		)
	}

	entries, err := flattenDataset(body)
	if err != nil {
		return nil, c.upstreamError(fmt.Sprintf("malformed dataset: %v", err), company)
	}

	query := strings.ToLower(strings.TrimSpace(fullName))
	for _, entry := range entries {
		if strings.ToLower(entry.FullName()) != query {
			continue
		}

		record := &PersonRecord{
			PersonID:  entry.PersonID,
			ConcernID: entry.ConcernID,
			FullName:  entry.FullName(),
		}
		if len(entry.PhoneNumbers) > 0 {
			record.PhoneNumber = entry.PhoneNumbers[0]
		}

		c.logger.Info("person resolved", map[string]interface{}{
			"fullName":     record.FullName,
			"personId":     record.PersonID,
			"concernId":    record.ConcernID,
			"company":      entry.Company,
			"organization": entry.Organization,
		})
		return record, nil
	}

	c.logger.Info("person not found", map[string]interface{}{
		"fullName": fullName,
		"company":  company,
		"entries":  len(entries),
	})
	return nil, errors.NewPersonNotFoundError(fullName, company)
}

func (c *Client) upstreamError(details, company string) error {
	metrics.UpstreamRequestFailures.WithLabelValues(serviceName, string(errors.ErrCodeDirectoryUpstreamFailed)).Inc()
	c.logger.Error("directory request failed", map[string]interface{}{
		"company": company,
		"details": details,
	})
	return errors.NewDirectoryUpstreamError(details)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
