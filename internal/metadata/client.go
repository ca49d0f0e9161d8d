// Package metadata fetches batch metadata documents from the content-addressed
// network through an ordered list of gateway mirrors. The mirrors are raced
// with a per-attempt timeout; the first well-formed document wins. All mirrors
// failing means "metadata degraded" (ErrSourceUnavailable), never "record
// absent".
package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/config"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/pkg/race"
)

// Client resolves metadata documents by content hash across gateway mirrors
type Client struct {
	gateways       []string
	pinEndpoint    string
	attemptTimeout time.Duration
	httpClient     *http.Client
	logger         *logrus.Logger
}

// NewClient creates a metadata client from configuration
func NewClient(cfg *config.MetadataConfig, logger *logrus.Logger) *Client {
	attemptTimeout := 10 * time.Second
	if cfg.AttemptTimeout > 0 {
		attemptTimeout = cfg.AttemptTimeout
	}

	return &Client{
		gateways:       cfg.Gateways,
		pinEndpoint:    cfg.PinEndpoint,
		attemptTimeout: attemptTimeout,
		httpClient: &http.Client{
			// attempts are bounded per gateway via context; no global timeout
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

func (c *Client) fetchFromGateway(ctx context.Context, gateway, contentHash string) (*models.BatchMetadata, error) {
	url := fmt.Sprintf("%s/%s", strings.TrimRight(gateway, "/"), contentHash)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var doc models.BatchMetadata
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("malformed metadata document: %w", err)
	}

	return &doc, nil
}

// Fetch resolves a metadata document by content hash, racing all configured
// gateways. Returns ErrSourceUnavailable when every gateway fails or times
// out.
func (c *Client) Fetch(ctx context.Context, contentHash string) (*models.BatchMetadata, error) {
	if contentHash == "" {
		return nil, serviceerror.NewValidationError("content_hash", "content hash cannot be empty")
	}

	sources := make([]race.Source[*models.BatchMetadata], 0, len(c.gateways))
	for _, gateway := range c.gateways {
		gateway := gateway
		sources = append(sources, race.Source[*models.BatchMetadata]{
			Name: gateway,
			Fetch: func(ctx context.Context) (*models.BatchMetadata, error) {
				return c.fetchFromGateway(ctx, gateway, contentHash)
			},
		})
	}

	doc, winner, err := race.First(ctx, sources, c.attemptTimeout)
	if err != nil {
		c.logger.WithError(err).WithField("content_hash", contentHash).Warn("All metadata gateways failed")
		return nil, serviceerror.SourceUnavailable("metadata", err)
	}

	c.logger.WithFields(logrus.Fields{
		"content_hash": contentHash,
		"gateway":      winner,
	}).Debug("Metadata document resolved")

	return doc, nil
}

type pinResponse struct {
	ContentHash string `json:"contentHash"`
}

// Pin uploads a metadata document to the pinning service and returns its
// content hash. Used by batch registration; verification never writes here.
func (c *Client) Pin(ctx context.Context, doc *models.BatchMetadata) (string, error) {
	if c.pinEndpoint == "" {
		return "", serviceerror.SourceUnavailable("metadata",
			fmt.Errorf("no pinning endpoint configured"))
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pinEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create pin request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", serviceerror.SourceUnavailable("metadata", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", serviceerror.SourceUnavailable("metadata", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", serviceerror.SourceUnavailable("metadata",
			fmt.Errorf("pinning service returned status %d: %s", resp.StatusCode, string(body)))
	}

	var result pinResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", serviceerror.SourceUnavailable("metadata",
			fmt.Errorf("malformed pin response: %w", err))
	}

	return result.ContentHash, nil
}
