// Package registry adapts the ownership ledger on the test network. The
// ledger is the source of truth for batch existence and current ownership;
// reads are side-effect free. A failing node maps to ErrSourceUnavailable,
// never to a not-found: absence of the source must stay distinguishable from
// absence of the record.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/config"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
)

// Client talks to the registry contract through an RPC node. The contract
// address is fixed at construction; it never changes for the process's
// lifetime.
type Client struct {
	rpcURL          string
	contractAddress string
	httpClient      *http.Client
	logger          *logrus.Logger
}

// NewClient creates a registry client from configuration
func NewClient(cfg *config.RegistryConfig, logger *logrus.Logger) *Client {
	timeout := 15 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &Client{
		rpcURL:          cfg.RPCURL,
		contractAddress: cfg.ContractAddress,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

type contractCallRequest struct {
	Contract string   `json:"contract"`
	Method   string   `json:"method"`
	Args     []string `json:"args"`
}

type verifyBatchResponse struct {
	Exists       bool   `json:"exists"`
	CurrentOwner string `json:"currentOwner"`
	MetadataHash string `json:"metadataHash"`
	CreatedAt    int64  `json:"createdAt"`
}

type transactionResponse struct {
	TxHash string `json:"txHash"`
}

// call performs one contract invocation against the RPC node
func (c *Client) call(ctx context.Context, method string, args []string, out interface{}) error {
	callReq := contractCallRequest{
		Contract: c.contractAddress,
		Method:   method,
		Args:     args,
	}

	jsonData, err := json.Marshal(callReq)
	if err != nil {
		return fmt.Errorf("failed to marshal contract call: %w", err)
	}

	url := fmt.Sprintf("%s/contracts/call", c.rpcURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create RPC request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return serviceerror.SourceUnavailable("registry", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return serviceerror.SourceUnavailable("registry", err)
	}

	if resp.StatusCode != http.StatusOK {
		return serviceerror.SourceUnavailable("registry",
			fmt.Errorf("RPC node returned status %d: %s", resp.StatusCode, string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return serviceerror.SourceUnavailable("registry",
			fmt.Errorf("malformed RPC response: %w", err))
	}

	return nil
}

// Verify looks up a batch on the ledger. A non-existent batch is reported
// in-band through OwnershipRecord.Exists, not through an error.
func (c *Client) Verify(ctx context.Context, batchID string) (*models.OwnershipRecord, error) {
	var result verifyBatchResponse
	if err := c.call(ctx, "verifyBatch", []string{batchID}, &result); err != nil {
		c.logger.WithError(err).WithField("batch_id", batchID).Warn("Registry verification failed")
		return nil, err
	}

	return &models.OwnershipRecord{
		BatchID:      batchID,
		Exists:       result.Exists,
		Owner:        result.CurrentOwner,
		MetadataHash: result.MetadataHash,
		CreatedAt:    time.Unix(result.CreatedAt, 0).UTC(),
	}, nil
}

// Register records a new batch on the ledger. The returned transaction hash
// is kept for display only.
func (c *Client) Register(ctx context.Context, batchID, metadataHash string) (string, error) {
	var result transactionResponse
	if err := c.call(ctx, "registerBatch", []string{batchID, metadataHash}, &result); err != nil {
		return "", err
	}

	c.logger.WithFields(logrus.Fields{
		"batch_id": batchID,
		"tx_hash":  result.TxHash,
	}).Info("Batch registered on ledger")

	return result.TxHash, nil
}

// TransferOwnership moves a batch to a new owner on the ledger
func (c *Client) TransferOwnership(ctx context.Context, batchID, newOwner string) (string, error) {
	var result transactionResponse
	if err := c.call(ctx, "transferOwnership", []string{batchID, newOwner}, &result); err != nil {
		return "", err
	}

	c.logger.WithFields(logrus.Fields{
		"batch_id":  batchID,
		"new_owner": newOwner,
		"tx_hash":   result.TxHash,
	}).Info("Batch ownership transferred on ledger")

	return result.TxHash, nil
}

// HealthCheck checks whether the RPC node is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/status", c.rpcURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create status request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return serviceerror.SourceUnavailable("registry", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serviceerror.SourceUnavailable("registry",
			fmt.Errorf("status endpoint returned %d", resp.StatusCode))
	}

	return nil
}
