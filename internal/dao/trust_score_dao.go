package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/database"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
)

// TrustScoreDAO handles database operations for manufacturer trust scores
type TrustScoreDAO struct {
	db *database.DB
}

// NewTrustScoreDAO creates a new TrustScoreDAO instance
func NewTrustScoreDAO(db *database.DB) *TrustScoreDAO {
	return &TrustScoreDAO{db: db}
}

// Upsert inserts or refreshes a manufacturer's trust score
func (dao *TrustScoreDAO) Upsert(ctx context.Context, score *models.TrustScore) error {
	query := `
		INSERT INTO trust_scores (
			id, manufacturer_name, score, total_batches,
			verified_count, suspicious_count, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			score = VALUES(score),
			total_batches = VALUES(total_batches),
			verified_count = VALUES(verified_count),
			suspicious_count = VALUES(suspicious_count),
			updated_at = VALUES(updated_at)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		score.ID,
		score.ManufacturerName,
		score.Score,
		score.TotalBatches,
		score.VerifiedCount,
		score.SuspiciousCount,
		score.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert trust score: %w", err)
	}

	return nil
}

// GetByManufacturer retrieves the trust score for one manufacturer
func (dao *TrustScoreDAO) GetByManufacturer(ctx context.Context, manufacturerName string) (*models.TrustScore, error) {
	query := `
		SELECT id, manufacturer_name, score, total_batches,
		       verified_count, suspicious_count, updated_at
		FROM trust_scores
		WHERE manufacturer_name = ?
	`

	var score models.TrustScore
	err := dao.db.GetContext(ctx, &score, query, manufacturerName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serviceerror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trust score: %w", err)
	}

	return &score, nil
}

// Count returns the number of manufacturers with a computed trust score
func (dao *TrustScoreDAO) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM trust_scores`

	var count int
	if err := dao.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count trust scores: %w", err)
	}

	return count, nil
}

// List retrieves trust scores ordered from lowest to highest
func (dao *TrustScoreDAO) List(ctx context.Context, limit, offset int) ([]models.TrustScore, error) {
	query := `
		SELECT id, manufacturer_name, score, total_batches,
		       verified_count, suspicious_count, updated_at
		FROM trust_scores
		ORDER BY score ASC
		LIMIT ? OFFSET ?
	`

	var scores []models.TrustScore
	if err := dao.db.SelectContext(ctx, &scores, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list trust scores: %w", err)
	}

	return scores, nil
}
