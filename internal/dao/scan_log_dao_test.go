package dao

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
)

var scanRowColumns = []string{
	"id", "batch_id", "scanner_user_id", "verification_status",
	"latitude", "longitude", "anomaly_flags", "scanned_at",
}

func TestScanLogDAO_ListSince(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewScanLogDAO(db)

	since := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM scan_logs WHERE batch_id = \\? AND scanned_at >= \\?").
		WithArgs("MED-001", since).
		WillReturnRows(sqlmock.NewRows(scanRowColumns).
			AddRow("SCAN-2", "MED-001", nil, "authentic", 6.9271, 79.8612, `["Rapid scanning: 5 scans in 10 min"]`, since.Add(2*time.Hour)).
			AddRow("SCAN-1", "MED-001", "pharmacist-7", "authentic", nil, nil, "[]", since.Add(time.Hour)))

	got, err := dao.ListSince(context.Background(), "MED-001", since)

	require.NoError(t, err)
	require.Len(t, got, 2)
	// most recent first
	assert.Equal(t, "SCAN-2", got[0].ID)
	assert.True(t, got[0].HasCoordinates())
	assert.Equal(t, models.StringSlice{"Rapid scanning: 5 scans in 10 min"}, got[0].AnomalyFlags)
	assert.False(t, got[1].HasCoordinates())
	assert.Equal(t, "pharmacist-7", got[1].ScannerUserID.String)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanLogDAO_ListSince_EmptyHistory(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewScanLogDAO(db)

	mock.ExpectQuery("SELECT (.+) FROM scan_logs").
		WillReturnRows(sqlmock.NewRows(scanRowColumns))

	got, err := dao.ListSince(context.Background(), "MED-001", time.Now().Add(-24*time.Hour))

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScanLogDAO_Insert(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewScanLogDAO(db)

	mock.ExpectExec("INSERT INTO scan_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := dao.Insert(context.Background(), &models.ScanLog{
		ID:                 "SCAN-1",
		BatchID:            "MED-001",
		VerificationStatus: models.VerificationAuthentic,
		AnomalyFlags:       models.StringSlice{},
		ScannedAt:          time.Now().UTC(),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanLogDAO_CountByStatusForManufacturer(t *testing.T) {
	db, mock := newMockDB(t)
	dao := NewScanLogDAO(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WithArgs("Acme Pharma", "suspicious").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	got, err := dao.CountByStatusForManufacturer(context.Background(), "Acme Pharma", models.VerificationSuspicious)

	require.NoError(t, err)
	assert.Equal(t, 3, got)
}
