package service

import (
	"context"
	"time"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
)

// widestWindow is the largest window any risk rule looks at. One range fetch
// spans it; the narrower windows are pure in-memory filters over the same
// result set, so all rules see a single consistent snapshot.
const widestWindow = 24 * time.Hour

// ScanStore is the slice of the scan-log DAO the ledger needs
type ScanStore interface {
	Insert(ctx context.Context, scan *models.ScanLog) error
	ListSince(ctx context.Context, batchID string, since time.Time) ([]models.ScanLog, error)
}

// ScanLedger is the windowed-query layer over the append-only scan history
type ScanLedger struct {
	store ScanStore
}

// NewScanLedger creates a scan ledger over the given store
func NewScanLedger(store ScanStore) *ScanLedger {
	return &ScanLedger{store: store}
}

// Window is one fetched history snapshot for a batch, anchored at a fixed
// instant. Scans are ordered most recent first and span the widest window.
type Window struct {
	now   time.Time
	scans []models.ScanLog
}

// Snapshot fetches the batch's scan history for the widest window in a single
// round trip
func (l *ScanLedger) Snapshot(ctx context.Context, batchID string, now time.Time) (*Window, error) {
	scans, err := l.store.ListSince(ctx, batchID, now.Add(-widestWindow))
	if err != nil {
		return nil, err
	}

	return &Window{now: now, scans: scans}, nil
}

// CountSince counts scans within the trailing duration
func (w *Window) CountSince(d time.Duration) int {
	return len(w.ListSince(d))
}

// ListSince filters the snapshot down to the trailing duration, preserving
// most-recent-first order
func (w *Window) ListSince(d time.Duration) []models.ScanLog {
	cutoff := w.now.Add(-d)
	out := make([]models.ScanLog, 0, len(w.scans))
	for _, scan := range w.scans {
		if !scan.ScannedAt.Before(cutoff) {
			out = append(out, scan)
		}
	}
	return out
}

// At returns the instant the snapshot is anchored to
func (w *Window) At() time.Time {
	return w.now
}
