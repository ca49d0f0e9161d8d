package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service/mocks"
)

func TestAuditListRecent_FiltersByEntityType(t *testing.T) {
	store := new(mocks.MockAuditTrailStore)
	store.On("ListRecent", mock.Anything, "batch", 20, 0).
		Return([]models.AuditLog{{ID: "a-1", Action: "batch_recalled", EntityType: "batch"}}, nil)
	store.On("Count", mock.Anything, "batch").Return(5, nil)

	svc := NewAuditQueryService(store)
	entries, total, err := svc.ListRecent(context.Background(), "batch", 20, 0)

	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "batch_recalled", entries[0].Action)
	assert.Equal(t, 5, total)
	store.AssertExpectations(t)
}

func TestAuditListRecent_ClampsPagination(t *testing.T) {
	store := new(mocks.MockAuditTrailStore)
	store.On("ListRecent", mock.Anything, "", 100, 0).Return([]models.AuditLog{}, nil)
	store.On("Count", mock.Anything, "").Return(0, nil)

	svc := NewAuditQueryService(store)
	_, _, err := svc.ListRecent(context.Background(), "", 500, -1)

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestAuditListRecent_StoreFailurePropagates(t *testing.T) {
	store := new(mocks.MockAuditTrailStore)
	store.On("ListRecent", mock.Anything, "", 20, 0).Return(nil, assert.AnError)

	svc := NewAuditQueryService(store)
	_, _, err := svc.ListRecent(context.Background(), "", 20, 0)

	assert.ErrorIs(t, err, assert.AnError)
}
