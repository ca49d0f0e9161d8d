package race

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirst_ReturnsFirstSuccess(t *testing.T) {
	sources := []Source[string]{
		{
			Name: "slow",
			Fetch: func(ctx context.Context) (string, error) {
				select {
				case <-time.After(200 * time.Millisecond):
					return "slow-value", nil
				case <-ctx.Done():
					return "", ctx.Err()
				}
			},
		},
		{
			Name: "fast",
			Fetch: func(ctx context.Context) (string, error) {
				return "fast-value", nil
			},
		},
	}

	value, winner, err := First(context.Background(), sources, time.Second)

	require.NoError(t, err)
	assert.Equal(t, "fast-value", value)
	assert.Equal(t, "fast", winner)
}

func TestFirst_SkipsFailingSources(t *testing.T) {
	sources := []Source[int]{
		{
			Name: "broken",
			Fetch: func(ctx context.Context) (int, error) {
				return 0, errors.New("connection refused")
			},
		},
		{
			Name: "healthy",
			Fetch: func(ctx context.Context) (int, error) {
				return 42, nil
			},
		},
	}

	value, winner, err := First(context.Background(), sources, time.Second)

	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, "healthy", winner)
}

func TestFirst_AllSourcesFail(t *testing.T) {
	sources := []Source[string]{
		{
			Name: "a",
			Fetch: func(ctx context.Context) (string, error) {
				return "", errors.New("boom")
			},
		},
		{
			Name: "b",
			Fetch: func(ctx context.Context) (string, error) {
				return "", errors.New("bang")
			},
		},
	}

	_, _, err := First(context.Background(), sources, time.Second)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllSourcesFailed)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "bang")
}

func TestFirst_PerAttemptTimeout(t *testing.T) {
	sources := []Source[string]{
		{
			Name: "hung",
			Fetch: func(ctx context.Context) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
		},
	}

	start := time.Now()
	_, _, err := First(context.Background(), sources, 50*time.Millisecond)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllSourcesFailed)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFirst_NoSources(t *testing.T) {
	_, _, err := First[string](context.Background(), nil, time.Second)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestFirst_ParentContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources := []Source[string]{
		{
			Name: "hung",
			Fetch: func(ctx context.Context) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
		},
	}

	_, _, err := First(ctx, sources, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
