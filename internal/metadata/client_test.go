package metadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/config"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func metadataHandler(doc *models.BatchMetadata) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(doc)
	})
}

func TestFetch_FirstHealthyGatewayWins(t *testing.T) {
	doc := &models.BatchMetadata{
		BatchID:      "MED-2026-001",
		MedicineName: "Amoxicillin",
		Manufacturer: "Acme Pharma",
	}

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer broken.Close()

	healthy := httptest.NewServer(metadataHandler(doc))
	defer healthy.Close()

	client := NewClient(&config.MetadataConfig{
		Gateways:       []string{broken.URL, healthy.URL},
		AttemptTimeout: time.Second,
	}, quietLogger())

	got, err := client.Fetch(context.Background(), "QmHash")

	require.NoError(t, err)
	assert.Equal(t, "Amoxicillin", got.MedicineName)
	assert.Equal(t, "Acme Pharma", got.Manufacturer)
}

func TestFetch_AllGatewaysFailIsSourceUnavailable(t *testing.T) {
	a := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer a.Close()

	b := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer b.Close()

	client := NewClient(&config.MetadataConfig{
		Gateways:       []string{a.URL, b.URL},
		AttemptTimeout: time.Second,
	}, quietLogger())

	_, err := client.Fetch(context.Background(), "QmHash")

	require.Error(t, err)
	assert.ErrorIs(t, err, serviceerror.ErrSourceUnavailable)
}

func TestFetch_HungGatewayTimesOut(t *testing.T) {
	hung := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer hung.Close()

	client := NewClient(&config.MetadataConfig{
		Gateways:       []string{hung.URL},
		AttemptTimeout: 50 * time.Millisecond,
	}, quietLogger())

	start := time.Now()
	_, err := client.Fetch(context.Background(), "QmHash")

	require.Error(t, err)
	assert.ErrorIs(t, err, serviceerror.ErrSourceUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetch_MalformedDocumentLosesTheRace(t *testing.T) {
	malformed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer malformed.Close()

	doc := &models.BatchMetadata{BatchID: "MED-2026-001", MedicineName: "Ibuprofen"}
	healthy := httptest.NewServer(metadataHandler(doc))
	defer healthy.Close()

	client := NewClient(&config.MetadataConfig{
		Gateways:       []string{malformed.URL, healthy.URL},
		AttemptTimeout: time.Second,
	}, quietLogger())

	got, err := client.Fetch(context.Background(), "QmHash")

	require.NoError(t, err)
	assert.Equal(t, "Ibuprofen", got.MedicineName)
}

func TestFetch_EmptyHashRejectedBeforeIO(t *testing.T) {
	client := NewClient(&config.MetadataConfig{
		Gateways:       []string{"http://127.0.0.1:0"},
		AttemptTimeout: time.Second,
	}, quietLogger())

	_, err := client.Fetch(context.Background(), "")

	require.Error(t, err)
	assert.True(t, serviceerror.IsValidation(err))
}

func TestPin_ReturnsContentHash(t *testing.T) {
	pin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var doc models.BatchMetadata
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
		assert.Equal(t, "MED-2026-001", doc.BatchID)

		json.NewEncoder(w).Encode(pinResponse{ContentHash: "QmNewHash"})
	}))
	defer pin.Close()

	client := NewClient(&config.MetadataConfig{
		Gateways:       []string{"http://unused"},
		PinEndpoint:    pin.URL,
		AttemptTimeout: time.Second,
	}, quietLogger())

	hash, err := client.Pin(context.Background(), &models.BatchMetadata{BatchID: "MED-2026-001"})

	require.NoError(t, err)
	assert.Equal(t, "QmNewHash", hash)
}
