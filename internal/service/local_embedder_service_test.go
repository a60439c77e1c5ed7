package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/farhanadi/resume-matcher/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLocalService(t *testing.T, handler http.HandlerFunc) *LocalEmbedderService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewLocalEmbedderService(&config.EmbedderConfig{
		LocalURL:       srv.URL,
		LocalModel:     "all-minilm",
		RequestTimeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestLocalEmbedderEncode(t *testing.T) {
	var gotBody map[string]any
	svc := newLocalService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"embeddings":[[0.1,0.2,0.3],[0.4,0.5,0.6]]}`))
	})

	vectors, err := svc.Encode(context.Background(), []string{"resume", "job"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.InDelta(t, 0.1, float64(vectors[0][0]), 1e-6)
	assert.InDelta(t, 0.6, float64(vectors[1][2]), 1e-6)

	assert.Equal(t, "all-minilm", gotBody["model"])
	assert.Len(t, gotBody["input"], 2)
}

func TestLocalEmbedderEncodeEmptyBatch(t *testing.T) {
	svc := newLocalService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := svc.Encode(context.Background(), nil)
	require.Error(t, err)
}

func TestLocalEmbedderEncodeServerError(t *testing.T) {
	svc := newLocalService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	})

	_, err := svc.Encode(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestLocalEmbedderEncodeMissingEmbeddings(t *testing.T) {
	svc := newLocalService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model":"all-minilm"}`))
	})

	_, err := svc.Encode(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no embeddings")
}

func TestLocalEmbedderEncodeCountMismatch(t *testing.T) {
	svc := newLocalService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"embeddings":[[0.1,0.2]]}`))
	})

	_, err := svc.Encode(context.Background(), []string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 embeddings")
}

func TestLocalEmbedderEncodeEmptyVector(t *testing.T) {
	svc := newLocalService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"embeddings":[[]]}`))
	})

	_, err := svc.Encode(context.Background(), []string{"one"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}
