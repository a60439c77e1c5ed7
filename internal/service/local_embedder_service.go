package service

import (
	"context"
	"fmt"
	"time"

	"github.com/farhanadi/resume-matcher/internal/config"
	"github.com/farhanadi/resume-matcher/internal/matcher"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const defaultLocalModel = "all-minilm"

// LocalEmbedderService calls an Ollama-compatible /api/embed endpoint so a
// small model such as all-minilm can run locally without a cloud
// dependency.
type LocalEmbedderService struct {
	client *resty.Client
	model  string
	log    *zap.Logger
}

var _ matcher.Embedder = (*LocalEmbedderService)(nil)

func NewLocalEmbedderService(cfg *config.EmbedderConfig, log *zap.Logger) *LocalEmbedderService {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	model := cfg.LocalModel
	if model == "" {
		model = defaultLocalModel
	}

	client := resty.New().
		SetBaseURL(cfg.LocalURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &LocalEmbedderService{
		client: client,
		model:  model,
		log:    log,
	}
}

// Encode embeds all texts in one request against the local runtime.
func (s *LocalEmbedderService) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to embed")
	}

	s.log.Debug("embedding batch via local runtime", zap.Int("texts", len(texts)), zap.String("model", s.model))

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": s.model,
			"input": texts,
		}).
		Post("/api/embed")
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("embedding endpoint returned %s", resp.Status())
	}

	raw := gjson.Get(resp.String(), "embeddings")
	if !raw.IsArray() {
		return nil, fmt.Errorf("no embeddings in response")
	}
	rows := raw.Array()
	if len(rows) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(rows))
	}

	vectors := make([][]float32, len(rows))
	for i, row := range rows {
		values := row.Array()
		if len(values) == 0 {
			return nil, fmt.Errorf("embedding %d is empty", i)
		}
		vec := make([]float32, len(values))
		for j, v := range values {
			vec[j] = float32(v.Float())
		}
		vectors[i] = vec
	}
	return vectors, nil
}
