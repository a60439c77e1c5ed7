package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/farhanadi/resume-matcher/internal/config"
	"github.com/farhanadi/resume-matcher/internal/matcher"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-embedding-001"

// GeminiService produces embeddings through the Gemini API. A missing key
// or unreachable backend is a startup failure, not a per-request one.
type GeminiService struct {
	client         *genai.Client
	model          string
	requestTimeout time.Duration
	log            *zap.Logger
}

var _ matcher.Embedder = (*GeminiService)(nil)

func NewGeminiService(ctx context.Context, cfg *config.EmbedderConfig, log *zap.Logger) (*GeminiService, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.GeminiModel
	if model == "" {
		model = defaultGeminiModel
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &GeminiService{
		client:         client,
		model:          model,
		requestTimeout: timeout,
		log:            log,
	}, nil
}

// Encode embeds all texts in one batched request. Failures are not retried
// here: the caller decides whether to degrade or fail the request, and
// retrying a deterministic failure only wastes latency.
func (s *GeminiService) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to embed")
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			// the API rejects empty content; a single space keeps the
			// batch aligned with the input positions
			trimmed = " "
		}
		contents = append(contents, genai.NewContentFromText(trimmed, genai.RoleUser))
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	s.log.Debug("embedding batch via gemini", zap.Int("texts", len(texts)), zap.String("model", s.model))

	result, err := s.client.Models.EmbedContent(timeoutCtx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	return validateEmbeddings(result, len(texts))
}

func validateEmbeddings(resp *genai.EmbedContentResponse, want int) ([][]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) != want {
		return nil, fmt.Errorf("expected %d embeddings, got %d", want, len(resp.Embeddings))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("embedding %d is empty", i)
		}
		for j, val := range emb.Values {
			if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
				return nil, fmt.Errorf("invalid embedding value at %d/%d: %v", i, j, val)
			}
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}
