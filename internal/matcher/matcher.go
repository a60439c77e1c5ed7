package matcher

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Embedder turns texts into fixed-length dense vectors. Implementations
// must return one vector per input, in order, and be deterministic for a
// fixed model and input.
type Embedder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// ErrEmptyInput reports a blank resume or job description. Callers are
// expected to surface it as a user-facing validation message, not a server
// failure.
var ErrEmptyInput = errors.New("matcher: empty input text")

// MatchResult is one ranked job for a query. Score is calibrated to 0-100;
// Similarity is the raw combined score the ranking sorted on.
type MatchResult struct {
	Index          int     `json:"index"`
	Score          float64 `json:"score"`
	Similarity     float64 `json:"similarity"`
	CompanyName    string  `json:"company_name"`
	PositionTitle  string  `json:"position_title"`
	JobDescription string  `json:"job_description"`
}

// CompareResult is the outcome of a stateless resume/JD comparison.
type CompareResult struct {
	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
	MatchLevel string  `json:"match_level"`
}

// corpusIndex is an immutable snapshot of the fitted job corpus. Fit builds
// a fresh one and publishes it wholesale; it is never mutated in place, so
// in-flight reads keep a consistent view.
type corpusIndex struct {
	fingerprint string
	rows        []JobRecord
	texts       []string
	vectors     [][]float32
	normalized  [][]float32
	skills      []SkillSet
}

// Engine ranks a job corpus against resume text by blending embedding
// cosine similarity (70%) with keyword overlap (30%). One instance serves
// the whole process: Fit takes the write side of the lock, Match the read
// side. Compare never touches the index.
type Engine struct {
	embedder Embedder
	log      *zap.Logger

	mu  sync.RWMutex
	idx *corpusIndex
}

func NewEngine(embedder Embedder, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{embedder: embedder, log: log}
}

// fingerprint samples row count plus the first row's description-or-skills
// and title. Deliberately partial: a same-length corpus with an identical
// first row counts as unchanged. That trades false negatives on low-churn
// catalogs for O(1) change detection instead of hashing every row.
func fingerprint(rows []JobRecord) string {
	if len(rows) == 0 {
		return "0"
	}
	first := rows[0]
	desc := first["job_description"]
	if desc == "" {
		desc = first["skills_required"]
	}
	if r := []rune(desc); len(r) > 200 {
		desc = string(r[:200])
	}
	key := strconv.Itoa(len(rows)) + desc + resolveField(first, titleKeys)
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Fitted reports whether a corpus index has been built.
func (e *Engine) Fitted() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.idx != nil
}

// CorpusSize returns the number of indexed jobs.
func (e *Engine) CorpusSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.idx == nil {
		return 0
	}
	return len(e.idx.rows)
}

// Fit indexes the given job rows: combines each row into one descriptive
// text, encodes all texts in a single batch, and stores the vectors with
// pre-normalized copies. A no-op when the corpus fingerprint matches the
// current index, so callers may fit on every request once the catalog is
// stable. An empty row set yields an empty index.
func (e *Engine) Fit(ctx context.Context, rows []JobRecord) error {
	fp := fingerprint(rows)
	e.mu.RLock()
	current := e.idx
	e.mu.RUnlock()
	if current != nil && current.fingerprint == fp {
		return nil
	}

	texts := make([]string, len(rows))
	for i, rec := range rows {
		texts[i] = truncateForEncode(combineText(rec))
	}

	idx := &corpusIndex{
		fingerprint: fp,
		rows:        rows,
		texts:       texts,
	}
	if len(texts) > 0 {
		vectors, err := e.embedder.Encode(ctx, texts)
		if err != nil {
			return fmt.Errorf("encode job corpus: %w", err)
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
		}
		idx.vectors = vectors
		idx.normalized = make([][]float32, len(vectors))
		for i, v := range vectors {
			idx.normalized[i] = normalize(v)
		}
		idx.skills = make([]SkillSet, len(rows))
		for i, rec := range rows {
			idx.skills[i] = ExtractSkills(resolveField(rec, skillKeys))
		}
	}

	e.mu.Lock()
	e.idx = idx
	e.mu.Unlock()

	e.log.Info("job corpus fitted",
		zap.Int("jobs", len(rows)),
		zap.String("fingerprint", fp),
	)
	return nil
}

// Match encodes the query text, scores it against every indexed job and
// returns the top topK results ordered by descending combined score, ties
// broken by original index. An empty query or an empty corpus yields an
// empty result; embedding failures propagate to the caller.
func (e *Engine) Match(ctx context.Context, text string, topK int) ([]MatchResult, error) {
	if text == "" {
		return []MatchResult{}, nil
	}
	if topK <= 0 {
		topK = 3
	}

	e.mu.RLock()
	idx := e.idx
	e.mu.RUnlock()
	if idx == nil || len(idx.normalized) == 0 {
		return []MatchResult{}, nil
	}

	text = truncateForEncode(text)
	resumeSkills := ExtractSkills(text)

	vectors, err := e.embedder.Encode(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}
	query := normalize(vectors[0])

	combined := make([]float64, len(idx.normalized))
	for i, jobVec := range idx.normalized {
		sim := dot(jobVec, query)
		combined[i] = 0.7*sim + 0.3*skillOverlap(resumeSkills, idx.skills[i])
	}
	scores := calibrateBatch(combined)

	order := make([]int, len(combined))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return combined[order[a]] > combined[order[b]]
	})
	if topK > len(order) {
		topK = len(order)
	}

	results := make([]MatchResult, 0, topK)
	for _, i := range order[:topK] {
		rec := idx.rows[i]
		results = append(results, MatchResult{
			Index:          i,
			Score:          round1(clip(scores[i], 0, 100)),
			Similarity:     round4(combined[i]),
			CompanyName:    resolveField(rec, companyKeys),
			PositionTitle:  resolveField(rec, resultTitleKeys),
			JobDescription: truncateRunes(resultDescription(rec), 800),
		})
	}

	e.log.Debug("matched query against corpus",
		zap.Int("jobs", len(combined)),
		zap.Int("returned", len(results)),
	)
	return results, nil
}

// Compare scores a resume against a single ad-hoc job description,
// independent of the corpus index. Pure semantic comparison: with no
// corpus-wide skill vocabulary to anchor on, no keyword blending is done.
func (e *Engine) Compare(ctx context.Context, resumeText, jobDescription string) (CompareResult, error) {
	if resumeText == "" || jobDescription == "" {
		return CompareResult{}, ErrEmptyInput
	}

	texts := []string{truncateForEncode(resumeText), truncateForEncode(jobDescription)}
	vectors, err := e.embedder.Encode(ctx, texts)
	if err != nil {
		return CompareResult{}, fmt.Errorf("encode comparison pair: %w", err)
	}
	if len(vectors) < 2 {
		return CompareResult{}, fmt.Errorf("embedder returned %d vectors for comparison pair", len(vectors))
	}

	sim := dot(normalize(vectors[0]), normalize(vectors[1]))
	score := calibratePair(sim)
	return CompareResult{
		Score:      round1(score),
		Similarity: round4(sim),
		MatchLevel: matchLevel(score),
	}, nil
}
