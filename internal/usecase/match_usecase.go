package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/farhanadi/resume-matcher/internal/dto"
	"github.com/farhanadi/resume-matcher/internal/matcher"
	"github.com/farhanadi/resume-matcher/internal/model"
	"github.com/farhanadi/resume-matcher/internal/response"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Health states reported by the service surface. Degraded means the last
// attempt to build the corpus index failed; matching may return empty
// results until a refresh succeeds.
const (
	StatusReady    = "ready"
	StatusDegraded = "degraded"
)

// JobStore is the slice of the repository the matching flow needs.
type JobStore interface {
	GetJobs() ([]model.Job, error)
	CreateJob(job *model.Job) error
	ListJobs(page, pageSize int) ([]model.Job, int64, error)
}

type MatchUsecase struct {
	jobs   JobStore
	engine *matcher.Engine
	log    *zap.Logger

	mu     sync.RWMutex
	status string
}

func NewMatchUsecase(jobs JobStore, engine *matcher.Engine, log *zap.Logger) *MatchUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &MatchUsecase{jobs: jobs, engine: engine, log: log, status: StatusDegraded}
}

// Warmup fits the engine on the current catalog so the first request is
// fast. The outcome is recorded and reported by the health endpoint
// instead of being silently swallowed.
func (uc *MatchUsecase) Warmup(ctx context.Context) error {
	if err := uc.refresh(ctx); err != nil {
		uc.setStatus(StatusDegraded)
		uc.log.Warn("warmup failed, serving degraded", zap.Error(err))
		return err
	}
	uc.setStatus(StatusReady)
	uc.log.Info("warmup complete", zap.Int("jobs", uc.engine.CorpusSize()))
	return nil
}

// refresh reloads catalog rows and refits the engine. A no-op when the
// corpus fingerprint is unchanged, so it is cheap to run on every request.
func (uc *MatchUsecase) refresh(ctx context.Context) error {
	jobs, err := uc.jobs.GetJobs()
	if err != nil {
		return fmt.Errorf("load job catalog: %w", err)
	}
	rows := make([]matcher.JobRecord, len(jobs))
	for i := range jobs {
		rows[i] = jobs[i].ToRecord()
	}
	return uc.engine.Fit(ctx, rows)
}

func (uc *MatchUsecase) MatchResume(ctx context.Context, text string, topK int) ([]matcher.MatchResult, error) {
	if err := uc.refresh(ctx); err != nil {
		uc.setStatus(StatusDegraded)
		return nil, err
	}
	uc.setStatus(StatusReady)
	return uc.engine.Match(ctx, text, topK)
}

func (uc *MatchUsecase) CompareWithJD(ctx context.Context, resumeText, jobDescription string) (matcher.CompareResult, error) {
	return uc.engine.Compare(ctx, resumeText, jobDescription)
}

func (uc *MatchUsecase) CreateJob(req dto.CreateJobRequest) (*model.Job, error) {
	now := time.Now()
	job := &model.Job{
		ID:          uuid.New(),
		Company:     req.Company,
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
		Location:    req.Location,
		Experience:  req.Experience,
		Category:    req.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.jobs.CreateJob(job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	uc.log.Info("job created", zap.String("id", job.ID.String()), zap.String("title", job.Title))
	return job, nil
}

func (uc *MatchUsecase) ListJobs(page, pageSize int) ([]model.Job, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	jobs, total, err := uc.jobs.ListJobs(page, pageSize)
	if err != nil {
		return nil, nil, fmt.Errorf("list jobs: %w", err)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	from, to := 0, 0
	if len(jobs) > 0 {
		from = (page-1)*pageSize + 1
		to = from + len(jobs) - 1
	}
	pagination := &response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
		From:       from,
		To:         to,
	}
	return jobs, pagination, nil
}

// Status reports the health state and current corpus size.
func (uc *MatchUsecase) Status() (string, int) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.status, uc.engine.CorpusSize()
}

func (uc *MatchUsecase) setStatus(status string) {
	uc.mu.Lock()
	uc.status = status
	uc.mu.Unlock()
}
