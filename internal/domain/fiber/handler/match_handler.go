package handler

import (
	"context"
	"errors"
	"time"

	"github.com/farhanadi/resume-matcher/internal/dto"
	"github.com/farhanadi/resume-matcher/internal/matcher"
	"github.com/farhanadi/resume-matcher/internal/middleware"
	"github.com/farhanadi/resume-matcher/internal/model"
	"github.com/farhanadi/resume-matcher/internal/response"
	"github.com/farhanadi/resume-matcher/internal/usecase"
	"github.com/farhanadi/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
)

const defaultTopK = 5

// MatchUsecase is what the HTTP surface needs from the matching flow.
type MatchUsecase interface {
	MatchResume(ctx context.Context, text string, topK int) ([]matcher.MatchResult, error)
	CompareWithJD(ctx context.Context, resumeText, jobDescription string) (matcher.CompareResult, error)
	CreateJob(req dto.CreateJobRequest) (*model.Job, error)
	ListJobs(page, pageSize int) ([]model.Job, *response.Pagination, error)
	Status() (string, int)
}

type MatchHandler struct {
	uc      MatchUsecase
	appName string
	env     string
}

func NewMatchHandler(uc MatchUsecase, appName, env string) *MatchHandler {
	return &MatchHandler{uc: uc, appName: appName, env: env}
}

func (h *MatchHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Post("/api/match-jobs", middleware.RateLimiter(10, 10*time.Second), h.MatchJobs)
	app.Post("/api/compare-cv-jd", middleware.RateLimiter(10, 10*time.Second), h.Compare)
	app.Post("/api/jobs", h.CreateJob)
	app.Get("/api/jobs", h.ListJobs)
}

func (h *MatchHandler) Health(c *fiber.Ctx) error {
	status, jobs := h.uc.Status()
	code := fiber.StatusOK
	if status != usecase.StatusReady {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(dto.HealthDTO{
		Status:      status,
		App:         h.appName,
		Environment: h.env,
		Jobs:        jobs,
	})
}

func (h *MatchHandler) MatchJobs(c *fiber.Ctx) error {
	var req dto.MatchJobsRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Text == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "text is required",
		})
	}
	topK := req.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	results, err := h.uc.MatchResume(c.UserContext(), req.Text, topK)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to match jobs",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success match jobs",
		Data:    results,
		Meta:    fiber.Map{"count": len(results)},
	})
}

func (h *MatchHandler) Compare(c *fiber.Ctx) error {
	var req dto.CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	result, err := h.uc.CompareWithJD(c.UserContext(), req.ResumeText, req.JobDescription)
	if err != nil {
		if errors.Is(err, matcher.ErrEmptyInput) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "resume_text and job_description are required",
				Details: fiber.Map{"score": 0},
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to compare texts",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success compare cv and job description",
		Data:    result,
	})
}

func (h *MatchHandler) CreateJob(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Title == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "title is required",
		})
	}

	job, err := h.uc.CreateJob(req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create job",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create job",
		Data:    job,
	})
}

func (h *MatchHandler) ListJobs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	jobs, pagination, err := h.uc.ListJobs(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list jobs",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get jobs",
		Data:       jobs,
		Pagination: pagination,
	})
}
