package handler

import (
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/matching", h.ListMatchingJobs)
	grp.Get("/mine", h.ListOwnJobs)
	grp.Get("/:job_id/match", h.GetMatch)
	grp.Get("/:job_id/candidates", h.ListCandidates)
}

func (h *MatchHandler) ListMatchingJobs(c fiber.Ctx) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	minScore, err := parseQueryFloatStrict(c, "min_score", 0)
	if err != nil {
		return err
	}
	limit, err := parseQueryCount(c, "limit", 0)
	if err != nil {
		return err
	}

	ranked, err := h.uc.RankJobsForEmployee(c.Context(), account, usecase.RankFilter{
		Skill:    c.Query("skill"),
		Location: c.Query("location"),
		MinScore: minScore,
		Limit:    limit,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewListResponse(dto.NewScoredJobs(ranked)))
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	res, err := h.uc.MatchForJob(c.Context(), account, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewScoredJob(res))
}

func (h *MatchHandler) ListCandidates(c fiber.Ctx) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	ranked, err := h.uc.RankCandidatesForJob(c.Context(), account, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewListResponse(dto.NewCandidates(ranked)))
}

func (h *MatchHandler) ListOwnJobs(c fiber.Ctx) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	jobs, err := h.uc.ListEmployerJobs(c.Context(), account)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewListResponse(dto.NewJobs(jobs)))
}
