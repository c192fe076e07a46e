package handler

import (
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplyHandler struct {
	uc usecase.FillUsecase
}

func NewApplyHandler(uc usecase.FillUsecase) *ApplyHandler {
	return &ApplyHandler{uc: uc}
}

func (h *ApplyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/jobs/:job_id/apply", h.Apply)
}

func (h *ApplyHandler) Apply(c fiber.Ctx) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	filled, err := h.uc.Apply(c.Context(), jobID, account)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "You have been hired for this job", dto.NewJob(filled))
}
