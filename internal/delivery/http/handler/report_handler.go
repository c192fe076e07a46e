package handler

import (
	"strings"
	"time"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReportHandler struct {
	uc usecase.ReportUsecase
}

func NewReportHandler(uc usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/reports")
	grp.Get("/tiers", h.GetTiers)
	grp.Get("/monthly-fills", h.GetMonthlyFills)
	grp.Get("/dashboard", h.GetDashboard)
}

func (h *ReportHandler) GetTiers(c fiber.Ctx) error {
	if _, err := requireAccount(c); err != nil {
		return err
	}

	counts, err := h.uc.TierSummary(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTierSummary(counts))
}

func (h *ReportHandler) GetMonthlyFills(c fiber.Ctx) error {
	if _, err := requireAccount(c); err != nil {
		return err
	}

	window := h.uc.DefaultWindow()
	var err error
	if window.From, err = parseQueryTime(c, "from", window.From); err != nil {
		return err
	}
	if window.To, err = parseQueryTime(c, "to", window.To); err != nil {
		return err
	}

	months, err := h.uc.MonthlyFills(c.Context(), window)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMonthlyFills(window.From, window.To, months))
}

func (h *ReportHandler) GetDashboard(c fiber.Ctx) error {
	if _, err := requireAccount(c); err != nil {
		return err
	}

	d, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDashboard(d))
}

func parseQueryTime(c fiber.Ctx, key string, defaultVal time.Time) (time.Time, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key+", expected RFC3339", nil, err)
	}
	return t.UTC(), nil
}
