package ws

import (
	"context"
	"encoding/json"
	"time"

	"skill-match/internal/domain/job"

	"go.uber.org/zap"
)

const EventJobFilled = "job_filled"

type JobFilledEvent struct {
	Type       string `json:"type"`
	JobID      string `json:"job_id"`
	EmployerID string `json:"employer_id"`
	EmployeeID string `json:"employee_id"`
	FilledAt   string `json:"filled_at"`
}

// JobFilled broadcasts a fill to every subscriber. Delivery is best-effort.
func (h *Hub) JobFilled(_ context.Context, ev job.FilledEvent) {
	if h == nil {
		return
	}

	b, err := json.Marshal(JobFilledEvent{
		Type:       EventJobFilled,
		JobID:      ev.JobID.String(),
		EmployerID: ev.EmployerID.String(),
		EmployeeID: ev.EmployeeID.String(),
		FilledAt:   ev.FilledAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Warn("encode fill event", zap.Error(err))
		return
	}

	h.Broadcast(b)
}
