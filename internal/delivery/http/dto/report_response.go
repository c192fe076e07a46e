package dto

import (
	"time"

	"skill-match/internal/domain/report"
	"skill-match/internal/repository"
	"skill-match/internal/usecase"

	"github.com/ecodeclub/ekit/slice"
)

type TierSummaryResponse struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Total  int `json:"total"`
}

type MonthCountResponse struct {
	Month      string `json:"month"`
	Count      int    `json:"count"`
	Cumulative int    `json:"cumulative"`
}

type MonthlyFillsResponse struct {
	From   time.Time            `json:"from"`
	To     time.Time            `json:"to"`
	Months []MonthCountResponse `json:"months"`
}

type DashboardResponse struct {
	Overview     repository.Overview  `json:"overview"`
	TopSkills    []report.SkillCount  `json:"top_skills"`
	Tiers        TierSummaryResponse  `json:"tiers"`
	MonthlyFills MonthlyFillsResponse `json:"monthly_fills"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

func NewTierSummary(c report.TierCounts) TierSummaryResponse {
	return TierSummaryResponse{High: c.High, Medium: c.Medium, Low: c.Low, Total: c.Total()}
}

// NewMonthlyFills renders each bucket as YYYY-MM.
func NewMonthlyFills(from, to time.Time, items []report.MonthCount) MonthlyFillsResponse {
	months := slice.Map(items, func(_ int, m report.MonthCount) MonthCountResponse {
		return MonthCountResponse{Month: m.Month.Format("2006-01"), Count: m.Count, Cumulative: m.Cumulative}
	})
	if months == nil {
		months = []MonthCountResponse{}
	}
	return MonthlyFillsResponse{From: from.UTC(), To: to.UTC(), Months: months}
}

func NewDashboard(d usecase.Dashboard) DashboardResponse {
	top := d.TopSkills
	if top == nil {
		top = []report.SkillCount{}
	}
	return DashboardResponse{
		Overview:     d.Overview,
		TopSkills:    top,
		Tiers:        NewTierSummary(d.Tiers),
		MonthlyFills: NewMonthlyFills(d.WindowStart, d.WindowEnd, d.MonthlyFills),
		GeneratedAt:  d.GeneratedAt,
	}
}
