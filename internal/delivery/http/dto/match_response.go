package dto

import (
	"time"

	"skill-match/internal/domain/employee"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"

	"github.com/ecodeclub/ekit/slice"
	"github.com/google/uuid"
)

type MatchResultResponse struct {
	Score             float64  `json:"score"`
	SkillMatchPercent float64  `json:"skill_match_percent"`
	ExpMatchPercent   float64  `json:"exp_match_percent"`
	SkillGap          []string `json:"skill_gap"`
}

type JobResponse struct {
	ID                 uuid.UUID  `json:"id"`
	EmployerID         uuid.UUID  `json:"employer_id"`
	Title              string     `json:"title"`
	Location           string     `json:"location"`
	Salary             string     `json:"salary,omitempty"`
	RequiredSkills     []string   `json:"required_skills"`
	ExperienceRequired int        `json:"experience_required"`
	FilledBy           *uuid.UUID `json:"filled_by"`
	FilledAt           *time.Time `json:"filled_at"`
	CreatedAt          time.Time  `json:"created_at"`
}

type EmployeeResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experience_years"`
}

type ScoredJobResponse struct {
	Job   JobResponse         `json:"job"`
	Match MatchResultResponse `json:"match"`
}

type CandidateResponse struct {
	Employee EmployeeResponse    `json:"employee"`
	Match    MatchResultResponse `json:"match"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}

func NewMatchResult(r matching.Result) MatchResultResponse {
	return MatchResultResponse{
		Score:             r.Score,
		SkillMatchPercent: r.SkillMatchPercent,
		ExpMatchPercent:   r.ExpMatchPercent,
		SkillGap:          r.SkillGap.Sorted(),
	}
}

func NewJob(j job.Job) JobResponse {
	return JobResponse{
		ID:                 j.ID,
		EmployerID:         j.EmployerID,
		Title:              j.Title,
		Location:           j.Location,
		Salary:             j.Salary,
		RequiredSkills:     j.RequiredSkills.Sorted(),
		ExperienceRequired: j.ExperienceRequired,
		FilledBy:           j.FilledBy,
		FilledAt:           j.FilledAt,
		CreatedAt:          j.CreatedAt,
	}
}

func NewJobs(items []job.Job) []JobResponse {
	return slice.Map(items, func(_ int, j job.Job) JobResponse {
		return NewJob(j)
	})
}

func NewEmployee(e employee.Profile) EmployeeResponse {
	return EmployeeResponse{
		ID:              e.ID,
		Name:            e.Name,
		Location:        e.Location,
		Skills:          e.Skills.Sorted(),
		ExperienceYears: e.ExperienceYears,
	}
}

func NewScoredJob(s matching.ScoredJob) ScoredJobResponse {
	return ScoredJobResponse{Job: NewJob(s.Job), Match: NewMatchResult(s.Result)}
}

func NewScoredJobs(items []matching.ScoredJob) []ScoredJobResponse {
	return slice.Map(items, func(_ int, s matching.ScoredJob) ScoredJobResponse {
		return NewScoredJob(s)
	})
}

func NewCandidates(items []matching.ScoredCandidate) []CandidateResponse {
	return slice.Map(items, func(_ int, s matching.ScoredCandidate) CandidateResponse {
		return CandidateResponse{Employee: NewEmployee(s.Employee), Match: NewMatchResult(s.Result)}
	})
}
