package matching

import (
	"math"
	"sort"

	"skill-match/internal/domain/employee"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/skill"
)

const (
	SkillWeight      = 0.7
	ExperienceWeight = 0.3
)

type Result struct {
	Score             float64   `json:"score"`
	SkillMatchPercent float64   `json:"skill_match_percent"`
	ExpMatchPercent   float64   `json:"exp_match_percent"`
	SkillGap          skill.Set `json:"skill_gap"`
}

type ScoredJob struct {
	Job    job.Job
	Result Result
}

type ScoredCandidate struct {
	Employee employee.Profile
	Result   Result
}

// Score blends skill overlap and experience sufficiency into a 0-100 score.
// It is pure and safe for concurrent use.
func Score(emp employee.Profile, j job.Job) Result {
	skillPct := skillMatch(emp.Skills, j.RequiredSkills)
	expPct := experienceMatch(emp.ExperienceYears, j.ExperienceRequired)

	total := skillPct*SkillWeight + expPct*ExperienceWeight

	return Result{
		Score:             clampPercent(round1(total)),
		SkillMatchPercent: round1(skillPct),
		ExpMatchPercent:   round1(expPct),
		SkillGap:          j.RequiredSkills.Difference(emp.Skills),
	}
}

// RankJobs scores every job for emp, best first. Equal scores keep their
// input order.
func RankJobs(emp employee.Profile, jobs []job.Job) []ScoredJob {
	out := make([]ScoredJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, ScoredJob{Job: j, Result: Score(emp, j)})
	}
	SortJobs(out)
	return out
}

func SortJobs(items []ScoredJob) {
	sort.SliceStable(items, func(i, k int) bool {
		return items[i].Result.Score > items[k].Result.Score
	})
}

// RankCandidates is the mirror of RankJobs: employees ranked for one job.
func RankCandidates(j job.Job, emps []employee.Profile) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, len(emps))
	for _, e := range emps {
		out = append(out, ScoredCandidate{Employee: e, Result: Score(e, j)})
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].Result.Score > out[k].Result.Score
	})
	return out
}

func skillMatch(held, required skill.Set) float64 {
	if required.Len() == 0 {
		return 100
	}
	matched := required.Intersect(held).Len()
	return 100 * float64(matched) / float64(required.Len())
}

func experienceMatch(years, required int) float64 {
	if required <= 0 {
		return 100
	}
	if years < 0 {
		years = 0
	}
	if years >= required {
		return 100
	}
	return 100 * float64(years) / float64(required)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
