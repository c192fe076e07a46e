package report

import (
	"sort"
	"time"

	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
)

type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

const (
	HighThreshold   = 70.0
	MediumThreshold = 40.0
)

// Classify maps a match score to its tier. Lower bounds are inclusive.
func Classify(score float64) Tier {
	switch {
	case score >= HighThreshold:
		return TierHigh
	case score >= MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

type TierCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func (c TierCounts) Total() int {
	return c.High + c.Medium + c.Low
}

// ClassifyFilledJobs scores every filled job against the employee that filled
// it. Entries without a filler are skipped.
func ClassifyFilledJobs(filled []job.Filled) TierCounts {
	var out TierCounts
	for _, f := range filled {
		if f.Job.FilledBy == nil {
			continue
		}
		switch Classify(matching.Score(f.Employee, f.Job).Score) {
		case TierHigh:
			out.High++
		case TierMedium:
			out.Medium++
		default:
			out.Low++
		}
	}
	return out
}

type MonthCount struct {
	Month      time.Time `json:"month"`
	Count      int       `json:"count"`
	Cumulative int       `json:"cumulative"`
}

// MonthlyCumulativeFillCounts buckets fills inside [windowStart, windowEnd]
// by calendar month (UTC). Every month of the window is present, and
// Cumulative is the running total up to and including that month.
func MonthlyCumulativeFillCounts(filled []job.Filled, windowStart, windowEnd time.Time) []MonthCount {
	window := job.TimeRange{From: windowStart.UTC(), To: windowEnd.UTC()}
	if window.To.Before(window.From) {
		return []MonthCount{}
	}

	perMonth := make(map[int]int)
	for _, f := range filled {
		if f.Job.FilledBy == nil || f.Job.FilledAt == nil {
			continue
		}
		at := f.Job.FilledAt.UTC()
		if !window.Contains(at) {
			continue
		}
		perMonth[monthKey(at)]++
	}

	first := monthStart(window.From)
	last := monthStart(window.To)

	out := make([]MonthCount, 0)
	running := 0
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		n := perMonth[monthKey(m)]
		running += n
		out = append(out, MonthCount{Month: m, Count: n, Cumulative: running})
	}
	return out
}

type SkillCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SkillDemand counts how many jobs require each skill, most demanded first.
// A non-positive limit returns every skill.
func SkillDemand(jobs []job.Job, limit int) []SkillCount {
	counts := make(map[string]int)
	for _, j := range jobs {
		for name := range j.RequiredSkills {
			counts[name]++
		}
	}

	out := make([]SkillCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, SkillCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Count != out[k].Count {
			return out[i].Count > out[k].Count
		}
		return out[i].Name < out[k].Name
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
