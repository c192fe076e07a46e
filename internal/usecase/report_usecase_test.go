package usecase

import (
	"errors"
	"testing"
	"time"

	"skill-match/internal/domain/employee"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/report"
	"skill-match/internal/domain/skill"
	"skill-match/internal/repository"
	repomocks "skill-match/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func filledJob(emp employee.Profile, at time.Time, required int, skills ...string) job.Filled {
	empID := emp.ID
	return job.Filled{
		Job: job.Job{
			ID:                 uuid.New(),
			RequiredSkills:     skill.NewSet(skills...),
			ExperienceRequired: required,
			FilledBy:           &empID,
			FilledAt:           &at,
		},
		Employee: emp,
	}
}

func newReport(t *testing.T, cache ReportCache) (*Report, *repomocks.MockJobRepository, *repomocks.MockStatsRepository) {
	ctrl := gomock.NewController(t)
	jobs := repomocks.NewMockJobRepository(ctrl)
	stats := repomocks.NewMockStatsRepository(ctrl)

	uc := NewReportUsecase(jobs, stats, cache, ReportOptions{WindowDays: 90, TopSkills: 2}, zap.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc, jobs, stats
}

func TestReport_TierSummary(t *testing.T) {
	uc, jobs, _ := newReport(t, nil)
	cook := employee.Profile{ID: uuid.New(), Skills: skill.NewSet("Cooking"), ExperienceYears: 4}

	jobs.EXPECT().ListFilledJobs(gomock.Any(), (*job.TimeRange)(nil)).Return([]job.Filled{
		filledJob(cook, fixedNow, 2, "Cooking"),
		filledJob(cook, fixedNow, 2, "Cooking", "Cleaning"),
	}, nil)

	got, err := uc.TierSummary(t.Context())
	require.NoError(t, err)
	assert.Equal(t, report.TierCounts{High: 1, Medium: 1}, got)
}

func TestReport_MonthlyFills_DefaultWindow(t *testing.T) {
	uc, jobs, _ := newReport(t, nil)
	emp := employee.Profile{ID: uuid.New()}

	want := job.TimeRange{From: fixedNow.AddDate(0, 0, -90), To: fixedNow}
	jobs.EXPECT().ListFilledJobs(gomock.Any(), &want).Return([]job.Filled{
		filledJob(emp, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 0),
		filledJob(emp, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), 0),
	}, nil)

	series, err := uc.MonthlyFills(t.Context(), job.TimeRange{})
	require.NoError(t, err)
	require.Len(t, series, 4)
	assert.Equal(t, time.January, series[0].Month.Month())
	assert.Equal(t, 2, series[len(series)-1].Cumulative)
}

func TestReport_MonthlyFills_Windows(t *testing.T) {
	uc, _, _ := newReport(t, nil)

	_, err := uc.MonthlyFills(t.Context(), job.TimeRange{From: fixedNow})
	assert.ErrorIs(t, err, ErrInvalidInput)

	series, err := uc.MonthlyFills(t.Context(), job.TimeRange{From: fixedNow, To: fixedNow.AddDate(0, -1, 0)})
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestReport_Dashboard(t *testing.T) {
	cache := newMemReportCache()
	uc, jobs, stats := newReport(t, cache)
	cook := employee.Profile{ID: uuid.New(), Skills: skill.NewSet("Cooking"), ExperienceYears: 4}

	stats.EXPECT().Overview(gomock.Any()).Return(repository.Overview{Employees: 3, Employers: 1, Jobs: 4, FilledJobs: 2}, nil).Times(1)
	jobs.EXPECT().ListAll(gomock.Any()).Return([]job.Job{
		{RequiredSkills: skill.NewSet("Cooking", "Cleaning")},
		{RequiredSkills: skill.NewSet("Cooking")},
		{RequiredSkills: skill.NewSet("Driving")},
	}, nil).Times(1)
	jobs.EXPECT().ListFilledJobs(gomock.Any(), (*job.TimeRange)(nil)).Return([]job.Filled{
		filledJob(cook, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 2, "Cooking"),
		filledJob(cook, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 9, "Driving"),
	}, nil).Times(1)

	d, err := uc.Dashboard(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, d.Overview.Employees)
	assert.Equal(t, []report.SkillCount{{Name: "Cooking", Count: 2}, {Name: "Cleaning", Count: 1}}, d.TopSkills)
	assert.Equal(t, report.TierCounts{High: 1, Low: 1}, d.Tiers)
	require.NotEmpty(t, d.MonthlyFills)
	assert.Equal(t, 1, d.MonthlyFills[len(d.MonthlyFills)-1].Cumulative)

	again, err := uc.Dashboard(t.Context())
	require.NoError(t, err)
	assert.Equal(t, d.Tiers, again.Tiers)
	assert.Equal(t, d.TopSkills, again.TopSkills)
}

func TestReport_Dashboard_Error(t *testing.T) {
	uc, jobs, stats := newReport(t, nil)
	boom := errors.New("statement timeout")

	stats.EXPECT().Overview(gomock.Any()).Return(repository.Overview{}, boom)
	jobs.EXPECT().ListAll(gomock.Any()).Return(nil, nil).AnyTimes()
	jobs.EXPECT().ListFilledJobs(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := uc.Dashboard(t.Context())
	assert.ErrorIs(t, err, boom)
}
