package usecase

import (
	"context"
	"fmt"
	"time"

	"skill-match/internal/domain/matching"

	"github.com/google/uuid"
)

// ScoreCache stores per-(employee, job) match results. Implementations are
// best-effort; a failing cache never fails a request.
type ScoreCache interface {
	GetResults(ctx context.Context, keys []string) (map[string]matching.Result, error)
	SetResults(ctx context.Context, results map[string]matching.Result, ttl time.Duration) error
}

type ReportCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const DashboardCacheKey = "report:dashboard"

// ScoreCacheKey embeds both version stamps, so editing a profile or a job
// makes its old entries unreachable instead of requiring invalidation.
func ScoreCacheKey(employeeID uuid.UUID, employeeVersion int64, jobID uuid.UUID, jobVersion int64) string {
	return fmt.Sprintf("match:score:%s:%d:%s:%d", employeeID, employeeVersion, jobID, jobVersion)
}
