package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"skill-match/internal/domain/employee"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
	"skill-match/internal/repository"

	"github.com/google/uuid"
)

// memJobStore mirrors the conditional UPDATE of the Postgres repository.
type memJobStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]job.Job
}

func newMemJobStore(jobs ...job.Job) *memJobStore {
	s := &memJobStore{jobs: map[uuid.UUID]job.Job{}}
	for _, j := range jobs {
		s.jobs[j.ID] = j
	}
	return s
}

func (s *memJobStore) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (s *memJobStore) ListOpenJobs(context.Context, repository.JobFilter) ([]job.Job, error) {
	return nil, errors.New("not implemented")
}
func (s *memJobStore) ListByEmployer(context.Context, uuid.UUID) ([]job.Job, error) {
	return nil, errors.New("not implemented")
}
func (s *memJobStore) ListAll(context.Context) ([]job.Job, error) {
	return nil, errors.New("not implemented")
}
func (s *memJobStore) ListFilledJobs(context.Context, *job.TimeRange) ([]job.Filled, error) {
	return nil, errors.New("not implemented")
}

func (s *memJobStore) SetFilledIfOpen(_ context.Context, jobID, employeeID uuid.UUID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[jobID]
	if !ok || j.FilledBy != nil {
		return false, nil
	}
	j.FilledBy = &employeeID
	j.FilledAt = &at
	s.jobs[jobID] = j
	return true, nil
}

type memEmployees struct {
	byUser map[uuid.UUID]employee.Profile
}

func (m memEmployees) GetByID(_ context.Context, id uuid.UUID) (employee.Profile, error) {
	for _, p := range m.byUser {
		if p.ID == id {
			return p, nil
		}
	}
	return employee.Profile{}, repository.ErrEmployeeNotFound
}
func (m memEmployees) GetByUserID(_ context.Context, userID uuid.UUID) (employee.Profile, error) {
	p, ok := m.byUser[userID]
	if !ok {
		return employee.Profile{}, repository.ErrEmployeeNotFound
	}
	return p, nil
}
func (m memEmployees) GetByIDs(context.Context, []uuid.UUID) (map[uuid.UUID]employee.Profile, error) {
	return nil, errors.New("not implemented")
}
func (m memEmployees) List(context.Context, repository.EmployeeFilter) ([]employee.Profile, error) {
	return nil, errors.New("not implemented")
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []job.FilledEvent
}

func (n *recordingNotifier) JobFilled(_ context.Context, ev job.FilledEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

type memReportCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes []string
	err     error
}

func newMemReportCache() *memReportCache {
	return &memReportCache{data: map[string][]byte{}}
}

func (c *memReportCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memReportCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memReportCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, key)
	delete(c.data, key)
	return c.err
}

type memScoreCache struct {
	mu      sync.Mutex
	data    map[string]matching.Result
	getErr  error
	setErr  error
	written int
}

func newMemScoreCache() *memScoreCache {
	return &memScoreCache{data: map[string]matching.Result{}}
}

func (c *memScoreCache) GetResults(_ context.Context, keys []string) (map[string]matching.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	out := map[string]matching.Result{}
	for _, k := range keys {
		if r, ok := c.data[k]; ok {
			out[k] = r
		}
	}
	return out, nil
}

func (c *memScoreCache) SetResults(_ context.Context, results map[string]matching.Result, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	for k, v := range results {
		c.data[k] = v
		c.written++
	}
	return nil
}
